package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/silverstage/silverstage-api/internal/services"
)

// CronHandler exposes the reminder batch job to an external scheduler. The
// caller authenticates with a shared secret instead of a session.
type CronHandler struct {
	reminderService *services.ReminderService
	secret          string
}

// NewCronHandler creates a new CronHandler.
func NewCronHandler(reminderService *services.ReminderService, secret string) *CronHandler {
	return &CronHandler{
		reminderService: reminderService,
		secret:          secret,
	}
}

// RunReminders executes one reminder pass.
func (h *CronHandler) RunReminders(c *gin.Context) {
	if h.secret == "" || c.GetHeader("Authorization") != "Bearer "+h.secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	results, err := h.reminderService.Run(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reminder run failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"results":   results,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
