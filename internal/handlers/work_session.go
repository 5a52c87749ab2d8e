package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/silverstage/silverstage-api/internal/dto"
	apierrors "github.com/silverstage/silverstage-api/internal/errors"
	"github.com/silverstage/silverstage-api/internal/middleware"
	"github.com/silverstage/silverstage-api/internal/services"
)

// WorkSessionHandler coordinates the check-in flow handlers.
type WorkSessionHandler struct {
	workSessionService *services.WorkSessionService
}

// NewWorkSessionHandler creates a new WorkSessionHandler.
func NewWorkSessionHandler(workSessionService *services.WorkSessionService) *WorkSessionHandler {
	return &WorkSessionHandler{
		workSessionService: workSessionService,
	}
}

// StartWorkSession opens a session for the current user.
func (h *WorkSessionHandler) StartWorkSession(c *gin.Context) {
	type StartRequest struct {
		Note string `json:"note"`
	}

	var req StartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	userID, _ := middleware.GetUserID(c)
	session, err := h.workSessionService.Start(userID, req.Note)
	if err != nil {
		respondWorkSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkSessionDTO(*session))
}

// StopWorkSession closes the current user's open session.
func (h *WorkSessionHandler) StopWorkSession(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	session, err := h.workSessionService.Stop(userID)
	if err != nil {
		respondWorkSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkSessionDTO(*session))
}

// ListWorkSessions returns the current user's session log.
func (h *WorkSessionHandler) ListWorkSessions(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	sessions, err := h.workSessionService.Log(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	items := make([]dto.WorkSessionDTO, len(sessions))
	for i, s := range sessions {
		items[i] = dto.ToWorkSessionDTO(s)
	}
	c.JSON(http.StatusOK, gin.H{"work_sessions": items})
}

func respondWorkSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionAlreadyOpen):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNoOpenSession):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
