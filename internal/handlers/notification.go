package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/silverstage/silverstage-api/internal/dto"
	apierrors "github.com/silverstage/silverstage-api/internal/errors"
	"github.com/silverstage/silverstage-api/internal/middleware"
	"github.com/silverstage/silverstage-api/internal/notify"
	"github.com/silverstage/silverstage-api/internal/services"
)

// heartbeatInterval keeps idle SSE connections from being reaped by proxies.
const heartbeatInterval = 25 * time.Second

// NotificationHandler serves the poll endpoint and the SSE stream.
type NotificationHandler struct {
	notificationService *services.NotificationService
	hub                 *notify.Hub
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService, hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		hub:                 hub,
	}
}

// ListNotifications returns the user's latest notifications and the unread
// count among the returned set.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	notifications, unread, err := h.notificationService.Snapshot(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationListResponse(notifications, unread))
}

// MarkRead flips one notification's read flag.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	if err := h.notificationService.MarkRead(userID, id); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// MarkAllRead flips every unread notification for the user.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	if err := h.notificationService.MarkAllRead(userID); err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

// Stream is the server-sent-events delivery path. It emits a full snapshot
// on connect, then again whenever the hub signals a change for this user,
// until the client disconnects.
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		apierrors.InternalError(c, "Streaming unsupported")
		return
	}

	ctx := c.Request.Context()
	signals := h.hub.Subscribe(ctx, userID)

	emit := func() {
		notifications, unread, err := h.notificationService.Snapshot(userID)
		if err != nil {
			// Keep the connection open; the next signal retries.
			return
		}
		payload, err := json.Marshal(dto.ToNotificationListResponse(notifications, unread))
		if err != nil {
			return
		}
		_, _ = c.Writer.Write([]byte("data: "))
		_, _ = c.Writer.Write(payload)
		_, _ = c.Writer.Write([]byte("\n\n"))
		flusher.Flush()
	}

	emit()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-signals:
			if !open {
				return
			}
			emit()
		case <-ticker.C:
			_, _ = c.Writer.Write([]byte(": ping\n\n"))
			flusher.Flush()
		}
	}
}
