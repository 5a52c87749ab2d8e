package dto

import (
	"encoding/json"
	"time"

	"github.com/silverstage/silverstage-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Link      string                  `json:"link,omitempty"`
	Data      json.RawMessage         `json:"data,omitempty"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"created_at"`
}

// NotificationListResponse is the snapshot shape shared by the poll endpoint
// and the SSE stream.
type NotificationListResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int               `json:"unreadCount"`
}

// ToNotificationDTO converts a Notification model to NotificationDTO
func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Data:      json.RawMessage(n.Data),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// ToNotificationListResponse converts a snapshot to the response shape
func ToNotificationListResponse(notifications []models.Notification, unread int) NotificationListResponse {
	items := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		items[i] = ToNotificationDTO(n)
	}
	return NotificationListResponse{
		Notifications: items,
		UnreadCount:   unread,
	}
}
