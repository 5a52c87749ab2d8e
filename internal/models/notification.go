package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTimeEntryReviewed NotificationType = "TIME_ENTRY_REVIEWED"
	NotificationEventAssigned     NotificationType = "EVENT_ASSIGNED"
	NotificationEventStatus       NotificationType = "EVENT_STATUS"
	NotificationEventReminder     NotificationType = "EVENT_REMINDER"
	NotificationPayrollReminder   NotificationType = "PAYROLL_REMINDER"
	NotificationNewMessage        NotificationType = "NEW_MESSAGE"
	NotificationRoleChanged       NotificationType = "ROLE_CHANGED"
	NotificationStatusChanged     NotificationType = "STATUS_CHANGED"
)

type Notification struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	UserID    uint64           `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	Link      string           `gorm:"type:varchar(255)" json:"link,omitempty"`
	Data      datatypes.JSON   `json:"data,omitempty"`
	Read      bool             `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time        `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
