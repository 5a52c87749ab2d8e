package models

import (
	"time"

	"gorm.io/gorm"
)

type EventAssignment struct {
	EventID   uint64         `gorm:"primarykey" json:"event_id"`
	UserID    uint64         `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
