package models

import (
	"time"

	"gorm.io/gorm"
)

type EventStatus string

const (
	EventRequested EventStatus = "REQUESTED"
	EventConfirmed EventStatus = "CONFIRMED"
	EventCancelled EventStatus = "CANCELLED"
)

type Event struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	FacilityID  uint64         `gorm:"not null;index" json:"facility_id"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time      `gorm:"not null" json:"ends_at"`
	Status      EventStatus    `gorm:"type:varchar(20);not null;default:'REQUESTED';index" json:"status"`
	CreatorID   uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Facility    Facility          `gorm:"foreignKey:FacilityID" json:"facility,omitempty"`
	Creator     User              `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignments []EventAssignment `gorm:"foreignKey:EventID" json:"assignments,omitempty"`
}
