package models

import (
	"time"

	"gorm.io/gorm"
)

type TimeEntryStatus string

const (
	TimeEntryPending  TimeEntryStatus = "PENDING"
	TimeEntryApproved TimeEntryStatus = "APPROVED"
	TimeEntryRejected TimeEntryStatus = "REJECTED"
)

type TimeEntry struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	UserID      uint64          `gorm:"not null;index" json:"user_id"`
	WorkDate    time.Time       `gorm:"not null" json:"work_date"`
	Hours       float64         `gorm:"not null" json:"hours"`
	Description string          `gorm:"type:text" json:"description"`
	Status      TimeEntryStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ReviewerID  *uint64         `json:"reviewer_id"`
	ReviewedAt  *time.Time      `json:"reviewed_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	User     User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}
