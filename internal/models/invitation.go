package models

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
)

type Invitation struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	Email     string           `gorm:"type:varchar(255);not null;index" json:"email"`
	Role      Role             `gorm:"type:varchar(20);not null" json:"role"`
	Token     string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	Status    InvitationStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	ExpiresAt time.Time        `gorm:"not null" json:"expires_at"`
	InviterID uint64           `gorm:"not null" json:"inviter_id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relations
	Inviter User `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
}
