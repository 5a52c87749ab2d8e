package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RolePayroll     Role = "PAYROLL"
	RoleHomeAdmin   Role = "HOME_ADMIN"
	RoleFacilitator Role = "FACILITATOR"
	RoleContractor  Role = "CONTRACTOR"
	RoleVolunteer   Role = "VOLUNTEER"
	RoleBoard       Role = "BOARD"
	RolePartner     Role = "PARTNER"
)

var validRoles = map[Role]struct{}{
	RoleAdmin:       {},
	RolePayroll:     {},
	RoleHomeAdmin:   {},
	RoleFacilitator: {},
	RoleContractor:  {},
	RoleVolunteer:   {},
	RoleBoard:       {},
	RolePartner:     {},
}

// ParseRole validates a role string against the fixed enumeration.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := validRoles[r]
	return r, ok
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

type User struct {
	ID                   uint64         `gorm:"primarykey" json:"id"`
	Name                 string         `gorm:"type:varchar(255);not null" json:"name"`
	Email                string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash         string         `gorm:"type:varchar(255);not null" json:"-"`
	Role                 Role           `gorm:"type:varchar(20);not null" json:"role"`
	Status               UserStatus     `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	OnboardingStepsDone  int            `gorm:"not null;default:0" json:"onboarding_steps_done"`
	OnboardingStepsTotal int            `gorm:"not null;default:0" json:"onboarding_steps_total"`
	LastLoginAt          *time.Time     `json:"last_login_at"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Notifications []Notification `gorm:"foreignKey:UserID" json:"-"`
	TimeEntries   []TimeEntry    `gorm:"foreignKey:UserID" json:"-"`
	WorkSessions  []WorkSession  `gorm:"foreignKey:UserID" json:"-"`
}
