package models

import (
	"time"

	"gorm.io/gorm"
)

// Facility is a partner care home where events take place. LiaisonID points
// at the HOME_ADMIN user coordinating on the facility's side.
type Facility struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Address   string         `gorm:"type:varchar(255)" json:"address"`
	Contact   string         `gorm:"type:varchar(255)" json:"contact"`
	LiaisonID *uint64        `json:"liaison_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Liaison *User   `gorm:"foreignKey:LiaisonID" json:"liaison,omitempty"`
	Events  []Event `gorm:"foreignKey:FacilityID" json:"events,omitempty"`
}
