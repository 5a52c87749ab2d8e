package models

import "time"

// Attachment stores file metadata only; the bytes live outside this system.
type Attachment struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner_id"`
	EntityType  string    `gorm:"type:varchar(40);not null;index:idx_attachments_entity" json:"entity_type"`
	EntityID    uint64    `gorm:"not null;index:idx_attachments_entity" json:"entity_id"`
	Filename    string    `gorm:"type:varchar(255);not null" json:"filename"`
	ContentType string    `gorm:"type:varchar(100)" json:"content_type"`
	Size        int64     `gorm:"not null" json:"size"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
