package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog rows are append-only: the application inserts them and never
// updates or deletes them.
type AuditLog struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Action    string         `gorm:"type:varchar(60);not null;index" json:"action"`
	Detail    datatypes.JSON `json:"detail"`
	ActorID   uint64         `gorm:"not null;index" json:"actor_id"`
	CreatedAt time.Time      `json:"created_at"`
}
