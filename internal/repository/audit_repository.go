package repository

import (
	"github.com/silverstage/silverstage-api/internal/models"
	"gorm.io/gorm"
)

// GormAuditLogRepository is a GORM implementation of AuditLogRepository
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append inserts an audit record. Audit rows are never updated or deleted.
func (r *GormAuditLogRepository) Append(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}
