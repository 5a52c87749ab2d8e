package repository

import (
	"github.com/silverstage/silverstage-api/internal/models"
	"gorm.io/gorm"
)

// GormAttachmentRepository is a GORM implementation of AttachmentRepository
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// Create records attachment metadata
func (r *GormAttachmentRepository) Create(a *models.Attachment) error {
	return r.db.Create(a).Error
}

// ListByEntity lists attachments recorded against an entity
func (r *GormAttachmentRepository) ListByEntity(entityType string, entityID uint64) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}
