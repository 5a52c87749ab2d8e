package repository

import (
	"github.com/silverstage/silverstage-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(m *models.Message) error {
	return r.db.Create(m).Error
}

// ListByRecipient lists a user's received messages, newest first
func (r *GormMessageRepository) ListByRecipient(userID uint64) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flips the read flag on a received message
func (r *GormMessageRepository) MarkRead(recipientID, id uint64) error {
	res := r.db.Model(&models.Message{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
