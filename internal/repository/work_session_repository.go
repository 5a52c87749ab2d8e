package repository

import (
	"github.com/silverstage/silverstage-api/internal/models"
	"gorm.io/gorm"
)

// GormWorkSessionRepository is a GORM implementation of WorkSessionRepository
type GormWorkSessionRepository struct {
	db *gorm.DB
}

// NewWorkSessionRepository creates a new WorkSessionRepository
func NewWorkSessionRepository(db *gorm.DB) WorkSessionRepository {
	return &GormWorkSessionRepository{db: db}
}

// Create creates a new work session
func (r *GormWorkSessionRepository) Create(s *models.WorkSession) error {
	return r.db.Create(s).Error
}

// FindOpenByUser finds the user's open session, if any
func (r *GormWorkSessionRepository) FindOpenByUser(userID uint64) (*models.WorkSession, error) {
	var session models.WorkSession
	if err := r.db.Where("user_id = ? AND ended_at IS NULL", userID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Update updates a work session
func (r *GormWorkSessionRepository) Update(s *models.WorkSession) error {
	return r.db.Save(s).Error
}

// ListByUser lists a user's sessions, newest first
func (r *GormWorkSessionRepository) ListByUser(userID uint64) ([]models.WorkSession, error) {
	var sessions []models.WorkSession
	if err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
