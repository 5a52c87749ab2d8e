package repository

import (
	"github.com/silverstage/silverstage-api/internal/models"
	"gorm.io/gorm"
)

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// Create creates a new time entry
func (r *GormTimeEntryRepository) Create(entry *models.TimeEntry) error {
	return r.db.Create(entry).Error
}

// FindByID finds a time entry by ID
func (r *GormTimeEntryRepository) FindByID(id uint64) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	if err := r.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByUser lists a user's entries, newest first
func (r *GormTimeEntryRepository) ListByUser(userID uint64) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	if err := r.db.Where("user_id = ?", userID).
		Order("work_date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByStatus lists entries in the given status across all users
func (r *GormTimeEntryRepository) ListByStatus(status models.TimeEntryStatus) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	if err := r.db.Preload("User").
		Where("status = ?", status).
		Order("work_date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByStatus counts entries in the given status
func (r *GormTimeEntryRepository) CountByStatus(status models.TimeEntryStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.TimeEntry{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Update updates a time entry
func (r *GormTimeEntryRepository) Update(entry *models.TimeEntry) error {
	return r.db.Save(entry).Error
}
