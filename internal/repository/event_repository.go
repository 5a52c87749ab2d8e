package repository

import (
	"time"

	"github.com/silverstage/silverstage-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// FindByID finds an event with facility and assignees preloaded
func (r *GormEventRepository) FindByID(id uint64) (*models.Event, error) {
	var event models.Event
	if err := r.db.
		Preload("Facility").
		Preload("Assignments").
		Preload("Assignments.User").
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List retrieves events matching the filter, soonest first
func (r *GormEventRepository) List(filter EventFilter) ([]models.Event, error) {
	var events []models.Event

	query := r.db.Model(&models.Event{})
	if filter.FacilityID != nil {
		query = query.Where("facility_id = ?", *filter.FacilityID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Preload("Facility").
		Order("starts_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

// Update updates an event
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Assign adds facilitators to an event, reviving soft-deleted rows
func (r *GormEventRepository) Assign(eventID uint64, userIDs []uint64) error {
	assignments := make([]models.EventAssignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = models.EventAssignment{
			EventID: eventID,
			UserID:  userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(&assignments).Error
}

// ListStartingBetween lists events whose start falls in [from, to)
func (r *GormEventRepository) ListStartingBetween(from, to time.Time) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.
		Preload("Facility").
		Preload("Assignments").
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Where("status = ?", models.EventConfirmed).
		Order("starts_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
