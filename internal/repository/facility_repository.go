package repository

import (
	"github.com/silverstage/silverstage-api/internal/models"
	"gorm.io/gorm"
)

// GormFacilityRepository is a GORM implementation of FacilityRepository
type GormFacilityRepository struct {
	db *gorm.DB
}

// NewFacilityRepository creates a new FacilityRepository
func NewFacilityRepository(db *gorm.DB) FacilityRepository {
	return &GormFacilityRepository{db: db}
}

// Create creates a new facility
func (r *GormFacilityRepository) Create(f *models.Facility) error {
	return r.db.Create(f).Error
}

// FindByID finds a facility by ID
func (r *GormFacilityRepository) FindByID(id uint64) (*models.Facility, error) {
	var f models.Facility
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// List lists all facilities
func (r *GormFacilityRepository) List() ([]models.Facility, error) {
	var facilities []models.Facility
	if err := r.db.Order("name ASC").Find(&facilities).Error; err != nil {
		return nil, err
	}
	return facilities, nil
}

// Update updates a facility
func (r *GormFacilityRepository) Update(f *models.Facility) error {
	return r.db.Save(f).Error
}
