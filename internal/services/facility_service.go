package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/silverstage/silverstage-api/internal/audit"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidFacilityName = errors.New("facility name cannot be empty")
)

// FacilityService manages partner care homes.
type FacilityService struct {
	facilityRepo repository.FacilityRepository
	audit        *audit.Writer
}

// NewFacilityService creates a new FacilityService.
func NewFacilityService(facilityRepo repository.FacilityRepository, auditWriter *audit.Writer) *FacilityService {
	return &FacilityService{
		facilityRepo: facilityRepo,
		audit:        auditWriter,
	}
}

// FacilityInput represents facility create/update parameters.
type FacilityInput struct {
	Name      string
	Address   string
	Contact   string
	LiaisonID *uint64
}

// Create registers a new facility.
func (s *FacilityService) Create(input FacilityInput, actorID uint64) (*models.Facility, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidFacilityName
	}

	facility := &models.Facility{
		Name:      input.Name,
		Address:   input.Address,
		Contact:   input.Contact,
		LiaisonID: input.LiaisonID,
	}

	if err := s.facilityRepo.Create(facility); err != nil {
		return nil, fmt.Errorf("failed to create facility: %w", err)
	}

	s.audit.Record(actorID, "facility.created", map[string]any{
		"facility_id": facility.ID,
		"name":        facility.Name,
	})

	return facility, nil
}

// List lists all facilities.
func (s *FacilityService) List() ([]models.Facility, error) {
	facilities, err := s.facilityRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	return facilities, nil
}

// Get returns a facility by ID.
func (s *FacilityService) Get(id uint64) (*models.Facility, error) {
	facility, err := s.facilityRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to find facility: %w", err)
	}
	return facility, nil
}

// Update changes a facility's details.
func (s *FacilityService) Update(id uint64, input FacilityInput, actorID uint64) (*models.Facility, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidFacilityName
	}

	facility, err := s.facilityRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to find facility: %w", err)
	}

	facility.Name = input.Name
	facility.Address = input.Address
	facility.Contact = input.Contact
	facility.LiaisonID = input.LiaisonID

	if err := s.facilityRepo.Update(facility); err != nil {
		return nil, fmt.Errorf("failed to update facility: %w", err)
	}

	s.audit.Record(actorID, "facility.updated", map[string]any{
		"facility_id": facility.ID,
	})

	return facility, nil
}
