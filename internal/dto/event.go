package dto

import (
	"time"

	"github.com/silverstage/silverstage-api/internal/models"
)

// FacilityDTO represents a care home in API responses
type FacilityDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	Contact   string  `json:"contact,omitempty"`
	LiaisonID *uint64 `json:"liaison_id,omitempty"`
}

// EventDTO represents an event in API responses
type EventDTO struct {
	ID          uint64             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	FacilityID  uint64             `json:"facility_id"`
	StartsAt    time.Time          `json:"starts_at"`
	EndsAt      time.Time          `json:"ends_at"`
	Status      models.EventStatus `json:"status"`
	CreatorID   uint64             `json:"creator_id"`
	Facility    *FacilityDTO       `json:"facility,omitempty"`
	Assignees   []UserDTO          `json:"assignees,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ToFacilityDTO converts a Facility model to FacilityDTO
func ToFacilityDTO(f models.Facility) FacilityDTO {
	return FacilityDTO{
		ID:        f.ID,
		Name:      f.Name,
		Address:   f.Address,
		Contact:   f.Contact,
		LiaisonID: f.LiaisonID,
	}
}

// ToEventDTO converts an Event model to EventDTO
func ToEventDTO(event models.Event) EventDTO {
	dto := EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		FacilityID:  event.FacilityID,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		Status:      event.Status,
		CreatorID:   event.CreatorID,
		CreatedAt:   event.CreatedAt,
	}

	// Include facility if preloaded
	if event.Facility.ID != 0 {
		facility := ToFacilityDTO(event.Facility)
		dto.Facility = &facility
	}

	// Include assignees if preloaded
	if len(event.Assignments) > 0 {
		dto.Assignees = make([]UserDTO, 0, len(event.Assignments))
		for _, a := range event.Assignments {
			if a.User.ID != 0 {
				dto.Assignees = append(dto.Assignees, ToUserDTO(a.User))
			}
		}
	}

	return dto
}

// ToEventDTOs converts a slice of events
func ToEventDTOs(events []models.Event) []EventDTO {
	items := make([]EventDTO, len(events))
	for i, event := range events {
		items[i] = ToEventDTO(event)
	}
	return items
}
