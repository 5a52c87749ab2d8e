package dto

import (
	"time"

	"github.com/silverstage/silverstage-api/internal/models"
)

// TimeEntryDTO represents a time entry in API responses
type TimeEntryDTO struct {
	ID          uint64                 `json:"id"`
	UserID      uint64                 `json:"user_id"`
	WorkDate    time.Time              `json:"work_date"`
	Hours       float64                `json:"hours"`
	Description string                 `json:"description"`
	Status      models.TimeEntryStatus `json:"status"`
	ReviewerID  *uint64                `json:"reviewer_id,omitempty"`
	ReviewedAt  *time.Time             `json:"reviewed_at,omitempty"`
	User        *UserDTO               `json:"user,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// ToTimeEntryDTO converts a TimeEntry model to TimeEntryDTO
func ToTimeEntryDTO(entry models.TimeEntry) TimeEntryDTO {
	dto := TimeEntryDTO{
		ID:          entry.ID,
		UserID:      entry.UserID,
		WorkDate:    entry.WorkDate,
		Hours:       entry.Hours,
		Description: entry.Description,
		Status:      entry.Status,
		ReviewerID:  entry.ReviewerID,
		ReviewedAt:  entry.ReviewedAt,
		CreatedAt:   entry.CreatedAt,
	}

	// Include owner if preloaded
	if entry.User.ID != 0 {
		user := ToUserDTO(entry.User)
		dto.User = &user
	}

	return dto
}

// ToTimeEntryDTOs converts a slice of entries
func ToTimeEntryDTOs(entries []models.TimeEntry) []TimeEntryDTO {
	items := make([]TimeEntryDTO, len(entries))
	for i, entry := range entries {
		items[i] = ToTimeEntryDTO(entry)
	}
	return items
}
