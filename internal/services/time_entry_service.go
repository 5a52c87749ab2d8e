package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/silverstage/silverstage-api/internal/audit"
	"github.com/silverstage/silverstage-api/internal/constants"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidHours      = errors.New("hours must be between 0 and 24")
	ErrTimeEntryNotFound = errors.New("time entry not found")
	ErrAlreadyReviewed   = errors.New("time entry already reviewed")
)

// TimeEntryService handles time entry submission and payroll review.
type TimeEntryService struct {
	entryRepo repository.TimeEntryRepository
	audit     *audit.Writer
	notifier  *NotificationService
}

// NewTimeEntryService creates a new TimeEntryService.
func NewTimeEntryService(entryRepo repository.TimeEntryRepository, auditWriter *audit.Writer, notifier *NotificationService) *TimeEntryService {
	return &TimeEntryService{
		entryRepo: entryRepo,
		audit:     auditWriter,
		notifier:  notifier,
	}
}

// SubmitTimeEntryInput represents a submitted time entry.
type SubmitTimeEntryInput struct {
	UserID      uint64
	WorkDate    time.Time
	Hours       float64
	Description string
}

// Submit validates and stores a PENDING time entry. Hours outside [0, 24]
// are rejected before anything is written.
func (s *TimeEntryService) Submit(input SubmitTimeEntryInput) (*models.TimeEntry, error) {
	if input.Hours < constants.MinHoursPerEntry || input.Hours > constants.MaxHoursPerEntry {
		return nil, ErrInvalidHours
	}

	entry := &models.TimeEntry{
		UserID:      input.UserID,
		WorkDate:    input.WorkDate,
		Hours:       input.Hours,
		Description: input.Description,
		Status:      models.TimeEntryPending,
	}

	if err := s.entryRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	s.audit.Record(input.UserID, "time_entry.submitted", map[string]any{
		"time_entry_id": entry.ID,
		"hours":         entry.Hours,
	})

	return entry, nil
}

// ListOwn lists a user's entries, newest first.
func (s *TimeEntryService) ListOwn(userID uint64) ([]models.TimeEntry, error) {
	entries, err := s.entryRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

// ListPending lists every entry awaiting review.
func (s *TimeEntryService) ListPending() ([]models.TimeEntry, error) {
	entries, err := s.entryRepo.ListByStatus(models.TimeEntryPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending time entries: %w", err)
	}
	return entries, nil
}

// Review approves or rejects a PENDING entry and notifies its owner.
func (s *TimeEntryService) Review(id, reviewerID uint64, approve bool) (*models.TimeEntry, error) {
	entry, err := s.entryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("failed to find time entry: %w", err)
	}

	if entry.Status != models.TimeEntryPending {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	entry.Status = models.TimeEntryRejected
	if approve {
		entry.Status = models.TimeEntryApproved
	}
	entry.ReviewerID = &reviewerID
	entry.ReviewedAt = &now

	if err := s.entryRepo.Update(entry); err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	s.audit.Record(reviewerID, "time_entry.reviewed", map[string]any{
		"time_entry_id": entry.ID,
		"status":        entry.Status,
	})

	title := "Time entry rejected"
	if approve {
		title = "Time entry approved"
	}
	s.notifier.Notify(entry.UserID, models.NotificationTimeEntryReviewed,
		title,
		fmt.Sprintf("Your entry for %s (%.2f hours) was %s.", entry.WorkDate.Format("2006-01-02"), entry.Hours, entry.Status),
		"/time-entries",
		map[string]any{"time_entry_id": entry.ID})

	return entry, nil
}
