package services

import (
	"fmt"
	"time"

	"github.com/silverstage/silverstage-api/internal/constants"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
)

// ReminderService is the batch job behind /api/cron/reminders. It nudges
// assigned facilitators about events starting soon and tells payroll how
// many time entries are waiting.
type ReminderService struct {
	eventRepo repository.EventRepository
	entryRepo repository.TimeEntryRepository
	userRepo  repository.UserRepository
	notifier  *NotificationService
}

// NewReminderService creates a new ReminderService.
func NewReminderService(eventRepo repository.EventRepository, entryRepo repository.TimeEntryRepository, userRepo repository.UserRepository, notifier *NotificationService) *ReminderService {
	return &ReminderService{
		eventRepo: eventRepo,
		entryRepo: entryRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Run executes one reminder pass and returns a human-readable result line
// per action taken.
func (s *ReminderService) Run(now time.Time) ([]string, error) {
	results := []string{}

	events, err := s.eventRepo.ListStartingBetween(now, now.Add(constants.ReminderHorizon))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}

	for _, event := range events {
		for _, a := range event.Assignments {
			s.notifier.Notify(a.UserID, models.NotificationEventReminder,
				"Event starting soon",
				fmt.Sprintf("%q starts at %s.", event.Title, event.StartsAt.Format("15:04 on 2006-01-02")),
				fmt.Sprintf("/events/%d", event.ID),
				map[string]any{"event_id": event.ID})
		}
		results = append(results, fmt.Sprintf("event %d: reminded %d facilitators", event.ID, len(event.Assignments)))
	}

	pending, err := s.entryRepo.CountByStatus(models.TimeEntryPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending time entries: %w", err)
	}

	if pending > 0 {
		payroll, err := s.userRepo.ListByRole(models.RolePayroll)
		if err != nil {
			return nil, fmt.Errorf("failed to list payroll users: %w", err)
		}
		for _, user := range payroll {
			s.notifier.Notify(user.ID, models.NotificationPayrollReminder,
				"Time entries awaiting review",
				fmt.Sprintf("%d entries are pending approval.", pending),
				"/time-entries/pending",
				map[string]any{"pending": pending})
		}
		results = append(results, fmt.Sprintf("payroll: notified %d reviewers of %d pending entries", len(payroll), pending))
	}

	return results, nil
}
