package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/silverstage/silverstage-api/internal/audit"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrFacilityNotFound   = errors.New("facility not found")
	ErrInvalidEventWindow = errors.New("event must end after it starts")
	ErrInvalidEventStatus = errors.New("unknown event status")
	ErrNotFacilityLiaison = errors.New("only the facility's liaison can do this")
	ErrAssigneeNotFound   = errors.New("assignee not found")
)

// EventService handles event requests, confirmation by the hosting facility,
// and facilitator assignment.
type EventService struct {
	eventRepo    repository.EventRepository
	facilityRepo repository.FacilityRepository
	userRepo     repository.UserRepository
	audit        *audit.Writer
	notifier     *NotificationService
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository, facilityRepo repository.FacilityRepository, userRepo repository.UserRepository, auditWriter *audit.Writer, notifier *NotificationService) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		facilityRepo: facilityRepo,
		userRepo:     userRepo,
		audit:        auditWriter,
		notifier:     notifier,
	}
}

// RequestEventInput represents a new event request.
type RequestEventInput struct {
	Title       string
	Description string
	FacilityID  uint64
	StartsAt    time.Time
	EndsAt      time.Time
	CreatorID   uint64
}

// Request creates an event in REQUESTED state and alerts the facility's liaison.
func (s *EventService) Request(input RequestEventInput) (*models.Event, error) {
	if !input.EndsAt.After(input.StartsAt) {
		return nil, ErrInvalidEventWindow
	}

	facility, err := s.facilityRepo.FindByID(input.FacilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to find facility: %w", err)
	}

	event := &models.Event{
		Title:       input.Title,
		Description: input.Description,
		FacilityID:  input.FacilityID,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Status:      models.EventRequested,
		CreatorID:   input.CreatorID,
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.audit.Record(input.CreatorID, "event.requested", map[string]any{
		"event_id":    event.ID,
		"facility_id": input.FacilityID,
	})

	if facility.LiaisonID != nil {
		s.notifier.Notify(*facility.LiaisonID, models.NotificationEventStatus,
			"New event request",
			fmt.Sprintf("%q was requested at %s.", event.Title, facility.Name),
			fmt.Sprintf("/events/%d", event.ID),
			map[string]any{"event_id": event.ID})
	}

	return event, nil
}

// Get returns an event with facility and assignees preloaded.
func (s *EventService) Get(id uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

// List retrieves events matching the filter.
func (s *EventService) List(filter repository.EventFilter) ([]models.Event, error) {
	events, err := s.eventRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// SetStatus confirms or cancels an event. A HOME_ADMIN may only act on
// events hosted at the facility they liaise for; admins may act anywhere.
func (s *EventService) SetStatus(eventID, actorID uint64, actorRole models.Role, statusStr string) (*models.Event, error) {
	status := models.EventStatus(statusStr)
	if status != models.EventConfirmed && status != models.EventCancelled {
		return nil, ErrInvalidEventStatus
	}

	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if actorRole == models.RoleHomeAdmin {
		if event.Facility.LiaisonID == nil || *event.Facility.LiaisonID != actorID {
			return nil, ErrNotFacilityLiaison
		}
	}

	event.Status = status
	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.audit.Record(actorID, "event.status_changed", map[string]any{
		"event_id": event.ID,
		"status":   status,
	})

	// Fan out one notification per affected person.
	recipients := map[uint64]struct{}{event.CreatorID: {}}
	for _, a := range event.Assignments {
		recipients[a.UserID] = struct{}{}
	}
	delete(recipients, actorID)
	for userID := range recipients {
		s.notifier.Notify(userID, models.NotificationEventStatus,
			fmt.Sprintf("Event %s", status),
			fmt.Sprintf("%q on %s is now %s.", event.Title, event.StartsAt.Format("2006-01-02"), status),
			fmt.Sprintf("/events/%d", event.ID),
			map[string]any{"event_id": event.ID})
	}

	return event, nil
}

// Assign adds facilitators to an event and notifies each of them.
func (s *EventService) Assign(eventID, actorID uint64, userIDs []uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	for _, userID := range userIDs {
		if _, err := s.userRepo.FindByID(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
	}

	if err := s.eventRepo.Assign(eventID, userIDs); err != nil {
		return nil, fmt.Errorf("failed to assign facilitators: %w", err)
	}

	s.audit.Record(actorID, "event.assigned", map[string]any{
		"event_id": eventID,
		"user_ids": userIDs,
	})

	for _, userID := range userIDs {
		s.notifier.Notify(userID, models.NotificationEventAssigned,
			"You were assigned to an event",
			fmt.Sprintf("%q on %s.", event.Title, event.StartsAt.Format("2006-01-02")),
			fmt.Sprintf("/events/%d", event.ID),
			map[string]any{"event_id": event.ID})
	}

	return s.eventRepo.FindByID(eventID)
}
