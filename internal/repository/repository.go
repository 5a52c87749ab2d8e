package repository

import (
	"time"

	"github.com/silverstage/silverstage-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination
	List(offset, limit int) ([]models.User, int64, error)

	// ListByRole lists active users holding the given role
	ListByRole(role models.Role) ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// TouchLastLogin records a successful login time
	TouchLastLogin(id uint64, at time.Time) error
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates a new invitation
	Create(inv *models.Invitation) error

	// FindByID finds an invitation by ID
	FindByID(id uint64) (*models.Invitation, error)

	// FindByToken finds an invitation by its token
	FindByToken(token string) (*models.Invitation, error)

	// List lists invitations, newest first
	List() ([]models.Invitation, error)

	// Delete removes an invitation
	Delete(id uint64) error

	// Redeem creates the invited user and marks the invitation accepted
	// within a single transaction.
	Redeem(invitationID uint64, user *models.User) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create inserts a notification row
	Create(n *models.Notification) error

	// ListLatest returns the user's most recent notifications
	ListLatest(userID uint64, limit int) ([]models.Notification, error)

	// MarkRead flips the read flag on one of the user's notifications
	MarkRead(userID, id uint64) error

	// MarkAllRead flips the read flag on all of the user's notifications
	MarkAllRead(userID uint64) error
}

// AuditLogRepository defines the interface for the append-only audit log
type AuditLogRepository interface {
	// Append inserts an audit record. Audit rows are never updated or deleted.
	Append(entry *models.AuditLog) error
}

// TimeEntryRepository defines the interface for time entry data access
type TimeEntryRepository interface {
	// Create creates a new time entry
	Create(entry *models.TimeEntry) error

	// FindByID finds a time entry by ID
	FindByID(id uint64) (*models.TimeEntry, error)

	// ListByUser lists a user's entries, newest first
	ListByUser(userID uint64) ([]models.TimeEntry, error)

	// ListByStatus lists entries in the given status across all users
	ListByStatus(status models.TimeEntryStatus) ([]models.TimeEntry, error)

	// CountByStatus counts entries in the given status
	CountByStatus(status models.TimeEntryStatus) (int64, error)

	// Update updates a time entry
	Update(entry *models.TimeEntry) error
}

// EventFilter holds filtering options for listing events
type EventFilter struct {
	FacilityID *uint64
	Status     *models.EventStatus
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates a new event
	Create(event *models.Event) error

	// FindByID finds an event with facility and assignees preloaded
	FindByID(id uint64) (*models.Event, error)

	// List retrieves events matching the filter, soonest first
	List(filter EventFilter) ([]models.Event, error)

	// Update updates an event
	Update(event *models.Event) error

	// Assign adds facilitators to an event, reviving soft-deleted rows
	Assign(eventID uint64, userIDs []uint64) error

	// ListStartingBetween lists events whose start falls in [from, to)
	ListStartingBetween(from, to time.Time) ([]models.Event, error)
}

// FacilityRepository defines the interface for facility data access
type FacilityRepository interface {
	// Create creates a new facility
	Create(f *models.Facility) error

	// FindByID finds a facility by ID
	FindByID(id uint64) (*models.Facility, error)

	// List lists all facilities
	List() ([]models.Facility, error)

	// Update updates a facility
	Update(f *models.Facility) error
}

// WorkSessionRepository defines the interface for work session data access
type WorkSessionRepository interface {
	// Create creates a new work session
	Create(s *models.WorkSession) error

	// FindOpenByUser finds the user's open session, if any
	FindOpenByUser(userID uint64) (*models.WorkSession, error)

	// Update updates a work session
	Update(s *models.WorkSession) error

	// ListByUser lists a user's sessions, newest first
	ListByUser(userID uint64) ([]models.WorkSession, error)
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create creates a new message
	Create(m *models.Message) error

	// ListByRecipient lists a user's received messages, newest first
	ListByRecipient(userID uint64) ([]models.Message, error)

	// MarkRead flips the read flag on a received message
	MarkRead(recipientID, id uint64) error
}

// AttachmentRepository defines the interface for attachment metadata access
type AttachmentRepository interface {
	// Create records attachment metadata
	Create(a *models.Attachment) error

	// ListByEntity lists attachments recorded against an entity
	ListByEntity(entityType string, entityID uint64) ([]models.Attachment, error)
}
