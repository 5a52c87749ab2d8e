package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/silverstage/silverstage-api/internal/constants"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/notify"
	"github.com/silverstage/silverstage-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationService writes and reads per-user notifications and signals
// live stream subscribers through the hub.
type NotificationService struct {
	repo repository.NotificationRepository
	hub  *notify.Hub
	log  zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository, hub *notify.Hub, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		repo: repo,
		hub:  hub,
		log:  log,
	}
}

// Notify inserts one notification row for the recipient and signals the hub.
// It is best-effort: failures are logged and never surface to the caller, so
// a broken notification path cannot roll back the primary mutation.
func (s *NotificationService) Notify(userID uint64, typ models.NotificationType, title, message, link string, data map[string]any) {
	n := &models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			s.log.Error().Err(err).Str("type", string(typ)).Msg("notification data marshal failed")
		} else {
			n.Data = datatypes.JSON(raw)
		}
	}

	if err := s.repo.Create(n); err != nil {
		s.log.Error().Err(err).Uint64("user_id", userID).Str("type", string(typ)).Msg("notification write failed")
		return
	}

	s.hub.Publish(userID)
}

// Snapshot returns the user's latest notifications and the unread count
// among that returned set.
func (s *NotificationService) Snapshot(userID uint64) ([]models.Notification, int, error) {
	notifications, err := s.repo.ListLatest(userID, constants.NotificationPageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	return notifications, unread, nil
}

// MarkRead flips one notification's read flag.
func (s *NotificationService) MarkRead(userID, id uint64) error {
	if err := s.repo.MarkRead(userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	s.hub.Publish(userID)
	return nil
}

// MarkAllRead flips every unread notification for the user.
func (s *NotificationService) MarkAllRead(userID uint64) error {
	if err := s.repo.MarkAllRead(userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	s.hub.Publish(userID)
	return nil
}
