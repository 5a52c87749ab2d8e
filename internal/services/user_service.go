package services

import (
	"errors"
	"fmt"

	"github.com/silverstage/silverstage-api/internal/audit"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole   = errors.New("unknown role")
	ErrInvalidStatus = errors.New("unknown status")
)

// UserService covers administrative user management: listing accounts and
// changing their role or active status.
type UserService struct {
	userRepo repository.UserRepository
	audit    *audit.Writer
	notifier *NotificationService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, auditWriter *audit.Writer, notifier *NotificationService) *UserService {
	return &UserService{
		userRepo: userRepo,
		audit:    auditWriter,
		notifier: notifier,
	}
}

// List retrieves users with pagination.
func (s *UserService) List(offset, limit int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateRole changes a user's role. The new role is live on the target's
// next request because session claims are refreshed from storage per request.
func (s *UserService) UpdateRole(actorID, targetID uint64, roleStr string) (*models.User, error) {
	role, ok := models.ParseRole(roleStr)
	if !ok {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	previous := user.Role
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.audit.Record(actorID, "user.role_changed", map[string]any{
		"user_id": targetID,
		"from":    previous,
		"to":      role,
	})
	s.notifier.Notify(targetID, models.NotificationRoleChanged,
		"Your role was updated",
		fmt.Sprintf("Your role is now %s.", role),
		"/profile", nil)

	return user, nil
}

// UpdateStatus activates or deactivates a user account.
func (s *UserService) UpdateStatus(actorID, targetID uint64, statusStr string) (*models.User, error) {
	status := models.UserStatus(statusStr)
	if status != models.UserStatusActive && status != models.UserStatusInactive {
		return nil, ErrInvalidStatus
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Status = status
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.audit.Record(actorID, "user.status_changed", map[string]any{
		"user_id": targetID,
		"status":  status,
	})
	if status == models.UserStatusActive {
		s.notifier.Notify(targetID, models.NotificationStatusChanged,
			"Account reactivated", "Your account is active again.", "/profile", nil)
	}

	return user, nil
}
