package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/silverstage/silverstage-api/internal/audit"
	"github.com/silverstage/silverstage-api/internal/constants"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
	"github.com/silverstage/silverstage-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidInvitation      = errors.New("invalid or expired invitation")
	ErrInvitationNotFound     = errors.New("invitation not found")
	ErrInvitationNotPending   = errors.New("invitation is no longer pending")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrPasswordTooShort       = errors.New("password too short")
	ErrNameRequired           = errors.New("name is required")
)

// InvitationService manages the invitation lifecycle: PENDING invitations
// are either redeemed into a user account or deleted on cancellation.
type InvitationService struct {
	invRepo  repository.InvitationRepository
	userRepo repository.UserRepository
	audit    *audit.Writer
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(invRepo repository.InvitationRepository, userRepo repository.UserRepository, auditWriter *audit.Writer) *InvitationService {
	return &InvitationService{
		invRepo:  invRepo,
		userRepo: userRepo,
		audit:    auditWriter,
	}
}

// CreateInvitationInput represents parameters to invite someone.
type CreateInvitationInput struct {
	Email     string
	Role      string
	InviterID uint64
}

// Create issues a PENDING invitation with a fresh token and a 7-day expiry.
func (s *InvitationService) Create(input CreateInvitationInput) (*models.Invitation, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	role, ok := models.ParseRole(input.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	inv := &models.Invitation{
		Email:     email,
		Role:      role,
		Token:     utils.GenerateInvitationToken(),
		Status:    models.InvitationPending,
		ExpiresAt: time.Now().Add(constants.InvitationTTL),
		InviterID: input.InviterID,
	}

	if err := s.invRepo.Create(inv); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.audit.Record(input.InviterID, "invitation.created", map[string]any{
		"invitation_id": inv.ID,
		"email":         email,
		"role":          role,
	})

	return inv, nil
}

// List lists invitations, newest first.
func (s *InvitationService) List() ([]models.Invitation, error) {
	invs, err := s.invRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invs, nil
}

// Cancel deletes a PENDING invitation, ending its lifecycle by removal.
func (s *InvitationService) Cancel(id, actorID uint64) error {
	inv, err := s.invRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to find invitation: %w", err)
	}

	if inv.Status != models.InvitationPending {
		return ErrInvitationNotPending
	}

	if err := s.invRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}

	s.audit.Record(actorID, "invitation.cancelled", map[string]any{
		"invitation_id": id,
		"email":         inv.Email,
	})

	return nil
}

// AcceptInvitationInput represents the redemption payload.
type AcceptInvitationInput struct {
	Token    string
	Name     string
	Password string
}

// Accept redeems a PENDING, unexpired invitation: it creates the user with
// the invitation's pre-assigned role and flips the invitation to ACCEPTED in
// one transaction. A token can therefore be redeemed at most once.
func (s *InvitationService) Accept(input AcceptInvitationInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	inv, err := s.invRepo.FindByToken(input.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInvitation
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	// Expiry is enforced here, at redemption time; there is no background
	// sweep flipping expired invitations.
	if inv.Status != models.InvitationPending || time.Now().After(inv.ExpiresAt) {
		return nil, ErrInvalidInvitation
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        inv.Email,
		PasswordHash: string(hashedPassword),
		Role:         inv.Role,
		Status:       models.UserStatusActive,
	}

	if err := s.invRepo.Redeem(inv.ID, user); err != nil {
		if errors.Is(err, repository.ErrInvitationNotPending) {
			return nil, ErrInvalidInvitation
		}
		return nil, fmt.Errorf("failed to redeem invitation: %w", err)
	}

	s.audit.Record(user.ID, "invitation.accepted", map[string]any{
		"invitation_id": inv.ID,
		"email":         inv.Email,
		"role":          inv.Role,
	})

	return user, nil
}
