package repository

import (
	"errors"
	"fmt"

	"github.com/silverstage/silverstage-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrInvitationNotPending is returned when redeeming an invitation that
	// has already been accepted or otherwise left the PENDING state.
	ErrInvitationNotPending = errors.New("invitation repository: invitation is not pending")
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create creates a new invitation
func (r *GormInvitationRepository) Create(inv *models.Invitation) error {
	return r.db.Create(inv).Error
}

// FindByID finds an invitation by ID
func (r *GormInvitationRepository) FindByID(id uint64) (*models.Invitation, error) {
	var inv models.Invitation
	if err := r.db.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindByToken finds an invitation by its token
func (r *GormInvitationRepository) FindByToken(token string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := r.db.Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// List lists invitations, newest first
func (r *GormInvitationRepository) List() ([]models.Invitation, error) {
	var invs []models.Invitation
	if err := r.db.Order("created_at DESC").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

// Delete removes an invitation
func (r *GormInvitationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Invitation{}, id).Error
}

// Redeem creates the invited user and marks the invitation accepted within a
// single transaction. The status guard runs inside the transaction, so a
// token redeemed concurrently can only ever produce one user.
func (r *GormInvitationRepository) Redeem(invitationID uint64, user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invitation
		if err := tx.First(&inv, invitationID).Error; err != nil {
			return fmt.Errorf("reload invitation: %w", err)
		}

		if inv.Status != models.InvitationPending {
			return ErrInvitationNotPending
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		if err := tx.Model(&inv).Update("status", models.InvitationAccepted).Error; err != nil {
			return fmt.Errorf("mark invitation accepted: %w", err)
		}

		return nil
	})
}
