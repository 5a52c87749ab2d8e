package dto

import (
	"time"

	"github.com/silverstage/silverstage-api/internal/models"
)

// InvitationDTO represents an invitation in API responses
type InvitationDTO struct {
	ID        uint64                  `json:"id"`
	Email     string                  `json:"email"`
	Role      models.Role             `json:"role"`
	Token     string                  `json:"token,omitempty"`
	Status    models.InvitationStatus `json:"status"`
	ExpiresAt time.Time               `json:"expires_at"`
	CreatedAt time.Time               `json:"created_at"`
}

// ToInvitationDTO converts an Invitation model to InvitationDTO. The token
// is only included for the admin who just created the invitation.
func ToInvitationDTO(inv models.Invitation, includeToken bool) InvitationDTO {
	dto := InvitationDTO{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      inv.Role,
		Status:    inv.Status,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
	if includeToken {
		dto.Token = inv.Token
	}
	return dto
}
