package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/silverstage/silverstage-api/internal/constants"
	"github.com/silverstage/silverstage-api/internal/dto"
	apierrors "github.com/silverstage/silverstage-api/internal/errors"
	"github.com/silverstage/silverstage-api/internal/middleware"
	"github.com/silverstage/silverstage-api/internal/services"
)

// InvitationHandler coordinates invitation lifecycle handlers.
type InvitationHandler struct {
	invitationService *services.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

// CreateInvitation invites someone by email with a pre-assigned role.
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	type CreateInvitationRequest struct {
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role" binding:"required"`
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	inviterID, _ := middleware.GetUserID(c)
	inv, err := h.invitationService.Create(services.CreateInvitationInput{
		Email:     req.Email,
		Role:      req.Role,
		InviterID: inviterID,
	})
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationDTO(*inv, true))
}

// ListInvitations returns all invitations, newest first.
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	invs, err := h.invitationService.List()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	items := make([]dto.InvitationDTO, len(invs))
	for i, inv := range invs {
		items[i] = dto.ToInvitationDTO(inv, false)
	}
	c.JSON(http.StatusOK, gin.H{"invitations": items})
}

// CancelInvitation deletes a pending invitation.
func (h *InvitationHandler) CancelInvitation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invitation ID")
		return
	}

	actorID, _ := middleware.GetUserID(c)
	if err := h.invitationService.Cancel(id, actorID); err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation cancelled"})
}

// AcceptInvitation redeems a token and creates the invited account. This is
// the only unauthenticated mutation in the system.
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	type AcceptInvitationRequest struct {
		Token    string `json:"token" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.invitationService.Accept(services.AcceptInvitationInput{
		Token:    req.Token,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

func respondInvitationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInvitation):
		apierrors.BadRequest(c, "Invalid or expired invitation")
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailAlreadyRegistered):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvitationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvitationNotPending):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
