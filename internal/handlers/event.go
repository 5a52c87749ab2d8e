package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/silverstage/silverstage-api/internal/dto"
	apierrors "github.com/silverstage/silverstage-api/internal/errors"
	"github.com/silverstage/silverstage-api/internal/middleware"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
	"github.com/silverstage/silverstage-api/internal/services"
)

// EventHandler coordinates event request, confirmation, and assignment handlers.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// RequestEvent creates an event in REQUESTED state.
func (h *EventHandler) RequestEvent(c *gin.Context) {
	type RequestEventRequest struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		FacilityID  uint64    `json:"facility_id" binding:"required"`
		StartsAt    time.Time `json:"starts_at" binding:"required"`
		EndsAt      time.Time `json:"ends_at" binding:"required"`
	}

	var req RequestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	creatorID, _ := middleware.GetUserID(c)
	event, err := h.eventService.Request(services.RequestEventInput{
		Title:       req.Title,
		Description: req.Description,
		FacilityID:  req.FacilityID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CreatorID:   creatorID,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventDTO(*event))
}

// ListEvents lists events, optionally filtered by facility and status.
func (h *EventHandler) ListEvents(c *gin.Context) {
	var filter repository.EventFilter

	if raw := c.Query("facility_id"); raw != "" {
		facilityID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid facility_id")
			return
		}
		filter.FacilityID = &facilityID
	}
	if raw := c.Query("status"); raw != "" {
		status := models.EventStatus(raw)
		filter.Status = &status
	}

	events, err := h.eventService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": dto.ToEventDTOs(events)})
}

// GetEvent returns one event with its facility and assignees.
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.eventService.Get(id)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// SetEventStatus confirms or cancels an event.
func (h *EventHandler) SetEventStatus(c *gin.Context) {
	type SetEventStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	var req SetEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actorID, _ := middleware.GetUserID(c)
	actorRole, _ := middleware.GetRole(c)
	event, err := h.eventService.SetStatus(id, actorID, actorRole, req.Status)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// AssignFacilitators adds facilitators to an event.
func (h *EventHandler) AssignFacilitators(c *gin.Context) {
	type AssignRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required,min=1"`
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actorID, _ := middleware.GetUserID(c)
	event, err := h.eventService.Assign(id, actorID, req.UserIDs)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

func respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEventWindow),
		errors.Is(err, services.ErrInvalidEventStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrFacilityNotFound),
		errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotFacilityLiaison):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
