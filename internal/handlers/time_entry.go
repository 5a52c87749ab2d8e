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
	"github.com/silverstage/silverstage-api/internal/services"
)

// TimeEntryHandler coordinates time entry submission and review handlers.
type TimeEntryHandler struct {
	timeEntryService *services.TimeEntryService
}

// NewTimeEntryHandler creates a new TimeEntryHandler.
func NewTimeEntryHandler(timeEntryService *services.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{
		timeEntryService: timeEntryService,
	}
}

// SubmitTimeEntry records a pending time entry for the current user.
func (h *TimeEntryHandler) SubmitTimeEntry(c *gin.Context) {
	type SubmitTimeEntryRequest struct {
		WorkDate    string   `json:"work_date" binding:"required"`
		Hours       *float64 `json:"hours" binding:"required"`
		Description string   `json:"description"`
	}

	var req SubmitTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		apierrors.BadRequest(c, "work_date must be formatted YYYY-MM-DD")
		return
	}

	userID, _ := middleware.GetUserID(c)
	entry, err := h.timeEntryService.Submit(services.SubmitTimeEntryInput{
		UserID:      userID,
		WorkDate:    workDate,
		Hours:       *req.Hours,
		Description: req.Description,
	})
	if err != nil {
		respondTimeEntryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeEntryDTO(*entry))
}

// ListTimeEntries returns the current user's entries.
func (h *TimeEntryHandler) ListTimeEntries(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	entries, err := h.timeEntryService.ListOwn(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"time_entries": dto.ToTimeEntryDTOs(entries)})
}

// ListPendingTimeEntries returns every entry awaiting review.
func (h *TimeEntryHandler) ListPendingTimeEntries(c *gin.Context) {
	entries, err := h.timeEntryService.ListPending()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"time_entries": dto.ToTimeEntryDTOs(entries)})
}

// ApproveTimeEntry approves a pending entry.
func (h *TimeEntryHandler) ApproveTimeEntry(c *gin.Context) {
	h.review(c, true)
}

// RejectTimeEntry rejects a pending entry.
func (h *TimeEntryHandler) RejectTimeEntry(c *gin.Context) {
	h.review(c, false)
}

func (h *TimeEntryHandler) review(c *gin.Context, approve bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid time entry ID")
		return
	}

	reviewerID, _ := middleware.GetUserID(c)
	entry, err := h.timeEntryService.Review(id, reviewerID, approve)
	if err != nil {
		respondTimeEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryDTO(*entry))
}

func respondTimeEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidHours):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTimeEntryNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyReviewed):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
