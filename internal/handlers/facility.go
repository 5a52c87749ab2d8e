package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/silverstage/silverstage-api/internal/dto"
	apierrors "github.com/silverstage/silverstage-api/internal/errors"
	"github.com/silverstage/silverstage-api/internal/middleware"
	"github.com/silverstage/silverstage-api/internal/services"
)

// FacilityHandler coordinates facility management handlers.
type FacilityHandler struct {
	facilityService *services.FacilityService
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(facilityService *services.FacilityService) *FacilityHandler {
	return &FacilityHandler{
		facilityService: facilityService,
	}
}

type facilityRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Contact   string  `json:"contact"`
	LiaisonID *uint64 `json:"liaison_id"`
}

// CreateFacility registers a partner care home.
func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	var req facilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actorID, _ := middleware.GetUserID(c)
	facility, err := h.facilityService.Create(services.FacilityInput{
		Name:      req.Name,
		Address:   req.Address,
		Contact:   req.Contact,
		LiaisonID: req.LiaisonID,
	}, actorID)
	if err != nil {
		respondFacilityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFacilityDTO(*facility))
}

// ListFacilities lists all facilities.
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	facilities, err := h.facilityService.List()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	items := make([]dto.FacilityDTO, len(facilities))
	for i, f := range facilities {
		items[i] = dto.ToFacilityDTO(f)
	}
	c.JSON(http.StatusOK, gin.H{"facilities": items})
}

// GetFacility returns one facility.
func (h *FacilityHandler) GetFacility(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid facility ID")
		return
	}

	facility, err := h.facilityService.Get(id)
	if err != nil {
		respondFacilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFacilityDTO(*facility))
}

// UpdateFacility changes a facility's details.
func (h *FacilityHandler) UpdateFacility(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid facility ID")
		return
	}

	var req facilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actorID, _ := middleware.GetUserID(c)
	facility, err := h.facilityService.Update(id, services.FacilityInput{
		Name:      req.Name,
		Address:   req.Address,
		Contact:   req.Contact,
		LiaisonID: req.LiaisonID,
	}, actorID)
	if err != nil {
		respondFacilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFacilityDTO(*facility))
}

func respondFacilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidFacilityName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFacilityNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
