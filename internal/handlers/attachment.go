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

// AttachmentHandler coordinates attachment metadata handlers.
type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// RecordAttachment stores file metadata against an entity.
func (h *AttachmentHandler) RecordAttachment(c *gin.Context) {
	type RecordAttachmentRequest struct {
		EntityType  string `json:"entity_type" binding:"required"`
		EntityID    uint64 `json:"entity_id" binding:"required"`
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type"`
		Size        int64  `json:"size"`
	}

	var req RecordAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ownerID, _ := middleware.GetUserID(c)
	attachment, err := h.attachmentService.Record(services.RecordAttachmentInput{
		OwnerID:     ownerID,
		EntityType:  req.EntityType,
		EntityID:    req.EntityID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Size:        req.Size,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidAttachment) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentDTO(*attachment))
}

// ListAttachments lists attachments recorded against an entity.
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	entityType := c.Query("entity_type")
	if entityType == "" {
		apierrors.BadRequest(c, "entity_type is required")
		return
	}
	entityID, err := strconv.ParseUint(c.Query("entity_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid entity_id")
		return
	}

	attachments, err := h.attachmentService.ListForEntity(entityType, entityID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	items := make([]dto.AttachmentDTO, len(attachments))
	for i, a := range attachments {
		items[i] = dto.ToAttachmentDTO(a)
	}
	c.JSON(http.StatusOK, gin.H{"attachments": items})
}
