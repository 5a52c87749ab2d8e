package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/silverstage/silverstage-api/internal/audit"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
)

var (
	ErrInvalidAttachment = errors.New("attachment metadata is invalid")
)

// AttachmentService records file metadata. The bytes themselves are stored
// elsewhere; this system only tracks what was attached to what.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	audit          *audit.Writer
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(attachmentRepo repository.AttachmentRepository, auditWriter *audit.Writer) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		audit:          auditWriter,
	}
}

// RecordAttachmentInput represents attachment metadata.
type RecordAttachmentInput struct {
	OwnerID     uint64
	EntityType  string
	EntityID    uint64
	Filename    string
	ContentType string
	Size        int64
}

// Record stores attachment metadata against an entity.
func (s *AttachmentService) Record(input RecordAttachmentInput) (*models.Attachment, error) {
	if strings.TrimSpace(input.Filename) == "" || input.EntityType == "" || input.Size < 0 {
		return nil, ErrInvalidAttachment
	}

	attachment := &models.Attachment{
		OwnerID:     input.OwnerID,
		EntityType:  input.EntityType,
		EntityID:    input.EntityID,
		Filename:    input.Filename,
		ContentType: input.ContentType,
		Size:        input.Size,
	}

	if err := s.attachmentRepo.Create(attachment); err != nil {
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	s.audit.Record(input.OwnerID, "attachment.recorded", map[string]any{
		"attachment_id": attachment.ID,
		"entity_type":   input.EntityType,
		"entity_id":     input.EntityID,
	})

	return attachment, nil
}

// ListForEntity lists attachments recorded against an entity.
func (s *AttachmentService) ListForEntity(entityType string, entityID uint64) ([]models.Attachment, error) {
	attachments, err := s.attachmentRepo.ListByEntity(entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}
