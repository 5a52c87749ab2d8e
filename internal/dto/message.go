package dto

import (
	"time"

	"github.com/silverstage/silverstage-api/internal/models"
)

// MessageDTO represents a direct message in API responses
type MessageDTO struct {
	ID          uint64    `json:"id"`
	SenderID    uint64    `json:"sender_id"`
	RecipientID uint64    `json:"recipient_id"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	Sender      *UserDTO  `json:"sender,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkSessionDTO represents a check-in session in API responses
type WorkSessionDTO struct {
	ID        uint64     `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Note      string     `json:"note,omitempty"`
}

// AttachmentDTO represents file metadata in API responses
type AttachmentDTO struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner_id"`
	EntityType  string    `json:"entity_type"`
	EntityID    uint64    `json:"entity_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(m models.Message) MessageDTO {
	dto := MessageDTO{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
	if m.Sender.ID != 0 {
		sender := ToUserDTO(m.Sender)
		dto.Sender = &sender
	}
	return dto
}

// ToWorkSessionDTO converts a WorkSession model to WorkSessionDTO
func ToWorkSessionDTO(s models.WorkSession) WorkSessionDTO {
	return WorkSessionDTO{
		ID:        s.ID,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		Note:      s.Note,
	}
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO
func ToAttachmentDTO(a models.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		EntityType:  a.EntityType,
		EntityID:    a.EntityID,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Size:        a.Size,
		CreatedAt:   a.CreatedAt,
	}
}
