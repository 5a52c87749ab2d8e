package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrEmptyMessage      = errors.New("message body cannot be empty")
	ErrMessageNotFound   = errors.New("message not found")
)

// MessageService handles direct messages between staff members.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	notifier    *NotificationService
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, notifier *NotificationService) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Send delivers a message and notifies the recipient.
func (s *MessageService) Send(senderID, recipientID uint64, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}

	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sender: %w", err)
	}

	if _, err := s.userRepo.FindByID(recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.notifier.Notify(recipientID, models.NotificationNewMessage,
		fmt.Sprintf("New message from %s", sender.Name),
		truncate(body, 120),
		"/messages",
		map[string]any{"message_id": message.ID})

	return message, nil
}

// Inbox lists the user's received messages, newest first.
func (s *MessageService) Inbox(userID uint64) ([]models.Message, error) {
	messages, err := s.messageRepo.ListByRecipient(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// MarkRead flips the read flag on a received message.
func (s *MessageService) MarkRead(userID, id uint64) error {
	if err := s.messageRepo.MarkRead(userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
