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

// MessageHandler coordinates direct message handlers.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// SendMessage delivers a direct message to another staff member.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	type SendMessageRequest struct {
		RecipientID uint64 `json:"recipient_id" binding:"required"`
		Body        string `json:"body" binding:"required"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	senderID, _ := middleware.GetUserID(c)
	message, err := h.messageService.Send(senderID, req.RecipientID, req.Body)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageDTO(*message))
}

// Inbox lists the current user's received messages.
func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	messages, err := h.messageService.Inbox(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	items := make([]dto.MessageDTO, len(messages))
	for i, m := range messages {
		items[i] = dto.ToMessageDTO(m)
	}
	c.JSON(http.StatusOK, gin.H{"messages": items})
}

// MarkMessageRead flips the read flag on a received message.
func (h *MessageHandler) MarkMessageRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	if err := h.messageService.MarkRead(userID, id); err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked read"})
}

func respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRecipientNotFound),
		errors.Is(err, services.ErrMessageNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
