package dto

import (
	"time"

	"github.com/jubbler/portal-service/internal/domain"
)

// StartChatRequest payload.
type StartChatRequest struct {
	Subject string `json:"subject" validate:"required"`
}

// SendChatMessageRequest payload.
type SendChatMessageRequest struct {
	Type     string `json:"type" validate:"omitempty,oneof=TEXT IMAGE VIDEO PDF AUDIO"`
	Content  string `json:"content" validate:"required"`
	FileName string `json:"fileName"`
}

// ChatMessageResponse is one conversation entry on the wire.
type ChatMessageResponse struct {
	ID         string                 `json:"id"`
	ChatID     string                 `json:"chatId"`
	SenderID   string                 `json:"senderId"`
	SenderName string                 `json:"senderName"`
	SenderRole domain.UserRole        `json:"senderRole"`
	Type       domain.ChatMessageType `json:"type"`
	Content    string                 `json:"content"`
	FileURL    string                 `json:"fileUrl,omitempty"`
	FileName   string                 `json:"fileName,omitempty"`
	SentAt     time.Time              `json:"sentAt"`
	Read       bool                   `json:"read"`
}

// ChatResponse carries the conversation with viewer-derived unread count.
type ChatResponse struct {
	ID          string                `json:"id"`
	CompanyID   string                `json:"companyId"`
	CompanyName string                `json:"companyName"`
	UserID      string                `json:"userId"`
	UserName    string                `json:"userName"`
	UserEmail   string                `json:"userEmail"`
	Subject     string                `json:"subject"`
	Status      domain.ChatStatus     `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	ClosedAt    *time.Time            `json:"closedAt,omitempty"`
	UnreadCount int                   `json:"unreadCount"`
	LastMessage *ChatMessageResponse  `json:"lastMessage,omitempty"`
	Messages    []ChatMessageResponse `json:"messages"`
}
