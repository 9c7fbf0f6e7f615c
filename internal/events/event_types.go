package events

import (
	"time"

	"github.com/jubbler/portal-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketCommentAdded  EventType = "ticket_comment_added"
	EventChatMessageSent     EventType = "chat_message_sent"
	EventUserApproved        EventType = "user_approved"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Name   string          `json:"name,omitempty"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID  string                `json:"ticket_id"`
	CompanyID string                `json:"company_id"`
	Type      domain.TicketType     `json:"ticket_type"`
	Priority  domain.TicketPriority `json:"priority"`
	Title     string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	CreatedBy string              `json:"created_by"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	TicketID       string             `json:"ticket_id"`
	TicketTitle    string             `json:"ticket_title"`
	CreatedBy      string             `json:"created_by"`
	CommentID      string             `json:"comment_id"`
	CommentType    domain.CommentType `json:"comment_type"`
	ContentPreview string             `json:"content_preview"`
}

// ChatMessageSentPayload payload.
type ChatMessageSentPayload struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	ChatOwner string `json:"chat_owner"`
	Preview   string `json:"preview"`
}

// UserApprovedPayload payload.
type UserApprovedPayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
