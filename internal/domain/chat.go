package domain

import "time"

// ChatStatus enumerates conversation states.
type ChatStatus string

const (
	ChatStatusActive              ChatStatus = "ACTIVE"
	ChatStatusClosed              ChatStatus = "CLOSED"
	ChatStatusPendingOutsideHours ChatStatus = "PENDING_OUTSIDE_HOURS"
)

// ChatMessageType differentiates text from attachment placeholders.
type ChatMessageType string

const (
	ChatMessageText  ChatMessageType = "TEXT"
	ChatMessageImage ChatMessageType = "IMAGE"
	ChatMessageVideo ChatMessageType = "VIDEO"
	ChatMessagePDF   ChatMessageType = "PDF"
	ChatMessageAudio ChatMessageType = "AUDIO"
)

// ChatMessage is one append-only entry in a conversation. File fields are
// client-side placeholders; no upload handling exists.
type ChatMessage struct {
	ID         string
	ChatID     string
	SenderID   string
	SenderName string
	SenderRole UserRole
	Type       ChatMessageType
	Content    string
	FileURL    string
	FileName   string
	SentAt     time.Time
	Read       bool
}

// Chat is a live support conversation between a client user and the agents.
type Chat struct {
	ID           string
	CompanyID    string
	CompanyName  string
	UserID       string
	UserName     string
	UserEmail    string
	Subject      string
	Status       ChatStatus
	Messages     []ChatMessage
	CreatedAt    time.Time
	ClosedAt     *time.Time
}

// LastMessage returns the newest message, or nil for an empty chat.
func (c *Chat) LastMessage() *ChatMessage {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// UnreadCount counts messages sent by the opposite role that the viewer has
// not read yet.
func (c *Chat) UnreadCount(viewer UserRole) int {
	count := 0
	for i := range c.Messages {
		if !c.Messages[i].Read && c.Messages[i].SenderRole != viewer {
			count++
		}
	}
	return count
}

// Clone deep-copies the chat and its message list.
func (c *Chat) Clone() *Chat {
	if c == nil {
		return nil
	}
	copied := *c
	copied.Messages = make([]ChatMessage, len(c.Messages))
	copy(copied.Messages, c.Messages)
	if c.ClosedAt != nil {
		closedAt := *c.ClosedAt
		copied.ClosedAt = &closedAt
	}
	return &copied
}
