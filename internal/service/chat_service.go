package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jubbler/portal-service/internal/config"
	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/events"
	"github.com/jubbler/portal-service/internal/repository"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// ChatService manages live-support conversations: starting chats, appending
// messages and read-state. Messages are append-only and never edited.
type ChatService struct {
	chats      repository.ChatRepository
	companies  repository.CompanyRepository
	dispatcher events.Dispatcher
	hours      config.ChatConfig
	now        func() time.Time
}

// NewChatService constructs the service.
func NewChatService(chats repository.ChatRepository, companies repository.CompanyRepository, dispatcher events.Dispatcher, hours config.ChatConfig) *ChatService {
	return &ChatService{
		chats:      chats,
		companies:  companies,
		dispatcher: dispatcher,
		hours:      hours,
		now:        time.Now,
	}
}

// WithinBusinessHours reports whether the support desk is staffed at t:
// weekdays between the configured open and close hours.
func (s *ChatService) WithinBusinessHours(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	hour := t.Hour()
	return hour >= s.hours.OpenHour && hour < s.hours.CloseHour
}

// StartChat opens a conversation for the client. Outside business hours the
// chat is created in PENDING_OUTSIDE_HOURS so agents pick it up next morning.
func (s *ChatService) StartChat(ctx context.Context, user *domain.User, subject string) (*domain.Chat, error) {
	company, err := s.companies.GetByID(ctx, user.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("company", map[string]any{"company_id": user.CompanyID})
		}
		return nil, err
	}

	now := s.now()
	status := domain.ChatStatusActive
	if !s.WithinBusinessHours(now) {
		status = domain.ChatStatusPendingOutsideHours
	}
	chat := &domain.Chat{
		ID:          uuid.NewString(),
		CompanyID:   company.ID,
		CompanyName: company.Name,
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		Subject:     strings.TrimSpace(subject),
		Status:      status,
		CreatedAt:   now,
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// SendMessage appends a message to the chat. Attachment kinds carry metadata
// placeholders only.
func (s *ChatService) SendMessage(ctx context.Context, chatID string, sender *domain.User, messageType domain.ChatMessageType, content, fileName string) (*domain.Chat, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, apperrors.NewEmptyContent()
	}

	chat, err := s.loadChatFor(ctx, chatID, sender)
	if err != nil {
		return nil, err
	}
	if chat.Status == domain.ChatStatusClosed {
		return nil, apperrors.NewConflict("chat is closed", map[string]any{"chat_id": chat.ID})
	}
	if messageType == "" {
		messageType = domain.ChatMessageText
	}

	message := domain.ChatMessage{
		ID:         uuid.NewString(),
		ChatID:     chat.ID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		SenderRole: sender.Role,
		Type:       messageType,
		Content:    trimmed,
		FileName:   fileName,
		SentAt:     s.now(),
		Read:       false,
	}
	chat.Messages = append(chat.Messages, message)
	// An agent reply wakes an after-hours chat.
	if chat.Status == domain.ChatStatusPendingOutsideHours && sender.Role == domain.RoleSuperadmin {
		chat.Status = domain.ChatStatusActive
	}

	if err := s.chats.Upsert(ctx, chat); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:  events.EventChatMessageSent,
		Actor: events.Actor{UserID: sender.ID, Name: sender.Name, Role: sender.Role},
		Payload: events.ChatMessageSentPayload{
			ChatID:    chat.ID,
			MessageID: message.ID,
			ChatOwner: chat.UserID,
			Preview:   stringPreview(trimmed, 120),
		},
	})
	return chat, nil
}

// GetChat fetches a conversation enforcing the viewer's scope.
func (s *ChatService) GetChat(ctx context.Context, chatID string, viewer *domain.User) (*domain.Chat, error) {
	return s.loadChatFor(ctx, chatID, viewer)
}

// MarkMessagesRead flags every opposite-role message in the chat as read for
// the viewer.
func (s *ChatService) MarkMessagesRead(ctx context.Context, chatID string, viewer *domain.User) (*domain.Chat, error) {
	chat, err := s.loadChatFor(ctx, chatID, viewer)
	if err != nil {
		return nil, err
	}
	changed := false
	for i := range chat.Messages {
		if !chat.Messages[i].Read && chat.Messages[i].SenderRole != viewer.Role {
			chat.Messages[i].Read = true
			changed = true
		}
	}
	if changed {
		if err := s.chats.Upsert(ctx, chat); err != nil {
			return nil, err
		}
	}
	return chat, nil
}

// CloseChat ends a conversation; only agents close chats.
func (s *ChatService) CloseChat(ctx context.Context, agent *domain.User, chatID string) (*domain.Chat, error) {
	if agent.Role != domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("administrator account required")
	}
	chat, err := s.loadChatFor(ctx, chatID, agent)
	if err != nil {
		return nil, err
	}
	if chat.Status == domain.ChatStatusClosed {
		return chat, nil
	}
	closedAt := s.now()
	chat.Status = domain.ChatStatusClosed
	chat.ClosedAt = &closedAt
	if err := s.chats.Upsert(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// ListForUser returns the client's own chats, most recent activity first.
func (s *ChatService) ListForUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	chats, err := s.chats.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortChatsByActivity(chats)
	return chats, nil
}

// ListForAdmin returns all chats, most recent activity first.
func (s *ChatService) ListForAdmin(ctx context.Context) ([]domain.Chat, error) {
	chats, err := s.chats.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sortChatsByActivity(chats)
	return chats, nil
}

func (s *ChatService) loadChatFor(ctx context.Context, chatID string, viewer *domain.User) (*domain.Chat, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("chat", map[string]any{"chat_id": chatID})
		}
		return nil, err
	}
	if viewer.Role != domain.RoleSuperadmin && chat.UserID != viewer.ID {
		return nil, apperrors.NewForbidden("chat belongs to another user")
	}
	return chat, nil
}

func sortChatsByActivity(chats []domain.Chat) {
	sort.SliceStable(chats, func(i, j int) bool {
		return lastActivity(&chats[i]).After(lastActivity(&chats[j]))
	})
}

func lastActivity(chat *domain.Chat) time.Time {
	if last := chat.LastMessage(); last != nil {
		return last.SentAt
	}
	return chat.CreatedAt
}

func (s *ChatService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
