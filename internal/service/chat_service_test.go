package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jubbler/portal-service/internal/config"
	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/events"
	"github.com/jubbler/portal-service/internal/persistence"
	"github.com/jubbler/portal-service/internal/repository"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// Fixed instants around the 09-18 weekday support window.
var (
	mondayMorning  = time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	mondayNight    = time.Date(2025, 1, 6, 22, 0, 0, 0, time.UTC)
	saturdayMidday = time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)
)

func newChatFixture(t *testing.T, now time.Time, chats ...domain.Chat) *ChatService {
	t.Helper()
	ds := persistence.NewDataset()
	ds.Lock()
	ds.Companies = []domain.Company{{ID: "1", Name: "TechCorp S.A."}}
	ds.Chats = chats
	ds.Unlock()
	svc := NewChatService(repository.NewChatRepository(ds), repository.NewCompanyRepository(ds),
		events.NewInMemoryDispatcher(), config.ChatConfig{OpenHour: 9, CloseHour: 18})
	svc.now = func() time.Time { return now }
	return svc
}

func TestWithinBusinessHours(t *testing.T) {
	svc := newChatFixture(t, mondayMorning)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday morning", mondayMorning, true},
		{"monday at open", time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), true},
		{"monday at close", time.Date(2025, 1, 6, 18, 0, 0, 0, time.UTC), false},
		{"monday night", mondayNight, false},
		{"saturday", saturdayMidday, false},
		{"sunday", time.Date(2025, 1, 5, 11, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.WithinBusinessHours(tt.at))
		})
	}
}

func TestStartChatDuringHours(t *testing.T) {
	svc := newChatFixture(t, mondayMorning)

	chat, err := svc.StartChat(context.Background(), clientUser("1", "1"), "Consulta")
	require.NoError(t, err)
	assert.Equal(t, domain.ChatStatusActive, chat.Status)
	assert.Equal(t, "TechCorp S.A.", chat.CompanyName)
}

func TestStartChatOutsideHours(t *testing.T) {
	for _, now := range []time.Time{mondayNight, saturdayMidday} {
		svc := newChatFixture(t, now)
		chat, err := svc.StartChat(context.Background(), clientUser("1", "1"), "Consulta")
		require.NoError(t, err)
		assert.Equal(t, domain.ChatStatusPendingOutsideHours, chat.Status)
	}
}

func activeChat(id, userID string) domain.Chat {
	return domain.Chat{
		ID: id, CompanyID: "1", CompanyName: "TechCorp S.A.",
		UserID: userID, UserName: "Juan Pérez", Subject: "Consulta",
		Status: domain.ChatStatusActive, CreatedAt: mondayMorning,
	}
}

func TestSendMessage(t *testing.T) {
	svc := newChatFixture(t, mondayMorning, activeChat("chat-1", "1"))
	ctx := context.Background()

	chat, err := svc.SendMessage(ctx, "chat-1", clientUser("1", "1"), "", "Hola", "")
	require.NoError(t, err)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, domain.ChatMessageText, chat.Messages[0].Type)
	assert.False(t, chat.Messages[0].Read)
	assert.Equal(t, 1, chat.UnreadCount(domain.RoleSuperadmin))
	assert.Equal(t, 0, chat.UnreadCount(domain.RoleClient))

	_, err = svc.SendMessage(ctx, "chat-1", clientUser("1", "1"), "", "  ", "")
	assert.True(t, apperrors.IsCode(err, "EMPTY_CONTENT"))
}

func TestSendMessageScoping(t *testing.T) {
	svc := newChatFixture(t, mondayMorning, activeChat("chat-1", "1"))

	_, err := svc.SendMessage(context.Background(), "chat-1", clientUser("9", "1"), "", "Hola", "")
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, err = svc.SendMessage(context.Background(), "chat-1", adminUser(), "", "Hola", "")
	assert.NoError(t, err)
}

func TestAgentReplyWakesPendingChat(t *testing.T) {
	pending := activeChat("chat-1", "1")
	pending.Status = domain.ChatStatusPendingOutsideHours
	svc := newChatFixture(t, mondayMorning, pending)

	chat, err := svc.SendMessage(context.Background(), "chat-1", adminUser(), "", "Buen día", "")
	require.NoError(t, err)
	assert.Equal(t, domain.ChatStatusActive, chat.Status)
}

func TestClientMessageKeepsPendingChat(t *testing.T) {
	pending := activeChat("chat-1", "1")
	pending.Status = domain.ChatStatusPendingOutsideHours
	svc := newChatFixture(t, mondayNight, pending)

	chat, err := svc.SendMessage(context.Background(), "chat-1", clientUser("1", "1"), "", "¿Hay alguien?", "")
	require.NoError(t, err)
	assert.Equal(t, domain.ChatStatusPendingOutsideHours, chat.Status)
}

func TestCloseChat(t *testing.T) {
	svc := newChatFixture(t, mondayMorning, activeChat("chat-1", "1"))
	ctx := context.Background()

	_, err := svc.CloseChat(ctx, clientUser("1", "1"), "chat-1")
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	chat, err := svc.CloseChat(ctx, adminUser(), "chat-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ChatStatusClosed, chat.Status)
	require.NotNil(t, chat.ClosedAt)

	// Closing again is a no-op.
	chat, err = svc.CloseChat(ctx, adminUser(), "chat-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ChatStatusClosed, chat.Status)

	// No one writes to a closed chat.
	_, err = svc.SendMessage(ctx, "chat-1", clientUser("1", "1"), "", "Hola", "")
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestMarkMessagesRead(t *testing.T) {
	chat := activeChat("chat-1", "1")
	chat.Messages = []domain.ChatMessage{
		{ID: "m1", ChatID: "chat-1", SenderID: "admin1", SenderRole: domain.RoleSuperadmin, Content: "Hola", SentAt: mondayMorning, Read: false},
		{ID: "m2", ChatID: "chat-1", SenderID: "1", SenderRole: domain.RoleClient, Content: "Buenas", SentAt: mondayMorning, Read: false},
	}
	svc := newChatFixture(t, mondayMorning, chat)

	updated, err := svc.MarkMessagesRead(context.Background(), "chat-1", clientUser("1", "1"))
	require.NoError(t, err)
	assert.Equal(t, 0, updated.UnreadCount(domain.RoleClient))
	assert.Equal(t, 1, updated.UnreadCount(domain.RoleSuperadmin))
}

func TestListChatsOrderedByActivity(t *testing.T) {
	older := activeChat("chat-1", "1")
	older.Messages = []domain.ChatMessage{{ID: "m1", SentAt: mondayMorning}}
	newer := activeChat("chat-2", "1")
	newer.CreatedAt = mondayMorning.Add(-time.Hour)
	newer.Messages = []domain.ChatMessage{{ID: "m2", SentAt: mondayMorning.Add(2 * time.Hour)}}
	svc := newChatFixture(t, mondayMorning, older, newer)

	chats, err := svc.ListForUser(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "chat-2", chats[0].ID)
}
