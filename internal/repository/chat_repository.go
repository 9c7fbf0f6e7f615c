package repository

import (
	"context"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/persistence"
)

// ChatRepository manages live-chat conversations.
type ChatRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Chat, error)
	ListAll(ctx context.Context) ([]domain.Chat, error)
	Create(ctx context.Context, chat *domain.Chat) error
	Upsert(ctx context.Context, chat *domain.Chat) error
}

type chatRepository struct {
	ds *persistence.Dataset
}

// NewChatRepository builds repository.
func NewChatRepository(ds *persistence.Dataset) ChatRepository {
	return &chatRepository{ds: ds}
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*domain.Chat, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	for i := range r.ds.Chats {
		if r.ds.Chats[i].ID == id {
			return r.ds.Chats[i].Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *chatRepository) ListByUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.Chat, 0)
	for i := range r.ds.Chats {
		if r.ds.Chats[i].UserID == userID {
			result = append(result, *r.ds.Chats[i].Clone())
		}
	}
	return result, nil
}

func (r *chatRepository) ListAll(ctx context.Context) ([]domain.Chat, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.Chat, 0, len(r.ds.Chats))
	for i := range r.ds.Chats {
		result = append(result, *r.ds.Chats[i].Clone())
	}
	return result, nil
}

func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	r.ds.Chats = append(r.ds.Chats, *chat.Clone())
	return nil
}

func (r *chatRepository) Upsert(ctx context.Context, chat *domain.Chat) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	for i := range r.ds.Chats {
		if r.ds.Chats[i].ID == chat.ID {
			r.ds.Chats[i] = *chat.Clone()
			return nil
		}
	}
	r.ds.Chats = append(r.ds.Chats, *chat.Clone())
	return nil
}
