package repository

import (
	"context"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/persistence"
)

// NotificationRepository manages per-user notifications.
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	Create(ctx context.Context, notification *domain.Notification) error
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationRepository struct {
	ds *persistence.Dataset
}

// NewNotificationRepository builds repository.
func NewNotificationRepository(ds *persistence.Dataset) NotificationRepository {
	return &notificationRepository{ds: ds}
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.Notification, 0)
	for i := range r.ds.Notifications {
		if r.ds.Notifications[i].UserID == userID {
			result = append(result, r.ds.Notifications[i])
		}
	}
	return result, nil
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	r.ds.Notifications = append(r.ds.Notifications, *notification)
	return nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	for i := range r.ds.Notifications {
		if r.ds.Notifications[i].ID == notificationID && r.ds.Notifications[i].UserID == userID {
			r.ds.Notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	for i := range r.ds.Notifications {
		if r.ds.Notifications[i].UserID == userID {
			r.ds.Notifications[i].Read = true
		}
	}
	return nil
}
