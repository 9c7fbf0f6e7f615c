package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jubbler/portal-service/internal/config"
	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/events"
	"github.com/jubbler/portal-service/internal/repository"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// NotificationService turns domain events into per-user notification
// records. When an agent acts, the affected client is notified; when a
// client acts, every agent is.
type NotificationService struct {
	dispatcher    events.Dispatcher
	notifications repository.NotificationRepository
	users         repository.UserRepository
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, notifications repository.NotificationRepository, users repository.UserRepository, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher:    dispatcher,
		notifications: notifications,
		users:         users,
		logger:        logger,
		cfg:           cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCommentAdded, n.handleCommentAdded)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventChatMessageSent, n.handleChatMessage)
	n.dispatcher.Subscribe(events.EventUserApproved, n.handleUserApproved)
}

// ListForUser returns the user's notifications, newest first as stored.
func (n *NotificationService) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	return n.notifications.ListByUser(ctx, userID)
}

// MarkRead flags one notification as read.
func (n *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := n.notifications.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("notification", map[string]any{"notification_id": notificationID})
		}
		return err
	}
	return nil
}

// MarkAllRead flags every notification of the user as read.
func (n *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return n.notifications.MarkAllRead(ctx, userID)
}

func (n *NotificationService) handleCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCommentAddedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketCommentAdded", zap.String("ticket_id", payload.TicketID), zap.String("comment_id", payload.CommentID))

	notification := domain.Notification{
		Type:        domain.NotificationTicketUpdate,
		Title:       "Nuevo comentario",
		Description: fmt.Sprintf("Nuevo comentario en el ticket #%s: %s", payload.TicketID, payload.ContentPreview),
		TicketID:    &payload.TicketID,
	}
	n.sendEmailNotificationStub(ctx, event)
	if event.Actor.Role == domain.RoleSuperadmin {
		return n.deliver(ctx, event, notification, payload.CreatedBy)
	}
	return n.deliverToAgents(ctx, event, notification)
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketStatusChanged",
		zap.String("ticket_id", payload.TicketID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	n.sendWebhookNotificationStub(ctx, event)

	if event.Actor.UserID == payload.CreatedBy {
		return nil
	}
	notification := domain.Notification{
		Type:        domain.NotificationTicketUpdate,
		Title:       "Actualización de ticket",
		Description: fmt.Sprintf("El ticket #%s cambió de estado a %s", payload.TicketID, payload.NewStatus),
		TicketID:    &payload.TicketID,
	}
	return n.deliver(ctx, event, notification, payload.CreatedBy)
}

func (n *NotificationService) handleChatMessage(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ChatMessageSentPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ChatMessageSent", zap.String("chat_id", payload.ChatID), zap.String("message_id", payload.MessageID))

	notification := domain.Notification{
		Type:        domain.NotificationNewMessage,
		Title:       "Nuevo mensaje",
		Description: fmt.Sprintf("Tienes un nuevo mensaje de %s", event.Actor.Name),
		ChatID:      &payload.ChatID,
	}
	n.sendEmailNotificationStub(ctx, event)
	if event.Actor.Role == domain.RoleSuperadmin {
		return n.deliver(ctx, event, notification, payload.ChatOwner)
	}
	return n.deliverToAgents(ctx, event, notification)
}

func (n *NotificationService) handleUserApproved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserApprovedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("UserApproved", zap.String("user_id", payload.UserID))
	notification := domain.Notification{
		Type:        domain.NotificationUserApproved,
		Title:       "Usuario aprobado",
		Description: "Tu usuario fue aprobado por la administración",
	}
	return n.deliver(ctx, event, notification, payload.UserID)
}

func (n *NotificationService) deliver(ctx context.Context, event events.Event, notification domain.Notification, userID string) error {
	notification.ID = uuid.NewString()
	notification.UserID = userID
	notification.Timestamp = event.Timestamp
	if notification.Timestamp.IsZero() {
		notification.Timestamp = time.Now()
	}
	return n.notifications.Create(ctx, &notification)
}

func (n *NotificationService) deliverToAgents(ctx context.Context, event events.Event, notification domain.Notification) error {
	agents, err := n.users.ListByRole(ctx, domain.RoleSuperadmin)
	if err != nil {
		return err
	}
	for i := range agents {
		if err := n.deliver(ctx, event, notification, agents[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
