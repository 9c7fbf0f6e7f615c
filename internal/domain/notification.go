package domain

import "time"

// NotificationType enumerates the portal's notification kinds.
type NotificationType string

const (
	NotificationNewMessage    NotificationType = "NEW_MESSAGE"
	NotificationTicketUpdate  NotificationType = "TICKET_UPDATE"
	NotificationProjectUpdate NotificationType = "PROJECT_UPDATE"
	NotificationUserApproved  NotificationType = "USER_APPROVED"
)

// Notification is a per-user alert surfaced in the notifications view.
type Notification struct {
	ID          string
	UserID      string
	Type        NotificationType
	Title       string
	Description string
	Timestamp   time.Time
	Read        bool
	ChatID      *string
	TicketID    *string
	ProjectID   *string
}
