package domain

import "time"

// TicketType distinguishes incidents from requirements.
type TicketType string

const (
	TicketTypeIncident    TicketType = "INCIDENT"
	TicketTypeRequirement TicketType = "REQUIREMENT"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// TicketLevel grades urgency and impact independently of priority.
type TicketLevel string

const (
	TicketLevelLow    TicketLevel = "LOW"
	TicketLevelMedium TicketLevel = "MEDIUM"
	TicketLevelHigh   TicketLevel = "HIGH"
)

// TicketOrigin records the channel a ticket arrived through.
type TicketOrigin string

const (
	TicketOriginWeb    TicketOrigin = "WEB"
	TicketOriginEmail  TicketOrigin = "EMAIL"
	TicketOriginPhone  TicketOrigin = "PHONE"
	TicketOriginMobile TicketOrigin = "MOBILE"
)

// Ticket is the aggregate for support requests. The ticket exclusively owns
// its comment sequence; insertion order is preserved and is the basis for
// chronological display.
type Ticket struct {
	ID            string
	Type          TicketType
	Title         string
	Description   string
	Status        TicketStatus
	Priority      TicketPriority
	Urgency       TicketLevel
	Impact        TicketLevel
	Origin        TicketOrigin
	CompanyID     string
	CreatedBy     string
	CreatedByName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Comments      []TicketComment
}

// Clone returns a deep copy so callers can mutate without aliasing the
// stored ticket.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	copied := *t
	copied.Comments = make([]TicketComment, len(t.Comments))
	for i := range t.Comments {
		copied.Comments[i] = t.Comments[i].Clone()
	}
	return &copied
}
