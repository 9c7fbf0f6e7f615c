package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/events"
	"github.com/jubbler/portal-service/internal/repository"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// TicketService coordinates ticket workflows around the comment engine:
// creation, role-scoped listing and admin status management.
type TicketService struct {
	tickets    repository.TicketRepository
	companies  repository.CompanyRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, companies repository.CompanyRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, companies: companies, dispatcher: dispatcher}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Type        domain.TicketType
	Title       string
	Description string
	Priority    domain.TicketPriority
	Urgency     domain.TicketLevel
	Impact      domain.TicketLevel
	Origin      domain.TicketOrigin
}

// AdminTicketFilter describes agent-side listing filters.
type AdminTicketFilter struct {
	CompanyID *string
	CreatedBy *string
	Statuses  []domain.TicketStatus
	Types     []domain.TicketType
	GroupBy   string // "", "company" or "user"
}

// TicketGroup is one bucket of an admin listing grouped by company or user.
type TicketGroup struct {
	Key     string
	Tickets []domain.Ticket
}

// CreateTicket registers a client ticket in OPEN state.
func (s *TicketService) CreateTicket(ctx context.Context, creator *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if _, err := s.companies.GetByID(ctx, creator.CompanyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("company", map[string]any{"company_id": creator.CompanyID})
		}
		return nil, err
	}

	ticket := &domain.Ticket{
		Type:          input.Type,
		Title:         title,
		Description:   description,
		Status:        domain.TicketStatusOpen,
		Priority:      input.Priority,
		Urgency:       input.Urgency,
		Impact:        input.Impact,
		Origin:        input.Origin,
		CompanyID:     creator.CompanyID,
		CreatedBy:     creator.ID,
		CreatedByName: creator.Name,
	}
	if ticket.Type == "" {
		ticket.Type = domain.TicketTypeIncident
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if ticket.Urgency == "" {
		ticket.Urgency = domain.TicketLevelMedium
	}
	if ticket.Impact == "" {
		ticket.Impact = domain.TicketLevelMedium
	}
	if ticket.Origin == "" {
		ticket.Origin = domain.TicketOriginWeb
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:  events.EventTicketCreated,
		Actor: events.Actor{UserID: creator.ID, Name: creator.Name, Role: creator.Role},
		Payload: events.TicketCreatedPayload{
			TicketID:  ticket.ID,
			CompanyID: ticket.CompanyID,
			Type:      ticket.Type,
			Priority:  ticket.Priority,
			Title:     ticket.Title,
		},
	})
	return ticket, nil
}

// ListForClient returns the company's tickets in the client's list order:
// unread-first, then newest-first.
func (s *TicketService) ListForClient(ctx context.Context, viewer *domain.User) ([]domain.Ticket, error) {
	companyID := viewer.CompanyID
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{CompanyID: &companyID})
	if err != nil {
		return nil, err
	}
	return domain.SortTickets(tickets, viewer.Role), nil
}

// ListForAdmin returns all tickets, filtered and optionally grouped, each
// group in the agent's list order.
func (s *TicketService) ListForAdmin(ctx context.Context, filter AdminTicketFilter) ([]TicketGroup, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		CompanyID: filter.CompanyID,
		CreatedBy: filter.CreatedBy,
		Statuses:  filter.Statuses,
		Types:     filter.Types,
	})
	if err != nil {
		return nil, err
	}
	sorted := domain.SortTickets(tickets, domain.RoleSuperadmin)

	switch filter.GroupBy {
	case "company":
		return s.groupTickets(ctx, sorted, func(t *domain.Ticket) string {
			company, err := s.companies.GetByID(ctx, t.CompanyID)
			if err != nil {
				return t.CompanyID
			}
			return company.Name
		}), nil
	case "user":
		return s.groupTickets(ctx, sorted, func(t *domain.Ticket) string {
			return t.CreatedByName
		}), nil
	default:
		return []TicketGroup{{Key: "all", Tickets: sorted}}, nil
	}
}

// GetTicket fetches a ticket enforcing the viewer's scope: clients see only
// their own company's tickets, agents see everything.
func (s *TicketService) GetTicket(ctx context.Context, viewer *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	if viewer.Role != domain.RoleSuperadmin && ticket.CompanyID != viewer.CompanyID {
		return nil, apperrors.NewForbidden("ticket belongs to another company")
	}
	return ticket, nil
}

// Agent-driven transitions. Approval-driven resolution bypasses this map
// inside the comment engine.
var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusInProgress: {domain.TicketStatusOpen, domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusResolved:   {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// UpdateStatus moves a ticket between lifecycle states by agent action.
func (s *TicketService) UpdateStatus(ctx context.Context, agent *domain.User, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if agent == nil || agent.Role != domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("administrator account required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	if !isValidTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewConflict("invalid status transition",
			map[string]any{"from": string(ticket.Status), "to": string(newStatus)})
	}
	oldStatus := ticket.Status
	ticket.Status = newStatus
	if err := s.tickets.Upsert(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:  events.EventTicketStatusChanged,
		Actor: events.Actor{UserID: agent.ID, Name: agent.Name, Role: agent.Role},
		Payload: events.TicketStatusChangedPayload{
			TicketID:  ticket.ID,
			CreatedBy: ticket.CreatedBy,
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

func (s *TicketService) groupTickets(ctx context.Context, tickets []domain.Ticket, keyFn func(*domain.Ticket) string) []TicketGroup {
	order := make([]string, 0)
	buckets := make(map[string][]domain.Ticket)
	for i := range tickets {
		key := keyFn(&tickets[i])
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], tickets[i])
	}
	groups := make([]TicketGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, TicketGroup{Key: key, Tickets: buckets[key]})
	}
	return groups
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
