package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/persistence"
)

// TicketFilter narrows ticket listings.
type TicketFilter struct {
	CompanyID *string
	CreatedBy *string
	Statuses  []domain.TicketStatus
	Types     []domain.TicketType
}

// TicketRepository manages the ticket collection. GetByID returns a deep
// copy, so a caller can mutate freely and nothing becomes visible until
// Upsert; that is what makes engine operations all-or-nothing.
type TicketRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Create(ctx context.Context, ticket *domain.Ticket) error
	Upsert(ctx context.Context, ticket *domain.Ticket) error
}

type ticketRepository struct {
	ds *persistence.Dataset
}

// NewTicketRepository builds repository.
func NewTicketRepository(ds *persistence.Dataset) TicketRepository {
	return &ticketRepository{ds: ds}
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	for i := range r.ds.Tickets {
		if r.ds.Tickets[i].ID == id {
			return r.ds.Tickets[i].Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.Ticket, 0, len(r.ds.Tickets))
	for i := range r.ds.Tickets {
		ticket := &r.ds.Tickets[i]
		if filter.CompanyID != nil && ticket.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.CreatedBy != nil && ticket.CreatedBy != *filter.CreatedBy {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
			continue
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, ticket.Type) {
			continue
		}
		result = append(result, *ticket.Clone())
	}
	return result, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	if ticket.ID == "" {
		r.ds.TicketSeq++
		ticket.ID = fmt.Sprintf("T-%03d", r.ds.TicketSeq)
	}
	now := time.Now()
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = now
	}
	ticket.UpdatedAt = ticket.CreatedAt
	r.ds.Tickets = append(r.ds.Tickets, *ticket.Clone())
	return nil
}

func (r *ticketRepository) Upsert(ctx context.Context, ticket *domain.Ticket) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	ticket.UpdatedAt = time.Now()
	for i := range r.ds.Tickets {
		if r.ds.Tickets[i].ID == ticket.ID {
			r.ds.Tickets[i] = *ticket.Clone()
			return nil
		}
	}
	r.ds.Tickets = append(r.ds.Tickets, *ticket.Clone())
	return nil
}

func containsStatus(haystack []domain.TicketStatus, needle domain.TicketStatus) bool {
	for _, status := range haystack {
		if status == needle {
			return true
		}
	}
	return false
}

func containsType(haystack []domain.TicketType, needle domain.TicketType) bool {
	for _, t := range haystack {
		if t == needle {
			return true
		}
	}
	return false
}
