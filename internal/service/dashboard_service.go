package service

import (
	"context"
	"time"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/repository"
)

// DashboardService computes the agent dashboard projections over the live
// collections. Everything is recomputed per request.
type DashboardService struct {
	tickets   repository.TicketRepository
	chats     repository.ChatRepository
	companies repository.CompanyRepository
	now       func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(tickets repository.TicketRepository, chats repository.ChatRepository, companies repository.CompanyRepository) *DashboardService {
	return &DashboardService{tickets: tickets, chats: chats, companies: companies, now: time.Now}
}

// CompanyTicketStats is the per-company incident/requirement split.
type CompanyTicketStats struct {
	CompanyID    string
	CompanyName  string
	Incidents    int
	Requirements int
}

// DayCount is one point of the created-tickets time series.
type DayCount struct {
	Day     string
	Date    time.Time
	Created int
}

// DashboardStats aggregates the admin landing view.
type DashboardStats struct {
	ActiveChats      int
	OpenIncidents    int
	OpenRequirements int
	ByCompany        []CompanyTicketStats
	LastSevenDays    []DayCount
}

// Stats computes the dashboard in one pass over tickets and chats.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{})
	if err != nil {
		return nil, err
	}
	chats, err := s.chats.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.companies.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	for i := range chats {
		if chats[i].Status == domain.ChatStatusActive {
			stats.ActiveChats++
		}
	}

	perCompany := make(map[string]*CompanyTicketStats, len(companies))
	for i := range companies {
		perCompany[companies[i].ID] = &CompanyTicketStats{
			CompanyID:   companies[i].ID,
			CompanyName: companies[i].Name,
		}
	}
	for i := range tickets {
		ticket := &tickets[i]
		open := ticket.Status != domain.TicketStatusClosed
		switch ticket.Type {
		case domain.TicketTypeIncident:
			if open {
				stats.OpenIncidents++
			}
			if entry, ok := perCompany[ticket.CompanyID]; ok {
				entry.Incidents++
			}
		case domain.TicketTypeRequirement:
			if open {
				stats.OpenRequirements++
			}
			if entry, ok := perCompany[ticket.CompanyID]; ok {
				entry.Requirements++
			}
		}
	}
	for i := range companies {
		entry := perCompany[companies[i].ID]
		if entry.Incidents > 0 || entry.Requirements > 0 {
			stats.ByCompany = append(stats.ByCompany, *entry)
		}
	}

	stats.LastSevenDays = s.lastSevenDays(tickets)
	return stats, nil
}

func (s *DashboardService) lastSevenDays(tickets []domain.Ticket) []DayCount {
	today := s.now().Truncate(24 * time.Hour)
	series := make([]DayCount, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		point := DayCount{Day: day.Weekday().String()[:3], Date: day}
		for i := range tickets {
			created := tickets[i].CreatedAt.Truncate(24 * time.Hour)
			if created.Equal(day) {
				point.Created++
			}
		}
		series = append(series, point)
	}
	return series
}
