package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/events"
	"github.com/jubbler/portal-service/internal/persistence"
	"github.com/jubbler/portal-service/internal/repository"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

func newTicketFixture(t *testing.T, tickets ...domain.Ticket) (*TicketService, repository.TicketRepository) {
	t.Helper()
	ds := persistence.NewDataset()
	ds.Lock()
	ds.Companies = []domain.Company{
		{ID: "1", Name: "TechCorp S.A."},
		{ID: "2", Name: "Innovate Ltd."},
	}
	ds.Tickets = tickets
	ds.TicketSeq = len(tickets)
	ds.Unlock()
	repo := repository.NewTicketRepository(ds)
	companies := repository.NewCompanyRepository(ds)
	return NewTicketService(repo, companies, events.NewInMemoryDispatcher()), repo
}

func clientUser(id, companyID string) *domain.User {
	return &domain.User{
		ID: id, Name: "Cliente " + id, Role: domain.RoleClient,
		Status: domain.UserStatusApproved, CompanyID: companyID,
	}
}

func adminUser() *domain.User {
	return &domain.User{
		ID: "admin1", Name: "Admin Jubbler", Role: domain.RoleSuperadmin,
		Status: domain.UserStatusApproved,
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	svc, repo := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, clientUser("1", "1"), TicketCreateInput{
		Title:       "Pantalla en blanco",
		Description: "La pantalla queda en blanco al guardar",
	})
	require.NoError(t, err)

	assert.Equal(t, "T-001", ticket.ID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketTypeIncident, ticket.Type)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, domain.TicketOriginWeb, ticket.Origin)
	assert.Equal(t, "1", ticket.CompanyID)
	assert.Empty(t, ticket.Comments)

	stored, err := repo.GetByID(ctx, "T-001")
	require.NoError(t, err)
	assert.Equal(t, ticket.Title, stored.Title)

	// IDs keep counting from the stored sequence.
	second, err := svc.CreateTicket(ctx, clientUser("1", "1"), TicketCreateInput{
		Title: "Otro", Description: "Otro detalle",
	})
	require.NoError(t, err)
	assert.Equal(t, "T-002", second.ID)
}

func TestCreateTicketValidation(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ctx := context.Background()

	_, err := svc.CreateTicket(ctx, clientUser("1", "1"), TicketCreateInput{Title: " ", Description: "x"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = svc.CreateTicket(ctx, clientUser("1", "unknown"), TicketCreateInput{Title: "t", Description: "d"})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestGetTicketScoping(t *testing.T) {
	ticket := domain.Ticket{ID: "T-001", Title: "x", Status: domain.TicketStatusOpen, CompanyID: "1", CreatedBy: "1"}
	svc, _ := newTicketFixture(t, ticket)
	ctx := context.Background()

	got, err := svc.GetTicket(ctx, clientUser("1", "1"), "T-001")
	require.NoError(t, err)
	assert.Equal(t, "T-001", got.ID)

	_, err = svc.GetTicket(ctx, clientUser("9", "2"), "T-001")
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, err = svc.GetTicket(ctx, adminUser(), "T-001")
	assert.NoError(t, err)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		from    domain.TicketStatus
		to      domain.TicketStatus
		allowed bool
	}{
		{domain.TicketStatusOpen, domain.TicketStatusInProgress, true},
		{domain.TicketStatusOpen, domain.TicketStatusResolved, true},
		{domain.TicketStatusInProgress, domain.TicketStatusOpen, true},
		{domain.TicketStatusInProgress, domain.TicketStatusClosed, true},
		{domain.TicketStatusResolved, domain.TicketStatusInProgress, true},
		{domain.TicketStatusResolved, domain.TicketStatusClosed, true},
		{domain.TicketStatusResolved, domain.TicketStatusOpen, false},
		{domain.TicketStatusClosed, domain.TicketStatusOpen, false},
		{domain.TicketStatusClosed, domain.TicketStatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			ticket := domain.Ticket{ID: "T-001", Title: "x", Status: tt.from, CompanyID: "1", CreatedBy: "1"}
			svc, repo := newTicketFixture(t, ticket)

			updated, err := svc.UpdateStatus(context.Background(), adminUser(), "T-001", tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
			} else {
				assert.True(t, apperrors.IsCode(err, "CONFLICT"))
				stored, getErr := repo.GetByID(context.Background(), "T-001")
				require.NoError(t, getErr)
				assert.Equal(t, tt.from, stored.Status)
			}
		})
	}
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	ticket := domain.Ticket{ID: "T-001", Title: "x", Status: domain.TicketStatusOpen, CompanyID: "1", CreatedBy: "1"}
	svc, _ := newTicketFixture(t, ticket)

	_, err := svc.UpdateStatus(context.Background(), clientUser("1", "1"), "T-001", domain.TicketStatusInProgress)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestListForClientScopesAndSorts(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	unread := domain.TicketComment{
		ID: "c1", AuthorRole: domain.RoleSuperadmin, Read: false, Body: &domain.NormalBody{},
	}
	tickets := []domain.Ticket{
		{ID: "T-001", CompanyID: "1", CreatedBy: "1", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "T-002", CompanyID: "1", CreatedBy: "1", CreatedAt: base, Comments: []domain.TicketComment{unread}},
		{ID: "T-003", CompanyID: "2", CreatedBy: "3", CreatedAt: base.Add(24 * time.Hour)},
	}
	svc, _ := newTicketFixture(t, tickets...)

	listed, err := svc.ListForClient(context.Background(), clientUser("1", "1"))
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "T-002", listed[0].ID, "unread ticket leads")
	assert.Equal(t, "T-001", listed[1].ID)
}

func TestListForAdminGrouping(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "T-001", Type: domain.TicketTypeIncident, CompanyID: "1", CreatedBy: "1", CreatedByName: "Juan"},
		{ID: "T-002", Type: domain.TicketTypeRequirement, CompanyID: "2", CreatedBy: "3", CreatedByName: "Carlos"},
		{ID: "T-003", Type: domain.TicketTypeIncident, CompanyID: "1", CreatedBy: "1", CreatedByName: "Juan"},
	}
	svc, _ := newTicketFixture(t, tickets...)
	ctx := context.Background()

	flat, err := svc.ListForAdmin(ctx, AdminTicketFilter{})
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Len(t, flat[0].Tickets, 3)

	byCompany, err := svc.ListForAdmin(ctx, AdminTicketFilter{GroupBy: "company"})
	require.NoError(t, err)
	require.Len(t, byCompany, 2)

	byUser, err := svc.ListForAdmin(ctx, AdminTicketFilter{GroupBy: "user"})
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	incidents, err := svc.ListForAdmin(ctx, AdminTicketFilter{Types: []domain.TicketType{domain.TicketTypeIncident}})
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Len(t, incidents[0].Tickets, 2)
}
