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

var (
	clientAuthor = CommentAuthor{ID: "1", Name: "Juan Pérez", Role: domain.RoleClient}
	agentAuthor  = CommentAuthor{ID: "admin1", Name: "Admin Jubbler", Role: domain.RoleSuperadmin}
)

func newCommentFixture(t *testing.T, tickets ...domain.Ticket) (*CommentService, repository.TicketRepository) {
	t.Helper()
	ds := persistence.NewDataset()
	ds.Lock()
	ds.Tickets = tickets
	ds.TicketSeq = len(tickets)
	ds.Unlock()
	repo := repository.NewTicketRepository(ds)
	return NewCommentService(repo, events.NewInMemoryDispatcher()), repo
}

func openTicket(id string, comments ...domain.TicketComment) domain.Ticket {
	return domain.Ticket{
		ID:        id,
		Type:      domain.TicketTypeIncident,
		Title:     "Error en facturación",
		Status:    domain.TicketStatusOpen,
		CompanyID: "1",
		CreatedBy: "1",
		CreatedAt: time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC),
		Comments:  comments,
	}
}

func TestAddCommentRejectsBlankContent(t *testing.T) {
	svc, _ := newCommentFixture(t, openTicket("T-001"))

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.AddComment(context.Background(), "T-001", clientAuthor, content, domain.CommentNormal, nil)
		assert.True(t, apperrors.IsCode(err, "EMPTY_CONTENT"), "content %q", content)
	}
}

func TestAddCommentRoleGating(t *testing.T) {
	tests := []struct {
		name        string
		author      CommentAuthor
		commentType domain.CommentType
		allowed     bool
	}{
		{"client normal", clientAuthor, domain.CommentNormal, true},
		{"client info request", clientAuthor, domain.CommentInfoRequest, false},
		{"client approval request", clientAuthor, domain.CommentApprovalRequest, false},
		{"agent normal", agentAuthor, domain.CommentNormal, true},
		{"agent info request", agentAuthor, domain.CommentInfoRequest, true},
		{"agent info response", agentAuthor, domain.CommentInfoResponse, false},
		{"agent approval decision", agentAuthor, domain.CommentApprovalDecision, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newCommentFixture(t, openTicket("T-001"))
			_, err := svc.AddComment(context.Background(), "T-001", tt.author, "contenido", tt.commentType, nil)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED_COMMENT_TYPE"))
			}
		})
	}
}

func TestAddCommentTicketNotFound(t *testing.T) {
	svc, _ := newCommentFixture(t)
	_, err := svc.AddComment(context.Background(), "T-404", clientAuthor, "hola", domain.CommentNormal, nil)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestInfoRequestResponseCycle(t *testing.T) {
	svc, repo := newCommentFixture(t, openTicket("T-001"))
	ctx := context.Background()

	ticket, err := svc.AddComment(ctx, "T-001", agentAuthor, "Necesitamos una captura", domain.CommentInfoRequest, nil)
	require.NoError(t, err)
	assert.True(t, domain.ActionRequired(ticket.Comments))
	requestID := ticket.Comments[0].ID

	ticket, err = svc.AddComment(ctx, "T-001", clientAuthor, "Adjunto la captura", domain.CommentInfoResponse,
		&CommentLinkage{RespondedToCommentID: requestID})
	require.NoError(t, err)
	assert.False(t, domain.ActionRequired(ticket.Comments))
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)

	// The resolved request cannot be answered again.
	_, err = svc.AddComment(ctx, "T-001", clientAuthor, "Otra respuesta", domain.CommentInfoResponse,
		&CommentLinkage{RespondedToCommentID: requestID})
	assert.True(t, apperrors.IsCode(err, "INVALID_LINKAGE"))

	stored, err := repo.GetByID(ctx, "T-001")
	require.NoError(t, err)
	assert.Len(t, stored.Comments, 2)
	assert.False(t, domain.ActionRequired(stored.Comments))
}

func TestApprovalResolvesTicket(t *testing.T) {
	statuses := []domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusInProgress}
	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			ticket := openTicket("T-001")
			ticket.Status = status
			svc, repo := newCommentFixture(t, ticket)
			ctx := context.Background()

			updated, err := svc.AddComment(ctx, "T-001", agentAuthor, "Trabajo entregado", domain.CommentApprovalRequest, nil)
			require.NoError(t, err)
			requestID := updated.Comments[0].ID
			assert.True(t, domain.ActionRequired(updated.Comments))

			updated, err = svc.AddComment(ctx, "T-001", clientAuthor, "Aprobado", domain.CommentApprovalDecision,
				&CommentLinkage{ApprovedCommentID: requestID, Approved: true})
			require.NoError(t, err)
			assert.Equal(t, domain.TicketStatusResolved, updated.Status)
			assert.False(t, domain.ActionRequired(updated.Comments))

			stored, err := repo.GetByID(ctx, "T-001")
			require.NoError(t, err)
			assert.Equal(t, domain.TicketStatusResolved, stored.Status)
		})
	}
}

func TestRejectionKeepsStatus(t *testing.T) {
	svc, _ := newCommentFixture(t, openTicket("T-001"))
	ctx := context.Background()

	updated, err := svc.AddComment(ctx, "T-001", agentAuthor, "Trabajo entregado", domain.CommentApprovalRequest, nil)
	require.NoError(t, err)
	requestID := updated.Comments[0].ID

	updated, err = svc.AddComment(ctx, "T-001", clientAuthor, "Falta corregir el formato", domain.CommentApprovalDecision,
		&CommentLinkage{ApprovedCommentID: requestID, Approved: false})
	require.NoError(t, err)

	// Rejection resolves the request without touching the ticket status.
	assert.Equal(t, domain.TicketStatusOpen, updated.Status)
	assert.False(t, domain.ActionRequired(updated.Comments))

	// The agent may ask again after a rejection.
	updated, err = svc.AddComment(ctx, "T-001", agentAuthor, "Formato corregido", domain.CommentApprovalRequest, nil)
	require.NoError(t, err)
	assert.True(t, domain.ActionRequired(updated.Comments))
}

func TestInvalidLinkageVariants(t *testing.T) {
	normal := domain.TicketComment{
		ID: "c-normal", TicketID: "T-001", AuthorID: "1", AuthorRole: domain.RoleClient,
		Content: "hola", Read: true, Body: &domain.NormalBody{},
	}
	pendingApproval := domain.TicketComment{
		ID: "c-approval", TicketID: "T-001", AuthorID: "admin1", AuthorRole: domain.RoleSuperadmin,
		Content: "validar", Read: true, Body: &domain.ApprovalRequestBody{AwaitingApproval: true},
	}

	tests := []struct {
		name        string
		commentType domain.CommentType
		author      CommentAuthor
		linkage     *CommentLinkage
	}{
		{"response without linkage", domain.CommentInfoResponse, clientAuthor, nil},
		{"response to unknown comment", domain.CommentInfoResponse, clientAuthor, &CommentLinkage{RespondedToCommentID: "nope"}},
		{"response to normal comment", domain.CommentInfoResponse, clientAuthor, &CommentLinkage{RespondedToCommentID: "c-normal"}},
		{"response to approval request", domain.CommentInfoResponse, clientAuthor, &CommentLinkage{RespondedToCommentID: "c-approval"}},
		{"decision without linkage", domain.CommentApprovalDecision, clientAuthor, nil},
		{"decision on unknown comment", domain.CommentApprovalDecision, clientAuthor, &CommentLinkage{ApprovedCommentID: "nope", Approved: true}},
		{"decision on normal comment", domain.CommentApprovalDecision, clientAuthor, &CommentLinkage{ApprovedCommentID: "c-normal", Approved: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newCommentFixture(t, openTicket("T-001", normal, pendingApproval))
			_, err := svc.AddComment(context.Background(), "T-001", tt.author, "contenido", tt.commentType, tt.linkage)
			assert.True(t, apperrors.IsCode(err, "INVALID_LINKAGE"), "got %v", err)

			// A failed call leaves the stored ticket untouched.
			stored, getErr := repo.GetByID(context.Background(), "T-001")
			require.NoError(t, getErr)
			assert.Len(t, stored.Comments, 2)
			assert.Equal(t, domain.TicketStatusOpen, stored.Status)
		})
	}
}

func TestMarkCommentsRead(t *testing.T) {
	agentComment := domain.TicketComment{
		ID: "c1", TicketID: "T-001", AuthorID: "admin1", AuthorRole: domain.RoleSuperadmin,
		Content: "novedades", Read: false, Body: &domain.NormalBody{},
	}
	clientComment := domain.TicketComment{
		ID: "c2", TicketID: "T-001", AuthorID: "1", AuthorRole: domain.RoleClient,
		Content: "gracias", Read: false, Body: &domain.NormalBody{},
	}
	svc, repo := newCommentFixture(t, openTicket("T-001", agentComment, clientComment))
	ctx := context.Background()

	ticket, err := svc.MarkCommentsRead(ctx, "T-001", domain.RoleClient)
	require.NoError(t, err)
	assert.False(t, domain.HasUnread(ticket.Comments, domain.RoleClient))
	// The client's own comment stays unread for the agent.
	assert.True(t, domain.HasUnread(ticket.Comments, domain.RoleSuperadmin))

	stored, err := repo.GetByID(ctx, "T-001")
	require.NoError(t, err)
	assert.True(t, stored.Comments[0].Read)
	assert.False(t, stored.Comments[1].Read)
}

func TestAddCommentPublishesEvent(t *testing.T) {
	ds := persistence.NewDataset()
	ds.Lock()
	ds.Tickets = []domain.Ticket{openTicket("T-001")}
	ds.Unlock()
	repo := repository.NewTicketRepository(ds)

	dispatcher := events.NewInMemoryDispatcher()
	var captured []events.Event
	dispatcher.Subscribe(events.EventTicketCommentAdded, func(ctx context.Context, event events.Event) error {
		captured = append(captured, event)
		return nil
	})

	svc := NewCommentService(repo, dispatcher)
	_, err := svc.AddComment(context.Background(), "T-001", clientAuthor, "hola", domain.CommentNormal, nil)
	require.NoError(t, err)

	require.Len(t, captured, 1)
	payload, ok := captured[0].Payload.(events.TicketCommentAddedPayload)
	require.True(t, ok)
	assert.Equal(t, "T-001", payload.TicketID)
	assert.Equal(t, domain.CommentNormal, payload.CommentType)
	assert.Equal(t, clientAuthor.ID, captured[0].Actor.UserID)
}

func TestFullWorkflowScenario(t *testing.T) {
	// A ticket travels the whole loop: question, answer, delivery, approval.
	svc, repo := newCommentFixture(t, openTicket("T-001"))
	ctx := context.Background()

	ticket, err := svc.AddComment(ctx, "T-001", clientAuthor, "No puedo facturar", domain.CommentNormal, nil)
	require.NoError(t, err)
	assert.False(t, domain.ActionRequired(ticket.Comments))

	ticket, err = svc.AddComment(ctx, "T-001", agentAuthor, "¿Qué navegador usás?", domain.CommentInfoRequest, nil)
	require.NoError(t, err)
	infoID := ticket.Comments[1].ID

	ticket, err = svc.AddComment(ctx, "T-001", clientAuthor, "Firefox 133", domain.CommentInfoResponse,
		&CommentLinkage{RespondedToCommentID: infoID})
	require.NoError(t, err)
	assert.False(t, domain.ActionRequired(ticket.Comments))

	ticket, err = svc.AddComment(ctx, "T-001", agentAuthor, "Corregido, por favor validar", domain.CommentApprovalRequest, nil)
	require.NoError(t, err)
	approvalID := ticket.Comments[3].ID

	ticket, err = svc.AddComment(ctx, "T-001", clientAuthor, "Funciona, aprobado", domain.CommentApprovalDecision,
		&CommentLinkage{ApprovedCommentID: approvalID, Approved: true})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusResolved, ticket.Status)
	assert.False(t, domain.ActionRequired(ticket.Comments))
	assert.Len(t, ticket.Comments, 5)

	stored, err := repo.GetByID(ctx, "T-001")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, stored.Status)
	decision, ok := stored.Comments[4].Body.(*domain.ApprovalDecisionBody)
	require.True(t, ok)
	assert.True(t, decision.Approved)
	assert.Equal(t, approvalID, decision.ApprovedCommentID)
}
