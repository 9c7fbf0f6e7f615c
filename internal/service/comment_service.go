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

// CommentService owns the typed-comment workflow of a ticket: comment
// creation, response/approval linkage, and the status transition an approval
// triggers. Each operation loads a copy of the ticket, mutates it fully, and
// persists it in one Upsert, so a failed call leaves the stored ticket
// untouched.
type CommentService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{tickets: tickets, dispatcher: dispatcher}
}

// CommentAuthor identifies who is posting.
type CommentAuthor struct {
	ID   string
	Name string
	Role domain.UserRole
}

// CommentLinkage carries the reference fields for response and approval
// comments. It is required for RTAMASDACL and APROBACLI and rejected
// otherwise.
type CommentLinkage struct {
	RespondedToCommentID string
	ApprovedCommentID    string
	Approved             bool
}

// Comment kinds each role may create. Clients answer and approve; agents ask
// and communicate.
var allowedCommentTypes = map[domain.UserRole][]domain.CommentType{
	domain.RoleClient:     {domain.CommentNormal, domain.CommentInfoResponse, domain.CommentApprovalDecision},
	domain.RoleSuperadmin: {domain.CommentNormal, domain.CommentInfoRequest, domain.CommentApprovalRequest},
}

func roleMayPost(role domain.UserRole, commentType domain.CommentType) bool {
	for _, allowed := range allowedCommentTypes[role] {
		if allowed == commentType {
			return true
		}
	}
	return false
}

// AddComment appends a typed comment to the ticket and applies its workflow
// effects: an info response resolves the request it references, an approval
// decision resolves its request and, when approving, moves the ticket to
// RESOLVED. The updated ticket is returned.
func (s *CommentService) AddComment(ctx context.Context, ticketID string, author CommentAuthor, content string, commentType domain.CommentType, linkage *CommentLinkage) (*domain.Ticket, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, apperrors.NewEmptyContent()
	}
	if !roleMayPost(author.Role, commentType) {
		return nil, apperrors.NewUnauthorizedCommentType(string(author.Role), string(commentType))
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}

	body, err := buildCommentBody(ticket, commentType, linkage)
	if err != nil {
		return nil, err
	}

	comment := domain.TicketComment{
		ID:         uuid.NewString(),
		TicketID:   ticket.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		AuthorRole: author.Role,
		Content:    trimmed,
		CreatedAt:  time.Now(),
		// Comments authored through the engine are read at creation; only
		// seeded or incoming comments from the other role start unread.
		Read: true,
		Body: body,
	}
	ticket.Comments = append(ticket.Comments, comment)

	switch typed := body.(type) {
	case *domain.InfoResponseBody:
		target := domain.FindComment(ticket.Comments, typed.RespondedToCommentID)
		target.Body.(*domain.InfoRequestBody).AwaitingResponse = false
	case *domain.ApprovalDecisionBody:
		target := domain.FindComment(ticket.Comments, typed.ApprovedCommentID)
		target.Body.(*domain.ApprovalRequestBody).AwaitingApproval = false
		if typed.Approved {
			// Client signed off on delivered work: the ticket resolves no
			// matter which state it was in. A rejection changes nothing.
			ticket.Status = domain.TicketStatusResolved
		}
	}

	if err := s.tickets.Upsert(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketCommentAdded,
		Actor: events.Actor{
			UserID: author.ID,
			Name:   author.Name,
			Role:   author.Role,
		},
		Payload: events.TicketCommentAddedPayload{
			TicketID:       ticket.ID,
			TicketTitle:    ticket.Title,
			CreatedBy:      ticket.CreatedBy,
			CommentID:      comment.ID,
			CommentType:    commentType,
			ContentPreview: stringPreview(trimmed, 120),
		},
	})
	return ticket, nil
}

// buildCommentBody validates linkage against the ticket's existing comments
// and produces the tagged body for the new comment.
func buildCommentBody(ticket *domain.Ticket, commentType domain.CommentType, linkage *CommentLinkage) (domain.CommentBody, error) {
	switch commentType {
	case domain.CommentNormal:
		return &domain.NormalBody{}, nil
	case domain.CommentInfoRequest:
		return &domain.InfoRequestBody{AwaitingResponse: true}, nil
	case domain.CommentApprovalRequest:
		return &domain.ApprovalRequestBody{AwaitingApproval: true}, nil
	case domain.CommentInfoResponse:
		if linkage == nil || linkage.RespondedToCommentID == "" {
			return nil, apperrors.NewInvalidLinkage("response requires the comment it answers", nil)
		}
		target := domain.FindComment(ticket.Comments, linkage.RespondedToCommentID)
		if target == nil {
			return nil, apperrors.NewInvalidLinkage("referenced comment does not exist",
				map[string]any{"comment_id": linkage.RespondedToCommentID})
		}
		request, ok := target.Body.(*domain.InfoRequestBody)
		if !ok {
			return nil, apperrors.NewInvalidLinkage("referenced comment is not an information request",
				map[string]any{"comment_id": target.ID, "comment_type": string(target.Body.Type())})
		}
		if !request.AwaitingResponse {
			return nil, apperrors.NewInvalidLinkage("information request was already answered",
				map[string]any{"comment_id": target.ID})
		}
		return &domain.InfoResponseBody{RespondedToCommentID: target.ID}, nil
	case domain.CommentApprovalDecision:
		if linkage == nil || linkage.ApprovedCommentID == "" {
			return nil, apperrors.NewInvalidLinkage("decision requires the communication it resolves", nil)
		}
		target := domain.FindComment(ticket.Comments, linkage.ApprovedCommentID)
		if target == nil {
			return nil, apperrors.NewInvalidLinkage("referenced comment does not exist",
				map[string]any{"comment_id": linkage.ApprovedCommentID})
		}
		request, ok := target.Body.(*domain.ApprovalRequestBody)
		if !ok {
			return nil, apperrors.NewInvalidLinkage("referenced comment is not awaiting approval",
				map[string]any{"comment_id": target.ID, "comment_type": string(target.Body.Type())})
		}
		if !request.AwaitingApproval {
			return nil, apperrors.NewInvalidLinkage("communication was already decided",
				map[string]any{"comment_id": target.ID})
		}
		return &domain.ApprovalDecisionBody{ApprovedCommentID: target.ID, Approved: linkage.Approved}, nil
	default:
		return nil, apperrors.NewValidationError("unknown comment type", map[string]any{"comment_type": string(commentType)})
	}
}

// MarkCommentsRead flags every comment authored by the opposite role as read
// for the viewer, clearing the unread badge for that ticket.
func (s *CommentService) MarkCommentsRead(ctx context.Context, ticketID string, viewer domain.UserRole) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	changed := false
	for i := range ticket.Comments {
		if !ticket.Comments[i].Read && ticket.Comments[i].AuthorRole != viewer {
			ticket.Comments[i].Read = true
			changed = true
		}
	}
	if !changed {
		return ticket, nil
	}
	if err := s.tickets.Upsert(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
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

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
