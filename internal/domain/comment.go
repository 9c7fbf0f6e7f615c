package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// CommentType tags the kind of a ticket comment. The values are the portal's
// historical wire codes and are kept for compatibility with the seeded data.
type CommentType string

const (
	// CommentNormal is an informational comment with no workflow linkage.
	CommentNormal CommentType = "NORMAL"
	// CommentInfoRequest is an agent request for more data from the client.
	CommentInfoRequest CommentType = "MASDACLI"
	// CommentInfoResponse is the client reply resolving an info request.
	CommentInfoResponse CommentType = "RTAMASDACL"
	// CommentApprovalRequest is an agent notice of delivered work awaiting
	// the client's approval.
	CommentApprovalRequest CommentType = "COMUNICLI"
	// CommentApprovalDecision is the client's approval or rejection of an
	// approval request.
	CommentApprovalDecision CommentType = "APROBACLI"
)

// ParseCommentType converts a wire value into a CommentType.
func ParseCommentType(raw string) (CommentType, error) {
	switch CommentType(strings.ToUpper(strings.TrimSpace(raw))) {
	case CommentNormal:
		return CommentNormal, nil
	case CommentInfoRequest:
		return CommentInfoRequest, nil
	case CommentInfoResponse:
		return CommentInfoResponse, nil
	case CommentApprovalRequest:
		return CommentApprovalRequest, nil
	case CommentApprovalDecision:
		return CommentApprovalDecision, nil
	}
	return "", fmt.Errorf("invalid comment type %q (valid: NORMAL, MASDACLI, RTAMASDACL, COMUNICLI, APROBACLI)", raw)
}

// CommentBody carries the linkage state specific to one comment kind. Only
// the fields relevant to the variant exist, so inconsistent optional-field
// combinations cannot be represented.
type CommentBody interface {
	Type() CommentType
	clone() CommentBody
}

// NormalBody has no linkage.
type NormalBody struct{}

func (*NormalBody) Type() CommentType { return CommentNormal }
func (b *NormalBody) clone() CommentBody {
	copied := *b
	return &copied
}

// InfoRequestBody awaits a client response until a matching info response
// references it.
type InfoRequestBody struct {
	AwaitingResponse bool
}

func (*InfoRequestBody) Type() CommentType { return CommentInfoRequest }
func (b *InfoRequestBody) clone() CommentBody {
	copied := *b
	return &copied
}

// InfoResponseBody points at the info request it answers.
type InfoResponseBody struct {
	RespondedToCommentID string
}

func (*InfoResponseBody) Type() CommentType { return CommentInfoResponse }
func (b *InfoResponseBody) clone() CommentBody {
	copied := *b
	return &copied
}

// ApprovalRequestBody awaits the client's decision until a matching approval
// decision references it.
type ApprovalRequestBody struct {
	AwaitingApproval bool
}

func (*ApprovalRequestBody) Type() CommentType { return CommentApprovalRequest }
func (b *ApprovalRequestBody) clone() CommentBody {
	copied := *b
	return &copied
}

// ApprovalDecisionBody records the client's verdict on an approval request.
type ApprovalDecisionBody struct {
	ApprovedCommentID string
	Approved          bool
}

func (*ApprovalDecisionBody) Type() CommentType { return CommentApprovalDecision }
func (b *ApprovalDecisionBody) clone() CommentBody {
	copied := *b
	return &copied
}

// TicketComment is one entry in a ticket's comment sequence.
type TicketComment struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorName string
	AuthorRole UserRole
	Content    string
	CreatedAt  time.Time
	Read       bool
	Body       CommentBody
}

// Clone deep-copies the comment including its body variant.
func (c TicketComment) Clone() TicketComment {
	copied := c
	if c.Body != nil {
		copied.Body = c.Body.clone()
	}
	return copied
}

// RequiresAction reports whether the comment is an unresolved info or
// approval request.
func (c *TicketComment) RequiresAction() bool {
	switch body := c.Body.(type) {
	case *InfoRequestBody:
		return body.AwaitingResponse
	case *ApprovalRequestBody:
		return body.AwaitingApproval
	default:
		return false
	}
}

// ActionRequired reports whether any comment in the sequence still awaits a
// response or approval. It is always recomputed from the sequence, never
// stored on the ticket.
func ActionRequired(comments []TicketComment) bool {
	for i := range comments {
		if comments[i].RequiresAction() {
			return true
		}
	}
	return false
}

// HasUnread reports whether the sequence contains an unread comment authored
// by the opposite role from the viewer: agents watch for unread client
// comments and clients for unread agent comments.
func HasUnread(comments []TicketComment, viewer UserRole) bool {
	for i := range comments {
		if !comments[i].Read && comments[i].AuthorRole != viewer {
			return true
		}
	}
	return false
}

// SortComments returns the presentation order for a ticket thread: comments
// requiring action first, then ascending by timestamp within each partition.
func SortComments(comments []TicketComment) []TicketComment {
	sorted := make([]TicketComment, len(comments))
	for i := range comments {
		sorted[i] = comments[i].Clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		iAction, jAction := sorted[i].RequiresAction(), sorted[j].RequiresAction()
		if iAction != jAction {
			return iAction
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// SortTickets returns the list-view order for the given viewer: tickets with
// unread opposite-role comments first, ties broken newest-first by creation
// time.
func SortTickets(tickets []Ticket, viewer UserRole) []Ticket {
	sorted := make([]Ticket, len(tickets))
	copy(sorted, tickets)
	sort.SliceStable(sorted, func(i, j int) bool {
		iUnread, jUnread := HasUnread(sorted[i].Comments, viewer), HasUnread(sorted[j].Comments, viewer)
		if iUnread != jUnread {
			return iUnread
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// FindComment returns the comment with the given id, or nil.
func FindComment(comments []TicketComment, id string) *TicketComment {
	for i := range comments {
		if comments[i].ID == id {
			return &comments[i]
		}
	}
	return nil
}
