package dto

import (
	"time"

	"github.com/jubbler/portal-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Type        string `json:"type" validate:"omitempty,oneof=INCIDENT REQUIREMENT"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Urgency     string `json:"urgency" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Impact      string `json:"impact" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Origin      string `json:"origin" validate:"omitempty,oneof=WEB EMAIL PHONE MOBILE"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
}

// AddCommentRequest payload. The linkage fields matter only for the
// workflow comment kinds; the engine rejects inconsistent combinations.
type AddCommentRequest struct {
	Content              string  `json:"content" validate:"required"`
	CommentType          string  `json:"commentType" validate:"required"`
	RespondedToCommentID *string `json:"respondedToCommentId"`
	ApprovedCommentID    *string `json:"approvedCommentId"`
	Approved             *bool   `json:"approved"`
}

// CommentResponse flattens a comment and its workflow state to the wire
// shape: only the fields of the comment's kind are present.
type CommentResponse struct {
	ID                   string             `json:"id"`
	TicketID             string             `json:"ticketId"`
	AuthorID             string             `json:"authorId"`
	AuthorName           string             `json:"authorName"`
	AuthorRole           domain.UserRole    `json:"authorRole"`
	Content              string             `json:"content"`
	CommentType          domain.CommentType `json:"commentType"`
	CreatedAt            time.Time          `json:"createdAt"`
	Read                 bool               `json:"read"`
	RequiresResponse     *bool              `json:"requiresResponse,omitempty"`
	RespondedToCommentID *string            `json:"respondedToCommentId,omitempty"`
	RequiresApproval     *bool              `json:"requiresApproval,omitempty"`
	ApprovedCommentID    *string            `json:"approvedCommentId,omitempty"`
	Approved             *bool              `json:"approved,omitempty"`
}

// TicketSummary is the list-view projection. The action and unread flags
// are derived from the comment sequence for the requesting viewer.
type TicketSummary struct {
	ID                string                `json:"id"`
	Type              domain.TicketType     `json:"type"`
	Title             string                `json:"title"`
	Status            domain.TicketStatus   `json:"status"`
	Priority          domain.TicketPriority `json:"priority"`
	CompanyID         string                `json:"companyId"`
	CreatedBy         string                `json:"createdBy"`
	CreatedByName     string                `json:"createdByName"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
	CommentCount      int                   `json:"commentCount"`
	HasActionRequired bool                  `json:"hasActionRequired"`
	HasUnreadComments bool                  `json:"hasUnreadComments"`
}

// TicketDetailResponse adds the full description and the ordered thread.
type TicketDetailResponse struct {
	TicketSummary
	Description string              `json:"description"`
	Urgency     domain.TicketLevel  `json:"urgency"`
	Impact      domain.TicketLevel  `json:"impact"`
	Origin      domain.TicketOrigin `json:"origin"`
	Comments    []CommentResponse   `json:"comments"`
}

// TicketGroupResponse is one bucket of a grouped admin listing.
type TicketGroupResponse struct {
	Key     string          `json:"key"`
	Tickets []TicketSummary `json:"tickets"`
}
