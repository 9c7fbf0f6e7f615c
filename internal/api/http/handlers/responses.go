package handlers

import (
	"github.com/jubbler/portal-service/internal/api/dto"
	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/service"
)

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      user.Role,
		Status:    user.Status,
		CompanyID: user.CompanyID,
		Permissions: dto.PermissionsPayload{
			CanViewProjects: user.Permissions.CanViewProjects,
			CanViewAccount:  user.Permissions.CanViewAccount,
			CanViewUsers:    user.Permissions.CanViewUsers,
		},
		CreatedAt: user.CreatedAt,
	}
}

// commentResponse flattens the comment's body variant onto the wire shape.
// Fields of other variants stay absent.
func commentResponse(comment *domain.TicketComment) dto.CommentResponse {
	resp := dto.CommentResponse{
		ID:          comment.ID,
		TicketID:    comment.TicketID,
		AuthorID:    comment.AuthorID,
		AuthorName:  comment.AuthorName,
		AuthorRole:  comment.AuthorRole,
		Content:     comment.Content,
		CommentType: comment.Body.Type(),
		CreatedAt:   comment.CreatedAt,
		Read:        comment.Read,
	}
	switch body := comment.Body.(type) {
	case *domain.InfoRequestBody:
		resp.RequiresResponse = boolPtr(body.AwaitingResponse)
	case *domain.InfoResponseBody:
		resp.RespondedToCommentID = strPtr(body.RespondedToCommentID)
	case *domain.ApprovalRequestBody:
		resp.RequiresApproval = boolPtr(body.AwaitingApproval)
	case *domain.ApprovalDecisionBody:
		resp.ApprovedCommentID = strPtr(body.ApprovedCommentID)
		resp.Approved = boolPtr(body.Approved)
	}
	return resp
}

// ticketSummary projects a ticket for the viewer's list: the action and
// unread flags are recomputed here, never read from storage.
func ticketSummary(ticket *domain.Ticket, viewer domain.UserRole) dto.TicketSummary {
	return dto.TicketSummary{
		ID:                ticket.ID,
		Type:              ticket.Type,
		Title:             ticket.Title,
		Status:            ticket.Status,
		Priority:          ticket.Priority,
		CompanyID:         ticket.CompanyID,
		CreatedBy:         ticket.CreatedBy,
		CreatedByName:     ticket.CreatedByName,
		CreatedAt:         ticket.CreatedAt,
		UpdatedAt:         ticket.UpdatedAt,
		CommentCount:      len(ticket.Comments),
		HasActionRequired: domain.ActionRequired(ticket.Comments),
		HasUnreadComments: domain.HasUnread(ticket.Comments, viewer),
	}
}

func ticketDetail(ticket *domain.Ticket, viewer domain.UserRole) dto.TicketDetailResponse {
	ordered := domain.SortComments(ticket.Comments)
	comments := make([]dto.CommentResponse, 0, len(ordered))
	for i := range ordered {
		comments = append(comments, commentResponse(&ordered[i]))
	}
	return dto.TicketDetailResponse{
		TicketSummary: ticketSummary(ticket, viewer),
		Description:   ticket.Description,
		Urgency:       ticket.Urgency,
		Impact:        ticket.Impact,
		Origin:        ticket.Origin,
		Comments:      comments,
	}
}

func ticketGroups(groups []service.TicketGroup, viewer domain.UserRole) []dto.TicketGroupResponse {
	resp := make([]dto.TicketGroupResponse, 0, len(groups))
	for gi := range groups {
		items := make([]dto.TicketSummary, 0, len(groups[gi].Tickets))
		for ti := range groups[gi].Tickets {
			items = append(items, ticketSummary(&groups[gi].Tickets[ti], viewer))
		}
		resp = append(resp, dto.TicketGroupResponse{Key: groups[gi].Key, Tickets: items})
	}
	return resp
}

func chatMessageResponse(msg *domain.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:         msg.ID,
		ChatID:     msg.ChatID,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		SenderRole: msg.SenderRole,
		Type:       msg.Type,
		Content:    msg.Content,
		FileURL:    msg.FileURL,
		FileName:   msg.FileName,
		SentAt:     msg.SentAt,
		Read:       msg.Read,
	}
}

func chatResponse(chat *domain.Chat, viewer domain.UserRole) dto.ChatResponse {
	messages := make([]dto.ChatMessageResponse, 0, len(chat.Messages))
	for i := range chat.Messages {
		messages = append(messages, chatMessageResponse(&chat.Messages[i]))
	}
	resp := dto.ChatResponse{
		ID:          chat.ID,
		CompanyID:   chat.CompanyID,
		CompanyName: chat.CompanyName,
		UserID:      chat.UserID,
		UserName:    chat.UserName,
		UserEmail:   chat.UserEmail,
		Subject:     chat.Subject,
		Status:      chat.Status,
		CreatedAt:   chat.CreatedAt,
		ClosedAt:    chat.ClosedAt,
		UnreadCount: chat.UnreadCount(viewer),
		Messages:    messages,
	}
	if last := chat.LastMessage(); last != nil {
		lastResp := chatMessageResponse(last)
		resp.LastMessage = &lastResp
	}
	return resp
}

func chatResponses(chats []domain.Chat, viewer domain.UserRole) []dto.ChatResponse {
	resp := make([]dto.ChatResponse, 0, len(chats))
	for i := range chats {
		resp = append(resp, chatResponse(&chats[i], viewer))
	}
	return resp
}

func projectResponse(project *domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:               project.ID,
		Name:             project.Name,
		Description:      project.Description,
		CompanyID:        project.CompanyID,
		ScheduleURL:      project.ScheduleURL,
		Status:           project.Status,
		StartDate:        project.StartDate,
		EstimatedEndDate: project.EstimatedEndDate,
	}
}

func invoiceResponse(invoice *domain.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:      invoice.ID,
		Number:  invoice.Number,
		Date:    invoice.Date,
		DueDate: invoice.DueDate,
		Amount:  invoice.Amount,
		Balance: invoice.Balance,
		Status:  invoice.Status,
		PDFURL:  invoice.PDFURL,
	}
}

func movementResponse(movement *domain.AccountMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          movement.ID,
		Date:        movement.Date,
		Description: movement.Description,
		Debit:       movement.Debit,
		Credit:      movement.Credit,
		Balance:     movement.Balance,
		InvoiceID:   movement.InvoiceID,
	}
}

func notificationResponse(notification *domain.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:          notification.ID,
		Type:        notification.Type,
		Title:       notification.Title,
		Description: notification.Description,
		Timestamp:   notification.Timestamp,
		Read:        notification.Read,
		ChatID:      notification.ChatID,
		TicketID:    notification.TicketID,
		ProjectID:   notification.ProjectID,
	}
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }
