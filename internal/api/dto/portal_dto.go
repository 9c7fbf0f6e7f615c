package dto

import (
	"time"

	"github.com/jubbler/portal-service/internal/domain"
)

// ProjectResponse is a client-visible engagement.
type ProjectResponse struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	CompanyID        string               `json:"companyId"`
	ScheduleURL      string               `json:"scheduleUrl,omitempty"`
	Status           domain.ProjectStatus `json:"status"`
	StartDate        time.Time            `json:"startDate"`
	EstimatedEndDate *time.Time           `json:"estimatedEndDate,omitempty"`
}

// InvoiceResponse is one billing document.
type InvoiceResponse struct {
	ID      string               `json:"id"`
	Number  string               `json:"number"`
	Date    time.Time            `json:"date"`
	DueDate time.Time            `json:"dueDate"`
	Amount  float64              `json:"amount"`
	Balance float64              `json:"balance"`
	Status  domain.InvoiceStatus `json:"status"`
	PDFURL  string               `json:"pdfUrl,omitempty"`
}

// MovementResponse is one ledger row.
type MovementResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Debit       float64   `json:"debit"`
	Credit      float64   `json:"credit"`
	Balance     float64   `json:"balance"`
	InvoiceID   *string   `json:"invoiceId,omitempty"`
}

// AccountResponse bundles the account view.
type AccountResponse struct {
	OutstandingBalance float64            `json:"outstandingBalance"`
	Invoices           []InvoiceResponse  `json:"invoices"`
	Movements          []MovementResponse `json:"movements"`
}

// NotificationResponse is one per-user alert.
type NotificationResponse struct {
	ID          string                  `json:"id"`
	Type        domain.NotificationType `json:"type"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Timestamp   time.Time               `json:"timestamp"`
	Read        bool                    `json:"read"`
	ChatID      *string                 `json:"chatId,omitempty"`
	TicketID    *string                 `json:"ticketId,omitempty"`
	ProjectID   *string                 `json:"projectId,omitempty"`
}

// CompanyTicketStatsResponse is the per-company dashboard split.
type CompanyTicketStatsResponse struct {
	CompanyID    string `json:"companyId"`
	CompanyName  string `json:"companyName"`
	Incidents    int    `json:"incidents"`
	Requirements int    `json:"requirements"`
}

// DayCountResponse is one point of the created-tickets series.
type DayCountResponse struct {
	Day     string    `json:"day"`
	Date    time.Time `json:"date"`
	Created int       `json:"created"`
}

// DashboardResponse is the admin landing view.
type DashboardResponse struct {
	ActiveChats      int                          `json:"activeChats"`
	OpenIncidents    int                          `json:"openIncidents"`
	OpenRequirements int                          `json:"openRequirements"`
	ByCompany        []CompanyTicketStatsResponse `json:"byCompany"`
	LastSevenDays    []DayCountResponse           `json:"lastSevenDays"`
}
