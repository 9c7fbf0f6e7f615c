package domain

import "time"

// InvoiceStatus enumerates payment states.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// Invoice is a billing document shown in the account view. Amounts are in
// the company's billing currency, minor units not modelled.
type Invoice struct {
	ID        string
	Number    string
	CompanyID string
	Date      time.Time
	DueDate   time.Time
	Amount    float64
	Balance   float64
	Status    InvoiceStatus
	PDFURL    string
}

// AccountMovement is one row of the company's ledger, with the running
// balance as seeded.
type AccountMovement struct {
	ID          string
	CompanyID   string
	Date        time.Time
	Description string
	Debit       float64
	Credit      float64
	Balance     float64
	InvoiceID   *string
}
