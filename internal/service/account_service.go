package service

import (
	"context"
	"sort"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/repository"
)

// AccountService exposes the billing views: invoices and the ledger with its
// seeded running balance.
type AccountService struct {
	billing repository.BillingRepository
}

// NewAccountService constructs the service.
func NewAccountService(billing repository.BillingRepository) *AccountService {
	return &AccountService{billing: billing}
}

// Invoices returns the company's invoices, newest first.
func (s *AccountService) Invoices(ctx context.Context, companyID string) ([]domain.Invoice, error) {
	invoices, err := s.billing.InvoicesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].Date.After(invoices[j].Date)
	})
	return invoices, nil
}

// Movements returns the company's ledger in chronological order.
func (s *AccountService) Movements(ctx context.Context, companyID string) ([]domain.AccountMovement, error) {
	movements, err := s.billing.MovementsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date)
	})
	return movements, nil
}

// OutstandingBalance sums unpaid invoice balances for the company.
func (s *AccountService) OutstandingBalance(ctx context.Context, companyID string) (float64, error) {
	invoices, err := s.billing.InvoicesByCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for i := range invoices {
		total += invoices[i].Balance
	}
	return total, nil
}
