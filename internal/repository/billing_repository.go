package repository

import (
	"context"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/persistence"
)

// BillingRepository exposes the read-only invoice and ledger collections.
type BillingRepository interface {
	InvoicesByCompany(ctx context.Context, companyID string) ([]domain.Invoice, error)
	MovementsByCompany(ctx context.Context, companyID string) ([]domain.AccountMovement, error)
}

type billingRepository struct {
	ds *persistence.Dataset
}

// NewBillingRepository builds repository.
func NewBillingRepository(ds *persistence.Dataset) BillingRepository {
	return &billingRepository{ds: ds}
}

func (r *billingRepository) InvoicesByCompany(ctx context.Context, companyID string) ([]domain.Invoice, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.Invoice, 0)
	for i := range r.ds.Invoices {
		if r.ds.Invoices[i].CompanyID == companyID {
			result = append(result, r.ds.Invoices[i])
		}
	}
	return result, nil
}

func (r *billingRepository) MovementsByCompany(ctx context.Context, companyID string) ([]domain.AccountMovement, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.AccountMovement, 0)
	for i := range r.ds.Movements {
		if r.ds.Movements[i].CompanyID == companyID {
			result = append(result, r.ds.Movements[i])
		}
	}
	return result, nil
}
