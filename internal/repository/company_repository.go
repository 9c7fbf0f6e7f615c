package repository

import (
	"context"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/persistence"
)

// CompanyRepository manages client companies.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	ListAll(ctx context.Context) ([]domain.Company, error)
}

type companyRepository struct {
	ds *persistence.Dataset
}

// NewCompanyRepository builds repository.
func NewCompanyRepository(ds *persistence.Dataset) CompanyRepository {
	return &companyRepository{ds: ds}
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	for i := range r.ds.Companies {
		if r.ds.Companies[i].ID == id {
			company := r.ds.Companies[i]
			return &company, nil
		}
	}
	return nil, ErrNotFound
}

func (r *companyRepository) ListAll(ctx context.Context) ([]domain.Company, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.Company, len(r.ds.Companies))
	copy(result, r.ds.Companies)
	return result, nil
}
