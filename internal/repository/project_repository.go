package repository

import (
	"context"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/persistence"
)

// ProjectRepository exposes the read-only project collection.
type ProjectRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
}

type projectRepository struct {
	ds *persistence.Dataset
}

// NewProjectRepository builds repository.
func NewProjectRepository(ds *persistence.Dataset) ProjectRepository {
	return &projectRepository{ds: ds}
}

func (r *projectRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Project, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.Project, 0)
	for i := range r.ds.Projects {
		if r.ds.Projects[i].CompanyID == companyID {
			result = append(result, r.ds.Projects[i])
		}
	}
	return result, nil
}

func (r *projectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.Project, len(r.ds.Projects))
	copy(result, r.ds.Projects)
	return result, nil
}
