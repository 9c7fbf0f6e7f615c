package service

import (
	"context"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/repository"
)

// ProjectService exposes the read-only project views.
type ProjectService struct {
	projects repository.ProjectRepository
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// ListForViewer returns the projects visible to the caller: the whole
// portfolio for agents, the company's projects for clients.
func (s *ProjectService) ListForViewer(ctx context.Context, viewer *domain.User) ([]domain.Project, error) {
	if viewer.Role == domain.RoleSuperadmin {
		return s.projects.ListAll(ctx)
	}
	return s.projects.ListByCompany(ctx, viewer.CompanyID)
}
