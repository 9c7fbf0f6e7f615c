package repository

import (
	"context"
	"strings"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/persistence"
)

// UserRepository manages portal accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	ds *persistence.Dataset
}

// NewUserRepository builds repository.
func NewUserRepository(ds *persistence.Dataset) UserRepository {
	return &userRepository{ds: ds}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	for i := range r.ds.Users {
		if r.ds.Users[i].ID == id {
			user := r.ds.Users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	r.ds.RLock()
	defer r.ds.RUnlock()
	for i := range r.ds.Users {
		if strings.ToLower(r.ds.Users[i].Email) == normalized {
			user := r.ds.Users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.User, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.User, 0)
	for i := range r.ds.Users {
		if r.ds.Users[i].CompanyID == companyID {
			result = append(result, r.ds.Users[i])
		}
	}
	return result, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.User, 0)
	for i := range r.ds.Users {
		if r.ds.Users[i].Role == role {
			result = append(result, r.ds.Users[i])
		}
	}
	return result, nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	r.ds.RLock()
	defer r.ds.RUnlock()
	result := make([]domain.User, len(r.ds.Users))
	copy(result, r.ds.Users)
	return result, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	for i := range r.ds.Users {
		if strings.EqualFold(r.ds.Users[i].Email, user.Email) {
			return ErrDuplicateEmail
		}
	}
	r.ds.Users = append(r.ds.Users, *user)
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	for i := range r.ds.Users {
		if r.ds.Users[i].ID == user.ID {
			r.ds.Users[i] = *user
			return nil
		}
	}
	return ErrNotFound
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.ds.Lock()
	defer r.ds.Unlock()
	for i := range r.ds.Users {
		if r.ds.Users[i].ID == id {
			r.ds.Users = append(r.ds.Users[:i], r.ds.Users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
