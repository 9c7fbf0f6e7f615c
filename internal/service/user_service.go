package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/events"
	"github.com/jubbler/portal-service/internal/repository"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// UserService handles portal account administration. Agents manage any
// account; a client with the users permission manages accounts of their own
// company, and accounts they create start in PENDING until an agent approves
// them.
type UserService struct {
	users      repository.UserRepository
	companies  repository.CompanyRepository
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, companies repository.CompanyRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, companies: companies, dispatcher: dispatcher}
}

// UserCreateInput describes account creation payload.
type UserCreateInput struct {
	Email       string
	Name        string
	Phone       string
	CompanyID   string
	Permissions domain.Permissions
}

// CreateUser registers a CLIENT account. Agent-created accounts are approved
// immediately; client-created ones await approval.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.User, input UserCreateInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || name == "" {
		return nil, apperrors.NewValidationError("email and name required", nil)
	}

	companyID := input.CompanyID
	status := domain.UserStatusApproved
	if actor.Role != domain.RoleSuperadmin {
		if !actor.Permissions.CanViewUsers {
			return nil, apperrors.NewForbidden("user management not enabled for this account")
		}
		// Clients only create accounts for their own company.
		companyID = actor.CompanyID
		status = domain.UserStatusPending
	}
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("company", map[string]any{"company_id": companyID})
		}
		return nil, err
	}

	actorID := actor.ID
	user := &domain.User{
		ID:          uuid.NewString(),
		Email:       email,
		Name:        name,
		Phone:       strings.TrimSpace(input.Phone),
		Role:        domain.RoleClient,
		Status:      status,
		CompanyID:   companyID,
		CreatedBy:   &actorID,
		Permissions: input.Permissions,
		CreatedAt:   time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		return nil, err
	}
	return user, nil
}

// ApproveUser moves a pending account to APPROVED and notifies it.
func (s *UserService) ApproveUser(ctx context.Context, agent *domain.User, userID string) (*domain.User, error) {
	user, err := s.pendingDecision(ctx, agent, userID)
	if err != nil {
		return nil, err
	}
	user.Status = domain.UserStatusApproved
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:  events.EventUserApproved,
		Actor: events.Actor{UserID: agent.ID, Name: agent.Name, Role: agent.Role},
		Payload: events.UserApprovedPayload{
			UserID: user.ID,
			Name:   user.Name,
		},
	})
	return user, nil
}

// RejectUser moves a pending account to REJECTED.
func (s *UserService) RejectUser(ctx context.Context, agent *domain.User, userID string) (*domain.User, error) {
	user, err := s.pendingDecision(ctx, agent, userID)
	if err != nil {
		return nil, err
	}
	user.Status = domain.UserStatusRejected
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserUpdateInput carries editable account fields.
type UserUpdateInput struct {
	Name        *string
	Phone       *string
	Permissions *domain.Permissions
}

// UpdateUser edits an account within the actor's scope.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, userID string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.loadUserFor(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Permissions != nil {
		user.Permissions = *input.Permissions
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account within the actor's scope.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, userID string) error {
	user, err := s.loadUserFor(ctx, actor, userID)
	if err != nil {
		return err
	}
	if user.ID == actor.ID {
		return apperrors.NewConflict("cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}
	return nil
}

// ListUsers returns the accounts visible to the actor: all of them for an
// agent, the company's for a client with the users permission.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if actor.Role == domain.RoleSuperadmin {
		return s.users.ListAll(ctx)
	}
	if !actor.Permissions.CanViewUsers {
		return nil, apperrors.NewForbidden("user management not enabled for this account")
	}
	return s.users.ListByCompany(ctx, actor.CompanyID)
}

func (s *UserService) pendingDecision(ctx context.Context, agent *domain.User, userID string) (*domain.User, error) {
	if agent.Role != domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("administrator account required")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	if user.Status != domain.UserStatusPending {
		return nil, apperrors.NewConflict("user is not pending approval",
			map[string]any{"user_id": user.ID, "status": string(user.Status)})
	}
	return user, nil
}

func (s *UserService) loadUserFor(ctx context.Context, actor *domain.User, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	if actor.Role == domain.RoleSuperadmin {
		return user, nil
	}
	if !actor.Permissions.CanViewUsers || user.CompanyID != actor.CompanyID {
		return nil, apperrors.NewForbidden("user belongs to another company")
	}
	if user.Role == domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("cannot manage administrator accounts")
	}
	return user, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
