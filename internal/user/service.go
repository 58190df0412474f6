package user

import (
	"context"
	"log/slog"

	internal "github.com/frahmantamala/user-administration/internal"
	"github.com/frahmantamala/user-administration/internal/core/events"
	userDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/user"
	"github.com/frahmantamala/user-administration/internal/employee"
	"github.com/frahmantamala/user-administration/internal/project"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	GetAssignedProjects(userID int64) ([]string, error)
	Create(u *userDatamodel.User, projectIDs []string) error
	Update(u *userDatamodel.User, projectIDs []string) error
	Delete(id int64) error
	UpdatePassword(id int64, passwordHash string) error
}

type EmployeeReader interface {
	GetAllEmployees() ([]employee.Employee, error)
}

type ForestLoader interface {
	LoadForest() (*project.Forest, error)
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo      RepositoryAPI
	employees EmployeeReader
	projects  ForestLoader
	hasher    PasswordHasher
	bus       *events.EventBus
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeReader, projects ForestLoader, hasher PasswordHasher, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		projects:  projects,
		hasher:    hasher,
		bus:       bus,
		logger:    logger,
	}
}

func (s *Service) GetAllUsers() ([]*User, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get users from repository", "error", err)
		return nil, err
	}

	users := make([]*User, 0, len(models))
	for _, m := range models {
		projectIDs, err := s.repo.GetAssignedProjects(m.ID)
		if err != nil {
			return nil, err
		}
		users = append(users, FromDataModelWithProjects(m, projectIDs))
	}
	return users, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	projectIDs, err := s.repo.GetAssignedProjects(id)
	if err != nil {
		return nil, err
	}
	return FromDataModelWithProjects(model, projectIDs), nil
}

// EmpIDClaimedBy reports whether another account (different from
// excludeUserID) already holds the given employee id.
func (s *Service) EmpIDClaimedBy(empID string, excludeUserID int64) (bool, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		return false, err
	}
	for _, m := range models {
		if m.ID == excludeUserID {
			continue
		}
		if employee.SameEmpID(m.EmpID, empID) {
			return true, nil
		}
	}
	return false, nil
}

// CreateUser runs the add-form flow: roster lookup, ordered validation,
// stale-project pruning, hash, persist, event.
func (s *Service) CreateUser(ctx context.Context, dto *CreateUserDTO) (*User, error) {
	accounts, roster, err := s.loadCollections()
	if err != nil {
		return nil, err
	}

	form := NewAddForm()
	if appErr := form.LookupEmployee(dto.EmpID, roster, accounts); appErr != nil {
		return nil, appErr
	}

	submission, appErr := form.Submit(SubmitInput{
		Username:         dto.Username,
		Role:             dto.Role,
		Password:         dto.Password,
		PasswordConfirm:  dto.PasswordConfirm,
		AssignedProjects: dto.AssignedProjects,
	}, accounts)
	if appErr != nil {
		return nil, appErr
	}

	assigned, err := s.pruneStaleProjects(submission.Account.AssignedProjects)
	if err != nil {
		return nil, err
	}
	submission.Account.AssignedProjects = assigned

	hash, err := s.hasher.HashPassword(submission.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}
	submission.Account.PasswordHash = hash

	model := ToDataModel(&submission.Account)
	if err := s.repo.Create(model, assigned); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	created := FromDataModelWithProjects(model, assigned)
	s.bus.Publish(ctx, events.NewUserCreatedEvent(created.ID, created.Username, created.EmpID, created.Role))

	s.logger.Info("user created", "user_id", created.ID, "username", created.Username, "role", created.Role, "actor_id", internal.UserIDFromContext(ctx))
	return created, nil
}

// UpdateUser runs the edit-form flow: full replace of the editable fields
// over the original record, id preserved, password optional.
func (s *Service) UpdateUser(ctx context.Context, id int64, dto *UpdateUserDTO) (*User, error) {
	original, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	accounts, roster, err := s.loadCollections()
	if err != nil {
		return nil, err
	}

	form := NewEditForm(original)
	if dto.EmpID != "" && !employee.SameEmpID(dto.EmpID, original.EmpID) {
		if appErr := form.LookupEmployee(dto.EmpID, roster, accounts); appErr != nil {
			return nil, appErr
		}
	}

	submission, appErr := form.Submit(SubmitInput{
		Username:         dto.Username,
		Role:             dto.Role,
		Password:         dto.Password,
		PasswordConfirm:  dto.PasswordConfirm,
		AssignedProjects: dto.AssignedProjects,
	}, accounts)
	if appErr != nil {
		return nil, appErr
	}

	assigned, err := s.pruneStaleProjects(submission.Account.AssignedProjects)
	if err != nil {
		return nil, err
	}
	submission.Account.AssignedProjects = assigned

	if submission.Password != "" {
		hash, err := s.hasher.HashPassword(submission.Password)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		submission.Account.PasswordHash = hash
	}

	model := ToDataModel(&submission.Account)
	if err := s.repo.Update(model, assigned); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	updated := FromDataModelWithProjects(model, assigned)
	s.bus.Publish(ctx, events.NewUserUpdatedEvent(updated.ID, updated.Username, updated.Role))

	s.logger.Info("user updated", "user_id", updated.ID, "username", updated.Username, "actor_id", internal.UserIDFromContext(ctx))
	return updated, nil
}

// DeleteUser removes an account. Self-deletion is rejected before anything
// else happens.
func (s *Service) DeleteUser(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return internal.ErrSelfDeletion
	}

	if _, err := s.repo.GetByID(id); err != nil {
		if err == ErrNotFound {
			return internal.ErrUserNotFound
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}

	s.bus.PublishSync(ctx, events.NewUserDeletedEvent(id, actorID))
	s.logger.Info("user deleted", "user_id", id, "deleted_by", actorID)
	return nil
}

// ResetPassword sets a new password on behalf of an administrator.
func (s *Service) ResetPassword(ctx context.Context, id int64, dto *ResetPasswordDTO, actorID int64) error {
	if dto.Password == "" {
		return internal.ErrPasswordRequired
	}
	if dto.Password != dto.PasswordConfirm {
		return internal.ErrPasswordMismatch
	}

	target, err := s.GetByID(id)
	if err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	if err := s.repo.UpdatePassword(id, hash); err != nil {
		s.logger.Error("failed to reset password", "error", err, "user_id", id)
		return err
	}

	s.bus.Publish(ctx, events.NewUserPasswordResetEvent(id, target.Email, actorID))
	s.logger.Info("password reset", "user_id", id, "reset_by", actorID)
	return nil
}

func (s *Service) loadCollections() ([]User, []employee.Employee, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		return nil, nil, err
	}
	accounts := make([]User, 0, len(models))
	for _, m := range models {
		accounts = append(accounts, *FromDataModel(m))
	}

	roster, err := s.employees.GetAllEmployees()
	if err != nil {
		return nil, nil, err
	}
	return accounts, roster, nil
}

// pruneStaleProjects drops assigned ids that no longer resolve to a live
// project. Stale ids already stored are tolerated for display, but a write
// never reintroduces them.
func (s *Service) pruneStaleProjects(assigned []string) ([]string, error) {
	if len(assigned) == 0 {
		return []string{}, nil
	}

	forest, err := s.projects.LoadForest()
	if err != nil {
		return nil, err
	}

	live := project.NewSelection(forest.LiveIDs()...)
	out := make([]string, 0, len(assigned))
	seen := make(map[string]struct{}, len(assigned))
	for _, id := range assigned {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if live.Contains(id) {
			out = append(out, id)
		}
	}
	return out, nil
}
