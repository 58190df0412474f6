package employee

import (
	"log/slog"
	"strings"

	employeeDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	GetAll() ([]*employeeDatamodel.Employee, error)
	GetByEmpID(empID string) (*employeeDatamodel.Employee, error)
	ReplaceAll(employees []*employeeDatamodel.Employee) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllEmployees() ([]Employee, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get employees from repository", "error", err)
		return nil, err
	}

	employees := make([]Employee, 0, len(models))
	for _, m := range models {
		employees = append(employees, *FromDataModel(m))
	}
	return employees, nil
}

// FindByEmpID looks up a roster entry, matching the id case-insensitively.
// Returns ErrNotFound when the roster has no such employee.
func (s *Service) FindByEmpID(empID string) (*Employee, error) {
	empID = strings.TrimSpace(empID)
	if empID == "" {
		return nil, ErrNotFound
	}

	model, err := s.repo.GetByEmpID(empID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, ErrNotFound
	}
	return FromDataModel(model), nil
}

// SyncRoster replaces the local mirror with the authoritative list fetched
// from the HR endpoint.
func (s *Service) SyncRoster(employees []Employee) error {
	models := make([]*employeeDatamodel.Employee, 0, len(employees))
	for i := range employees {
		models = append(models, ToDataModel(&employees[i]))
	}

	if err := s.repo.ReplaceAll(models); err != nil {
		s.logger.Error("roster sync failed", "error", err, "count", len(models))
		return err
	}

	s.logger.Info("roster synced", "count", len(models))
	return nil
}
