package project

import (
	"log/slog"

	internal "github.com/frahmantamala/user-administration/internal"
	projectDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/project"
)

type RepositoryAPI interface {
	GetAll() ([]*projectDatamodel.Project, error)
	GetByID(id string) (*projectDatamodel.Project, error)
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

// LoadForest reads the project list in stored order and indexes it.
func (s *Service) LoadForest() (*Forest, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load projects", "error", err)
		return nil, err
	}
	return BuildForest(FromDataModels(models)), nil
}

func (s *Service) GetAllProjects() ([]Project, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load projects", "error", err)
		return nil, err
	}
	return FromDataModels(models), nil
}

// ToggleSelection applies one checkbox click with whole-subtree propagation
// and returns the new selection plus its summary label.
func (s *Service) ToggleSelection(dto ToggleSelectionDTO) (*SelectionResponse, error) {
	forest, err := s.LoadForest()
	if err != nil {
		return nil, err
	}

	if _, ok := forest.Get(dto.ProjectID); !ok {
		return nil, internal.ErrProjectNotFound
	}

	selected := forest.SetSelected(NewSelection(dto.SelectedIDs...), dto.ProjectID, dto.Selected)
	return &SelectionResponse{
		SelectedIDs: forest.NormalizeIDs(selected),
		Summary:     forest.SummaryLabel(selected),
	}, nil
}

// SelectAll replaces the selection with every live project, or clears it.
func (s *Service) SelectAll(dto SelectAllDTO) (*SelectionResponse, error) {
	forest, err := s.LoadForest()
	if err != nil {
		return nil, err
	}

	selected := forest.SelectAll(dto.Selected)
	return &SelectionResponse{
		SelectedIDs: forest.NormalizeIDs(selected),
		Summary:     forest.SummaryLabel(selected),
	}, nil
}

// Summary derives the label for a caller-owned selection.
func (s *Service) Summary(dto SummaryDTO) (*SelectionResponse, error) {
	forest, err := s.LoadForest()
	if err != nil {
		return nil, err
	}

	selected := NewSelection(dto.SelectedIDs...)
	return &SelectionResponse{
		SelectedIDs: forest.NormalizeIDs(selected),
		Summary:     forest.SummaryLabel(selected),
	}, nil
}

// Tree renders the visible rows for the given expansion and selection state,
// both of which stay caller-owned.
func (s *Service) Tree(expandedIDs, selectedIDs []string) (*TreeResponse, error) {
	forest, err := s.LoadForest()
	if err != nil {
		return nil, err
	}

	selector := NewSelector()
	selector.Open()
	for _, id := range expandedIDs {
		selector.Expand(id)
	}

	selected := NewSelection(selectedIDs...)
	return &TreeResponse{
		Nodes:   selector.VisibleNodes(forest, selected),
		Summary: forest.SummaryLabel(selected),
	}, nil
}
