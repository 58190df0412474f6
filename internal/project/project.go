package project

import (
	"errors"

	projectDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/project"
)

// Project is one node of the project forest. A nil ParentID marks a root.
// Names are display-only and not unique; identity is by ID.
type Project struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

var ErrNotFound = errors.New("project not found")

func ToDataModel(p *Project, position int) *projectDatamodel.Project {
	return &projectDatamodel.Project{
		ID:       p.ID,
		Name:     p.Name,
		ParentID: p.ParentID,
		Position: position,
	}
}

func FromDataModel(p *projectDatamodel.Project) *Project {
	return &Project{
		ID:       p.ID,
		Name:     p.Name,
		ParentID: p.ParentID,
	}
}

func FromDataModels(models []*projectDatamodel.Project) []Project {
	projects := make([]Project, 0, len(models))
	for _, m := range models {
		projects = append(projects, *FromDataModel(m))
	}
	return projects
}
