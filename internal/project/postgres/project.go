package postgres

import (
	"github.com/frahmantamala/user-administration/internal/project"
	projectDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/project"
	"gorm.io/gorm"
)

// ProjectRepository implements the project.RepositoryAPI interface using GORM
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

// GetAll retrieves the full forest in stored render order
func (r *ProjectRepository) GetAll() ([]*projectDatamodel.Project, error) {
	var projects []*projectDatamodel.Project
	err := r.db.Order("position ASC").Find(&projects).Error
	return projects, err
}

// GetByID retrieves a single project
func (r *ProjectRepository) GetByID(id string) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, project.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
