package postgres

import (
	"time"

	userDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/user"
	"github.com/frahmantamala/user-administration/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.RepositoryAPI interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

// GetAll retrieves every account ordered by id
func (r *UserRepository) GetAll() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

// GetByID retrieves an account by its ID
func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetAssignedProjects returns the account's allow-list in stored order
func (r *UserRepository) GetAssignedProjects(userID int64) ([]string, error) {
	var rows []userDatamodel.UserProject
	err := r.db.Where("user_id = ?", userID).Order("position ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProjectID)
	}
	return ids, nil
}

// Create saves a new account and its allow-list in one transaction
func (r *UserRepository) Create(u *userDatamodel.User, projectIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		u.CreatedAt = time.Now()
		u.UpdatedAt = time.Now()
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return replaceAssignedProjects(tx, u.ID, projectIDs)
	})
}

// Update replaces the editable fields and the allow-list, preserving the id
func (r *UserRepository) Update(u *userDatamodel.User, projectIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		u.UpdatedAt = time.Now()
		if err := tx.Save(u).Error; err != nil {
			return err
		}
		return replaceAssignedProjects(tx, u.ID, projectIDs)
	})
}

// Delete removes the account and its allow-list
func (r *UserRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&userDatamodel.UserProject{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
	})
}

// UpdatePassword sets a new password hash only
func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}

func replaceAssignedProjects(tx *gorm.DB, userID int64, projectIDs []string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&userDatamodel.UserProject{}).Error; err != nil {
		return err
	}
	for i, pid := range projectIDs {
		row := userDatamodel.UserProject{
			UserID:    userID,
			ProjectID: pid,
			Position:  i,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
