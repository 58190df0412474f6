package postgres

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/employee"
	"github.com/frahmantamala/user-administration/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.RepositoryAPI interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

// GetAll retrieves the whole roster mirror
func (r *EmployeeRepository) GetAll() ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.db.Order("emp_id ASC").Find(&employees).Error
	return employees, err
}

// GetByEmpID retrieves a roster entry, matching case-insensitively
func (r *EmployeeRepository) GetByEmpID(empID string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("LOWER(emp_id) = LOWER(?)", empID).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

// ReplaceAll swaps the mirror for the authoritative roster in one transaction
func (r *EmployeeRepository) ReplaceAll(employees []*employeeDatamodel.Employee) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM employees").Error; err != nil {
			return err
		}
		for _, emp := range employees {
			emp.SyncedAt = now
			if err := tx.Create(emp).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
