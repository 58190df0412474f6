package employee

import (
	"errors"
	"strings"

	employeeDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/employee"
)

// Employee is one entry of the external HR roster, read-only inside this
// service. EmpID comparison is case-insensitive everywhere.
type Employee struct {
	EmpID string `json:"emp_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

var ErrNotFound = errors.New("employee not found")

// SameEmpID compares two employee ids the way the roster does.
func SameEmpID(a, b string) bool {
	return strings.EqualFold(a, b)
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	emp := &Employee{
		EmpID: e.EmpID,
		Name:  e.Name,
	}
	if e.Email != nil {
		emp.Email = *e.Email
	}
	return emp
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	model := &employeeDatamodel.Employee{
		EmpID: e.EmpID,
		Name:  e.Name,
	}
	if e.Email != "" {
		email := e.Email
		model.Email = &email
	}
	return model
}
