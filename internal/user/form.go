package user

import (
	"strings"

	internal "github.com/frahmantamala/user-administration/internal"
	"github.com/frahmantamala/user-administration/internal/core/common/validation"
	"github.com/frahmantamala/user-administration/internal/employee"
)

// EmployeeStatus is the state of the form's employee-id binding. Name and
// email are only ever derived from a successful roster lookup, never typed
// by hand, so the status gates submission.
type EmployeeStatus string

const (
	EmployeeIdle    EmployeeStatus = "idle"
	EmployeeValid   EmployeeStatus = "valid"
	EmployeeInvalid EmployeeStatus = "invalid"
)

type FormMode string

const (
	ModeAdd  FormMode = "add"
	ModeEdit FormMode = "edit"
)

// FormSession drives one add/edit interaction. It only reads the collections
// handed to it and emits a Submission on success; nothing is persisted here.
type FormSession struct {
	Mode           FormMode
	Original       *User
	EmployeeStatus EmployeeStatus

	// derived from the roster on a successful lookup
	EmpID string
	Name  string
	Email string
}

// NewAddForm starts a blank add-mode session.
func NewAddForm() *FormSession {
	return &FormSession{
		Mode:           ModeAdd,
		EmployeeStatus: EmployeeIdle,
	}
}

// NewEditForm starts an edit-mode session. Existing accounts are assumed
// already bound to a legitimate employee, so the session opens valid without
// re-checking the roster.
func NewEditForm(original *User) *FormSession {
	return &FormSession{
		Mode:           ModeEdit,
		Original:       original,
		EmployeeStatus: EmployeeValid,
		EmpID:          original.EmpID,
		Name:           original.Name,
		Email:          original.Email,
	}
}

func (f *FormSession) clearDerived() {
	f.EmpID = ""
	f.Name = ""
	f.Email = ""
}

// LookupEmployee re-runs the employee binding for the given search id. The
// returned error is the blocking notice to surface (only the already-claimed
// case produces one); the session state carries the outcome either way.
func (f *FormSession) LookupEmployee(searchID string, roster []employee.Employee, accounts []User) *internal.AppError {
	searchID = strings.TrimSpace(searchID)
	if searchID == "" {
		f.EmployeeStatus = EmployeeIdle
		f.clearDerived()
		return nil
	}

	var match *employee.Employee
	for i := range roster {
		if employee.SameEmpID(roster[i].EmpID, searchID) {
			match = &roster[i]
			break
		}
	}

	if match == nil {
		f.EmployeeStatus = EmployeeInvalid
		f.clearDerived()
		return nil
	}

	for i := range accounts {
		if f.Original != nil && accounts[i].ID == f.Original.ID {
			continue
		}
		if employee.SameEmpID(accounts[i].EmpID, match.EmpID) {
			f.EmployeeStatus = EmployeeInvalid
			f.clearDerived()
			return internal.ErrEmployeeClaimed
		}
	}

	f.EmployeeStatus = EmployeeValid
	f.EmpID = match.EmpID
	f.Name = match.Name
	f.Email = match.Email
	return nil
}

// SubmitInput carries the hand-editable fields of the form. Name and email
// are deliberately absent: they live on the session, derived from the roster.
type SubmitInput struct {
	Username         string
	Role             string
	Password         string
	PasswordConfirm  string
	AssignedProjects []string
}

// Submission is the validated outcome of a form session. Password is the
// plaintext to hash by the caller; empty in edit mode means keep the current
// one.
type Submission struct {
	Account  User
	Password string
}

// Submit runs the full validation chain in order, first failure wins, and
// assembles the record only when everything passed. A failed submit has no
// side effects.
func (f *FormSession) Submit(in SubmitInput, accounts []User) (*Submission, *internal.AppError) {
	if f.EmployeeStatus != EmployeeValid {
		return nil, internal.ErrEmployeeNotFound
	}

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, err
	}

	for i := range accounts {
		if f.Original != nil && accounts[i].ID == f.Original.ID {
			continue
		}
		if SameUsername(accounts[i].Username, in.Username) {
			return nil, internal.ErrDuplicateUsername
		}
	}

	if f.Mode == ModeAdd {
		if in.Password == "" {
			return nil, internal.ErrPasswordRequired
		}
		if in.Password != in.PasswordConfirm {
			return nil, internal.ErrPasswordMismatch
		}
	} else if in.Password != "" && in.Password != in.PasswordConfirm {
		return nil, internal.ErrPasswordMismatch
	}

	if err := validation.ValidateRole(in.Role, Roles()); err != nil {
		return nil, err
	}

	if err := validation.ValidateName(f.Name); err != nil {
		return nil, err
	}

	assigned := in.AssignedProjects
	if assigned == nil {
		assigned = []string{}
	}

	account := User{
		Name:             f.Name,
		Username:         in.Username,
		EmpID:            f.EmpID,
		Email:            f.Email,
		Role:             in.Role,
		IsActive:         true,
		AssignedProjects: assigned,
	}

	if f.Mode == ModeEdit {
		account.ID = f.Original.ID
		account.IsActive = f.Original.IsActive
		account.PasswordHash = f.Original.PasswordHash
		account.CreatedAt = f.Original.CreatedAt
	}

	return &Submission{Account: account, Password: in.Password}, nil
}
