package user

import (
	"errors"
	"strings"
	"time"

	userDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/user"
)

// Account roles. Role is a closed enum; anything else is rejected at
// validation time.
const (
	RoleAdmin          = "Admin"
	RoleProjectManager = "Project Manager"
	RoleDataEntry      = "Data Entry"
	RoleSafety         = "Safety"
)

func Roles() []string {
	return []string{RoleAdmin, RoleProjectManager, RoleDataEntry, RoleSafety}
}

// User is an application account. An empty AssignedProjects list means the
// account is unrestricted and sees every project; a non-empty list is an
// explicit allow-list in display order.
type User struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Username         string    `json:"username"`
	EmpID            string    `json:"emp_id"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	PasswordHash     string    `json:"-"`
	IsActive         bool      `json:"is_active"`
	AssignedProjects []string  `json:"assigned_projects"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SameUsername compares usernames the way uniqueness is enforced.
func SameUsername(a, b string) bool {
	return strings.EqualFold(a, b)
}

var ErrNotFound = errors.New("user not found")

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		EmpID:        u.EmpID,
		Email:        u.Email,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:               u.ID,
		Name:             u.Name,
		Username:         u.Username,
		EmpID:            u.EmpID,
		Email:            u.Email,
		Role:             u.Role,
		PasswordHash:     u.PasswordHash,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
		AssignedProjects: []string{},
	}
}

func FromDataModelWithProjects(u *userDatamodel.User, projectIDs []string) *User {
	domainUser := FromDataModel(u)
	if projectIDs == nil {
		projectIDs = []string{}
	}
	domainUser.AssignedProjects = projectIDs
	return domainUser
}
