package user

// CreateUserDTO is the add-form payload. The employee id is re-validated
// against the roster server-side; name and email are never taken from the
// client.
type CreateUserDTO struct {
	EmpID            string   `json:"emp_id"`
	Username         string   `json:"username"`
	Role             string   `json:"role"`
	Password         string   `json:"password"`
	PasswordConfirm  string   `json:"password_confirm"`
	AssignedProjects []string `json:"assigned_projects"`
}

// UpdateUserDTO is the edit-form payload. A blank password keeps the current
// one.
type UpdateUserDTO struct {
	EmpID            string   `json:"emp_id"`
	Username         string   `json:"username"`
	Role             string   `json:"role"`
	Password         string   `json:"password"`
	PasswordConfirm  string   `json:"password_confirm"`
	AssignedProjects []string `json:"assigned_projects"`
}

// ResetPasswordDTO is the admin reset payload.
type ResetPasswordDTO struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type UsersResponse struct {
	Users []*User `json:"users"`
}
