package user

import "time"

// User is the persistence model for an application account.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	EmpID        string    `json:"emp_id" gorm:"column:emp_id;not null"`
	Email        string    `json:"email"`
	Role         string    `json:"role" gorm:"not null"`
	PasswordHash string    `json:"-"` // Never expose password hash
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserProject is one row of an account's ordered project allow-list.
// No rows at all means the account sees every project.
type UserProject struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	UserID    int64  `json:"user_id" gorm:"column:user_id;index;not null"`
	ProjectID string `json:"project_id" gorm:"column:project_id;not null"`
	Position  int    `json:"position" gorm:"column:position;not null"`
}

func (UserProject) TableName() string {
	return "user_projects"
}
