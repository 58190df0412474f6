package project

import "time"

// Project is one node of the project forest. ParentID of nil marks a root;
// ordering within a level follows the position column.
type Project struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	ParentID  *string   `json:"parent_id,omitempty" gorm:"column:parent_id"`
	Position  int       `json:"position" gorm:"column:position;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
