package employee

import "time"

// Employee mirrors one entry of the external HR roster. The roster is
// authoritative; this table is refreshed by the roster sync worker and is
// read-only for the rest of the service.
type Employee struct {
	EmpID    string    `json:"emp_id" gorm:"column:emp_id;primaryKey"`
	Name     string    `json:"name" gorm:"not null"`
	Email    *string   `json:"email,omitempty"`
	SyncedAt time.Time `json:"synced_at" gorm:"column:synced_at"`
}

func (Employee) TableName() string {
	return "employees"
}
