package models

import "time"

// Assignment links one employee to one shift. The composite primary key
// doubles as the unique (shift, employee) constraint. Rows are created
// and removed only by the assignment synchronizer.
type Assignment struct {
	ShiftID    uint64    `gorm:"primarykey" json:"shift_id"`
	EmployeeID uint64    `gorm:"primarykey" json:"employee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Shift    Shift `gorm:"foreignKey:ShiftID" json:"-"`
	Employee User  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
