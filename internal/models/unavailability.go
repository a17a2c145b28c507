package models

import "time"

// Unavailability records a single date an employee cannot work.
// One row per (employee, date); toggled on and off by the employee.
type Unavailability struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	EmployeeID uint64    `gorm:"not null;uniqueIndex:idx_unavailability_employee_date" json:"employee_id"`
	Date       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_unavailability_employee_date;index" json:"date"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Employee User `gorm:"foreignKey:EmployeeID" json:"-"`
}
