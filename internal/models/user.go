package models

import (
	"time"
)

type UserRole string

const (
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

type User struct {
	ID           uint64   `gorm:"primarykey" json:"id"`
	Username     string   `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string   `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string   `gorm:"type:varchar(150)" json:"last_name"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	EmployeeID   string   `gorm:"type:varchar(20);uniqueIndex;not null" json:"employee_id"`
	Phone        string   `gorm:"type:varchar(50)" json:"phone"`
	PositionID   *uint64  `json:"position_id"`
	IsActive     bool     `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Position       *Position        `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	Assignments    []Assignment     `gorm:"foreignKey:EmployeeID" json:"-"`
	Unavailability []Unavailability `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// FullName returns "First Last", falling back to the username.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}
