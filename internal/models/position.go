package models

import "time"

// Position is a job role required by shifts and held by employees.
// Deactivation via IsActive hides a position from pickers without
// breaking existing shift or employee references.
type Position struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	Name     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Employees []User          `gorm:"foreignKey:PositionID" json:"-"`
	Shifts    []Shift         `gorm:"foreignKey:PositionID" json:"-"`
	Templates []ShiftTemplate `gorm:"foreignKey:PositionID" json:"-"`
}
