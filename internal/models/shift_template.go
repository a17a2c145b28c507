package models

import "time"

// ShiftTemplate is a reusable time/position/capacity preset a manager
// applies when creating shifts. Name is unique per manager.
type ShiftTemplate struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(120);not null;uniqueIndex:idx_template_manager_name" json:"name"`
	StartTime   string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string `gorm:"type:varchar(5);not null" json:"end_time"`
	PositionID  uint64 `gorm:"not null" json:"position_id"`
	Capacity    int    `gorm:"not null;default:1" json:"capacity"`
	CreatedByID uint64 `gorm:"not null;uniqueIndex:idx_template_manager_name" json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Position  Position `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	CreatedBy User     `gorm:"foreignKey:CreatedByID" json:"-"`
}
