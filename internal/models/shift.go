package models

import (
	"time"
)

type ShiftStatus string

const (
	ShiftStatusDraft     ShiftStatus = "draft"
	ShiftStatusPublished ShiftStatus = "published"
)

// Shift is a scheduled work period on a single calendar day.
//
// Date is stored as "2006-01-02" and StartTime/EndTime as "15:04";
// zero-padded strings order lexicographically, so range filters and the
// unavailability date-equality join behave the same on every driver.
//
// Soft delete: IsDeleted hides the row from normal queries (see
// database.ActiveShifts) but keeps it recoverable for undo.
type Shift struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	Date      string `gorm:"type:varchar(10);not null;index" json:"date"`
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`

	PositionID uint64      `gorm:"not null" json:"position_id"`
	Capacity   int         `gorm:"not null;default:1" json:"capacity"`
	Status     ShiftStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	IsDeleted  bool        `gorm:"not null;default:false;index" json:"-"`

	CreatedByID uint64    `gorm:"not null;index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Position    Position     `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	CreatedBy   User         `gorm:"foreignKey:CreatedByID" json:"-"`
	Assignments []Assignment `gorm:"foreignKey:ShiftID" json:"assignments,omitempty"`
}

// IsPast reports whether the shift has already ended, used for graying
// out past shifts in calendar payloads.
func (s *Shift) IsPast(now time.Time) bool {
	end, err := time.ParseInLocation("2006-01-02 15:04", s.Date+" "+s.EndTime, now.Location())
	if err != nil {
		return false
	}
	return end.Before(now)
}
