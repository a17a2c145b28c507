package database

import (
	"gorm.io/gorm"

	"github.com/shiftflow/shiftflow-api/internal/utils"
)

// ActiveShifts excludes soft-deleted shifts. Every read path that serves
// calendars or workflow candidates goes through this scope; only the
// undo restore path queries deleted rows directly.
func ActiveShifts(db *gorm.DB) *gorm.DB {
	return db.Where("shifts.is_deleted = ?", false)
}

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
