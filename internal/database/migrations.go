package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Shift indexes for calendar range queries and workflow scans
		{"shifts", "idx_shifts_created_by_date", "created_by_id, date"},
		{"shifts", "idx_shifts_status", "status"},
		{"shifts", "idx_shifts_position_id", "position_id"},

		// Assignment indexes
		{"assignments", "idx_assignments_shift_id", "shift_id"},
		{"assignments", "idx_assignments_employee_id", "employee_id"},

		// Unavailability lookup by employee and date
		{"unavailabilities", "idx_unavailabilities_employee_date", "employee_id, date"},

		// Template lookup per manager
		{"shift_templates", "idx_shift_templates_created_by", "created_by_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
