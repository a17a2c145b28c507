package services

import (
	"errors"
	"fmt"

	"github.com/shiftflow/shiftflow-api/internal/database"
	"github.com/shiftflow/shiftflow-api/internal/interval"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleService decides which employees may be attached to a shift and
// reconciles a shift's persisted assignment set against a candidate list.
//
// It queries GORM directly rather than going through the repositories:
// validation reads must share the transaction of the subsequent write,
// and the row lock on the shift serializes concurrent synchronizations.
type ScheduleService struct {
	db *gorm.DB
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

// ValidateAssignment checks whether the candidate employee set may become
// the shift's assignment set. Read-only; rules are checked in a fixed
// order and the first violation is returned as a typed error.
func (s *ScheduleService) ValidateAssignment(shift *models.Shift, employeeIDs []uint64) error {
	return s.validateAssignment(s.db, shift, uniqueUint64(employeeIDs))
}

// SyncAssignments makes the shift's persisted assignment set exactly equal
// the candidate set. Validation and writes run in one transaction with
// the shift row locked, so concurrent syncs on the same shift cannot both
// validate against a stale snapshot. On any failure nothing is changed.
func (s *ScheduleService) SyncAssignments(shiftID, managerID uint64, employeeIDs []uint64) error {
	employeeIDs = uniqueUint64(employeeIDs)

	return s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Scopes(database.ActiveShifts).Where("shifts.created_by_id = ?", managerID)
		if tx.Dialector.Name() != "sqlite" {
			// sqlite has no FOR UPDATE; its single-writer lock already
			// serializes the transaction.
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var shift models.Shift
		if err := query.First(&shift, shiftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftNotFound
			}
			return fmt.Errorf("failed to load shift: %w", err)
		}

		if err := s.validateAssignment(tx, &shift, employeeIDs); err != nil {
			return err
		}

		// Drop assignments no longer wanted.
		remove := tx.Where("shift_id = ?", shift.ID)
		if len(employeeIDs) > 0 {
			remove = remove.Where("employee_id NOT IN ?", employeeIDs)
		}
		if err := remove.Delete(&models.Assignment{}).Error; err != nil {
			return fmt.Errorf("failed to remove assignments: %w", err)
		}

		if len(employeeIDs) == 0 {
			return nil
		}

		// Insert only the missing ones; survivors stay untouched.
		var existing []uint64
		err := tx.Model(&models.Assignment{}).
			Where("shift_id = ? AND employee_id IN ?", shift.ID, employeeIDs).
			Pluck("employee_id", &existing).Error
		if err != nil {
			return fmt.Errorf("failed to read existing assignments: %w", err)
		}

		existingSet := make(map[uint64]struct{}, len(existing))
		for _, id := range existing {
			existingSet[id] = struct{}{}
		}

		var toCreate []models.Assignment
		for _, id := range employeeIDs {
			if _, ok := existingSet[id]; ok {
				continue
			}
			toCreate = append(toCreate, models.Assignment{ShiftID: shift.ID, EmployeeID: id})
		}
		if len(toCreate) == 0 {
			return nil
		}
		if err := tx.Create(&toCreate).Error; err != nil {
			return fmt.Errorf("failed to create assignments: %w", err)
		}
		return nil
	})
}

// validateAssignment runs the four assignment rules in order, failing
// fast on the first violation: position match, capacity, availability,
// schedule overlap.
func (s *ScheduleService) validateAssignment(tx *gorm.DB, shift *models.Shift, employeeIDs []uint64) error {
	if err := s.validatePositionMatch(tx, shift, employeeIDs); err != nil {
		return err
	}

	if len(employeeIDs) > shift.Capacity {
		return &CapacityExceededError{Capacity: shift.Capacity, Requested: len(employeeIDs)}
	}

	for _, employeeID := range employeeIDs {
		if err := s.validateEmployeeAvailable(tx, employeeID, shift); err != nil {
			return err
		}
		if err := s.validateEmployeeNoOverlap(tx, employeeID, shift); err != nil {
			return err
		}
	}
	return nil
}

// validatePositionMatch requires every candidate to be an active user
// with the employee role holding the shift's position.
func (s *ScheduleService) validatePositionMatch(tx *gorm.DB, shift *models.Shift, employeeIDs []uint64) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	var validIDs []uint64
	err := tx.Model(&models.User{}).
		Where("id IN ? AND role = ? AND is_active = ? AND position_id = ?",
			employeeIDs, models.RoleEmployee, true, shift.PositionID).
		Pluck("id", &validIDs).Error
	if err != nil {
		return fmt.Errorf("failed to verify employee positions: %w", err)
	}

	validSet := make(map[uint64]struct{}, len(validIDs))
	for _, id := range validIDs {
		validSet[id] = struct{}{}
	}

	var invalid []uint64
	for _, id := range employeeIDs {
		if _, ok := validSet[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return &PositionMismatchError{EmployeeIDs: invalid}
	}
	return nil
}

func (s *ScheduleService) validateEmployeeAvailable(tx *gorm.DB, employeeID uint64, shift *models.Shift) error {
	var count int64
	err := tx.Model(&models.Unavailability{}).
		Where("employee_id = ? AND date = ?", employeeID, shift.Date).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check unavailability: %w", err)
	}
	if count > 0 {
		return &UnavailableError{EmployeeID: employeeID, Date: shift.Date}
	}
	return nil
}

// validateEmployeeNoOverlap rejects a candidate already assigned to
// another active shift on the same date whose interval overlaps.
func (s *ScheduleService) validateEmployeeNoOverlap(tx *gorm.DB, employeeID uint64, shift *models.Shift) error {
	var others []models.Shift
	err := tx.Scopes(database.ActiveShifts).
		Joins("JOIN assignments ON assignments.shift_id = shifts.id").
		Where("assignments.employee_id = ?", employeeID).
		Where("shifts.date = ?", shift.Date).
		Where("shifts.id <> ?", shift.ID).
		Preload("Position").
		Find(&others).Error
	if err != nil {
		return fmt.Errorf("failed to load same-day shifts: %w", err)
	}

	target := interval.Span{Start: shift.StartTime, End: shift.EndTime}
	for _, other := range others {
		if interval.Overlaps(target, interval.Span{Start: other.StartTime, End: other.EndTime}) {
			return &ScheduleConflictError{
				EmployeeID: employeeID,
				ShiftID:    other.ID,
				Position:   other.Position.Name,
				Date:       other.Date,
				StartTime:  other.StartTime,
				EndTime:    other.EndTime,
			}
		}
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
