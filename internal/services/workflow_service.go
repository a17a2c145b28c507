package services

import (
	"errors"
	"fmt"

	"github.com/shiftflow/shiftflow-api/internal/database"
	"github.com/shiftflow/shiftflow-api/internal/ledger"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"gorm.io/gorm"
)

// WorkflowService performs the bulk and single-shift lifecycle
// transitions: publish, soft delete, and the reversals behind undo.
// Every operation is scoped to shifts owned by the requesting manager.
type WorkflowService struct {
	db *gorm.DB
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

// managerShifts builds the base query for a manager's active shifts,
// optionally narrowed by date range or explicit IDs. Ownership lives in
// the query itself, so no operation can reach another manager's shifts.
func (s *WorkflowService) managerShifts(managerID uint64, from, to string, shiftIDs []uint64) *gorm.DB {
	query := s.db.Model(&models.Shift{}).
		Scopes(database.ActiveShifts).
		Where("shifts.created_by_id = ?", managerID)
	if len(shiftIDs) > 0 {
		query = query.Where("shifts.id IN ?", shiftIDs)
	}
	if from != "" {
		query = query.Where("shifts.date >= ?", from)
	}
	if to != "" {
		query = query.Where("shifts.date <= ?", to)
	}
	return query
}

// blockedShiftIDs finds shifts in the candidate query that cannot be
// published because an assigned employee is unavailable on the shift date.
func (s *WorkflowService) blockedShiftIDs(candidates *gorm.DB) ([]uint64, error) {
	var ids []uint64
	err := candidates.
		Joins("JOIN assignments ON assignments.shift_id = shifts.id").
		Joins("JOIN unavailabilities ON unavailabilities.employee_id = assignments.employee_id AND unavailabilities.date = shifts.date").
		Distinct().
		Pluck("shifts.id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find blocked shifts: %w", err)
	}
	return ids, nil
}

// publishDrafts publishes every non-blocked draft in the selection and
// returns the (published, blocked) partition. The batch is not one
// cross-shift transaction: blocked shifts stay draft while the rest go out.
func (s *WorkflowService) publishDrafts(managerID uint64, from, to string, shiftIDs []uint64) ([]uint64, []uint64, error) {
	drafts := func() *gorm.DB {
		return s.managerShifts(managerID, from, to, shiftIDs).
			Where("shifts.status = ?", models.ShiftStatusDraft)
	}

	blocked, err := s.blockedShiftIDs(drafts())
	if err != nil {
		return nil, nil, err
	}

	candidates := drafts()
	if len(blocked) > 0 {
		candidates = candidates.Where("shifts.id NOT IN ?", blocked)
	}

	var published []uint64
	if err := candidates.Pluck("shifts.id", &published).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list publishable shifts: %w", err)
	}

	if len(published) > 0 {
		err := s.db.Model(&models.Shift{}).
			Where("id IN ? AND status = ?", published, models.ShiftStatusDraft).
			Update("status", models.ShiftStatusPublished).Error
		if err != nil {
			return nil, nil, fmt.Errorf("failed to publish shifts: %w", err)
		}
	}

	return published, blocked, nil
}

// PublishInRange publishes all of the manager's draft shifts within the
// inclusive date range. Returns published and blocked shift IDs.
func (s *WorkflowService) PublishInRange(managerID uint64, from, to string) ([]uint64, []uint64, error) {
	return s.publishDrafts(managerID, from, to, nil)
}

// PublishByIDs publishes the selected draft shifts by explicit ID.
func (s *WorkflowService) PublishByIDs(managerID uint64, shiftIDs []uint64) ([]uint64, []uint64, error) {
	if len(shiftIDs) == 0 {
		return nil, nil, nil
	}
	return s.publishDrafts(managerID, "", "", uniqueUint64(shiftIDs))
}

// DeleteInRange soft-deletes the manager's draft shifts within the
// inclusive date range. Published shifts are left alone so a date sweep
// cannot take down a live schedule.
func (s *WorkflowService) DeleteInRange(managerID uint64, from, to string) ([]uint64, error) {
	query := s.managerShifts(managerID, from, to, nil).
		Where("shifts.status = ?", models.ShiftStatusDraft)
	return s.softDelete(query)
}

// DeleteByIDs soft-deletes the selected shifts regardless of status.
func (s *WorkflowService) DeleteByIDs(managerID uint64, shiftIDs []uint64) ([]uint64, error) {
	if len(shiftIDs) == 0 {
		return nil, nil
	}
	query := s.managerShifts(managerID, "", "", uniqueUint64(shiftIDs))
	return s.softDelete(query)
}

func (s *WorkflowService) softDelete(candidates *gorm.DB) ([]uint64, error) {
	var ids []uint64
	if err := candidates.Pluck("shifts.id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list shifts to delete: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	err := s.db.Model(&models.Shift{}).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Update("is_deleted", true).Error
	if err != nil {
		return nil, fmt.Errorf("failed to delete shifts: %w", err)
	}
	return ids, nil
}

// PublishOne publishes a single draft shift. Unlike the bulk forms, a
// blocked shift fails the whole call with ErrScheduleConflictOnPublish.
func (s *WorkflowService) PublishOne(managerID, shiftID uint64) error {
	shift, err := s.findOwned(managerID, shiftID)
	if err != nil {
		return err
	}
	if shift.Status == models.ShiftStatusPublished {
		return ErrAlreadyPublished
	}

	blocked, err := s.blockedShiftIDs(
		s.managerShifts(managerID, "", "", []uint64{shiftID}),
	)
	if err != nil {
		return err
	}
	if len(blocked) > 0 {
		return ErrScheduleConflictOnPublish
	}

	err = s.db.Model(&models.Shift{}).
		Where("id = ? AND status = ?", shift.ID, models.ShiftStatusDraft).
		Update("status", models.ShiftStatusPublished).Error
	if err != nil {
		return fmt.Errorf("failed to publish shift: %w", err)
	}
	return nil
}

// DeleteOne soft-deletes a single owned, active shift.
func (s *WorkflowService) DeleteOne(managerID, shiftID uint64) error {
	shift, err := s.findOwned(managerID, shiftID)
	if err != nil {
		return err
	}

	err = s.db.Model(&models.Shift{}).
		Where("id = ?", shift.ID).
		Update("is_deleted", true).Error
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

func (s *WorkflowService) findOwned(managerID, shiftID uint64) (*models.Shift, error) {
	var shift models.Shift
	err := s.db.Scopes(database.ActiveShifts).
		Where("shifts.created_by_id = ?", managerID).
		First(&shift, shiftID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to load shift: %w", err)
	}
	return &shift, nil
}

// UndoAction reverses a recorded action and returns how many shifts
// actually changed. Each kind re-checks current state, so undoing an
// action whose shifts have since moved on quietly reverts nothing:
//   - create: hide the created shifts (soft delete, never a hard delete)
//   - delete: restore only shifts that are still flagged deleted
//   - publish: revert to draft only shifts that are still published
func (s *WorkflowService) UndoAction(managerID uint64, kind ledger.ActionKind, shiftIDs []uint64) (int64, error) {
	if len(shiftIDs) == 0 {
		return 0, nil
	}
	shiftIDs = uniqueUint64(shiftIDs)

	switch kind {
	case ledger.ActionCreate:
		result := s.db.Model(&models.Shift{}).
			Where("created_by_id = ? AND id IN ? AND is_deleted = ?", managerID, shiftIDs, false).
			Update("is_deleted", true)
		return result.RowsAffected, result.Error

	case ledger.ActionDelete:
		result := s.db.Model(&models.Shift{}).
			Where("created_by_id = ? AND id IN ? AND is_deleted = ?", managerID, shiftIDs, true).
			Update("is_deleted", false)
		return result.RowsAffected, result.Error

	case ledger.ActionPublish:
		result := s.db.Model(&models.Shift{}).
			Where("created_by_id = ? AND id IN ? AND is_deleted = ? AND status = ?",
				managerID, shiftIDs, false, models.ShiftStatusPublished).
			Update("status", models.ShiftStatusDraft)
		return result.RowsAffected, result.Error

	default:
		return 0, fmt.Errorf("unknown undo action %q", kind)
	}
}
