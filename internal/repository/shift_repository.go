package repository

import (
	"github.com/shiftflow/shiftflow-api/internal/database"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"gorm.io/gorm"
)

// GormShiftRepository is a GORM implementation of ShiftRepository
type GormShiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new ShiftRepository
func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &GormShiftRepository{db: db}
}

// Create creates a new shift
func (r *GormShiftRepository) Create(shift *models.Shift) error {
	return r.db.Create(shift).Error
}

// Save persists changes to an existing shift
func (r *GormShiftRepository) Save(shift *models.Shift) error {
	return r.db.Save(shift).Error
}

// FindOwned finds an active shift owned by the given manager
func (r *GormShiftRepository) FindOwned(id, managerID uint64, preload ...string) (*models.Shift, error) {
	var shift models.Shift
	query := r.db.Scopes(database.ActiveShifts).Where("shifts.created_by_id = ?", managerID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&shift, id).Error; err != nil {
		return nil, err
	}

	return &shift, nil
}

// List retrieves shifts matching the filter, ordered chronologically
func (r *GormShiftRepository) List(filter ShiftFilter) ([]models.Shift, error) {
	var shifts []models.Shift

	query := r.db.Model(&models.Shift{}).
		Scopes(database.ActiveShifts).
		Where("shifts.created_by_id = ?", filter.ManagerID)

	if len(filter.ShiftIDs) > 0 {
		query = query.Where("shifts.id IN ?", filter.ShiftIDs)
	}
	if filter.DateFrom != "" {
		query = query.Where("shifts.date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("shifts.date <= ?", filter.DateTo)
	}
	if len(filter.PositionIDs) > 0 {
		query = query.Where("shifts.position_id IN ?", filter.PositionIDs)
	}
	if filter.Status != nil {
		query = query.Where("shifts.status = ?", *filter.Status)
	}
	if filter.UnderstaffedOnly {
		assignedSubQuery := r.db.Model(&models.Assignment{}).
			Select("COUNT(*)").
			Where("assignments.shift_id = shifts.id")
		query = query.Where("(?) < shifts.capacity", assignedSubQuery)
	}

	err := query.
		Preload("Position").
		Preload("Assignments").
		Order("shifts.date, shifts.start_time").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListForEmployee retrieves published shifts assigned to an employee
func (r *GormShiftRepository) ListForEmployee(employeeID uint64, from, to string) ([]models.Shift, error) {
	var shifts []models.Shift

	assignmentSubQuery := r.db.Model(&models.Assignment{}).
		Select("1").
		Where("assignments.shift_id = shifts.id").
		Where("assignments.employee_id = ?", employeeID)

	err := r.db.Model(&models.Shift{}).
		Scopes(database.ActiveShifts).
		Where("EXISTS (?)", assignmentSubQuery).
		Where("shifts.date >= ? AND shifts.date <= ?", from, to).
		Where("shifts.status = ?", models.ShiftStatusPublished).
		Preload("Position").
		Order("shifts.date, shifts.start_time").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}

	return shifts, nil
}

// AssignedEmployeeIDs returns the employee IDs assigned to a shift
func (r *GormShiftRepository) AssignedEmployeeIDs(shiftID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Assignment{}).
		Where("shift_id = ?", shiftID).
		Pluck("employee_id", &ids).Error
	return ids, err
}

// HasUnavailableAssignee reports whether any assigned employee has an
// unavailability record for the given date
func (r *GormShiftRepository) HasUnavailableAssignee(shiftID uint64, date string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Assignment{}).
		Joins("JOIN unavailabilities ON unavailabilities.employee_id = assignments.employee_id").
		Where("assignments.shift_id = ? AND unavailabilities.date = ?", shiftID, date).
		Count(&count).Error
	return count > 0, err
}
