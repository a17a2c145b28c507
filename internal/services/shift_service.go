package services

import (
	"errors"
	"fmt"

	"github.com/shiftflow/shiftflow-api/internal/interval"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/repository"
	"github.com/shiftflow/shiftflow-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate      = errors.New("invalid date: expected YYYY-MM-DD")
	ErrInvalidCapacity  = errors.New("capacity must be at least 1")
	ErrInvalidStatus    = errors.New("status must be draft or published")
	ErrPositionNotFound = errors.New("position not found or inactive")
)

// ShiftService handles shift CRUD and calendar queries for managers and
// employees. Assignment changes go through ScheduleService; lifecycle
// transitions through WorkflowService.
type ShiftService struct {
	shiftRepo    repository.ShiftRepository
	positionRepo repository.PositionRepository
	scheduleSvc  *ScheduleService
}

// NewShiftService creates a new ShiftService
func NewShiftService(shiftRepo repository.ShiftRepository, positionRepo repository.PositionRepository, scheduleSvc *ScheduleService) *ShiftService {
	return &ShiftService{
		shiftRepo:    shiftRepo,
		positionRepo: positionRepo,
		scheduleSvc:  scheduleSvc,
	}
}

// CreateShiftInput represents input for creating a shift
type CreateShiftInput struct {
	ManagerID  uint64
	Date       string
	StartTime  string
	EndTime    string
	PositionID uint64
	Capacity   int
	Status     models.ShiftStatus
}

// UpdateShiftInput represents input for updating a shift; nil fields
// are left unchanged
type UpdateShiftInput struct {
	Date       *string
	StartTime  *string
	EndTime    *string
	PositionID *uint64
	Capacity   *int
	Status     *models.ShiftStatus
}

// CreateShift creates a new shift after validating date, time range,
// capacity, and position.
func (s *ShiftService) CreateShift(input CreateShiftInput) (*models.Shift, error) {
	date, err := normalizeDate(input.Date)
	if err != nil {
		return nil, err
	}
	span, err := interval.New(input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}
	if input.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	status := input.Status
	if status == "" {
		status = models.ShiftStatusDraft
	}
	if status != models.ShiftStatusDraft && status != models.ShiftStatusPublished {
		return nil, ErrInvalidStatus
	}

	if err := s.ensureActivePosition(input.PositionID); err != nil {
		return nil, err
	}

	shift := &models.Shift{
		Date:        date,
		StartTime:   span.Start,
		EndTime:     span.End,
		PositionID:  input.PositionID,
		Capacity:    input.Capacity,
		Status:      status,
		CreatedByID: input.ManagerID,
	}

	if err := s.shiftRepo.Create(shift); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	return s.GetShift(shift.ID, input.ManagerID)
}

// UpdateShift updates an owned shift's fields. When schedule-relevant
// fields change, the current assignment set is revalidated against the
// new values; a draft-to-published transition runs the blocked check.
func (s *ShiftService) UpdateShift(shiftID, managerID uint64, input UpdateShiftInput) (*models.Shift, error) {
	shift, err := s.shiftRepo.FindOwned(shiftID, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to find shift: %w", err)
	}

	scheduleChanged := false

	if input.Date != nil {
		date, err := normalizeDate(*input.Date)
		if err != nil {
			return nil, err
		}
		if date != shift.Date {
			shift.Date = date
			scheduleChanged = true
		}
	}
	if input.StartTime != nil {
		if *input.StartTime != shift.StartTime {
			shift.StartTime = *input.StartTime
			scheduleChanged = true
		}
	}
	if input.EndTime != nil {
		if *input.EndTime != shift.EndTime {
			shift.EndTime = *input.EndTime
			scheduleChanged = true
		}
	}
	if _, err := interval.New(shift.StartTime, shift.EndTime); err != nil {
		return nil, err
	}

	if input.PositionID != nil && *input.PositionID != shift.PositionID {
		if err := s.ensureActivePosition(*input.PositionID); err != nil {
			return nil, err
		}
		shift.PositionID = *input.PositionID
		scheduleChanged = true
	}
	if input.Capacity != nil {
		if *input.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		shift.Capacity = *input.Capacity
		scheduleChanged = true
	}

	assignedIDs, err := s.shiftRepo.AssignedEmployeeIDs(shift.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	if scheduleChanged && len(assignedIDs) > 0 {
		if err := s.scheduleSvc.ValidateAssignment(shift, assignedIDs); err != nil {
			return nil, err
		}
	}

	if input.Status != nil && *input.Status != shift.Status {
		switch *input.Status {
		case models.ShiftStatusPublished:
			blocked, err := s.shiftRepo.HasUnavailableAssignee(shift.ID, shift.Date)
			if err != nil {
				return nil, fmt.Errorf("failed to check availability: %w", err)
			}
			if blocked {
				return nil, ErrScheduleConflictOnPublish
			}
			shift.Status = models.ShiftStatusPublished
		case models.ShiftStatusDraft:
			shift.Status = models.ShiftStatusDraft
		default:
			return nil, ErrInvalidStatus
		}
	}

	if err := s.shiftRepo.Save(shift); err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	return s.GetShift(shift.ID, managerID)
}

// GetShift returns an owned shift with position and assigned employees.
func (s *ShiftService) GetShift(shiftID, managerID uint64) (*models.Shift, error) {
	shift, err := s.shiftRepo.FindOwned(shiftID, managerID,
		"Position", "Assignments", "Assignments.Employee", "Assignments.Employee.Position")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to find shift: %w", err)
	}
	return shift, nil
}

// ListShifts returns the manager's shifts matching the filter.
func (s *ShiftService) ListShifts(filter repository.ShiftFilter) ([]models.Shift, error) {
	shifts, err := s.shiftRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

// ListEmployeeShifts returns published shifts assigned to the employee
// within the inclusive date range.
func (s *ShiftService) ListEmployeeShifts(employeeID uint64, from, to string) ([]models.Shift, error) {
	shifts, err := s.shiftRepo.ListForEmployee(employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee shifts: %w", err)
	}
	return shifts, nil
}

func (s *ShiftService) ensureActivePosition(positionID uint64) error {
	position, err := s.positionRepo.FindByID(positionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPositionNotFound
		}
		return fmt.Errorf("failed to find position: %w", err)
	}
	if !position.IsActive {
		return ErrPositionNotFound
	}
	return nil
}

func normalizeDate(value string) (string, error) {
	d, err := utils.ParseDate(value)
	if err != nil {
		return "", ErrInvalidDate
	}
	return utils.FormatDate(d), nil
}
