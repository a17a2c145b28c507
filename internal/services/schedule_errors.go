package services

import (
	"errors"
	"fmt"
)

var (
	ErrShiftNotFound             = errors.New("shift not found")
	ErrAlreadyPublished          = errors.New("shift is already published")
	ErrScheduleConflictOnPublish = errors.New("cannot publish shift: one or more assigned employees are unavailable that day")
)

// PositionMismatchError reports candidates that do not match the shift's
// required position, are inactive, or do not hold the employee role.
type PositionMismatchError struct {
	EmployeeIDs []uint64
}

func (e *PositionMismatchError) Error() string {
	return fmt.Sprintf("selected employees must match the shift position: %v", e.EmployeeIDs)
}

// CapacityExceededError reports a candidate set larger than the shift capacity.
type CapacityExceededError struct {
	Capacity  int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("cannot assign %d employees: shift capacity is %d", e.Requested, e.Capacity)
}

// UnavailableError reports a candidate who marked the shift date unavailable.
type UnavailableError struct {
	EmployeeID uint64
	Date       string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("employee %d is unavailable on %s", e.EmployeeID, e.Date)
}

// ScheduleConflictError reports a candidate already assigned to an
// overlapping shift on the same date.
type ScheduleConflictError struct {
	EmployeeID uint64
	ShiftID    uint64
	Position   string
	Date       string
	StartTime  string
	EndTime    string
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("employee %d already assigned to: %s %s-%s (%s)",
		e.EmployeeID, e.Position, e.StartTime, e.EndTime, e.Date)
}
