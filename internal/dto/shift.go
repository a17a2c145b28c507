package dto

import (
	"time"

	"github.com/shiftflow/shiftflow-api/internal/interval"
	"github.com/shiftflow/shiftflow-api/internal/models"
)

// PositionDTO represents a position in API responses
type PositionDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ShiftDTO represents a shift in API responses
type ShiftDTO struct {
	ID                  uint64             `json:"id"`
	Date                string             `json:"date"`
	StartTime           string             `json:"start_time"`
	EndTime             string             `json:"end_time"`
	PositionID          uint64             `json:"position_id"`
	Position            *PositionDTO       `json:"position,omitempty"`
	Capacity            int                `json:"capacity"`
	Status              models.ShiftStatus `json:"status"`
	AssignedCount       int                `json:"assigned_count"`
	AssignedEmployeeIDs []uint64           `json:"assigned_employee_ids"`
	AssignedEmployees   []EmployeeDTO      `json:"assigned_employees,omitempty"`
	IsPast              bool               `json:"is_past"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// EmployeeShiftDTO represents a shift in an employee's own schedule,
// with the duration precomputed for timesheet views.
type EmployeeShiftDTO struct {
	ID        uint64       `json:"id"`
	Date      string       `json:"date"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Position  *PositionDTO `json:"position,omitempty"`
	Hours     float64      `json:"hours"`
	IsPast    bool         `json:"is_past"`
}

// ShiftTemplateDTO represents a shift template in API responses
type ShiftTemplateDTO struct {
	ID         uint64       `json:"id"`
	Name       string       `json:"name"`
	StartTime  string       `json:"start_time"`
	EndTime    string       `json:"end_time"`
	PositionID uint64       `json:"position_id"`
	Position   *PositionDTO `json:"position,omitempty"`
	Capacity   int          `json:"capacity"`
}

// BulkActionResponse reports the outcome of a bulk publish or delete
type BulkActionResponse struct {
	AffectedIDs []uint64 `json:"affected_ids"`
	BlockedIDs  []uint64 `json:"blocked_ids,omitempty"`
}

// Conversion functions

// ToPositionDTO converts a Position model to PositionDTO
func ToPositionDTO(position models.Position) PositionDTO {
	return PositionDTO{
		ID:       position.ID,
		Name:     position.Name,
		IsActive: position.IsActive,
	}
}

// ToShiftDTO converts a Shift model to ShiftDTO. Assignment details are
// included only when the Assignments relation is preloaded.
func ToShiftDTO(shift models.Shift, now time.Time) ShiftDTO {
	dto := ShiftDTO{
		ID:                  shift.ID,
		Date:                shift.Date,
		StartTime:           shift.StartTime,
		EndTime:             shift.EndTime,
		PositionID:          shift.PositionID,
		Capacity:            shift.Capacity,
		Status:              shift.Status,
		AssignedCount:       len(shift.Assignments),
		AssignedEmployeeIDs: make([]uint64, 0, len(shift.Assignments)),
		IsPast:              shift.IsPast(now),
		CreatedAt:           shift.CreatedAt,
		UpdatedAt:           shift.UpdatedAt,
	}

	if shift.Position.ID != 0 {
		position := ToPositionDTO(shift.Position)
		dto.Position = &position
	}

	for _, assignment := range shift.Assignments {
		dto.AssignedEmployeeIDs = append(dto.AssignedEmployeeIDs, assignment.EmployeeID)
		if assignment.Employee.ID != 0 {
			dto.AssignedEmployees = append(dto.AssignedEmployees, ToEmployeeDTO(assignment.Employee))
		}
	}

	return dto
}

// ToShiftDTOs converts a slice of shifts
func ToShiftDTOs(shifts []models.Shift, now time.Time) []ShiftDTO {
	dtos := make([]ShiftDTO, len(shifts))
	for i, shift := range shifts {
		dtos[i] = ToShiftDTO(shift, now)
	}
	return dtos
}

// ToEmployeeShiftDTO converts a Shift model to an employee-facing DTO
func ToEmployeeShiftDTO(shift models.Shift, now time.Time) EmployeeShiftDTO {
	dto := EmployeeShiftDTO{
		ID:        shift.ID,
		Date:      shift.Date,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		IsPast:    shift.IsPast(now),
	}
	if shift.Position.ID != 0 {
		position := ToPositionDTO(shift.Position)
		dto.Position = &position
	}
	if span, err := interval.New(shift.StartTime, shift.EndTime); err == nil {
		dto.Hours = float64(span.Duration()) / 60.0
	}
	return dto
}

// ToEmployeeShiftDTOs converts a slice of shifts
func ToEmployeeShiftDTOs(shifts []models.Shift, now time.Time) []EmployeeShiftDTO {
	dtos := make([]EmployeeShiftDTO, len(shifts))
	for i, shift := range shifts {
		dtos[i] = ToEmployeeShiftDTO(shift, now)
	}
	return dtos
}

// ToShiftTemplateDTO converts a ShiftTemplate model to ShiftTemplateDTO
func ToShiftTemplateDTO(template models.ShiftTemplate) ShiftTemplateDTO {
	dto := ShiftTemplateDTO{
		ID:         template.ID,
		Name:       template.Name,
		StartTime:  template.StartTime,
		EndTime:    template.EndTime,
		PositionID: template.PositionID,
		Capacity:   template.Capacity,
	}
	if template.Position.ID != 0 {
		position := ToPositionDTO(template.Position)
		dto.Position = &position
	}
	return dto
}

// ToShiftTemplateDTOs converts a slice of templates
func ToShiftTemplateDTOs(templates []models.ShiftTemplate) []ShiftTemplateDTO {
	dtos := make([]ShiftTemplateDTO, len(templates))
	for i, template := range templates {
		dtos[i] = ToShiftTemplateDTO(template)
	}
	return dtos
}
