package repository

import (
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/utils"
)

// ShiftRepository defines the interface for shift data access.
// All reads exclude soft-deleted shifts unless noted otherwise.
type ShiftRepository interface {
	// Create creates a new shift
	Create(shift *models.Shift) error

	// Save persists changes to an existing shift
	Save(shift *models.Shift) error

	// FindOwned finds an active shift owned by the given manager
	FindOwned(id, managerID uint64, preload ...string) (*models.Shift, error)

	// List retrieves shifts matching the filter
	List(filter ShiftFilter) ([]models.Shift, error)

	// ListForEmployee retrieves published shifts assigned to an employee
	// within a date range, ordered by date and start time
	ListForEmployee(employeeID uint64, from, to string) ([]models.Shift, error)

	// AssignedEmployeeIDs returns the employee IDs assigned to a shift
	AssignedEmployeeIDs(shiftID uint64) ([]uint64, error)

	// HasUnavailableAssignee reports whether any employee assigned to the
	// shift has an unavailability record for the given date
	HasUnavailableAssignee(shiftID uint64, date string) (bool, error)
}

// ShiftFilter holds query options for listing a manager's shifts.
type ShiftFilter struct {
	ManagerID        uint64
	DateFrom         string
	DateTo           string
	ShiftIDs         []uint64
	PositionIDs      []uint64
	Status           *models.ShiftStatus
	UnderstaffedOnly bool
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Save persists changes to an existing user
	Save(user *models.User) error

	// ListActiveEmployees lists active users with the employee role,
	// with positions preloaded, ordered by name. Returns the page of
	// employees and the total count.
	ListActiveEmployees(params utils.PaginationParams) ([]models.User, int64, error)
}

// PositionRepository defines the interface for position data access
type PositionRepository interface {
	// Create creates a new position
	Create(position *models.Position) error

	// FindByID finds a position by ID
	FindByID(id uint64) (*models.Position, error)

	// FindByName finds a position by its exact name
	FindByName(name string) (*models.Position, error)

	// List lists positions ordered by name
	List(includeInactive bool) ([]models.Position, error)

	// Save persists changes to a position
	Save(position *models.Position) error

	// Delete removes a position
	Delete(id uint64) error

	// ReferenceCount counts employees, shifts, and templates referencing
	// the position; deletion is blocked while any exist
	ReferenceCount(id uint64) (int64, error)
}

// UnavailabilityRepository defines the interface for unavailability data access
type UnavailabilityRepository interface {
	// Find finds the record for an employee on a date, if any
	Find(employeeID uint64, date string) (*models.Unavailability, error)

	// Create creates a new record
	Create(record *models.Unavailability) error

	// Delete removes a record by ID
	Delete(id uint64) error

	// ListDates lists the dates an employee is unavailable within a range
	ListDates(employeeID uint64, from, to string) ([]string, error)
}

// TemplateRepository defines the interface for shift template data access
type TemplateRepository interface {
	// Create creates a new template
	Create(template *models.ShiftTemplate) error

	// Save persists changes to a template
	Save(template *models.ShiftTemplate) error

	// Delete removes a template
	Delete(id uint64) error

	// FindOwned finds a template owned by the given manager
	FindOwned(id, managerID uint64) (*models.ShiftTemplate, error)

	// FindOwnedByName finds a manager's template by name
	FindOwnedByName(name string, managerID uint64) (*models.ShiftTemplate, error)

	// ListByManager lists a manager's templates ordered by name
	ListByManager(managerID uint64) ([]models.ShiftTemplate, error)
}
