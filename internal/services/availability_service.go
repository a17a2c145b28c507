package services

import (
	"errors"
	"fmt"

	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/repository"
	"github.com/shiftflow/shiftflow-api/internal/utils"
	"gorm.io/gorm"
)

// ErrInvalidUnavailabilityDate is returned when a date is not in YYYY-MM-DD form.
var ErrInvalidUnavailabilityDate = errors.New("invalid date format, expected YYYY-MM-DD")

// AvailabilityService manages employee unavailability marks.
type AvailabilityService struct {
	unavailabilityRepo repository.UnavailabilityRepository
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(unavailabilityRepo repository.UnavailabilityRepository) *AvailabilityService {
	return &AvailabilityService{unavailabilityRepo: unavailabilityRepo}
}

// Toggle flips the unavailability mark for an employee on a date.
// Returns true when the date is now marked unavailable.
func (s *AvailabilityService) Toggle(employeeID uint64, date string) (bool, error) {
	parsed, err := utils.ParseDate(date)
	if err != nil {
		return false, ErrInvalidUnavailabilityDate
	}
	date = utils.FormatDate(parsed)

	existing, err := s.unavailabilityRepo.Find(employeeID, date)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to check unavailability: %w", err)
		}
		entry := &models.Unavailability{EmployeeID: employeeID, Date: date}
		if err := s.unavailabilityRepo.Create(entry); err != nil {
			return false, fmt.Errorf("failed to mark unavailable: %w", err)
		}
		return true, nil
	}

	if err := s.unavailabilityRepo.Delete(existing.ID); err != nil {
		return false, fmt.Errorf("failed to clear unavailability: %w", err)
	}
	return false, nil
}

// ListDates returns the employee's unavailable dates inside [from, to].
func (s *AvailabilityService) ListDates(employeeID uint64, from, to string) ([]string, error) {
	for _, d := range []string{from, to} {
		if _, err := utils.ParseDate(d); err != nil {
			return nil, ErrInvalidUnavailabilityDate
		}
	}
	dates, err := s.unavailabilityRepo.ListDates(employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list unavailability: %w", err)
	}
	return dates, nil
}
