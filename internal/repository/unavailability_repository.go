package repository

import (
	"github.com/shiftflow/shiftflow-api/internal/models"
	"gorm.io/gorm"
)

// GormUnavailabilityRepository is a GORM implementation of UnavailabilityRepository
type GormUnavailabilityRepository struct {
	db *gorm.DB
}

// NewUnavailabilityRepository creates a new UnavailabilityRepository
func NewUnavailabilityRepository(db *gorm.DB) UnavailabilityRepository {
	return &GormUnavailabilityRepository{db: db}
}

// Find finds the record for an employee on a date, if any
func (r *GormUnavailabilityRepository) Find(employeeID uint64, date string) (*models.Unavailability, error) {
	var record models.Unavailability
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create creates a new record
func (r *GormUnavailabilityRepository) Create(record *models.Unavailability) error {
	return r.db.Create(record).Error
}

// Delete removes a record by ID
func (r *GormUnavailabilityRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Unavailability{}, id).Error
}

// ListDates lists the dates an employee is unavailable within a range
func (r *GormUnavailabilityRepository) ListDates(employeeID uint64, from, to string) ([]string, error) {
	var dates []string
	err := r.db.Model(&models.Unavailability{}).
		Where("employee_id = ? AND date >= ? AND date <= ?", employeeID, from, to).
		Order("date").
		Pluck("date", &dates).Error
	return dates, err
}
