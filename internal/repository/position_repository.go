package repository

import (
	"github.com/shiftflow/shiftflow-api/internal/models"
	"gorm.io/gorm"
)

// GormPositionRepository is a GORM implementation of PositionRepository
type GormPositionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a new PositionRepository
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &GormPositionRepository{db: db}
}

// Create creates a new position
func (r *GormPositionRepository) Create(position *models.Position) error {
	return r.db.Create(position).Error
}

// FindByID finds a position by ID
func (r *GormPositionRepository) FindByID(id uint64) (*models.Position, error) {
	var position models.Position
	if err := r.db.First(&position, id).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// FindByName finds a position by its exact name
func (r *GormPositionRepository) FindByName(name string) (*models.Position, error) {
	var position models.Position
	if err := r.db.Where("name = ?", name).First(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// List lists positions ordered by name
func (r *GormPositionRepository) List(includeInactive bool) ([]models.Position, error) {
	var positions []models.Position
	query := r.db.Order("name")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// Save persists changes to a position
func (r *GormPositionRepository) Save(position *models.Position) error {
	return r.db.Save(position).Error
}

// Delete removes a position
func (r *GormPositionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Position{}, id).Error
}

// ReferenceCount counts employees, shifts, and templates referencing the position
func (r *GormPositionRepository) ReferenceCount(id uint64) (int64, error) {
	var total, count int64

	if err := r.db.Model(&models.User{}).Where("position_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count

	if err := r.db.Model(&models.Shift{}).Where("position_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count

	if err := r.db.Model(&models.ShiftTemplate{}).Where("position_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count

	return total, nil
}
