package repository

import (
	"github.com/shiftflow/shiftflow-api/internal/models"
	"gorm.io/gorm"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

// Create creates a new template
func (r *GormTemplateRepository) Create(template *models.ShiftTemplate) error {
	return r.db.Create(template).Error
}

// Save persists changes to a template
func (r *GormTemplateRepository) Save(template *models.ShiftTemplate) error {
	return r.db.Save(template).Error
}

// Delete removes a template
func (r *GormTemplateRepository) Delete(id uint64) error {
	return r.db.Delete(&models.ShiftTemplate{}, id).Error
}

// FindOwned finds a template owned by the given manager
func (r *GormTemplateRepository) FindOwned(id, managerID uint64) (*models.ShiftTemplate, error) {
	var template models.ShiftTemplate
	err := r.db.Where("created_by_id = ?", managerID).Preload("Position").First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// FindOwnedByName finds a manager's template by name
func (r *GormTemplateRepository) FindOwnedByName(name string, managerID uint64) (*models.ShiftTemplate, error) {
	var template models.ShiftTemplate
	err := r.db.Where("created_by_id = ? AND name = ?", managerID, name).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// ListByManager lists a manager's templates ordered by name
func (r *GormTemplateRepository) ListByManager(managerID uint64) ([]models.ShiftTemplate, error) {
	var templates []models.ShiftTemplate
	err := r.db.Where("created_by_id = ?", managerID).
		Preload("Position").
		Order("name").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}
