package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shiftflow/shiftflow-api/internal/constants"
	"github.com/shiftflow/shiftflow-api/internal/interval"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound     = errors.New("shift template not found")
	ErrTemplateNameRequired = errors.New("template name is required")
	ErrTemplateNameTooLong  = fmt.Errorf("template name must be max %d characters", constants.MaxTemplateNameLength)
	ErrTemplateNameTaken    = errors.New("you already have a template with this name")
)

// TemplateService manages reusable shift presets owned by a manager.
type TemplateService struct {
	templateRepo repository.TemplateRepository
	positionRepo repository.PositionRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo repository.TemplateRepository, positionRepo repository.PositionRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo, positionRepo: positionRepo}
}

// TemplateInput represents input for creating or updating a shift template
type TemplateInput struct {
	Name       string
	StartTime  string
	EndTime    string
	PositionID uint64
	Capacity   int
}

// ListTemplates returns the manager's templates ordered by name.
func (s *TemplateService) ListTemplates(managerID uint64) ([]models.ShiftTemplate, error) {
	templates, err := s.templateRepo.ListByManager(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// CreateTemplate creates a shift template for the manager.
func (s *TemplateService) CreateTemplate(managerID uint64, input TemplateInput) (*models.ShiftTemplate, error) {
	name, err := s.cleanName(managerID, input.Name, 0)
	if err != nil {
		return nil, err
	}
	if err := s.validateShape(input); err != nil {
		return nil, err
	}

	template := &models.ShiftTemplate{
		Name:        name,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		PositionID:  input.PositionID,
		Capacity:    input.Capacity,
		CreatedByID: managerID,
	}
	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return s.templateRepo.FindOwned(template.ID, managerID)
}

// UpdateTemplate edits a template owned by the manager.
func (s *TemplateService) UpdateTemplate(id, managerID uint64, input TemplateInput) (*models.ShiftTemplate, error) {
	template, err := s.templateRepo.FindOwned(id, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	name, err := s.cleanName(managerID, input.Name, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateShape(input); err != nil {
		return nil, err
	}

	template.Name = name
	template.StartTime = input.StartTime
	template.EndTime = input.EndTime
	template.PositionID = input.PositionID
	template.Capacity = input.Capacity

	if err := s.templateRepo.Save(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return s.templateRepo.FindOwned(id, managerID)
}

// DeleteTemplate removes a template owned by the manager.
func (s *TemplateService) DeleteTemplate(id, managerID uint64) error {
	if _, err := s.templateRepo.FindOwned(id, managerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to find template: %w", err)
	}
	if err := s.templateRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

func (s *TemplateService) validateShape(input TemplateInput) error {
	if _, err := interval.New(input.StartTime, input.EndTime); err != nil {
		return err
	}
	if input.Capacity < 1 {
		return ErrInvalidCapacity
	}
	position, err := s.positionRepo.FindByID(input.PositionID)
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

func (s *TemplateService) cleanName(managerID uint64, name string, selfID uint64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrTemplateNameRequired
	}
	if len(name) > constants.MaxTemplateNameLength {
		return "", ErrTemplateNameTooLong
	}

	existing, err := s.templateRepo.FindOwnedByName(name, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return name, nil
		}
		return "", fmt.Errorf("failed to check template name: %w", err)
	}
	if existing.ID != selfID {
		return "", ErrTemplateNameTaken
	}
	return name, nil
}
