package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shiftflow/shiftflow-api/internal/constants"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPositionNameRequired = errors.New("position name is required")
	ErrPositionNameTooLong  = fmt.Errorf("position name must be max %d characters", constants.MaxPositionNameLength)
	ErrPositionNameTaken    = errors.New("a position with this name already exists")
	ErrPositionInUse        = errors.New("cannot delete position: it is referenced by employees, shifts, or templates")
	ErrPositionMissing      = errors.New("position not found")
)

// PositionService handles job-role management.
type PositionService struct {
	positionRepo repository.PositionRepository
}

// NewPositionService creates a new PositionService
func NewPositionService(positionRepo repository.PositionRepository) *PositionService {
	return &PositionService{positionRepo: positionRepo}
}

// PositionInput represents input for creating or updating a position
type PositionInput struct {
	Name     string
	IsActive *bool
}

// ListPositions returns positions ordered by name.
func (s *PositionService) ListPositions(includeInactive bool) ([]models.Position, error) {
	positions, err := s.positionRepo.List(includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return positions, nil
}

// CreatePosition creates a new position with a trimmed, unique name.
func (s *PositionService) CreatePosition(input PositionInput) (*models.Position, error) {
	name, err := s.cleanName(input.Name, 0)
	if err != nil {
		return nil, err
	}

	position := &models.Position{Name: name, IsActive: true}
	if input.IsActive != nil {
		position.IsActive = *input.IsActive
	}

	if err := s.positionRepo.Create(position); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}
	return position, nil
}

// UpdatePosition renames or (de)activates an existing position.
func (s *PositionService) UpdatePosition(id uint64, input PositionInput) (*models.Position, error) {
	position, err := s.positionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionMissing
		}
		return nil, fmt.Errorf("failed to find position: %w", err)
	}

	name, err := s.cleanName(input.Name, id)
	if err != nil {
		return nil, err
	}
	position.Name = name
	if input.IsActive != nil {
		position.IsActive = *input.IsActive
	}

	if err := s.positionRepo.Save(position); err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}
	return position, nil
}

// DeletePosition removes a position unless employees, shifts, or
// templates still reference it.
func (s *PositionService) DeletePosition(id uint64) error {
	if _, err := s.positionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPositionMissing
		}
		return fmt.Errorf("failed to find position: %w", err)
	}

	references, err := s.positionRepo.ReferenceCount(id)
	if err != nil {
		return fmt.Errorf("failed to count position references: %w", err)
	}
	if references > 0 {
		return ErrPositionInUse
	}

	if err := s.positionRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

// cleanName trims and validates a position name, enforcing uniqueness.
// selfID excludes the position being renamed from the uniqueness check.
func (s *PositionService) cleanName(name string, selfID uint64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrPositionNameRequired
	}
	if len(name) > constants.MaxPositionNameLength {
		return "", ErrPositionNameTooLong
	}

	existing, err := s.positionRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return name, nil
		}
		return "", fmt.Errorf("failed to check position name: %w", err)
	}
	if existing.ID != selfID {
		return "", ErrPositionNameTaken
	}
	return name, nil
}
