package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shiftflow/shiftflow-api/internal/constants"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/repository"
	"github.com/shiftflow/shiftflow-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAccountDeactivated   = errors.New("this account has been deactivated")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication and employee account management.
type AuthService struct {
	userRepo     repository.UserRepository
	positionRepo repository.PositionRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, positionRepo repository.PositionRepository) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		positionRepo: positionRepo,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListEmployees lists active employees for rosters and assignment pickers.
func (s *AuthService) ListEmployees(params utils.PaginationParams) ([]models.User, int64, error) {
	employees, total, err := s.userRepo.ListActiveEmployees(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

// CreateEmployeeInput represents input for provisioning an employee account.
type CreateEmployeeInput struct {
	Username   string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	PositionID *uint64
}

// CreateEmployee provisions an employee account with a generated employee ID.
func (s *AuthService) CreateEmployee(input CreateEmployeeInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if err := s.checkPosition(input.PositionID); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	employeeID, err := utils.GenerateEmployeeID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate employee id: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         models.RoleEmployee,
		EmployeeID:   employeeID,
		Phone:        strings.TrimSpace(input.Phone),
		PositionID:   input.PositionID,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return user, nil
}

// UpdateEmployeeInput represents input for editing an employee account.
type UpdateEmployeeInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	PositionID *uint64
	IsActive   *bool
}

// UpdateEmployee edits an employee account's profile fields.
func (s *AuthService) UpdateEmployee(id uint64, input UpdateEmployeeInput) (*models.User, error) {
	user, err := s.findEmployee(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.PositionID != nil {
		if err := s.checkPosition(input.PositionID); err != nil {
			return nil, err
		}
		user.PositionID = input.PositionID
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return user, nil
}

// ResetPassword sets a new password on an employee account.
func (s *AuthService) ResetPassword(id uint64, password string) error {
	if len(password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.findEmployee(id)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

func (s *AuthService) findEmployee(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsEmployee() {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) checkPosition(positionID *uint64) error {
	if positionID == nil {
		return nil
	}
	position, err := s.positionRepo.FindByID(*positionID)
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
