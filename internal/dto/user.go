package dto

import (
	"github.com/shiftflow/shiftflow-api/internal/models"
)

// UserDTO represents the authenticated user in API responses
type UserDTO struct {
	ID        uint64          `json:"id"`
	Username  string          `json:"username"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	FullName  string          `json:"full_name"`
	Role      models.UserRole `json:"role"`
}

// EmployeeDTO represents an employee in rosters and assignment pickers
type EmployeeDTO struct {
	ID         uint64       `json:"id"`
	Username   string       `json:"username"`
	FullName   string       `json:"full_name"`
	EmployeeID string       `json:"employee_id"`
	Phone      string       `json:"phone,omitempty"`
	PositionID *uint64      `json:"position_id"`
	Position   *PositionDTO `json:"position,omitempty"`
	IsActive   bool         `json:"is_active"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Role:      user.Role,
	}
}

// ToEmployeeDTO converts a User model to EmployeeDTO
func ToEmployeeDTO(user models.User) EmployeeDTO {
	dto := EmployeeDTO{
		ID:         user.ID,
		Username:   user.Username,
		FullName:   user.FullName(),
		EmployeeID: user.EmployeeID,
		Phone:      user.Phone,
		PositionID: user.PositionID,
		IsActive:   user.IsActive,
	}
	if user.Position != nil {
		position := ToPositionDTO(*user.Position)
		dto.Position = &position
	}
	return dto
}

// ToEmployeeDTOs converts a slice of users
func ToEmployeeDTOs(users []models.User) []EmployeeDTO {
	dtos := make([]EmployeeDTO, len(users))
	for i, user := range users {
		dtos[i] = ToEmployeeDTO(user)
	}
	return dtos
}
