package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shiftflow/shiftflow-api/internal/dto"
	apierrors "github.com/shiftflow/shiftflow-api/internal/errors"
	"github.com/shiftflow/shiftflow-api/internal/services"
	"github.com/shiftflow/shiftflow-api/internal/utils"
)

// EmployeeAdminHandler coordinates the manager-facing employee roster
// endpoints.
type EmployeeAdminHandler struct {
	authService *services.AuthService
}

// NewEmployeeAdminHandler creates a new EmployeeAdminHandler.
func NewEmployeeAdminHandler(authService *services.AuthService) *EmployeeAdminHandler {
	return &EmployeeAdminHandler{
		authService: authService,
	}
}

// ListEmployees returns active employees for rosters and assignment
// pickers.
func (h *EmployeeAdminHandler) ListEmployees(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	employees, total, err := h.authService.ListEmployees(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list employees")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": dto.ToEmployeeDTOs(employees),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateEmployee provisions a new employee account.
func (h *EmployeeAdminHandler) CreateEmployee(c *gin.Context) {
	type CreateEmployeeRequest struct {
		Username   string  `json:"username" binding:"required,min=3,max=50"`
		Password   string  `json:"password" binding:"required"`
		FirstName  string  `json:"first_name"`
		LastName   string  `json:"last_name"`
		Phone      string  `json:"phone"`
		PositionID *uint64 `json:"position_id"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.authService.CreateEmployee(services.CreateEmployeeInput{
		Username:   req.Username,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		PositionID: req.PositionID,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// UpdateEmployee edits an employee's profile, position, or active flag.
func (h *EmployeeAdminHandler) UpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	type UpdateEmployeeRequest struct {
		FirstName  *string `json:"first_name"`
		LastName   *string `json:"last_name"`
		Phone      *string `json:"phone"`
		PositionID *uint64 `json:"position_id"`
		IsActive   *bool   `json:"is_active"`
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.authService.UpdateEmployee(id, services.UpdateEmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		PositionID: req.PositionID,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// ResetPassword sets a new password for an employee.
func (h *EmployeeAdminHandler) ResetPassword(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	type ResetPasswordRequest struct {
		Password string `json:"password" binding:"required"`
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ResetPassword(id, req.Password); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset",
	})
}
