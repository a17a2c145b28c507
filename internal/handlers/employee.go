package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shiftflow/shiftflow-api/internal/constants"
	"github.com/shiftflow/shiftflow-api/internal/dto"
	apierrors "github.com/shiftflow/shiftflow-api/internal/errors"
	"github.com/shiftflow/shiftflow-api/internal/middleware"
	"github.com/shiftflow/shiftflow-api/internal/services"
	"github.com/shiftflow/shiftflow-api/internal/utils"
)

// EmployeeHandler coordinates the employee-facing schedule endpoints.
type EmployeeHandler struct {
	shiftService        *services.ShiftService
	availabilityService *services.AvailabilityService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(shiftService *services.ShiftService, availabilityService *services.AvailabilityService) *EmployeeHandler {
	return &EmployeeHandler{
		shiftService:        shiftService,
		availabilityService: availabilityService,
	}
}

// MyShifts returns the employee's published shifts for a week or month
// view, with total scheduled hours for the window.
func (h *EmployeeHandler) MyShifts(c *gin.Context) {
	employeeID, _ := middleware.GetUserID(c)

	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	var from, to time.Time
	switch c.DefaultQuery("view", "week") {
	case "week":
		from, to = utils.WeekBounds(anchor)
	case "month":
		from, to = utils.MonthBounds(anchor)
	default:
		apierrors.BadRequest(c, "view must be week or month")
		return
	}

	shifts, err := h.shiftService.ListEmployeeShifts(employeeID, utils.FormatDate(from), utils.FormatDate(to))
	if err != nil {
		apierrors.InternalError(c, "Failed to list shifts")
		return
	}

	dtos := dto.ToEmployeeShiftDTOs(shifts, time.Now())
	var totalHours float64
	for _, s := range dtos {
		totalHours += s.Hours
	}

	c.JSON(http.StatusOK, gin.H{
		"shifts":      dtos,
		"date_from":   utils.FormatDate(from),
		"date_to":     utils.FormatDate(to),
		"total_hours": totalHours,
	})
}

// UpcomingShifts returns the employee's next few published shifts
// starting today.
func (h *EmployeeHandler) UpcomingShifts(c *gin.Context) {
	employeeID, _ := middleware.GetUserID(c)

	from := utils.Today()
	to := utils.FormatDate(time.Now().AddDate(0, 3, 0))

	shifts, err := h.shiftService.ListEmployeeShifts(employeeID, from, to)
	if err != nil {
		apierrors.InternalError(c, "Failed to list shifts")
		return
	}
	if len(shifts) > constants.UpcomingShiftsLimit {
		shifts = shifts[:constants.UpcomingShiftsLimit]
	}

	c.JSON(http.StatusOK, gin.H{
		"shifts": dto.ToEmployeeShiftDTOs(shifts, time.Now()),
	})
}

// ListUnavailability returns the employee's unavailable dates for a month.
func (h *EmployeeHandler) ListUnavailability(c *gin.Context) {
	employeeID, _ := middleware.GetUserID(c)

	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		anchor = parsed
	}
	from, to := utils.MonthBounds(anchor)

	dates, err := h.availabilityService.ListDates(employeeID, utils.FormatDate(from), utils.FormatDate(to))
	if err != nil {
		apierrors.InternalError(c, "Failed to list unavailability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dates": dates,
	})
}

// ToggleUnavailability flips the employee's unavailability mark on a date.
func (h *EmployeeHandler) ToggleUnavailability(c *gin.Context) {
	employeeID, _ := middleware.GetUserID(c)

	type ToggleRequest struct {
		Date string `json:"date" binding:"required"`
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	unavailable, err := h.availabilityService.Toggle(employeeID, req.Date)
	if err != nil {
		if errors.Is(err, services.ErrInvalidUnavailabilityDate) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to update unavailability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        req.Date,
		"unavailable": unavailable,
	})
}
