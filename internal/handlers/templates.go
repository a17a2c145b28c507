package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shiftflow/shiftflow-api/internal/dto"
	apierrors "github.com/shiftflow/shiftflow-api/internal/errors"
	"github.com/shiftflow/shiftflow-api/internal/interval"
	"github.com/shiftflow/shiftflow-api/internal/middleware"
	"github.com/shiftflow/shiftflow-api/internal/services"
)

// TemplateHandler coordinates shift template endpoints.
type TemplateHandler struct {
	templateService *services.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

type templateRequest struct {
	Name       string `json:"name" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	PositionID uint64 `json:"position_id" binding:"required"`
	Capacity   int    `json:"capacity"`
}

// ListTemplates returns the manager's templates.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)

	templates, err := h.templateService.ListTemplates(managerID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list templates")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": dto.ToShiftTemplateDTOs(templates),
	})
}

// CreateTemplate creates a reusable shift preset.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Capacity == 0 {
		req.Capacity = 1
	}

	template, err := h.templateService.CreateTemplate(managerID, services.TemplateInput{
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		PositionID: req.PositionID,
		Capacity:   req.Capacity,
	})
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToShiftTemplateDTO(*template))
}

// UpdateTemplate edits a template owned by the manager.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid template ID")
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Capacity == 0 {
		req.Capacity = 1
	}

	template, err := h.templateService.UpdateTemplate(id, managerID, services.TemplateInput{
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		PositionID: req.PositionID,
		Capacity:   req.Capacity,
	})
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftTemplateDTO(*template))
}

// DeleteTemplate removes a template owned by the manager.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid template ID")
		return
	}

	if err := h.templateService.DeleteTemplate(id, managerID); err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Template deleted",
	})
}

func respondTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTemplateNameRequired),
		errors.Is(err, services.ErrTemplateNameTooLong),
		errors.Is(err, services.ErrInvalidCapacity),
		errors.Is(err, services.ErrPositionNotFound),
		errors.Is(err, interval.ErrInvalidClock),
		errors.Is(err, interval.ErrEndNotAfterStart):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTemplateNameTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
