package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shiftflow/shiftflow-api/internal/dto"
	apierrors "github.com/shiftflow/shiftflow-api/internal/errors"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/services"
)

// PositionHandler coordinates position management endpoints.
type PositionHandler struct {
	positionService *services.PositionService
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(positionService *services.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

type positionRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// ListPositions returns positions ordered by name. include_inactive=true
// adds deactivated positions for management views.
func (h *PositionHandler) ListPositions(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	positions, err := h.positionService.ListPositions(includeInactive)
	if err != nil {
		apierrors.InternalError(c, "Failed to list positions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"positions": toPositionDTOs(positions),
	})
}

// CreatePosition creates a new position.
func (h *PositionHandler) CreatePosition(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	position, err := h.positionService.CreatePosition(services.PositionInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondPositionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPositionDTO(*position))
}

// UpdatePosition renames or (de)activates a position.
func (h *PositionHandler) UpdatePosition(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid position ID")
		return
	}

	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	position, err := h.positionService.UpdatePosition(id, services.PositionInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondPositionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPositionDTO(*position))
}

// DeletePosition removes a position with no remaining references.
func (h *PositionHandler) DeletePosition(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid position ID")
		return
	}

	if err := h.positionService.DeletePosition(id); err != nil {
		respondPositionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Position deleted",
	})
}

func toPositionDTOs(positions []models.Position) []dto.PositionDTO {
	dtos := make([]dto.PositionDTO, len(positions))
	for i, position := range positions {
		dtos[i] = dto.ToPositionDTO(position)
	}
	return dtos
}

func respondPositionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPositionMissing):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPositionNameRequired),
		errors.Is(err, services.ErrPositionNameTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPositionNameTaken),
		errors.Is(err, services.ErrPositionInUse):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
