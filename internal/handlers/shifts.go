package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shiftflow/shiftflow-api/internal/constants"
	"github.com/shiftflow/shiftflow-api/internal/dto"
	apierrors "github.com/shiftflow/shiftflow-api/internal/errors"
	"github.com/shiftflow/shiftflow-api/internal/interval"
	"github.com/shiftflow/shiftflow-api/internal/ledger"
	"github.com/shiftflow/shiftflow-api/internal/middleware"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/repository"
	"github.com/shiftflow/shiftflow-api/internal/services"
	"github.com/shiftflow/shiftflow-api/internal/utils"
)

// ShiftHandler coordinates the manager scheduling endpoints.
type ShiftHandler struct {
	shiftService    *services.ShiftService
	scheduleService *services.ScheduleService
	workflowService *services.WorkflowService
	actionLedger    *ledger.Ledger
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(shiftService *services.ShiftService, scheduleService *services.ScheduleService, workflowService *services.WorkflowService, actionLedger *ledger.Ledger) *ShiftHandler {
	return &ShiftHandler{
		shiftService:    shiftService,
		scheduleService: scheduleService,
		workflowService: workflowService,
		actionLedger:    actionLedger,
	}
}

// ListShifts returns the manager's shifts for a calendar view.
// view=week|month expands the anchor date to the matching bounds;
// otherwise date_from/date_to are used as given.
func (h *ShiftHandler) ListShifts(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)

	filter := repository.ShiftFilter{
		ManagerID: managerID,
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
	}

	if view := c.Query("view"); view != "" {
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
		switch view {
		case "week":
			from, to = utils.WeekBounds(anchor)
		case "month":
			from, to = utils.MonthBounds(anchor)
		default:
			apierrors.BadRequest(c, "view must be week or month")
			return
		}
		filter.DateFrom = utils.FormatDate(from)
		filter.DateTo = utils.FormatDate(to)
	}

	if raw := c.Query("position_id"); raw != "" {
		positionID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid position ID")
			return
		}
		filter.PositionIDs = []uint64{positionID}
	}

	if raw := c.Query("status"); raw != "" {
		status := models.ShiftStatus(raw)
		if status != models.ShiftStatusDraft && status != models.ShiftStatusPublished {
			apierrors.BadRequest(c, "status must be draft or published")
			return
		}
		filter.Status = &status
	}

	if c.Query("understaffed") == "true" {
		filter.UnderstaffedOnly = true
	}

	shifts, err := h.shiftService.ListShifts(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list shifts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shifts": dto.ToShiftDTOs(shifts, time.Now()),
	})
}

// CreateShift creates a draft or published shift and records it as the
// manager's last undoable action.
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)

	type CreateShiftRequest struct {
		Date       string             `json:"date" binding:"required"`
		StartTime  string             `json:"start_time" binding:"required"`
		EndTime    string             `json:"end_time" binding:"required"`
		PositionID uint64             `json:"position_id" binding:"required"`
		Capacity   int                `json:"capacity"`
		Status     models.ShiftStatus `json:"status"`
	}

	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Capacity == 0 {
		req.Capacity = 1
	}

	shift, err := h.shiftService.CreateShift(services.CreateShiftInput{
		ManagerID:  managerID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		PositionID: req.PositionID,
		Capacity:   req.Capacity,
		Status:     req.Status,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	h.recordAction(c, ledger.ActionCreate, []uint64{shift.ID})
	c.JSON(http.StatusCreated, dto.ToShiftDTO(*shift, time.Now()))
}

// GetShift returns one shift with position and assignment details.
func (h *ShiftHandler) GetShift(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)
	shiftID, ok := parseIDParam(c)
	if !ok {
		return
	}

	shift, err := h.shiftService.GetShift(shiftID, managerID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftDTO(*shift, time.Now()))
}

// UpdateShift edits a shift's schedule fields, capacity, or status.
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)
	shiftID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateShiftRequest struct {
		Date       *string             `json:"date"`
		StartTime  *string             `json:"start_time"`
		EndTime    *string             `json:"end_time"`
		PositionID *uint64             `json:"position_id"`
		Capacity   *int                `json:"capacity"`
		Status     *models.ShiftStatus `json:"status"`
	}

	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.shiftService.UpdateShift(shiftID, managerID, services.UpdateShiftInput{
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		PositionID: req.PositionID,
		Capacity:   req.Capacity,
		Status:     req.Status,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftDTO(*shift, time.Now()))
}

// DeleteShift soft-deletes one shift and records the action for undo.
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)
	shiftID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.workflowService.DeleteOne(managerID, shiftID); err != nil {
		respondScheduleError(c, err)
		return
	}

	h.recordAction(c, ledger.ActionDelete, []uint64{shiftID})
	c.JSON(http.StatusOK, gin.H{
		"message": "Shift deleted",
	})
}

// PublishShift publishes one draft shift.
func (h *ShiftHandler) PublishShift(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)
	shiftID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.workflowService.PublishOne(managerID, shiftID); err != nil {
		respondScheduleError(c, err)
		return
	}

	h.recordAction(c, ledger.ActionPublish, []uint64{shiftID})
	c.JSON(http.StatusOK, gin.H{
		"message": "Shift published",
	})
}

// SyncAssignments replaces the shift's assignment set with the given
// employees. The full set is validated before any row changes.
func (h *ShiftHandler) SyncAssignments(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)
	shiftID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type SyncAssignmentsRequest struct {
		EmployeeIDs []uint64 `json:"employee_ids"`
	}

	var req SyncAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.scheduleService.SyncAssignments(shiftID, managerID, req.EmployeeIDs); err != nil {
		respondScheduleError(c, err)
		return
	}

	shift, err := h.shiftService.GetShift(shiftID, managerID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftDTO(*shift, time.Now()))
}

// bulkScopeRequest selects shifts either by explicit IDs or by an
// inclusive date range. Exactly one of the two forms must be present.
type bulkScopeRequest struct {
	ShiftIDs  []uint64 `json:"shift_ids"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

func (r *bulkScopeRequest) validate(c *gin.Context) bool {
	byIDs := len(r.ShiftIDs) > 0
	byRange := r.StartDate != "" || r.EndDate != ""
	if byIDs == byRange {
		apierrors.BadRequest(c, "Provide either shift_ids or a start_date/end_date range")
		return false
	}
	if byRange {
		for _, raw := range []string{r.StartDate, r.EndDate} {
			if _, err := utils.ParseDate(raw); err != nil {
				apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
				return false
			}
		}
	}
	return true
}

// BulkPublish publishes every publishable draft in scope and reports
// the drafts blocked by assignee unavailability.
func (h *ShiftHandler) BulkPublish(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)

	var req bulkScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if !req.validate(c) {
		return
	}

	var published, blocked []uint64
	var err error
	if len(req.ShiftIDs) > 0 {
		published, blocked, err = h.workflowService.PublishByIDs(managerID, req.ShiftIDs)
	} else {
		published, blocked, err = h.workflowService.PublishInRange(managerID, req.StartDate, req.EndDate)
	}
	if err != nil {
		apierrors.InternalError(c, "Failed to publish shifts")
		return
	}

	h.recordAction(c, ledger.ActionPublish, published)
	c.JSON(http.StatusOK, dto.BulkActionResponse{
		AffectedIDs: published,
		BlockedIDs:  blocked,
	})
}

// BulkDelete soft-deletes the shifts in scope. Range scopes only touch
// drafts; explicit IDs delete regardless of status.
func (h *ShiftHandler) BulkDelete(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)

	var req bulkScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if !req.validate(c) {
		return
	}

	var deleted []uint64
	var err error
	if len(req.ShiftIDs) > 0 {
		deleted, err = h.workflowService.DeleteByIDs(managerID, req.ShiftIDs)
	} else {
		deleted, err = h.workflowService.DeleteInRange(managerID, req.StartDate, req.EndDate)
	}
	if err != nil {
		apierrors.InternalError(c, "Failed to delete shifts")
		return
	}

	h.recordAction(c, ledger.ActionDelete, deleted)
	c.JSON(http.StatusOK, dto.BulkActionResponse{
		AffectedIDs: deleted,
	})
}

// Undo reverts the manager's most recent recorded action. The record is
// consumed whether or not any rows still qualify for reversal.
func (h *ShiftHandler) Undo(c *gin.Context) {
	managerID, _ := middleware.GetUserID(c)

	action, err := h.actionLedger.ConsumeUndo(h.ledgerSessionID(c))
	if err != nil {
		if errors.Is(err, ledger.ErrNothingToUndo) {
			apierrors.RespondWithError(c, http.StatusConflict,
				apierrors.NewAPIError(apierrors.ErrCodeNothingToUndo, "Nothing to undo"))
			return
		}
		apierrors.InternalError(c, "Failed to read last action")
		return
	}

	reverted, err := h.workflowService.UndoAction(managerID, action.Kind, action.ShiftIDs)
	if err != nil {
		apierrors.InternalError(c, "Failed to undo last action")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"undone_action":  action.Kind,
		"reverted_count": reverted,
	})
}

// recordAction stores the manager's last action for undo. Recording an
// empty ID set clears any previous record instead.
func (h *ShiftHandler) recordAction(c *gin.Context, kind ledger.ActionKind, shiftIDs []uint64) {
	// Best effort: a failed record only disables undo for this action.
	_ = h.actionLedger.RecordLastAction(h.ledgerSessionID(c), kind, shiftIDs)
}

// ledgerSessionID returns a stable per-session key for the undo ledger,
// minting one on first use.
func (h *ShiftHandler) ledgerSessionID(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(constants.SessionKeyLedger).(string); ok && id != "" {
		return id
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// Session-scoped fallback; undo still works, keyed per user.
		userID, _ := middleware.GetUserID(c)
		return "user-" + strconv.FormatUint(userID, 10)
	}
	id := hex.EncodeToString(buf)
	session.Set(constants.SessionKeyLedger, id)
	_ = session.Save()
	return id
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid shift ID")
		return 0, false
	}
	return id, true
}

// respondScheduleError maps service errors to API responses. The four
// assignment validation kinds map to 422 with a machine-readable code.
func respondScheduleError(c *gin.Context, err error) {
	var positionMismatch *services.PositionMismatchError
	var capacityExceeded *services.CapacityExceededError
	var unavailable *services.UnavailableError
	var conflict *services.ScheduleConflictError

	switch {
	case errors.Is(err, services.ErrShiftNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPositionNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidCapacity),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, interval.ErrInvalidClock),
		errors.Is(err, interval.ErrEndNotAfterStart):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyPublished):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrScheduleConflictOnPublish):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodeScheduleConflictOnPublish, err.Error(), nil)
	case errors.As(err, &positionMismatch):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodePositionMismatch, err.Error(), gin.H{
			"employee_ids": positionMismatch.EmployeeIDs,
		})
	case errors.As(err, &capacityExceeded):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodeCapacityExceeded, err.Error(), gin.H{
			"capacity":  capacityExceeded.Capacity,
			"requested": capacityExceeded.Requested,
		})
	case errors.As(err, &unavailable):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodeEmployeeUnavailable, err.Error(), gin.H{
			"employee_id": unavailable.EmployeeID,
			"date":        unavailable.Date,
		})
	case errors.As(err, &conflict):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodeScheduleConflict, err.Error(), gin.H{
			"employee_id": conflict.EmployeeID,
			"shift_id":    conflict.ShiftID,
			"date":        conflict.Date,
			"start_time":  conflict.StartTime,
			"end_time":    conflict.EndTime,
		})
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
