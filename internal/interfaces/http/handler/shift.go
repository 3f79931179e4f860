package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shiftapp "github.com/pos/backend/internal/application/shift"
	"github.com/pos/backend/internal/domain/shared"
)

// ShiftHandler handles cashier shift lifecycle API endpoints
type ShiftHandler struct {
	BaseHandler
	openingService *shiftapp.OpeningShiftService
	closingService *shiftapp.ClosingShiftService
}

// NewShiftHandler creates a new ShiftHandler
func NewShiftHandler(openingService *shiftapp.OpeningShiftService, closingService *shiftapp.ClosingShiftService) *ShiftHandler {
	return &ShiftHandler{
		openingService: openingService,
		closingService: closingService,
	}
}

// profileIDQuery binds the profile_id query parameter
type profileIDQuery struct {
	ProfileID string `form:"profile_id" binding:"required,uuid"`
}

func (h *ShiftHandler) bindProfileID(c *gin.Context) (uuid.UUID, bool) {
	var q profileIDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "profile_id query parameter is required and must be a UUID")
		return uuid.Nil, false
	}
	return uuid.MustParse(q.ProfileID), true
}

// CheckOpeningAllowed reports whether the profile's opening window permits
// opening a shift right now
func (h *ShiftHandler) CheckOpeningAllowed(c *gin.Context) {
	profileID, ok := h.bindProfileID(c)
	if !ok {
		return
	}

	result, err := h.openingService.CheckOpeningAllowed(c.Request.Context(), profileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CheckClosingAllowed reports whether the profile's closing window permits
// closing a shift right now
func (h *ShiftHandler) CheckClosingAllowed(c *gin.Context) {
	profileID, ok := h.bindProfileID(c)
	if !ok {
		return
	}

	result, err := h.closingService.CheckClosingAllowed(c.Request.Context(), profileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Open opens a new cashier shift with declared starting balances
func (h *ShiftHandler) Open(c *gin.Context) {
	var req shiftapp.OpenShiftRequest
	if !h.bindJSON(c, &req) {
		return
	}

	opened, err := h.openingService.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, opened)
}

// Current returns the acting user's most recent open shift
func (h *ShiftHandler) Current(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	current, err := h.openingService.Current(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, current)
}

// ListOpen returns every shift currently open across all terminals
func (h *ShiftHandler) ListOpen(c *gin.Context) {
	shifts, err := h.openingService.ListOpen(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shifts)
}

// GetOpening returns a single opening shift by ID
func (h *ShiftHandler) GetOpening(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.openingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, s)
}

// List returns the paginated shift history for a profile
func (h *ShiftHandler) List(c *gin.Context) {
	profileID, ok := h.bindProfileID(c)
	if !ok {
		return
	}
	listReq, ok := h.parseListRequest(c)
	if !ok {
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}
	if status := c.Query("status"); status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	page, err := h.openingService.ListByProfile(c.Request.Context(), profileID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// CancelOpening cancels an opening shift before it has been closed
func (h *ShiftHandler) CancelOpening(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.openingService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cancelled)
}

// BuildClosingDraft builds or refreshes the reconciliation draft for a shift
func (h *ShiftHandler) BuildClosingDraft(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	draft, err := h.closingService.BuildDraft(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, draft)
}

// GetClosing returns a single closing shift by ID
func (h *ShiftHandler) GetClosing(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	closing, err := h.closingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, closing)
}

// SubmitClosing submits cashier-counted amounts and settles the shift
func (h *ShiftHandler) SubmitClosing(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req shiftapp.SubmitClosingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	submitted, err := h.closingService.Submit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, submitted)
}

// CancelClosing cancels a closing shift and reopens its opening shift
// when the closing had already been submitted
func (h *ShiftHandler) CancelClosing(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.closingService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cancelled)
}

// ListClosings returns the closing history for a profile
func (h *ShiftHandler) ListClosings(c *gin.Context) {
	profileID, ok := h.bindProfileID(c)
	if !ok {
		return
	}
	listReq, ok := h.parseListRequest(c)
	if !ok {
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	}
	if status := c.Query("status"); status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	closings, err := h.closingService.ListByProfile(c.Request.Context(), profileID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, closings)
}

// LiveTotals returns the running cash and non-cash expected totals for
// the acting user's open shift on the given profile
func (h *ShiftHandler) LiveTotals(c *gin.Context) {
	profileID, ok := h.bindProfileID(c)
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	totals, err := h.closingService.LiveTotals(c.Request.Context(), profileID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, totals)
}
