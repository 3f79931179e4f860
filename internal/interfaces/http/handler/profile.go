package handler

import (
	"github.com/gin-gonic/gin"

	profileapp "github.com/pos/backend/internal/application/profile"
	"github.com/pos/backend/internal/domain/shared"
)

// ProfileHandler handles terminal profile API endpoints
type ProfileHandler struct {
	BaseHandler
	profileService *profileapp.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *profileapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Create creates a new terminal profile
func (h *ProfileHandler) Create(c *gin.Context) {
	var req profileapp.CreateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	created, err := h.profileService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID returns a single profile by ID
func (h *ProfileHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.profileService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// List returns a paginated list of profiles
func (h *ProfileHandler) List(c *gin.Context) {
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
	if companyID := c.Query("company_id"); companyID != "" {
		filter.Filters = map[string]interface{}{"company_id": companyID}
	}

	page, err := h.profileService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update changes profile settings
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req profileapp.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	updated, err := h.profileService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}

// SetWindows configures the opening and closing time windows
func (h *ProfileHandler) SetWindows(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req profileapp.SetWindowsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	updated, err := h.profileService.SetWindows(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}

// addPaymentMethodRequest adds one payment method to a profile
type addPaymentMethodRequest struct {
	Method string `json:"method" binding:"required,min=1,max=100"`
}

// AddPaymentMethod registers an additional payment method on a profile
func (h *ProfileHandler) AddPaymentMethod(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addPaymentMethodRequest
	if !h.bindJSON(c, &req) {
		return
	}

	updated, err := h.profileService.AddPaymentMethod(c.Request.Context(), id, req.Method)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}

// AuthorizeUser grants a cashier access to a profile
func (h *ProfileHandler) AuthorizeUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req profileapp.AuthorizeUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	updated, err := h.profileService.AuthorizeUser(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}

// RevokeUser removes a cashier's access to a profile
func (h *ProfileHandler) RevokeUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.parseIDParam(c, "userID")
	if !ok {
		return
	}

	updated, err := h.profileService.RevokeUser(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}

// Delete removes a profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
