package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/profile"
)

// CreateProfileRequest represents a request to create a terminal profile
type CreateProfileRequest struct {
	Name           string    `json:"name" binding:"required,min=1,max=100"`
	CompanyID      uuid.UUID `json:"company_id" binding:"required"`
	CompanyName    string    `json:"company_name" binding:"required,min=1,max=200"`
	PaymentMethods []string  `json:"payment_methods" binding:"required,min=1,dive,min=1"`
	CashMethod     string    `json:"cash_method"`
}

// UpdateProfileRequest represents a request to update profile settings
type UpdateProfileRequest struct {
	CashMethod          *string `json:"cash_method"`
	AutoDeleteDrafts    *bool   `json:"auto_delete_drafts"`
	HideExpectedAmounts *bool   `json:"hide_expected_amounts"`
	Disabled            *bool   `json:"disabled"`
}

// WindowRequest configures a shift-action time window
type WindowRequest struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start" binding:"omitempty,timeofday"`
	End     string `json:"end" binding:"omitempty,timeofday"`
}

// SetWindowsRequest configures the opening and closing windows
type SetWindowsRequest struct {
	Opening *WindowRequest `json:"opening"`
	Closing *WindowRequest `json:"closing"`
}

// AuthorizeUserRequest grants a cashier access to a profile
type AuthorizeUserRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// WindowResponse is a shift-action time window in API responses
type WindowResponse struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

// ProfileResponse represents a terminal profile in API responses
type ProfileResponse struct {
	ID                  uuid.UUID      `json:"id"`
	Name                string         `json:"name"`
	CompanyID           uuid.UUID      `json:"company_id"`
	CompanyName         string         `json:"company_name"`
	Disabled            bool           `json:"disabled"`
	CashMethod          string         `json:"cash_method"`
	PaymentMethods      []string       `json:"payment_methods"`
	AuthorizedUsers     []uuid.UUID    `json:"authorized_users"`
	OpeningWindow       WindowResponse `json:"opening_window"`
	ClosingWindow       WindowResponse `json:"closing_window"`
	AutoDeleteDrafts    bool           `json:"auto_delete_drafts"`
	HideExpectedAmounts bool           `json:"hide_expected_amounts"`
	Version             int            `json:"version"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// ToProfileResponse converts a profile to its response form
func ToProfileResponse(p *profile.Profile) ProfileResponse {
	methods := make([]string, len(p.PaymentMethods))
	for i, m := range p.PaymentMethods {
		methods[i] = m.Method
	}
	users := make([]uuid.UUID, len(p.Users))
	for i, u := range p.Users {
		users[i] = u.UserID
	}
	return ProfileResponse{
		ID:              p.ID,
		Name:            p.Name,
		CompanyID:       p.CompanyID,
		CompanyName:     p.CompanyName,
		Disabled:        p.Disabled,
		CashMethod:      p.EffectiveCashMethod(),
		PaymentMethods:  methods,
		AuthorizedUsers: users,
		OpeningWindow: WindowResponse{
			Enabled: p.OpeningWindowEnabled,
			Start:   p.OpeningWindowStart,
			End:     p.OpeningWindowEnd,
		},
		ClosingWindow: WindowResponse{
			Enabled: p.ClosingWindowEnabled,
			Start:   p.ClosingWindowStart,
			End:     p.ClosingWindowEnd,
		},
		AutoDeleteDrafts:    p.AutoDeleteDrafts,
		HideExpectedAmounts: p.HideExpectedAmounts,
		Version:             p.Version,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
