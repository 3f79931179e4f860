package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/shared"
)

// DefaultCashMethod is used when a profile does not designate a cash method
const DefaultCashMethod = "Cash"

// PaymentMethod is a payment method accepted at a terminal
type PaymentMethod struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	Method    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthorizedUser grants a cashier access to a profile
type AuthorizedUser struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// Profile represents the configuration of one point-of-sale terminal:
// which company it sells for, which payment methods it accepts, which
// cashiers may use it, and the time-of-day windows in which shifts may
// be opened and closed.
type Profile struct {
	shared.BaseAggregateRoot
	Name        string
	CompanyID   uuid.UUID
	CompanyName string
	Disabled    bool

	// CashMethod names the payment method treated as the cash drawer.
	// Empty means DefaultCashMethod.
	CashMethod     string
	PaymentMethods []PaymentMethod
	Users          []AuthorizedUser

	// Time-of-day bounds are stored as raw strings; an unparseable bound
	// disables the gate rather than blocking shift actions.
	OpeningWindowEnabled bool
	OpeningWindowStart   string
	OpeningWindowEnd     string
	ClosingWindowEnabled bool
	ClosingWindowStart   string
	ClosingWindowEnd     string

	// AutoDeleteDrafts purges unsubmitted sale drafts after a shift closes.
	AutoDeleteDrafts bool
	// HideExpectedAmounts hides expected totals from the cashier while counting.
	HideExpectedAmounts bool
}

// NewProfile creates a new terminal profile
func NewProfile(name string, companyID uuid.UUID, companyName string) (*Profile, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROFILE_NAME", "Profile name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_PROFILE_NAME", "Profile name cannot exceed 100 characters")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}

	return &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CompanyID:         companyID,
		CompanyName:       companyName,
		PaymentMethods:    make([]PaymentMethod, 0),
		Users:             make([]AuthorizedUser, 0),
	}, nil
}

// EffectiveCashMethod returns the designated cash method, defaulting when unset
func (p *Profile) EffectiveCashMethod() string {
	if p.CashMethod == "" {
		return DefaultCashMethod
	}
	return p.CashMethod
}

// AddPaymentMethod registers a payment method on the profile
func (p *Profile) AddPaymentMethod(method string) error {
	if method == "" {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}
	for _, m := range p.PaymentMethods {
		if m.Method == method {
			return shared.NewDomainError("DUPLICATE_PAYMENT_METHOD", "Payment method already registered on this profile")
		}
	}
	now := time.Now()
	p.PaymentMethods = append(p.PaymentMethods, PaymentMethod{
		ID:        uuid.New(),
		ProfileID: p.ID,
		Method:    method,
		CreatedAt: now,
		UpdatedAt: now,
	})
	p.UpdatedAt = now
	return nil
}

// RemovePaymentMethod removes a payment method from the profile
func (p *Profile) RemovePaymentMethod(method string) error {
	for i, m := range p.PaymentMethods {
		if m.Method == method {
			if p.EffectiveCashMethod() == method {
				return shared.NewDomainError("CASH_METHOD_IN_USE", "Cannot remove the designated cash method")
			}
			p.PaymentMethods = append(p.PaymentMethods[:i], p.PaymentMethods[i+1:]...)
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// HasPaymentMethod reports whether the profile accepts the given method
func (p *Profile) HasPaymentMethod(method string) bool {
	for _, m := range p.PaymentMethods {
		if m.Method == method {
			return true
		}
	}
	return false
}

// SetCashMethod designates the payment method treated as the cash drawer.
// The method must already be registered on the profile.
func (p *Profile) SetCashMethod(method string) error {
	if method != "" && !p.HasPaymentMethod(method) {
		return shared.NewDomainError("UNKNOWN_PAYMENT_METHOD", "Cash method must be one of the profile's payment methods")
	}
	p.CashMethod = method
	p.UpdatedAt = time.Now()
	return nil
}

// AuthorizeUser grants a cashier access to this profile
func (p *Profile) AuthorizeUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	for _, u := range p.Users {
		if u.UserID == userID {
			return shared.NewDomainError("DUPLICATE_USER", "User is already authorized on this profile")
		}
	}
	p.Users = append(p.Users, AuthorizedUser{
		ID:        uuid.New(),
		ProfileID: p.ID,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	p.UpdatedAt = time.Now()
	return nil
}

// RevokeUser removes a cashier's access to this profile
func (p *Profile) RevokeUser(userID uuid.UUID) error {
	for i, u := range p.Users {
		if u.UserID == userID {
			p.Users = append(p.Users[:i], p.Users[i+1:]...)
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// IsUserAuthorized reports whether the user may operate this profile.
// A profile with no authorized-user entries is open to all users.
func (p *Profile) IsUserAuthorized(userID uuid.UUID) bool {
	if len(p.Users) == 0 {
		return true
	}
	for _, u := range p.Users {
		if u.UserID == userID {
			return true
		}
	}
	return false
}

// SetOpeningWindow configures the time-of-day window for opening shifts
func (p *Profile) SetOpeningWindow(enabled bool, start, end string) {
	p.OpeningWindowEnabled = enabled
	p.OpeningWindowStart = start
	p.OpeningWindowEnd = end
	p.UpdatedAt = time.Now()
}

// SetClosingWindow configures the time-of-day window for closing shifts
func (p *Profile) SetClosingWindow(enabled bool, start, end string) {
	p.ClosingWindowEnabled = enabled
	p.ClosingWindowStart = start
	p.ClosingWindowEnd = end
	p.UpdatedAt = time.Now()
}

// Disable takes the profile out of service
func (p *Profile) Disable() {
	p.Disabled = true
	p.UpdatedAt = time.Now()
}

// Enable returns the profile to service
func (p *Profile) Enable() {
	p.Disabled = false
	p.UpdatedAt = time.Now()
}
