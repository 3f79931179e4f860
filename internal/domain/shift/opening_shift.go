package shift

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/shared"
)

// OpeningStatus represents the status of an opening shift
type OpeningStatus string

const (
	OpeningStatusDraft     OpeningStatus = "DRAFT"
	OpeningStatusOpen      OpeningStatus = "OPEN"
	OpeningStatusClosed    OpeningStatus = "CLOSED"
	OpeningStatusCancelled OpeningStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OpeningStatus
func (s OpeningStatus) IsValid() bool {
	switch s {
	case OpeningStatusDraft, OpeningStatusOpen, OpeningStatusClosed, OpeningStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OpeningStatus
func (s OpeningStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OpeningStatus) CanTransitionTo(target OpeningStatus) bool {
	switch s {
	case OpeningStatusDraft:
		return target == OpeningStatusOpen || target == OpeningStatusCancelled
	case OpeningStatusOpen:
		return target == OpeningStatusClosed || target == OpeningStatusCancelled
	case OpeningStatusClosed:
		// Cancelling the paired closing shift reverts the opening shift to Open
		return target == OpeningStatusOpen || target == OpeningStatusCancelled
	case OpeningStatusCancelled:
		return false
	}
	return false
}

// BalanceDetail is one declared starting balance for a payment method
type BalanceDetail struct {
	ID        uuid.UUID
	ShiftID   uuid.UUID
	Method    string
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OpeningShift marks the start of one cashier session with the declared
// starting balance per payment method.
type OpeningShift struct {
	shared.BaseAggregateRoot
	ProfileID      uuid.UUID
	ProfileName    string
	CompanyID      uuid.UUID
	UserID         uuid.UUID
	Status         OpeningStatus
	PeriodStartAt  time.Time
	PeriodEndAt    *time.Time
	Balances       []BalanceDetail
	ClosingShiftID *uuid.UUID
	CancelledAt    *time.Time
}

// NewOpeningShift creates a draft opening shift
func NewOpeningShift(profileID uuid.UUID, profileName string, companyID, userID uuid.UUID) (*OpeningShift, error) {
	if profileID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROFILE", "Profile ID cannot be empty")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &OpeningShift{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProfileID:         profileID,
		ProfileName:       profileName,
		CompanyID:         companyID,
		UserID:            userID,
		Status:            OpeningStatusDraft,
		Balances:          make([]BalanceDetail, 0),
	}, nil
}

// DeclareBalance adds a starting balance for a payment method.
// Only allowed while the shift is a draft.
func (s *OpeningShift) DeclareBalance(method string, amount decimal.Decimal) error {
	if s.Status != OpeningStatusDraft {
		return shared.ErrInvalidState
	}
	if method == "" {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("NEGATIVE_BALANCE", "Starting balance cannot be negative")
	}
	for _, b := range s.Balances {
		if b.Method == method {
			return shared.NewDomainError("DUPLICATE_PAYMENT_METHOD", fmt.Sprintf("Balance for %s already declared", method))
		}
	}
	now := time.Now()
	s.Balances = append(s.Balances, BalanceDetail{
		ID:        uuid.New(),
		ShiftID:   s.ID,
		Method:    method,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	})
	s.UpdatedAt = now
	return nil
}

// OpeningAmount returns the declared starting balance for a method,
// zero if no balance was declared.
func (s *OpeningShift) OpeningAmount(method string) decimal.Decimal {
	for _, b := range s.Balances {
		if b.Method == method {
			return b.Amount
		}
	}
	return decimal.Zero
}

// Open finalizes the draft and starts the cashier session
func (s *OpeningShift) Open(at time.Time) error {
	if !s.Status.CanTransitionTo(OpeningStatusOpen) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot open a shift in status %s", s.Status))
	}
	s.Status = OpeningStatusOpen
	s.PeriodStartAt = at
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewShiftOpenedEvent(s))
	return nil
}

// MarkClosed flips the shift to Closed as a side effect of its paired
// closing shift being submitted, recording the back-reference.
func (s *OpeningShift) MarkClosed(closingShiftID uuid.UUID, periodEnd time.Time) error {
	if s.Status != OpeningStatusOpen {
		return shared.NewDomainError("SHIFT_NOT_OPEN", fmt.Sprintf("Cannot close a shift in status %s", s.Status))
	}
	if closingShiftID == uuid.Nil {
		return shared.NewDomainError("INVALID_CLOSING_SHIFT", "Closing shift ID cannot be empty")
	}
	s.Status = OpeningStatusClosed
	s.ClosingShiftID = &closingShiftID
	s.PeriodEndAt = &periodEnd
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewShiftClosedEvent(s))
	return nil
}

// Reopen reverts a closed shift to Open after its closing shift is
// cancelled, clearing the back-reference.
func (s *OpeningShift) Reopen() error {
	if s.Status != OpeningStatusClosed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reopen a shift in status %s", s.Status))
	}
	s.Status = OpeningStatusOpen
	s.ClosingShiftID = nil
	s.PeriodEndAt = nil
	s.UpdatedAt = time.Now()
	return nil
}

// Cancel cancels the shift, unlinking any paired closing shift
func (s *OpeningShift) Cancel() error {
	if !s.Status.CanTransitionTo(OpeningStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a shift in status %s", s.Status))
	}
	now := time.Now()
	s.Status = OpeningStatusCancelled
	s.ClosingShiftID = nil
	s.CancelledAt = &now
	s.UpdatedAt = now
	s.AddDomainEvent(NewShiftCancelledEvent(s))
	return nil
}

// IsOpen reports whether the cashier session is currently active
func (s *OpeningShift) IsOpen() bool {
	return s.Status == OpeningStatusOpen
}
