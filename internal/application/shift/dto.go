package shift

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/shift"
)

// ==================== Opening Shift DTOs ====================

// BalanceInput is one declared starting balance in an open-shift request
type BalanceInput struct {
	Method string          `json:"method" binding:"required,min=1,max=100"`
	Amount decimal.Decimal `json:"amount"`
}

// OpenShiftRequest represents a request to open a cashier shift
type OpenShiftRequest struct {
	ProfileID uuid.UUID      `json:"profile_id" binding:"required"`
	CompanyID uuid.UUID      `json:"company_id" binding:"required"`
	UserID    uuid.UUID      `json:"user_id" binding:"required"`
	Balances  []BalanceInput `json:"balances" binding:"required,min=1,dive"`
}

// WindowCheckResponse reports whether a shift action is currently permitted
type WindowCheckResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// BalanceResponse is one declared starting balance
type BalanceResponse struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// OpeningShiftResponse represents an opening shift in API responses
type OpeningShiftResponse struct {
	ID             uuid.UUID         `json:"id"`
	ProfileID      uuid.UUID         `json:"profile_id"`
	ProfileName    string            `json:"profile_name,omitempty"`
	CompanyID      uuid.UUID         `json:"company_id"`
	UserID         uuid.UUID         `json:"user_id"`
	Status         string            `json:"status"`
	PeriodStartAt  time.Time         `json:"period_start_at"`
	PeriodEndAt    *time.Time        `json:"period_end_at,omitempty"`
	Balances       []BalanceResponse `json:"balances"`
	ClosingShiftID *uuid.UUID        `json:"closing_shift_id,omitempty"`
	Version        int               `json:"version"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ToOpeningShiftResponse converts an opening shift to its response form
func ToOpeningShiftResponse(s *shift.OpeningShift) OpeningShiftResponse {
	balances := make([]BalanceResponse, len(s.Balances))
	for i, b := range s.Balances {
		balances[i] = BalanceResponse{Method: b.Method, Amount: b.Amount}
	}
	return OpeningShiftResponse{
		ID:             s.ID,
		ProfileID:      s.ProfileID,
		ProfileName:    s.ProfileName,
		CompanyID:      s.CompanyID,
		UserID:         s.UserID,
		Status:         s.Status.String(),
		PeriodStartAt:  s.PeriodStartAt,
		PeriodEndAt:    s.PeriodEndAt,
		Balances:       balances,
		ClosingShiftID: s.ClosingShiftID,
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ==================== Closing Shift DTOs ====================

// ClosingAmountInput is one cashier-counted amount in a submit request
type ClosingAmountInput struct {
	Method string          `json:"method" binding:"required,min=1,max=100"`
	Amount decimal.Decimal `json:"amount"`
}

// SubmitClosingRequest represents a request to submit a closing shift
type SubmitClosingRequest struct {
	ClosingAmounts []ClosingAmountInput `json:"closing_amounts" binding:"required,min=1,dive"`
}

// ReconciliationRowResponse is one payment method's reconciliation quadruple
type ReconciliationRowResponse struct {
	Method         string          `json:"method"`
	OpeningAmount  decimal.Decimal `json:"opening_amount"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	ClosingAmount  decimal.Decimal `json:"closing_amount"`
	Difference     decimal.Decimal `json:"difference"`
}

// TaxRowResponse is one aggregated tax line
type TaxRowResponse struct {
	Account string          `json:"account"`
	Rate    decimal.Decimal `json:"rate"`
	Amount  decimal.Decimal `json:"amount"`
}

// TransactionRefResponse is one covered sale transaction
type TransactionRefResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	PostedAt      time.Time       `json:"posted_at"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// ClosingShiftResponse represents a closing shift in API responses
type ClosingShiftResponse struct {
	ID             uuid.UUID                   `json:"id"`
	OpeningShiftID uuid.UUID                   `json:"opening_shift_id"`
	ProfileID      uuid.UUID                   `json:"profile_id"`
	CompanyID      uuid.UUID                   `json:"company_id"`
	UserID         uuid.UUID                   `json:"user_id"`
	Status         string                      `json:"status"`
	PeriodStartAt  time.Time                   `json:"period_start_at"`
	PeriodEndAt    time.Time                   `json:"period_end_at"`
	GrandTotal     decimal.Decimal             `json:"grand_total"`
	NetTotal       decimal.Decimal             `json:"net_total"`
	TotalQuantity  decimal.Decimal             `json:"total_quantity"`
	Payments       []ReconciliationRowResponse `json:"payments"`
	Taxes          []TaxRowResponse            `json:"taxes"`
	Transactions   []TransactionRefResponse    `json:"transactions"`
	SubmittedAt    *time.Time                  `json:"submitted_at,omitempty"`
	Version        int                         `json:"version"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// ToClosingShiftResponse converts a closing shift to its response form.
// When hideExpected is set the expected amounts and differences are zeroed
// so a cashier counts blind.
func ToClosingShiftResponse(c *shift.ClosingShift, hideExpected bool) ClosingShiftResponse {
	payments := make([]ReconciliationRowResponse, len(c.Payments))
	for i, row := range c.Payments {
		payments[i] = ReconciliationRowResponse{
			Method:         row.Method,
			OpeningAmount:  row.OpeningAmount,
			ExpectedAmount: row.ExpectedAmount,
			ClosingAmount:  row.ClosingAmount,
			Difference:     row.Difference,
		}
		if hideExpected && c.Status == shift.ClosingStatusDraft {
			payments[i].ExpectedAmount = decimal.Zero
			payments[i].Difference = decimal.Zero
		}
	}
	taxes := make([]TaxRowResponse, len(c.Taxes))
	for i, row := range c.Taxes {
		taxes[i] = TaxRowResponse{Account: row.Account, Rate: row.Rate, Amount: row.Amount}
	}
	refs := make([]TransactionRefResponse, len(c.Transactions))
	for i, row := range c.Transactions {
		refs[i] = TransactionRefResponse{
			TransactionID: row.TransactionID,
			PostedAt:      row.PostedAt,
			CustomerID:    row.CustomerID,
			CustomerName:  row.CustomerName,
			GrandTotal:    row.GrandTotal,
		}
	}
	return ClosingShiftResponse{
		ID:             c.ID,
		OpeningShiftID: c.OpeningShiftID,
		ProfileID:      c.ProfileID,
		CompanyID:      c.CompanyID,
		UserID:         c.UserID,
		Status:         c.Status.String(),
		PeriodStartAt:  c.PeriodStartAt,
		PeriodEndAt:    c.PeriodEndAt,
		GrandTotal:     c.GrandTotal,
		NetTotal:       c.NetTotal,
		TotalQuantity:  c.TotalQuantity,
		Payments:       payments,
		Taxes:          taxes,
		Transactions:   refs,
		SubmittedAt:    c.SubmittedAt,
		Version:        c.Version,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// LiveTotalsResponse is the read-only projection of the running shift's
// expected totals, split cash vs non-cash
type LiveTotalsResponse struct {
	CashTotal    decimal.Decimal `json:"cash_total"`
	NonCashTotal decimal.Decimal `json:"non_cash_total"`
}
