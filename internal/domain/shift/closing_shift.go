package shift

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/shared"
)

// ClosingStatus represents the status of a closing shift
type ClosingStatus string

const (
	ClosingStatusDraft     ClosingStatus = "DRAFT"
	ClosingStatusSubmitted ClosingStatus = "SUBMITTED"
	ClosingStatusCancelled ClosingStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ClosingStatus
func (s ClosingStatus) IsValid() bool {
	switch s {
	case ClosingStatusDraft, ClosingStatusSubmitted, ClosingStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ClosingStatus
func (s ClosingStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ClosingStatus) CanTransitionTo(target ClosingStatus) bool {
	switch s {
	case ClosingStatusDraft:
		return target == ClosingStatusSubmitted || target == ClosingStatusCancelled
	case ClosingStatusSubmitted:
		return target == ClosingStatusCancelled
	case ClosingStatusCancelled:
		return false
	}
	return false
}

// ReconciliationRow is one payment method's opening/expected/closing
// quadruple. Difference is always closing minus expected.
type ReconciliationRow struct {
	ID             uuid.UUID
	ShiftID        uuid.UUID
	Method         string
	OpeningAmount  decimal.Decimal
	ExpectedAmount decimal.Decimal
	ClosingAmount  decimal.Decimal
	Difference     decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TaxRow aggregates tax lines sharing an account and rate
type TaxRow struct {
	ID        uuid.UUID
	ShiftID   uuid.UUID
	Account   string
	Rate      decimal.Decimal
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// TransactionRef records one finalized sale covered by the closing shift
type TransactionRef struct {
	ID            uuid.UUID
	ShiftID       uuid.UUID
	TransactionID uuid.UUID
	PostedAt      time.Time
	CustomerID    uuid.UUID
	CustomerName  string
	GrandTotal    decimal.Decimal
	CreatedAt     time.Time
}

// ClosingShift reconciles one opening shift: per payment method, the
// declared opening amount, the expected amount recomputed from sales, and
// the amount the cashier actually counted.
type ClosingShift struct {
	shared.BaseAggregateRoot
	OpeningShiftID uuid.UUID
	ProfileID      uuid.UUID
	CompanyID      uuid.UUID
	UserID         uuid.UUID
	Status         ClosingStatus
	PeriodStartAt  time.Time
	PeriodEndAt    time.Time
	GrandTotal     decimal.Decimal
	NetTotal       decimal.Decimal
	TotalQuantity  decimal.Decimal
	Payments       []ReconciliationRow
	Taxes          []TaxRow
	Transactions   []TransactionRef
	SubmittedAt    *time.Time
	CancelledAt    *time.Time
}

// NewClosingShift creates a draft closing shift paired with an opening shift
func NewClosingShift(opening *OpeningShift, periodEnd time.Time) (*ClosingShift, error) {
	if opening == nil {
		return nil, shared.NewDomainError("INVALID_OPENING_SHIFT", "Opening shift is required")
	}
	if !opening.IsOpen() {
		return nil, shared.NewDomainError("SHIFT_NOT_OPEN", fmt.Sprintf("Cannot reconcile a shift in status %s", opening.Status))
	}

	return &ClosingShift{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OpeningShiftID:    opening.ID,
		ProfileID:         opening.ProfileID,
		CompanyID:         opening.CompanyID,
		UserID:            opening.UserID,
		Status:            ClosingStatusDraft,
		PeriodStartAt:     opening.PeriodStartAt,
		PeriodEndAt:       periodEnd,
		GrandTotal:        decimal.Zero,
		NetTotal:          decimal.Zero,
		TotalQuantity:     decimal.Zero,
		Payments:          make([]ReconciliationRow, 0),
		Taxes:             make([]TaxRow, 0),
		Transactions:      make([]TransactionRef, 0),
	}, nil
}

// ReconciliationData is a fully recomputed set of rows and roll-ups,
// built in scratch form so a draft refresh swaps wholesale instead of
// leaving a partial overwrite behind.
type ReconciliationData struct {
	Payments      []ReconciliationRow
	Taxes         []TaxRow
	Transactions  []TransactionRef
	GrandTotal    decimal.Decimal
	NetTotal      decimal.Decimal
	TotalQuantity decimal.Decimal
}

// BuildReconciliationData recomputes rows and roll-ups for an opening shift
// from its finalized transactions and external payments. Methods keep the
// opening shift's declared-balance order, followed by methods first seen in
// the sales data, so repeated builds over unchanged data produce identical
// row sequences.
func BuildReconciliationData(opening *OpeningShift, txs []Transaction, externals []ExternalPayment, cashMethod string) ReconciliationData {
	totals := CalculatePaymentTotals(txs, externals, cashMethod)

	data := ReconciliationData{
		Payments:      make([]ReconciliationRow, 0),
		Taxes:         make([]TaxRow, 0),
		Transactions:  make([]TransactionRef, 0, len(txs)),
		GrandTotal:    decimal.Zero,
		NetTotal:      decimal.Zero,
		TotalQuantity: decimal.Zero,
	}

	seen := make(map[string]bool)
	addRow := func(method string) {
		if seen[method] {
			return
		}
		seen[method] = true
		data.Payments = append(data.Payments, ReconciliationRow{
			Method:         method,
			OpeningAmount:  opening.OpeningAmount(method),
			ExpectedAmount: totals.Amount(method),
			ClosingAmount:  decimal.Zero,
			Difference:     decimal.Zero.Sub(totals.Amount(method)),
		})
	}
	for _, b := range opening.Balances {
		addRow(b.Method)
	}
	for _, m := range totals.Methods() {
		addRow(m)
	}

	type taxKey struct {
		account string
		rate    string
	}
	taxIndex := make(map[taxKey]int)

	for _, tx := range txs {
		data.GrandTotal = data.GrandTotal.Add(tx.GrandTotal)
		data.NetTotal = data.NetTotal.Add(tx.NetTotal)
		data.TotalQuantity = data.TotalQuantity.Add(tx.TotalQuantity)

		for _, tax := range tx.Taxes {
			key := taxKey{account: tax.Account, rate: tax.Rate.String()}
			if i, ok := taxIndex[key]; ok {
				data.Taxes[i].Amount = data.Taxes[i].Amount.Add(tax.Amount)
			} else {
				taxIndex[key] = len(data.Taxes)
				data.Taxes = append(data.Taxes, TaxRow{
					Account: tax.Account,
					Rate:    tax.Rate,
					Amount:  tax.Amount,
				})
			}
		}

		// A transaction is never dropped for missing optional fields;
		// fall back to the opening shift's own values instead.
		postedAt := tx.PostedAt
		if postedAt.IsZero() {
			postedAt = opening.PeriodStartAt
		}
		customerID := tx.CustomerID
		if customerID == uuid.Nil {
			customerID = opening.UserID
		}
		data.Transactions = append(data.Transactions, TransactionRef{
			TransactionID: tx.ID,
			PostedAt:      postedAt,
			CustomerID:    customerID,
			CustomerName:  tx.CustomerName,
			GrandTotal:    tx.GrandTotal,
		})
	}

	return data
}

// ApplyReconciliation replaces the draft's row collections and roll-ups
// wholesale with a recomputed set. Only allowed while the shift is a draft.
func (c *ClosingShift) ApplyReconciliation(data ReconciliationData, periodEnd time.Time) error {
	if c.Status != ClosingStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot rebuild a closing shift in status %s", c.Status))
	}

	now := time.Now()
	payments := make([]ReconciliationRow, len(data.Payments))
	for i, row := range data.Payments {
		row.ID = uuid.New()
		row.ShiftID = c.ID
		row.CreatedAt = now
		row.UpdatedAt = now
		payments[i] = row
	}
	taxes := make([]TaxRow, len(data.Taxes))
	for i, row := range data.Taxes {
		row.ID = uuid.New()
		row.ShiftID = c.ID
		row.CreatedAt = now
		taxes[i] = row
	}
	refs := make([]TransactionRef, len(data.Transactions))
	for i, row := range data.Transactions {
		row.ID = uuid.New()
		row.ShiftID = c.ID
		row.CreatedAt = now
		refs[i] = row
	}

	c.Payments = payments
	c.Taxes = taxes
	c.Transactions = refs
	c.GrandTotal = data.GrandTotal
	c.NetTotal = data.NetTotal
	c.TotalQuantity = data.TotalQuantity
	c.PeriodEndAt = periodEnd
	c.UpdatedAt = now
	return nil
}

// SetClosingAmount records the cashier-counted amount for a method
func (c *ClosingShift) SetClosingAmount(method string, amount decimal.Decimal) error {
	if c.Status != ClosingStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit a closing shift in status %s", c.Status))
	}
	if amount.IsNegative() {
		return shared.NewDomainError("NEGATIVE_AMOUNT", "Counted amount cannot be negative")
	}
	for i := range c.Payments {
		if c.Payments[i].Method == method {
			c.Payments[i].ClosingAmount = amount
			c.Payments[i].UpdatedAt = time.Now()
			c.UpdatedAt = c.Payments[i].UpdatedAt
			return nil
		}
	}
	return shared.NewDomainError("UNKNOWN_PAYMENT_METHOD", fmt.Sprintf("No reconciliation row for method %s", method))
}

// RecomputeDifferences recalculates difference = closing - expected on
// every row, discarding any stale stored value.
func (c *ClosingShift) RecomputeDifferences() {
	now := time.Now()
	for i := range c.Payments {
		c.Payments[i].Difference = c.Payments[i].ClosingAmount.Sub(c.Payments[i].ExpectedAmount)
		c.Payments[i].UpdatedAt = now
	}
	c.UpdatedAt = now
}

// Submit finalizes the reconciliation. Differences are recomputed
// immediately before the transition so a stale value can never be
// persisted.
func (c *ClosingShift) Submit(at time.Time) error {
	if !c.Status.CanTransitionTo(ClosingStatusSubmitted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit a closing shift in status %s", c.Status))
	}
	c.RecomputeDifferences()
	c.Status = ClosingStatusSubmitted
	c.SubmittedAt = &at
	c.UpdatedAt = time.Now()
	c.AddDomainEvent(NewClosingSubmittedEvent(c))
	return nil
}

// Cancel cancels the closing shift. The caller is responsible for
// reverting the paired opening shift to Open.
func (c *ClosingShift) Cancel() error {
	if !c.Status.CanTransitionTo(ClosingStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a closing shift in status %s", c.Status))
	}
	now := time.Now()
	c.Status = ClosingStatusCancelled
	c.CancelledAt = &now
	c.UpdatedAt = now
	c.AddDomainEvent(NewClosingCancelledEvent(c))
	return nil
}
