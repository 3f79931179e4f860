package shift

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentLine is a payment declared inside a sale transaction
type PaymentLine struct {
	Method string
	Amount decimal.Decimal
}

// TaxLine is one tax entry inside a sale transaction
type TaxLine struct {
	Account string
	Rate    decimal.Decimal
	Amount  decimal.Decimal
}

// Transaction is the read-only projection of a finalized sale, carrying
// only the fields reconciliation consumes.
type Transaction struct {
	ID            uuid.UUID
	PostedAt      time.Time
	CustomerID    uuid.UUID
	CustomerName  string
	GrandTotal    decimal.Decimal
	NetTotal      decimal.Decimal
	TotalQuantity decimal.Decimal
	// ChangeAmount is cash handed back to the customer; it must not count
	// toward the drawer's expected balance.
	ChangeAmount decimal.Decimal
	Payments     []PaymentLine
	Taxes        []TaxLine
}

// ExternalPayment is a finalized payment record captured outside the sale
// transaction itself, allocated against one or more of the shift's sales.
type ExternalPayment struct {
	ID       uuid.UUID
	Method   string
	Amount   decimal.Decimal
	PostedAt time.Time
}

// DraftTransaction identifies an unfinalized sale tagged to a shift
type DraftTransaction struct {
	ID      uuid.UUID
	Printed bool
}

// TransactionReader reads sale and payment data associated with an opening
// shift. Implementations must not mutate anything except through the
// explicit draft operations.
type TransactionReader interface {
	// FinalizedTransactions returns all finalized sales tagged with the
	// opening shift, ordered by posting time, with nested payment and
	// tax lines.
	FinalizedTransactions(ctx context.Context, openingShiftID uuid.UUID) ([]Transaction, error)

	// ExternalPayments returns all finalized payment records referencing
	// the shift's transactions, deduplicated by record identifier.
	ExternalPayments(ctx context.Context, openingShiftID uuid.UUID) ([]ExternalPayment, error)

	// DraftTransactions returns the unfinalized sales tagged with the
	// opening shift.
	DraftTransactions(ctx context.Context, openingShiftID uuid.UUID) ([]DraftTransaction, error)

	// FinalizeDraftTransaction submits a single draft sale.
	FinalizeDraftTransaction(ctx context.Context, id uuid.UUID) error

	// DeleteDraftTransaction removes a single draft sale.
	DeleteDraftTransaction(ctx context.Context, id uuid.UUID) error
}
