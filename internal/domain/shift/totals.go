package shift

import (
	"github.com/shopspring/decimal"
)

// PaymentTotals accumulates amounts per payment method. Methods keep their
// first-seen order so that repeated aggregation over the same data always
// produces the same row sequence.
type PaymentTotals struct {
	methods []string
	amounts map[string]decimal.Decimal
}

// NewPaymentTotals creates an empty accumulator
func NewPaymentTotals() *PaymentTotals {
	return &PaymentTotals{
		methods: make([]string, 0),
		amounts: make(map[string]decimal.Decimal),
	}
}

// Add accumulates an amount for a method, registering the method on first use
func (t *PaymentTotals) Add(method string, amount decimal.Decimal) {
	if _, ok := t.amounts[method]; !ok {
		t.methods = append(t.methods, method)
		t.amounts[method] = decimal.Zero
	}
	t.amounts[method] = t.amounts[method].Add(amount)
}

// Amount returns the accumulated amount for a method (zero if unseen)
func (t *PaymentTotals) Amount(method string) decimal.Decimal {
	if a, ok := t.amounts[method]; ok {
		return a
	}
	return decimal.Zero
}

// Methods returns all methods in first-seen order
func (t *PaymentTotals) Methods() []string {
	return t.methods
}

// Total returns the sum over all methods
func (t *PaymentTotals) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range t.methods {
		sum = sum.Add(t.amounts[m])
	}
	return sum
}

// CashTotal returns the accumulated amount for the cash method
func (t *PaymentTotals) CashTotal(cashMethod string) decimal.Decimal {
	return t.Amount(cashMethod)
}

// NonCashTotal returns the sum over all methods except the cash method
func (t *PaymentTotals) NonCashTotal(cashMethod string) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range t.methods {
		if m != cashMethod {
			sum = sum.Add(t.amounts[m])
		}
	}
	return sum
}

// CalculatePaymentTotals merges the two payment-capture sources into the
// expected amount per method.
//
// In-transaction payment lines accumulate at face value, except that a
// transaction's cash change is subtracted from the first payment line whose
// method matches the designated cash method. The subtraction happens at most
// once per transaction; change never reduces a non-cash line. External
// payment records are additive on top, keyed by their own method.
func CalculatePaymentTotals(txs []Transaction, externals []ExternalPayment, cashMethod string) *PaymentTotals {
	totals := NewPaymentTotals()

	for _, tx := range txs {
		changeApplied := false
		for _, line := range tx.Payments {
			amount := line.Amount
			if !changeApplied && line.Method == cashMethod && !tx.ChangeAmount.IsZero() {
				amount = amount.Sub(tx.ChangeAmount)
				changeApplied = true
			}
			totals.Add(line.Method, amount)
		}
	}

	for _, p := range externals {
		totals.Add(p.Method, p.Amount)
	}

	return totals
}
