package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/shift"
)

// Sale transaction statuses as stored by the selling front end. Shift
// reconciliation only reads these tables.
const (
	SaleStatusDraft     = "DRAFT"
	SaleStatusFinalized = "FINALIZED"
)

// SaleModel is the persistence model for a point-of-sale transaction.
type SaleModel struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key"`
	OpeningShiftID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Status         string             `gorm:"type:varchar(20);not null;index"`
	Printed        bool               `gorm:"not null;default:false"`
	PostedAt       *time.Time         `gorm:"index"`
	CustomerID     uuid.UUID          `gorm:"type:uuid"`
	CustomerName   string             `gorm:"type:varchar(200);not null;default:''"`
	GrandTotal     decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	NetTotal       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	TotalQuantity  decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	ChangeAmount   decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Payments       []SalePaymentModel `gorm:"foreignKey:SaleID;references:ID"`
	Taxes          []SaleTaxModel     `gorm:"foreignKey:SaleID;references:ID"`
	CreatedAt      time.Time          `gorm:"not null"`
	UpdatedAt      time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "pos_transactions"
}

// ToTransaction projects a finalized sale into the reconciliation read model.
// A missing posting time falls back to the given time.
func (m *SaleModel) ToTransaction(fallbackPostedAt time.Time) shift.Transaction {
	postedAt := fallbackPostedAt
	if m.PostedAt != nil {
		postedAt = *m.PostedAt
	}
	tx := shift.Transaction{
		ID:            m.ID,
		PostedAt:      postedAt,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		GrandTotal:    m.GrandTotal,
		NetTotal:      m.NetTotal,
		TotalQuantity: m.TotalQuantity,
		ChangeAmount:  m.ChangeAmount,
		Payments:      make([]shift.PaymentLine, len(m.Payments)),
		Taxes:         make([]shift.TaxLine, len(m.Taxes)),
	}
	for i, p := range m.Payments {
		tx.Payments[i] = shift.PaymentLine{Method: p.Method, Amount: p.Amount}
	}
	for i, t := range m.Taxes {
		tx.Taxes[i] = shift.TaxLine{Account: t.Account, Rate: t.Rate, Amount: t.Amount}
	}
	return tx
}

// SalePaymentModel is one payment line declared inside a sale.
type SalePaymentModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Method   string          `gorm:"type:varchar(100);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Sequence int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SalePaymentModel) TableName() string {
	return "pos_transaction_payments"
}

// SaleTaxModel is one tax line inside a sale.
type SaleTaxModel struct {
	ID      uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Account string          `gorm:"type:varchar(200);not null"`
	Rate    decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	Amount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleTaxModel) TableName() string {
	return "pos_transaction_taxes"
}

// PaymentEntryModel is a payment captured outside a sale and allocated
// against one or more sales afterwards.
type PaymentEntryModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	Method    string          `gorm:"type:varchar(100);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Finalized bool            `gorm:"not null;default:false;index"`
	PostedAt  time.Time       `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentEntryModel) TableName() string {
	return "payment_entries"
}

// ToExternalPayment projects the entry into the reconciliation read model.
func (m *PaymentEntryModel) ToExternalPayment() shift.ExternalPayment {
	return shift.ExternalPayment{
		ID:       m.ID,
		Method:   m.Method,
		Amount:   m.Amount,
		PostedAt: m.PostedAt,
	}
}

// PaymentEntryReferenceModel allocates a payment entry to a sale.
type PaymentEntryReferenceModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	PaymentEntryID uuid.UUID `gorm:"type:uuid;not null;index"`
	SaleID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentEntryReferenceModel) TableName() string {
	return "payment_entry_references"
}
