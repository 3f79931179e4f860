package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/shift"
)

// OpeningShiftModel is the persistence model for the OpeningShift aggregate.
type OpeningShiftModel struct {
	AggregateModel
	ProfileID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProfileName    string               `gorm:"type:varchar(100);not null"`
	CompanyID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status         shift.OpeningStatus  `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	PeriodStartAt  time.Time            `gorm:"index"`
	PeriodEndAt    *time.Time           ``
	Balances       []BalanceDetailModel `gorm:"foreignKey:ShiftID;references:ID"`
	ClosingShiftID *uuid.UUID           `gorm:"type:uuid"`
	CancelledAt    *time.Time           ``
}

// TableName returns the table name for GORM
func (OpeningShiftModel) TableName() string {
	return "pos_opening_shifts"
}

// ToDomain converts the persistence model to a domain OpeningShift entity.
func (m *OpeningShiftModel) ToDomain() *shift.OpeningShift {
	s := &shift.OpeningShift{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProfileID:         m.ProfileID,
		ProfileName:       m.ProfileName,
		CompanyID:         m.CompanyID,
		UserID:            m.UserID,
		Status:            m.Status,
		PeriodStartAt:     m.PeriodStartAt,
		PeriodEndAt:       m.PeriodEndAt,
		ClosingShiftID:    m.ClosingShiftID,
		CancelledAt:       m.CancelledAt,
		Balances:          make([]shift.BalanceDetail, len(m.Balances)),
	}
	for i, b := range m.Balances {
		s.Balances[i] = *b.ToDomain()
	}
	return s
}

// FromDomain populates the persistence model from a domain OpeningShift entity.
func (m *OpeningShiftModel) FromDomain(s *shift.OpeningShift) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ProfileID = s.ProfileID
	m.ProfileName = s.ProfileName
	m.CompanyID = s.CompanyID
	m.UserID = s.UserID
	m.Status = s.Status
	m.PeriodStartAt = s.PeriodStartAt
	m.PeriodEndAt = s.PeriodEndAt
	m.ClosingShiftID = s.ClosingShiftID
	m.CancelledAt = s.CancelledAt
	m.Balances = make([]BalanceDetailModel, len(s.Balances))
	for i := range s.Balances {
		m.Balances[i] = *BalanceDetailModelFromDomain(&s.Balances[i])
	}
}

// OpeningShiftModelFromDomain creates a new persistence model from a domain OpeningShift entity.
func OpeningShiftModelFromDomain(s *shift.OpeningShift) *OpeningShiftModel {
	m := &OpeningShiftModel{}
	m.FromDomain(s)
	return m
}

// BalanceDetailModel is the persistence model for a declared starting balance.
type BalanceDetailModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ShiftID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_shift_balance_method,priority:1"`
	Method    string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_shift_balance_method,priority:2"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BalanceDetailModel) TableName() string {
	return "pos_opening_balances"
}

// ToDomain converts the persistence model to a domain BalanceDetail entity.
func (m *BalanceDetailModel) ToDomain() *shift.BalanceDetail {
	return &shift.BalanceDetail{
		ID:        m.ID,
		ShiftID:   m.ShiftID,
		Method:    m.Method,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BalanceDetailModelFromDomain creates a new persistence model from a domain BalanceDetail entity.
func BalanceDetailModelFromDomain(b *shift.BalanceDetail) *BalanceDetailModel {
	return &BalanceDetailModel{
		ID:        b.ID,
		ShiftID:   b.ShiftID,
		Method:    b.Method,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ClosingShiftModel is the persistence model for the ClosingShift aggregate.
type ClosingShiftModel struct {
	AggregateModel
	OpeningShiftID uuid.UUID                `gorm:"type:uuid;not null;index"`
	ProfileID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	CompanyID      uuid.UUID                `gorm:"type:uuid;not null"`
	UserID         uuid.UUID                `gorm:"type:uuid;not null;index"`
	Status         shift.ClosingStatus      `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	PeriodStartAt  time.Time                `gorm:"not null"`
	PeriodEndAt    time.Time                `gorm:"not null"`
	GrandTotal     decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	NetTotal       decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	TotalQuantity  decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Payments       []ReconciliationRowModel `gorm:"foreignKey:ShiftID;references:ID"`
	Taxes          []TaxRowModel            `gorm:"foreignKey:ShiftID;references:ID"`
	Transactions   []TransactionRefModel    `gorm:"foreignKey:ShiftID;references:ID"`
	SubmittedAt    *time.Time               `gorm:"index"`
	CancelledAt    *time.Time               ``
}

// TableName returns the table name for GORM
func (ClosingShiftModel) TableName() string {
	return "pos_closing_shifts"
}

// ToDomain converts the persistence model to a domain ClosingShift entity.
func (m *ClosingShiftModel) ToDomain() *shift.ClosingShift {
	c := &shift.ClosingShift{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OpeningShiftID:    m.OpeningShiftID,
		ProfileID:         m.ProfileID,
		CompanyID:         m.CompanyID,
		UserID:            m.UserID,
		Status:            m.Status,
		PeriodStartAt:     m.PeriodStartAt,
		PeriodEndAt:       m.PeriodEndAt,
		GrandTotal:        m.GrandTotal,
		NetTotal:          m.NetTotal,
		TotalQuantity:     m.TotalQuantity,
		SubmittedAt:       m.SubmittedAt,
		CancelledAt:       m.CancelledAt,
		Payments:          make([]shift.ReconciliationRow, len(m.Payments)),
		Taxes:             make([]shift.TaxRow, len(m.Taxes)),
		Transactions:      make([]shift.TransactionRef, len(m.Transactions)),
	}
	for i, p := range m.Payments {
		c.Payments[i] = *p.ToDomain()
	}
	for i, t := range m.Taxes {
		c.Taxes[i] = *t.ToDomain()
	}
	for i, tr := range m.Transactions {
		c.Transactions[i] = *tr.ToDomain()
	}
	return c
}

// FromDomain populates the persistence model from a domain ClosingShift entity.
func (m *ClosingShiftModel) FromDomain(c *shift.ClosingShift) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.OpeningShiftID = c.OpeningShiftID
	m.ProfileID = c.ProfileID
	m.CompanyID = c.CompanyID
	m.UserID = c.UserID
	m.Status = c.Status
	m.PeriodStartAt = c.PeriodStartAt
	m.PeriodEndAt = c.PeriodEndAt
	m.GrandTotal = c.GrandTotal
	m.NetTotal = c.NetTotal
	m.TotalQuantity = c.TotalQuantity
	m.SubmittedAt = c.SubmittedAt
	m.CancelledAt = c.CancelledAt
	m.Payments = make([]ReconciliationRowModel, len(c.Payments))
	for i := range c.Payments {
		m.Payments[i] = *ReconciliationRowModelFromDomain(&c.Payments[i])
		m.Payments[i].Sequence = i
	}
	m.Taxes = make([]TaxRowModel, len(c.Taxes))
	for i := range c.Taxes {
		m.Taxes[i] = *TaxRowModelFromDomain(&c.Taxes[i])
	}
	m.Transactions = make([]TransactionRefModel, len(c.Transactions))
	for i := range c.Transactions {
		m.Transactions[i] = *TransactionRefModelFromDomain(&c.Transactions[i])
	}
}

// ClosingShiftModelFromDomain creates a new persistence model from a domain ClosingShift entity.
func ClosingShiftModelFromDomain(c *shift.ClosingShift) *ClosingShiftModel {
	m := &ClosingShiftModel{}
	m.FromDomain(c)
	return m
}

// ReconciliationRowModel is the persistence model for one payment method's
// reconciliation quadruple. Sequence preserves the draft's row order across
// rebuilds.
type ReconciliationRowModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	ShiftID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_closing_payment_method,priority:1"`
	Method         string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_closing_payment_method,priority:2"`
	Sequence       int             `gorm:"not null;default:0"`
	OpeningAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpectedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ClosingAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Difference     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReconciliationRowModel) TableName() string {
	return "pos_closing_payments"
}

// ToDomain converts the persistence model to a domain ReconciliationRow entity.
func (m *ReconciliationRowModel) ToDomain() *shift.ReconciliationRow {
	return &shift.ReconciliationRow{
		ID:             m.ID,
		ShiftID:        m.ShiftID,
		Method:         m.Method,
		OpeningAmount:  m.OpeningAmount,
		ExpectedAmount: m.ExpectedAmount,
		ClosingAmount:  m.ClosingAmount,
		Difference:     m.Difference,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ReconciliationRowModelFromDomain creates a new persistence model from a domain ReconciliationRow entity.
func ReconciliationRowModelFromDomain(r *shift.ReconciliationRow) *ReconciliationRowModel {
	return &ReconciliationRowModel{
		ID:             r.ID,
		ShiftID:        r.ShiftID,
		Method:         r.Method,
		OpeningAmount:  r.OpeningAmount,
		ExpectedAmount: r.ExpectedAmount,
		ClosingAmount:  r.ClosingAmount,
		Difference:     r.Difference,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// TaxRowModel is the persistence model for an aggregated tax row.
type TaxRowModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ShiftID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Account   string          `gorm:"type:varchar(200);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TaxRowModel) TableName() string {
	return "pos_closing_taxes"
}

// ToDomain converts the persistence model to a domain TaxRow entity.
func (m *TaxRowModel) ToDomain() *shift.TaxRow {
	return &shift.TaxRow{
		ID:        m.ID,
		ShiftID:   m.ShiftID,
		Account:   m.Account,
		Rate:      m.Rate,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
	}
}

// TaxRowModelFromDomain creates a new persistence model from a domain TaxRow entity.
func TaxRowModelFromDomain(t *shift.TaxRow) *TaxRowModel {
	return &TaxRowModel{
		ID:        t.ID,
		ShiftID:   t.ShiftID,
		Account:   t.Account,
		Rate:      t.Rate,
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	}
}

// TransactionRefModel is the persistence model for a covered sale reference.
type TransactionRefModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	ShiftID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_closing_tx_ref,priority:1"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_closing_tx_ref,priority:2"`
	PostedAt      time.Time       `gorm:"not null"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null"`
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransactionRefModel) TableName() string {
	return "pos_closing_transactions"
}

// ToDomain converts the persistence model to a domain TransactionRef entity.
func (m *TransactionRefModel) ToDomain() *shift.TransactionRef {
	return &shift.TransactionRef{
		ID:            m.ID,
		ShiftID:       m.ShiftID,
		TransactionID: m.TransactionID,
		PostedAt:      m.PostedAt,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		GrandTotal:    m.GrandTotal,
		CreatedAt:     m.CreatedAt,
	}
}

// TransactionRefModelFromDomain creates a new persistence model from a domain TransactionRef entity.
func TransactionRefModelFromDomain(tr *shift.TransactionRef) *TransactionRefModel {
	return &TransactionRefModel{
		ID:            tr.ID,
		ShiftID:       tr.ShiftID,
		TransactionID: tr.TransactionID,
		PostedAt:      tr.PostedAt,
		CustomerID:    tr.CustomerID,
		CustomerName:  tr.CustomerName,
		GrandTotal:    tr.GrandTotal,
		CreatedAt:     tr.CreatedAt,
	}
}
