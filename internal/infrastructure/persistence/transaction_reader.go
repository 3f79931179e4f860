package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shift"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
)

// GormTransactionReader implements shift.TransactionReader against the sale
// tables written by the selling front end. All reads are projections; only
// the draft operations mutate.
type GormTransactionReader struct {
	db *gorm.DB
}

// NewGormTransactionReader creates a new GormTransactionReader
func NewGormTransactionReader(db *gorm.DB) *GormTransactionReader {
	return &GormTransactionReader{db: db}
}

// FinalizedTransactions returns all finalized sales tagged with the opening
// shift, ordered by posting time, with nested payment and tax lines.
func (r *GormTransactionReader) FinalizedTransactions(ctx context.Context, openingShiftID uuid.UUID) ([]shift.Transaction, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("Taxes").
		Where("opening_shift_id = ? AND status = ?", openingShiftID, models.SaleStatusFinalized).
		Order("posted_at ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	// A finalized sale without a posting time keeps its creation time so
	// downstream fallbacks stay deterministic.
	txs := make([]shift.Transaction, len(saleModels))
	for i, model := range saleModels {
		txs[i] = model.ToTransaction(time.Time{})
	}
	return txs, nil
}

// ExternalPayments returns all finalized payment entries allocated against
// the shift's sales, deduplicated by entry ID.
func (r *GormTransactionReader) ExternalPayments(ctx context.Context, openingShiftID uuid.UUID) ([]shift.ExternalPayment, error) {
	var entryModels []models.PaymentEntryModel
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentEntryModel{}).
		Distinct("payment_entries.*").
		Joins("JOIN payment_entry_references r ON r.payment_entry_id = payment_entries.id").
		Joins("JOIN pos_transactions t ON t.id = r.sale_id").
		Where("t.opening_shift_id = ? AND t.status = ? AND payment_entries.finalized = ?",
			openingShiftID, models.SaleStatusFinalized, true).
		Order("payment_entries.posted_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	payments := make([]shift.ExternalPayment, len(entryModels))
	for i, model := range entryModels {
		payments[i] = model.ToExternalPayment()
	}
	return payments, nil
}

// DraftTransactions returns the unfinalized sales tagged with the opening shift
func (r *GormTransactionReader) DraftTransactions(ctx context.Context, openingShiftID uuid.UUID) ([]shift.DraftTransaction, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Select("id", "printed").
		Where("opening_shift_id = ? AND status = ?", openingShiftID, models.SaleStatusDraft).
		Order("created_at ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	drafts := make([]shift.DraftTransaction, len(saleModels))
	for i, model := range saleModels {
		drafts[i] = shift.DraftTransaction{ID: model.ID, Printed: model.Printed}
	}
	return drafts, nil
}

// FinalizeDraftTransaction submits a single draft sale
func (r *GormTransactionReader) FinalizeDraftTransaction(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("id = ? AND status = ?", id, models.SaleStatusDraft).
		Updates(map[string]interface{}{
			"status":     models.SaleStatusFinalized,
			"posted_at":  now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteDraftTransaction removes a single draft sale with its lines
func (r *GormTransactionReader) DeleteDraftTransaction(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).
			Delete(&models.SalePaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_id = ?", id).
			Delete(&models.SaleTaxModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND status = ?", id, models.SaleStatusDraft).
			Delete(&models.SaleModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormTransactionReader implements TransactionReader
var _ shift.TransactionReader = (*GormTransactionReader)(nil)
