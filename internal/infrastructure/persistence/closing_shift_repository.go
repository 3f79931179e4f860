package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shift"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
)

// GormClosingShiftRepository implements shift.ClosingShiftRepository using GORM
type GormClosingShiftRepository struct {
	db *gorm.DB
}

// NewGormClosingShiftRepository creates a new GormClosingShiftRepository
func NewGormClosingShiftRepository(db *gorm.DB) *GormClosingShiftRepository {
	return &GormClosingShiftRepository{db: db}
}

// FindByID finds a closing shift by its ID
func (r *GormClosingShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*shift.ClosingShift, error) {
	var model models.ClosingShiftModel
	if err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("Taxes").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("posted_at ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDraftByOpeningShift finds the unsubmitted draft paired with an opening shift
func (r *GormClosingShiftRepository) FindDraftByOpeningShift(ctx context.Context, openingShiftID uuid.UUID) (*shift.ClosingShift, error) {
	var model models.ClosingShiftModel
	if err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("Taxes").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("posted_at ASC")
		}).
		Where("opening_shift_id = ? AND status = ?", openingShiftID, shift.ClosingStatusDraft).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProfile finds closing shifts for a profile with filtering
func (r *GormClosingShiftRepository) FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]shift.ClosingShift, error) {
	var shiftModels []models.ClosingShiftModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ClosingShiftModel{}).
			Preload("Payments", func(db *gorm.DB) *gorm.DB {
				return db.Order("sequence ASC")
			}).
			Preload("Taxes").
			Preload("Transactions").
			Where("profile_id = ?", profileID),
		filter,
	)

	if err := query.Find(&shiftModels).Error; err != nil {
		return nil, err
	}

	shifts := make([]shift.ClosingShift, len(shiftModels))
	for i, model := range shiftModels {
		shifts[i] = *model.ToDomain()
	}
	return shifts, nil
}

// Save creates or updates a closing shift with its reconciliation rows
func (r *GormClosingShiftRepository) Save(ctx context.Context, c *shift.ClosingShift) error {
	model := models.ClosingShiftModelFromDomain(c)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveClosingShiftModel(tx, model)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormClosingShiftRepository) SaveWithLock(ctx context.Context, c *shift.ClosingShift) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveClosingShiftModelWithLock(tx, c)
	})
}

// SaveWithOpening persists the closing shift and its paired opening shift in
// one transaction. Both carry a version check so a concurrent submit or
// cancel on either side aborts the whole write.
func (r *GormClosingShiftRepository) SaveWithOpening(ctx context.Context, c *shift.ClosingShift, o *shift.OpeningShift) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveClosingShiftModelWithLock(tx, c); err != nil {
			return err
		}
		return saveOpeningShiftModelWithLock(tx, o)
	})
}

// ExistsActiveForOpeningShift reports whether a non-cancelled closing shift
// exists for the opening shift
func (r *GormClosingShiftRepository) ExistsActiveForOpeningShift(ctx context.Context, openingShiftID uuid.UUID, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.ClosingShiftModel{}).
		Where("opening_shift_id = ? AND status != ?", openingShiftID, shift.ClosingStatusCancelled)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsSubmittedForOpeningShift reports whether a submitted closing shift
// already exists for the opening shift and user
func (r *GormClosingShiftRepository) ExistsSubmittedForOpeningShift(ctx context.Context, openingShiftID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClosingShiftModel{}).
		Where("opening_shift_id = ? AND user_id = ? AND status = ?",
			openingShiftID, userID, shift.ClosingStatusSubmitted).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// saveClosingShiftModel writes the aggregate and replaces its child rows
// inside the caller's transaction.
func saveClosingShiftModel(tx *gorm.DB, model *models.ClosingShiftModel) error {
	if err := tx.Omit("Payments", "Taxes", "Transactions").Save(model).Error; err != nil {
		return err
	}
	return replaceClosingChildren(tx, model)
}

// saveClosingShiftModelWithLock performs a version-checked update inside the
// caller's transaction. The domain object's version is bumped on success.
func saveClosingShiftModelWithLock(tx *gorm.DB, c *shift.ClosingShift) error {
	var currentVersion int
	if err := tx.Model(&models.ClosingShiftModel{}).
		Where("id = ?", c.ID).
		Select("version").
		Scan(&currentVersion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	if currentVersion != c.Version {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The closing shift has been modified by another user")
	}

	c.Version++
	c.UpdatedAt = time.Now()

	result := tx.Model(&models.ClosingShiftModel{}).
		Where("id = ? AND version = ?", c.ID, currentVersion).
		Updates(map[string]interface{}{
			"status":          c.Status,
			"period_start_at": c.PeriodStartAt,
			"period_end_at":   c.PeriodEndAt,
			"grand_total":     c.GrandTotal,
			"net_total":       c.NetTotal,
			"total_quantity":  c.TotalQuantity,
			"submitted_at":    c.SubmittedAt,
			"cancelled_at":    c.CancelledAt,
			"version":         c.Version,
			"updated_at":      c.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The closing shift has been modified by another user")
	}

	return replaceClosingChildren(tx, models.ClosingShiftModelFromDomain(c))
}

// replaceClosingChildren swaps the closing shift's payment, tax and
// transaction rows for the model's current set.
func replaceClosingChildren(tx *gorm.DB, model *models.ClosingShiftModel) error {
	paymentIDs := make([]uuid.UUID, len(model.Payments))
	for i, p := range model.Payments {
		paymentIDs[i] = p.ID
	}
	if len(paymentIDs) > 0 {
		if err := tx.Where("shift_id = ? AND id NOT IN ?", model.ID, paymentIDs).
			Delete(&models.ReconciliationRowModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("shift_id = ?", model.ID).
			Delete(&models.ReconciliationRowModel{}).Error; err != nil {
			return err
		}
	}
	for i := range model.Payments {
		model.Payments[i].ShiftID = model.ID
		if err := tx.Save(&model.Payments[i]).Error; err != nil {
			return err
		}
	}

	// Tax and transaction rows are recomputed wholesale, never edited.
	if err := tx.Where("shift_id = ?", model.ID).
		Delete(&models.TaxRowModel{}).Error; err != nil {
		return err
	}
	for i := range model.Taxes {
		model.Taxes[i].ShiftID = model.ID
		if err := tx.Save(&model.Taxes[i]).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("shift_id = ?", model.ID).
		Delete(&models.TransactionRefModel{}).Error; err != nil {
		return err
	}
	for i := range model.Transactions {
		model.Transactions[i].ShiftID = model.ID
		if err := tx.Save(&model.Transactions[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// applyFilter applies filter options to the query
func (r *GormClosingShiftRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, ClosingShiftSortFields, "period_end_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("period_end_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormClosingShiftRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "opening_shift_id":
			query = query.Where("opening_shift_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("period_end_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("period_end_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormClosingShiftRepository implements ClosingShiftRepository
var _ shift.ClosingShiftRepository = (*GormClosingShiftRepository)(nil)
