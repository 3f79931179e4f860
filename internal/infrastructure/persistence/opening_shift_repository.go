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

// GormOpeningShiftRepository implements shift.OpeningShiftRepository using GORM
type GormOpeningShiftRepository struct {
	db *gorm.DB
}

// NewGormOpeningShiftRepository creates a new GormOpeningShiftRepository
func NewGormOpeningShiftRepository(db *gorm.DB) *GormOpeningShiftRepository {
	return &GormOpeningShiftRepository{db: db}
}

// FindByID finds an opening shift by its ID
func (r *GormOpeningShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*shift.OpeningShift, error) {
	var model models.OpeningShiftModel
	if err := r.db.WithContext(ctx).
		Preload("Balances").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByTriple finds the Open shift for a (user, company, profile) triple
func (r *GormOpeningShiftRepository) FindOpenByTriple(ctx context.Context, userID, companyID, profileID uuid.UUID) (*shift.OpeningShift, error) {
	var model models.OpeningShiftModel
	if err := r.db.WithContext(ctx).
		Preload("Balances").
		Where("user_id = ? AND company_id = ? AND profile_id = ? AND status = ?",
			userID, companyID, profileID, shift.OpeningStatusOpen).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestOpenByUser finds the user's most recently started Open shift
func (r *GormOpeningShiftRepository) FindLatestOpenByUser(ctx context.Context, userID uuid.UUID) (*shift.OpeningShift, error) {
	var model models.OpeningShiftModel
	if err := r.db.WithContext(ctx).
		Preload("Balances").
		Where("user_id = ? AND status = ?", userID, shift.OpeningStatusOpen).
		Order("period_start_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllOpen finds all Open shifts across profiles
func (r *GormOpeningShiftRepository) FindAllOpen(ctx context.Context) ([]shift.OpeningShift, error) {
	var shiftModels []models.OpeningShiftModel
	if err := r.db.WithContext(ctx).
		Preload("Balances").
		Where("status = ?", shift.OpeningStatusOpen).
		Order("period_start_at DESC").
		Find(&shiftModels).Error; err != nil {
		return nil, err
	}

	shifts := make([]shift.OpeningShift, len(shiftModels))
	for i, model := range shiftModels {
		shifts[i] = *model.ToDomain()
	}
	return shifts, nil
}

// FindByProfile finds opening shifts for a profile with filtering
func (r *GormOpeningShiftRepository) FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]shift.OpeningShift, error) {
	var shiftModels []models.OpeningShiftModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OpeningShiftModel{}).
			Preload("Balances").
			Where("profile_id = ?", profileID),
		filter,
	)

	if err := query.Find(&shiftModels).Error; err != nil {
		return nil, err
	}

	shifts := make([]shift.OpeningShift, len(shiftModels))
	for i, model := range shiftModels {
		shifts[i] = *model.ToDomain()
	}
	return shifts, nil
}

// CountByProfile counts opening shifts for a profile
func (r *GormOpeningShiftRepository) CountByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.OpeningShiftModel{}).
			Where("profile_id = ?", profileID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an opening shift with its balance rows
func (r *GormOpeningShiftRepository) Save(ctx context.Context, s *shift.OpeningShift) error {
	model := models.OpeningShiftModelFromDomain(s)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveOpeningShiftModel(tx, model)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormOpeningShiftRepository) SaveWithLock(ctx context.Context, s *shift.OpeningShift) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveOpeningShiftModelWithLock(tx, s); err != nil {
			return err
		}
		return nil
	})
}

// ExistsOpen reports whether an Open shift exists for the triple
func (r *GormOpeningShiftRepository) ExistsOpen(ctx context.Context, userID, companyID, profileID uuid.UUID, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.OpeningShiftModel{}).
		Where("user_id = ? AND company_id = ? AND profile_id = ? AND status = ?",
			userID, companyID, profileID, shift.OpeningStatusOpen)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// saveOpeningShiftModel writes the aggregate and replaces its balance rows
// inside the caller's transaction.
func saveOpeningShiftModel(tx *gorm.DB, model *models.OpeningShiftModel) error {
	if err := tx.Omit("Balances").Save(model).Error; err != nil {
		return err
	}

	balanceIDs := make([]uuid.UUID, len(model.Balances))
	for i, b := range model.Balances {
		balanceIDs[i] = b.ID
	}
	if len(balanceIDs) > 0 {
		if err := tx.Where("shift_id = ? AND id NOT IN ?", model.ID, balanceIDs).
			Delete(&models.BalanceDetailModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("shift_id = ?", model.ID).
			Delete(&models.BalanceDetailModel{}).Error; err != nil {
			return err
		}
	}
	for i := range model.Balances {
		model.Balances[i].ShiftID = model.ID
		if err := tx.Save(&model.Balances[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// saveOpeningShiftModelWithLock performs a version-checked update inside the
// caller's transaction. The domain object's version is bumped on success.
func saveOpeningShiftModelWithLock(tx *gorm.DB, s *shift.OpeningShift) error {
	var currentVersion int
	if err := tx.Model(&models.OpeningShiftModel{}).
		Where("id = ?", s.ID).
		Select("version").
		Scan(&currentVersion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	if currentVersion != s.Version {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The shift has been modified by another user")
	}

	s.Version++
	s.UpdatedAt = time.Now()

	result := tx.Model(&models.OpeningShiftModel{}).
		Where("id = ? AND version = ?", s.ID, currentVersion).
		Updates(map[string]interface{}{
			"status":           s.Status,
			"period_start_at":  s.PeriodStartAt,
			"period_end_at":    s.PeriodEndAt,
			"closing_shift_id": s.ClosingShiftID,
			"cancelled_at":     s.CancelledAt,
			"version":          s.Version,
			"updated_at":       s.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The shift has been modified by another user")
	}

	model := models.OpeningShiftModelFromDomain(s)
	balanceIDs := make([]uuid.UUID, len(model.Balances))
	for i, b := range model.Balances {
		balanceIDs[i] = b.ID
	}
	if len(balanceIDs) > 0 {
		if err := tx.Where("shift_id = ? AND id NOT IN ?", model.ID, balanceIDs).
			Delete(&models.BalanceDetailModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("shift_id = ?", model.ID).
			Delete(&models.BalanceDetailModel{}).Error; err != nil {
			return err
		}
	}
	for i := range model.Balances {
		model.Balances[i].ShiftID = model.ID
		if err := tx.Save(&model.Balances[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// applyFilter applies filter options to the query
func (r *GormOpeningShiftRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, OpeningShiftSortFields, "period_start_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("period_start_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOpeningShiftRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "company_id":
			query = query.Where("company_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("period_start_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("period_start_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormOpeningShiftRepository implements OpeningShiftRepository
var _ shift.OpeningShiftRepository = (*GormOpeningShiftRepository)(nil)
