package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pos/backend/internal/domain/profile"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
)

// GormProfileRepository implements profile.Repository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID finds a profile by its ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Preload("PaymentMethods").
		Preload("Users").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a profile by its unique name
func (r *GormProfileRepository) FindByName(ctx context.Context, name string) (*profile.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Preload("PaymentMethods").
		Preload("Users").
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all profiles matching the filter
func (r *GormProfileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]profile.Profile, error) {
	var profileModels []models.ProfileModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ProfileModel{}).
			Preload("PaymentMethods").
			Preload("Users"),
		filter,
	)

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]profile.Profile, len(profileModels))
	for i, model := range profileModels {
		profiles[i] = *model.ToDomain()
	}
	return profiles, nil
}

// Count counts profiles matching the filter
func (r *GormProfileRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.ProfileModel{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a profile together with its payment methods and
// cashier grants
func (r *GormProfileRepository) Save(ctx context.Context, p *profile.Profile) error {
	model := models.ProfileModelFromDomain(p)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("PaymentMethods", "Users").Save(model).Error; err != nil {
			return err
		}

		// Child rows are replaced wholesale: delete removed ones, save the rest.
		methodIDs := make([]uuid.UUID, len(model.PaymentMethods))
		for i, pm := range model.PaymentMethods {
			methodIDs[i] = pm.ID
		}
		if len(methodIDs) > 0 {
			if err := tx.Where("profile_id = ? AND id NOT IN ?", model.ID, methodIDs).
				Delete(&models.PaymentMethodModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("profile_id = ?", model.ID).
				Delete(&models.PaymentMethodModel{}).Error; err != nil {
				return err
			}
		}
		for i := range model.PaymentMethods {
			model.PaymentMethods[i].ProfileID = model.ID
			if err := tx.Save(&model.PaymentMethods[i]).Error; err != nil {
				return err
			}
		}

		userIDs := make([]uuid.UUID, len(model.Users))
		for i, u := range model.Users {
			userIDs[i] = u.ID
		}
		if len(userIDs) > 0 {
			if err := tx.Where("profile_id = ? AND id NOT IN ?", model.ID, userIDs).
				Delete(&models.AuthorizedUserModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("profile_id = ?", model.ID).
				Delete(&models.AuthorizedUserModel{}).Error; err != nil {
				return err
			}
		}
		for i := range model.Users {
			model.Users[i].ProfileID = model.ID
			if err := tx.Save(&model.Users[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a profile and its child rows
func (r *GormProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", id).
			Delete(&models.PaymentMethodModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).
			Delete(&models.AuthorizedUserModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ProfileModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByName checks if a profile name is taken
func (r *GormProfileRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProfileModel{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormProfileRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, ProfileSortFields, "name")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProfileRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR company_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "company_id":
			query = query.Where("company_id = ?", value)
		case "disabled":
			query = query.Where("disabled = ?", value)
		}
	}

	return query
}

// Ensure GormProfileRepository implements profile.Repository
var _ profile.Repository = (*GormProfileRepository)(nil)
