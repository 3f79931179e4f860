package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/shared"
)

// Repository defines persistence operations for terminal profiles
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByName(ctx context.Context, name string) (*Profile, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Profile, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
