package shift

import (
	"context"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/shared"
)

// OpeningShiftRepository defines persistence operations for opening shifts
type OpeningShiftRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OpeningShift, error)
	// FindOpenByTriple returns the Open shift for a (user, company, profile)
	// triple, or shared.ErrNotFound when none exists.
	FindOpenByTriple(ctx context.Context, userID, companyID, profileID uuid.UUID) (*OpeningShift, error)
	// FindLatestOpenByUser returns the user's most recently started Open
	// shift across all profiles, or shared.ErrNotFound.
	FindLatestOpenByUser(ctx context.Context, userID uuid.UUID) (*OpeningShift, error)
	FindAllOpen(ctx context.Context) ([]OpeningShift, error)
	FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]OpeningShift, error)
	CountByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, s *OpeningShift) error
	SaveWithLock(ctx context.Context, s *OpeningShift) error
	// ExistsOpen reports whether an Open shift exists for the triple,
	// optionally excluding one shift ID.
	ExistsOpen(ctx context.Context, userID, companyID, profileID uuid.UUID, excludeID uuid.UUID) (bool, error)
}

// ClosingShiftRepository defines persistence operations for closing shifts
type ClosingShiftRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ClosingShift, error)
	// FindDraftByOpeningShift returns the unsubmitted draft paired with an
	// opening shift, or shared.ErrNotFound.
	FindDraftByOpeningShift(ctx context.Context, openingShiftID uuid.UUID) (*ClosingShift, error)
	FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]ClosingShift, error)
	Save(ctx context.Context, c *ClosingShift) error
	SaveWithLock(ctx context.Context, c *ClosingShift) error
	// SaveWithOpening persists the closing shift and its paired opening
	// shift in one transaction; neither is written if either fails.
	SaveWithOpening(ctx context.Context, c *ClosingShift, o *OpeningShift) error
	// ExistsActiveForOpeningShift reports whether a non-cancelled closing
	// shift exists for the opening shift, optionally excluding one ID.
	ExistsActiveForOpeningShift(ctx context.Context, openingShiftID uuid.UUID, excludeID uuid.UUID) (bool, error)
	// ExistsSubmittedForOpeningShift reports whether a submitted closing
	// shift already exists for the opening shift and user.
	ExistsSubmittedForOpeningShift(ctx context.Context, openingShiftID, userID uuid.UUID) (bool, error)
}
