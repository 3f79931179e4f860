package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/profile"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shift"
)

// OpeningShiftService handles the cashier-session opening lifecycle
type OpeningShiftService struct {
	openingRepo    shift.OpeningShiftRepository
	closingRepo    shift.ClosingShiftRepository
	profileRepo    profile.Repository
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewOpeningShiftService creates a new OpeningShiftService
func NewOpeningShiftService(openingRepo shift.OpeningShiftRepository, closingRepo shift.ClosingShiftRepository, profileRepo profile.Repository) *OpeningShiftService {
	return &OpeningShiftService{
		openingRepo: openingRepo,
		closingRepo: closingRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OpeningShiftService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CheckOpeningAllowed reports whether a shift may be opened on the profile
// right now
func (s *OpeningShiftService) CheckOpeningAllowed(ctx context.Context, profileID uuid.UUID) (*WindowCheckResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	decision := shift.CheckWindow(shift.WindowConfig{
		Enabled: p.OpeningWindowEnabled,
		Start:   p.OpeningWindowStart,
		End:     p.OpeningWindowEnd,
	}, s.now())
	return &WindowCheckResponse{Allowed: decision.Allowed, Reason: decision.Reason}, nil
}

// Open starts a cashier session with the declared starting balances
func (s *OpeningShiftService) Open(ctx context.Context, req OpenShiftRequest) (*OpeningShiftResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}
	if p.Disabled {
		return nil, shared.NewDomainError("PROFILE_DISABLED", "Profile is out of service")
	}
	if p.CompanyID != req.CompanyID {
		return nil, shared.NewDomainError("COMPANY_MISMATCH", "Profile does not belong to the given company")
	}
	if !p.IsUserAuthorized(req.UserID) {
		return nil, shared.NewDomainError("USER_NOT_AUTHORIZED", "User is not authorized on this profile")
	}

	decision := shift.CheckWindow(shift.WindowConfig{
		Enabled: p.OpeningWindowEnabled,
		Start:   p.OpeningWindowStart,
		End:     p.OpeningWindowEnd,
	}, s.now())
	if !decision.Allowed {
		return nil, shared.NewDomainError("WINDOW_CLOSED", fmt.Sprintf("Opening shift not allowed now: %s", decision.Reason))
	}

	if existing, err := s.openingRepo.FindOpenByTriple(ctx, req.UserID, req.CompanyID, req.ProfileID); err == nil {
		return nil, shared.NewDomainError("SHIFT_ALREADY_OPEN",
			fmt.Sprintf("Shift %s is already open for this user and profile", existing.ID))
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	opening, err := shift.NewOpeningShift(req.ProfileID, p.Name, req.CompanyID, req.UserID)
	if err != nil {
		return nil, err
	}
	for _, b := range req.Balances {
		if !p.HasPaymentMethod(b.Method) {
			return nil, shared.NewDomainError("UNKNOWN_PAYMENT_METHOD",
				fmt.Sprintf("Payment method %s is not registered on profile %s", b.Method, p.Name))
		}
		if err := opening.DeclareBalance(b.Method, b.Amount); err != nil {
			return nil, err
		}
	}
	if err := opening.Open(s.now()); err != nil {
		return nil, err
	}

	if err := s.openingRepo.Save(ctx, opening); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, opening)

	response := ToOpeningShiftResponse(opening)
	return &response, nil
}

// GetByID retrieves an opening shift by ID
func (s *OpeningShiftService) GetByID(ctx context.Context, id uuid.UUID) (*OpeningShiftResponse, error) {
	opening, err := s.openingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOpeningShiftResponse(opening)
	return &response, nil
}

// Current returns the user's most recently started open shift
func (s *OpeningShiftService) Current(ctx context.Context, userID uuid.UUID) (*OpeningShiftResponse, error) {
	opening, err := s.openingRepo.FindLatestOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToOpeningShiftResponse(opening)
	return &response, nil
}

// ListOpen returns every currently open shift across all profiles
func (s *OpeningShiftService) ListOpen(ctx context.Context) ([]OpeningShiftResponse, error) {
	shifts, err := s.openingRepo.FindAllOpen(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]OpeningShiftResponse, len(shifts))
	for i := range shifts {
		responses[i] = ToOpeningShiftResponse(&shifts[i])
	}
	return responses, nil
}

// ListByProfile returns a page of shifts for a profile
func (s *OpeningShiftService) ListByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) (*shared.Paginated[OpeningShiftResponse], error) {
	shifts, err := s.openingRepo.FindByProfile(ctx, profileID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.openingRepo.CountByProfile(ctx, profileID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]OpeningShiftResponse, len(shifts))
	for i := range shifts {
		responses[i] = ToOpeningShiftResponse(&shifts[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Cancel cancels an opening shift, cancelling any paired closing shift first
func (s *OpeningShiftService) Cancel(ctx context.Context, id uuid.UUID) (*OpeningShiftResponse, error) {
	opening, err := s.openingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if opening.ClosingShiftID != nil {
		closing, err := s.closingRepo.FindByID(ctx, *opening.ClosingShiftID)
		if err != nil {
			return nil, err
		}
		if err := closing.Cancel(); err != nil {
			return nil, err
		}
		if err := opening.Cancel(); err != nil {
			return nil, err
		}
		if err := s.closingRepo.SaveWithOpening(ctx, closing, opening); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, closing)
	} else {
		if err := opening.Cancel(); err != nil {
			return nil, err
		}
		if err := s.openingRepo.SaveWithLock(ctx, opening); err != nil {
			return nil, err
		}
	}
	s.publishEvents(ctx, opening)

	response := ToOpeningShiftResponse(opening)
	return &response, nil
}

func (s *OpeningShiftService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}
