package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/profile"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shift"
)

// LiveTotalsCache caches the live totals projection for an open shift.
// Implementations are best-effort; a miss or failure just means a
// recomputation.
type LiveTotalsCache interface {
	Get(ctx context.Context, shiftID uuid.UUID) (*LiveTotalsResponse, bool)
	Set(ctx context.Context, shiftID uuid.UUID, totals *LiveTotalsResponse)
}

// ClosingShiftService builds, refreshes and submits shift reconciliations
type ClosingShiftService struct {
	openingRepo    shift.OpeningShiftRepository
	closingRepo    shift.ClosingShiftRepository
	profileRepo    profile.Repository
	reader         shift.TransactionReader
	totalsCache    LiveTotalsCache
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewClosingShiftService creates a new ClosingShiftService
func NewClosingShiftService(
	openingRepo shift.OpeningShiftRepository,
	closingRepo shift.ClosingShiftRepository,
	profileRepo profile.Repository,
	reader shift.TransactionReader,
	logger *zap.Logger,
) *ClosingShiftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClosingShiftService{
		openingRepo: openingRepo,
		closingRepo: closingRepo,
		profileRepo: profileRepo,
		reader:      reader,
		logger:      logger,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ClosingShiftService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetTotalsCache sets the live-totals cache
func (s *ClosingShiftService) SetTotalsCache(cache LiveTotalsCache) {
	s.totalsCache = cache
}

// CheckClosingAllowed reports whether a shift may be closed on the profile
// right now
func (s *ClosingShiftService) CheckClosingAllowed(ctx context.Context, profileID uuid.UUID) (*WindowCheckResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	decision := s.closingWindow(p)
	return &WindowCheckResponse{Allowed: decision.Allowed, Reason: decision.Reason}, nil
}

// BuildDraft creates a closing-shift draft for an open shift, or refreshes
// the existing unsubmitted one in place. Repeated calls converge on the
// latest sales data instead of accumulating duplicate rows.
func (s *ClosingShiftService) BuildDraft(ctx context.Context, openingShiftID uuid.UUID) (*ClosingShiftResponse, error) {
	opening, err := s.openingRepo.FindByID(ctx, openingShiftID)
	if err != nil {
		return nil, err
	}
	if !opening.IsOpen() {
		return nil, shared.NewDomainError("SHIFT_NOT_OPEN",
			fmt.Sprintf("Cannot build a closing draft for a shift in status %s", opening.Status))
	}
	p, err := s.profileRepo.FindByID(ctx, opening.ProfileID)
	if err != nil {
		return nil, err
	}

	s.finalizePrintedDrafts(ctx, openingShiftID)

	// Read failures here must surface: the numbers are about to be persisted
	txs, err := s.reader.FinalizedTransactions(ctx, openingShiftID)
	if err != nil {
		return nil, err
	}
	externals, err := s.reader.ExternalPayments(ctx, openingShiftID)
	if err != nil {
		return nil, err
	}

	data := shift.BuildReconciliationData(opening, txs, externals, p.EffectiveCashMethod())
	periodEnd := s.now()

	closing, err := s.closingRepo.FindDraftByOpeningShift(ctx, openingShiftID)
	if errors.Is(err, shared.ErrNotFound) {
		closing, err = shift.NewClosingShift(opening, periodEnd)
	}
	if err != nil {
		return nil, err
	}

	if err := closing.ApplyReconciliation(data, periodEnd); err != nil {
		return nil, err
	}
	if err := s.closingRepo.Save(ctx, closing); err != nil {
		return nil, err
	}

	response := ToClosingShiftResponse(closing, p.HideExpectedAmounts)
	return &response, nil
}

// Submit finalizes a closing shift with the cashier's counted amounts.
// Expected amounts are recomputed from current sales data and every row's
// difference is recalculated immediately before the commit.
func (s *ClosingShiftService) Submit(ctx context.Context, closingShiftID uuid.UUID, req SubmitClosingRequest) (*ClosingShiftResponse, error) {
	closing, err := s.closingRepo.FindByID(ctx, closingShiftID)
	if err != nil {
		return nil, err
	}
	if closing.Status != shift.ClosingStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot submit a closing shift in status %s", closing.Status))
	}
	opening, err := s.openingRepo.FindByID(ctx, closing.OpeningShiftID)
	if err != nil {
		return nil, err
	}
	if !opening.IsOpen() {
		return nil, shared.NewDomainError("SHIFT_NOT_OPEN",
			fmt.Sprintf("Cannot close a shift in status %s", opening.Status))
	}

	duplicate, err := s.closingRepo.ExistsSubmittedForOpeningShift(ctx, closing.OpeningShiftID, closing.UserID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, shared.NewDomainError("DUPLICATE_CLOSING_SHIFT",
			"A closing shift has already been submitted for this opening shift")
	}
	other, err := s.closingRepo.ExistsActiveForOpeningShift(ctx, closing.OpeningShiftID, closing.ID)
	if err != nil {
		return nil, err
	}
	if other {
		return nil, shared.NewDomainError("DUPLICATE_CLOSING_SHIFT",
			"Another closing shift already exists for this opening shift")
	}

	p, err := s.profileRepo.FindByID(ctx, closing.ProfileID)
	if err != nil {
		return nil, err
	}
	if decision := s.closingWindow(p); !decision.Allowed {
		return nil, shared.NewDomainError("WINDOW_CLOSED",
			fmt.Sprintf("Closing shift not allowed now: %s", decision.Reason))
	}

	// Refresh expected totals from current data; read failures surface here
	txs, err := s.reader.FinalizedTransactions(ctx, closing.OpeningShiftID)
	if err != nil {
		return nil, err
	}
	externals, err := s.reader.ExternalPayments(ctx, closing.OpeningShiftID)
	if err != nil {
		return nil, err
	}
	data := shift.BuildReconciliationData(opening, txs, externals, p.EffectiveCashMethod())

	submittedAt := s.now()
	if err := closing.ApplyReconciliation(data, submittedAt); err != nil {
		return nil, err
	}
	for _, input := range req.ClosingAmounts {
		if err := closing.SetClosingAmount(input.Method, input.Amount); err != nil {
			return nil, err
		}
	}
	if err := closing.Submit(submittedAt); err != nil {
		return nil, err
	}
	if err := opening.MarkClosed(closing.ID, submittedAt); err != nil {
		return nil, err
	}

	if err := s.closingRepo.SaveWithOpening(ctx, closing, opening); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, closing)
	s.publishEvents(ctx, opening)

	if p.AutoDeleteDrafts {
		s.cleanupDrafts(ctx, closing.OpeningShiftID)
	}

	response := ToClosingShiftResponse(closing, false)
	return &response, nil
}

// Cancel cancels a closing shift. A submitted closing shift reverts its
// opening shift to Open.
func (s *ClosingShiftService) Cancel(ctx context.Context, closingShiftID uuid.UUID) (*ClosingShiftResponse, error) {
	closing, err := s.closingRepo.FindByID(ctx, closingShiftID)
	if err != nil {
		return nil, err
	}
	wasSubmitted := closing.Status == shift.ClosingStatusSubmitted
	if err := closing.Cancel(); err != nil {
		return nil, err
	}

	if wasSubmitted {
		opening, err := s.openingRepo.FindByID(ctx, closing.OpeningShiftID)
		if err != nil {
			return nil, err
		}
		if err := opening.Reopen(); err != nil {
			return nil, err
		}
		if err := s.closingRepo.SaveWithOpening(ctx, closing, opening); err != nil {
			return nil, err
		}
	} else {
		if err := s.closingRepo.SaveWithLock(ctx, closing); err != nil {
			return nil, err
		}
	}
	s.publishEvents(ctx, closing)

	response := ToClosingShiftResponse(closing, false)
	return &response, nil
}

// GetByID retrieves a closing shift by ID
func (s *ClosingShiftService) GetByID(ctx context.Context, id uuid.UUID) (*ClosingShiftResponse, error) {
	closing, err := s.closingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hideExpected := false
	if p, perr := s.profileRepo.FindByID(ctx, closing.ProfileID); perr == nil {
		hideExpected = p.HideExpectedAmounts
	}
	response := ToClosingShiftResponse(closing, hideExpected)
	return &response, nil
}

// LiveTotals returns the running shift's expected totals split cash vs
// non-cash. This is a display projection: any read failure degrades to
// zero instead of blocking the cashier, and is logged.
func (s *ClosingShiftService) LiveTotals(ctx context.Context, profileID, userID uuid.UUID) (*LiveTotalsResponse, error) {
	opening, err := s.openingRepo.FindLatestOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if opening.ProfileID != profileID {
		return nil, shared.ErrNotFound
	}

	if s.totalsCache != nil {
		if cached, ok := s.totalsCache.Get(ctx, opening.ID); ok {
			return cached, nil
		}
	}

	cashMethod := profile.DefaultCashMethod
	if p, perr := s.profileRepo.FindByID(ctx, profileID); perr == nil {
		cashMethod = p.EffectiveCashMethod()
	} else {
		s.logger.Warn("live totals: profile read failed, using default cash method",
			zap.String("profile_id", profileID.String()), zap.Error(perr))
	}

	txs, err := s.reader.FinalizedTransactions(ctx, opening.ID)
	if err != nil {
		s.logger.Warn("live totals: transaction read failed, degrading to zero",
			zap.String("opening_shift_id", opening.ID.String()), zap.Error(err))
		txs = nil
	}
	externals, err := s.reader.ExternalPayments(ctx, opening.ID)
	if err != nil {
		s.logger.Warn("live totals: external payment read failed, degrading to zero",
			zap.String("opening_shift_id", opening.ID.String()), zap.Error(err))
		externals = nil
	}

	totals := shift.CalculatePaymentTotals(txs, externals, cashMethod)
	response := &LiveTotalsResponse{
		CashTotal:    totals.CashTotal(cashMethod),
		NonCashTotal: totals.NonCashTotal(cashMethod),
	}
	if s.totalsCache != nil {
		s.totalsCache.Set(ctx, opening.ID, response)
	}
	return response, nil
}

// ListByProfile returns a page of closing shifts for a profile
func (s *ClosingShiftService) ListByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]ClosingShiftResponse, error) {
	shifts, err := s.closingRepo.FindByProfile(ctx, profileID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ClosingShiftResponse, len(shifts))
	for i := range shifts {
		responses[i] = ToClosingShiftResponse(&shifts[i], false)
	}
	return responses, nil
}

func (s *ClosingShiftService) closingWindow(p *profile.Profile) shift.WindowDecision {
	return shift.CheckWindow(shift.WindowConfig{
		Enabled: p.ClosingWindowEnabled,
		Start:   p.ClosingWindowStart,
		End:     p.ClosingWindowEnd,
	}, s.now())
}

// finalizePrintedDrafts submits draft sales that were already printed,
// so they count toward the reconciliation. Best-effort.
func (s *ClosingShiftService) finalizePrintedDrafts(ctx context.Context, openingShiftID uuid.UUID) {
	drafts, err := s.reader.DraftTransactions(ctx, openingShiftID)
	if err != nil {
		s.logger.Warn("printed draft scan failed",
			zap.String("opening_shift_id", openingShiftID.String()), zap.Error(err))
		return
	}
	for _, draft := range drafts {
		if !draft.Printed {
			continue
		}
		if err := s.reader.FinalizeDraftTransaction(ctx, draft.ID); err != nil {
			s.logger.Warn("printed draft finalization failed",
				zap.String("transaction_id", draft.ID.String()), zap.Error(err))
		}
	}
}

// cleanupDrafts removes unfinalized sale drafts after a successful
// submission. Each removal is independent; failures are logged and never
// surfaced, the shift has already closed.
func (s *ClosingShiftService) cleanupDrafts(ctx context.Context, openingShiftID uuid.UUID) {
	drafts, err := s.reader.DraftTransactions(ctx, openingShiftID)
	if err != nil {
		s.logger.Warn("draft cleanup scan failed",
			zap.String("opening_shift_id", openingShiftID.String()), zap.Error(err))
		return
	}
	for _, draft := range drafts {
		if err := s.reader.DeleteDraftTransaction(ctx, draft.ID); err != nil {
			s.logger.Warn("draft cleanup failed for transaction",
				zap.String("transaction_id", draft.ID.String()), zap.Error(err))
		}
	}
}

func (s *ClosingShiftService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
