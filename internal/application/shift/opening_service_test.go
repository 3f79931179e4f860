package shift

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/profile"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shift"
)

func newTestProfile(t *testing.T) *profile.Profile {
	p, err := profile.NewProfile("Front Counter", uuid.New(), "Acme Retail")
	require.NoError(t, err)
	require.NoError(t, p.AddPaymentMethod("Cash"))
	require.NoError(t, p.AddPaymentMethod("Card"))
	return p
}

func newOpenShiftRequest(p *profile.Profile) OpenShiftRequest {
	return OpenShiftRequest{
		ProfileID: p.ID,
		CompanyID: p.CompanyID,
		UserID:    uuid.New(),
		Balances: []BalanceInput{
			{Method: "Cash", Amount: decimal.NewFromInt(100)},
		},
	}
}

func newOpeningService(openingRepo *MockOpeningShiftRepository, closingRepo *MockClosingShiftRepository, profileRepo *MockProfileRepository) *OpeningShiftService {
	return NewOpeningShiftService(openingRepo, closingRepo, profileRepo)
}

func TestOpeningShiftService_Open(t *testing.T) {
	t.Run("opens a shift with declared balances", func(t *testing.T) {
		openingRepo := new(MockOpeningShiftRepository)
		closingRepo := new(MockClosingShiftRepository)
		profileRepo := new(MockProfileRepository)
		svc := newOpeningService(openingRepo, closingRepo, profileRepo)

		p := newTestProfile(t)
		req := newOpenShiftRequest(p)

		profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		openingRepo.On("FindOpenByTriple", mock.Anything, req.UserID, req.CompanyID, req.ProfileID).
			Return(nil, shared.ErrNotFound)
		openingRepo.On("Save", mock.Anything, mock.AnythingOfType("*shift.OpeningShift")).Return(nil)

		resp, err := svc.Open(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, shift.OpeningStatusOpen.String(), resp.Status)
		assert.Equal(t, "Front Counter", resp.ProfileName)
		require.Len(t, resp.Balances, 1)
		assert.True(t, resp.Balances[0].Amount.Equal(decimal.NewFromInt(100)))
		openingRepo.AssertExpectations(t)
	})

	t.Run("rejects second open shift for the same triple", func(t *testing.T) {
		openingRepo := new(MockOpeningShiftRepository)
		profileRepo := new(MockProfileRepository)
		svc := newOpeningService(openingRepo, new(MockClosingShiftRepository), profileRepo)

		p := newTestProfile(t)
		req := newOpenShiftRequest(p)

		existing, err := shift.NewOpeningShift(p.ID, p.Name, p.CompanyID, req.UserID)
		require.NoError(t, err)
		require.NoError(t, existing.Open(time.Now()))

		profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		openingRepo.On("FindOpenByTriple", mock.Anything, req.UserID, req.CompanyID, req.ProfileID).
			Return(existing, nil)

		_, err = svc.Open(context.Background(), req)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHIFT_ALREADY_OPEN", domainErr.Code)
		assert.Contains(t, domainErr.Message, existing.ID.String())
		openingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects disabled profile", func(t *testing.T) {
		profileRepo := new(MockProfileRepository)
		svc := newOpeningService(new(MockOpeningShiftRepository), new(MockClosingShiftRepository), profileRepo)

		p := newTestProfile(t)
		p.Disable()
		req := newOpenShiftRequest(p)
		profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.Open(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("rejects company mismatch", func(t *testing.T) {
		profileRepo := new(MockProfileRepository)
		svc := newOpeningService(new(MockOpeningShiftRepository), new(MockClosingShiftRepository), profileRepo)

		p := newTestProfile(t)
		req := newOpenShiftRequest(p)
		req.CompanyID = uuid.New()
		profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.Open(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "COMPANY_MISMATCH", domainErr.Code)
	})

	t.Run("rejects unauthorized user", func(t *testing.T) {
		profileRepo := new(MockProfileRepository)
		svc := newOpeningService(new(MockOpeningShiftRepository), new(MockClosingShiftRepository), profileRepo)

		p := newTestProfile(t)
		require.NoError(t, p.AuthorizeUser(uuid.New())) // someone else
		req := newOpenShiftRequest(p)
		profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.Open(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USER_NOT_AUTHORIZED", domainErr.Code)
	})

	t.Run("rejects balance for unregistered method", func(t *testing.T) {
		openingRepo := new(MockOpeningShiftRepository)
		profileRepo := new(MockProfileRepository)
		svc := newOpeningService(openingRepo, new(MockClosingShiftRepository), profileRepo)

		p := newTestProfile(t)
		req := newOpenShiftRequest(p)
		req.Balances = []BalanceInput{{Method: "Bitcoin", Amount: decimal.NewFromInt(1)}}

		profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		openingRepo.On("FindOpenByTriple", mock.Anything, req.UserID, req.CompanyID, req.ProfileID).
			Return(nil, shared.ErrNotFound)

		_, err := svc.Open(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNKNOWN_PAYMENT_METHOD", domainErr.Code)
	})

	t.Run("rejects negative balance", func(t *testing.T) {
		openingRepo := new(MockOpeningShiftRepository)
		profileRepo := new(MockProfileRepository)
		svc := newOpeningService(openingRepo, new(MockClosingShiftRepository), profileRepo)

		p := newTestProfile(t)
		req := newOpenShiftRequest(p)
		req.Balances = []BalanceInput{{Method: "Cash", Amount: decimal.NewFromInt(-5)}}

		profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		openingRepo.On("FindOpenByTriple", mock.Anything, req.UserID, req.CompanyID, req.ProfileID).
			Return(nil, shared.ErrNotFound)

		_, err := svc.Open(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("rejects outside opening window", func(t *testing.T) {
		profileRepo := new(MockProfileRepository)
		svc := newOpeningService(new(MockOpeningShiftRepository), new(MockClosingShiftRepository), profileRepo)
		svc.now = func() time.Time {
			return time.Date(2026, 3, 14, 3, 0, 0, 0, time.UTC)
		}

		p := newTestProfile(t)
		p.SetOpeningWindow(true, "07:00", "10:00")
		req := newOpenShiftRequest(p)
		profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.Open(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "WINDOW_CLOSED", domainErr.Code)
	})
}

func TestOpeningShiftService_CheckOpeningAllowed(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	svc := newOpeningService(new(MockOpeningShiftRepository), new(MockClosingShiftRepository), profileRepo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	}

	p := newTestProfile(t)
	p.SetOpeningWindow(true, "07:00", "10:00")
	profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	resp, err := svc.CheckOpeningAllowed(context.Background(), p.ID)

	require.NoError(t, err)
	assert.True(t, resp.Allowed)
}

func TestOpeningShiftService_Current(t *testing.T) {
	t.Run("returns the latest open shift", func(t *testing.T) {
		openingRepo := new(MockOpeningShiftRepository)
		svc := newOpeningService(openingRepo, new(MockClosingShiftRepository), new(MockProfileRepository))

		userID := uuid.New()
		opening, err := shift.NewOpeningShift(uuid.New(), "Front Counter", uuid.New(), userID)
		require.NoError(t, err)
		require.NoError(t, opening.Open(time.Now()))
		openingRepo.On("FindLatestOpenByUser", mock.Anything, userID).Return(opening, nil)

		resp, err := svc.Current(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, opening.ID, resp.ID)
	})

	t.Run("not found when no shift is open", func(t *testing.T) {
		openingRepo := new(MockOpeningShiftRepository)
		svc := newOpeningService(openingRepo, new(MockClosingShiftRepository), new(MockProfileRepository))

		userID := uuid.New()
		openingRepo.On("FindLatestOpenByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		_, err := svc.Current(context.Background(), userID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOpeningShiftService_Cancel(t *testing.T) {
	t.Run("cancels a linked closing shift too", func(t *testing.T) {
		openingRepo := new(MockOpeningShiftRepository)
		closingRepo := new(MockClosingShiftRepository)
		svc := newOpeningService(openingRepo, closingRepo, new(MockProfileRepository))

		opening, err := shift.NewOpeningShift(uuid.New(), "Front Counter", uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, opening.Open(time.Now()))
		closing, err := shift.NewClosingShift(opening, time.Now())
		require.NoError(t, err)
		require.NoError(t, closing.Submit(time.Now()))
		require.NoError(t, opening.MarkClosed(closing.ID, time.Now()))

		openingRepo.On("FindByID", mock.Anything, opening.ID).Return(opening, nil)
		closingRepo.On("FindByID", mock.Anything, closing.ID).Return(closing, nil)
		closingRepo.On("SaveWithOpening", mock.Anything, closing, opening).Return(nil)

		resp, err := svc.Cancel(context.Background(), opening.ID)

		require.NoError(t, err)
		assert.Equal(t, shift.OpeningStatusCancelled.String(), resp.Status)
		assert.Equal(t, shift.ClosingStatusCancelled, closing.Status)
		assert.Nil(t, resp.ClosingShiftID)
	})

	t.Run("cancels a shift with no closing shift", func(t *testing.T) {
		openingRepo := new(MockOpeningShiftRepository)
		svc := newOpeningService(openingRepo, new(MockClosingShiftRepository), new(MockProfileRepository))

		opening, err := shift.NewOpeningShift(uuid.New(), "Front Counter", uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, opening.Open(time.Now()))

		openingRepo.On("FindByID", mock.Anything, opening.ID).Return(opening, nil)
		openingRepo.On("SaveWithLock", mock.Anything, opening).Return(nil)

		resp, err := svc.Cancel(context.Background(), opening.ID)

		require.NoError(t, err)
		assert.Equal(t, shift.OpeningStatusCancelled.String(), resp.Status)
	})
}
