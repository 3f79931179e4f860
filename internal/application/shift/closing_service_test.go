package shift

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/profile"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shift"
)

type closingServiceFixture struct {
	openingRepo *MockOpeningShiftRepository
	closingRepo *MockClosingShiftRepository
	profileRepo *MockProfileRepository
	reader      *MockTransactionReader
	svc         *ClosingShiftService
}

func newClosingFixture() *closingServiceFixture {
	f := &closingServiceFixture{
		openingRepo: new(MockOpeningShiftRepository),
		closingRepo: new(MockClosingShiftRepository),
		profileRepo: new(MockProfileRepository),
		reader:      new(MockTransactionReader),
	}
	f.svc = NewClosingShiftService(f.openingRepo, f.closingRepo, f.profileRepo, f.reader, zap.NewNop())
	return f
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// openShiftWithCash builds an Open shift declaring Cash: 100.00 on the profile
func openShiftWithCash(t *testing.T, p *profile.Profile) *shift.OpeningShift {
	opening, err := shift.NewOpeningShift(p.ID, p.Name, p.CompanyID, uuid.New())
	require.NoError(t, err)
	require.NoError(t, opening.DeclareBalance("Cash", d("100.00")))
	require.NoError(t, opening.Open(time.Now()))
	opening.ClearDomainEvents()
	return opening
}

// shiftSales is the reference scenario: a 50.00 cash sale paid with 60.00
// (10.00 change) and a 30.00 card sale.
func shiftSales() []shift.Transaction {
	return []shift.Transaction{
		{
			ID:            uuid.New(),
			PostedAt:      time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC),
			CustomerID:    uuid.New(),
			GrandTotal:    d("50.00"),
			NetTotal:      d("45.00"),
			TotalQuantity: d("3"),
			ChangeAmount:  d("10.00"),
			Payments:      []shift.PaymentLine{{Method: "Cash", Amount: d("60.00")}},
		},
		{
			ID:            uuid.New(),
			PostedAt:      time.Date(2026, 3, 14, 11, 40, 0, 0, time.UTC),
			CustomerID:    uuid.New(),
			GrandTotal:    d("30.00"),
			NetTotal:      d("27.00"),
			TotalQuantity: d("1"),
			Payments:      []shift.PaymentLine{{Method: "Card", Amount: d("30.00")}},
		},
	}
}

func TestClosingShiftService_BuildDraft(t *testing.T) {
	t.Run("builds rows from sales and opening balances", func(t *testing.T) {
		f := newClosingFixture()
		p := newTestProfile(t)
		opening := openShiftWithCash(t, p)

		f.openingRepo.On("FindByID", mock.Anything, opening.ID).Return(opening, nil)
		f.profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.reader.On("DraftTransactions", mock.Anything, opening.ID).Return([]shift.DraftTransaction{}, nil)
		f.reader.On("FinalizedTransactions", mock.Anything, opening.ID).Return(shiftSales(), nil)
		f.reader.On("ExternalPayments", mock.Anything, opening.ID).Return([]shift.ExternalPayment{}, nil)
		f.closingRepo.On("FindDraftByOpeningShift", mock.Anything, opening.ID).Return(nil, shared.ErrNotFound)
		f.closingRepo.On("Save", mock.Anything, mock.AnythingOfType("*shift.ClosingShift")).Return(nil)

		resp, err := f.svc.BuildDraft(context.Background(), opening.ID)

		require.NoError(t, err)
		require.Len(t, resp.Payments, 2)

		cash := resp.Payments[0]
		assert.Equal(t, "Cash", cash.Method)
		assert.True(t, cash.OpeningAmount.Equal(d("100.00")))
		assert.True(t, cash.ExpectedAmount.Equal(d("50.00")))
		assert.True(t, cash.ClosingAmount.IsZero())

		card := resp.Payments[1]
		assert.Equal(t, "Card", card.Method)
		assert.True(t, card.OpeningAmount.IsZero())
		assert.True(t, card.ExpectedAmount.Equal(d("30.00")))

		assert.True(t, resp.GrandTotal.Equal(d("80.00")))
		assert.Len(t, resp.Transactions, 2)
	})

	t.Run("refreshes the existing draft instead of creating another", func(t *testing.T) {
		f := newClosingFixture()
		p := newTestProfile(t)
		opening := openShiftWithCash(t, p)
		existing, err := shift.NewClosingShift(opening, time.Now())
		require.NoError(t, err)

		f.openingRepo.On("FindByID", mock.Anything, opening.ID).Return(opening, nil)
		f.profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.reader.On("DraftTransactions", mock.Anything, opening.ID).Return([]shift.DraftTransaction{}, nil)
		f.reader.On("FinalizedTransactions", mock.Anything, opening.ID).Return(shiftSales(), nil)
		f.reader.On("ExternalPayments", mock.Anything, opening.ID).Return([]shift.ExternalPayment{}, nil)
		f.closingRepo.On("FindDraftByOpeningShift", mock.Anything, opening.ID).Return(existing, nil)
		f.closingRepo.On("Save", mock.Anything, existing).Return(nil)

		first, err := f.svc.BuildDraft(context.Background(), opening.ID)
		require.NoError(t, err)
		second, err := f.svc.BuildDraft(context.Background(), opening.ID)
		require.NoError(t, err)

		assert.Equal(t, existing.ID, first.ID)
		assert.Equal(t, first.ID, second.ID)
		require.Equal(t, len(first.Payments), len(second.Payments))
		for i := range first.Payments {
			assert.Equal(t, first.Payments[i].Method, second.Payments[i].Method)
			assert.True(t, first.Payments[i].OpeningAmount.Equal(second.Payments[i].OpeningAmount))
			assert.True(t, first.Payments[i].ExpectedAmount.Equal(second.Payments[i].ExpectedAmount))
		}
	})

	t.Run("rejects a non-open opening shift", func(t *testing.T) {
		f := newClosingFixture()
		p := newTestProfile(t)
		opening := openShiftWithCash(t, p)
		require.NoError(t, opening.Cancel())

		f.openingRepo.On("FindByID", mock.Anything, opening.ID).Return(opening, nil)

		_, err := f.svc.BuildDraft(context.Background(), opening.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHIFT_NOT_OPEN", domainErr.Code)
		f.closingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("surfaces read failures instead of zeroing", func(t *testing.T) {
		f := newClosingFixture()
		p := newTestProfile(t)
		opening := openShiftWithCash(t, p)

		f.openingRepo.On("FindByID", mock.Anything, opening.ID).Return(opening, nil)
		f.profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.reader.On("DraftTransactions", mock.Anything, opening.ID).Return([]shift.DraftTransaction{}, nil)
		f.reader.On("FinalizedTransactions", mock.Anything, opening.ID).
			Return(nil, errors.New("connection reset"))

		_, err := f.svc.BuildDraft(context.Background(), opening.ID)

		require.Error(t, err)
		f.closingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("finalizes printed drafts before aggregating", func(t *testing.T) {
		f := newClosingFixture()
		p := newTestProfile(t)
		opening := openShiftWithCash(t, p)
		printed := shift.DraftTransaction{ID: uuid.New(), Printed: true}
		unprinted := shift.DraftTransaction{ID: uuid.New(), Printed: false}

		f.openingRepo.On("FindByID", mock.Anything, opening.ID).Return(opening, nil)
		f.profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.reader.On("DraftTransactions", mock.Anything, opening.ID).
			Return([]shift.DraftTransaction{printed, unprinted}, nil)
		f.reader.On("FinalizeDraftTransaction", mock.Anything, printed.ID).Return(nil)
		f.reader.On("FinalizedTransactions", mock.Anything, opening.ID).Return([]shift.Transaction{}, nil)
		f.reader.On("ExternalPayments", mock.Anything, opening.ID).Return([]shift.ExternalPayment{}, nil)
		f.closingRepo.On("FindDraftByOpeningShift", mock.Anything, opening.ID).Return(nil, shared.ErrNotFound)
		f.closingRepo.On("Save", mock.Anything, mock.AnythingOfType("*shift.ClosingShift")).Return(nil)

		_, err := f.svc.BuildDraft(context.Background(), opening.ID)

		require.NoError(t, err)
		f.reader.AssertCalled(t, "FinalizeDraftTransaction", mock.Anything, printed.ID)
		f.reader.AssertNotCalled(t, "FinalizeDraftTransaction", mock.Anything, unprinted.ID)
	})
}

func TestClosingShiftService_Submit(t *testing.T) {
	setup := func(t *testing.T, p *profile.Profile) (*closingServiceFixture, *shift.OpeningShift, *shift.ClosingShift) {
		f := newClosingFixture()
		opening := openShiftWithCash(t, p)
		closing, err := shift.NewClosingShift(opening, time.Now())
		require.NoError(t, err)

		f.closingRepo.On("FindByID", mock.Anything, closing.ID).Return(closing, nil)
		f.openingRepo.On("FindByID", mock.Anything, opening.ID).Return(opening, nil)
		f.profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		return f, opening, closing
	}

	submitReq := SubmitClosingRequest{ClosingAmounts: []ClosingAmountInput{
		{Method: "Cash", Amount: d("45.00")},
		{Method: "Card", Amount: d("30.00")},
	}}

	t.Run("submits with recomputed differences and closes the opening shift", func(t *testing.T) {
		p := newTestProfile(t)
		f, opening, closing := setup(t, p)

		f.closingRepo.On("ExistsSubmittedForOpeningShift", mock.Anything, opening.ID, closing.UserID).
			Return(false, nil)
		f.closingRepo.On("ExistsActiveForOpeningShift", mock.Anything, opening.ID, closing.ID).
			Return(false, nil)
		f.reader.On("FinalizedTransactions", mock.Anything, opening.ID).Return(shiftSales(), nil)
		f.reader.On("ExternalPayments", mock.Anything, opening.ID).Return([]shift.ExternalPayment{}, nil)
		f.closingRepo.On("SaveWithOpening", mock.Anything, closing, opening).Return(nil)

		resp, err := f.svc.Submit(context.Background(), closing.ID, submitReq)

		require.NoError(t, err)
		assert.Equal(t, shift.ClosingStatusSubmitted.String(), resp.Status)
		require.Len(t, resp.Payments, 2)
		assert.True(t, resp.Payments[0].Difference.Equal(d("-5.00")))
		assert.True(t, resp.Payments[1].Difference.IsZero())

		assert.Equal(t, shift.OpeningStatusClosed, opening.Status)
		require.NotNil(t, opening.ClosingShiftID)
		assert.Equal(t, closing.ID, *opening.ClosingShiftID)
		f.closingRepo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate submission", func(t *testing.T) {
		p := newTestProfile(t)
		f, opening, closing := setup(t, p)

		f.closingRepo.On("ExistsSubmittedForOpeningShift", mock.Anything, opening.ID, closing.UserID).
			Return(true, nil)

		_, err := f.svc.Submit(context.Background(), closing.ID, submitReq)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_CLOSING_SHIFT", domainErr.Code)
		f.closingRepo.AssertNotCalled(t, "SaveWithOpening", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects when the opening shift is no longer open", func(t *testing.T) {
		p := newTestProfile(t)
		f, opening, closing := setup(t, p)
		require.NoError(t, opening.MarkClosed(uuid.New(), time.Now()))

		_, err := f.svc.Submit(context.Background(), closing.ID, submitReq)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHIFT_NOT_OPEN", domainErr.Code)
	})

	t.Run("rejects outside the closing window", func(t *testing.T) {
		p := newTestProfile(t)
		p.SetClosingWindow(true, "22:00", "02:00")
		f, opening, closing := setup(t, p)
		f.svc.now = func() time.Time {
			return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
		}

		f.closingRepo.On("ExistsSubmittedForOpeningShift", mock.Anything, opening.ID, closing.UserID).
			Return(false, nil)
		f.closingRepo.On("ExistsActiveForOpeningShift", mock.Anything, opening.ID, closing.ID).
			Return(false, nil)

		_, err := f.svc.Submit(context.Background(), closing.ID, submitReq)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "WINDOW_CLOSED", domainErr.Code)
	})

	t.Run("cleans up drafts when the profile opts in", func(t *testing.T) {
		p := newTestProfile(t)
		p.AutoDeleteDrafts = true
		f, opening, closing := setup(t, p)
		draft := shift.DraftTransaction{ID: uuid.New()}

		f.closingRepo.On("ExistsSubmittedForOpeningShift", mock.Anything, opening.ID, closing.UserID).
			Return(false, nil)
		f.closingRepo.On("ExistsActiveForOpeningShift", mock.Anything, opening.ID, closing.ID).
			Return(false, nil)
		f.reader.On("FinalizedTransactions", mock.Anything, opening.ID).Return([]shift.Transaction{}, nil)
		f.reader.On("ExternalPayments", mock.Anything, opening.ID).Return([]shift.ExternalPayment{}, nil)
		f.closingRepo.On("SaveWithOpening", mock.Anything, closing, opening).Return(nil)
		f.reader.On("DraftTransactions", mock.Anything, opening.ID).
			Return([]shift.DraftTransaction{draft}, nil)
		f.reader.On("DeleteDraftTransaction", mock.Anything, draft.ID).
			Return(errors.New("locked"))

		// A cleanup failure must not surface
		resp, err := f.svc.Submit(context.Background(), closing.ID, SubmitClosingRequest{
			ClosingAmounts: []ClosingAmountInput{{Method: "Cash", Amount: d("100.00")}},
		})

		require.NoError(t, err)
		assert.Equal(t, shift.ClosingStatusSubmitted.String(), resp.Status)
		f.reader.AssertCalled(t, "DeleteDraftTransaction", mock.Anything, draft.ID)
	})
}

func TestClosingShiftService_Cancel(t *testing.T) {
	t.Run("cancelling a submitted closing shift reopens the opening shift", func(t *testing.T) {
		f := newClosingFixture()
		p := newTestProfile(t)
		opening := openShiftWithCash(t, p)
		closing, err := shift.NewClosingShift(opening, time.Now())
		require.NoError(t, err)
		require.NoError(t, closing.Submit(time.Now()))
		require.NoError(t, opening.MarkClosed(closing.ID, time.Now()))
		closing.ClearDomainEvents()

		f.closingRepo.On("FindByID", mock.Anything, closing.ID).Return(closing, nil)
		f.openingRepo.On("FindByID", mock.Anything, opening.ID).Return(opening, nil)
		f.closingRepo.On("SaveWithOpening", mock.Anything, closing, opening).Return(nil)

		resp, err := f.svc.Cancel(context.Background(), closing.ID)

		require.NoError(t, err)
		assert.Equal(t, shift.ClosingStatusCancelled.String(), resp.Status)
		assert.Equal(t, shift.OpeningStatusOpen, opening.Status)
		assert.Nil(t, opening.ClosingShiftID)
	})
}

func TestClosingShiftService_LiveTotals(t *testing.T) {
	t.Run("splits cash and non-cash", func(t *testing.T) {
		f := newClosingFixture()
		p := newTestProfile(t)
		opening := openShiftWithCash(t, p)

		f.openingRepo.On("FindLatestOpenByUser", mock.Anything, opening.UserID).Return(opening, nil)
		f.profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.reader.On("FinalizedTransactions", mock.Anything, opening.ID).Return(shiftSales(), nil)
		f.reader.On("ExternalPayments", mock.Anything, opening.ID).Return([]shift.ExternalPayment{}, nil)

		resp, err := f.svc.LiveTotals(context.Background(), p.ID, opening.UserID)

		require.NoError(t, err)
		assert.True(t, resp.CashTotal.Equal(d("50.00")))
		assert.True(t, resp.NonCashTotal.Equal(d("30.00")))
	})

	t.Run("degrades to zero on read failure", func(t *testing.T) {
		f := newClosingFixture()
		p := newTestProfile(t)
		opening := openShiftWithCash(t, p)

		f.openingRepo.On("FindLatestOpenByUser", mock.Anything, opening.UserID).Return(opening, nil)
		f.profileRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.reader.On("FinalizedTransactions", mock.Anything, opening.ID).
			Return(nil, errors.New("timeout"))
		f.reader.On("ExternalPayments", mock.Anything, opening.ID).
			Return(nil, errors.New("timeout"))

		resp, err := f.svc.LiveTotals(context.Background(), p.ID, opening.UserID)

		require.NoError(t, err)
		assert.True(t, resp.CashTotal.IsZero())
		assert.True(t, resp.NonCashTotal.IsZero())
	})

	t.Run("errors when the profile has no open shift for the user", func(t *testing.T) {
		f := newClosingFixture()
		p := newTestProfile(t)
		opening := openShiftWithCash(t, p)

		f.openingRepo.On("FindLatestOpenByUser", mock.Anything, opening.UserID).Return(opening, nil)

		_, err := f.svc.LiveTotals(context.Background(), uuid.New(), opening.UserID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
