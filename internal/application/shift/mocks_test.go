package shift

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pos/backend/internal/domain/profile"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shift"
)

// MockOpeningShiftRepository is a mock implementation of OpeningShiftRepository
type MockOpeningShiftRepository struct {
	mock.Mock
}

func (m *MockOpeningShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*shift.OpeningShift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shift.OpeningShift), args.Error(1)
}

func (m *MockOpeningShiftRepository) FindOpenByTriple(ctx context.Context, userID, companyID, profileID uuid.UUID) (*shift.OpeningShift, error) {
	args := m.Called(ctx, userID, companyID, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shift.OpeningShift), args.Error(1)
}

func (m *MockOpeningShiftRepository) FindLatestOpenByUser(ctx context.Context, userID uuid.UUID) (*shift.OpeningShift, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shift.OpeningShift), args.Error(1)
}

func (m *MockOpeningShiftRepository) FindAllOpen(ctx context.Context) ([]shift.OpeningShift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shift.OpeningShift), args.Error(1)
}

func (m *MockOpeningShiftRepository) FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]shift.OpeningShift, error) {
	args := m.Called(ctx, profileID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shift.OpeningShift), args.Error(1)
}

func (m *MockOpeningShiftRepository) CountByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, profileID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOpeningShiftRepository) Save(ctx context.Context, s *shift.OpeningShift) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockOpeningShiftRepository) SaveWithLock(ctx context.Context, s *shift.OpeningShift) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockOpeningShiftRepository) ExistsOpen(ctx context.Context, userID, companyID, profileID uuid.UUID, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, companyID, profileID, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockClosingShiftRepository is a mock implementation of ClosingShiftRepository
type MockClosingShiftRepository struct {
	mock.Mock
}

func (m *MockClosingShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*shift.ClosingShift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shift.ClosingShift), args.Error(1)
}

func (m *MockClosingShiftRepository) FindDraftByOpeningShift(ctx context.Context, openingShiftID uuid.UUID) (*shift.ClosingShift, error) {
	args := m.Called(ctx, openingShiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shift.ClosingShift), args.Error(1)
}

func (m *MockClosingShiftRepository) FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]shift.ClosingShift, error) {
	args := m.Called(ctx, profileID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shift.ClosingShift), args.Error(1)
}

func (m *MockClosingShiftRepository) Save(ctx context.Context, c *shift.ClosingShift) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClosingShiftRepository) SaveWithLock(ctx context.Context, c *shift.ClosingShift) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClosingShiftRepository) SaveWithOpening(ctx context.Context, c *shift.ClosingShift, o *shift.OpeningShift) error {
	args := m.Called(ctx, c, o)
	return args.Error(0)
}

func (m *MockClosingShiftRepository) ExistsActiveForOpeningShift(ctx context.Context, openingShiftID uuid.UUID, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, openingShiftID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClosingShiftRepository) ExistsSubmittedForOpeningShift(ctx context.Context, openingShiftID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, openingShiftID, userID)
	return args.Bool(0), args.Error(1)
}

// MockProfileRepository is a mock implementation of profile.Repository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByName(ctx context.Context, name string) (*profile.Profile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]profile.Profile, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, p *profile.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockTransactionReader is a mock implementation of TransactionReader
type MockTransactionReader struct {
	mock.Mock
}

func (m *MockTransactionReader) FinalizedTransactions(ctx context.Context, openingShiftID uuid.UUID) ([]shift.Transaction, error) {
	args := m.Called(ctx, openingShiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shift.Transaction), args.Error(1)
}

func (m *MockTransactionReader) ExternalPayments(ctx context.Context, openingShiftID uuid.UUID) ([]shift.ExternalPayment, error) {
	args := m.Called(ctx, openingShiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shift.ExternalPayment), args.Error(1)
}

func (m *MockTransactionReader) DraftTransactions(ctx context.Context, openingShiftID uuid.UUID) ([]shift.DraftTransaction, error) {
	args := m.Called(ctx, openingShiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shift.DraftTransaction), args.Error(1)
}

func (m *MockTransactionReader) FinalizeDraftTransaction(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionReader) DeleteDraftTransaction(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
