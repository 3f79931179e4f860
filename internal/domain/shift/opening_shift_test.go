package shift

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOpeningShift(t *testing.T) *OpeningShift {
	s, err := NewOpeningShift(uuid.New(), "Front Counter", uuid.New(), uuid.New())
	require.NoError(t, err)
	return s
}

func openTestShift(t *testing.T) *OpeningShift {
	s := createTestOpeningShift(t)
	require.NoError(t, s.DeclareBalance("Cash", decimal.NewFromInt(100)))
	require.NoError(t, s.Open(time.Now()))
	s.ClearDomainEvents()
	return s
}

func TestOpeningStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OpeningStatus
		isValid bool
	}{
		{OpeningStatusDraft, true},
		{OpeningStatusOpen, true},
		{OpeningStatusClosed, true},
		{OpeningStatusCancelled, true},
		{OpeningStatus("INVALID"), false},
		{OpeningStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOpeningStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OpeningStatus
		to       OpeningStatus
		canTrans bool
	}{
		{OpeningStatusDraft, OpeningStatusOpen, true},
		{OpeningStatusDraft, OpeningStatusCancelled, true},
		{OpeningStatusDraft, OpeningStatusClosed, false},
		{OpeningStatusOpen, OpeningStatusClosed, true},
		{OpeningStatusOpen, OpeningStatusCancelled, true},
		{OpeningStatusOpen, OpeningStatusDraft, false},
		// Cancelling the closing shift reopens the opening shift
		{OpeningStatusClosed, OpeningStatusOpen, true},
		{OpeningStatusClosed, OpeningStatusCancelled, true},
		{OpeningStatusCancelled, OpeningStatusOpen, false},
		{OpeningStatusCancelled, OpeningStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewOpeningShift(t *testing.T) {
	t.Run("creates draft with no balances", func(t *testing.T) {
		s := createTestOpeningShift(t)
		assert.Equal(t, OpeningStatusDraft, s.Status)
		assert.Empty(t, s.Balances)
		assert.Nil(t, s.ClosingShiftID)
	})

	t.Run("rejects nil profile", func(t *testing.T) {
		_, err := NewOpeningShift(uuid.Nil, "", uuid.New(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects nil user", func(t *testing.T) {
		_, err := NewOpeningShift(uuid.New(), "", uuid.New(), uuid.Nil)
		assert.Error(t, err)
	})
}

func TestOpeningShift_DeclareBalance(t *testing.T) {
	t.Run("declares balances in order", func(t *testing.T) {
		s := createTestOpeningShift(t)
		require.NoError(t, s.DeclareBalance("Cash", decimal.NewFromInt(100)))
		require.NoError(t, s.DeclareBalance("Card", decimal.Zero))

		assert.Len(t, s.Balances, 2)
		assert.Equal(t, "Cash", s.Balances[0].Method)
		assert.True(t, s.OpeningAmount("Cash").Equal(decimal.NewFromInt(100)))
		assert.True(t, s.OpeningAmount("Voucher").IsZero())
	})

	t.Run("rejects negative balance", func(t *testing.T) {
		s := createTestOpeningShift(t)
		err := s.DeclareBalance("Cash", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("rejects duplicate method", func(t *testing.T) {
		s := createTestOpeningShift(t)
		require.NoError(t, s.DeclareBalance("Cash", decimal.NewFromInt(100)))
		err := s.DeclareBalance("Cash", decimal.NewFromInt(50))
		assert.Error(t, err)
	})

	t.Run("rejected once open", func(t *testing.T) {
		s := openTestShift(t)
		err := s.DeclareBalance("Card", decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestOpeningShift_Open(t *testing.T) {
	t.Run("opens a draft and raises event", func(t *testing.T) {
		s := createTestOpeningShift(t)
		startedAt := time.Now()
		require.NoError(t, s.Open(startedAt))

		assert.Equal(t, OpeningStatusOpen, s.Status)
		assert.Equal(t, startedAt, s.PeriodStartAt)

		events := s.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeShiftOpened, events[0].EventType())
	})

	t.Run("cannot open twice", func(t *testing.T) {
		s := openTestShift(t)
		assert.Error(t, s.Open(time.Now()))
	})
}

func TestOpeningShift_MarkClosed(t *testing.T) {
	t.Run("closes an open shift", func(t *testing.T) {
		s := openTestShift(t)
		closingID := uuid.New()
		endedAt := time.Now()

		require.NoError(t, s.MarkClosed(closingID, endedAt))

		assert.Equal(t, OpeningStatusClosed, s.Status)
		require.NotNil(t, s.ClosingShiftID)
		assert.Equal(t, closingID, *s.ClosingShiftID)
		require.NotNil(t, s.PeriodEndAt)
	})

	t.Run("rejects when not open", func(t *testing.T) {
		s := createTestOpeningShift(t)
		err := s.MarkClosed(uuid.New(), time.Now())
		assert.Error(t, err)
	})
}

func TestOpeningShift_Reopen(t *testing.T) {
	s := openTestShift(t)
	require.NoError(t, s.MarkClosed(uuid.New(), time.Now()))

	require.NoError(t, s.Reopen())

	assert.Equal(t, OpeningStatusOpen, s.Status)
	assert.Nil(t, s.ClosingShiftID)
	assert.Nil(t, s.PeriodEndAt)

	assert.Error(t, s.Reopen())
}

func TestOpeningShift_Cancel(t *testing.T) {
	t.Run("cancel unlinks closing shift", func(t *testing.T) {
		s := openTestShift(t)
		require.NoError(t, s.MarkClosed(uuid.New(), time.Now()))

		require.NoError(t, s.Cancel())

		assert.Equal(t, OpeningStatusCancelled, s.Status)
		assert.Nil(t, s.ClosingShiftID)
		assert.NotNil(t, s.CancelledAt)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		s := openTestShift(t)
		require.NoError(t, s.Cancel())
		assert.Error(t, s.Cancel())
	})
}
