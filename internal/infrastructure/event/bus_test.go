package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shift"
)

type recordingHandler struct {
	eventTypes []string
	err        error

	mu      sync.Mutex
	handled []shared.DomainEvent
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.eventTypes }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func openedEvent() shared.DomainEvent {
	e := &shift.ShiftOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(shift.EventTypeShiftOpened, "OpeningShift", uuid.New()),
		ProfileID:       uuid.New(),
		UserID:          uuid.New(),
	}
	return e
}

func TestEventBusPublishToTypedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{eventTypes: []string{shift.EventTypeShiftOpened}}
	bus.Subscribe(h)

	err := bus.Publish(context.Background(), openedEvent())

	require.NoError(t, err)
	assert.Equal(t, 1, h.count())
}

func TestEventBusWildcardHandlerReceivesAll(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	wildcard := &recordingHandler{}
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), openedEvent(), openedEvent()))

	assert.Equal(t, 2, wildcard.count())
}

func TestEventBusSkipsNonMatchingHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	other := &recordingHandler{eventTypes: []string{shift.EventTypeClosingSubmitted}}
	bus.Subscribe(other)

	require.NoError(t, bus.Publish(context.Background(), openedEvent()))

	assert.Zero(t, other.count())
}

func TestEventBusExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{eventTypes: []string{shift.EventTypeClosingSubmitted}}
	bus.Subscribe(h, shift.EventTypeShiftOpened)

	require.NoError(t, bus.Publish(context.Background(), openedEvent()))

	assert.Equal(t, 1, h.count())
}

func TestEventBusHandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{eventTypes: []string{shift.EventTypeShiftOpened}, err: errors.New("boom")}
	healthy := &recordingHandler{eventTypes: []string{shift.EventTypeShiftOpened}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), openedEvent())

	require.NoError(t, err, "publisher never sees handler errors")
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count())
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	typed := &recordingHandler{eventTypes: []string{shift.EventTypeShiftOpened}}
	wildcard := &recordingHandler{}
	bus.Subscribe(typed)
	bus.Subscribe(wildcard)

	bus.Unsubscribe(typed)
	bus.Unsubscribe(wildcard)
	require.NoError(t, bus.Publish(context.Background(), openedEvent()))

	assert.Zero(t, typed.count())
	assert.Zero(t, wildcard.count())
}

func TestEventBusStartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
}
