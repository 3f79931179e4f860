package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shift"
)

// ShiftAuditHandler writes a structured audit line for every shift
// lifecycle event. Store reconciliation disputes get settled from these
// entries, so the handler subscribes to the full lifecycle.
type ShiftAuditHandler struct {
	logger *zap.Logger
}

// NewShiftAuditHandler creates a new ShiftAuditHandler
func NewShiftAuditHandler(logger *zap.Logger) *ShiftAuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftAuditHandler{logger: logger.Named("shift_audit")}
}

// Handle logs the event with its aggregate identifiers
func (h *ShiftAuditHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *shift.ShiftOpenedEvent:
		fields = append(fields,
			zap.String("profile_id", e.ProfileID.String()),
			zap.String("user_id", e.UserID.String()),
		)
	case *shift.ShiftClosedEvent:
		fields = append(fields,
			zap.String("closing_shift_id", e.ClosingShiftID.String()),
		)
	case *shift.ClosingSubmittedEvent:
		fields = append(fields,
			zap.String("opening_shift_id", e.OpeningShiftID.String()),
			zap.String("grand_total", e.GrandTotal.String()),
		)
	}

	h.logger.Info(event.EventType(), fields...)
	return nil
}

// EventTypes returns the shift lifecycle events this handler audits
func (h *ShiftAuditHandler) EventTypes() []string {
	return []string{
		shift.EventTypeShiftOpened,
		shift.EventTypeShiftClosed,
		shift.EventTypeShiftCancelled,
		shift.EventTypeClosingSubmitted,
		shift.EventTypeClosingCancelled,
	}
}

// Ensure ShiftAuditHandler implements EventHandler
var _ shared.EventHandler = (*ShiftAuditHandler)(nil)
