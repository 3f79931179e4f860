package shift

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOpeningShift = "OpeningShift"
	AggregateTypeClosingShift = "ClosingShift"
)

// Event type constants
const (
	EventTypeShiftOpened      = "ShiftOpened"
	EventTypeShiftClosed      = "ShiftClosed"
	EventTypeShiftCancelled   = "ShiftCancelled"
	EventTypeClosingSubmitted = "ClosingShiftSubmitted"
	EventTypeClosingCancelled = "ClosingShiftCancelled"
)

// ShiftOpenedEvent is raised when a cashier session starts
type ShiftOpenedEvent struct {
	shared.BaseDomainEvent
	ShiftID       uuid.UUID `json:"shift_id"`
	ProfileID     uuid.UUID `json:"profile_id"`
	CompanyID     uuid.UUID `json:"company_id"`
	UserID        uuid.UUID `json:"user_id"`
	PeriodStartAt time.Time `json:"period_start_at"`
}

// NewShiftOpenedEvent creates a new ShiftOpenedEvent
func NewShiftOpenedEvent(s *OpeningShift) *ShiftOpenedEvent {
	return &ShiftOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShiftOpened, AggregateTypeOpeningShift, s.ID),
		ShiftID:         s.ID,
		ProfileID:       s.ProfileID,
		CompanyID:       s.CompanyID,
		UserID:          s.UserID,
		PeriodStartAt:   s.PeriodStartAt,
	}
}

// EventType returns the event type name
func (e *ShiftOpenedEvent) EventType() string {
	return EventTypeShiftOpened
}

// ShiftClosedEvent is raised when an opening shift is closed by its
// paired closing shift
type ShiftClosedEvent struct {
	shared.BaseDomainEvent
	ShiftID        uuid.UUID `json:"shift_id"`
	ClosingShiftID uuid.UUID `json:"closing_shift_id"`
	UserID         uuid.UUID `json:"user_id"`
}

// NewShiftClosedEvent creates a new ShiftClosedEvent
func NewShiftClosedEvent(s *OpeningShift) *ShiftClosedEvent {
	e := &ShiftClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShiftClosed, AggregateTypeOpeningShift, s.ID),
		ShiftID:         s.ID,
		UserID:          s.UserID,
	}
	if s.ClosingShiftID != nil {
		e.ClosingShiftID = *s.ClosingShiftID
	}
	return e
}

// EventType returns the event type name
func (e *ShiftClosedEvent) EventType() string {
	return EventTypeShiftClosed
}

// ShiftCancelledEvent is raised when an opening shift is cancelled
type ShiftCancelledEvent struct {
	shared.BaseDomainEvent
	ShiftID uuid.UUID `json:"shift_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// NewShiftCancelledEvent creates a new ShiftCancelledEvent
func NewShiftCancelledEvent(s *OpeningShift) *ShiftCancelledEvent {
	return &ShiftCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShiftCancelled, AggregateTypeOpeningShift, s.ID),
		ShiftID:         s.ID,
		UserID:          s.UserID,
	}
}

// EventType returns the event type name
func (e *ShiftCancelledEvent) EventType() string {
	return EventTypeShiftCancelled
}

// ClosingSubmittedEvent is raised when a closing shift is submitted
type ClosingSubmittedEvent struct {
	shared.BaseDomainEvent
	ClosingShiftID uuid.UUID       `json:"closing_shift_id"`
	OpeningShiftID uuid.UUID       `json:"opening_shift_id"`
	UserID         uuid.UUID       `json:"user_id"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// NewClosingSubmittedEvent creates a new ClosingSubmittedEvent
func NewClosingSubmittedEvent(c *ClosingShift) *ClosingSubmittedEvent {
	return &ClosingSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClosingSubmitted, AggregateTypeClosingShift, c.ID),
		ClosingShiftID:  c.ID,
		OpeningShiftID:  c.OpeningShiftID,
		UserID:          c.UserID,
		GrandTotal:      c.GrandTotal,
	}
}

// EventType returns the event type name
func (e *ClosingSubmittedEvent) EventType() string {
	return EventTypeClosingSubmitted
}

// ClosingCancelledEvent is raised when a closing shift is cancelled
type ClosingCancelledEvent struct {
	shared.BaseDomainEvent
	ClosingShiftID uuid.UUID `json:"closing_shift_id"`
	OpeningShiftID uuid.UUID `json:"opening_shift_id"`
}

// NewClosingCancelledEvent creates a new ClosingCancelledEvent
func NewClosingCancelledEvent(c *ClosingShift) *ClosingCancelledEvent {
	return &ClosingCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClosingCancelled, AggregateTypeClosingShift, c.ID),
		ClosingShiftID:  c.ID,
		OpeningShiftID:  c.OpeningShiftID,
	}
}

// EventType returns the event type name
func (e *ClosingCancelledEvent) EventType() string {
	return EventTypeClosingCancelled
}
