package shared

// AggregateRoot is what the event publishing path needs from an aggregate:
// the events recorded since the last save, and a way to drop them once
// they have been handed off.
type AggregateRoot interface {
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot extends BaseEntity with an optimistic-lock version and
// a pending event list. Version starts at 1 and is bumped by the
// repository on every locked save.
type BaseAggregateRoot struct {
	BaseEntity
	Version int

	domainEvents []DomainEvent
}

// NewBaseAggregateRoot returns a fresh aggregate root at version 1.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// AddDomainEvent records an event for publication after the next save.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the events recorded since the last clear.
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents drops the pending events.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
