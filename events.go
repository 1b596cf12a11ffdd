package lazyptr

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// EventType identifies an ownership lifecycle transition.
type EventType uint8

const (
	// EventAllocated is published when an owner takes a fresh object.
	EventAllocated EventType = iota
	// EventDeallocated is published after an object's disposal hook ran.
	EventDeallocated
	// EventBlockFreed is published when a reference count block has no
	// strong and no weak references left.
	EventBlockFreed
	// EventReleased is published when a Unique gives up its object
	// without disposing it.
	EventReleased
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventDeallocated:
		return "deallocated"
	case EventBlockFreed:
		return "block-freed"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event describes one lifecycle transition of a managed object.
type Event struct {
	Value    any
	TypeName string
	ID       uint64
	Type     EventType
}

// The event kinds published on an EventBus. Subscribe to one of them to
// receive only that transition, or use SubscribeAll.
type (
	Allocated   Event
	Deallocated Event
	BlockFreed  Event
	Released    Event
)

// SubscribeAll registers handler for every ownership event kind.
func SubscribeAll(bus *EventBus, handler func(Event)) {
	Subscribe(bus, func(e Allocated) { handler(Event(e)) })
	Subscribe(bus, func(e Deallocated) { handler(Event(e)) })
	Subscribe(bus, func(e BlockFreed) { handler(Event(e)) })
	Subscribe(bus, func(e Released) { handler(Event(e)) })
}

// publish sends e on bus as the Go type matching e.Type.
func publish(bus *EventBus, e Event) {
	if bus == nil {
		return
	}
	switch e.Type {
	case EventAllocated:
		Publish(bus, Allocated(e))
	case EventDeallocated:
		Publish(bus, Deallocated(e))
	case EventBlockFreed:
		Publish(bus, BlockFreed(e))
	case EventReleased:
		Publish(bus, Released(e))
	}
}

// Tracker counts allocations and deallocations. It is meant for leak
// checks in tests and profiling harnesses.
type Tracker struct {
	allocated   atomic.Int64
	deallocated atomic.Int64
	blocksFreed atomic.Int64
	released    atomic.Int64
}

// NewTracker returns a Tracker subscribed to bus.
func NewTracker(bus *EventBus) *Tracker {
	t := &Tracker{}
	Subscribe(bus, func(Allocated) { t.allocated.Add(1) })
	Subscribe(bus, func(Deallocated) { t.deallocated.Add(1) })
	Subscribe(bus, func(BlockFreed) { t.blocksFreed.Add(1) })
	Subscribe(bus, func(Released) { t.released.Add(1) })
	return t
}

// Allocated returns the number of objects taken into ownership.
func (t *Tracker) Allocated() int64 { return t.allocated.Load() }

// Deallocated returns the number of objects disposed.
func (t *Tracker) Deallocated() int64 { return t.deallocated.Load() }

// BlocksFreed returns the number of count blocks fully released.
func (t *Tracker) BlocksFreed() int64 { return t.blocksFreed.Load() }

// Released returns the number of objects handed back to callers by
// Unique.Release.
func (t *Tracker) Released() int64 { return t.released.Load() }

// Live returns the number of objects still owned.
func (t *Tracker) Live() int64 {
	return t.allocated.Load() - t.deallocated.Load() - t.released.Load()
}

// LogEvents subscribes l to every event on bus, logging at debug level.
// A nil logger falls back to the package Logger.
func LogEvents(bus *EventBus, l *zap.Logger) {
	if l == nil {
		l = Logger()
	}
	log := l.Named("lazyptr")
	SubscribeAll(bus, func(e Event) {
		log.Debug("ownership event",
			zap.Stringer("event", e.Type),
			zap.Uint64("id", e.ID),
			zap.String("type", e.TypeName))
	})
}

// options holds construction settings shared by all owners.
type options struct {
	bus *EventBus
}

// Option configures an owner or registry at construction.
type Option func(*options)

// WithEventBus publishes the lifecycle events of the constructed owner on
// bus. Owners derived by copying, moving or downcasting publish on the
// same bus.
func WithEventBus(bus *EventBus) Option {
	return func(opts *options) {
		opts.bus = bus
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
