package lazyptr

import (
	"reflect"
	"sync"
)

// EventBus delivers events to handlers subscribed by event type. Owners
// and registries built WithEventBus publish Allocated, Deallocated,
// BlockFreed and Released on it; callers may publish their own types on
// the same bus.
//
// Handlers run synchronously on the goroutine that published the event,
// in the order they were subscribed. The zero value is ready to use.
type EventBus struct {
	handlers map[reflect.Type][]any
	mu       sync.RWMutex
}

// Subscribe registers a handler function to be called when an event of
// type `T` is published.
//
// Parameters:
//   - bus: The EventBus instance to subscribe to.
//   - handler: A function that takes a single argument of type `T`.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	t := reflect.TypeFor[T]()
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if bus.handlers == nil {
		bus.handlers = make(map[reflect.Type][]any)
	}
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish broadcasts an event of type `T` to all registered handlers for
// that type. Publishing on a nil bus does nothing.
//
// Parameters:
//   - bus: The EventBus instance to publish to.
//   - event: The event data of type `T` to be sent to handlers.
func Publish[T any](bus *EventBus, event T) {
	if bus == nil {
		return
	}
	bus.mu.RLock()
	hs := bus.handlers[reflect.TypeFor[T]()]
	bus.mu.RUnlock()
	for _, h := range hs {
		h.(func(T))(event)
	}
}
