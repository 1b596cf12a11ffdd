package lazyptr

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Registry holds at most one owned instance per type. Installing a new
// instance of a type disposes the previous one first. A Registry is an
// explicit context object; DefaultRegistry backs the process-wide slots
// returned by Static.
type Registry struct {
	slots map[reflect.Type]slotEntry
	bus   *EventBus
	mu    sync.Mutex
}

// slotEntry is one installed instance.
type slotEntry struct {
	value any
	id    uint64
}

// DefaultRegistry is the process-wide registry used by Static.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	o := buildOptions(opts)
	return &Registry{
		slots: make(map[reflect.Type]slotEntry),
		bus:   o.bus,
	}
}

// Len returns the number of occupied slots.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Clear disposes every installed instance and empties the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	entries := make(map[reflect.Type]slotEntry, len(r.slots))
	for t, e := range r.slots {
		entries[t] = e
	}
	clear(r.slots)
	r.mu.Unlock()

	for t, e := range entries {
		r.dispose(t, e)
	}
}

func (r *Registry) load(t reflect.Type) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.slots[t]
	return e.value, ok
}

func (r *Registry) take(t reflect.Type) (slotEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.slots[t]
	if ok {
		delete(r.slots, t)
	}
	return e, ok
}

func (r *Registry) put(t reflect.Type, value any) {
	e := slotEntry{value: value, id: newID()}
	r.mu.Lock()
	r.slots[t] = e
	r.mu.Unlock()
	publish(r.bus, Event{Type: EventAllocated, ID: e.id, TypeName: t.String(), Value: value})
}

// replace disposes the instance stored for t, then installs value unless
// it is nil. Re-installing the instance already held keeps it alive.
func (r *Registry) replace(t reflect.Type, value any) {
	old, had := r.take(t)
	if had {
		if sameObject(old.value, value) {
			r.mu.Lock()
			r.slots[t] = old
			r.mu.Unlock()
			return
		}
		Logger().Debug("slot replaced", zap.Stringer("type", t), zap.Uint64("id", old.id))
		r.dispose(t, old)
	}
	if !isNil(value) {
		r.put(t, value)
	}
}

func (r *Registry) dispose(t reflect.Type, e slotEntry) {
	dropValue(e.value)
	publish(r.bus, Event{Type: EventDeallocated, ID: e.id, TypeName: t.String(), Value: e.value})
}

// sameObject reports whether a and b are the same pointer-like object.
func sameObject(a, b any) bool {
	if isNil(a) || isNil(b) {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	return false
}

// Slot is a typed accessor for the instance of T held by a Registry.
// Slots are cheap values; every Slot[T] on the same registry refers to
// the same instance. The zero Slot[T] is the process-wide slot, the same
// as Static[T]().
type Slot[T any] struct {
	reg *Registry
	typ reflect.Type
}

// NewSlot returns the slot for T in r.
func NewSlot[T any](r *Registry) Slot[T] {
	return Slot[T]{reg: r, typ: reflect.TypeFor[T]()}
}

// NewSlotWith returns the slot for T in r after installing v, disposing
// any previous instance.
func NewSlotWith[T any](r *Registry, v T) Slot[T] {
	s := NewSlot[T](r)
	s.ResetTo(v)
	return s
}

// Static returns the process-wide slot for T.
func Static[T any]() Slot[T] {
	return NewSlot[T](DefaultRegistry)
}

func (s Slot[T]) target() (*Registry, reflect.Type) {
	if s.reg == nil {
		return DefaultRegistry, reflect.TypeFor[T]()
	}
	return s.reg, s.typ
}

// Get returns the installed instance and whether the slot is occupied.
func (s Slot[T]) Get() (T, bool) {
	r, t := s.target()
	v, ok := r.load(t)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustGet returns the installed instance. It panics with
// ErrNullDereference when the slot is empty.
func (s Slot[T]) MustGet() T {
	v, ok := s.Get()
	if !ok {
		nullDereference("Slot", typeName[T]())
	}
	return v
}

// IsNull reports whether the slot is empty.
func (s Slot[T]) IsNull() bool {
	_, ok := s.Get()
	return !ok
}

// Reset disposes the installed instance, if any.
func (s Slot[T]) Reset() {
	r, t := s.target()
	r.replace(t, nil)
}

// ResetTo disposes the installed instance, if any, then installs v.
// A nil v leaves the slot empty.
func (s Slot[T]) ResetTo(v T) {
	r, t := s.target()
	r.replace(t, any(v))
}
