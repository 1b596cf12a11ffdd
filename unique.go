package lazyptr

// Unique is an exclusive owner. There is no way to copy it: ownership
// only moves, and every move leaves the source empty. The zero value is
// an empty owner.
type Unique[T any] struct {
	noCopy  noCopy
	ptr     T
	set     bool
	deleter func(T)
	bus     *EventBus
	id      uint64
}

// NewUnique takes exclusive ownership of v. A nil v yields an empty owner.
func NewUnique[T any](v T, opts ...Option) *Unique[T] {
	return NewUniqueFunc(v, nil, opts...)
}

// NewUniqueFunc is like NewUnique but disposes v with deleter instead of
// Dropper.
func NewUniqueFunc[T any](v T, deleter func(T), opts ...Option) *Unique[T] {
	u := &Unique[T]{}
	u.install(v, deleter, buildOptions(opts))
	return u
}

func (u *Unique[T]) install(v T, deleter func(T), o options) {
	if isNil(any(v)) {
		return
	}
	u.ptr, u.set = v, true
	u.deleter = deleter
	u.bus = o.bus
	u.id = newID()
	publish(u.bus, Event{Type: EventAllocated, ID: u.id, TypeName: typeName[T](), Value: v})
}

// Move transfers ownership to a new Unique and leaves u empty.
func (u *Unique[T]) Move() *Unique[T] {
	out := &Unique[T]{}
	if u.IsNull() {
		return out
	}
	out.take(u)
	return out
}

// MoveFrom disposes the current object and takes over other's, leaving
// other empty. Moving an owner into itself does nothing.
func (u *Unique[T]) MoveFrom(other *Unique[T]) {
	if u == other {
		return
	}
	u.destroy()
	if other.IsNull() {
		return
	}
	u.take(other)
}

// Release gives up ownership without disposing the object. The caller
// becomes responsible for its lifetime. u is empty afterwards.
func (u *Unique[T]) Release() T {
	if u.IsNull() {
		var zero T
		return zero
	}
	v := u.ptr
	publish(u.bus, Event{Type: EventReleased, ID: u.id, TypeName: typeName[T](), Value: v})
	u.clear()
	return v
}

// Reset disposes the current object, leaving u empty.
func (u *Unique[T]) Reset() {
	u.destroy()
}

// ResetTo disposes the current object and takes ownership of v.
func (u *Unique[T]) ResetTo(v T, opts ...Option) {
	u.destroy()
	u.install(v, nil, buildOptions(opts))
}

// Get returns the owned object. It panics with ErrNullDereference when u
// is empty.
func (u *Unique[T]) Get() T {
	if u.IsNull() {
		nullDereference("Unique", typeName[T]())
	}
	return u.ptr
}

// TryGet returns the owned object and whether u holds one.
func (u *Unique[T]) TryGet() (T, bool) {
	if u.IsNull() {
		var zero T
		return zero, false
	}
	return u.ptr, true
}

// IsNull reports whether u holds no object.
func (u *Unique[T]) IsNull() bool {
	return u == nil || !u.set
}

func (u *Unique[T]) take(from *Unique[T]) {
	u.ptr, u.set = from.ptr, true
	u.deleter = from.deleter
	u.bus = from.bus
	u.id = from.id
	from.clear()
}

func (u *Unique[T]) destroy() {
	if u.IsNull() {
		return
	}
	v, deleter, bus, id := u.ptr, u.deleter, u.bus, u.id
	u.clear()
	if deleter != nil {
		deleter(v)
	} else {
		dropValue(v)
	}
	publish(bus, Event{Type: EventDeallocated, ID: id, TypeName: typeName[T](), Value: v})
}

func (u *Unique[T]) clear() {
	var zero T
	u.ptr, u.set = zero, false
	u.deleter = nil
	u.bus = nil
	u.id = 0
}

// ConvertUnique moves ownership from u into a Unique viewing the object
// as U, typically an interface the object implements. The object keeps
// its deletion behaviour. If the object cannot be viewed as U, the result
// is empty and u keeps its object.
func ConvertUnique[U, T any](u *Unique[T]) *Unique[U] {
	out := &Unique[U]{}
	if u.IsNull() {
		return out
	}
	cv, ok := any(u.ptr).(U)
	if !ok {
		return out
	}
	if del := u.deleter; del != nil {
		orig := u.ptr
		out.deleter = func(U) { del(orig) }
	}
	out.ptr, out.set = cv, true
	out.bus = u.bus
	out.id = u.id
	u.clear()
	return out
}
