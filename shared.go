// Package lazyptr provides explicit ownership primitives for values whose
// cleanup must happen at a well defined moment: Shared (reference
// counted), Weak (non-owning observer of a Shared), Unique (exclusive)
// and Slot (one instance per type inside a Registry).
//
// Owners are handles with pointer identity. Copying an owner is always an
// explicit call (Clone, Assign); copying the struct value is rejected by
// go vet.
package lazyptr

// Shared is a reference counted owner. Every live Shared referencing the
// same object counts towards its block; the object is disposed when the
// last one is reset. The zero value is an empty owner.
type Shared[T any] struct {
	noCopy noCopy
	ptr    T
	ctrl   *block
}

// NewShared takes ownership of v with a fresh count of one. Values that
// implement Dropper are dropped when the last owner lets go. A nil v
// yields an empty owner.
func NewShared[T any](v T, opts ...Option) *Shared[T] {
	return NewSharedFunc(v, nil, opts...)
}

// NewSharedFunc is like NewShared but disposes v with deleter instead of
// Dropper.
func NewSharedFunc[T any](v T, deleter func(T), opts ...Option) *Shared[T] {
	s := &Shared[T]{}
	s.install(v, deleter, buildOptions(opts))
	return s
}

func (s *Shared[T]) install(v T, deleter func(T), o options) {
	if isNil(any(v)) {
		return
	}
	dispose := func() {
		if deleter != nil {
			deleter(v)
			return
		}
		dropValue(v)
	}
	s.ptr = v
	s.ctrl = newBlock(v, dispose, typeName[T](), o.bus)
}

// Clone returns a new owner sharing the same object and count.
// Cloning an empty owner yields an empty owner.
func (s *Shared[T]) Clone() *Shared[T] {
	out := &Shared[T]{}
	if s.IsNull() {
		return out
	}
	s.ctrl.acquire()
	out.ptr, out.ctrl = s.ptr, s.ctrl
	return out
}

// Move transfers the object to a new owner and leaves s empty.
func (s *Shared[T]) Move() *Shared[T] {
	out := &Shared[T]{}
	if s.IsNull() {
		return out
	}
	out.ptr, out.ctrl = s.ptr, s.ctrl
	s.clear()
	return out
}

// Assign releases the current object and then shares other's.
// Assigning an owner to itself does nothing.
func (s *Shared[T]) Assign(other *Shared[T]) {
	if s == other {
		return
	}
	s.release()
	if other.IsNull() {
		return
	}
	other.ctrl.acquire()
	s.ptr, s.ctrl = other.ptr, other.ctrl
}

// MoveFrom releases the current object and takes over other's, leaving
// other empty. Moving an owner into itself does nothing.
func (s *Shared[T]) MoveFrom(other *Shared[T]) {
	if s == other {
		return
	}
	s.release()
	if other.IsNull() {
		return
	}
	s.ptr, s.ctrl = other.ptr, other.ctrl
	other.clear()
}

// Reset releases the current object, disposing it if s was the last owner.
// s is empty afterwards.
func (s *Shared[T]) Reset() {
	s.release()
}

// ResetTo releases the current object and takes ownership of v with a
// fresh count.
func (s *Shared[T]) ResetTo(v T, opts ...Option) {
	s.release()
	s.install(v, nil, buildOptions(opts))
}

// Get returns the managed object. It panics with ErrNullDereference when
// s is empty.
func (s *Shared[T]) Get() T {
	if s.IsNull() {
		nullDereference("Shared", typeName[T]())
	}
	return s.ptr
}

// TryGet returns the managed object and whether s holds one.
func (s *Shared[T]) TryGet() (T, bool) {
	if s.IsNull() {
		var zero T
		return zero, false
	}
	return s.ptr, true
}

// IsNull reports whether s holds no object.
func (s *Shared[T]) IsNull() bool {
	return s == nil || s.ctrl == nil
}

// Valid reports whether s holds an object.
func (s *Shared[T]) Valid() bool {
	return !s.IsNull()
}

// Swap exchanges the objects of s and other without touching counts.
func (s *Shared[T]) Swap(other *Shared[T]) {
	s.ptr, other.ptr = other.ptr, s.ptr
	s.ctrl, other.ctrl = other.ctrl, s.ctrl
}

// UseCount returns the number of strong owners, or 0 when empty.
func (s *Shared[T]) UseCount() int {
	if s.IsNull() {
		return 0
	}
	return s.ctrl.useCount()
}

// WeakCount returns the number of weak observers, or 0 when empty.
func (s *Shared[T]) WeakCount() int {
	if s.IsNull() {
		return 0
	}
	return s.ctrl.weakCount()
}

// Weak returns an observer of the object held by s.
func (s *Shared[T]) Weak() *Weak[T] {
	return NewWeak(s)
}

func (s *Shared[T]) release() {
	if s == nil || s.ctrl == nil {
		return
	}
	c := s.ctrl
	s.clear()
	c.release()
}

func (s *Shared[T]) clear() {
	var zero T
	s.ptr = zero
	s.ctrl = nil
}

// As returns an owner of s's object viewed as U, sharing s's count.
// It works in both directions: narrowing an interface to a concrete type
// and widening a concrete type to an interface it implements. When the
// dynamic type does not match, As returns an empty owner and leaves the
// count untouched.
func As[U, T any](s *Shared[T]) *Shared[U] {
	out := &Shared[U]{}
	if s.IsNull() {
		return out
	}
	u, ok := any(s.ptr).(U)
	if !ok {
		return out
	}
	s.ctrl.acquire()
	out.ptr, out.ctrl = u, s.ctrl
	return out
}

// SameObject reports whether a and b are non-empty owners of the same
// object, regardless of the static type they view it as.
func SameObject[T, U any](a *Shared[T], b *Shared[U]) bool {
	if a.IsNull() || b.IsNull() {
		return false
	}
	return a.ctrl == b.ctrl
}
