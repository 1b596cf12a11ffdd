package lazyptr

// Weak observes an object owned by Shared handles without keeping it
// alive. It can only be derived from a live Shared; there is no way to
// build a Weak from another Weak. The zero value is empty.
type Weak[T any] struct {
	noCopy noCopy
	ctrl   *block
}

// NewWeak returns an observer of s's object. An empty s yields an empty
// observer.
func NewWeak[T any](s *Shared[T]) *Weak[T] {
	w := &Weak[T]{}
	if s.IsNull() {
		return w
	}
	s.ctrl.acquireWeak()
	w.ctrl = s.ctrl
	return w
}

// Lock returns a new strong owner if the object is still alive, or an
// empty owner once the last strong owner has been reset.
func (w *Weak[T]) Lock() *Shared[T] {
	out := &Shared[T]{}
	if w == nil || w.ctrl == nil || !w.ctrl.tryAcquire() {
		return out
	}
	v, ok := w.ctrl.value.(T)
	if !ok {
		w.ctrl.release()
		return out
	}
	out.ptr, out.ctrl = v, w.ctrl
	return out
}

// Expired reports whether the observed object is gone, or w is empty.
func (w *Weak[T]) Expired() bool {
	return w == nil || w.ctrl == nil || w.ctrl.useCount() == 0
}

// UseCount returns the number of strong owners of the observed object.
func (w *Weak[T]) UseCount() int {
	if w == nil || w.ctrl == nil {
		return 0
	}
	return w.ctrl.useCount()
}

// Reset detaches w from the observed block. It never disposes the object.
func (w *Weak[T]) Reset() {
	if w == nil || w.ctrl == nil {
		return
	}
	c := w.ctrl
	w.ctrl = nil
	c.releaseWeak()
}
