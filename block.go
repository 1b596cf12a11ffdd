package lazyptr

import "sync/atomic"

// block is the reference count block shared by every Shared and Weak
// handle of one managed object. It is allocated separately from the
// object so that weak handles can report expiry after disposal.
//
// The weak counter carries one extra unit held collectively by the
// strong owners; it is dropped right after the object is disposed, so
// weak reaching zero means the block itself is no longer referenced.
type block struct {
	value    any
	dispose  func()
	bus      *EventBus
	typeName string
	id       uint64
	strong   atomic.Int32
	weak     atomic.Int32
}

func newBlock(value any, dispose func(), typeName string, bus *EventBus) *block {
	b := &block{
		value:    value,
		dispose:  dispose,
		bus:      bus,
		typeName: typeName,
		id:       newID(),
	}
	b.strong.Store(1)
	b.weak.Store(1)
	publish(bus, Event{Type: EventAllocated, ID: b.id, TypeName: typeName, Value: value})
	return b
}

// acquire adds a strong reference. The caller must already hold one.
func (b *block) acquire() {
	b.strong.Add(1)
}

// tryAcquire adds a strong reference only while the object is alive.
func (b *block) tryAcquire() bool {
	for {
		n := b.strong.Load()
		if n <= 0 {
			return false
		}
		if b.strong.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release drops a strong reference, disposing the object on the last one.
func (b *block) release() {
	n := b.strong.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic("lazyptr: strong count below zero")
	}
	value, dispose := b.value, b.dispose
	b.value, b.dispose = nil, nil
	if dispose != nil {
		dispose()
	}
	publish(b.bus, Event{Type: EventDeallocated, ID: b.id, TypeName: b.typeName, Value: value})
	b.releaseWeak()
}

func (b *block) acquireWeak() {
	b.weak.Add(1)
}

func (b *block) releaseWeak() {
	n := b.weak.Add(-1)
	if n == 0 {
		publish(b.bus, Event{Type: EventBlockFreed, ID: b.id, TypeName: b.typeName})
	} else if n < 0 {
		panic("lazyptr: weak count below zero")
	}
}

func (b *block) useCount() int {
	return int(b.strong.Load())
}

// weakCount returns the number of live Weak handles.
func (b *block) weakCount() int {
	n := b.weak.Load()
	if b.strong.Load() > 0 {
		n--
	}
	return int(n)
}
