package lazyptr

import (
	"reflect"
	"sync/atomic"
)

// Dropper is optionally implemented by managed objects that need cleanup
// when their last owner lets go.
type Dropper interface {
	Drop()
}

// noCopy makes go vet's copylocks check reject value copies of owners.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

var nextID atomic.Uint64

// newID returns a process-unique identifier for diagnostics.
func newID() uint64 {
	return nextID.Add(1)
}

// isNil reports whether v is a nil interface or a nil pointer-like value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// typeName returns the printable name of T.
func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// dropValue is the default disposal hook: it calls Drop on values that
// implement Dropper.
func dropValue(v any) {
	if d, ok := v.(Dropper); ok {
		d.Drop()
	}
}
