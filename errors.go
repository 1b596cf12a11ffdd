package lazyptr

import (
	"errors"
	"fmt"
)

// ErrNullDereference is the panic value raised when an empty owner or
// slot is dereferenced. It signals caller misuse and is never returned.
var ErrNullDereference = errors.New("lazyptr: null dereference")

// nullDereference panics with ErrNullDereference annotated with the
// static type being accessed.
func nullDereference(kind string, typ string) {
	panic(fmt.Errorf("%w: %s[%s]", ErrNullDereference, kind, typ))
}
