package lazyptr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/edwinsyarief/lazyptr"
)

// --- Test Objects ---
type Node interface{ Name() string }

type Leaf struct {
	drops *int
	name  string
}

func (l *Leaf) Name() string { return l.name }
func (l *Leaf) Drop() { *l.drops++ }

type Branch struct {
	drops *int
}

func (b *Branch) Name() string { return "branch" }
func (b *Branch) Drop() { *b.drops++ }

type Unrelated struct{}

func newLeaf(drops *int) *Leaf { return &Leaf{drops: drops, name: "leaf"} }

func expectNullPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, lazyptr.ErrNullDereference) {
			t.Fatalf("expected ErrNullDereference, got %v", r)
		}
	}()
	fn()
}

// go test -run ^TestSharedLifecycle$ . -count 1
func TestSharedLifecycle(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		drops := 0
		s := lazyptr.NewShared(newLeaf(&drops))
		if s.IsNull() || !s.Valid() {
			t.Fatal("expected non-empty owner")
		}
		if got := s.UseCount(); got != 1 {
			t.Errorf("expected use count 1, got %d", got)
		}
		s.Reset()
		if drops != 1 {
			t.Errorf("expected 1 drop, got %d", drops)
		}
		if !s.IsNull() {
			t.Error("expected empty owner after Reset")
		}
	})

	t.Run("Nil value is empty", func(t *testing.T) {
		var l *Leaf
		s := lazyptr.NewShared(l)
		if !s.IsNull() {
			t.Error("expected empty owner")
		}
		if s.UseCount() != 0 {
			t.Errorf("expected use count 0, got %d", s.UseCount())
		}
	})

	t.Run("Clone shares the count", func(t *testing.T) {
		drops := 0
		a := lazyptr.NewShared(newLeaf(&drops))
		b := a.Clone()
		c := b.Clone()
		if a.UseCount() != 3 || c.UseCount() != 3 {
			t.Fatalf("expected use count 3, got %d", a.UseCount())
		}
		if a.Get() != c.Get() {
			t.Error("expected clones to share the object")
		}
		a.Reset()
		b.Reset()
		if drops != 0 {
			t.Fatalf("object dropped while still owned")
		}
		if c.UseCount() != 1 {
			t.Errorf("expected use count 1, got %d", c.UseCount())
		}
		c.Reset()
		if drops != 1 {
			t.Errorf("expected 1 drop, got %d", drops)
		}
		c.Reset()
		if drops != 1 {
			t.Errorf("second reset must not drop again, got %d", drops)
		}
	})

	t.Run("Clone of empty", func(t *testing.T) {
		var s lazyptr.Shared[*Leaf]
		if !s.Clone().IsNull() {
			t.Error("expected empty clone")
		}
	})

	t.Run("Move", func(t *testing.T) {
		drops := 0
		a := lazyptr.NewShared(newLeaf(&drops))
		leaf := a.Get()
		b := a.Move()
		if !a.IsNull() {
			t.Error("expected moved-from owner to be empty")
		}
		if b.Get() != leaf {
			t.Error("expected moved-to owner to hold the object")
		}
		if b.UseCount() != 1 {
			t.Errorf("move must not change the count, got %d", b.UseCount())
		}
		b.Reset()
		if drops != 1 {
			t.Errorf("expected 1 drop, got %d", drops)
		}
	})

	t.Run("ResetTo", func(t *testing.T) {
		drops1, drops2 := 0, 0
		s := lazyptr.NewShared(newLeaf(&drops1))
		keep := s.Clone()
		s.ResetTo(newLeaf(&drops2))
		if drops1 != 0 {
			t.Error("shared object must survive while another owner holds it")
		}
		if s.UseCount() != 1 || keep.UseCount() != 1 {
			t.Errorf("expected independent counts, got %d and %d", s.UseCount(), keep.UseCount())
		}
		keep.Reset()
		s.Reset()
		if drops1 != 1 || drops2 != 1 {
			t.Errorf("expected one drop each, got %d and %d", drops1, drops2)
		}
	})

	t.Run("Custom deleter", func(t *testing.T) {
		var deleted []int
		v := 42
		s := lazyptr.NewSharedFunc(&v, func(p *int) { deleted = append(deleted, *p) })
		s.Clone().Reset()
		if len(deleted) != 0 {
			t.Fatal("deleter ran early")
		}
		s.Reset()
		if len(deleted) != 1 || deleted[0] != 42 {
			t.Errorf("expected deleter called once with 42, got %v", deleted)
		}
	})
}

// go test -run ^TestSharedAssign$ . -count 1
func TestSharedAssign(t *testing.T) {
	t.Run("Assign releases the old object first", func(t *testing.T) {
		dropsA, dropsB := 0, 0
		a := lazyptr.NewShared(newLeaf(&dropsA))
		b := lazyptr.NewShared(newLeaf(&dropsB))
		a.Assign(b)
		if dropsA != 1 {
			t.Errorf("expected old object dropped, got %d", dropsA)
		}
		if a.UseCount() != 2 || !lazyptr.SameObject(a, b) {
			t.Errorf("expected a to share b, use count %d", a.UseCount())
		}
		a.Reset()
		b.Reset()
		if dropsB != 1 {
			t.Errorf("expected 1 drop, got %d", dropsB)
		}
	})

	t.Run("Self assign is a no-op", func(t *testing.T) {
		drops := 0
		a := lazyptr.NewShared(newLeaf(&drops))
		a.Assign(a)
		a.MoveFrom(a)
		if drops != 0 || a.UseCount() != 1 {
			t.Errorf("self assignment changed state: drops=%d count=%d", drops, a.UseCount())
		}
	})

	t.Run("Assign from an owner of the same object", func(t *testing.T) {
		drops := 0
		a := lazyptr.NewShared(newLeaf(&drops))
		b := a.Clone()
		a.Assign(b)
		if drops != 0 || a.UseCount() != 2 {
			t.Errorf("expected count 2 and no drop, got count=%d drops=%d", a.UseCount(), drops)
		}
	})

	t.Run("Assign empty", func(t *testing.T) {
		drops := 0
		a := lazyptr.NewShared(newLeaf(&drops))
		a.Assign(&lazyptr.Shared[*Leaf]{})
		if !a.IsNull() || drops != 1 {
			t.Errorf("expected empty owner and 1 drop, got drops=%d", drops)
		}
	})

	t.Run("MoveFrom", func(t *testing.T) {
		dropsA, dropsB := 0, 0
		a := lazyptr.NewShared(newLeaf(&dropsA))
		b := lazyptr.NewShared(newLeaf(&dropsB))
		a.MoveFrom(b)
		if dropsA != 1 {
			t.Errorf("expected old object dropped, got %d", dropsA)
		}
		if !b.IsNull() {
			t.Error("expected source to be empty")
		}
		if a.UseCount() != 1 {
			t.Errorf("expected use count 1, got %d", a.UseCount())
		}
	})

	t.Run("Swap", func(t *testing.T) {
		dropsA, dropsB := 0, 0
		la, lb := newLeaf(&dropsA), newLeaf(&dropsB)
		a := lazyptr.NewShared(la)
		b := lazyptr.NewShared(lb)
		bb := b.Clone()
		a.Swap(b)
		if a.Get() != lb || b.Get() != la {
			t.Error("expected objects to be exchanged")
		}
		if a.UseCount() != 2 || b.UseCount() != 1 {
			t.Errorf("swap must not touch counts, got %d and %d", a.UseCount(), b.UseCount())
		}
		bb.Reset()
		if dropsA+dropsB != 0 {
			t.Error("unexpected drop")
		}
	})
}

// go test -run ^TestSharedCountInvariant$ . -count 1
func TestSharedCountInvariant(t *testing.T) {
	bus := &lazyptr.EventBus{}
	tracker := lazyptr.NewTracker(bus)
	drops := 0
	root := lazyptr.NewShared(newLeaf(&drops), lazyptr.WithEventBus(bus))
	owners := []*lazyptr.Shared[*Leaf]{root}

	// Deterministic mix of copies, moves, assignments and resets.
	for i := 0; i < 200; i++ {
		src := owners[i%len(owners)]
		switch i % 5 {
		case 0, 1:
			owners = append(owners, src.Clone())
		case 2:
			owners = append(owners, src.Move())
		case 3:
			dst := &lazyptr.Shared[*Leaf]{}
			dst.Assign(src)
			owners = append(owners, dst)
		case 4:
			if i%3 == 0 {
				src.Reset()
			}
		}

		live := 0
		var last *lazyptr.Shared[*Leaf]
		for _, o := range owners {
			if !o.IsNull() {
				live++
				last = o
			}
		}
		if last == nil {
			if drops != 1 {
				t.Fatalf("step %d: expected object dropped once, got %d", i, drops)
			}
			break
		}
		if got := last.UseCount(); got != live {
			t.Fatalf("step %d: use count %d, live owners %d", i, got, live)
		}
		if drops != 0 {
			t.Fatalf("step %d: object dropped while %d owners remain", i, live)
		}
	}

	for _, o := range owners {
		o.Reset()
	}
	if drops != 1 {
		t.Errorf("expected exactly one drop, got %d", drops)
	}
	if tracker.Allocated() != 1 || tracker.Deallocated() != 1 || tracker.Live() != 0 {
		t.Errorf("tracker mismatch: allocated=%d deallocated=%d", tracker.Allocated(), tracker.Deallocated())
	}
	if tracker.BlocksFreed() != 1 {
		t.Errorf("expected block freed once, got %d", tracker.BlocksFreed())
	}
}

// go test -run ^TestSharedAs$ . -count 1
func TestSharedAs(t *testing.T) {
	t.Run("Downcast to the dynamic type", func(t *testing.T) {
		drops := 0
		leaf := newLeaf(&drops)
		s := lazyptr.NewShared(leaf)
		base := lazyptr.As[Node](s)
		s.Reset()
		if base.UseCount() != 1 {
			t.Fatalf("expected use count 1, got %d", base.UseCount())
		}
		derived := lazyptr.As[*Leaf](base)
		if derived.IsNull() {
			t.Fatal("expected successful downcast")
		}
		if base.UseCount() != 2 {
			t.Errorf("expected downcast to add exactly one, got %d", base.UseCount())
		}
		if derived.Get() != leaf || !lazyptr.SameObject(base, derived) {
			t.Error("expected downcast to share the original object")
		}
		base.Reset()
		if drops != 0 {
			t.Fatal("object dropped while downcast owner alive")
		}
		derived.Reset()
		if drops != 1 {
			t.Errorf("expected 1 drop, got %d", drops)
		}
	})

	t.Run("Mismatch leaves the count unchanged", func(t *testing.T) {
		drops := 0
		base := lazyptr.As[Node](lazyptr.NewShared(newLeaf(&drops)))
		before := base.UseCount()
		if got := lazyptr.As[*Branch](base); !got.IsNull() {
			t.Error("expected empty result for wrong variant")
		}
		if got := lazyptr.As[*Unrelated](base); !got.IsNull() {
			t.Error("expected empty result for unrelated type")
		}
		if base.UseCount() != before {
			t.Errorf("failed downcast changed count from %d to %d", before, base.UseCount())
		}
	})

	t.Run("Round trip keeps identity", func(t *testing.T) {
		drops := 0
		orig := lazyptr.NewShared(newLeaf(&drops))
		base := lazyptr.As[Node](orig)
		back := lazyptr.As[*Leaf](base)
		if back.Get() != orig.Get() {
			t.Error("expected the same underlying object")
		}
		if orig.UseCount() != 3 {
			t.Errorf("expected 3 owners, got %d", orig.UseCount())
		}
	})

	t.Run("Empty source", func(t *testing.T) {
		var s lazyptr.Shared[Node]
		if !lazyptr.As[*Leaf](&s).IsNull() {
			t.Error("expected empty result")
		}
	})
}

// go test -run ^TestSharedNullDereference$ . -count 1
func TestSharedNullDereference(t *testing.T) {
	var s lazyptr.Shared[*Leaf]
	expectNullPanic(t, func() { s.Get() })

	if _, ok := s.TryGet(); ok {
		t.Error("expected TryGet to report empty")
	}
	var nilOwner *lazyptr.Shared[*Leaf]
	if !nilOwner.IsNull() {
		t.Error("nil owner must report empty")
	}
}

func ExampleAs() {
	drops := 0
	s := lazyptr.NewShared(&Leaf{drops: &drops, name: "oak"})
	base := lazyptr.As[Node](s)
	s.Reset()
	leaf := lazyptr.As[*Leaf](base)
	fmt.Println(leaf.Get().Name(), base.UseCount())
	base.Reset()
	leaf.Reset()
	fmt.Println(drops)
	// Output:
	// oak 2
	// 1
}
