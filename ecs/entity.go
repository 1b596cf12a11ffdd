package ecs

import (
	"slices"

	"github.com/edwinsyarief/lazyptr"
)

// Entity owns an ordered list of components. Insertion order decides
// which component wins a typed lookup when several could match.
type Entity struct {
	components []*lazyptr.Shared[Component]
	id         uint32
	active     bool
}

// NewEntity creates an active entity with no components.
func NewEntity(id uint32) *Entity {
	return &Entity{id: id, active: true}
}

// ID returns the entity identifier.
func (e *Entity) ID() uint32 { return e.id }

// IsActive reports whether the entity takes part in Update and Render.
func (e *Entity) IsActive() bool { return e.active }

// SetActive enables or disables the entity.
func (e *Entity) SetActive(active bool) { e.active = active }

// Len returns the number of components.
func (e *Entity) Len() int { return len(e.components) }

// AddComponent appends c to e, stored as a Component owner sharing c's
// count. Empty owners are rejected.
func AddComponent[C Component](e *Entity, c *lazyptr.Shared[C]) bool {
	base := lazyptr.As[Component](c)
	if base.IsNull() {
		return false
	}
	e.components = append(e.components, base)
	return true
}

// GetComponent returns a new owner of the first component that is a U,
// scanning in insertion order. The result is empty when none matches.
func GetComponent[U any](e *Entity) *lazyptr.Shared[U] {
	for _, c := range e.components {
		if u := lazyptr.As[U](c); !u.IsNull() {
			return u
		}
	}
	return &lazyptr.Shared[U]{}
}

// HasComponent reports whether e holds a component that is a U.
func HasComponent[U any](e *Entity) bool {
	for _, c := range e.components {
		if _, ok := c.Get().(U); ok {
			return true
		}
	}
	return false
}

// RemoveComponent releases the first component that is a U and reports
// whether one was found.
func RemoveComponent[U any](e *Entity) bool {
	for i, c := range e.components {
		if _, ok := c.Get().(U); !ok {
			continue
		}
		c.Reset()
		e.components = slices.Delete(e.components, i, i+1)
		return true
	}
	return false
}

// Each calls fn for every component in insertion order until fn returns
// false. fn receives its own owner of the component, released once fn
// returns; fn may Clone or Move it to keep the component. The entity's
// ownership is not affected by anything fn does with the handle.
func (e *Entity) Each(fn func(c *lazyptr.Shared[Component]) bool) {
	for _, c := range e.components {
		h := c.Clone()
		if h.IsNull() {
			continue
		}
		more := fn(h)
		h.Reset()
		if !more {
			return
		}
	}
}

// Start starts every component.
func (e *Entity) Start() {
	for _, c := range e.components {
		c.Get().Start()
	}
}

// Update advances every component of an active entity.
func (e *Entity) Update(dt float32) {
	if !e.active {
		return
	}
	for _, c := range e.components {
		c.Get().Update(dt)
	}
}

// Render draws every component of an active entity.
func (e *Entity) Render(w *lazyptr.Shared[Window]) {
	if !e.active {
		return
	}
	for _, c := range e.components {
		c.Get().Render(w)
	}
}

// Destroy destroys every component and releases the entity's ownership
// of them. Components still referenced elsewhere stay alive.
func (e *Entity) Destroy() {
	for _, c := range e.components {
		c.Get().Destroy()
		c.Reset()
	}
	e.components = e.components[:0]
	e.active = false
}
