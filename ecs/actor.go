package ecs

import "github.com/edwinsyarief/lazyptr"

// Actor is an entity built with a Shape and a Transform, in that order.
// Every update copies the transform onto the shape.
type Actor struct {
	*Entity
	name string
}

// NewActor creates an actor holding an empty shape and an identity
// transform.
func NewActor(id uint32, name string) *Actor {
	a := &Actor{Entity: NewEntity(id), name: name}
	shape := lazyptr.NewShared(NewShape(ShapeEmpty))
	AddComponent(a.Entity, shape)
	shape.Reset()
	transform := lazyptr.NewShared(NewTransform())
	AddComponent(a.Entity, transform)
	transform.Reset()
	return a
}

// Name returns the actor name.
func (a *Actor) Name() string { return a.name }

// Update advances the components, then syncs the shape with the
// transform.
func (a *Actor) Update(dt float32) {
	if !a.IsActive() {
		return
	}
	a.Entity.Update(dt)

	transform := GetComponent[*Transform](a.Entity)
	defer transform.Reset()
	shape := GetComponent[*Shape](a.Entity)
	defer shape.Reset()
	if transform.IsNull() || shape.IsNull() {
		return
	}
	t, s := transform.Get(), shape.Get()
	s.SetPosition(t.Position())
	s.SetRotation(t.Rotation().X)
	s.SetScale(t.Scale())
}

// Render draws the actor's shapes through w.
func (a *Actor) Render(w *lazyptr.Shared[Window]) {
	if !a.IsActive() {
		return
	}
	a.Each(func(c *lazyptr.Shared[Component]) bool {
		shape := lazyptr.As[*Shape](c)
		defer shape.Reset()
		if !shape.IsNull() {
			shape.Get().Render(w)
		}
		return true
	})
}
