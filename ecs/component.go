// Package ecs provides entities that own their components through
// lazyptr.Shared handles and look them up by dynamic type.
package ecs

import "github.com/edwinsyarief/lazyptr"

// ComponentType tags the broad kind of a component.
type ComponentType uint8

const (
	ComponentNone ComponentType = iota
	ComponentTransform
	ComponentSprite
	ComponentShape
	ComponentPhysics
	ComponentAudio
)

// String returns the tag name.
func (t ComponentType) String() string {
	switch t {
	case ComponentTransform:
		return "transform"
	case ComponentSprite:
		return "sprite"
	case ComponentShape:
		return "shape"
	case ComponentPhysics:
		return "physics"
	case ComponentAudio:
		return "audio"
	default:
		return "none"
	}
}

// Component is the base of every piece of state an Entity owns.
type Component interface {
	// Type returns the component's tag.
	Type() ComponentType
	Start()
	Update(dt float32)
	// Render draws the component. The window handle is borrowed for the
	// duration of the call; components must Clone it to keep it.
	Render(w *lazyptr.Shared[Window])
	Destroy()
}

// Window is the rendering collaborator components draw into.
type Window interface {
	DrawShape(s *Shape)
}
