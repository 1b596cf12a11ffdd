package ecs

import (
	"image/color"

	"github.com/edwinsyarief/lazyptr"
)

// ShapeType is the geometry a Shape draws.
type ShapeType uint8

const (
	ShapeEmpty ShapeType = iota
	ShapeCircle
	ShapeRectangle
	ShapeTriangle
	ShapePolygon
)

// String returns the shape type name.
func (s ShapeType) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	case ShapeTriangle:
		return "triangle"
	case ShapePolygon:
		return "polygon"
	default:
		return "empty"
	}
}

// Shape is a drawable primitive component.
type Shape struct {
	fill     color.RGBA
	position Vector2
	scale    Vector2
	rotation float32
	kind     ShapeType
}

// NewShape returns a white shape of the given type with unit scale.
func NewShape(kind ShapeType) *Shape {
	return &Shape{
		kind:  kind,
		fill:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		scale: One(),
	}
}

// Type reports ComponentShape.
func (s *Shape) Type() ComponentType { return ComponentShape }
func (s *Shape) Start() {}
func (s *Shape) Update(float32) {}

// Destroy empties the geometry so the shape no longer draws.
func (s *Shape) Destroy() { s.kind = ShapeEmpty }

// Render draws a non-empty shape through w. An empty window handle draws
// nothing.
//
// Parameters:
//   - w: the window the shape is drawn to. Render never changes its
//     ownership.
func (s *Shape) Render(w *lazyptr.Shared[Window]) {
	win, ok := w.TryGet()
	if !ok || s.kind == ShapeEmpty {
		return
	}
	win.DrawShape(s)
}

// SetShapeType replaces the geometry.
func (s *Shape) SetShapeType(kind ShapeType) { s.kind = kind }

// ShapeType returns the geometry drawn by the shape.
func (s *Shape) ShapeType() ShapeType { return s.kind }

// Position returns the shape's centre in world units.
func (s *Shape) Position() Vector2 { return s.position }

// Rotation returns the shape's rotation in radians.
func (s *Shape) Rotation() float32 { return s.rotation }

// Scale returns the per-axis scale factor, One() by default.
func (s *Shape) Scale() Vector2 { return s.scale }

// FillColor returns the colour the shape is filled with.
func (s *Shape) FillColor() color.RGBA { return s.fill }

// SetPosition moves the shape's centre to p.
func (s *Shape) SetPosition(p Vector2) { s.position = p }

// SetRotation sets the rotation in radians.
func (s *Shape) SetRotation(angle float32) { s.rotation = angle }

// SetScale sets the per-axis scale factor.
func (s *Shape) SetScale(v Vector2) { s.scale = v }

// SetFillColor sets the fill colour.
func (s *Shape) SetFillColor(c color.RGBA) { s.fill = c }
