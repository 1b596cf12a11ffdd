package ecs

import "github.com/edwinsyarief/lazyptr"

// Transform holds an entity's position, rotation and scale.
type Transform struct {
	position Vector2
	rotation Vector2
	scale    Vector2
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() *Transform {
	return &Transform{scale: One()}
}

// Type reports ComponentTransform.
func (t *Transform) Type() ComponentType { return ComponentTransform }
func (t *Transform) Start() {}
func (t *Transform) Update(float32) {}
func (t *Transform) Render(*lazyptr.Shared[Window]) {}
func (t *Transform) Destroy() {}

// Position returns the entity's position in world units.
func (t *Transform) Position() Vector2 { return t.position }

// Rotation returns the rotation. Actor copies its X component onto the
// shape as an angle in radians.
func (t *Transform) Rotation() Vector2 { return t.rotation }

// Scale returns the per-axis scale factor, One() by default.
func (t *Transform) Scale() Vector2 { return t.scale }

// SetPosition moves the entity to p.
func (t *Transform) SetPosition(p Vector2) { t.position = p }

// SetRotation sets the rotation.
func (t *Transform) SetRotation(r Vector2) { t.rotation = r }

// SetScale sets the per-axis scale factor.
func (t *Transform) SetScale(s Vector2) { t.scale = s }

// Seek moves the position towards target at speed units per second.
// Within arriveRange of the target the position does not move.
func (t *Transform) Seek(target Vector2, speed, dt, arriveRange float32) {
	dir := target.Sub(t.position)
	dist := dir.Length()
	if dist <= arriveRange {
		return
	}
	step := speed * dt
	if step >= dist {
		t.position = target
		return
	}
	t.position = t.position.Add(dir.Div(dist).Scale(step))
}
