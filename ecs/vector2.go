package ecs

import "math"

// Vector2 is a 2D vector used for positions, rotations and scales.
type Vector2 struct {
	X, Y float32
}

// Vec2 is shorthand for Vector2{x, y}.
func Vec2(x, y float32) Vector2 { return Vector2{X: x, Y: y} }

// Zero returns the zero vector.
func Zero() Vector2 { return Vector2{} }

// One returns the vector {1, 1}.
func One() Vector2 { return Vector2{1, 1} }

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Scale(s float32) Vector2 { return Vector2{v.X * s, v.Y * s} }
func (v Vector2) Div(d float32) Vector2 { return Vector2{v.X / d, v.Y / d} }
func (v Vector2) Mul(o Vector2) Vector2 { return Vector2{v.X * o.X, v.Y * o.Y} }
func (v Vector2) Dot(o Vector2) float32 { return v.X*o.X + v.Y*o.Y }
func (v Vector2) Cross(o Vector2) float32 { return v.X*o.Y - v.Y*o.X }
func (v Vector2) LengthSquared() float32 { return v.X*v.X + v.Y*v.Y }
func (v Vector2) Length() float32 { return float32(math.Sqrt(float64(v.LengthSquared()))) }
func (v Vector2) Distance(o Vector2) float32 { return v.Sub(o).Length() }

// Normalized returns the unit vector in v's direction, or zero for the
// zero vector.
func (v Vector2) Normalized() Vector2 {
	l := v.Length()
	if l == 0 {
		return Vector2{}
	}
	return v.Div(l)
}

// Lerp interpolates between a and b; t is clamped to [0, 1].
func Lerp(a, b Vector2, t float32) Vector2 {
	t = min(max(t, 0), 1)
	return a.Add(b.Sub(a).Scale(t))
}
