package geometry

import "math"

// Epsilon is the tolerance used by every numeric guard in the engine.
const Epsilon = 1e-9

// Vector2 is an immutable 2D vector. Every method returns a new value.
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zero is the null vector.
var Zero = Vector2{}

// Vec is a shorthand constructor.
func Vec(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

// FromAngle returns the vector of the given magnitude pointing at angle (radians).
func FromAngle(angle, magnitude float64) Vector2 {
	return Vector2{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// Add returns v + other.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies both components by k.
func (v Vector2) Scale(k float64) Vector2 {
	return Vector2{X: v.X * k, Y: v.Y * k}
}

// Div divides both components by k. Callers guard k against zero.
func (v Vector2) Div(k float64) Vector2 {
	return Vector2{X: v.X / k, Y: v.Y / k}
}

// Dot returns the dot product.
func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vector2) Cross(other Vector2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the Euclidean norm.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns a unit vector with the same direction, or the zero
// vector when the length is below Epsilon.
func (v Vector2) Normalized() Vector2 {
	l := v.Length()
	if l < Epsilon {
		return Zero
	}
	return v.Div(l)
}

// Rotate applies the rotation matrix [[cos, -sin], [sin, cos]].
func (v Vector2) Rotate(angle float64) Vector2 {
	sin, cos := math.Sincos(angle)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perp returns v rotated by +pi/2. Unlike Rotate(math.Pi/2) it is exact.
func (v Vector2) Perp() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

// Angle returns the polar angle in (-pi, pi].
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Distance returns |v - other|.
func (v Vector2) Distance(other Vector2) float64 {
	return v.Sub(other).Length()
}

// ApproxEqual reports whether both components differ by at most tol.
func (v Vector2) ApproxEqual(other Vector2, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol && math.Abs(v.Y-other.Y) <= tol
}

// IsZero reports whether the vector is shorter than Epsilon.
func (v Vector2) IsZero() bool {
	return v.Length() < Epsilon
}

// Mean returns the arithmetic mean of points, or Zero for an empty slice.
func Mean(points []Vector2) Vector2 {
	if len(points) == 0 {
		return Zero
	}
	var sum Vector2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Div(float64(len(points)))
}
