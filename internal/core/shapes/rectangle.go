package shapes

import (
	"math"
	"slices"

	"github.com/zeusync/roomscan/internal/core/geometry"
)

// Rectangle starts axis-aligned at (X, Y) with size W x H. Its vertices run
// counter-clockwise from the bottom-left corner.
//
// Rotate resyncs X and Y to vertex 0 but leaves W and H untouched, so after a
// non-zero rotation Contains stops using the axis-aligned check and tests the
// rotated vertex loop instead.
type Rectangle struct {
	base
	X, Y, W, H float64

	vertices []geometry.Vector2
	edges    []*Segment
	center   geometry.Vector2
	rotation float64
}

var (
	_ Rotatable = (*Rectangle)(nil)
	_ EdgeSet   = (*Rectangle)(nil)
)

func NewRectangle(x, y, w, h float64) *Rectangle {
	r := &Rectangle{
		base:   newBase(),
		X:      x,
		Y:      y,
		W:      w,
		H:      h,
		center: geometry.Vec(x+w/2, y+h/2),
		vertices: []geometry.Vector2{
			geometry.Vec(x, y),
			geometry.Vec(x+w, y),
			geometry.Vec(x+w, y+h),
			geometry.Vec(x, y+h),
		},
	}
	r.edges = buildEdges(r.vertices, nil)
	return r
}

func (r *Rectangle) Kind() Kind       { return KindRectangle }
func (r *Rectangle) CanCollide() bool { return true }
func (r *Rectangle) shape()           {}

func (r *Rectangle) Vertices() []geometry.Vector2 { return slices.Clone(r.vertices) }
func (r *Rectangle) Edges() []*Segment            { return r.edges }
func (r *Rectangle) Center() geometry.Vector2     { return r.center }

// Rotation is the accumulated rotation angle in radians.
func (r *Rectangle) Rotation() float64 { return r.rotation }

// Rotated reports whether the accumulated rotation is not a whole turn.
func (r *Rectangle) Rotated() bool {
	return math.Abs(math.Remainder(r.rotation, 2*math.Pi)) > geometry.Epsilon
}

// Rotate turns the rectangle about its center.
func (r *Rectangle) Rotate(angle float64) {
	rotateAbout(r.vertices, r.center, angle)
	r.edges = buildEdges(r.vertices, r.edges)
	r.X, r.Y = r.vertices[0].X, r.vertices[0].Y
	r.rotation += angle
}

// Contains reports whether (x, y) lies strictly inside the rectangle.
func (r *Rectangle) Contains(x, y float64) bool {
	if r.Rotated() {
		return crossingContains(r.vertices, geometry.Vec(x, y))
	}
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}
