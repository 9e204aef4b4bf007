package shapes

import (
	"fmt"
	"math"

	"github.com/zeusync/roomscan/internal/core/geometry"
)

// Boundary is the oriented line shared by HemiPlane and Segment.
// Normal is always Direction rotated by +pi/2.
type Boundary struct {
	P0        geometry.Vector2
	Direction geometry.Vector2
	Normal    geometry.Vector2
}

func newBoundary(p0, direction geometry.Vector2) Boundary {
	return Boundary{
		P0:        p0,
		Direction: direction,
		Normal:    direction.Perp(),
	}
}

func (b *Boundary) rotate(angle float64) {
	b.Direction = b.Direction.Rotate(angle)
	b.Normal = b.Direction.Perp()
}

// Contains reports whether p lies on the non-normal side of the line
// (boundary included).
func (b Boundary) Contains(p geometry.Vector2) bool {
	return b.Normal.Dot(p.Sub(b.P0)) <= 0
}

// HemiPlane is the half-plane {p : Normal·(p-P0) <= 0}.
type HemiPlane struct {
	base
	Boundary
}

var _ Rotatable = (*HemiPlane)(nil)

// NewHemiPlane builds a half-plane through p0 running along direction.
// The direction is normalized; a zero direction is rejected.
func NewHemiPlane(p0, direction geometry.Vector2) (*HemiPlane, error) {
	dir := direction.Normalized()
	if dir.IsZero() {
		return nil, fmt.Errorf("%w: hemiplane direction is zero", ErrInvalidConstruction)
	}
	return &HemiPlane{base: newBase(), Boundary: newBoundary(p0, dir)}, nil
}

// HemiPlaneFromPoints builds the half-plane whose boundary runs from p1 towards p2.
func HemiPlaneFromPoints(p1, p2 geometry.Vector2) (*HemiPlane, error) {
	return NewHemiPlane(p1, p2.Sub(p1))
}

// HemiPlaneFromEquation builds the half-plane bounded by ax + by + c = 0.
func HemiPlaneFromEquation(a, b, c float64) (*HemiPlane, error) {
	switch {
	case b != 0:
		return NewHemiPlane(geometry.Vec(0, -c/b), geometry.Vec(1, -a/b))
	case a != 0:
		return NewHemiPlane(geometry.Vec(-c/a, 0), geometry.Vec(0, 1))
	default:
		return nil, fmt.Errorf("%w: hemiplane equation a=%v b=%v", ErrInvalidConstruction, a, b)
	}
}

func (h *HemiPlane) Kind() Kind       { return KindHemiPlane }
func (h *HemiPlane) CanCollide() bool { return true }
func (h *HemiPlane) shape()           {}

// Rotate turns the boundary about P0.
func (h *HemiPlane) Rotate(angle float64) {
	h.rotate(angle)
}

// Segment is a finite piece of a boundary line starting at P0.
type Segment struct {
	base
	Boundary
	Length float64

	noCollide bool
}

var _ Rotatable = (*Segment)(nil)

// SegmentOption customizes segment construction.
type SegmentOption func(*Segment)

// NonCollidable marks a segment as trace-only: rays never hit it.
func NonCollidable() SegmentOption {
	return func(s *Segment) { s.noCollide = true }
}

// NewSegment builds a segment of the given length from p0 along direction.
func NewSegment(p0, direction geometry.Vector2, length float64, opts ...SegmentOption) (*Segment, error) {
	dir := direction.Normalized()
	if dir.IsZero() {
		return nil, fmt.Errorf("%w: segment direction is zero", ErrInvalidConstruction)
	}
	if length < 0 || math.IsNaN(length) {
		return nil, fmt.Errorf("%w: segment length %v", ErrInvalidConstruction, length)
	}
	s := &Segment{base: newBase(), Boundary: newBoundary(p0, dir), Length: length}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SegmentBetween builds the segment from p1 to p2.
func SegmentBetween(p1, p2 geometry.Vector2, opts ...SegmentOption) (*Segment, error) {
	delta := p2.Sub(p1)
	return NewSegment(p1, delta, delta.Length(), opts...)
}

// edgeBetween is SegmentBetween without validation; a degenerate edge keeps a
// zero direction and can never be hit.
func edgeBetween(id ID, p1, p2 geometry.Vector2) *Segment {
	delta := p2.Sub(p1)
	if id == 0 {
		id = nextID()
	}
	return &Segment{
		base:     base{id: id},
		Boundary: newBoundary(p1, delta.Normalized()),
		Length:   delta.Length(),
	}
}

func (s *Segment) Kind() Kind       { return KindSegment }
func (s *Segment) CanCollide() bool { return !s.noCollide }
func (s *Segment) shape()           {}

// End returns the far endpoint.
func (s *Segment) End() geometry.Vector2 {
	return s.P0.Add(s.Direction.Scale(s.Length))
}

// Rotate turns the segment about P0.
func (s *Segment) Rotate(angle float64) {
	s.rotate(angle)
}
