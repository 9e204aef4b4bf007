package raycast

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/shapes"
)

// DefaultLength is the probing distance used when none is given.
const DefaultLength = 10000.0

var ErrUnsupportedShape = errors.New("ray collision with shape is not supported")

// Ray is a directed half-line from Origin, bounded by Length.
type Ray struct {
	Angle     float64
	Origin    geometry.Vector2
	Length    float64
	Direction geometry.Vector2
}

// New builds a ray. A non-positive length falls back to DefaultLength.
func New(angle float64, origin geometry.Vector2, length float64) Ray {
	if length <= 0 || math.IsNaN(length) {
		length = DefaultLength
	}
	return Ray{
		Angle:     angle,
		Origin:    origin,
		Length:    length,
		Direction: geometry.FromAngle(angle, 1),
	}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) geometry.Vector2 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ToSegment returns a trace-only segment covering the whole ray.
func (r Ray) ToSegment() *shapes.Segment {
	s, err := shapes.NewSegment(r.Origin, r.Direction, r.Length, shapes.NonCollidable())
	if err != nil {
		// Direction is a unit vector by construction.
		panic(err)
	}
	return s
}

// Collide returns the nearest forward hit distance in [Epsilon, Length].
// ok is false when nothing is hit or the shape cannot collide.
func (r Ray) Collide(shape shapes.Shape) (t float64, ok bool, err error) {
	if isNil(shape) {
		return 0, false, fmt.Errorf("%w: nil shape", ErrUnsupportedShape)
	}
	if !shape.CanCollide() {
		return 0, false, nil
	}

	switch sh := shape.(type) {
	case *shapes.HemiPlane:
		t, ok = r.CollidesLine(sh)
	case *shapes.Segment:
		t, ok = r.CollidesSegment(sh)
	case *shapes.Polygon:
		t, ok = r.CollidesPolygon(sh)
	case *shapes.Rectangle:
		t, ok = r.CollidesRectangle(sh)
	default:
		return 0, false, fmt.Errorf("%w: %s", ErrUnsupportedShape, shape.Kind())
	}
	return t, ok, nil
}

// isNil also catches typed nil pointers, which pass CanCollide untouched.
func isNil(shape shapes.Shape) bool {
	switch sh := shape.(type) {
	case nil:
		return true
	case *shapes.Point:
		return sh == nil
	case *shapes.Rectangle:
		return sh == nil
	case *shapes.Polygon:
		return sh == nil
	case *shapes.HemiPlane:
		return sh == nil
	case *shapes.Segment:
		return sh == nil
	default:
		return false
	}
}

// CollidesLine intersects the ray with the boundary line of a half-plane.
func (r Ray) CollidesLine(h *shapes.HemiPlane) (float64, bool) {
	return r.collidesBoundary(h.Boundary)
}

func (r Ray) collidesBoundary(b shapes.Boundary) (float64, bool) {
	determinant := r.Direction.Dot(b.Normal)
	if math.Abs(determinant) < geometry.Epsilon {
		return 0, false
	}
	t := b.P0.Sub(r.Origin).Dot(b.Normal) / determinant
	if t < geometry.Epsilon || t > r.Length {
		return 0, false
	}
	return t, true
}

// CollidesSegment intersects the ray with the segment's supporting line and
// keeps the hit only if it falls within the segment, with Epsilon slack.
func (r Ray) CollidesSegment(s *shapes.Segment) (float64, bool) {
	t, ok := r.collidesBoundary(s.Boundary)
	if !ok {
		return 0, false
	}
	proj := r.At(t).Sub(s.P0).Dot(s.Direction)
	if proj < -geometry.Epsilon || proj > s.Length+geometry.Epsilon {
		return 0, false
	}
	return t, true
}

// CollidesPolygon returns the nearest hit over every edge.
func (r Ray) CollidesPolygon(p shapes.EdgeSet) (float64, bool) {
	best, found := 0.0, false
	for _, edge := range p.Edges() {
		t, ok := r.CollidesSegment(edge)
		if ok && (!found || t < best) {
			best, found = t, true
		}
	}
	return best, found
}

// CollidesRectangle solves each of the four vertex pairs directly, using the
// unnormalized edge normal.
func (r Ray) CollidesRectangle(rect *shapes.Rectangle) (float64, bool) {
	vertices := rect.Vertices()
	best, found := 0.0, false
	for i, p1 := range vertices {
		p2 := vertices[(i+1)%len(vertices)]
		edgeDir := p2.Sub(p1)
		edgeNormal := edgeDir.Perp()

		denom := r.Direction.Dot(edgeNormal)
		if math.Abs(denom) < geometry.Epsilon {
			continue
		}
		t := p1.Sub(r.Origin).Dot(edgeNormal) / denom
		if t < geometry.Epsilon || t > r.Length {
			continue
		}

		proj := r.At(t).Sub(p1).Dot(edgeDir.Normalized())
		if proj >= -geometry.Epsilon && proj <= edgeDir.Length()+geometry.Epsilon {
			if !found || t < best {
				best, found = t, true
			}
		}
	}
	return best, found
}
