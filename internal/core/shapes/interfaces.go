package shapes

import (
	"sync/atomic"

	"github.com/zeusync/roomscan/internal/core/geometry"
)

// Shape is the closed set of scene primitives: *Point, *Rectangle, *Polygon,
// *HemiPlane and *Segment. The unexported marker keeps the set sealed so
// consumers can switch over it exhaustively.
type Shape interface {
	ID() ID
	Kind() Kind
	CanCollide() bool

	shape()
}

// Rotatable is implemented by shapes that support in-place rotation.
type Rotatable interface {
	Shape
	Rotate(angle float64)
}

// EdgeSet is implemented by shapes whose boundary is a closed loop of segments.
type EdgeSet interface {
	Shape
	Vertices() []geometry.Vector2
	Edges() []*Segment
}

// ID is a process-unique shape identifier. Ids are never reused.
type ID uint64

// Kind tags the shape variant.
type Kind uint8

const (
	KindPoint Kind = iota + 1
	KindRectangle
	KindPolygon
	KindHemiPlane
	KindSegment
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindRectangle:
		return "rectangle"
	case KindPolygon:
		return "polygon"
	case KindHemiPlane:
		return "hemiplane"
	case KindSegment:
		return "segment"
	default:
		return "unknown"
	}
}

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

type base struct {
	id ID
}

func newBase() base { return base{id: nextID()} }

func (b base) ID() ID { return b.id }
