package room

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/shapes"
)

const DefaultMaxAttempts = 100_000

var (
	ErrInvalidConstruction = shapes.ErrInvalidConstruction
	ErrSamplingExhausted   = errors.New("room sampling exhausted")
)

type options struct {
	rng         *rand.Rand
	maxAttempts int
}

type Option func(*options)

// WithSeed makes generation deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithRand injects the random source.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithMaxAttempts bounds the number of rejected samples.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}

type quadrant uint8

const (
	quadrantNE quadrant = 1 << iota
	quadrantNW
	quadrantSW
	quadrantSE

	allQuadrants = quadrantNE | quadrantNW | quadrantSW | quadrantSE
)

// quadrantOf classifies p by sign. Points on an axis belong to no quadrant.
func quadrantOf(p geometry.Vector2) quadrant {
	switch {
	case p.X > 0 && p.Y > 0:
		return quadrantNE
	case p.X < 0 && p.Y > 0:
		return quadrantNW
	case p.X < 0 && p.Y < 0:
		return quadrantSW
	case p.X > 0 && p.Y < 0:
		return quadrantSE
	default:
		return 0
	}
}

// Generate builds a random simple polygon with nEdges vertices inside a
// maxSize square centered on center. Samples are redrawn until every quadrant
// around the origin holds a vertex, which makes the polar-angle ordering
// star-shaped about the origin.
func Generate(nEdges int, maxSize float64, center geometry.Vector2, opts ...Option) (*shapes.Polygon, error) {
	if nEdges < shapes.MinPolygonVertices {
		return nil, fmt.Errorf("%w: room needs at least %d edges, got %d",
			ErrInvalidConstruction, shapes.MinPolygonVertices, nEdges)
	}
	if !(maxSize > 0) {
		return nil, fmt.Errorf("%w: room size %v", ErrInvalidConstruction, maxSize)
	}

	o := options{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	points := make([]geometry.Vector2, nEdges)
	for attempt := 0; attempt < o.maxAttempts; attempt++ {
		var covered quadrant
		for i := range points {
			points[i] = geometry.Vec(
				(o.rng.Float64()-0.5)*maxSize,
				(o.rng.Float64()-0.5)*maxSize,
			)
			covered |= quadrantOf(points[i])
		}
		if covered != allQuadrants {
			continue
		}

		slices.SortFunc(points, func(a, b geometry.Vector2) int {
			return cmp.Compare(a.Angle(), b.Angle())
		})
		for i := range points {
			points[i] = points[i].Add(center)
		}
		return shapes.NewPolygon(points)
	}

	return nil, fmt.Errorf("%w: no sample covered all quadrants after %d attempts", ErrSamplingExhausted, o.maxAttempts)
}

// Square returns the axis-aligned square room with its bottom-left corner at origin.
func Square(size float64, origin geometry.Vector2) (*shapes.Rectangle, error) {
	if !(size > 0) {
		return nil, fmt.Errorf("%w: room size %v", ErrInvalidConstruction, size)
	}
	return shapes.NewRectangle(origin.X, origin.Y, size, size), nil
}
