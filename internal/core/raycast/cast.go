package raycast

import (
	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/scene"
	"github.com/zeusync/roomscan/internal/core/shapes"
	"github.com/zeusync/roomscan/pkg/sequence"
)

// Hit is the nearest intersection of a ray with a set of shapes.
type Hit struct {
	Distance float64
	Point    geometry.Vector2
	ShapeID  shapes.ID
	Kind     shapes.Kind
}

type nearest struct {
	hit   Hit
	found bool
	err   error
}

// Cast returns the nearest hit across candidates. Ties keep the first found.
func Cast(r Ray, candidates []shapes.Shape) (Hit, bool, error) {
	best := sequence.Fold(sequence.From(candidates), nearest{}, func(acc nearest, shape shapes.Shape) nearest {
		if acc.err != nil {
			return acc
		}
		t, ok, err := r.Collide(shape)
		if err != nil {
			return nearest{err: err}
		}
		if ok && (!acc.found || t < acc.hit.Distance) {
			return nearest{hit: Hit{Distance: t, ShapeID: shape.ID(), Kind: shape.Kind()}, found: true}
		}
		return acc
	})
	if best.err != nil {
		return Hit{}, false, best.err
	}
	if best.found {
		best.hit.Point = r.At(best.hit.Distance)
	}
	return best.hit, best.found, nil
}

// CastScene casts against every collidable shape of scn.
func CastScene(r Ray, scn *scene.Scene) (Hit, bool, error) {
	if scn == nil {
		return Hit{}, false, scene.ErrEmptyRegistry
	}
	return Cast(r, scn.Collidable())
}
