package shapes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/roomscan/internal/core/geometry"
)

const tol = 1e-9

func squareVertices(cx, cy, size float64) []geometry.Vector2 {
	s := size / 2
	return []geometry.Vector2{
		geometry.Vec(cx-s, cy-s),
		geometry.Vec(cx+s, cy-s),
		geometry.Vec(cx+s, cy+s),
		geometry.Vec(cx-s, cy+s),
	}
}

func requireVerticesNear(t *testing.T, want, got []geometry.Vector2) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.True(t, want[i].ApproxEqual(got[i], 1e-9), "vertex %d: want %v got %v", i, want[i], got[i])
	}
}

func TestIdentity(t *testing.T) {
	p := NewPoint(1, 2)
	r := NewRectangle(0, 0, 1, 1)
	h, err := HemiPlaneFromPoints(geometry.Vec(0, 0), geometry.Vec(1, 0))
	require.NoError(t, err)

	require.Greater(t, r.ID(), p.ID())
	require.Greater(t, h.ID(), r.ID())
	require.Greater(t, NewPoint(0, 0).ID(), h.ID())

	assert.Equal(t, KindPoint, p.Kind())
	assert.Equal(t, KindRectangle, r.Kind())
	assert.Equal(t, KindHemiPlane, h.Kind())
	assert.Equal(t, "hemiplane", h.Kind().String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestCollidability(t *testing.T) {
	poly, err := NewPolygon(squareVertices(0, 0, 2))
	require.NoError(t, err)
	seg, err := SegmentBetween(geometry.Vec(0, 0), geometry.Vec(1, 1))
	require.NoError(t, err)
	trace, err := SegmentBetween(geometry.Vec(0, 0), geometry.Vec(1, 1), NonCollidable())
	require.NoError(t, err)
	h, err := HemiPlaneFromEquation(0, 1, 0)
	require.NoError(t, err)

	assert.False(t, NewPoint(0, 0).CanCollide())
	assert.True(t, NewRectangle(0, 0, 1, 1).CanCollide())
	assert.True(t, poly.CanCollide())
	assert.True(t, h.CanCollide())
	assert.True(t, seg.CanCollide())
	assert.False(t, trace.CanCollide())
}

func TestPoint(t *testing.T) {
	p := PointFromVector(geometry.Vec(1, 2))
	require.Equal(t, geometry.Vec(1, 2), p.Vector())
}

func TestRectangle(t *testing.T) {
	t.Run("Derived fields", func(t *testing.T) {
		r := NewRectangle(0, 0, 10, 5)
		require.Equal(t, geometry.Vec(5, 2.5), r.Center())
		require.Equal(t, []geometry.Vector2{
			geometry.Vec(0, 0), geometry.Vec(10, 0), geometry.Vec(10, 5), geometry.Vec(0, 5),
		}, r.Vertices())
		require.Len(t, r.Edges(), 4)
		require.InDelta(t, 10, r.Edges()[0].Length, tol)
		require.InDelta(t, 5, r.Edges()[1].Length, tol)
	})

	t.Run("Axis-aligned containment", func(t *testing.T) {
		r := NewRectangle(0, 0, 10, 5)
		assert.True(t, r.Contains(5, 2))
		assert.False(t, r.Contains(-1, 2))
		assert.False(t, r.Contains(5, 6))
		assert.False(t, r.Contains(0, 2), "boundary is excluded")
	})

	t.Run("Rotation round trip", func(t *testing.T) {
		r := NewRectangle(2, 3, 1, 5)
		before := r.Vertices()
		r.Rotate(math.Pi / 4)
		require.True(t, r.Rotated())
		require.Equal(t, r.Vertices()[0].X, r.X)
		require.Equal(t, r.Vertices()[0].Y, r.Y)
		require.Equal(t, 1.0, r.W)
		require.Equal(t, 5.0, r.H)

		r.Rotate(-math.Pi / 4)
		require.False(t, r.Rotated())
		requireVerticesNear(t, before, r.Vertices())
	})

	t.Run("Rotated containment uses vertices", func(t *testing.T) {
		// a thin horizontal bar turned upright
		r := NewRectangle(-5, -0.5, 10, 1)
		r.Rotate(math.Pi / 2)
		assert.True(t, r.Contains(0, 4))
		assert.False(t, r.Contains(4, 0))
	})

	t.Run("Edges follow rotation", func(t *testing.T) {
		r := NewRectangle(-1, -1, 2, 2)
		ids := []ID{r.Edges()[0].ID(), r.Edges()[1].ID()}
		r.Rotate(math.Pi / 2)
		require.True(t, r.Edges()[0].P0.ApproxEqual(geometry.Vec(1, -1), tol))
		require.Equal(t, ids[0], r.Edges()[0].ID())
		require.Equal(t, ids[1], r.Edges()[1].ID())
	})
}

func TestPolygon(t *testing.T) {
	t.Run("Too few vertices", func(t *testing.T) {
		for _, n := range []int{0, 1, 3} {
			_, err := NewPolygon(squareVertices(0, 0, 2)[:n])
			require.ErrorIs(t, err, ErrInvalidConstruction)
		}
	})

	t.Run("Edges and center", func(t *testing.T) {
		poly, err := NewPolygon(squareVertices(0, 0, 2))
		require.NoError(t, err)
		require.Len(t, poly.Edges(), 4)
		require.True(t, poly.Center().ApproxEqual(geometry.Zero, tol))

		last := poly.Edges()[3]
		require.True(t, last.P0.ApproxEqual(geometry.Vec(-1, 1), tol))
		require.True(t, last.End().ApproxEqual(geometry.Vec(-1, -1), tol), "closing edge wraps to vertex 0")
	})

	t.Run("Input slice is copied", func(t *testing.T) {
		vs := squareVertices(0, 0, 2)
		poly, err := NewPolygon(vs)
		require.NoError(t, err)
		vs[0] = geometry.Vec(100, 100)
		require.Equal(t, geometry.Vec(-1, -1), poly.Vertices()[0])
	})

	t.Run("Rotation preserves center", func(t *testing.T) {
		poly, err := NewPolygon(squareVertices(3, -2, 2))
		require.NoError(t, err)
		before := poly.Center()
		poly.Rotate(math.Pi / 4)
		require.True(t, before.ApproxEqual(geometry.Mean(poly.Vertices()), 1e-9))
	})

	t.Run("Rotation round trip", func(t *testing.T) {
		vs := []geometry.Vector2{
			geometry.Vec(0, 0), geometry.Vec(4, 1), geometry.Vec(5, 5), geometry.Vec(1, 3), geometry.Vec(-2, 2),
		}
		poly, err := NewPolygon(vs)
		require.NoError(t, err)
		for _, angle := range []float64{0.3, math.Pi / 2, 2.5, -1} {
			poly.Rotate(angle)
			poly.Rotate(-angle)
			requireVerticesNear(t, vs, poly.Vertices())
		}
	})

	t.Run("Contains", func(t *testing.T) {
		poly, err := NewPolygon(squareVertices(0, 0, 2))
		require.NoError(t, err)
		assert.True(t, poly.Contains(geometry.Vec(0, 0)))
		assert.True(t, poly.Contains(geometry.Vec(0.9, -0.9)))
		assert.False(t, poly.Contains(geometry.Vec(1.5, 0)))
		assert.False(t, poly.Contains(geometry.Vec(0, -3)))
	})
}

func TestHemiPlane(t *testing.T) {
	t.Run("From two points", func(t *testing.T) {
		h, err := HemiPlaneFromPoints(geometry.Vec(0, 0), geometry.Vec(2, 0))
		require.NoError(t, err)
		require.True(t, h.Direction.ApproxEqual(geometry.Vec(1, 0), tol))
		require.True(t, h.Normal.ApproxEqual(geometry.Vec(0, 1), tol))

		// the normal side is outside
		assert.False(t, h.Contains(geometry.Vec(0, 1)))
		assert.True(t, h.Contains(geometry.Vec(0, -1)))
		assert.True(t, h.Contains(geometry.Vec(5, 0)), "boundary is inside")
	})

	t.Run("Coincident points", func(t *testing.T) {
		_, err := HemiPlaneFromPoints(geometry.Vec(1, 1), geometry.Vec(1, 1))
		require.ErrorIs(t, err, ErrInvalidConstruction)
	})

	t.Run("From equation", func(t *testing.T) {
		tests := []struct {
			name    string
			a, b, c float64
			p0      geometry.Vector2
			dir     geometry.Vector2
		}{
			{name: "horizontal y=2", a: 0, b: 1, c: -2, p0: geometry.Vec(0, 2), dir: geometry.Vec(1, 0)},
			{name: "vertical x=3", a: 1, b: 0, c: -3, p0: geometry.Vec(3, 0), dir: geometry.Vec(0, 1)},
			{name: "diagonal y=x", a: -1, b: 1, c: 0, p0: geometry.Vec(0, 0), dir: geometry.Vec(1, 1).Normalized()},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h, err := HemiPlaneFromEquation(tt.a, tt.b, tt.c)
				require.NoError(t, err)
				require.True(t, h.P0.ApproxEqual(tt.p0, tol), "p0 %v", h.P0)
				require.True(t, h.Direction.ApproxEqual(tt.dir, tol), "dir %v", h.Direction)
				require.InDelta(t, 1, h.Direction.Length(), tol)
			})
		}
	})

	t.Run("Degenerate equation", func(t *testing.T) {
		_, err := HemiPlaneFromEquation(0, 0, 1)
		require.ErrorIs(t, err, ErrInvalidConstruction)
	})

	t.Run("Rotate keeps normal perpendicular", func(t *testing.T) {
		h, err := NewHemiPlane(geometry.Vec(1, 1), geometry.Vec(1, 0))
		require.NoError(t, err)
		h.Rotate(math.Pi / 2)
		require.Equal(t, geometry.Vec(1, 1), h.P0)
		require.True(t, h.Direction.ApproxEqual(geometry.Vec(0, 1), tol))
		require.True(t, h.Normal.ApproxEqual(geometry.Vec(-1, 0), tol))
		h.Rotate(-math.Pi / 2)
		require.True(t, h.Direction.ApproxEqual(geometry.Vec(1, 0), tol))
	})
}

func TestSegment(t *testing.T) {
	s, err := NewSegment(geometry.Vec(1, 1), geometry.Vec(0, 3), 4)
	require.NoError(t, err)
	require.Equal(t, KindSegment, s.Kind())
	require.True(t, s.Direction.ApproxEqual(geometry.Vec(0, 1), tol))
	require.True(t, s.End().ApproxEqual(geometry.Vec(1, 5), tol))

	s.Rotate(-math.Pi / 2)
	require.True(t, s.End().ApproxEqual(geometry.Vec(5, 1), tol))

	_, err = NewSegment(geometry.Vec(0, 0), geometry.Zero, 1)
	require.ErrorIs(t, err, ErrInvalidConstruction)
	_, err = NewSegment(geometry.Vec(0, 0), geometry.Vec(1, 0), -1)
	require.ErrorIs(t, err, ErrInvalidConstruction)

	between, err := SegmentBetween(geometry.Vec(0, 0), geometry.Vec(3, 4))
	require.NoError(t, err)
	require.InDelta(t, 5, between.Length, tol)
}
