package room

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/raycast"
)

func TestGenerate_Shape(t *testing.T) {
	for _, n := range []int{4, 6, 8, 20, 64} {
		for seed := uint64(0); seed < 20; seed++ {
			poly, err := Generate(n, 10, geometry.Zero, WithSeed(seed))
			require.NoError(t, err)

			vs := poly.Vertices()
			require.Len(t, vs, n)
			require.Len(t, poly.Edges(), n)

			var pos, neg, up, down bool
			for _, v := range vs {
				pos = pos || v.X > 0
				neg = neg || v.X < 0
				up = up || v.Y > 0
				down = down || v.Y < 0
				require.LessOrEqual(t, math.Abs(v.X), 5.0)
				require.LessOrEqual(t, math.Abs(v.Y), 5.0)
			}
			require.True(t, pos && neg && up && down, "n=%d seed=%d", n, seed)
		}
	}
}

func TestGenerate_SortedByAngle(t *testing.T) {
	poly, err := Generate(30, 100, geometry.Zero, WithSeed(42))
	require.NoError(t, err)

	vs := poly.Vertices()
	for i := 1; i < len(vs); i++ {
		require.LessOrEqual(t, vs[i-1].Angle(), vs[i].Angle())
	}
}

func TestGenerate_TranslatedByCenter(t *testing.T) {
	center := geometry.Vec(100, -50)
	plain, err := Generate(12, 20, geometry.Zero, WithSeed(3))
	require.NoError(t, err)
	moved, err := Generate(12, 20, center, WithSeed(3))
	require.NoError(t, err)

	for i, v := range moved.Vertices() {
		require.True(t, v.ApproxEqual(plain.Vertices()[i].Add(center), 1e-9))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(10, 50, geometry.Zero, WithSeed(9))
	require.NoError(t, err)
	b, err := Generate(10, 50, geometry.Zero, WithRand(rand.New(rand.NewPCG(9, 9^0x9e3779b97f4a7c15))))
	require.NoError(t, err)
	require.Equal(t, a.Vertices(), b.Vertices())
}

func TestGenerate_EnclosesOrigin(t *testing.T) {
	// every ray from the origin leaves the room through exactly one wall
	for seed := uint64(0); seed < 10; seed++ {
		poly, err := Generate(16, 120, geometry.Zero, WithSeed(seed))
		require.NoError(t, err)
		require.True(t, poly.Contains(geometry.Zero))

		for k := 0; k < 72; k++ {
			r := raycast.New(2*math.Pi*float64(k)/72, geometry.Zero, 1000)
			hits := 0
			for _, edge := range poly.Edges() {
				if _, ok := r.CollidesSegment(edge); ok {
					hits++
				}
			}
			require.GreaterOrEqual(t, hits, 1, "seed %d angle %d", seed, k)
			require.LessOrEqual(t, hits, 2, "seed %d angle %d", seed, k) // two only at a shared vertex
		}
	}
}

func TestGenerate_Invalid(t *testing.T) {
	_, err := Generate(3, 10, geometry.Zero)
	require.ErrorIs(t, err, ErrInvalidConstruction)
	_, err = Generate(4, 0, geometry.Zero)
	require.ErrorIs(t, err, ErrInvalidConstruction)
	_, err = Generate(4, math.NaN(), geometry.Zero)
	require.ErrorIs(t, err, ErrInvalidConstruction)
}

func TestGenerate_Exhausted(t *testing.T) {
	_, err := Generate(4, 10, geometry.Zero, WithSeed(1), WithMaxAttempts(0))
	require.ErrorIs(t, err, ErrSamplingExhausted)
}

func TestQuadrantOf(t *testing.T) {
	require.Equal(t, quadrantNE, quadrantOf(geometry.Vec(1, 1)))
	require.Equal(t, quadrantNW, quadrantOf(geometry.Vec(-1, 1)))
	require.Equal(t, quadrantSW, quadrantOf(geometry.Vec(-1, -1)))
	require.Equal(t, quadrantSE, quadrantOf(geometry.Vec(1, -1)))
	require.Zero(t, quadrantOf(geometry.Vec(0, 1)))
	require.Zero(t, quadrantOf(geometry.Vec(1, 0)))
}

func TestSquare(t *testing.T) {
	sq, err := Square(4, geometry.Vec(-2, -2))
	require.NoError(t, err)
	require.Equal(t, geometry.Vec(0, 0), sq.Center())
	require.Equal(t, 4.0, sq.W)
	require.Equal(t, 4.0, sq.H)

	_, err = Square(-1, geometry.Zero)
	require.ErrorIs(t, err, ErrInvalidConstruction)
}
