package shapes

import (
	"fmt"
	"slices"

	"github.com/zeusync/roomscan/internal/core/geometry"
)

// Polygon is a closed vertex loop. The last vertex implicitly connects to the
// first; vertex order is boundary order.
type Polygon struct {
	base

	vertices []geometry.Vector2
	edges    []*Segment
	center   geometry.Vector2
}

var (
	_ Rotatable = (*Polygon)(nil)
	_ EdgeSet   = (*Polygon)(nil)
)

// NewPolygon builds a polygon from at least MinPolygonVertices vertices.
// The slice is copied.
func NewPolygon(vertices []geometry.Vector2) (*Polygon, error) {
	if len(vertices) < MinPolygonVertices {
		return nil, fmt.Errorf("%w: polygon needs at least %d vertices, got %d",
			ErrInvalidConstruction, MinPolygonVertices, len(vertices))
	}
	p := &Polygon{
		base:     newBase(),
		vertices: slices.Clone(vertices),
	}
	p.center = geometry.Mean(p.vertices)
	p.edges = buildEdges(p.vertices, nil)
	return p, nil
}

func (p *Polygon) Kind() Kind       { return KindPolygon }
func (p *Polygon) CanCollide() bool { return true }
func (p *Polygon) shape()           {}

// Vertices returns a copy of the boundary vertices.
func (p *Polygon) Vertices() []geometry.Vector2 { return slices.Clone(p.vertices) }

// Edges returns the boundary segments, one per consecutive vertex pair.
func (p *Polygon) Edges() []*Segment { return p.edges }

// Center is the vertex mean computed at construction.
func (p *Polygon) Center() geometry.Vector2 { return p.center }

// Rotate turns the polygon about its center and rebuilds the edges.
func (p *Polygon) Rotate(angle float64) {
	rotateAbout(p.vertices, p.center, angle)
	p.edges = buildEdges(p.vertices, p.edges)
}

// Contains applies the even-odd crossing rule. Points exactly on the
// boundary may report either way.
func (p *Polygon) Contains(pt geometry.Vector2) bool {
	return crossingContains(p.vertices, pt)
}

// rotateAbout moves every vertex by the difference between its rotated and
// original offset from center, in place.
func rotateAbout(vertices []geometry.Vector2, center geometry.Vector2, angle float64) {
	for i, v := range vertices {
		offset := v.Sub(center)
		displacement := offset.Rotate(angle).Sub(offset)
		vertices[i] = v.Add(displacement)
	}
}

// buildEdges returns one segment per vertex pair, reusing ids from prev when
// the edge count is unchanged.
func buildEdges(vertices []geometry.Vector2, prev []*Segment) []*Segment {
	edges := make([]*Segment, len(vertices))
	for i, v := range vertices {
		var id ID
		if len(prev) == len(vertices) {
			id = prev[i].ID()
		}
		edges[i] = edgeBetween(id, v, vertices[(i+1)%len(vertices)])
	}
	return edges
}

func crossingContains(vertices []geometry.Vector2, pt geometry.Vector2) bool {
	if len(vertices) < 3 {
		return false
	}
	in := false
	a := vertices[len(vertices)-1]
	for _, b := range vertices {
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		a = b
	}
	return in
}
