package shapes

import "github.com/zeusync/roomscan/internal/core/geometry"

// Point is a marker. It is never collidable.
type Point struct {
	base
	X, Y float64
}

func NewPoint(x, y float64) *Point {
	return &Point{base: newBase(), X: x, Y: y}
}

func PointFromVector(v geometry.Vector2) *Point {
	return NewPoint(v.X, v.Y)
}

func (p *Point) Kind() Kind       { return KindPoint }
func (p *Point) CanCollide() bool { return false }
func (p *Point) shape()           {}

func (p *Point) Vector() geometry.Vector2 {
	return geometry.Vec(p.X, p.Y)
}
