package shapes

import "errors"

var (
	ErrInvalidConstruction = errors.New("invalid shape construction")
)

// MinPolygonVertices is the smallest vertex count a Polygon accepts.
const MinPolygonVertices = 4
