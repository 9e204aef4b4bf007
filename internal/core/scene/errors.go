package scene

import "errors"

var (
	ErrDuplicateShape = errors.New("shape already in scene")
	ErrShapeNotFound  = errors.New("shape not found")
	ErrEmptyRegistry  = errors.New("no scene registry instance")
	ErrNilShape       = errors.New("nil shape")
)
