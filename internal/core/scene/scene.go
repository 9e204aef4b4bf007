package scene

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/zeusync/roomscan/internal/core/observability/log"
	"github.com/zeusync/roomscan/internal/core/shapes"
	"github.com/zeusync/roomscan/pkg/sequence"
)

// Scene is an identifier-indexed arena of live shapes. Iteration follows
// insertion order. Shapes carry no back-reference to the scene.
type Scene struct {
	id     uuid.UUID
	logger log.Log

	mu     sync.RWMutex
	shapes map[shapes.ID]shapes.Shape
	order  []shapes.ID
}

type Option func(*Scene)

func WithLogger(logger log.Log) Option {
	return func(s *Scene) { s.logger = logger }
}

func WithID(id uuid.UUID) Option {
	return func(s *Scene) { s.id = id }
}

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{
		id:     uuid.New(),
		shapes: make(map[shapes.ID]shapes.Shape),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Provide()
	}
	s.logger = s.logger.With(log.Component("scene"), log.String("scene_id", s.id.String()))
	return s
}

var instance atomic.Pointer[Scene]

// Instance returns the process-wide scene, creating it on first use. opts
// only apply to that first creation.
func Instance(opts ...Option) *Scene {
	if s := instance.Load(); s != nil {
		return s
	}
	instance.CompareAndSwap(nil, New(opts...))
	return instance.Load()
}

// Existing returns the process-wide scene without creating it.
func Existing() (*Scene, error) {
	if s := instance.Load(); s != nil {
		return s, nil
	}
	return nil, ErrEmptyRegistry
}

func (s *Scene) ID() uuid.UUID { return s.id }

// Insert adds shape under its identifier.
func (s *Scene) Insert(shape shapes.Shape) error {
	if shape == nil {
		return ErrNilShape
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := shape.ID()
	if _, exists := s.shapes[id]; exists {
		return fmt.Errorf("%w: id %d", ErrDuplicateShape, id)
	}
	s.shapes[id] = shape
	s.order = append(s.order, id)

	s.logger.Debug("Shape inserted",
		log.Uint64("shape_id", uint64(id)),
		log.Stringer("kind", shape.Kind()))
	return nil
}

// Register inserts shape into s and hands it back, so construction sites can
// build and register in one expression.
func Register[T shapes.Shape](s *Scene, shape T) (T, error) {
	if err := s.Insert(shape); err != nil {
		var zero T
		return zero, err
	}
	return shape, nil
}

// Remove drops the shape with the given id.
func (s *Scene) Remove(id shapes.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shapes[id]; !exists {
		return fmt.Errorf("%w: id %d", ErrShapeNotFound, id)
	}
	delete(s.shapes, id)
	s.order = slices.DeleteFunc(s.order, func(other shapes.ID) bool { return other == id })
	return nil
}

// Clear drops every shape.
func (s *Scene) Clear() {
	s.mu.Lock()
	n := len(s.order)
	s.shapes = make(map[shapes.ID]shapes.Shape)
	s.order = nil
	s.mu.Unlock()

	s.logger.Debug("Scene cleared", log.Int("removed", n))
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Scene) Get(id shapes.ID) (shapes.Shape, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shape, ok := s.shapes[id]
	return shape, ok
}

// Shapes iterates over a snapshot of the scene in insertion order.
func (s *Scene) Shapes() *sequence.Iterator[shapes.Shape] {
	return sequence.From(s.snapshot())
}

// Collidable returns a snapshot of every shape rays can hit.
func (s *Scene) Collidable() []shapes.Shape {
	return s.Shapes().Filter(shapes.Shape.CanCollide).Collect()
}

// CountByKind tallies the scene per shape variant.
func (s *Scene) CountByKind() map[shapes.Kind]int {
	groups := sequence.GroupBy(s.Shapes(), shapes.Shape.Kind)
	counts := make(map[shapes.Kind]int, len(groups))
	for kind, group := range groups {
		counts[kind] = len(group)
	}
	return counts
}

func (s *Scene) snapshot() []shapes.Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]shapes.Shape, len(s.order))
	for i, id := range s.order {
		out[i] = s.shapes[id]
	}
	return out
}
