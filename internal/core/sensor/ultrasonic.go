package sensor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/observability/log"
	"github.com/zeusync/roomscan/internal/core/raycast"
	"github.com/zeusync/roomscan/internal/core/scene"
	"github.com/zeusync/roomscan/internal/core/shapes"
	"github.com/zeusync/roomscan/pkg/concurrent"
	"github.com/zeusync/roomscan/pkg/sequence"
)

// raysPerTask is the number of rays one worker casts per scheduled task.
const raysPerTask = 8

const (
	DefaultPointDensity = 20
	DefaultMaxDepth     = 200.0
	DefaultFieldOfView  = math.Pi
)

var ErrInvalidSensor = errors.New("invalid sensor configuration")

// Reading is the result of one ray of a sweep.
type Reading struct {
	Angle    float64          `json:"angle"`
	Distance float64          `json:"distance"`
	Hit      bool             `json:"hit"`
	Point    geometry.Vector2 `json:"point"`
	ShapeID  shapes.ID        `json:"shape_id,omitempty"`
}

// Ultrasonic sweeps a fan of rays across FieldOfView starting at the heading.
type Ultrasonic struct {
	PointDensity int
	MaxDepth     float64
	FieldOfView  float64
	Workers      int

	logger log.Log
	trace  bool
}

type Option func(*Ultrasonic)

func WithFieldOfView(fov float64) Option {
	return func(u *Ultrasonic) { u.FieldOfView = fov }
}

func WithWorkers(n int) Option {
	return func(u *Ultrasonic) { u.Workers = n }
}

func WithLogger(logger log.Log) Option {
	return func(u *Ultrasonic) { u.logger = logger }
}

// WithTrace leaves hit markers and ray segments in the scene after each sweep.
func WithTrace() Option {
	return func(u *Ultrasonic) { u.trace = true }
}

func NewUltrasonic(pointDensity int, maxDepth float64, opts ...Option) (*Ultrasonic, error) {
	u := &Ultrasonic{
		PointDensity: pointDensity,
		MaxDepth:     maxDepth,
		FieldOfView:  DefaultFieldOfView,
	}
	for _, opt := range opts {
		opt(u)
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	if u.logger == nil {
		u.logger = log.Provide()
	}
	u.logger = u.logger.With(log.Component("sensor"))
	return u, nil
}

func (u *Ultrasonic) validate() error {
	if u.PointDensity < 1 {
		return fmt.Errorf("%w: point density %d", ErrInvalidSensor, u.PointDensity)
	}
	if !(u.MaxDepth > 0) {
		return fmt.Errorf("%w: max depth %v", ErrInvalidSensor, u.MaxDepth)
	}
	if math.IsNaN(u.FieldOfView) || math.IsInf(u.FieldOfView, 0) {
		return fmt.Errorf("%w: field of view %v", ErrInvalidSensor, u.FieldOfView)
	}
	return nil
}

// Angles returns the PointDensity+1 ray angles of a sweep at heading.
func (u *Ultrasonic) Angles(heading float64) []float64 {
	angles := make([]float64, u.PointDensity+1)
	for k := range angles {
		angles[k] = heading + u.FieldOfView*float64(k)/float64(u.PointDensity)
	}
	return angles
}

// Scan sweeps the collidable shapes of scn from origin. A ray that hits
// nothing within MaxDepth reports MaxDepth. Readings are in angle order.
func (u *Ultrasonic) Scan(ctx context.Context, scn *scene.Scene, origin geometry.Vector2, heading float64) ([]Reading, error) {
	if scn == nil {
		return nil, fmt.Errorf("couldn't scan environment: %w", scene.ErrEmptyRegistry)
	}
	if err := u.validate(); err != nil {
		return nil, err
	}

	candidates := scn.Collidable()
	batches, err := concurrent.ParallelMap(ctx, concurrent.Batch(u.Angles(heading), raysPerTask), u.Workers,
		func(ctx context.Context, angles []float64) ([]Reading, error) {
			out := make([]Reading, 0, len(angles))
			for _, angle := range angles {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				reading, err := u.cast(angle, origin, candidates)
				if err != nil {
					return nil, err
				}
				out = append(out, reading)
			}
			return out, nil
		})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	readings := slices.Concat(batches...)

	if u.trace {
		if err = u.insertTrace(scn, origin, readings); err != nil {
			return nil, err
		}
	}

	u.logger.Debug("Sweep complete",
		log.Int("rays", len(readings)),
		log.Int("hits", sequence.From(readings).Filter(isHit).Count()),
		log.Int("candidates", len(candidates)),
		log.Float64("heading", heading))
	return readings, nil
}

func (u *Ultrasonic) cast(angle float64, origin geometry.Vector2, candidates []shapes.Shape) (Reading, error) {
	r := raycast.New(angle, origin, u.MaxDepth)
	hit, ok, err := raycast.Cast(r, candidates)
	if err != nil {
		return Reading{}, err
	}
	if !ok {
		return Reading{Angle: angle, Distance: u.MaxDepth, Point: r.At(u.MaxDepth)}, nil
	}
	return Reading{Angle: angle, Distance: hit.Distance, Hit: true, Point: hit.Point, ShapeID: hit.ShapeID}, nil
}

func (u *Ultrasonic) insertTrace(scn *scene.Scene, origin geometry.Vector2, readings []Reading) error {
	for _, reading := range readings {
		if reading.Hit {
			if err := scn.Insert(shapes.PointFromVector(reading.Point)); err != nil {
				return err
			}
		}
		if err := scn.Insert(raycast.New(reading.Angle, origin, u.MaxDepth).ToSegment()); err != nil {
			return err
		}
	}
	return nil
}

// PointCloud converts readings into Cartesian hit points. Misses are skipped.
func PointCloud(readings []Reading, origin geometry.Vector2) []geometry.Vector2 {
	return sequence.ToArray(sequence.From(readings).Filter(isHit), func(reading Reading) geometry.Vector2 {
		return origin.Add(geometry.FromAngle(reading.Angle, reading.Distance))
	})
}

func isHit(reading Reading) bool { return reading.Hit }
