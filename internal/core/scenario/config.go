package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/observability/log"
	"github.com/zeusync/roomscan/internal/core/sensor"
	"github.com/zeusync/roomscan/internal/core/shapes"
)

var ErrInvalidConfig = errors.New("invalid scenario config")

const (
	RoomRandom = "random"
	RoomSquare = "square"
)

const (
	ObstacleRectangle = "rectangle"
	ObstacleHemiPlane = "hemiplane"
	ObstaclePolygon   = "polygon"
	ObstacleSegment   = "segment"
	ObstaclePoint     = "point"
)

// Config describes a room, its obstacles, the robot and the steps it runs.
type Config struct {
	Log       LogConfig    `json:"log" yaml:"log"`
	Room      RoomConfig   `json:"room" yaml:"room"`
	Sensor    SensorConfig `json:"sensor" yaml:"sensor"`
	Robot     RobotConfig  `json:"robot" yaml:"robot"`
	Obstacles []Obstacle   `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
	Steps     []Step       `json:"steps" yaml:"steps"`
	Server    ServerConfig `json:"server" yaml:"server"`
}

type LogConfig struct {
	Level log.Level `json:"level" yaml:"level"`
}

type RoomConfig struct {
	Kind    string           `json:"kind" yaml:"kind"`
	Edges   int              `json:"edges,omitempty" yaml:"edges,omitempty"`
	MaxSize float64          `json:"max_size,omitempty" yaml:"max_size,omitempty"`
	Size    float64          `json:"size,omitempty" yaml:"size,omitempty"`
	Center  geometry.Vector2 `json:"center" yaml:"center"`
	// Seed makes random rooms reproducible. Zero draws a fresh room.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

type SensorConfig struct {
	PointDensity int     `json:"point_density" yaml:"point_density"`
	MaxDepth     float64 `json:"max_depth" yaml:"max_depth"`
	FieldOfView  float64 `json:"field_of_view" yaml:"field_of_view"`
	Workers      int     `json:"workers,omitempty" yaml:"workers,omitempty"`
	Trace        bool    `json:"trace,omitempty" yaml:"trace,omitempty"`
}

type RobotConfig struct {
	Position geometry.Vector2 `json:"position" yaml:"position"`
	Heading  float64          `json:"heading" yaml:"heading"`
}

type ServerConfig struct {
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
}

// Equation is the line a*x + b*y + c = 0.
type Equation struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	C float64 `json:"c" yaml:"c"`
}

// Obstacle is one extra shape placed in the room. Which fields apply depends on Type.
type Obstacle struct {
	Type     string             `json:"type" yaml:"type"`
	X        float64            `json:"x,omitempty" yaml:"x,omitempty"`
	Y        float64            `json:"y,omitempty" yaml:"y,omitempty"`
	W        float64            `json:"w,omitempty" yaml:"w,omitempty"`
	H        float64            `json:"h,omitempty" yaml:"h,omitempty"`
	Rotate   float64            `json:"rotate,omitempty" yaml:"rotate,omitempty"`
	Points   []geometry.Vector2 `json:"points,omitempty" yaml:"points,omitempty"`
	Equation *Equation          `json:"equation,omitempty" yaml:"equation,omitempty"`
	// TraceOnly keeps a segment out of collision checks.
	TraceOnly bool `json:"trace_only,omitempty" yaml:"trace_only,omitempty"`
}

// Step is a single robot action. Exactly one of Scan, Rotate and Move is set.
type Step struct {
	Scan   bool              `json:"scan,omitempty" yaml:"scan,omitempty"`
	Rotate *float64          `json:"rotate,omitempty" yaml:"rotate,omitempty"`
	Move   *geometry.Vector2 `json:"move,omitempty" yaml:"move,omitempty"`
	Speed  float64           `json:"speed,omitempty" yaml:"speed,omitempty"`
}

func ScanStep() Step { return Step{Scan: true} }

func RotateStep(angle float64) Step { return Step{Rotate: &angle} }

func MoveStep(direction geometry.Vector2, speed float64) Step {
	return Step{Move: &direction, Speed: speed}
}

// Default returns the classic run: a 20-edge random room of size 120 scanned
// from the origin, then again after turning around and after stepping back.
func Default() Config {
	return Config{
		Log: LogConfig{Level: log.LevelInfo},
		Room: RoomConfig{
			Kind:    RoomRandom,
			Edges:   20,
			MaxSize: 120,
		},
		Sensor: SensorConfig{
			PointDensity: sensor.DefaultPointDensity,
			MaxDepth:     sensor.DefaultMaxDepth,
			FieldOfView:  sensor.DefaultFieldOfView,
		},
		Steps:  DefaultSteps(),
		Server: ServerConfig{ListenAddr: ":8080"},
	}
}

func DefaultSteps() []Step {
	return []Step{
		ScanStep(),
		RotateStep(math.Pi),
		ScanStep(),
		MoveStep(geometry.Vec(-1, 0), 20),
		ScanStep(),
	}
}

// Validate checks the config without building anything.
func (c *Config) Validate() error {
	if err := c.Room.validate(); err != nil {
		return err
	}
	if c.Sensor.PointDensity < 1 {
		return invalid("sensor point_density must be at least 1, got %d", c.Sensor.PointDensity)
	}
	if !(c.Sensor.MaxDepth > 0) {
		return invalid("sensor max_depth must be positive, got %v", c.Sensor.MaxDepth)
	}
	if !isFinite(c.Sensor.FieldOfView) {
		return invalid("sensor field_of_view must be finite")
	}
	for i, obstacle := range c.Obstacles {
		if err := obstacle.validate(); err != nil {
			return fmt.Errorf("obstacle %d: %w", i, err)
		}
	}
	for i, step := range c.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (r RoomConfig) validate() error {
	switch r.Kind {
	case RoomRandom:
		if r.Edges < shapes.MinPolygonVertices {
			return invalid("room edges must be at least %d, got %d", shapes.MinPolygonVertices, r.Edges)
		}
		if !(r.MaxSize > 0) {
			return invalid("room max_size must be positive, got %v", r.MaxSize)
		}
	case RoomSquare:
		if !(r.Size > 0) {
			return invalid("room size must be positive, got %v", r.Size)
		}
	default:
		return invalid("unknown room kind %q", r.Kind)
	}
	return nil
}

func (o Obstacle) validate() error {
	switch o.Type {
	case ObstacleRectangle:
		if !(o.W > 0) || !(o.H > 0) {
			return invalid("rectangle needs positive w and h")
		}
	case ObstacleHemiPlane:
		if (o.Equation == nil) == (len(o.Points) == 0) {
			return invalid("hemiplane needs either points or equation")
		}
		if o.Equation == nil && len(o.Points) != 2 {
			return invalid("hemiplane needs 2 points, got %d", len(o.Points))
		}
	case ObstaclePolygon:
		if len(o.Points) < shapes.MinPolygonVertices {
			return invalid("polygon needs at least %d points, got %d", shapes.MinPolygonVertices, len(o.Points))
		}
	case ObstacleSegment:
		if len(o.Points) != 2 {
			return invalid("segment needs 2 points, got %d", len(o.Points))
		}
	case ObstaclePoint:
	default:
		return invalid("unknown obstacle type %q", o.Type)
	}
	return nil
}

func (s Step) validate() error {
	actions := 0
	if s.Scan {
		actions++
	}
	if s.Rotate != nil {
		actions++
		if !isFinite(*s.Rotate) {
			return invalid("rotate angle must be finite")
		}
	}
	if s.Move != nil {
		actions++
		if !isFinite(s.Speed) {
			return invalid("move speed must be finite")
		}
	}
	if actions != 1 {
		return invalid("step must set exactly one of scan, rotate, move")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
