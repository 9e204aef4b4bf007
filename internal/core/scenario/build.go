package scenario

import (
	"context"
	"fmt"

	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/observability/log"
	"github.com/zeusync/roomscan/internal/core/room"
	"github.com/zeusync/roomscan/internal/core/scene"
	"github.com/zeusync/roomscan/internal/core/sensor"
	"github.com/zeusync/roomscan/internal/core/shapes"
)

// Build populates scn with the room and obstacles of c and returns the robot
// that will scan it.
func Build(ctx context.Context, c *Config, scn *scene.Scene, logger log.Log) (*sensor.Robot, error) {
	if scn == nil {
		return nil, scene.ErrEmptyRegistry
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Provide()
	}
	logger = logger.With(log.Component("scenario"))

	roomShape, err := buildRoom(c.Room)
	if err != nil {
		return nil, fmt.Errorf("build room: %w", err)
	}
	if err = scn.Insert(roomShape); err != nil {
		return nil, err
	}

	for i, obstacle := range c.Obstacles {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		shape, err := obstacle.build()
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		if err = scn.Insert(shape); err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
	}

	opts := []sensor.Option{
		sensor.WithFieldOfView(c.Sensor.FieldOfView),
		sensor.WithWorkers(c.Sensor.Workers),
		sensor.WithLogger(logger),
	}
	if c.Sensor.Trace {
		opts = append(opts, sensor.WithTrace())
	}
	ultrasonic, err := sensor.NewUltrasonic(c.Sensor.PointDensity, c.Sensor.MaxDepth, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("Scenario built",
		log.String("room", c.Room.Kind),
		log.Int("obstacles", len(c.Obstacles)),
		log.Int("shapes", scn.Len()))

	return sensor.NewRobot(c.Robot.Position, c.Robot.Heading, ultrasonic), nil
}

func buildRoom(c RoomConfig) (shapes.Shape, error) {
	switch c.Kind {
	case RoomSquare:
		origin := c.Center.Sub(geometry.Vec(c.Size/2, c.Size/2))
		return room.Square(c.Size, origin)
	default:
		var opts []room.Option
		if c.Seed != 0 {
			opts = append(opts, room.WithSeed(c.Seed))
		}
		return room.Generate(c.Edges, c.MaxSize, c.Center, opts...)
	}
}

func (o Obstacle) build() (shapes.Shape, error) {
	switch o.Type {
	case ObstacleRectangle:
		rect := shapes.NewRectangle(o.X, o.Y, o.W, o.H)
		if o.Rotate != 0 {
			rect.Rotate(o.Rotate)
		}
		return rect, nil
	case ObstacleHemiPlane:
		if o.Equation != nil {
			return shapes.HemiPlaneFromEquation(o.Equation.A, o.Equation.B, o.Equation.C)
		}
		return shapes.HemiPlaneFromPoints(o.Points[0], o.Points[1])
	case ObstaclePolygon:
		poly, err := shapes.NewPolygon(o.Points)
		if err != nil {
			return nil, err
		}
		if o.Rotate != 0 {
			poly.Rotate(o.Rotate)
		}
		return poly, nil
	case ObstacleSegment:
		var opts []shapes.SegmentOption
		if o.TraceOnly {
			opts = append(opts, shapes.NonCollidable())
		}
		return shapes.SegmentBetween(o.Points[0], o.Points[1], opts...)
	case ObstaclePoint:
		return shapes.NewPoint(o.X, o.Y), nil
	default:
		return nil, fmt.Errorf("%w: unknown obstacle type %q", ErrInvalidConfig, o.Type)
	}
}
