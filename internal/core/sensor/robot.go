package sensor

import (
	"context"

	"github.com/zeusync/roomscan/internal/core/geometry"
	"github.com/zeusync/roomscan/internal/core/scene"
)

// Robot carries an ultrasonic sensor through a scene.
type Robot struct {
	Position geometry.Vector2
	Heading  float64
	Sensor   *Ultrasonic
}

func NewRobot(position geometry.Vector2, heading float64, sensor *Ultrasonic) *Robot {
	return &Robot{Position: position, Heading: heading, Sensor: sensor}
}

// Pose is the robot state reported alongside scans.
type Pose struct {
	Position geometry.Vector2 `json:"position"`
	Heading  float64          `json:"heading"`
}

func (r *Robot) Pose() Pose {
	return Pose{Position: r.Position, Heading: r.Heading}
}

func (r *Robot) Rotate(angle float64) {
	r.Heading += angle
}

// Move steps once along direction by speed. A zero direction leaves the robot in place.
func (r *Robot) Move(direction geometry.Vector2, speed float64) {
	r.Position = r.Position.Add(direction.Normalized().Scale(speed))
}

func (r *Robot) Scan(ctx context.Context, scn *scene.Scene) ([]Reading, error) {
	return r.Sensor.Scan(ctx, scn, r.Position, r.Heading)
}
