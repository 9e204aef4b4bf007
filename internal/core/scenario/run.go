package scenario

import (
	"context"
	"fmt"

	"github.com/zeusync/roomscan/internal/core/scene"
	"github.com/zeusync/roomscan/internal/core/sensor"
)

// Result is produced by every scan step.
type Result struct {
	Step        int              `json:"step"`
	Pose        sensor.Pose      `json:"pose"`
	Readings    []sensor.Reading `json:"readings"`
	Fingerprint uint64           `json:"fingerprint"`
}

// Run executes steps in order against scn, calling emit after every scan.
// It stops at the first error from a scan or from emit.
func Run(ctx context.Context, robot *sensor.Robot, scn *scene.Scene, steps []Step, emit func(Result) error) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case step.Scan:
			readings, err := robot.Scan(ctx, scn)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			result := Result{
				Step:        i,
				Pose:        robot.Pose(),
				Readings:    readings,
				Fingerprint: scn.Fingerprint(),
			}
			if err = emit(result); err != nil {
				return err
			}
		case step.Rotate != nil:
			robot.Rotate(*step.Rotate)
		case step.Move != nil:
			robot.Move(*step.Move, step.Speed)
		default:
			return fmt.Errorf("step %d: %w: empty step", i, ErrInvalidConfig)
		}
	}
	return nil
}
