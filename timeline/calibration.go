package timeline

import (
	"errors"
	"fmt"

	"gps_flyover/camera"
)

// Calibration holds the empirically tuned constants of the replay. None of
// them is derived; change them only together with visual checks.
type Calibration struct {
	RenderTarget          int     `yaml:"render_target"`           // max points kept for drawing the route
	RenderAttempts        int     `yaml:"render_attempts"`         // tolerance escalations for the render budget
	RenderToleranceFactor float64 `yaml:"render_tolerance_factor"` // times the shorter side of the render bounds
	RenderAspectRatio     float64 `yaml:"render_aspect_ratio"`     // width/height of the render bounds
	CameraTarget          int     `yaml:"camera_target"`           // max points of the camera route
	CameraAttempts        int     `yaml:"camera_attempts"`
	CameraToleranceFactor float64 `yaml:"camera_tolerance_factor"` // times the shorter side of the route bounds
	MinBoundsSide         float64 `yaml:"min_bounds_side"`         // planar units
	StableAfter           float64 `yaml:"stable_after"`            // duration above which the camera is pinned
	TurnSpacing           float64 `yaml:"turn_spacing"`            // time units between camera turns
	RampSteps             int     `yaml:"ramp_steps"`              // frames a heading change is eased over
}

// DefaultCalibration returns the tuned constants.
func DefaultCalibration() Calibration {
	cam := camera.DefaultOptions()
	return Calibration{
		RenderTarget:          450,
		RenderAttempts:        5,
		RenderToleranceFactor: 0.005,
		RenderAspectRatio:     0.5,
		CameraTarget:          15,
		CameraAttempts:        3,
		CameraToleranceFactor: 0.25,
		MinBoundsSide:         100,
		StableAfter:           cam.StableAfter,
		TurnSpacing:           cam.TurnSpacing,
		RampSteps:             cam.RampSteps,
	}
}

// ErrInvalidCalibration is wrapped by Validate errors.
var ErrInvalidCalibration = errors.New("invalid calibration")

// Validate rejects budgets and factors that would make the replay
// meaningless.
func (c Calibration) Validate() error {
	switch {
	case c.RenderTarget < 2:
		return fmt.Errorf("%w: render_target %d < 2", ErrInvalidCalibration, c.RenderTarget)
	case c.CameraTarget < 2:
		return fmt.Errorf("%w: camera_target %d < 2", ErrInvalidCalibration, c.CameraTarget)
	case c.RenderAttempts < 1 || c.CameraAttempts < 1:
		return fmt.Errorf("%w: attempts must be at least 1", ErrInvalidCalibration)
	case c.RenderToleranceFactor < 0 || c.CameraToleranceFactor < 0:
		return fmt.Errorf("%w: tolerance factors must not be negative", ErrInvalidCalibration)
	case c.MinBoundsSide <= 0:
		return fmt.Errorf("%w: min_bounds_side must be positive", ErrInvalidCalibration)
	case c.TurnSpacing <= 0:
		return fmt.Errorf("%w: turn_spacing must be positive", ErrInvalidCalibration)
	case c.RampSteps < 1:
		return fmt.Errorf("%w: ramp_steps must be at least 1", ErrInvalidCalibration)
	}
	return nil
}

func (c Calibration) cameraOptions() camera.Options {
	return camera.Options{
		StableAfter: c.StableAfter,
		TurnSpacing: c.TurnSpacing,
		RampSteps:   c.RampSteps,
	}
}
