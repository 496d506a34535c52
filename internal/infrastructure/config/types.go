package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned (wrapped) when a loaded config fails validation
var ErrInvalidConfig = errors.New("invalid config")

// LocomotionConfig is the root config for locomotion.yaml
type LocomotionConfig struct {
	Display    DisplayConfig    `json:"display" yaml:"display"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Movement   MovementConfig   `json:"movement" yaml:"movement"`
	Jump       JumpConfig       `json:"jump" yaml:"jump"`
	Fall       FallConfig       `json:"fall" yaml:"fall"`
	Gravity    GravityConfig    `json:"gravity" yaml:"gravity"`
	Probe      ProbeConfig      `json:"probe" yaml:"probe"`
	Body       BodyConfig       `json:"body" yaml:"body"`
	Camera     CameraConfig     `json:"camera" yaml:"camera"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int `json:"screenHeight" yaml:"screenHeight"`
	Scale        int `json:"scale" yaml:"scale"`
	Framerate    int `json:"framerate" yaml:"framerate"`
}

type SimulationConfig struct {
	FixedTimestep float64 `json:"fixedTimestep" yaml:"fixedTimestep"` // seconds per physics step
	MaxSteps      int     `json:"maxSteps" yaml:"maxSteps"`           // physics steps allowed per frame
}

type MovementConfig struct {
	WalkSpeed  float64 `json:"walkSpeed" yaml:"walkSpeed"`
	ForceInAir float64 `json:"forceInAir" yaml:"forceInAir"`
}

type JumpConfig struct {
	Speed    float64 `json:"speed" yaml:"speed"`
	Cooldown float64 `json:"cooldown" yaml:"cooldown"`
}

type FallConfig struct {
	MaxAirTime float64 `json:"maxAirTime" yaml:"maxAirTime"`
}

type GravityConfig struct {
	Magnitude         float64 `json:"magnitude" yaml:"magnitude"`
	GroundedMagnitude float64 `json:"groundedMagnitude" yaml:"groundedMagnitude"`
	ChangeTime        float64 `json:"changeTime" yaml:"changeTime"`
	MaxVelocityClamp  float64 `json:"maxVelocityClamp" yaml:"maxVelocityClamp"`
}

// ProbeConfig places the grounded ray: it starts Offset above the feet
// along up and reaches Length along -up.
type ProbeConfig struct {
	Offset float64 `json:"offset" yaml:"offset"`
	Length float64 `json:"length" yaml:"length"`
}

type BodyConfig struct {
	HalfWidth  float64 `json:"halfWidth" yaml:"halfWidth"`
	HalfHeight float64 `json:"halfHeight" yaml:"halfHeight"`
}

type CameraConfig struct {
	YawSpeed float64 `json:"yawSpeed" yaml:"yawSpeed"` // radians per second
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// DefaultLocomotionConfig returns the tuning used when no file overrides it
func DefaultLocomotionConfig() *LocomotionConfig {
	return &LocomotionConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        3,
			Framerate:    60,
		},
		Simulation: SimulationConfig{
			FixedTimestep: 0.02,
			MaxSteps:      5,
		},
		Movement: MovementConfig{
			WalkSpeed:  6,
			ForceInAir: 10,
		},
		Jump: JumpConfig{
			Speed:    8,
			Cooldown: 0.2,
		},
		Fall: FallConfig{
			MaxAirTime: 2,
		},
		Gravity: GravityConfig{
			Magnitude:         20,
			GroundedMagnitude: 1,
			ChangeTime:        0.5,
			MaxVelocityClamp:  5,
		},
		Probe: ProbeConfig{
			Offset: 0.2,
			Length: 0.3,
		},
		Body: BodyConfig{
			HalfWidth:  0.3,
			HalfHeight: 0.9,
		},
		Camera: CameraConfig{
			YawSpeed: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that every speed, duration and size is usable
func (c *LocomotionConfig) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"simulation.fixedTimestep", c.Simulation.FixedTimestep},
		{"movement.walkSpeed", c.Movement.WalkSpeed},
		{"jump.speed", c.Jump.Speed},
		{"jump.cooldown", c.Jump.Cooldown},
		{"fall.maxAirTime", c.Fall.MaxAirTime},
		{"gravity.changeTime", c.Gravity.ChangeTime},
		{"probe.length", c.Probe.Length},
		{"body.halfWidth", c.Body.HalfWidth},
		{"body.halfHeight", c.Body.HalfHeight},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"movement.forceInAir", c.Movement.ForceInAir},
		{"gravity.magnitude", c.Gravity.Magnitude},
		{"gravity.groundedMagnitude", c.Gravity.GroundedMagnitude},
		{"gravity.maxVelocityClamp", c.Gravity.MaxVelocityClamp},
		{"probe.offset", c.Probe.Offset},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.Simulation.MaxSteps < 1 {
		return fmt.Errorf("%w: simulation.maxSteps must be at least 1", ErrInvalidConfig)
	}
	if c.Display.Framerate < 1 {
		return fmt.Errorf("%w: display.framerate must be at least 1", ErrInvalidConfig)
	}
	return nil
}
