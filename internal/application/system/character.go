package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/gravshift/internal/application/state"
	"github.com/younwookim/gravshift/internal/domain/geom"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
)

// yawer is a camera the player can turn
type yawer interface {
	AddYaw(delta float64)
}

// Character owns one body's locomotion: the context, the state machine, the
// gravity controller and the ground probe
type Character struct {
	ctx     *Context
	machine *Machine
	gravity *GravityController
	probe   *GroundProbe
	logger  *slog.Logger

	heading mgl64.Vec3

	// OnStateChange is called after every locomotion transition
	OnStateChange func(from, to state.Locomotion)
}

// NewCharacter wires a character around body. A nil camera gets an
// OrbitCamera on the body; a nil caster means the body is never grounded.
func NewCharacter(
	cfg *config.LocomotionConfig,
	body PhysicsBody,
	caster RayCaster,
	camera Camera,
	flow FallTimeoutHandler,
	logger *slog.Logger,
) *Character {
	if logger == nil {
		logger = slog.Default()
	}
	if camera == nil {
		camera = NewOrbitCamera(body)
	}

	gravity := NewGravityController(cfg.Gravity, body, camera, logger)
	ctx := &Context{
		Body:    body,
		Gravity: gravity,
		Camera:  camera,
		Flow:    flow,
		Config:  cfg,
	}

	c := &Character{
		ctx:     ctx,
		gravity: gravity,
		probe:   NewGroundProbe(cfg.Probe, caster),
		logger:  logger,
		heading: geom.Forward(body.Rotation()),
	}
	c.machine = NewMachine(ctx)
	c.machine.OnTransition = func(from, to state.Locomotion) {
		c.logger.Debug("locomotion transition", "from", from, "to", to)
		if c.OnStateChange != nil {
			c.OnStateChange(from, to)
		}
	}
	return c
}

// Tick runs one logic tick: sample ground, route reorientation input, update
// the active state, then advance the gravity controller
func (c *Character) Tick(input InputState, dt float64) {
	c.ctx.Input = input
	c.ctx.Dt = dt

	hit := c.probe.Probe(c.ctx.Body)
	c.ctx.Grounded = hit.Grounded
	c.ctx.GroundDistance = hit.Distance

	if y, ok := c.ctx.Camera.(yawer); ok && input.CameraYaw != 0 {
		y.AddYaw(input.CameraYaw * c.ctx.Config.Camera.YawSpeed * dt)
	}

	if input.ReorientBegan {
		c.gravity.BeginPreview()
	}
	if input.ReorientHeld || input.ReorientBegan {
		c.gravity.UpdatePreview(input.Reorient)
	}
	if input.ConfirmPressed {
		c.gravity.Commit()
	}

	c.machine.Tick(c.ctx)
	c.gravity.Update(dt)

	if dir := c.ctx.MoveDirection(); !geom.IsZero(dir) {
		c.heading = geom.SafeNormalize(dir)
	}
}

// FixedTick runs one physics step: the active state's forces, then gravity
func (c *Character) FixedTick(dt float64) {
	c.ctx.Dt = dt
	c.machine.FixedTick(c.ctx)
	c.gravity.ApplyGravity(c.ctx.Grounded)
}

// PostStep runs after the physics step has moved the body
func (c *Character) PostStep() {
	c.gravity.PostStep()
}

// SetConfig swaps the tuning in place
func (c *Character) SetConfig(cfg *config.LocomotionConfig) {
	c.ctx.Config = cfg
	c.gravity.SetConfig(cfg.Gravity)
	c.probe.SetConfig(cfg.Probe)
}

// State returns the active locomotion state
func (c *Character) State() state.Locomotion { return c.machine.Current() }

// Grounded returns the ground flag sampled by the last Tick
func (c *Character) Grounded() bool { return c.ctx.Grounded }

// GroundDistance returns the probe hit distance sampled by the last Tick
func (c *Character) GroundDistance() float64 { return c.ctx.GroundDistance }

// AirTimeRemaining returns the fall budget left while falling
func (c *Character) AirTimeRemaining() float64 { return c.ctx.AirTimeRemaining }

// Gravity returns the gravity controller
func (c *Character) Gravity() *GravityController { return c.gravity }

// Camera returns the camera movement is relative to
func (c *Character) Camera() Camera { return c.ctx.Camera }

// Heading returns the last non-zero walking direction, used to face the model
func (c *Character) Heading() mgl64.Vec3 { return c.heading }
