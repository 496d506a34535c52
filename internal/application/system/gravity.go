package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/gravshift/internal/application/state"
	"github.com/younwookim/gravshift/internal/domain/geom"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
)

// GravityController owns the character's down direction. A change goes
// through three phases: Previewing while the player aims, Committing while
// the whole frame rotates, then back to Idle.
type GravityController struct {
	body   PhysicsBody
	camera Camera
	cfg    config.GravityConfig
	logger *slog.Logger

	phase       state.GravityPhase
	currentDown mgl64.Vec3
	pendingDown mgl64.Vec3

	// Committing
	elapsed        float64
	duration       float64
	startRotation  mgl64.Quat
	targetRotation mgl64.Quat

	// Previewing: a ghost pose easing toward the pending frame
	previewRotation mgl64.Quat
	previewStart    mgl64.Quat
	previewTarget   mgl64.Quat
	previewElapsed  float64

	// OnCommitted is called when a rotation finishes with the new down direction
	OnCommitted func(down mgl64.Vec3)
}

// NewGravityController creates a controller whose down is the body's current -up
func NewGravityController(cfg config.GravityConfig, body PhysicsBody, camera Camera, logger *slog.Logger) *GravityController {
	if logger == nil {
		logger = slog.Default()
	}
	rot := body.Rotation()
	return &GravityController{
		body:            body,
		camera:          camera,
		cfg:             cfg,
		logger:          logger,
		phase:           state.GravityIdle,
		currentDown:     geom.Up(rot).Mul(-1),
		previewRotation: rot,
	}
}

// SetConfig replaces the tuning. An in-flight rotation keeps its duration.
func (g *GravityController) SetConfig(cfg config.GravityConfig) {
	g.cfg = cfg
}

// Phase returns the current phase
func (g *GravityController) Phase() state.GravityPhase { return g.phase }

// Down returns the committed down direction
func (g *GravityController) Down() mgl64.Vec3 { return g.currentDown }

// PendingDown returns the direction being previewed, or false when not previewing
func (g *GravityController) PendingDown() (mgl64.Vec3, bool) {
	if g.phase != state.GravityPreviewing {
		return mgl64.Vec3{}, false
	}
	return g.pendingDown, true
}

// PreviewRotation returns the ghost pose shown while previewing
func (g *GravityController) PreviewRotation() mgl64.Quat { return g.previewRotation }

// Progress returns how far the current rotation is, in [0, 1]
func (g *GravityController) Progress() float64 {
	if g.phase != state.GravityCommitting || g.duration <= 0 {
		return 0
	}
	return mgl64.Clamp(g.elapsed/g.duration, 0, 1)
}

// BeginPreview starts aiming a new down direction. Only allowed from Idle.
func (g *GravityController) BeginPreview() bool {
	if g.phase != state.GravityIdle {
		return false
	}

	down, ok := geom.SnapToAxis(g.currentDown)
	if !ok {
		down = geom.WorldUp.Mul(-1)
	}
	rot := g.body.Rotation()

	g.pendingDown = down
	g.previewRotation = rot
	g.previewStart = rot
	g.previewTarget = rot
	g.previewElapsed = 0
	g.phase = state.GravityPreviewing
	return true
}

// UpdatePreview aims with 2-axis input relative to the camera. The input is
// mapped onto the body plane and snapped to the dominant world axis. Zero
// input keeps the previous aim.
func (g *GravityController) UpdatePreview(raw mgl64.Vec2) bool {
	if g.phase != state.GravityPreviewing {
		return false
	}
	up := geom.Up(g.body.Rotation())
	forward, right := geom.Forward(g.body.Rotation()), geom.Right(g.body.Rotation())
	if g.camera != nil {
		forward, right = g.camera.Forward(), g.camera.Right()
	}
	candidate := geom.ProjectOnPlane(forward, up).Mul(raw[1]).
		Add(geom.ProjectOnPlane(right, up).Mul(raw[0]))

	g.aim(candidate)
	return true
}

// PreviewDirection aims at a world-space direction directly
func (g *GravityController) PreviewDirection(dir mgl64.Vec3) bool {
	if g.phase != state.GravityPreviewing {
		return false
	}
	g.aim(dir)
	return true
}

func (g *GravityController) aim(candidate mgl64.Vec3) {
	down, ok := geom.SnapToAxis(candidate)
	if !ok || down == g.pendingDown {
		return
	}
	g.pendingDown = down
	g.previewStart = g.previewRotation
	g.previewTarget = g.targetFor(down)
	g.previewElapsed = 0
}

// targetFor is the body orientation whose up is -down
func (g *GravityController) targetFor(down mgl64.Vec3) mgl64.Quat {
	rot := g.body.Rotation()
	return geom.FromToRotation(geom.Up(rot), down.Mul(-1)).Mul(rot).Normalize()
}

// Commit starts rotating the body toward the previewed down direction.
// Only allowed while previewing.
func (g *GravityController) Commit() bool {
	if g.phase != state.GravityPreviewing {
		return false
	}

	g.startRotation = g.body.Rotation()
	g.targetRotation = g.targetFor(g.pendingDown)
	g.elapsed = 0
	g.duration = g.cfg.ChangeTime
	g.phase = state.GravityCommitting
	g.clampVelocity()

	g.logger.Debug("gravity commit", "down", g.pendingDown, "duration", g.duration)
	return true
}

// Update advances the preview pose or the committed rotation by dt
func (g *GravityController) Update(dt float64) {
	switch g.phase {
	case state.GravityPreviewing:
		g.previewElapsed += dt
		t := 1.0
		if g.cfg.ChangeTime > 0 {
			t = g.previewElapsed / g.cfg.ChangeTime
		}
		if t >= 1 {
			g.previewRotation = g.previewTarget
		} else {
			g.previewRotation = geom.Slerp(g.previewStart, g.previewTarget, t)
		}

	case state.GravityCommitting:
		g.clampVelocity()
		g.elapsed += dt
		if g.elapsed >= g.duration {
			g.finish()
			return
		}
		g.body.SetRotation(geom.Slerp(g.startRotation, g.targetRotation, g.elapsed/g.duration))
	}
}

func (g *GravityController) finish() {
	g.body.SetRotation(g.targetRotation)
	g.currentDown = g.pendingDown
	g.phase = state.GravityIdle
	g.previewRotation = g.targetRotation

	g.logger.Debug("gravity changed", "down", g.currentDown)
	if g.OnCommitted != nil {
		g.OnCommitted(g.currentDown)
	}
}

// ApplyGravity pushes the body along -up. Grounded bodies get the weak
// grounded magnitude so they stay pressed to the floor.
func (g *GravityController) ApplyGravity(grounded bool) {
	magnitude := g.cfg.Magnitude
	if grounded {
		magnitude = g.cfg.GroundedMagnitude
	}
	up := geom.Up(g.body.Rotation())
	g.body.AddAcceleration(up.Mul(-magnitude))

	if g.phase == state.GravityCommitting {
		g.clampVelocity()
	}
}

// PostStep re-applies the commit clamp once physics has integrated the
// step's accumulated acceleration.
func (g *GravityController) PostStep() {
	if g.phase == state.GravityCommitting {
		g.clampVelocity()
	}
}

// clampVelocity limits speed while the frame rotates
func (g *GravityController) clampVelocity() {
	g.body.SetVelocity(geom.ClampMagnitude(g.body.Velocity(), g.cfg.MaxVelocityClamp))
}
