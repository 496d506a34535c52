package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/gravshift/internal/application/state"
	"github.com/younwookim/gravshift/internal/domain/entity"
	"github.com/younwookim/gravshift/internal/domain/geom"
	"github.com/younwookim/gravshift/internal/infrastructure/logger"
)

// world runs a character against a real stage the way the game loop does
type world struct {
	char  *Character
	body  *entity.Body
	phys  *PhysicsSystem
	flow  *flowSpy
	fixed float64
}

func createTestWorld(t testing.TB) *world {
	t.Helper()
	stage := createTestStage()
	cfg := createTestConfig()
	body := entity.NewBody(stage.Spawn, mgl64.Vec3{cfg.Body.HalfWidth, cfg.Body.HalfHeight, cfg.Body.HalfWidth})
	flow := &flowSpy{}
	return &world{
		char:  NewCharacter(cfg, body, stage, worldCamera, flow, logger.Discard()),
		body:  body,
		phys:  NewPhysicsSystem(stage, logger.Discard()),
		flow:  flow,
		fixed: cfg.Simulation.FixedTimestep,
	}
}

func (w *world) frame(in InputState) {
	w.char.Tick(in, w.fixed)
	w.char.FixedTick(w.fixed)
	w.phys.Step(w.body, w.fixed)
	w.char.PostStep()
}

func TestCharacter_WalksOnFloor(t *testing.T) {
	w := createTestWorld(t)
	start := w.body.Position()

	for i := 0; i < 10; i++ {
		w.frame(walkInput)
	}

	assert.Equal(t, state.LocomotionMove, w.char.State())
	assert.True(t, w.char.Grounded())
	assert.Greater(t, w.body.Position()[2], start[2]+0.5)
	assert.InDelta(t, start[1], w.body.Position()[1], 0.1, "stays on the floor")
	assertVecInDelta(t, mgl64.Vec3{0, 0, 1}, w.char.Heading(), 1e-9)

	for i := 0; i < 3; i++ {
		w.frame(noInput)
	}
	assert.Equal(t, state.LocomotionIdle, w.char.State())
	assert.InDelta(t, 0.0, w.body.Velocity()[2], 1e-9)
}

func TestCharacter_JumpAndLand(t *testing.T) {
	w := createTestWorld(t)
	w.frame(noInput)
	require.True(t, w.char.Grounded())

	var seen []state.Locomotion
	w.char.OnStateChange = func(from, to state.Locomotion) { seen = append(seen, to) }

	w.frame(jumpInput)
	peak := 0.0
	for i := 0; i < 200 && w.char.State() != state.LocomotionIdle; i++ {
		w.frame(noInput)
		if y := w.body.Position()[1]; y > peak {
			peak = y
		}
	}

	assert.Equal(t, []state.Locomotion{state.LocomotionJump, state.LocomotionFall, state.LocomotionIdle}, seen)
	assert.Greater(t, peak, 2.0)
	assert.Equal(t, 0, w.flow.timeouts)
}

func TestCharacter_ReorientOntoWall(t *testing.T) {
	w := createTestWorld(t)
	w.frame(noInput)

	// aim right (+X, toward the wall) and confirm
	w.frame(InputState{Reorient: mgl64.Vec2{1, 0}, ReorientBegan: true, ReorientHeld: true})
	down, ok := w.char.Gravity().PendingDown()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, down)

	w.frame(InputState{ReorientReleased: true})
	assert.Equal(t, state.GravityPreviewing, w.char.Gravity().Phase(), "release keeps the preview")

	w.frame(InputState{ConfirmPressed: true})
	require.Equal(t, state.GravityCommitting, w.char.Gravity().Phase())

	for i := 0; i < 400 && !(w.char.Grounded() && w.char.State() == state.LocomotionIdle && w.char.Gravity().Phase() == state.GravityIdle); i++ {
		w.frame(noInput)
	}

	assertVecInDelta(t, mgl64.Vec3{-1, 0, 0}, geom.Up(w.body.Rotation()), 1e-9)
	assert.True(t, w.char.Grounded(), "standing on the wall")
	assert.Equal(t, state.LocomotionIdle, w.char.State())
	assert.InDelta(t, 5.0, w.body.Position()[0], 0.1)
	assert.Equal(t, 0, w.flow.timeouts)
}

func TestCharacter_SetConfig(t *testing.T) {
	rig := createTestRig(true)
	cfg := createTestConfig()
	cfg.Jump.Speed = 3
	cfg.Gravity.Magnitude = 7

	rig.char.SetConfig(cfg)
	rig.char.Tick(jumpInput, 0.02)
	assert.InDelta(t, 3.0, rig.body.Velocity()[1], 1e-12)

	rig.ground.grounded = false
	rig.char.Tick(noInput, 0.02)
	rig.char.FixedTick(0.02)
	assertVecInDelta(t, mgl64.Vec3{0, -7, 0}, rig.body.PendingAcceleration(), 1e-12)
}
