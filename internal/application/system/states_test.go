package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/gravshift/internal/application/state"
)

var (
	noInput   = InputState{}
	walkInput = InputState{Move: mgl64.Vec2{0, 1}}
	jumpInput = InputState{JumpPressed: true}
)

func TestCharacter_StartsIdle(t *testing.T) {
	rig := createTestRig(true)
	assert.Equal(t, state.LocomotionIdle, rig.char.State())
}

func TestTransitionPriority(t *testing.T) {
	tests := []struct {
		name     string
		setup    []InputState // ticks run grounded before the checked tick
		grounded bool
		input    InputState
		want     state.Locomotion
	}{
		{"idle: move wins over jump", nil, true, InputState{Move: mgl64.Vec2{1, 0}, JumpPressed: true}, state.LocomotionMove},
		{"idle: jump wins over not grounded", nil, false, jumpInput, state.LocomotionJump},
		{"idle: move wins over not grounded", nil, false, walkInput, state.LocomotionMove},
		{"idle: not grounded falls", nil, false, noInput, state.LocomotionFall},
		{"idle: grounded without input stays", nil, true, noInput, state.LocomotionIdle},
		{"move: not grounded wins over jump", []InputState{walkInput}, false, InputState{Move: mgl64.Vec2{0, 1}, JumpPressed: true}, state.LocomotionFall},
		{"move: no input wins over jump", []InputState{walkInput}, true, jumpInput, state.LocomotionIdle},
		{"move: jump", []InputState{walkInput}, true, InputState{Move: mgl64.Vec2{0, 1}, JumpPressed: true}, state.LocomotionJump},
		{"move: keeps moving", []InputState{walkInput}, true, walkInput, state.LocomotionMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := createTestRig(true)
			for _, in := range tt.setup {
				rig.char.Tick(in, 0.02)
			}
			rig.ground.grounded = tt.grounded

			var transitions int
			rig.char.OnStateChange = func(from, to state.Locomotion) { transitions++ }
			rig.char.Tick(tt.input, 0.02)

			assert.Equal(t, tt.want, rig.char.State())
			assert.LessOrEqual(t, transitions, 1, "at most one transition per tick")
		})
	}
}

func TestMachine_TransitionToCurrentIsNoop(t *testing.T) {
	rig := createTestRig(true)
	ctx := rig.char.ctx
	m := rig.char.machine

	called := false
	m.OnTransition = func(from, to state.Locomotion) { called = true }
	rig.body.SetVelocity(mgl64.Vec3{3, 0, 0})

	m.switchTo(ctx, idle)

	assert.False(t, called)
	assert.Equal(t, mgl64.Vec3{3, 0, 0}, rig.body.Velocity(), "Idle was not re-entered")
}

func TestIdle_EnterKeepsVerticalVelocity(t *testing.T) {
	rig := createTestRig(true)
	rig.char.Tick(walkInput, 0.02)
	require.Equal(t, state.LocomotionMove, rig.char.State())

	rig.body.SetVelocity(mgl64.Vec3{4, -2, 5})
	rig.char.Tick(noInput, 0.02)

	require.Equal(t, state.LocomotionIdle, rig.char.State())
	assertVecInDelta(t, mgl64.Vec3{0, -2, 0}, rig.body.Velocity(), 1e-12)
}

func TestMove_FixedUpdateSetsPlanarVelocity(t *testing.T) {
	rig := createTestRig(true)
	rig.char.Tick(InputState{Move: mgl64.Vec2{1, 1}}, 0.02)
	require.Equal(t, state.LocomotionMove, rig.char.State())

	rig.body.SetVelocity(mgl64.Vec3{-9, -3, 0})
	rig.char.machine.FixedTick(rig.char.ctx)

	// walk speed 6 along (right + forward), vertical component kept
	assertVecInDelta(t, mgl64.Vec3{6, -3, 6}, rig.body.Velocity(), 1e-12)
}

func TestJump(t *testing.T) {
	t.Run("lands after cool-down", func(t *testing.T) {
		rig := createTestRig(true)
		rig.char.Tick(jumpInput, 0.1)
		require.Equal(t, state.LocomotionJump, rig.char.State())
		assert.InDelta(t, 8.0, rig.body.Velocity()[1], 1e-12, "impulse along up")

		rig.char.Tick(noInput, 0.1) // 0.1 s elapsed
		assert.Equal(t, state.LocomotionJump, rig.char.State())

		rig.char.Tick(noInput, 0.1) // 0.2 s elapsed
		assert.Equal(t, state.LocomotionIdle, rig.char.State())
	})

	t.Run("falls when airborne at cool-down", func(t *testing.T) {
		rig := createTestRig(true)
		rig.char.Tick(jumpInput, 0.1)
		rig.ground.grounded = false

		rig.char.Tick(noInput, 0.1)
		assert.Equal(t, state.LocomotionJump, rig.char.State())

		rig.char.Tick(noInput, 0.1)
		assert.Equal(t, state.LocomotionFall, rig.char.State())
	})

	t.Run("completes on the tick reaching the boundary", func(t *testing.T) {
		rig := createTestRig(true)
		rig.char.Tick(jumpInput, 0.2)
		rig.char.Tick(noInput, 0.2)
		assert.Equal(t, state.LocomotionIdle, rig.char.State())
	})

	t.Run("not interruptible", func(t *testing.T) {
		rig := createTestRig(true)
		rig.char.Tick(jumpInput, 0.05)
		v := rig.body.Velocity()

		rig.char.Tick(InputState{Move: mgl64.Vec2{1, 0}, JumpPressed: true}, 0.05)
		assert.Equal(t, state.LocomotionJump, rig.char.State())
		assert.Equal(t, v, rig.body.Velocity(), "no second impulse")
	})

	t.Run("impulse follows body up", func(t *testing.T) {
		rig := createTestRig(true)
		rig.body.SetRotation(mgl64.QuatRotate(-1.5707963267948966, mgl64.Vec3{0, 0, 1})) // up = +X
		rig.char.Tick(jumpInput, 0.1)
		assertVecInDelta(t, mgl64.Vec3{8, 0, 0}, rig.body.Velocity(), 1e-9)
	})
}

func TestFall_AirTimeLoss(t *testing.T) {
	rig := createTestRig(false)
	dt := 0.25

	rig.char.Tick(noInput, dt)
	require.Equal(t, state.LocomotionFall, rig.char.State())
	assert.Equal(t, 2.0, rig.char.AirTimeRemaining())

	elapsed := 0.0
	for i := 0; i < 7; i++ {
		rig.char.Tick(noInput, dt)
		elapsed += dt
	}
	assert.Equal(t, 0, rig.flow.timeouts, "no loss before 2.0 s (at %.2f s)", elapsed)

	rig.char.Tick(noInput, dt)
	assert.Equal(t, 1, rig.flow.timeouts, "loss at 2.0 s")

	for i := 0; i < 20; i++ {
		rig.char.Tick(noInput, dt)
	}
	assert.Equal(t, 1, rig.flow.timeouts, "loss fires once")

	rig.ground.grounded = true
	rig.char.Tick(noInput, dt)
	assert.Equal(t, state.LocomotionFall, rig.char.State(), "terminal after loss")
	assert.Equal(t, 1, rig.flow.timeouts)
}

func TestFall_LandingOnLastAirTickWins(t *testing.T) {
	tests := []struct {
		name         string
		groundedLast bool
		want         state.Locomotion
		timeouts     int
	}{
		{"fall: grounded wins over air-time loss", true, state.LocomotionIdle, 0},
		{"fall: airborne at zero air time loses", false, state.LocomotionFall, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := createTestRig(false)
			for i := 0; i < 4; i++ {
				rig.char.Tick(noInput, 0.5)
			}
			require.Equal(t, state.LocomotionFall, rig.char.State())
			require.InDelta(t, 0.5, rig.char.AirTimeRemaining(), 1e-12)

			rig.ground.grounded = tt.groundedLast
			rig.char.Tick(noInput, 0.5)

			assert.Equal(t, tt.want, rig.char.State())
			assert.Equal(t, tt.timeouts, rig.flow.timeouts)
		})
	}
}

func TestFall_AirTimeLossAtFrameRate(t *testing.T) {
	rig := createTestRig(false)
	dt := 1.0 / 60.0

	rig.char.Tick(noInput, dt)
	require.Equal(t, state.LocomotionFall, rig.char.State())

	ticks := 0
	for rig.flow.timeouts == 0 && ticks < 1000 {
		rig.char.Tick(noInput, dt)
		ticks++
	}
	assert.InDelta(t, 120, ticks, 1)
	assert.InDelta(t, 2.0, float64(ticks)*dt, 2*dt)
}

func TestFall_LandingResetsAirTime(t *testing.T) {
	rig := createTestRig(false)
	rig.char.Tick(noInput, 0.5) // enter Fall
	rig.char.Tick(noInput, 0.5)
	rig.char.Tick(noInput, 0.5)
	assert.InDelta(t, 1.0, rig.char.AirTimeRemaining(), 1e-12)

	rig.ground.grounded = true
	rig.char.Tick(noInput, 0.5)
	require.Equal(t, state.LocomotionIdle, rig.char.State())

	rig.ground.grounded = false
	rig.char.Tick(noInput, 0.5)
	require.Equal(t, state.LocomotionFall, rig.char.State())
	assert.Equal(t, 2.0, rig.char.AirTimeRemaining())
	assert.Equal(t, 0, rig.flow.timeouts)
}

func TestFall_AirControlForce(t *testing.T) {
	rig := createTestRig(false)
	rig.char.Tick(noInput, 0.02)
	require.Equal(t, state.LocomotionFall, rig.char.State())

	rig.char.ctx.Input = InputState{Move: mgl64.Vec2{0, 1}}
	rig.char.FixedTick(0.02)

	// air force 10 along camera forward plus airborne gravity 20 along -up
	assertVecInDelta(t, mgl64.Vec3{0, -20, 10}, rig.body.PendingAcceleration(), 1e-12)
}
