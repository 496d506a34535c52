package system

import (
	"github.com/younwookim/gravshift/internal/application/state"
	"github.com/younwookim/gravshift/internal/domain/geom"
)

var (
	idle locomotionState = idleState{}
	move locomotionState = moveState{}
	jump locomotionState = jumpState{}
	fall locomotionState = fallState{}
)

// Idle: standing still, watching input
type idleState struct{}

func (idleState) Tag() state.Locomotion { return state.LocomotionIdle }

// Enter drops the velocity component in the body plane and keeps the part
// along up
func (idleState) Enter(ctx *Context) {
	up := ctx.Up()
	v := ctx.Body.Velocity()
	ctx.Body.SetVelocity(up.Mul(v.Dot(up)))
}

func (idleState) Exit(*Context) {}

func (idleState) Update(ctx *Context) locomotionState {
	switch {
	case ctx.HasMoveInput():
		return move
	case ctx.Input.JumpPressed:
		return jump
	case !ctx.Grounded:
		return fall
	}
	return nil
}

func (idleState) FixedUpdate(*Context) {}

// Move: walking on the ground
type moveState struct{}

func (moveState) Tag() state.Locomotion { return state.LocomotionMove }
func (moveState) Enter(*Context)        {}
func (moveState) Exit(*Context)         {}

func (moveState) Update(ctx *Context) locomotionState {
	switch {
	case !ctx.Grounded:
		return fall
	case !ctx.HasMoveInput():
		return idle
	case ctx.Input.JumpPressed:
		return jump
	}
	return nil
}

// FixedUpdate sets planar velocity directly and carries the velocity along up
func (moveState) FixedUpdate(ctx *Context) {
	up := ctx.Up()
	v := ctx.Body.Velocity()
	planar := ctx.MoveDirection().Mul(ctx.Config.Movement.WalkSpeed)
	ctx.Body.SetVelocity(planar.Add(up.Mul(v.Dot(up))))
}

// Jump: impulse on enter, then a cool-down before grounded is checked again
type jumpState struct{}

func (jumpState) Tag() state.Locomotion { return state.LocomotionJump }

func (jumpState) Enter(ctx *Context) {
	ctx.jumpElapsed = 0
	v := ctx.Body.Velocity()
	ctx.Body.SetVelocity(v.Add(ctx.Up().Mul(ctx.Config.Jump.Speed)))
}

func (jumpState) Exit(*Context) {}

func (jumpState) Update(ctx *Context) locomotionState {
	ctx.jumpElapsed += ctx.Dt
	if ctx.jumpElapsed < ctx.Config.Jump.Cooldown {
		return nil
	}
	if ctx.Grounded {
		return idle
	}
	return fall
}

func (jumpState) FixedUpdate(*Context) {}

// Fall: airborne with limited steering until ground or the air-time limit
type fallState struct{}

func (fallState) Tag() state.Locomotion { return state.LocomotionFall }

func (fallState) Enter(ctx *Context) {
	ctx.AirTimeRemaining = ctx.Config.Fall.MaxAirTime
	ctx.fallTimedOut = false
}

func (fallState) Exit(*Context) {}

// Update counts air time down. Landing wins over the limit on the same tick.
// Once the limit is hit airborne the loss is reported a single time and the
// fall never ends.
func (fallState) Update(ctx *Context) locomotionState {
	if ctx.fallTimedOut {
		return nil
	}

	ctx.AirTimeRemaining -= ctx.Dt
	if ctx.Grounded {
		return idle
	}

	if ctx.AirTimeRemaining <= 0 {
		ctx.AirTimeRemaining = 0
		ctx.fallTimedOut = true
		if ctx.Flow != nil {
			ctx.Flow.OnFallTimeout()
		}
	}
	return nil
}

func (fallState) FixedUpdate(ctx *Context) {
	dir := ctx.MoveDirection()
	if geom.IsZero(dir) {
		return
	}
	ctx.Body.AddAcceleration(dir.Mul(ctx.Config.Movement.ForceInAir))
}
