package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is the per-tick input snapshot the character reads
type InputState struct {
	Move        mgl64.Vec2 // x = right, y = forward
	JumpPressed bool       // edge

	Reorient         mgl64.Vec2 // aim for the new down direction
	ReorientBegan    bool       // edge: aiming started this tick
	ReorientHeld     bool
	ReorientReleased bool // edge
	ConfirmPressed   bool // edge: commit the previewed direction

	CameraYaw float64 // -1..1
}

// InputSystem reads the keyboard through ebiten
type InputSystem struct {
	reorientHeld bool
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// GetInput reads the current input state
//
//	WASD     move
//	Space    jump
//	Arrows   aim gravity (hold)
//	E        confirm gravity
//	Q / R    turn camera
func (s *InputSystem) GetInput() InputState {
	reorient := mgl64.Vec2{
		axis(ebiten.IsKeyPressed(ebiten.KeyArrowLeft), ebiten.IsKeyPressed(ebiten.KeyArrowRight)),
		axis(ebiten.IsKeyPressed(ebiten.KeyArrowDown), ebiten.IsKeyPressed(ebiten.KeyArrowUp)),
	}
	held := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) ||
		ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)

	in := InputState{
		Move: normalizeStick(mgl64.Vec2{
			axis(ebiten.IsKeyPressed(ebiten.KeyA), ebiten.IsKeyPressed(ebiten.KeyD)),
			axis(ebiten.IsKeyPressed(ebiten.KeyS), ebiten.IsKeyPressed(ebiten.KeyW)),
		}),
		JumpPressed:    inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Reorient:       reorient,
		ConfirmPressed: inpututil.IsKeyJustPressed(ebiten.KeyE),
		CameraYaw:      axis(ebiten.IsKeyPressed(ebiten.KeyQ), ebiten.IsKeyPressed(ebiten.KeyR)),
	}
	s.applyHeld(&in, held)
	return in
}

// applyHeld derives the reorientation edges from the held flag
func (s *InputSystem) applyHeld(in *InputState, held bool) {
	in.ReorientHeld = held
	in.ReorientBegan = held && !s.reorientHeld
	in.ReorientReleased = !held && s.reorientHeld
	s.reorientHeld = held
}

// axis maps a pair of opposing buttons to -1, 0 or 1
func axis(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v--
	}
	if positive {
		v++
	}
	return v
}

// normalizeStick keeps diagonal keyboard input at unit length
func normalizeStick(v mgl64.Vec2) mgl64.Vec2 {
	if l := v.Len(); l > 1 {
		return v.Mul(1 / l)
	}
	return v
}
