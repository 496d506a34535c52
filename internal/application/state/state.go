package state

// GameState represents the current state of a run
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateLost
	StateWon
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateLost:
		return "Lost"
	case StateWon:
		return "Won"
	default:
		return "Unknown"
	}
}

// Finished reports whether the run has ended
func (s GameState) Finished() bool {
	return s == StateLost || s == StateWon
}

// Locomotion is the tag of the active locomotion state
type Locomotion int

const (
	LocomotionIdle Locomotion = iota
	LocomotionMove
	LocomotionJump
	LocomotionFall
)

// String returns the string representation of the locomotion state
func (l Locomotion) String() string {
	switch l {
	case LocomotionIdle:
		return "Idle"
	case LocomotionMove:
		return "Move"
	case LocomotionJump:
		return "Jump"
	case LocomotionFall:
		return "Fall"
	default:
		return "Unknown"
	}
}

// GravityPhase is the phase of the gravity reorientation controller
type GravityPhase int

const (
	GravityIdle GravityPhase = iota
	GravityPreviewing
	GravityCommitting
)

// String returns the string representation of the gravity phase
func (p GravityPhase) String() string {
	switch p {
	case GravityIdle:
		return "Idle"
	case GravityPreviewing:
		return "Previewing"
	case GravityCommitting:
		return "Committing"
	default:
		return "Unknown"
	}
}
