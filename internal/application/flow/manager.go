// Package flow tracks the outcome of a run: the time limit, the checkpoint
// count and the single win or loss that ends it.
package flow

import (
	"log/slog"

	"github.com/younwookim/gravshift/internal/application/state"
)

// Manager decides when a run is won or lost. The character reports fall
// timeouts here and checkpoints report when they are touched.
type Manager struct {
	state       state.GameState
	timeLimited bool
	remaining   float64
	checkpoints int
	logger      *slog.Logger

	// Callbacks receive the number of checkpoints still unreached
	OnCheckpointReached func(remaining int)
	OnGameLost          func(remaining int)
	OnGameWon           func(remaining int)
}

// NewManager creates a manager. A timeLimit of 0 disables the countdown.
func NewManager(timeLimit float64, checkpoints int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		state:       state.StatePlaying,
		timeLimited: timeLimit > 0,
		remaining:   timeLimit,
		checkpoints: checkpoints,
		logger:      logger,
	}
}

// State returns the run state
func (m *Manager) State() state.GameState { return m.state }

// TimeRemaining returns the seconds left, or 0 when unlimited
func (m *Manager) TimeRemaining() float64 { return m.remaining }

// TimeLimited reports whether the run has a countdown
func (m *Manager) TimeLimited() bool { return m.timeLimited }

// CheckpointsRemaining returns how many checkpoints are left
func (m *Manager) CheckpointsRemaining() int { return m.checkpoints }

// SetPaused pauses or resumes the countdown. Finished runs stay finished.
func (m *Manager) SetPaused(paused bool) {
	if m.state.Finished() {
		return
	}
	if paused {
		m.state = state.StatePaused
	} else {
		m.state = state.StatePlaying
	}
}

// Update counts the time limit down
func (m *Manager) Update(dt float64) {
	if m.state != state.StatePlaying || !m.timeLimited {
		return
	}
	m.remaining -= dt
	if m.remaining <= 0 {
		m.remaining = 0
		m.logger.Info("time limit reached")
		m.lose()
	}
}

// RegisterCheckpoint counts one checkpoint as reached. The run is won when
// none are left.
func (m *Manager) RegisterCheckpoint() {
	if m.state.Finished() || m.checkpoints <= 0 {
		return
	}
	m.checkpoints--
	if m.OnCheckpointReached != nil {
		m.OnCheckpointReached(m.checkpoints)
	}
	if m.checkpoints == 0 {
		m.win()
	}
}

// OnFallTimeout loses the run
func (m *Manager) OnFallTimeout() {
	m.logger.Info("fell for too long")
	m.lose()
}

func (m *Manager) lose() {
	if m.state.Finished() {
		return
	}
	m.state = state.StateLost
	m.logger.Info("game lost", "checkpointsLeft", m.checkpoints)
	if m.OnGameLost != nil {
		m.OnGameLost(m.checkpoints)
	}
}

func (m *Manager) win() {
	if m.state.Finished() {
		return
	}
	m.state = state.StateWon
	m.logger.Info("game won", "timeLeft", m.remaining)
	if m.OnGameWon != nil {
		m.OnGameWon(m.checkpoints)
	}
}
