package replay

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/gravshift/internal/application/session"
	"github.com/younwookim/gravshift/internal/application/state"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
)

// Result summarizes a headless playback
type Result struct {
	Frames          int
	State           state.GameState
	Locomotion      state.Locomotion
	Position        mgl64.Vec3
	Down            mgl64.Vec3
	CheckpointsLeft int
}

// Run plays data back on a fresh session without a window. Playback stops at
// the last frame or when the run is won or lost.
func Run(cfg *config.LocomotionConfig, stageCfg *config.StageConfig, data ReplayData, logger *slog.Logger) (Result, error) {
	if data.Dt <= 0 {
		return Result{}, fmt.Errorf("replay has no frame time")
	}
	if data.Stage != "" && data.Stage != stageCfg.ID {
		return Result{}, fmt.Errorf("replay was recorded on stage %s, not %s", data.Stage, stageCfg.ID)
	}

	s, err := session.New(cfg, stageCfg, logger)
	if err != nil {
		return Result{}, err
	}

	r := NewReplayer(data)
	for !s.Flow().State().Finished() {
		in, ok := r.GetInput()
		if !ok {
			break
		}
		s.Frame(in, data.Dt)
	}

	return Result{
		Frames:          s.FrameCount(),
		State:           s.Flow().State(),
		Locomotion:      s.Character().State(),
		Position:        s.Body().Position(),
		Down:            s.Character().Gravity().Down(),
		CheckpointsLeft: s.Flow().CheckpointsRemaining(),
	}, nil
}
