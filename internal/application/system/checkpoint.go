package system

import (
	"log/slog"

	"github.com/younwookim/gravshift/internal/domain/entity"
)

// CheckpointRegistrar is told about every checkpoint the character touches
type CheckpointRegistrar interface {
	RegisterCheckpoint()
}

// CheckpointSystem consumes stage checkpoints the body overlaps
type CheckpointSystem struct {
	stage     *entity.Stage
	registrar CheckpointRegistrar
	logger    *slog.Logger
}

// NewCheckpointSystem creates a checkpoint system
func NewCheckpointSystem(stage *entity.Stage, registrar CheckpointRegistrar, logger *slog.Logger) *CheckpointSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckpointSystem{
		stage:     stage,
		registrar: registrar,
		logger:    logger,
	}
}

// Update registers every unreached checkpoint the body overlaps.
// Returns the number reached this call.
func (s *CheckpointSystem) Update(body *entity.Body) int {
	bounds := body.Bounds()
	reached := 0
	for i := range s.stage.Checkpoints {
		cp := &s.stage.Checkpoints[i]
		if cp.Reached || !cp.Bounds.Intersects(bounds) {
			continue
		}
		cp.Reached = true
		reached++
		s.logger.Info("checkpoint reached", "id", cp.ID)
		if s.registrar != nil {
			s.registrar.RegisterCheckpoint()
		}
	}
	return reached
}

// Remaining returns how many checkpoints are still unreached
func (s *CheckpointSystem) Remaining() int {
	n := 0
	for _, cp := range s.stage.Checkpoints {
		if !cp.Reached {
			n++
		}
	}
	return n
}
