// Package session wires one playable run together: the stage, the character
// body, its locomotion, physics, checkpoints and the win/loss flow. Both the
// interactive scene and headless replays drive a Session.
package session

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/gravshift/internal/application/flow"
	"github.com/younwookim/gravshift/internal/application/system"
	"github.com/younwookim/gravshift/internal/domain/entity"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
)

// Session is a single run on one stage
type Session struct {
	cfg      *config.LocomotionConfig
	stageCfg *config.StageConfig
	logger   *slog.Logger

	stage       *entity.Stage
	body        *entity.Body
	character   *system.Character
	physics     *system.PhysicsSystem
	checkpoints *system.CheckpointSystem
	flow        *flow.Manager

	accumulator float64
	frame       int
	steps       int

	// OnReset is called after Restart rebuilt the run, so listeners can
	// rebind callbacks on the new flow manager
	OnReset func(*Session)
}

// New builds a run from the tuning and the stage description
func New(cfg *config.LocomotionConfig, stageCfg *config.StageConfig, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		cfg:      cfg,
		stageCfg: stageCfg,
		logger:   logger,
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build() error {
	stage, err := system.LoadStage(s.stageCfg)
	if err != nil {
		return fmt.Errorf("failed to build stage %s: %w", s.stageCfg.ID, err)
	}

	body := entity.NewBody(stage.Spawn, mgl64.Vec3{s.cfg.Body.HalfWidth, s.cfg.Body.HalfHeight, s.cfg.Body.HalfWidth})
	manager := flow.NewManager(stage.TimeLimit, len(stage.Checkpoints), s.logger)

	s.stage = stage
	s.body = body
	s.flow = manager
	s.character = system.NewCharacter(s.cfg, body, stage, nil, manager, s.logger)
	s.physics = system.NewPhysicsSystem(stage, s.logger)
	s.checkpoints = system.NewCheckpointSystem(stage, manager, s.logger)
	s.accumulator = 0
	s.frame = 0
	s.steps = 0
	return nil
}

// Restart rebuilds the run from the same stage description
func (s *Session) Restart() error {
	if err := s.build(); err != nil {
		return err
	}
	s.logger.Info("session restarted", "stage", s.stageCfg.ID)
	if s.OnReset != nil {
		s.OnReset(s)
	}
	return nil
}

// SetConfig swaps the tuning without restarting the run
func (s *Session) SetConfig(cfg *config.LocomotionConfig) {
	s.cfg = cfg
	s.character.SetConfig(cfg)
}

// Frame advances the run by one rendered frame of dt seconds. The logic tick
// runs once, then physics catches up in fixed steps.
func (s *Session) Frame(input system.InputState, dt float64) {
	if s.flow.State().Finished() {
		return
	}
	s.frame++

	s.character.Tick(input, dt)

	fixed := s.cfg.Simulation.FixedTimestep
	s.accumulator += dt
	steps := 0
	for s.accumulator >= fixed && steps < s.cfg.Simulation.MaxSteps {
		s.character.FixedTick(fixed)
		s.physics.Step(s.body, fixed)
		s.character.PostStep()
		s.accumulator -= fixed
		steps++
	}
	// Drop the backlog instead of spiralling after a long stall
	if steps == s.cfg.Simulation.MaxSteps {
		s.accumulator = 0
	}
	s.steps += steps

	s.checkpoints.Update(s.body)
	s.flow.Update(dt)
}

// FrameCount returns the number of frames simulated
func (s *Session) FrameCount() int { return s.frame }

// StepCount returns the number of fixed physics steps simulated
func (s *Session) StepCount() int { return s.steps }

func (s *Session) Stage() *entity.Stage { return s.stage }

func (s *Session) Body() *entity.Body { return s.body }

func (s *Session) Character() *system.Character { return s.character }

func (s *Session) Flow() *flow.Manager { return s.flow }

func (s *Session) Checkpoints() *system.CheckpointSystem { return s.checkpoints }

func (s *Session) StageConfig() *config.StageConfig { return s.stageCfg }

func (s *Session) Config() *config.LocomotionConfig { return s.cfg }
