package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/gravshift/internal/application/game"
	"github.com/younwookim/gravshift/internal/application/replay"
	"github.com/younwookim/gravshift/internal/application/scene/playing"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
	"github.com/younwookim/gravshift/internal/infrastructure/logger"
)

func main() {
	configDir := flag.String("config", "", "Config directory to load and watch (default: embedded configs)")
	stageName := flag.String("stage", "demo", "Stage to play")
	recordPath := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayPath := flag.String("replay", "", "Play a recording back without a window and print the outcome")
	flag.Parse()

	if err := run(*configDir, *stageName, *recordPath, *replayPath); err != nil {
		logger.L().Error("game exited with error", "error", err)
		os.Exit(1)
	}
}

func run(configDir, stageName, recordPath, replayPath string) error {
	loader, err := newLoader(configDir)
	if err != nil {
		return err
	}
	cfg, err := loader.LoadAll(stageName)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(logger.Config{Level: cfg.Locomotion.Logging.Level, Format: cfg.Locomotion.Logging.Format})
	log := logger.L()

	if replayPath != "" {
		res, err := runReplay(cfg, replayPath, log)
		if err != nil {
			return err
		}
		log.Info("replay finished",
			"frames", res.Frames,
			"outcome", res.State,
			"locomotion", res.Locomotion,
			"position", res.Position,
			"down", res.Down,
			"checkpointsLeft", res.CheckpointsLeft,
		)
		return nil
	}

	scene, err := playing.New(cfg, recordPath, log)
	if err != nil {
		return err
	}

	// Hot reload only makes sense for configs on disk
	if configDir != "" {
		watcher, err := config.NewWatcher(configDir)
		if err != nil {
			log.Warn("config watch disabled", "error", err)
		} else {
			defer func() { _ = watcher.Close() }()
			scene.EnableHotReload(loader, watcher)
		}
	}

	display := cfg.Locomotion.Display
	g := game.New(scene, display)
	defer g.Close()

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Gravity Shift")
	ebiten.SetTPS(display.Framerate)

	return ebiten.RunGame(g)
}

// newLoader reads from dir, or from the embedded configs when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func runReplay(cfg *config.GameConfig, path string, log *slog.Logger) (replay.Result, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return replay.Result{}, err
	}
	log.Info("replaying", "path", path, "frames", len(data.Frames), "stage", data.Stage)
	return replay.Run(cfg.Locomotion, cfg.Stage, *data, log)
}
