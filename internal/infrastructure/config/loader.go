package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocomotionFile is the tuning file name inside the config directory
const LocomotionFile = "locomotion.yaml"

// GameConfig holds all loaded configurations
type GameConfig struct {
	Locomotion *LocomotionConfig
	Stage      *StageConfig
}

// Loader loads game configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string {
	return l.basePath
}

// decode picks the codec from the file extension
func decode(name string, data []byte, out any) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	case ".json":
		return json.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported config format %q", path.Ext(name))
	}
}

// LoadLocomotion loads locomotion.yaml on top of the defaults and validates it
func (l *Loader) LoadLocomotion() (*LocomotionConfig, error) {
	return l.LoadLocomotionFile(LocomotionFile)
}

// LoadLocomotionFile loads a tuning file by name. Missing keys keep their
// default values.
func (l *Loader) LoadLocomotionFile(name string) (*LocomotionConfig, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cfg := DefaultLocomotionConfig()
	if err := decode(name, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", name, err)
	}

	return cfg, nil
}

// LoadStage loads a stage file, trying stages/<name>.json then .yaml
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var (
		data []byte
		file string
		err  error
	)
	for _, ext := range []string{".json", ".yaml"} {
		file = "stages/" + name + ext
		data, err = fs.ReadFile(l.fsys, file)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := decode(file, data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads the tuning file and the named stage
func (l *Loader) LoadAll(stage string) (*GameConfig, error) {
	locomotion, err := l.LoadLocomotion()
	if err != nil {
		return nil, err
	}

	st, err := l.LoadStage(stage)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Locomotion: locomotion,
		Stage:      st,
	}, nil
}
