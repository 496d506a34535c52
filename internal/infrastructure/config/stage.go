package config

import "fmt"

// StageConfig is the root config for stage JSON files.
//
// Layers are horizontal slices from bottom (y=0) to top. Each slice is a list
// of rows along Z, each row a string of tile characters along X.
type StageConfig struct {
	ID          string                       `json:"id" yaml:"id"`
	Name        string                       `json:"name" yaml:"name"`
	Size        StageSizeConfig              `json:"size" yaml:"size"`
	PlayerSpawn PositionConfig               `json:"playerSpawn" yaml:"playerSpawn"`
	TimeLimit   float64                      `json:"timeLimit" yaml:"timeLimit"` // seconds, 0 = unlimited
	Layers      [][]string                   `json:"layers" yaml:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping" yaml:"tileMapping"`
	Checkpoints []CheckpointConfig           `json:"checkpoints" yaml:"checkpoints"`
}

type StageSizeConfig struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	Depth  int `json:"depth" yaml:"depth"`
}

type PositionConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

type TileMappingConfig struct {
	Type  string `json:"type" yaml:"type"`
	Solid bool   `json:"solid" yaml:"solid"`
}

// CheckpointConfig is a trigger box given by its minimum corner and size
type CheckpointConfig struct {
	ID   string         `json:"id" yaml:"id"`
	Min  PositionConfig `json:"min" yaml:"min"`
	Size PositionConfig `json:"size" yaml:"size"`
}

// Validate checks that the layer grid matches the declared size
func (s *StageConfig) Validate() error {
	if s.Size.Width <= 0 || s.Size.Height <= 0 || s.Size.Depth <= 0 {
		return fmt.Errorf("%w: stage %s has empty size", ErrInvalidConfig, s.ID)
	}
	if len(s.Layers) > s.Size.Height {
		return fmt.Errorf("%w: stage %s has %d layers, height is %d", ErrInvalidConfig, s.ID, len(s.Layers), s.Size.Height)
	}
	for y, layer := range s.Layers {
		if len(layer) > s.Size.Depth {
			return fmt.Errorf("%w: stage %s layer %d has %d rows, depth is %d", ErrInvalidConfig, s.ID, y, len(layer), s.Size.Depth)
		}
		for z, row := range layer {
			if len(row) > s.Size.Width {
				return fmt.Errorf("%w: stage %s layer %d row %d is wider than %d", ErrInvalidConfig, s.ID, y, z, s.Size.Width)
			}
		}
	}
	if s.TimeLimit < 0 {
		return fmt.Errorf("%w: stage %s has negative time limit", ErrInvalidConfig, s.ID)
	}
	return nil
}
