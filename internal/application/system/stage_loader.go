package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/gravshift/internal/domain/entity"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stage := entity.NewStage(cfg.Size.Width, cfg.Size.Height, cfg.Size.Depth)
	for y, layer := range cfg.Layers {
		for z, row := range layer {
			for x, char := range row {
				mapping, ok := cfg.TileMapping[string(char)]
				if !ok {
					return nil, fmt.Errorf("%w: stage %s has unmapped tile %q at (%d, %d, %d)",
						config.ErrInvalidConfig, cfg.ID, char, x, y, z)
				}

				var blockType entity.BlockType
				switch mapping.Type {
				case "wall":
					blockType = entity.BlockWall
				default:
					blockType = entity.BlockEmpty
				}

				stage.SetBlock(x, y, z, entity.Block{
					Type:  blockType,
					Solid: mapping.Solid,
				})
			}
		}
	}

	stage.Spawn = toVec(cfg.PlayerSpawn)
	stage.TimeLimit = cfg.TimeLimit
	for _, cp := range cfg.Checkpoints {
		lo := toVec(cp.Min)
		stage.Checkpoints = append(stage.Checkpoints, entity.Checkpoint{
			ID:     cp.ID,
			Bounds: entity.AABB{Min: lo, Max: lo.Add(toVec(cp.Size))},
		})
	}

	return stage, nil
}

func toVec(p config.PositionConfig) mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}
