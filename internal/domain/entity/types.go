package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BlockType represents the type of a stage block
type BlockType int

const (
	BlockEmpty BlockType = iota
	BlockWall
)

// Block represents a single unit cube in the stage
type Block struct {
	Type  BlockType
	Solid bool
}

// AABB is an axis-aligned box in world units
type AABB struct {
	Min, Max mgl64.Vec3
}

// AABBAround returns the box centered on c with half size h
func AABBAround(c, h mgl64.Vec3) AABB {
	return AABB{Min: c.Sub(h), Max: c.Add(h)}
}

// Intersects reports whether two boxes overlap with positive volume
func (a AABB) Intersects(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] <= b.Min[i] || b.Max[i] <= a.Min[i] {
			return false
		}
	}
	return true
}

// Translate returns the box moved by d
func (a AABB) Translate(d mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// Checkpoint is a trigger volume that is consumed the first time the
// character overlaps it
type Checkpoint struct {
	ID      string
	Bounds  AABB
	Reached bool
}

// Stage is a voxel grid of unit blocks. Block (x, y, z) occupies
// [x, x+1) × [y, y+1) × [z, z+1) in world units.
type Stage struct {
	Width  int // blocks along X
	Height int // blocks along Y
	Depth  int // blocks along Z
	Blocks []Block

	Spawn       mgl64.Vec3
	Checkpoints []Checkpoint
	TimeLimit   float64 // seconds, 0 = unlimited
}

// NewStage creates an empty stage of the given size
func NewStage(width, height, depth int) *Stage {
	return &Stage{
		Width:  width,
		Height: height,
		Depth:  depth,
		Blocks: make([]Block, width*height*depth),
	}
}

func (s *Stage) index(x, y, z int) (int, bool) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height || z < 0 || z >= s.Depth {
		return 0, false
	}
	return x + z*s.Width + y*s.Width*s.Depth, true
}

// GetBlock returns the block at block coordinates. Everything outside the
// grid is empty space, so the character can fall off the level.
func (s *Stage) GetBlock(x, y, z int) Block {
	i, ok := s.index(x, y, z)
	if !ok {
		return Block{Type: BlockEmpty}
	}
	return s.Blocks[i]
}

// SetBlock stores b at block coordinates; out-of-range writes are dropped
func (s *Stage) SetBlock(x, y, z int, b Block) {
	if i, ok := s.index(x, y, z); ok {
		s.Blocks[i] = b
	}
}

// IsSolid checks if the block at block coordinates is solid
func (s *Stage) IsSolid(x, y, z int) bool {
	return s.GetBlock(x, y, z).Solid
}

// IsSolidAt checks if the block containing world point p is solid
func (s *Stage) IsSolidAt(p mgl64.Vec3) bool {
	return s.IsSolid(int(math.Floor(p[0])), int(math.Floor(p[1])), int(math.Floor(p[2])))
}

// CollidesAABB checks if any solid block overlaps box
func (s *Stage) CollidesAABB(box AABB) bool {
	minX, maxX := cellRange(box.Min[0], box.Max[0])
	minY, maxY := cellRange(box.Min[1], box.Max[1])
	minZ, maxZ := cellRange(box.Min[2], box.Max[2])

	for y := minY; y <= maxY; y++ {
		for z := minZ; z <= maxZ; z++ {
			for x := minX; x <= maxX; x++ {
				if s.IsSolid(x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// cellRange returns the block indices a half-open span [lo, hi) touches
func cellRange(lo, hi float64) (int, int) {
	first := int(math.Floor(lo))
	last := int(math.Ceil(hi)) - 1
	if last < first {
		last = first
	}
	return first, last
}

// Raycast walks the grid from origin along dir (voxel DDA) and returns the
// distance to the first solid block within maxDist. An origin inside a solid
// block hits at distance 0.
func (s *Stage) Raycast(origin, dir mgl64.Vec3, maxDist float64) (float64, bool) {
	l := dir.Len()
	if l < 1e-9 || maxDist < 0 {
		return 0, false
	}
	dir = dir.Mul(1 / l)

	x := int(math.Floor(origin[0]))
	y := int(math.Floor(origin[1]))
	z := int(math.Floor(origin[2]))

	stepX, tMaxX, tDeltaX := ddaAxis(origin[0], dir[0], x)
	stepY, tMaxY, tDeltaY := ddaAxis(origin[1], dir[1], y)
	stepZ, tMaxZ, tDeltaZ := ddaAxis(origin[2], dir[2], z)

	distance := 0.0
	for distance <= maxDist {
		if s.IsSolid(x, y, z) {
			return distance, true
		}

		switch {
		case tMaxX <= tMaxY && tMaxX <= tMaxZ:
			x += stepX
			distance = tMaxX
			tMaxX += tDeltaX
		case tMaxY <= tMaxX && tMaxY <= tMaxZ:
			y += stepY
			distance = tMaxY
			tMaxY += tDeltaY
		default:
			z += stepZ
			distance = tMaxZ
			tMaxZ += tDeltaZ
		}
	}
	return 0, false
}

func ddaAxis(origin, dir float64, cell int) (step int, tMax float64, tDelta float64) {
	if math.Abs(dir) < 1e-9 {
		return 0, math.Inf(1), math.Inf(1)
	}
	if dir > 0 {
		return 1, (float64(cell+1) - origin) / dir, 1.0 / dir
	}
	inv := -dir
	return -1, (origin - float64(cell)) / inv, 1.0 / inv
}
