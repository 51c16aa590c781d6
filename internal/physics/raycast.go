package physics

import (
	"math"

	"chunk-mesher/internal/profiling"
	"chunk-mesher/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 8.0
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// BlockSource is the block lookup a ray walks through.
type BlockSource interface {
	BlockAt(x, y, z int) world.BlockID
}

// Raycast walks the cells crossed by a ray from start along direction and
// returns the first block accepted by pickable whose entry distance lies in
// [minDist, maxDist]. Block (x, y, z) spans [x, x+1) on every axis. A nil
// pickable accepts every non-air block. AdjacentPosition is the cell the ray
// was in before entering the hit block.
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, blocks BlockSource, pickable func(world.BlockID) bool) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	if pickable == nil {
		pickable = func(id world.BlockID) bool { return id != world.BlockAir }
	}
	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()

	var cell, step [3]int
	var tMax, tDelta [3]float64
	for a := 0; a < 3; a++ {
		p := float64(start[a])
		d := float64(dir[a])
		cell[a] = int(math.Floor(p))
		switch {
		case d > 0:
			step[a] = 1
			tMax[a] = (float64(cell[a]+1) - p) / d
			tDelta[a] = 1 / d
		case d < 0:
			step[a] = -1
			tMax[a] = (p - float64(cell[a])) / -d
			tDelta[a] = -1 / d
		default:
			tMax[a] = math.Inf(1)
			tDelta[a] = math.Inf(1)
		}
	}

	prev := cell
	t := 0.0
	for t <= float64(maxDist) {
		if t >= float64(minDist) && pickable(blocks.BlockAt(cell[0], cell[1], cell[2])) {
			return RaycastResult{
				HitPosition:      cell,
				AdjacentPosition: prev,
				Distance:         float32(t),
				Hit:              true,
			}
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		prev = cell
		cell[axis] += step[axis]
		t = tMax[axis]
		tMax[axis] += tDelta[axis]
	}
	return RaycastResult{}
}
