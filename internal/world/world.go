package world

import (
	"fmt"
	"sync"
)

// World is a finite voxel volume of SizeX x SizeY x SizeZ blocks starting at
// the origin, stored as 16^3 chunks with a column heightmap kept in sync.
type World struct {
	SizeX, SizeY, SizeZ int

	mu          sync.RWMutex
	store       *ChunkStore
	heights     *Heightmap
	blocksLight func(BlockID) bool
}

// New creates an empty world. blocksLight decides which blocks stop
// sunlight; a nil predicate treats every non-air block as blocking.
func New(sizeX, sizeY, sizeZ int, blocksLight func(BlockID) bool) (*World, error) {
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("world: invalid size %dx%dx%d", sizeX, sizeY, sizeZ)
	}
	if sizeY > 1<<15 {
		return nil, fmt.Errorf("world: height %d exceeds heightmap range", sizeY)
	}
	if blocksLight == nil {
		blocksLight = func(id BlockID) bool { return id != BlockAir }
	}
	return &World{
		SizeX:       sizeX,
		SizeY:       sizeY,
		SizeZ:       sizeZ,
		store:       NewChunkStore(),
		heights:     NewHeightmap(sizeX, sizeZ),
		blocksLight: blocksLight,
	}, nil
}

// InBounds reports whether the position lies inside the world.
func (w *World) InBounds(x, y, z int) bool {
	return x >= 0 && x < w.SizeX && y >= 0 && y < w.SizeY && z >= 0 && z < w.SizeZ
}

// BlockAt returns the block at the position; outside the world it is air.
func (w *World) BlockAt(x, y, z int) BlockID {
	if !w.InBounds(x, y, z) {
		return BlockAir
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store.Get(x, y, z)
}

// Set places a block, keeping the heightmap current and flagging every
// chunk whose geometry or lighting may have changed. Reports whether the
// world changed.
func (w *World) Set(x, y, z int, id BlockID) bool {
	if !w.InBounds(x, y, z) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.store.Set(x, y, z, id) {
		return false
	}
	old := w.heights.update(x, y, z, w.blocksLight(id), func(yy int) bool {
		return w.blocksLight(w.store.Get(x, yy, z))
	})
	if cur := w.heights.At(x, z); cur != old {
		w.markLightChanged(x, z, min(old, cur), max(old, cur))
	}
	return true
}

// markLightChanged dirties the chunks of the column and its four side
// neighbours between the two lit heights. Faces of a column below its
// old and new heights keep their lighting.
func (w *World) markLightChanged(x, z, lo, hi int) {
	lo = max(lo, 0)
	// side faces read one voxel above the adjusted height
	hi = min(hi+1, w.SizeY-1)
	cols := [5][2]int{{x, z}, {x - 1, z}, {x + 1, z}, {x, z - 1}, {x, z + 1}}
	for _, c := range cols {
		if c[0] < 0 || c[0] >= w.SizeX || c[1] < 0 || c[1] >= w.SizeZ {
			continue
		}
		for cy := floorDiv(lo, ChunkSize); cy <= floorDiv(hi, ChunkSize); cy++ {
			coord := ChunkCoord{X: floorDiv(c[0], ChunkSize), Y: cy, Z: floorDiv(c[1], ChunkSize)}
			if ch := w.store.GetChunk(coord, false); ch != nil {
				ch.MarkDirty()
			}
		}
	}
}

// LitHeight returns the y of the highest light-blocking voxel in the
// column, or -1.
func (w *World) LitHeight(x, z int) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.heights.At(x, z)
}

// LitBlock returns the block sitting at the column's lit height, or air for
// an unlit column.
func (w *World) LitBlock(x, z int) BlockID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	h := w.heights.At(x, z)
	if h < 0 {
		return BlockAir
	}
	return w.store.Get(x, h, z)
}

// RecalculateHeightmap rebuilds every column from scratch.
func (w *World) RecalculateHeightmap() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.recalculateLocked()
}

// Bulk runs fill with a setter that skips heightmap maintenance, then
// rebuilds the heightmap once. Out-of-world writes are ignored.
func (w *World) Bulk(fill func(set func(x, y, z int, id BlockID))) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fill(func(x, y, z int, id BlockID) {
		if w.InBounds(x, y, z) {
			w.store.Set(x, y, z, id)
		}
	})
	w.recalculateLocked()
}

func (w *World) recalculateLocked() {
	for x := 0; x < w.SizeX; x++ {
		for z := 0; z < w.SizeZ; z++ {
			h := -1
			for y := w.SizeY - 1; y >= 0; y-- {
				if w.blocksLight(w.store.Get(x, y, z)) {
					h = y
					break
				}
			}
			w.heights.set(x, z, h)
		}
	}
}

// ChunksX returns the number of chunks along x (and likewise for y, z).
func (w *World) ChunksX() int { return (w.SizeX + ChunkSize - 1) / ChunkSize }
func (w *World) ChunksY() int { return (w.SizeY + ChunkSize - 1) / ChunkSize }
func (w *World) ChunksZ() int { return (w.SizeZ + ChunkSize - 1) / ChunkSize }

// ChunkCoords lists every chunk position of the world in y, z, x order.
func (w *World) ChunkCoords() []ChunkCoord {
	out := make([]ChunkCoord, 0, w.ChunksX()*w.ChunksY()*w.ChunksZ())
	for cy := 0; cy < w.ChunksY(); cy++ {
		for cz := 0; cz < w.ChunksZ(); cz++ {
			for cx := 0; cx < w.ChunksX(); cx++ {
				out = append(out, ChunkCoord{X: cx, Y: cy, Z: cz})
			}
		}
	}
	return out
}

// Chunk returns the stored chunk, or nil when the chunk was never written.
func (w *World) Chunk(coord ChunkCoord) *Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store.GetChunk(coord, false)
}

// DirtyChunks returns the coordinates of chunks that need re-meshing.
func (w *World) DirtyChunks() []ChunkCoord {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []ChunkCoord
	for _, c := range w.store.AllChunks() {
		if c.IsDirty() {
			out = append(out, c.Coord)
		}
	}
	return out
}

// MarkClean clears the dirty flag of a chunk once a rebuild of the given
// version is queued. Reports false, leaving the chunk dirty, when the chunk
// changed since that version.
func (w *World) MarkClean(coord ChunkCoord, version uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	c := w.store.GetChunk(coord, false)
	if c == nil || c.Version() != version {
		return false
	}
	c.SetClean()
	return true
}

// MarkDirty requests a rebuild of a chunk, e.g. after a failed upload.
func (w *World) MarkDirty(coord ChunkCoord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if c := w.store.GetChunk(coord, false); c != nil {
		c.MarkDirty()
	}
}

// MarkAllDirty requests a rebuild of every stored chunk, e.g. after the
// texture layout or lighting changed.
func (w *World) MarkAllDirty() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.store.AllChunks() {
		c.MarkDirty()
	}
}

// ChunkVersion returns the modification counter of a chunk, 0 if absent.
func (w *World) ChunkVersion(coord ChunkCoord) uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if c := w.store.GetChunk(coord, false); c != nil {
		return c.Version()
	}
	return 0
}
