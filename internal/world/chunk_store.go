package world

import (
	"sort"
	"sync"
)

// ChunkStore manages the storage and retrieval of chunks.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// GetChunk returns the chunk at the specified chunk coordinates.
// If the chunk doesn't exist and create is true, it will be created empty.
func (cs *ChunkStore) GetChunk(coord ChunkCoord, create bool) *Chunk {
	cs.mu.RLock()
	chunk, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	if !exists && create {
		cs.mu.Lock()
		// Another goroutine might have created it while we were waiting for the lock
		if existing, ok := cs.chunks[coord]; ok {
			cs.mu.Unlock()
			return existing
		}
		chunk = NewChunk(coord)
		cs.chunks[coord] = chunk
		cs.modCount++
		cs.mu.Unlock()
	}
	return chunk
}

// GetChunkFromBlockCoords returns the chunk containing the block at the specified world coordinates.
func (cs *ChunkStore) GetChunkFromBlockCoords(x, y, z int, create bool) *Chunk {
	return cs.GetChunk(ChunkCoord{
		X: floorDiv(x, ChunkSize),
		Y: floorDiv(y, ChunkSize),
		Z: floorDiv(z, ChunkSize),
	}, create)
}

// Get returns the block at the specified world coordinates.
func (cs *ChunkStore) Get(x, y, z int) BlockID {
	chunk := cs.GetChunkFromBlockCoords(x, y, z, false)
	if chunk == nil {
		return BlockAir
	}
	return chunk.GetBlock(mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize))
}

// Set sets the block at the specified world coordinates and reports whether
// anything changed. Neighbour chunks sharing the touched border are marked
// dirty since their border faces may change visibility.
func (cs *ChunkStore) Set(x, y, z int, id BlockID) bool {
	chunk := cs.GetChunkFromBlockCoords(x, y, z, id != BlockAir)
	if chunk == nil {
		return false
	}

	localX := mod(x, ChunkSize)
	localY := mod(y, ChunkSize)
	localZ := mod(z, ChunkSize)
	if !chunk.SetBlock(localX, localY, localZ, id) {
		return false
	}

	if localX == 0 {
		cs.markDirty(x-1, y, z)
	} else if localX == ChunkSize-1 {
		cs.markDirty(x+1, y, z)
	}
	if localY == 0 {
		cs.markDirty(x, y-1, z)
	} else if localY == ChunkSize-1 {
		cs.markDirty(x, y+1, z)
	}
	if localZ == 0 {
		cs.markDirty(x, y, z-1)
	} else if localZ == ChunkSize-1 {
		cs.markDirty(x, y, z+1)
	}
	return true
}

func (cs *ChunkStore) markDirty(x, y, z int) {
	if nb := cs.GetChunkFromBlockCoords(x, y, z, false); nb != nil {
		nb.MarkDirty()
	}
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// AllChunks returns every stored chunk ordered by y, z, x.
func (cs *ChunkStore) AllChunks() []*Chunk {
	cs.mu.RLock()
	out := make([]*Chunk, 0, len(cs.chunks))
	for _, c := range cs.chunks {
		out = append(out, c)
	}
	cs.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Coord, out[j].Coord
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
