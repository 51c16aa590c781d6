package world

const (
	// ChunkSize is the edge length of a cubic chunk.
	ChunkSize = 16
	// ChunkVolume is the number of voxels in a chunk.
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkCoord addresses a chunk in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

// Origin returns the world position of the chunk's minimum corner.
func (c ChunkCoord) Origin() (x, y, z int) {
	return c.X * ChunkSize, c.Y * ChunkSize, c.Z * ChunkSize
}

// Chunk represents a 16x16x16 block of voxels. Storage is allocated on the
// first non-air write and released again when the chunk empties.
type Chunk struct {
	Coord   ChunkCoord
	blocks  []BlockID
	count   int
	version uint64
	dirty   bool
}

// NewChunk creates a new chunk at the specified chunk coordinates
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{
		Coord: coord,
		dirty: true,
	}
}

// ChunkIndex converts local coordinates to a flat index, x fastest.
func ChunkIndex(x, y, z int) int {
	return (y*ChunkSize+z)*ChunkSize + x
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// GetBlock returns the block at the specified local coordinates
func (c *Chunk) GetBlock(x, y, z int) BlockID {
	if c.blocks == nil || !inChunk(x, y, z) {
		return BlockAir
	}
	return c.blocks[ChunkIndex(x, y, z)]
}

// SetBlock sets the block at the specified local coordinates and reports
// whether the stored value changed.
func (c *Chunk) SetBlock(x, y, z int, id BlockID) bool {
	if !inChunk(x, y, z) {
		return false
	}
	if c.blocks == nil {
		if id == BlockAir {
			return false
		}
		c.blocks = make([]BlockID, ChunkVolume)
	}

	idx := ChunkIndex(x, y, z)
	old := c.blocks[idx]
	if old == id {
		return false
	}
	c.blocks[idx] = id
	switch {
	case old == BlockAir:
		c.count++
	case id == BlockAir:
		c.count--
	}
	if c.count == 0 {
		c.blocks = nil
	}
	c.version++
	c.dirty = true
	return true
}

// IsEmpty reports whether every voxel is air.
func (c *Chunk) IsEmpty() bool {
	return c.count == 0
}

// Count returns the number of non-air voxels.
func (c *Chunk) Count() int {
	return c.count
}

// Version increases on every modification.
func (c *Chunk) Version() uint64 {
	return c.version
}

// IsDirty returns whether the chunk needs re-meshing
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// MarkDirty flags the chunk for re-meshing without changing its contents.
// Used when a neighbour changes across a shared border.
func (c *Chunk) MarkDirty() {
	c.dirty = true
	c.version++
}

// SetClean marks the chunk as clean
func (c *Chunk) SetClean() {
	c.dirty = false
}
