package world

const snapSize = ChunkSize + 2

// Snapshot is an immutable copy of one chunk plus a one voxel border and
// the lit heights of the columns it covers. It answers the same queries as
// World, so a mesh can be built from it on any goroutine while the world
// keeps changing.
type Snapshot struct {
	Coord   ChunkCoord
	Version uint64

	sizeX, sizeY, sizeZ int
	ox, oy, oz          int

	blocks    [snapSize * snapSize * snapSize]BlockID
	heights   [snapSize * snapSize]int16
	litBlocks [snapSize * snapSize]BlockID
}

// Snapshot copies the chunk at coord and its border under the world lock.
func (w *World) Snapshot(coord ChunkCoord) *Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	x0, y0, z0 := coord.Origin()
	s := &Snapshot{
		Coord: coord,
		sizeX: w.SizeX,
		sizeY: w.SizeY,
		sizeZ: w.SizeZ,
		ox:    x0 - 1,
		oy:    y0 - 1,
		oz:    z0 - 1,
	}
	if c := w.store.GetChunk(coord, false); c != nil {
		s.Version = c.Version()
	}

	for ly := 0; ly < snapSize; ly++ {
		for lz := 0; lz < snapSize; lz++ {
			for lx := 0; lx < snapSize; lx++ {
				x, y, z := s.ox+lx, s.oy+ly, s.oz+lz
				if !w.InBounds(x, y, z) {
					continue
				}
				s.blocks[(ly*snapSize+lz)*snapSize+lx] = w.store.Get(x, y, z)
			}
		}
	}
	for lz := 0; lz < snapSize; lz++ {
		for lx := 0; lx < snapSize; lx++ {
			x, z := s.ox+lx, s.oz+lz
			h := w.heights.At(x, z)
			s.heights[lz*snapSize+lx] = int16(h)
			if h >= 0 {
				s.litBlocks[lz*snapSize+lx] = w.store.Get(x, h, z)
			}
		}
	}
	return s
}

// InBounds reports whether the position lies inside the source world.
func (s *Snapshot) InBounds(x, y, z int) bool {
	return x >= 0 && x < s.sizeX && y >= 0 && y < s.sizeY && z >= 0 && z < s.sizeZ
}

// BlockAt returns the copied block; positions outside the copy read as air.
func (s *Snapshot) BlockAt(x, y, z int) BlockID {
	lx, ly, lz := x-s.ox, y-s.oy, z-s.oz
	if lx < 0 || lx >= snapSize || ly < 0 || ly >= snapSize || lz < 0 || lz >= snapSize {
		return BlockAir
	}
	return s.blocks[(ly*snapSize+lz)*snapSize+lx]
}

func (s *Snapshot) column(x, z int) (int, bool) {
	lx, lz := x-s.ox, z-s.oz
	if lx < 0 || lx >= snapSize || lz < 0 || lz >= snapSize {
		return 0, false
	}
	return lz*snapSize + lx, true
}

// LitHeight returns the copied lit height, -1 outside the copy.
func (s *Snapshot) LitHeight(x, z int) int {
	i, ok := s.column(x, z)
	if !ok {
		return -1
	}
	return int(s.heights[i])
}

// LitBlock returns the block at the copied lit height.
func (s *Snapshot) LitBlock(x, z int) BlockID {
	i, ok := s.column(x, z)
	if !ok {
		return BlockAir
	}
	return s.litBlocks[i]
}
