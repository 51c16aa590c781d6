package world

// Heightmap stores, per (x,z) column, the y of the highest light-blocking
// voxel, or -1 when the column has none.
type Heightmap struct {
	sizeX, sizeZ int
	heights      []int16
}

// NewHeightmap creates a heightmap with every column unlit.
func NewHeightmap(sizeX, sizeZ int) *Heightmap {
	h := &Heightmap{
		sizeX:   sizeX,
		sizeZ:   sizeZ,
		heights: make([]int16, sizeX*sizeZ),
	}
	for i := range h.heights {
		h.heights[i] = -1
	}
	return h
}

// At returns the lit height of a column, -1 outside the map.
func (h *Heightmap) At(x, z int) int {
	if x < 0 || x >= h.sizeX || z < 0 || z >= h.sizeZ {
		return -1
	}
	return int(h.heights[z*h.sizeX+x])
}

func (h *Heightmap) set(x, z, y int) {
	h.heights[z*h.sizeX+x] = int16(y)
}

// update adjusts the column after the voxel at y changed. blocks reports
// whether the new voxel blocks light; below scans the column downwards
// from y-1 when the previous top was removed. Returns the old height.
func (h *Heightmap) update(x, y, z int, blocks bool, below func(y int) bool) int {
	cur := h.At(x, z)
	switch {
	case blocks && y > cur:
		h.set(x, z, y)
	case !blocks && y == cur:
		next := -1
		for yy := y - 1; yy >= 0; yy-- {
			if below(yy) {
				next = yy
				break
			}
		}
		h.set(x, z, next)
	}
	return cur
}
