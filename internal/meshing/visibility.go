package meshing

import (
	"chunk-mesher/internal/world"
)

// isFaceVisible reports whether the face of block id at (x,y,z) is not
// covered by its neighbour. Neighbours outside the world read as air.
func isFaceVisible(vol Volume, info BlockInfo, id world.BlockID, x, y, z int, face world.Face) bool {
	dx, dy, dz := face.Offset()
	return !info.IsFaceHidden(id, vol.BlockAt(x+dx, y+dy, z+dz), face)
}
