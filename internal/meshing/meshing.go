// Package meshing turns 16x16x16 chunks of block ids into indexed,
// textured, vertex-coloured triangle geometry. Faces are merged into runs
// along one axis, coloured by sunlight or shadow from the world heightmap,
// and batched per atlas page and material.
package meshing

import (
	"chunk-mesher/internal/atlas"
	"chunk-mesher/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Volume answers voxel and heightmap queries in world coordinates.
// Positions outside the world read as air.
type Volume interface {
	InBounds(x, y, z int) bool
	BlockAt(x, y, z int) world.BlockID
	// LitHeight is the y of the highest light-blocking voxel of the
	// column, -1 when there is none.
	LitHeight(x, z int) int
	// LitBlock is the block at LitHeight.
	LitBlock(x, z int) world.BlockID
}

// BlockInfo describes block properties the mesher needs.
type BlockInfo interface {
	IsTranslucent(id world.BlockID) bool
	IsSprite(id world.BlockID) bool
	Height(id world.BlockID) float32
	IsFaceHidden(id, neighbour world.BlockID, face world.Face) bool
}

// TextureLookup resolves block faces to atlas rectangles.
type TextureLookup interface {
	TextureRect(id world.BlockID, face world.Face) (atlas.Rect, int)
	PageCount() int
	InvElementSize() float32
}

// Material selects the geometry bucket a face goes into.
type Material uint8

const (
	Solid Material = iota
	Translucent
	Sprite

	MaterialCount
)

// DrawOrder is the order parts are gathered and drawn within a page.
var DrawOrder = [MaterialCount]Material{Solid, Sprite, Translucent}

func (m Material) String() string {
	switch m {
	case Solid:
		return "solid"
	case Translucent:
		return "translucent"
	case Sprite:
		return "sprite"
	}
	return "material?"
}

func materialOf(info BlockInfo, id world.BlockID) Material {
	switch {
	case info.IsSprite(id):
		return Sprite
	case info.IsTranslucent(id):
		return Translucent
	}
	return Solid
}

// Vertex is the packed vertex layout: position, texture coordinate and
// RGBA colour.
type Vertex struct {
	Pos mgl32.Vec3
	UV  mgl32.Vec2
	Col Colour
}

// Quad is four vertices in counter-clockwise order seen from the front.
type Quad struct {
	V [4]Vertex
}

// VerticesPerQuad and IndicesPerQuad size bucket arrays.
const (
	VerticesPerQuad = 4
	IndicesPerQuad  = 6
)

// MaxVertices is the number of vertices addressable by 16 bit indices.
const MaxVertices = 1 << 16
