package atlas

import (
	"fmt"

	"chunk-mesher/internal/world"
)

// Rect is a texture rectangle in atlas page coordinates. U runs across a
// tile (0..1, repeating); V selects the tile's slot within the page.
type Rect struct {
	U1, V1, U2, V2 float32
}

// Atlas is a 1D texture atlas: tiles are stacked vertically into pages of
// ElementsPerPage tiles each. Tile i lives on page i/ElementsPerPage.
type Atlas struct {
	count           int
	elementsPerPage int
	invElementSize  float32
}

// New lays out count tiles with elementsPerPage tiles per page.
func New(count, elementsPerPage int) (*Atlas, error) {
	if count <= 0 {
		return nil, fmt.Errorf("atlas: need at least one tile, got %d", count)
	}
	if elementsPerPage <= 0 {
		return nil, fmt.Errorf("atlas: invalid elements per page %d", elementsPerPage)
	}
	return &Atlas{
		count:           count,
		elementsPerPage: elementsPerPage,
		invElementSize:  1 / float32(elementsPerPage),
	}, nil
}

// Count returns the number of tiles.
func (a *Atlas) Count() int { return a.count }

// ElementsPerPage returns the number of tile slots on each page.
func (a *Atlas) ElementsPerPage() int { return a.elementsPerPage }

// InvElementSize is the V extent of one tile.
func (a *Atlas) InvElementSize() float32 { return a.invElementSize }

// PageCount returns the number of pages needed for every tile.
func (a *Atlas) PageCount() int {
	return (a.count + a.elementsPerPage - 1) / a.elementsPerPage
}

// Rect returns the rectangle and page of a tile. Out of range indices map
// to tile 0.
func (a *Atlas) Rect(index int) (Rect, int) {
	if index < 0 || index >= a.count {
		index = 0
	}
	page := index / a.elementsPerPage
	slot := index % a.elementsPerPage
	v1 := float32(slot) * a.invElementSize
	return Rect{U1: 0, V1: v1, U2: 1, V2: v1 + a.invElementSize}, page
}

// TextureIndexer resolves a block face to a tile index.
type TextureIndexer interface {
	TextureIndex(id world.BlockID, face world.Face) int
}

// BlockTextures answers per-block-face texture queries against an atlas.
// Both inputs must stay unchanged while meshes are being built.
type BlockTextures struct {
	blocks TextureIndexer
	atlas  *Atlas
}

// NewBlockTextures binds block texture indices to an atlas layout.
func NewBlockTextures(blocks TextureIndexer, a *Atlas) *BlockTextures {
	return &BlockTextures{blocks: blocks, atlas: a}
}

// TextureRect returns the rectangle and page of a block face.
func (t *BlockTextures) TextureRect(id world.BlockID, face world.Face) (Rect, int) {
	return t.atlas.Rect(t.blocks.TextureIndex(id, face))
}

// PageCount returns the atlas page count.
func (t *BlockTextures) PageCount() int { return t.atlas.PageCount() }

// InvElementSize returns the V extent of one tile.
func (t *BlockTextures) InvElementSize() float32 { return t.atlas.InvElementSize() }

// Atlas returns the underlying layout.
func (t *BlockTextures) Atlas() *Atlas { return t.atlas }
