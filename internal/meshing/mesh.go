package meshing

import (
	"chunk-mesher/internal/world"
)

// Part is the geometry of one (page, material) bucket.
type Part struct {
	Page     int
	Material Material
	Vertices []Vertex
	Indices  []uint16
}

// ChunkMesh is the output of a build: non-empty parts ordered by page,
// then Solid, Sprite, Translucent.
type ChunkMesh struct {
	Coord      world.ChunkCoord
	Parts      []Part
	Overflowed bool
}

// Detach returns a copy that no longer shares storage with the builder.
func (m *ChunkMesh) Detach() *ChunkMesh {
	out := &ChunkMesh{
		Coord:      m.Coord,
		Parts:      make([]Part, len(m.Parts)),
		Overflowed: m.Overflowed,
	}
	for i, p := range m.Parts {
		out.Parts[i] = Part{
			Page:     p.Page,
			Material: p.Material,
			Vertices: append([]Vertex(nil), p.Vertices...),
			Indices:  append([]uint16(nil), p.Indices...),
		}
	}
	return out
}

// VertexCount sums vertices over all parts.
func (m *ChunkMesh) VertexCount() int {
	n := 0
	for _, p := range m.Parts {
		n += len(p.Vertices)
	}
	return n
}

// IndexCount sums indices over all parts.
func (m *ChunkMesh) IndexCount() int {
	n := 0
	for _, p := range m.Parts {
		n += len(p.Indices)
	}
	return n
}

// Empty reports whether the chunk produced no geometry.
func (m *ChunkMesh) Empty() bool {
	return len(m.Parts) == 0
}

// Part returns the part for a page and material, if present.
func (m *ChunkMesh) Part(page int, mat Material) (Part, bool) {
	for _, p := range m.Parts {
		if p.Page == page && p.Material == mat {
			return p, true
		}
	}
	return Part{}, false
}
