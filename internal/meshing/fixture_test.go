package meshing

import (
	"testing"

	"chunk-mesher/internal/atlas"
	"chunk-mesher/internal/registry"
	"chunk-mesher/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

type fixture struct {
	reg *registry.Registry
	tex *atlas.BlockTextures
	w   *world.World
}

// newFixture creates an empty world of the given size with the built-in
// blocks and an atlas of elementsPerPage tiles per page.
func newFixture(t testing.TB, sx, sy, sz, elementsPerPage int) *fixture {
	t.Helper()
	reg := registry.Default()
	a, err := atlas.New(len(reg.TextureNames()), elementsPerPage)
	if err != nil {
		t.Fatalf("atlas.New: %v", err)
	}
	w, err := world.New(sx, sy, sz, reg.BlocksLight)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return &fixture{reg: reg, tex: atlas.NewBlockTextures(reg, a), w: w}
}

func (f *fixture) builder() *Builder {
	return NewBuilder(f.reg, f.tex)
}

func (f *fixture) build(coord world.ChunkCoord) *ChunkMesh {
	return f.builder().Build(f.w, coord, DefaultLighting()).Detach()
}

// partQuad is a quad together with the part it was found in.
type partQuad struct {
	Page     int
	Material Material
	Quad
}

func quadsOf(m *ChunkMesh) []partQuad {
	var out []partQuad
	for _, p := range m.Parts {
		for i := 0; i+VerticesPerQuad <= len(p.Vertices); i += VerticesPerQuad {
			var q Quad
			copy(q.V[:], p.Vertices[i:i+VerticesPerQuad])
			out = append(out, partQuad{Page: p.Page, Material: p.Material, Quad: q})
		}
	}
	return out
}

func (q Quad) normal() mgl32.Vec3 {
	a := q.V[1].Pos.Sub(q.V[0].Pos)
	b := q.V[2].Pos.Sub(q.V[0].Pos)
	return a.Cross(b).Normalize()
}

func (q Quad) centroid() mgl32.Vec3 {
	var c mgl32.Vec3
	for _, v := range q.V {
		c = c.Add(v.Pos)
	}
	return c.Mul(0.25)
}

// horizontalAt returns the quads lying entirely in the plane y.
func horizontalAt(qs []partQuad, y float32) []partQuad {
	var out []partQuad
	for _, q := range qs {
		flat := true
		for _, v := range q.V {
			if v.Pos.Y() != y {
				flat = false
				break
			}
		}
		if flat {
			out = append(out, q)
		}
	}
	return out
}
