package meshing

import (
	"chunk-mesher/internal/atlas"
	"chunk-mesher/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// faceContext is everything needed to emit one run.
type faceContext struct {
	x, y, z  float32 // world position of the run's first voxel
	n        int     // run length
	face     world.Face
	height   float32
	rect     atlas.Rect
	inv      float32 // V extent of one atlas tile
	page     int
	material Material
	col      Colour
}

func vtx(x, y, z, u, v float32, c Colour) Vertex {
	return Vertex{Pos: mgl32.Vec3{x, y, z}, UV: mgl32.Vec2{u, v}, Col: c}
}

// emitFace builds the quad of a face run. U repeats once per voxel of the
// run; side faces of short blocks only sample the matching top part of the
// tile.
func emitFace(fc faceContext) Quad {
	x, y, z := fc.x, fc.y, fc.z
	n := float32(fc.n)
	h := fc.height
	c := fc.col

	r := fc.rect
	r.U2 = r.U1 + n
	if fc.face.IsSide() && h < 1 {
		r.V2 = r.V1 + h*fc.inv
	}

	switch fc.face {
	case world.FaceTop:
		return Quad{V: [4]Vertex{
			vtx(x+n, y+h, z, r.U2, r.V1, c),
			vtx(x, y+h, z, r.U1, r.V1, c),
			vtx(x, y+h, z+1, r.U1, r.V2, c),
			vtx(x+n, y+h, z+1, r.U2, r.V2, c),
		}}
	case world.FaceBottom:
		return Quad{V: [4]Vertex{
			vtx(x+n, y, z+1, r.U2, r.V2, c),
			vtx(x, y, z+1, r.U1, r.V2, c),
			vtx(x, y, z, r.U1, r.V1, c),
			vtx(x+n, y, z, r.U2, r.V1, c),
		}}
	case world.FaceNorth:
		return Quad{V: [4]Vertex{
			vtx(x+n, y+h, z+1, r.U2, r.V1, c),
			vtx(x, y+h, z+1, r.U1, r.V1, c),
			vtx(x, y, z+1, r.U1, r.V2, c),
			vtx(x+n, y, z+1, r.U2, r.V2, c),
		}}
	case world.FaceSouth:
		return Quad{V: [4]Vertex{
			vtx(x+n, y, z, r.U1, r.V2, c),
			vtx(x, y, z, r.U2, r.V2, c),
			vtx(x, y+h, z, r.U2, r.V1, c),
			vtx(x+n, y+h, z, r.U1, r.V1, c),
		}}
	case world.FaceWest:
		return Quad{V: [4]Vertex{
			vtx(x, y+h, z+n, r.U2, r.V1, c),
			vtx(x, y+h, z, r.U1, r.V1, c),
			vtx(x, y, z, r.U1, r.V2, c),
			vtx(x, y, z+n, r.U2, r.V2, c),
		}}
	default: // east
		return Quad{V: [4]Vertex{
			vtx(x+1, y+h, z, r.U2, r.V1, c),
			vtx(x+1, y+h, z+n, r.U1, r.V1, c),
			vtx(x+1, y, z+n, r.U1, r.V2, c),
			vtx(x+1, y, z, r.U2, r.V2, c),
		}}
	}
}

// appendSprite appends the quads of a sprite run: one quad on the z+0.5
// plane spanning the whole run, then one quad per sprite on its x+0.5
// plane.
func appendSprite(dst []Quad, fc faceContext) []Quad {
	x, y, z := fc.x, fc.y, fc.z
	n := float32(fc.n)
	h := fc.height
	c := fc.col
	r := fc.rect

	u2 := r.U1 + n
	dst = append(dst, Quad{V: [4]Vertex{
		vtx(x, y, z+0.5, u2, r.V2, c),
		vtx(x, y+h, z+0.5, u2, r.V1, c),
		vtx(x+n, y+h, z+0.5, r.U1, r.V1, c),
		vtx(x+n, y, z+0.5, r.U1, r.V2, c),
	}})

	u2 = r.U1 + 1
	for i := 0; i < fc.n; i++ {
		xi := x + float32(i) + 0.5
		dst = append(dst, Quad{V: [4]Vertex{
			vtx(xi, y, z, r.U1, r.V2, c),
			vtx(xi, y+h, z, r.U1, r.V1, c),
			vtx(xi, y+h, z+1, u2, r.V1, c),
			vtx(xi, y, z+1, u2, r.V2, c),
		}})
	}
	return dst
}
