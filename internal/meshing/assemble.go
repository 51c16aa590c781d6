package meshing

import (
	"fmt"

	"chunk-mesher/internal/profiling"
	"chunk-mesher/internal/world"
)

// Handle identifies an uploaded vertex/index buffer pair.
type Handle uint32

// Uploader creates, draws and frees GPU buffers. Implementations are only
// called from the thread that owns the graphics context.
type Uploader interface {
	Upload(vertices []Vertex, indices []uint16) (Handle, error)
	Draw(h Handle, indexCount int)
	Release(h Handle)
}

// Pass selects which materials are drawn.
type Pass uint8

const (
	PassOpaque      Pass = iota // solid and sprite geometry
	PassTranslucent             // blended geometry, drawn after every opaque pass
)

func (p Pass) includes(m Material) bool {
	if p == PassTranslucent {
		return m == Translucent
	}
	return m != Translucent
}

// DrawRecord is one uploaded part.
type DrawRecord struct {
	Page       int
	Material   Material
	Handle     Handle
	IndexCount int
}

// ChunkDrawInfo is the uploaded form of a ChunkMesh.
type ChunkDrawInfo struct {
	Coord   world.ChunkCoord
	Records []DrawRecord
}

// Assemble uploads every part of the mesh. If any upload fails, the
// handles created so far are released and the error is returned.
func Assemble(mesh *ChunkMesh, up Uploader) (ChunkDrawInfo, error) {
	defer profiling.Track("meshing.Assemble")()

	info := ChunkDrawInfo{
		Coord:   mesh.Coord,
		Records: make([]DrawRecord, 0, len(mesh.Parts)),
	}
	for _, p := range mesh.Parts {
		if len(p.Indices) == 0 {
			continue
		}
		h, err := up.Upload(p.Vertices, p.Indices)
		if err != nil {
			info.Release(up)
			return ChunkDrawInfo{Coord: mesh.Coord}, fmt.Errorf("upload chunk %v page %d %v: %w", mesh.Coord, p.Page, p.Material, err)
		}
		info.Records = append(info.Records, DrawRecord{
			Page:       p.Page,
			Material:   p.Material,
			Handle:     h,
			IndexCount: len(p.Indices),
		})
	}
	return info, nil
}

// Draw issues every record of the pass, across all pages.
func (d *ChunkDrawInfo) Draw(up Uploader, pass Pass) {
	for _, r := range d.Records {
		if pass.includes(r.Material) {
			up.Draw(r.Handle, r.IndexCount)
		}
	}
}

// DrawPage issues the records of one atlas page for the pass. Callers bind
// the page texture first.
func (d *ChunkDrawInfo) DrawPage(up Uploader, pass Pass, page int) {
	for _, r := range d.Records {
		if r.Page == page && pass.includes(r.Material) {
			up.Draw(r.Handle, r.IndexCount)
		}
	}
}

// Release frees every handle and clears the records.
func (d *ChunkDrawInfo) Release(up Uploader) {
	for _, r := range d.Records {
		up.Release(r.Handle)
	}
	d.Records = d.Records[:0]
}

// Empty reports whether nothing was uploaded.
func (d *ChunkDrawInfo) Empty() bool {
	return len(d.Records) == 0
}

// BuildChunk builds and uploads a chunk on the calling goroutine.
func BuildChunk(b *Builder, vol Volume, coord world.ChunkCoord, light Lighting, up Uploader) (ChunkDrawInfo, error) {
	return Assemble(b.Build(vol, coord, light), up)
}
