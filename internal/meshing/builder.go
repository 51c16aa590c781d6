package meshing

import (
	"fmt"
	"log"

	"chunk-mesher/internal/profiling"
	"chunk-mesher/internal/world"
)

// BuildState tracks where a Builder is within a build.
type BuildState uint8

const (
	StateIdle BuildState = iota
	StateCounting
	StateSized
	StateFilling
	StateAssembled
)

func (s BuildState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCounting:
		return "counting"
	case StateSized:
		return "sized"
	case StateFilling:
		return "filling"
	case StateAssembled:
		return "assembled"
	}
	return "state?"
}

// Builder meshes chunks. It owns its scratch tables and geometry buckets
// and reuses them across builds, so one Builder must only be used by one
// goroutine at a time.
type Builder struct {
	info BlockInfo
	tex  TextureLookup

	// OnOverflow is called when a bucket reaches MaxVertices during a
	// build. Geometry is still produced; indices past 65535 wrap.
	OnOverflow func(coord world.ChunkCoord, page int, m Material, vertices int)

	state   BuildState
	coord   world.ChunkCoord
	buckets bucketStore
	table   runTable
	sprites []Quad
	parts   []Part
}

// NewBuilder creates a builder over block properties and atlas lookups.
func NewBuilder(info BlockInfo, tex TextureLookup) *Builder {
	b := &Builder{
		info:       info,
		tex:        tex,
		OnOverflow: logOverflow,
	}
	b.buckets.overflow = b.reportOverflow
	return b
}

func logOverflow(coord world.ChunkCoord, page int, m Material, vertices int) {
	log.Printf("meshing: index overflow chunk=%v page=%d material=%v vertices=%d", coord, page, m, vertices)
}

func (b *Builder) reportOverflow(page int, m Material, vertices int) {
	profiling.Add("meshing.overflow", 1)
	if b.OnOverflow != nil {
		b.OnOverflow(b.coord, page, m, vertices)
	}
}

// SetTextures swaps the atlas lookup used by later builds, e.g. after the
// atlas was re-laid out with a different page size.
func (b *Builder) SetTextures(tex TextureLookup) {
	b.tex = tex
}

// State returns the current build state.
func (b *Builder) State() BuildState {
	return b.state
}

// Build meshes the chunk at coord. The page count is read once at the
// start of the build. The returned mesh aliases builder storage and is
// valid until the next Build; use Detach to keep it longer.
func (b *Builder) Build(vol Volume, coord world.ChunkCoord, light Lighting) *ChunkMesh {
	defer profiling.Track("meshing.Build")()

	ox, oy, oz := coord.Origin()
	p := &pass{
		vol:      vol,
		info:     b.info,
		light:    lightResolver{vol: vol, info: b.info},
		lighting: light,
		ox:       ox,
		oy:       oy,
		oz:       oz,
	}
	b.coord = coord

	b.state = StateCounting
	b.buckets.reset(b.tex.PageCount())
	b.table.reset()
	stop := profiling.Track("meshing.Build.count")
	b.countPass(p)
	stop()

	b.buckets.ensureCapacity()
	b.state = StateSized

	b.state = StateFilling
	stop = profiling.Track("meshing.Build.fill")
	b.fillPass(p)
	stop()
	if err := b.buckets.verify(); err != nil {
		panic(fmt.Sprintf("meshing: chunk %v count/fill mismatch: %v", coord, err))
	}

	b.state = StateAssembled
	return b.gather(coord)
}

// fillPass replays the run table in traversal order and writes geometry.
func (b *Builder) fillPass(p *pass) {
	inv := b.tex.InvElementSize()
	for ly := 0; ly < world.ChunkSize; ly++ {
		for lz := 0; lz < world.ChunkSize; lz++ {
			for lx := 0; lx < world.ChunkSize; lx++ {
				vi := world.ChunkIndex(lx, ly, lz)
				runs := b.table.runs[vi*runSlots : (vi+1)*runSlots]
				if !anyRun(runs) {
					continue
				}

				x, y, z := p.ox+lx, p.oy+ly, p.oz+lz
				id := p.vol.BlockAt(x, y, z)
				fc := faceContext{
					x:        float32(x),
					y:        float32(y),
					z:        float32(z),
					height:   p.info.Height(id),
					inv:      inv,
					material: materialOf(p.info, id),
				}

				if n, sunlit := decodeRun(runs[spriteSlot]); n > 0 {
					fc.n = n
					fc.face = world.FaceEast
					fc.rect, fc.page = b.tex.TextureRect(id, world.FaceEast)
					fc.col = p.lighting.Colour(world.FaceTop, sunlit)
					b.sprites = appendSprite(b.sprites[:0], fc)
					for _, q := range b.sprites {
						b.buckets.append(Sprite, fc.page, q)
					}
					continue
				}

				for f := world.Face(0); f < world.FaceCount; f++ {
					n, sunlit := decodeRun(runs[f])
					if n == 0 {
						continue
					}
					fc.n = n
					fc.face = f
					fc.rect, fc.page = b.tex.TextureRect(id, f)
					fc.col = p.lighting.Colour(f, sunlit)
					b.buckets.append(fc.material, fc.page, emitFace(fc))
				}
			}
		}
	}
}

func anyRun(runs []uint8) bool {
	for _, r := range runs {
		if r != 0 {
			return true
		}
	}
	return false
}

// gather collects the non-empty buckets, page by page in draw order.
func (b *Builder) gather(coord world.ChunkCoord) *ChunkMesh {
	b.parts = b.parts[:0]
	for page := range b.buckets.pages {
		for _, m := range DrawOrder {
			bk := b.buckets.bucket(m, page)
			if bk.empty() {
				continue
			}
			b.parts = append(b.parts, Part{
				Page:     page,
				Material: m,
				Vertices: bk.vertices[:bk.vCount],
				Indices:  bk.indices[:bk.iCount],
			})
		}
	}
	return &ChunkMesh{
		Coord:      coord,
		Parts:      b.parts,
		Overflowed: b.buckets.overflowed,
	}
}
