package meshing

import (
	"chunk-mesher/internal/world"
)

// Run table layout: one byte per voxel and face slot. Slots 0-5 are the
// world.Face values, slot 6 holds sprite runs. The low bits hold the run
// length, the high bit whether the run is sunlit. Zero means no run starts
// here.
const (
	spriteSlot = int(world.FaceCount)
	runSlots   = spriteSlot + 1

	runLengthMask = 0x7f
	runSunlit     = 0x80
)

func encodeRun(n int, sunlit bool) uint8 {
	r := uint8(n)
	if sunlit {
		r |= runSunlit
	}
	return r
}

func decodeRun(r uint8) (n int, sunlit bool) {
	return int(r & runLengthMask), r&runSunlit != 0
}

type runTable struct {
	runs    [world.ChunkVolume * runSlots]uint8
	visited [world.ChunkVolume * runSlots]bool
}

func (t *runTable) reset() {
	clear(t.runs[:])
	clear(t.visited[:])
}

// stretchAxis returns the local step along which runs of a face extend.
// West and east faces merge along +Z, everything else along +X.
func stretchAxis(face world.Face) (dx, dz int) {
	if face == world.FaceWest || face == world.FaceEast {
		return 0, 1
	}
	return 1, 0
}

// pass carries the per-build inputs through both traversals.
type pass struct {
	vol        Volume
	info       BlockInfo
	light      lightResolver
	lighting   Lighting
	ox, oy, oz int
}

// canExtend reports whether the voxel at local (lx,ly,lz) joins a run of
// id whose first face had the given sunlit value.
func (p *pass) canExtend(id world.BlockID, sunlit bool, lx, ly, lz int, face world.Face) bool {
	x, y, z := p.ox+lx, p.oy+ly, p.oz+lz
	return p.vol.BlockAt(x, y, z) == id &&
		isFaceVisible(p.vol, p.info, id, x, y, z, face) &&
		p.light.isSunlit(x, y, z, face) == sunlit
}

// countPass walks the chunk in y, z, x order, records every run and sizes
// the buckets. It is the only traversal that inspects the volume for
// visibility and lighting.
func (b *Builder) countPass(p *pass) {
	for ly := 0; ly < world.ChunkSize; ly++ {
		for lz := 0; lz < world.ChunkSize; lz++ {
			for lx := 0; lx < world.ChunkSize; lx++ {
				id := p.vol.BlockAt(p.ox+lx, p.oy+ly, p.oz+lz)
				if id == world.BlockAir {
					continue
				}
				vi := world.ChunkIndex(lx, ly, lz)
				if p.info.IsSprite(id) {
					b.stretchSprite(p, id, vi, lx, ly, lz)
					continue
				}
				for f := world.Face(0); f < world.FaceCount; f++ {
					b.stretchFace(p, id, vi, lx, ly, lz, f)
				}
			}
		}
	}
}

func (b *Builder) stretchFace(p *pass, id world.BlockID, vi, lx, ly, lz int, face world.Face) {
	slot := vi*runSlots + int(face)
	if b.table.visited[slot] {
		return
	}
	x, y, z := p.ox+lx, p.oy+ly, p.oz+lz
	if !isFaceVisible(p.vol, p.info, id, x, y, z, face) {
		return
	}
	sunlit := p.light.isSunlit(x, y, z, face)

	sx, sz := stretchAxis(face)
	n := 1
	for {
		cx, cz := lx+sx*n, lz+sz*n
		if cx >= world.ChunkSize || cz >= world.ChunkSize {
			break
		}
		if !p.canExtend(id, sunlit, cx, ly, cz, face) {
			break
		}
		b.table.visited[world.ChunkIndex(cx, ly, cz)*runSlots+int(face)] = true
		n++
	}

	b.table.runs[slot] = encodeRun(n, sunlit)
	_, page := b.tex.TextureRect(id, face)
	b.buckets.count(materialOf(p.info, id), page, 1)
}

// stretchSprite records a run of identical sprites along +X sharing the
// same top lighting. A run of n sprites becomes 1+n quads.
func (b *Builder) stretchSprite(p *pass, id world.BlockID, vi, lx, ly, lz int) {
	slot := vi*runSlots + spriteSlot
	if b.table.visited[slot] {
		return
	}
	y, z := p.oy+ly, p.oz+lz
	sunlit := p.light.isSunlit(p.ox+lx, y, z, world.FaceTop)

	n := 1
	for cx := lx + 1; cx < world.ChunkSize; cx++ {
		x := p.ox + cx
		if p.vol.BlockAt(x, y, z) != id || p.light.isSunlit(x, y, z, world.FaceTop) != sunlit {
			break
		}
		b.table.visited[world.ChunkIndex(cx, ly, lz)*runSlots+spriteSlot] = true
		n++
	}

	b.table.runs[slot] = encodeRun(n, sunlit)
	_, page := b.tex.TextureRect(id, world.FaceEast)
	b.buckets.count(Sprite, page, 1+n)
}
