package meshing

import (
	"fmt"
)

// bucket accumulates the geometry of one (page, material) pair. Counts are
// set by the counting pass, cursors advance during the filling pass.
type bucket struct {
	vertices []Vertex
	indices  []uint16

	vCount, iCount int
	vCur, iCur     int
}

func (b *bucket) empty() bool { return b.vCount == 0 }

// bucketStore holds one bucket per material for each atlas page. Backing
// arrays are kept across builds and only ever grow.
type bucketStore struct {
	pages [][MaterialCount]bucket

	// overflow is called once per bucket when its vertex count reaches
	// MaxVertices.
	overflow   func(page int, m Material, vertices int)
	overflowed bool
}

// reset zeroes counts and cursors and resizes to the given page count.
func (s *bucketStore) reset(pages int) {
	if cap(s.pages) >= pages {
		s.pages = s.pages[:pages]
	} else {
		grown := make([][MaterialCount]bucket, pages)
		copy(grown, s.pages[:cap(s.pages)])
		s.pages = grown
	}
	for p := range s.pages {
		for m := range s.pages[p] {
			b := &s.pages[p][m]
			b.vCount, b.iCount, b.vCur, b.iCur = 0, 0, 0, 0
		}
	}
	s.overflowed = false
}

func (s *bucketStore) bucket(m Material, page int) *bucket {
	return &s.pages[page][m]
}

// count reserves room for quads in a bucket.
func (s *bucketStore) count(m Material, page, quads int) {
	b := s.bucket(m, page)
	b.vCount += quads * VerticesPerQuad
	b.iCount += quads * IndicesPerQuad
}

// ensureCapacity grows every bucket to hold its counted geometry.
func (s *bucketStore) ensureCapacity() {
	for p := range s.pages {
		for m := range s.pages[p] {
			b := &s.pages[p][m]
			if cap(b.vertices) < b.vCount {
				b.vertices = make([]Vertex, b.vCount)
			}
			if cap(b.indices) < b.iCount {
				b.indices = make([]uint16, b.iCount)
			}
			b.vertices = b.vertices[:b.vCount]
			b.indices = b.indices[:b.iCount]
		}
	}
}

// append writes a quad and its six indices. Indices wrap past 65535; the
// overflow hook reports the append that reaches MaxVertices.
func (s *bucketStore) append(m Material, page int, q Quad) {
	b := s.bucket(m, page)
	base := b.vCur
	if base+VerticesPerQuad > len(b.vertices) {
		panic(fmt.Sprintf("meshing: page %d %v filled past its counted %d vertices", page, m, b.vCount))
	}
	copy(b.vertices[base:base+VerticesPerQuad], q.V[:])
	b.vCur += VerticesPerQuad

	i := b.indices[b.iCur : b.iCur+IndicesPerQuad]
	i[0] = uint16(base)
	i[1] = uint16(base + 1)
	i[2] = uint16(base + 2)
	i[3] = uint16(base + 2)
	i[4] = uint16(base + 3)
	i[5] = uint16(base)
	b.iCur += IndicesPerQuad

	if base < MaxVertices && b.vCur >= MaxVertices {
		s.overflowed = true
		if s.overflow != nil {
			s.overflow(page, m, b.vCur)
		}
	}
}

// verify checks that every bucket was filled exactly to its counted size.
func (s *bucketStore) verify() error {
	for p := range s.pages {
		for m := range s.pages[p] {
			b := &s.pages[p][m]
			if b.vCur != b.vCount || b.iCur != b.iCount {
				return fmt.Errorf("page %d %v: filled %d/%d vertices, %d/%d indices",
					p, Material(m), b.vCur, b.vCount, b.iCur, b.iCount)
			}
		}
	}
	return nil
}
