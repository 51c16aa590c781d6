package meshing

import (
	"strings"
	"testing"

	"chunk-mesher/internal/world"
)

func TestBucketOverflowFiresOnce(t *testing.T) {
	var s bucketStore
	var fired []int
	s.overflow = func(page int, m Material, vertices int) {
		if page != 0 || m != Solid {
			t.Errorf("overflow reported for page %d %v", page, m)
		}
		fired = append(fired, vertices)
	}

	quads := MaxVertices/VerticesPerQuad + 1
	s.reset(1)
	s.count(Solid, 0, quads)
	s.ensureCapacity()

	for i := 0; i < quads; i++ {
		s.append(Solid, 0, Quad{})
		reached := (i + 1) * VerticesPerQuad
		if reached < MaxVertices && len(fired) != 0 {
			t.Fatalf("overflow fired early at %d vertices", reached)
		}
	}
	if len(fired) != 1 || fired[0] != MaxVertices {
		t.Fatalf("overflow calls: got %v, want [%d]", fired, MaxVertices)
	}
	if !s.overflowed {
		t.Fatalf("store not marked overflowed")
	}
	if err := s.verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}

	// indices of the quad past the limit wrap around
	last := s.bucket(Solid, 0).indices[(quads-1)*IndicesPerQuad:]
	want := []uint16{0, 1, 2, 2, 3, 0}
	for i := range want {
		if last[i] != want[i] {
			t.Fatalf("wrapped indices: got %v, want %v", last, want)
		}
	}
}

func TestBucketResetClearsOverflow(t *testing.T) {
	var s bucketStore
	s.overflowed = true
	s.reset(3)
	if s.overflowed {
		t.Fatalf("reset kept overflow flag")
	}
	if len(s.pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(s.pages))
	}
	s.reset(1)
	if len(s.pages) != 1 {
		t.Fatalf("got %d pages after shrink, want 1", len(s.pages))
	}
}

func TestBucketStorageReused(t *testing.T) {
	var s bucketStore
	s.reset(1)
	s.count(Translucent, 0, 100)
	s.ensureCapacity()
	for i := 0; i < 100; i++ {
		s.append(Translucent, 0, Quad{})
	}
	before := &s.bucket(Translucent, 0).vertices[0]

	s.reset(1)
	s.count(Translucent, 0, 10)
	s.ensureCapacity()
	if &s.bucket(Translucent, 0).vertices[0] != before {
		t.Fatalf("smaller build reallocated its bucket")
	}
	if got := len(s.bucket(Translucent, 0).vertices); got != 40 {
		t.Fatalf("bucket length: got %d, want 40", got)
	}
}

func TestBucketVerifyMismatch(t *testing.T) {
	var s bucketStore
	s.reset(2)
	s.count(Sprite, 1, 2)
	s.ensureCapacity()
	s.append(Sprite, 1, Quad{})

	err := s.verify()
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
	if !strings.Contains(err.Error(), "page 1") {
		t.Fatalf("error %q does not name the page", err)
	}
}

func TestBucketOverfillPanics(t *testing.T) {
	var s bucketStore
	s.reset(1)
	s.count(Solid, 0, 1)
	s.ensureCapacity()
	s.append(Solid, 0, Quad{})

	defer func() {
		if recover() == nil {
			t.Fatalf("append past the counted size did not panic")
		}
	}()
	s.append(Solid, 0, Quad{})
}

func TestRunEncoding(t *testing.T) {
	cases := []struct {
		n      int
		sunlit bool
	}{
		{1, false},
		{1, true},
		{world.ChunkSize, false},
		{world.ChunkSize, true},
	}
	for _, tc := range cases {
		n, sunlit := decodeRun(encodeRun(tc.n, tc.sunlit))
		if n != tc.n || sunlit != tc.sunlit {
			t.Errorf("run (%d, %v): decoded (%d, %v)", tc.n, tc.sunlit, n, sunlit)
		}
	}
	if n, _ := decodeRun(0); n != 0 {
		t.Errorf("empty slot decoded to length %d", n)
	}
}

func TestStretchAxis(t *testing.T) {
	for f := world.Face(0); f < world.FaceCount; f++ {
		dx, dz := stretchAxis(f)
		wantZ := f == world.FaceWest || f == world.FaceEast
		if (dz == 1) != wantZ || dx+dz != 1 {
			t.Errorf("%v: stretch (%d, %d)", f, dx, dz)
		}
	}
}

func TestLightingScales(t *testing.T) {
	l := DefaultLighting()
	cases := []struct {
		face   world.Face
		sunlit bool
		want   uint8
	}{
		{world.FaceTop, true, 255},
		{world.FaceTop, false, 155},
		{world.FaceEast, true, 153},
		{world.FaceWest, false, 93},
		{world.FaceNorth, true, 204},
		{world.FaceSouth, false, 124},
		{world.FaceBottom, true, 127},
		{world.FaceBottom, false, 77},
	}
	for _, tc := range cases {
		c := l.Colour(tc.face, tc.sunlit)
		if c.R != tc.want || c.G != tc.want || c.B != tc.want || c.A != 255 {
			t.Errorf("%v sunlit=%v: got %v, want %d", tc.face, tc.sunlit, c, tc.want)
		}
	}
}

func TestMaterialOrder(t *testing.T) {
	want := []Material{Solid, Sprite, Translucent}
	if len(DrawOrder) != len(want) {
		t.Fatalf("draw order %v", DrawOrder)
	}
	for i := range want {
		if DrawOrder[i] != want[i] {
			t.Fatalf("draw order: got %v, want %v", DrawOrder, want)
		}
	}
}
