package world

import "testing"

func mustWorld(t testing.TB, sx, sy, sz int) *World {
	t.Helper()
	w, err := New(sx, sy, sz, nil)
	if err != nil {
		t.Fatalf("New(%d,%d,%d): %v", sx, sy, sz, err)
	}
	return w
}

func TestNewRejectsBadSize(t *testing.T) {
	if _, err := New(0, 16, 16, nil); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestSetAndGet(t *testing.T) {
	w := mustWorld(t, 32, 32, 32)
	if !w.Set(17, 3, 30, BlockStone) {
		t.Fatalf("Set reported no change")
	}
	if b := w.BlockAt(17, 3, 30); b != BlockStone {
		t.Errorf("Expected stone, got %v", b)
	}
	if w.Set(17, 3, 30, BlockStone) {
		t.Errorf("Setting the same block twice should report no change")
	}
	if w.Set(-1, 0, 0, BlockStone) {
		t.Errorf("Out of world writes must be ignored")
	}
	if b := w.BlockAt(-1, 0, 0); b != BlockAir {
		t.Errorf("Out of world reads must be air, got %v", b)
	}
}

func TestChunkReleasesStorageWhenEmpty(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	c.SetBlock(1, 2, 3, BlockDirt)
	if c.IsEmpty() {
		t.Fatalf("chunk should hold one block")
	}
	c.SetBlock(1, 2, 3, BlockAir)
	if !c.IsEmpty() || c.blocks != nil {
		t.Fatalf("chunk should drop its storage once empty")
	}
	if c.Version() != 2 {
		t.Errorf("Expected version 2, got %d", c.Version())
	}
}

func TestHeightmapTracksEdits(t *testing.T) {
	w := mustWorld(t, 16, 32, 16)

	if h := w.LitHeight(4, 4); h != -1 {
		t.Fatalf("empty column: got %d, want -1", h)
	}
	w.Set(4, 3, 4, BlockStone)
	w.Set(4, 10, 4, BlockStone)
	if h := w.LitHeight(4, 4); h != 10 {
		t.Fatalf("after placing: got %d, want 10", h)
	}
	if b := w.LitBlock(4, 4); b != BlockStone {
		t.Fatalf("lit block: got %v, want stone", b)
	}
	w.Set(4, 6, 4, BlockStone)
	if h := w.LitHeight(4, 4); h != 10 {
		t.Fatalf("placing below the top must not move it: got %d", h)
	}
	w.Set(4, 10, 4, BlockAir)
	if h := w.LitHeight(4, 4); h != 6 {
		t.Fatalf("after removing the top: got %d, want 6", h)
	}
	w.Set(4, 6, 4, BlockAir)
	w.Set(4, 3, 4, BlockAir)
	if h := w.LitHeight(4, 4); h != -1 {
		t.Fatalf("after clearing: got %d, want -1", h)
	}
}

func TestHeightmapIgnoresNonBlocking(t *testing.T) {
	w, err := New(16, 16, 16, func(id BlockID) bool { return id == BlockStone })
	if err != nil {
		t.Fatal(err)
	}
	w.Set(2, 2, 2, BlockStone)
	w.Set(2, 8, 2, BlockGlass)
	if h := w.LitHeight(2, 2); h != 2 {
		t.Fatalf("glass must not block light: got %d, want 2", h)
	}
}

func TestBorderEditMarksNeighbourDirty(t *testing.T) {
	w := mustWorld(t, 32, 16, 16)
	w.Set(20, 0, 0, BlockStone)
	w.Set(5, 0, 0, BlockStone)
	for _, c := range []ChunkCoord{{X: 0}, {X: 1}} {
		if !w.MarkClean(c, w.ChunkVersion(c)) {
			t.Fatalf("MarkClean(%v) failed", c)
		}
	}
	if len(w.DirtyChunks()) != 0 {
		t.Fatalf("chunks still dirty: %v", w.DirtyChunks())
	}

	w.Set(15, 8, 8, BlockStone)
	dirty := w.DirtyChunks()
	found := map[ChunkCoord]bool{}
	for _, c := range dirty {
		found[c] = true
	}
	if !found[ChunkCoord{X: 0}] || !found[ChunkCoord{X: 1}] {
		t.Fatalf("expected both chunks dirty, got %v", dirty)
	}
}

func TestMarkCleanChecksVersion(t *testing.T) {
	w := mustWorld(t, 16, 16, 16)
	w.Set(1, 1, 1, BlockStone)
	coord := ChunkCoord{}
	queued := w.ChunkVersion(coord)

	w.Set(2, 1, 1, BlockStone)
	if w.MarkClean(coord, queued) {
		t.Fatalf("MarkClean accepted an outdated version")
	}
	if !w.MarkClean(coord, w.ChunkVersion(coord)) {
		t.Fatalf("MarkClean rejected the current version")
	}

	w.MarkDirty(coord)
	if d := w.DirtyChunks(); len(d) != 1 || d[0] != coord {
		t.Fatalf("after MarkDirty: got %v", d)
	}
	if w.MarkClean(ChunkCoord{X: 5}, 0) {
		t.Fatalf("MarkClean succeeded for a missing chunk")
	}
}

func TestMarkAllDirty(t *testing.T) {
	w := mustWorld(t, 32, 16, 16)
	w.Set(1, 1, 1, BlockStone)
	w.Set(20, 1, 1, BlockStone)
	for _, c := range w.DirtyChunks() {
		w.MarkClean(c, w.ChunkVersion(c))
	}

	w.MarkAllDirty()
	if d := w.DirtyChunks(); len(d) != 2 {
		t.Fatalf("got %d dirty chunks, want 2", len(d))
	}
}

func TestSnapshotCopiesBorder(t *testing.T) {
	w := mustWorld(t, 48, 32, 48)
	w.Set(15, 16, 20, BlockStone) // chunk (0,1,1)
	w.Set(16, 16, 20, BlockDirt)  // chunk (1,1,1), inside
	w.Set(32, 31, 31, BlockSand)  // chunk (2,1,1), on the +X border
	w.Set(20, 33, 20, BlockGlass) // out of range of chunk (1,1,1)

	s := w.Snapshot(ChunkCoord{X: 1, Y: 1, Z: 1})
	if b := s.BlockAt(15, 16, 20); b != BlockStone {
		t.Errorf("-X border: got %v, want stone", b)
	}
	if b := s.BlockAt(16, 16, 20); b != BlockDirt {
		t.Errorf("inside: got %v, want dirt", b)
	}
	if b := s.BlockAt(32, 31, 31); b != BlockSand {
		t.Errorf("+X border: got %v, want sand", b)
	}
	if b := s.BlockAt(20, 33, 20); b != BlockAir {
		t.Errorf("outside copy: got %v, want air", b)
	}
	if h := s.LitHeight(16, 20); h != 16 {
		t.Errorf("lit height: got %d, want 16", h)
	}
	if h := s.LitHeight(15, 20); h != 16 {
		t.Errorf("border lit height: got %d, want 16", h)
	}
	if b := s.LitBlock(15, 20); b != BlockStone {
		t.Errorf("border lit block: got %v, want stone", b)
	}
	if s.Version != w.ChunkVersion(ChunkCoord{X: 1, Y: 1, Z: 1}) {
		t.Errorf("snapshot version %d does not match chunk", s.Version)
	}

	// later edits do not leak into the copy
	w.Set(16, 16, 20, BlockAir)
	if b := s.BlockAt(16, 16, 20); b != BlockDirt {
		t.Errorf("snapshot changed after edit: got %v", b)
	}
}

func TestChunkCoordsCoverWorld(t *testing.T) {
	w := mustWorld(t, 40, 16, 20)
	coords := w.ChunkCoords()
	if len(coords) != 3*1*2 {
		t.Fatalf("got %d coords, want 6", len(coords))
	}
	if coords[0] != (ChunkCoord{}) || coords[len(coords)-1] != (ChunkCoord{X: 2, Z: 1}) {
		t.Fatalf("unexpected order: %v", coords)
	}
}

func BenchmarkSnapshot(b *testing.B) {
	w := mustWorld(b, 64, 64, 64)
	NewGenerator(1).Populate(w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.Snapshot(ChunkCoord{X: 1, Y: 1, Z: 1})
	}
}

func BenchmarkHeightAt(b *testing.B) {
	g := NewGenerator(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.HeightAt(i%1024, (i*31)%1024)
	}
}
