package meshing

import (
	"reflect"
	"testing"

	"chunk-mesher/internal/atlas"
	"chunk-mesher/internal/world"
)

func TestWorkerPoolMatchesDirectBuild(t *testing.T) {
	f := newFixture(t, 48, 48, 48, 8)
	world.NewGenerator(11).Populate(f.w)

	pool := NewWorkerPool(3, 64, f.builder)
	defer pool.Shutdown()
	sched := NewScheduler(pool, 64)

	coords := f.w.ChunkCoords()
	for _, c := range coords {
		if !sched.Submit(f.w.Snapshot(c), c, f.w.ChunkVersion(c), DefaultLighting()) {
			t.Fatalf("submit %v: queue full", c)
		}
	}

	got := map[world.ChunkCoord]*ChunkMesh{}
	sched.Wait(func(r MeshResult) {
		if r.Error != nil {
			t.Errorf("chunk %v: %v", r.Coord, r.Error)
			return
		}
		got[r.Coord] = r.Mesh
	})
	if len(got) != len(coords) {
		t.Fatalf("got %d meshes, want %d", len(got), len(coords))
	}

	direct := f.builder()
	for _, c := range coords {
		want := direct.Build(f.w, c, DefaultLighting()).Detach()
		if !reflect.DeepEqual(got[c], want) {
			t.Errorf("chunk %v: pooled mesh differs from direct build", c)
		}
	}
}

func TestSchedulerDropsStaleResults(t *testing.T) {
	f := newFixture(t, 16, 16, 16, 64)
	f.w.Set(1, 1, 1, world.BlockStone)
	coord := world.ChunkCoord{}

	pool := NewWorkerPool(2, 8, f.builder)
	defer pool.Shutdown()
	sched := NewScheduler(pool, 8)

	old := f.w.Snapshot(coord)
	f.w.Set(2, 1, 1, world.BlockStone)
	fresh := f.w.Snapshot(coord)

	if !sched.Submit(old, coord, old.Version, DefaultLighting()) {
		t.Fatalf("submit old")
	}
	if !sched.Submit(fresh, coord, fresh.Version, DefaultLighting()) {
		t.Fatalf("submit fresh")
	}
	if !sched.IsPending(coord) {
		t.Fatalf("chunk not pending after submit")
	}

	var applied []MeshResult
	sched.Wait(func(r MeshResult) { applied = append(applied, r) })

	if len(applied) != 1 {
		t.Fatalf("applied %d results, want 1", len(applied))
	}
	if applied[0].Version != fresh.Version {
		t.Fatalf("applied version %d, want %d", applied[0].Version, fresh.Version)
	}
	// two blocks in a row still merge into six quads
	if n := applied[0].Mesh.VertexCount(); n != 6*4 {
		t.Fatalf("applied mesh has %d vertices, want 24", n)
	}
	if sched.Pending() != 0 {
		t.Fatalf("%d chunks still pending", sched.Pending())
	}
}

func TestSchedulerProcessLimit(t *testing.T) {
	f := newFixture(t, 32, 16, 32, 64)
	pool := NewWorkerPool(2, 8, f.builder)
	defer pool.Shutdown()
	sched := NewScheduler(pool, 8)

	coords := f.w.ChunkCoords()
	for _, c := range coords {
		sched.Submit(f.w.Snapshot(c), c, 0, DefaultLighting())
	}

	applied := 0
	for sched.Pending() > 0 {
		n := sched.Process(1, func(MeshResult) {})
		if n > 1 {
			t.Fatalf("Process(1) applied %d", n)
		}
		applied += n
	}
	if applied != len(coords) {
		t.Fatalf("applied %d, want %d", applied, len(coords))
	}
	if sched.Process(0, func(MeshResult) {}) != 0 {
		t.Fatalf("Process on an idle scheduler applied results")
	}
}

func TestSchedulerSetTextures(t *testing.T) {
	f := newFixture(t, 16, 16, 16, 64)
	f.w.Set(1, 1, 1, world.BlockStone)
	coord := world.ChunkCoord{}

	pool := NewWorkerPool(1, 4, f.builder)
	defer pool.Shutdown()
	sched := NewScheduler(pool, 4)

	// one tile per page puts every texture on its own page
	single, err := atlas.New(len(f.reg.TextureNames()), 1)
	if err != nil {
		t.Fatalf("atlas.New: %v", err)
	}
	sched.SetTextures(atlas.NewBlockTextures(f.reg, single))
	if !sched.Submit(f.w.Snapshot(coord), coord, 0, DefaultLighting()) {
		t.Fatalf("submit failed")
	}

	var mesh *ChunkMesh
	sched.Wait(func(r MeshResult) { mesh = r.Mesh })
	if mesh == nil {
		t.Fatalf("no mesh applied")
	}
	want := f.reg.TextureIndex(world.BlockStone, world.FaceTop)
	for _, p := range mesh.Parts {
		if p.Page != want {
			t.Fatalf("stone built on page %d, want %d", p.Page, want)
		}
	}
}

func TestWorkerPoolNilVolume(t *testing.T) {
	f := newFixture(t, 16, 16, 16, 64)
	pool := NewWorkerPool(1, 1, f.builder)
	defer pool.Shutdown()

	results := make(chan MeshResult, 1)
	if !pool.SubmitJobBlocking(MeshJob{Coord: world.ChunkCoord{Y: 2}, ResultChan: results}) {
		t.Fatalf("submit failed")
	}
	r := <-results
	if r.Error == nil || r.Mesh != nil {
		t.Fatalf("nil volume: got mesh %v, error %v", r.Mesh, r.Error)
	}
}

func TestWorkerPoolShutdown(t *testing.T) {
	f := newFixture(t, 16, 16, 16, 64)
	pool := NewWorkerPool(0, 1, f.builder)
	if pool.Workers() != 1 {
		t.Fatalf("workers: got %d, want 1", pool.Workers())
	}
	pool.Shutdown()

	job := MeshJob{Volume: f.w, ResultChan: make(chan MeshResult, 1)}
	if pool.SubmitJob(job) {
		t.Fatalf("SubmitJob succeeded after shutdown")
	}
	if pool.SubmitJobBlocking(job) {
		t.Fatalf("SubmitJobBlocking succeeded after shutdown")
	}
}
