package meshing

import (
	"log"

	"chunk-mesher/internal/profiling"
	"chunk-mesher/internal/world"
)

// ChunkStreamer keeps uploaded chunk meshes in step with a world. Dirty
// chunks are snapshotted and handed to the scheduler; finished meshes are
// uploaded and swapped in by ProcessMeshResults. Everything except the
// builds themselves runs on the goroutine that owns the uploader.
type ChunkStreamer struct {
	world *world.World
	sched *Scheduler
	up    Uploader

	resident map[world.ChunkCoord]*ChunkDrawInfo

	maxJobsPerCall int
	uploadFailures int
	overflowed     int
}

// NewChunkStreamer creates a streamer for w that uploads through up.
func NewChunkStreamer(w *world.World, sched *Scheduler, up Uploader) *ChunkStreamer {
	return &ChunkStreamer{
		world:          w,
		sched:          sched,
		up:             up,
		resident:       make(map[world.ChunkCoord]*ChunkDrawInfo),
		maxJobsPerCall: 256,
	}
}

// SetMaxJobsPerCall limits how many builds QueueDirty submits per call.
func (cs *ChunkStreamer) SetMaxJobsPerCall(n int) {
	cs.maxJobsPerCall = max(n, 1)
}

// QueueDirty submits a build for every dirty chunk, up to the per-call
// limit, and returns the number submitted. A chunk stays dirty when its
// submission fails or it changes again before being marked clean.
func (cs *ChunkStreamer) QueueDirty(light Lighting) int {
	defer profiling.Track("meshing.QueueDirty")()
	queued := 0
	for _, coord := range cs.world.DirtyChunks() {
		if queued >= cs.maxJobsPerCall {
			break
		}
		snap := cs.world.Snapshot(coord)
		if !cs.sched.Submit(snap, coord, snap.Version, light) {
			break // queue full, retry next call
		}
		cs.world.MarkClean(coord, snap.Version)
		queued++
	}
	return queued
}

// ProcessMeshResults uploads up to max finished meshes (max <= 0 means all
// available) and returns the number applied.
func (cs *ChunkStreamer) ProcessMeshResults(max int) int {
	defer profiling.Track("meshing.ProcessMeshResults")()
	return cs.sched.Process(max, cs.apply)
}

// Flush queues and applies builds until no chunk is dirty or pending. It
// returns early after an upload failure; the failed chunks stay dirty.
func (cs *ChunkStreamer) Flush(light Lighting) {
	failures := cs.uploadFailures
	for cs.uploadFailures == failures {
		cs.QueueDirty(light)
		if cs.sched.Pending() == 0 {
			return
		}
		cs.sched.Wait(cs.apply)
	}
}

func (cs *ChunkStreamer) apply(r MeshResult) {
	if r.Error != nil {
		log.Printf("meshing: build chunk=%v failed: %v", r.Coord, r.Error)
		cs.world.MarkDirty(r.Coord)
		return
	}
	if r.Mesh.Overflowed {
		cs.overflowed++
	}

	info, err := Assemble(r.Mesh, cs.up)
	if err != nil {
		// the previous mesh stays visible until a retry succeeds
		log.Printf("meshing: %v", err)
		cs.uploadFailures++
		cs.world.MarkDirty(r.Coord)
		return
	}

	if old := cs.resident[r.Coord]; old != nil {
		old.Release(cs.up)
	}
	if info.Empty() {
		delete(cs.resident, r.Coord)
		return
	}
	cs.resident[r.Coord] = &info
}

// Draw issues a pass over every resident chunk and page.
func (cs *ChunkStreamer) Draw(pass Pass) {
	for _, info := range cs.resident {
		info.Draw(cs.up, pass)
	}
}

// DrawPage issues a pass for one atlas page over every resident chunk.
// Callers bind the page first.
func (cs *ChunkStreamer) DrawPage(pass Pass, page int) {
	for _, info := range cs.resident {
		info.DrawPage(cs.up, pass, page)
	}
}

// Resident returns the draw info of a chunk, if it has uploaded geometry.
func (cs *ChunkStreamer) Resident(coord world.ChunkCoord) (*ChunkDrawInfo, bool) {
	info, ok := cs.resident[coord]
	return info, ok
}

// StreamerStats summarises the streamer's state.
type StreamerStats struct {
	Resident       int
	Records        int
	Indices        int
	Pending        int
	Dropped        int
	UploadFailures int
	Overflowed     int
}

func (cs *ChunkStreamer) Stats() StreamerStats {
	s := StreamerStats{
		Resident:       len(cs.resident),
		Pending:        cs.sched.Pending(),
		Dropped:        cs.sched.Dropped(),
		UploadFailures: cs.uploadFailures,
		Overflowed:     cs.overflowed,
	}
	for _, info := range cs.resident {
		s.Records += len(info.Records)
		for _, r := range info.Records {
			s.Indices += r.IndexCount
		}
	}
	return s
}

// Close releases every uploaded chunk.
func (cs *ChunkStreamer) Close() {
	for coord, info := range cs.resident {
		info.Release(cs.up)
		delete(cs.resident, coord)
	}
}
