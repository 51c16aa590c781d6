package meshing

import (
	"sync"

	"chunk-mesher/internal/world"
)

// Scheduler submits chunk builds to a pool and hands completed results
// back on the caller's thread. Results older than the newest submission
// for their chunk are dropped without being applied. Submit, Process and
// Wait belong to one goroutine, normally the one owning the GPU context.
type Scheduler struct {
	pool     *WorkerPool
	results  chan MeshResult
	textures TextureLookup

	mu      sync.RWMutex
	pending map[world.ChunkCoord]uint64 // newest submitted version

	dropped int
}

// NewScheduler creates a scheduler with a result buffer of the given size.
func NewScheduler(pool *WorkerPool, resultBuffer int) *Scheduler {
	return &Scheduler{
		pool:    pool,
		results: make(chan MeshResult, resultBuffer),
		pending: make(map[world.ChunkCoord]uint64),
	}
}

// Submit queues a build without blocking. Reports false when the queue is
// full; the caller should retry later.
func (s *Scheduler) Submit(vol Volume, coord world.ChunkCoord, version uint64, light Lighting) bool {
	job := MeshJob{
		Volume:     vol,
		Coord:      coord,
		Version:    version,
		Lighting:   light,
		Textures:   s.textures,
		ResultChan: s.results,
	}
	// mark pending first so a fast worker's result is not taken as stale
	s.mu.Lock()
	prev, had := s.pending[coord]
	if !had || version >= prev {
		s.pending[coord] = version
	}
	s.mu.Unlock()

	if s.pool.SubmitJob(job) {
		return true
	}
	s.mu.Lock()
	if had {
		s.pending[coord] = prev
	} else {
		delete(s.pending, coord)
	}
	s.mu.Unlock()
	return false
}

// SetTextures makes every later submission build against tex. Builds
// already queued keep the lookup they were submitted with.
func (s *Scheduler) SetTextures(tex TextureLookup) {
	s.textures = tex
}

// IsPending reports whether a build for the chunk is in flight.
func (s *Scheduler) IsPending(coord world.ChunkCoord) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.pending[coord]
	return ok
}

// Pending returns the number of chunks with builds in flight.
func (s *Scheduler) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending)
}

// Dropped returns how many stale results were discarded.
func (s *Scheduler) Dropped() int {
	return s.dropped
}

// Process applies up to max completed results without blocking (max <= 0
// means all available). Stale results are discarded. Returns the number
// applied.
func (s *Scheduler) Process(max int, apply func(MeshResult)) int {
	applied := 0
	for max <= 0 || applied < max {
		select {
		case result := <-s.results:
			if s.accept(result) {
				apply(result)
				applied++
			} else {
				s.dropped++
			}
		default:
			return applied // No more results to process this frame
		}
	}
	return applied
}

// Wait blocks until every pending build has been applied or dropped. Once
// the pool has shut down, results already delivered are applied and the
// remaining pending builds are forgotten.
func (s *Scheduler) Wait(apply func(MeshResult)) {
	for s.Pending() > 0 {
		select {
		case result := <-s.results:
			if s.accept(result) {
				apply(result)
			} else {
				s.dropped++
			}
		case <-s.pool.Done():
			s.Process(0, apply)
			s.mu.Lock()
			clear(s.pending)
			s.mu.Unlock()
			return
		}
	}
}

func (s *Scheduler) accept(result MeshResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	newest, ok := s.pending[result.Coord]
	if !ok || result.Version < newest {
		return false
	}
	delete(s.pending, result.Coord)
	return true
}
