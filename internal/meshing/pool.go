package meshing

import (
	"context"
	"errors"
	"sync"

	"chunk-mesher/internal/world"
)

// MeshJob represents a meshing job request
type MeshJob struct {
	// Volume is normally an immutable *world.Snapshot of the chunk.
	Volume   Volume
	Coord    world.ChunkCoord
	Version  uint64
	Lighting Lighting
	// Textures, when set, replaces the worker builder's atlas lookup
	// before the build.
	Textures TextureLookup
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord   world.ChunkCoord
	Version uint64
	Mesh    *ChunkMesh // detached from the worker's builder
	Error   error
}

var errNoVolume = errors.New("meshing: job without volume")

// WorkerPool manages goroutines for mesh generation. Each worker owns one
// Builder and reuses it for every job it takes.
type WorkerPool struct {
	jobQueue   chan MeshJob
	workers    int
	newBuilder func() *Builder
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int, newBuilder func() *Builder) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue:   make(chan MeshJob, queueSize),
		workers:    max(workers, 1),
		newBuilder: newBuilder,
		ctx:        ctx,
		cancel:     cancel,
	}

	// Start worker goroutines
	for i := range pool.workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued or the
// pool shuts down. Reports whether the job was queued.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	builder := p.newBuilder()

	for {
		select {
		case job := <-p.jobQueue:
			result := MeshResult{
				Coord:   job.Coord,
				Version: job.Version,
			}
			if job.Volume == nil {
				result.Error = errNoVolume
			} else {
				if job.Textures != nil {
					builder.SetTextures(job.Textures)
				}
				result.Mesh = builder.Build(job.Volume, job.Coord, job.Lighting).Detach()
			}

			// Send result back
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them to exit. Queued jobs that
// were not started are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// Done is closed once Shutdown has been called.
func (p *WorkerPool) Done() <-chan struct{} {
	return p.ctx.Done()
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}
