package meshing

import (
	"errors"
	"sync"
)

// ErrUploadFailed is returned by MemoryUploader once its failure budget
// is used up.
var ErrUploadFailed = errors.New("upload failed")

// MemoryUploader keeps uploaded geometry in memory. It backs headless runs
// and tests.
type MemoryUploader struct {
	mu      sync.Mutex
	next    Handle
	buffers map[Handle]MemoryBuffer

	// FailAfter is the number of uploads that succeed before every later
	// one fails. Negative disables failures.
	FailAfter int
	uploads   int

	// DrawCalls counts Draw invocations; DrawnIndices sums their counts.
	DrawCalls    int
	DrawnIndices int
}

// MemoryBuffer is one uploaded part.
type MemoryBuffer struct {
	Vertices []Vertex
	Indices  []uint16
}

// NewMemoryUploader creates an uploader that never fails.
func NewMemoryUploader() *MemoryUploader {
	return &MemoryUploader{
		buffers:   make(map[Handle]MemoryBuffer),
		FailAfter: -1,
	}
}

func (u *MemoryUploader) Upload(vertices []Vertex, indices []uint16) (Handle, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.FailAfter >= 0 && u.uploads >= u.FailAfter {
		return 0, ErrUploadFailed
	}
	u.uploads++
	u.next++
	u.buffers[u.next] = MemoryBuffer{
		Vertices: append([]Vertex(nil), vertices...),
		Indices:  append([]uint16(nil), indices...),
	}
	return u.next, nil
}

func (u *MemoryUploader) Draw(h Handle, indexCount int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.buffers[h]; ok {
		u.DrawCalls++
		u.DrawnIndices += indexCount
	}
}

func (u *MemoryUploader) Release(h Handle) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.buffers, h)
}

// Live returns the number of buffers not yet released.
func (u *MemoryUploader) Live() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.buffers)
}

// Buffer returns an uploaded buffer.
func (u *MemoryUploader) Buffer(h Handle) (MemoryBuffer, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, ok := u.buffers[h]
	return b, ok
}
