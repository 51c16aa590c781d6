package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight CPU profiler: accumulated time and call counts per name,
// plus plain event counters. Safe for use from worker goroutines.

var (
	mu       sync.Mutex
	totals   = make(map[string]time.Duration)
	calls    = make(map[string]int64)
	counters = make(map[string]int64)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		calls[name]++
		mu.Unlock()
	}
}

// Add increments the named counter by n.
func Add(name string, n int64) {
	mu.Lock()
	counters[name] += n
	mu.Unlock()
}

// Counter returns the current value of a counter.
func Counter(name string) int64 {
	mu.Lock()
	defer mu.Unlock()
	return counters[name]
}

// Reset clears all totals and counters.
func Reset() {
	mu.Lock()
	clear(totals)
	clear(calls)
	clear(counters)
	mu.Unlock()
}

// Entry is one tracked name.
type Entry struct {
	Name  string
	Total time.Duration
	Calls int64
}

// Snapshot returns the tracked entries, slowest first.
func Snapshot() []Entry {
	mu.Lock()
	out := make([]Entry, 0, len(totals))
	for k, v := range totals {
		out = append(out, Entry{Name: k, Total: v, Calls: calls[k]})
	}
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopN formats the top N entries.
// Example: "meshing.Build:4.2ms/12, meshing.Assemble:2.1ms/12"
func TopN(n int) string {
	list := Snapshot()
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		ms := float64(e.Total.Microseconds()) / 1000.0
		parts = append(parts, e.Name+":"+formatMs(ms)+"/"+strconv.FormatInt(e.Calls, 10))
	}
	return strings.Join(parts, ", ")
}

func formatMs(ms float64) string {
	// one decimal; drop .0 for whole values
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}
