package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAndTopN(t *testing.T) {
	Reset()
	stop := Track("a")
	time.Sleep(2 * time.Millisecond)
	stop()
	Track("b")()
	Track("b")()

	snap := Snapshot()
	if len(snap) != 2 {
		t.Fatalf("got %d entries, want 2", len(snap))
	}
	if snap[0].Name != "a" || snap[0].Calls != 1 {
		t.Fatalf("slowest entry: got %+v", snap[0])
	}
	if snap[1].Calls != 2 {
		t.Fatalf("b calls: got %d, want 2", snap[1].Calls)
	}
	top := TopN(1)
	if !strings.HasPrefix(top, "a:") || !strings.HasSuffix(top, "ms/1") {
		t.Fatalf("TopN(1) = %q", top)
	}
}

func TestCounters(t *testing.T) {
	Reset()
	Add("x", 2)
	Add("x", 3)
	if got := Counter("x"); got != 5 {
		t.Fatalf("counter: got %d, want 5", got)
	}
	Reset()
	if got := Counter("x"); got != 0 {
		t.Fatalf("after reset: got %d, want 0", got)
	}
}

func TestFormatMs(t *testing.T) {
	cases := map[float64]string{0: "0ms", 4: "4ms", 4.26: "4.3ms", 12.5: "12.5ms"}
	for in, want := range cases {
		if got := formatMs(in); got != want {
			t.Errorf("formatMs(%v) = %q, want %q", in, got, want)
		}
	}
}
