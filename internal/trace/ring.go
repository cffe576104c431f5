package trace

import (
	"bufio"
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory so they can be dumped
// after a failure.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int
	n      int
	level  Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	// LevelError still records driver and pass spans here
	if !t.level.ShouldEmit(ev.Scope) && !(t.level == LevelError && ev.Scope <= ScopePass) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.next] = *ev
	t.next = (t.next + 1) % len(t.events)
	if t.n < len(t.events) {
		t.n++
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.n)
	start := (t.next - t.n + len(t.events)) % len(t.events)
	for i := range t.n {
		out = append(out, t.events[(start+i)%len(t.events)])
	}
	return out
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, ev := range t.Snapshot() {
		buf = AppendEvent(buf[:0], &ev, format)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
