package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase accumulates the time spent in one pass across all files.
type Phase struct {
	Name  string
	Dur   time.Duration
	Count int
}

// Timer collects per-pass durations. Files are parsed in parallel, so Add
// is safe for concurrent use and phases keep first-seen order.
type Timer struct {
	mu     sync.Mutex
	start  time.Time
	index  map[string]int
	phases []Phase
}

func NewTimer() *Timer {
	return &Timer{start: time.Now(), index: make(map[string]int, 8)}
}

// Add charges d to the named pass.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.index[name]
	if !ok {
		i = len(t.phases)
		t.index[name] = i
		t.phases = append(t.phases, Phase{Name: name})
	}
	t.phases[i].Dur += d
	t.phases[i].Count++
}

// Time runs fn and charges its duration to name.
func (t *Timer) Time(name string, fn func()) {
	began := time.Now()
	fn()
	t.Add(name, time.Since(began))
}

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name" yaml:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	Count      int     `json:"count" yaml:"count"`
}

// Report: сумма по проходам и общее время с момента создания таймера.
type Report struct {
	WallMS float64       `json:"wall_ms" yaml:"wall_ms"`
	Phases []PhaseReport `json:"phases" yaml:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := Report{WallMS: millis(time.Since(t.start)), Phases: make([]PhaseReport, len(t.phases))}
	for i, p := range t.phases {
		r.Phases[i] = PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Count: p.Count}
	}
	return r
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  x%d\n", p.Name, p.DurationMS, p.Count)
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "wall", r.WallMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
