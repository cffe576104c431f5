package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAggregates(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("lex", time.Millisecond)
			tm.Add("parse", 2*time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("want 2 phases, got %d", len(r.Phases))
	}
	for _, p := range r.Phases {
		if p.Count != 8 {
			t.Errorf("%s counted %d times", p.Name, p.Count)
		}
	}
	if got := r.Phases[0].DurationMS + r.Phases[1].DurationMS; got != 24 {
		t.Errorf("total %v ms", got)
	}
	if s := tm.Summary(); !strings.Contains(s, "wall") {
		t.Errorf("summary:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Add("lex", time.Second)
}
