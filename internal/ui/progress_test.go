package ui

import (
	"fmt"
	"strings"
	"testing"

	"hsfront/internal/driver"
)

func TestApplyEvent(t *testing.T) {
	m := NewProgressModel("parse", []string{"A.hs"}, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "A.hs", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Errorf("status %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "B.hs", Stage: driver.StageSummarize, Status: driver.StatusError, Errors: 2})
	if len(m.items) != 2 || m.items[1].status != "error" || m.items[1].errors != 2 {
		t.Fatalf("items %+v", m.items)
	}
	if got := m.percent(); got != (0.4+1.0)/2 {
		t.Errorf("percent %v", got)
	}
	m.applyEvent(driver.Event{File: "A.hs", Stage: driver.StageSummarize, Status: driver.StatusCached})
	if got := m.counts(); got != "  0 parsed, 1 cached, 1 with errors" {
		t.Errorf("counts %q", got)
	}
	if m.percent() != 1.0 {
		t.Errorf("percent %v", m.percent())
	}
}

func TestViewWindow(t *testing.T) {
	m := NewProgressModel("parse", nil, nil).(*progressModel)
	for i := range maxRows + 3 {
		m.applyEvent(driver.Event{File: fmt.Sprintf("M%02d.hs", i), Stage: driver.StageLoad, Status: driver.StatusQueued})
	}
	m.applyEvent(driver.Event{File: "M00.hs", Stage: driver.StageParse, Status: driver.StatusWorking})

	view := m.View()
	if !strings.Contains(view, "3 more") {
		t.Errorf("no overflow line:\n%s", view)
	}
	if !strings.Contains(view, "M00.hs") || strings.Contains(view, "M01.hs") {
		t.Errorf("window does not follow recent files:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/Data/Map/Internal.hs", 12); got != "src/Da..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("A.hs", 12); got != "A.hs" {
		t.Errorf("truncate = %q", got)
	}
}
