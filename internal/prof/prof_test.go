package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProfilerWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "run.trace"),
	}
	p, err := Start(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := p.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
	for _, path := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Errorf("%s: %v", filepath.Base(path), err)
		}
	}
}

func TestStartBadPath(t *testing.T) {
	if _, err := Start(Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")}); err == nil {
		t.Error("want error for unwritable path")
	}
	if (Config{}).Enabled() {
		t.Error("empty config enabled")
	}
	var p *Profiler
	if err := p.Stop(); err != nil {
		t.Error(err)
	}
}
