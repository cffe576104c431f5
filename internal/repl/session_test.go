package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"hsfront/internal/driver"
)

func feed(t *testing.T, s *Session, lines ...string) bool {
	t.Helper()
	for _, l := range lines {
		if s.Feed(context.Background(), l) {
			return true
		}
	}
	return false
}

func TestTreeMode(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, driver.Options{})
	feed(t, s, "x = 1")
	got := out.String()
	if !strings.HasPrefix(got, "Module\n") || !strings.Contains(got, "ValueDeclaration") {
		t.Errorf("tree output:\n%s", got)
	}
}

func TestModeSwitch(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, driver.Options{})
	feed(t, s, ":mode tokens", "f x")
	if s.Mode != ModeTokens {
		t.Fatalf("mode %s", s.Mode)
	}
	if got := out.String(); !strings.Contains(got, "VarId(f)") || strings.Contains(got, "Whitespace") {
		t.Errorf("token output:\n%s", got)
	}

	out.Reset()
	feed(t, s, ":mode layout", "f x")
	if got := out.String(); !strings.Contains(got, "VOpen") {
		t.Errorf("layout output:\n%s", got)
	}

	out.Reset()
	feed(t, s, ":mode nonsense")
	if s.Mode != ModeLayout || !strings.Contains(out.String(), "unknown mode") {
		t.Errorf("mode %s, output %q", s.Mode, out.String())
	}

	out.Reset()
	feed(t, s, ":mode")
	if out.String() != "mode: layout\n" {
		t.Errorf("output %q", out.String())
	}
}

func TestDiagMode(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, driver.Options{})
	feed(t, s, ":mode diag", "x = 1")
	if out.String() != "no diagnostics\n" {
		t.Errorf("clean snippet: %q", out.String())
	}
	out.Reset()
	feed(t, s, "f x = = 1")
	if got := out.String(); !strings.Contains(got, "<interactive:2>:1:") || !strings.Contains(got, "error SYN") {
		t.Errorf("diagnostics:\n%s", got)
	}
}

func TestMultiLineBlock(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, driver.Options{})
	feed(t, s, ":mode diag", ":{", "f = go", "  where go = 1", "")
	if !s.Continuing() || out.Len() != 0 {
		t.Fatalf("block closed early: %q", out.String())
	}
	feed(t, s, ":}")
	if s.Continuing() || out.String() != "no diagnostics\n" {
		t.Errorf("continuing=%v output %q", s.Continuing(), out.String())
	}

	feed(t, s, ":{", "broken =")
	s.Reset()
	if s.Continuing() {
		t.Error("Reset left the block open")
	}
}

func TestQuit(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, driver.Options{})
	if feed(t, s, "", ":help") {
		t.Error("quit on help")
	}
	if !strings.Contains(out.String(), ":quit") {
		t.Errorf("help %q", out.String())
	}
	if !feed(t, s, ":q") {
		t.Error(":q did not quit")
	}
}
