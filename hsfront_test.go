package hsfront_test

import (
	"testing"

	"hsfront"
	"hsfront/internal/diag"
)

func TestParse(t *testing.T) {
	res := hsfront.Parse("Main.hs", []byte("module Main (main) where\n\nmain :: IO ()\nmain = pure ()\n"))
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Diagnostics.Items())
	}
	m := res.Module()
	if got := m.ModuleName(); got != "Main" {
		t.Errorf("ModuleName = %q", got)
	}
	if got := len(m.Declarations()); got != 2 {
		t.Errorf("want 2 declarations, got %d", got)
	}
	if int(res.Tree.Span(res.Tree.Root).End) != len("module Main (main) where\n\nmain :: IO ()\nmain = pure ()\n") {
		t.Error("tree does not cover the source")
	}
}

func TestParseReportsErrors(t *testing.T) {
	var seen []diag.Diagnostic
	res := hsfront.Parse("Bad.hs", []byte("f = = 1\n"),
		hsfront.WithReporter(diag.ReporterFunc(func(d diag.Diagnostic) { seen = append(seen, d) })))
	if !res.HasErrors() {
		t.Fatal("want an error")
	}
	if len(seen) != res.Diagnostics.Len() {
		t.Errorf("reporter saw %d, bag has %d", len(seen), res.Diagnostics.Len())
	}
}

func TestParseExtensionGating(t *testing.T) {
	src := []byte("f = \\case\n  _ -> 1\n")
	if res := hsfront.Parse("t.hs", src); res.Diagnostics.HasWarnings() {
		t.Errorf("ungated parse warned: %v", res.Diagnostics.Items())
	}
	if res := hsfront.Parse("t.hs", src, hsfront.WithExtensions()); !res.Diagnostics.HasWarnings() && !res.HasErrors() {
		t.Error("LambdaCase accepted without the extension")
	}
	if res := hsfront.Parse("t.hs", src, hsfront.WithExtensions("LambdaCase")); res.Diagnostics.Len() != 0 {
		t.Errorf("enabled extension still reported: %v", res.Diagnostics.Items())
	}
}
