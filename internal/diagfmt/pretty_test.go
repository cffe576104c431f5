package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"hsfront/internal/diag"
	"hsfront/internal/source"
)

func oneDiagnostic(path, content string, start, end uint32) (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(content))
	bag := diag.NewBag(0)
	d := diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: start, End: end}, "unexpected '='")
	bag.Add(d.WithNote(source.Span{File: id, Start: 0, End: 1}, "in this declaration"))
	return bag, fs
}

func TestPrettyCaret(t *testing.T) {
	bag, fs := oneDiagnostic("src/Main.hs", "module Main where\nf x = = 1\n", 24, 25)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "src/Main.hs:2:7: error SYN3001: unexpected '='\n" +
		"  2 | f x = = 1\n" +
		"    |       ^\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyTabsAndWideRunes(t *testing.T) {
	// таб расширяется до 8-й колонки, иероглиф занимает две
	bag, fs := oneDiagnostic("t.hs", "x =\t\"日本\" ++ y\n", 4, 12)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("output:\n%s", buf.String())
	}
	if want := "  1 | x =     \"日本\" ++ y"; lines[1] != want {
		t.Errorf("source line %q", lines[1])
	}
	if want := "    |         ^~~~~~"; lines[2] != want {
		t.Errorf("caret line %q", lines[2])
	}
}

func TestPrettyNotesAndContext(t *testing.T) {
	bag, fs := oneDiagnostic("t.hs", "module Main where\nf x = = 1\n", 24, 25)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, Context: 1}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"  1 | module Main where\n  2 | f x = = 1\n", "t.hs:1:1: note: in this declaration"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := oneDiagnostic("t.hs", "f = = 1\n", 4, 5)
	var plain, colored bytes.Buffer
	_ = Pretty(&plain, bag, fs, PrettyOpts{})
	_ = Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("escape codes without Color")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("no escape codes with Color")
	}
}

func TestPathModes(t *testing.T) {
	bag, fs := oneDiagnostic("/home/user/project/src/Main.hs", "f = = 1\n", 4, 5)
	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"as given", PathModeAuto, "/home/user/project/src/Main.hs:1:5:"},
		{"relative", PathModeRelative, "src/Main.hs:1:5:"},
		{"basename", PathModeBasename, "Main.hs:1:5:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_ = Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"})
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("got %q", buf.String())
			}
		})
	}
}

func TestPrettyMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.hs", []byte("a b c\n"))
	bag := diag.NewBag(0)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 2 * i, End: 2*i + 1}, "x"))
	}
	var buf bytes.Buffer
	_ = Pretty(&buf, bag, fs, PrettyOpts{Max: 1})
	if !strings.HasSuffix(buf.String(), "... and 2 more\n") {
		t.Errorf("got:\n%s", buf.String())
	}
}
