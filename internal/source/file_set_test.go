package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Main.hs", []byte("main = pure ()"), 0)
	id2 := fs.Add("Main.hs", []byte("main = print 1"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("Main.hs")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "main = pure ()" {
		t.Errorf("old version content changed: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestPositionExpandsTabs(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.hs", []byte("f = do\n\tx\n  \ty\nz\n"))
	f := fs.Get(id)

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"start", 0, LineCol{Line: 1, Col: 1}},
		{"after eq", 4, LineCol{Line: 1, Col: 5}},
		{"newline belongs to line", 6, LineCol{Line: 1, Col: 7}},
		{"tab at column one", 8, LineCol{Line: 2, Col: 9}},
		{"spaces then tab", 13, LineCol{Line: 3, Col: 9}},
		{"third line", 15, LineCol{Line: 4, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Position(tt.off); got != tt.want {
				t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.hs", []byte("a\nbb\n\nccc")))
	want := []string{"", "a", "bb", "", "ccc", ""}
	for i, w := range want {
		if got := f.GetLine(uint32(i)); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "M.hs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFmodule M where\r\nx = 1\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "module M where\nx = 1\n" {
		t.Errorf("content not normalised: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
}

func TestAddVirtualKeepsBytes(t *testing.T) {
	fs := NewFileSet()
	src := []byte("x = 1\r\n")
	f := fs.Get(fs.AddVirtual("<stdin>", src))
	if string(f.Content) != string(src) {
		t.Errorf("virtual content altered: %q", f.Content)
	}
	if f.Hash == 0 {
		t.Error("expected non-zero content hash")
	}
}
