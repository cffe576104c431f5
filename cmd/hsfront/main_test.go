package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hsfront/internal/diag"
	"hsfront/internal/source"
)

// execute runs the CLI in-process. Flags keep their values between runs,
// so every test passes the flags it depends on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--color", "off", "--ui", "off"}, args...))
	err := rootCmd.Execute()
	profileCleanup()
	traceCleanup()
	return out.String(), err
}

// writeProject writes files under a temp dir with an hsfront.toml that keeps the
// cache and index inside it.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["hsfront.toml"] = "[cache]\nenabled = true\ndir = \"cache\"\n\n[index]\npath = \"index.db\"\n"
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("want error for unknown mode")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit modes ignored")
	}
}

func TestRenderVersion(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitCommit: "abc"}
	var buf bytes.Buffer
	renderVersionPretty(&buf, info, versionOptions{showHash: true, showDate: true})
	want := "hsfront 1.2.3\ncommit: abc\nbuilt:  unknown\n"
	if buf.String() != want {
		t.Errorf("pretty:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := renderVersionData(&buf, info, versionOptions{format: "yaml", showHash: true}); err != nil {
		t.Fatal(err)
	}
	if want := "tool: hsfront\nversion: 1.2.3\ngit_commit: abc\n"; buf.String() != want {
		t.Errorf("yaml:\n%s", buf.String())
	}

	buf.Reset()
	if err := renderVersionData(&buf, info, versionOptions{format: "json"}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "git_commit") || !strings.Contains(buf.String(), `"version": "1.2.3"`) {
		t.Errorf("json:\n%s", buf.String())
	}
}

func TestWithoutWarnings(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.PrjNameMismatch, source.Span{}, "w"))
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "e"))
	got := withoutWarnings(bag)
	if got.Len() != 1 || got.Items()[0].Severity != diag.SevError {
		t.Errorf("kept %v", got.Items())
	}
}

func TestTokenizeCommand(t *testing.T) {
	root := writeProject(t, map[string]string{"Main.hs": "f = 1 -- one\n"})
	out, err := execute(t, "tokenize", "--format", "pretty", "--trivia=false", filepath.Join(root, "Main.hs"))
	if err != nil {
		t.Fatalf("tokenize: %v\n%s", err, out)
	}
	if !strings.Contains(out, "VarId(f)") || strings.Contains(out, "LineComment") {
		t.Errorf("output:\n%s", out)
	}

	out, err = execute(t, "layout", "--format", "pretty", filepath.Join(root, "Main.hs"))
	if err != nil {
		t.Fatalf("layout: %v\n%s", err, out)
	}
	if !strings.Contains(out, "VOpen") || !strings.Contains(out, "VClose") {
		t.Errorf("layout output:\n%s", out)
	}
}

func TestParseCommand(t *testing.T) {
	root := writeProject(t, map[string]string{"Main.hs": "main = pure ()\n"})
	out, err := execute(t, "parse", "--format", "tree", "--tokens=false", "--spans=false", filepath.Join(root, "Main.hs"))
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "Module\n") || !strings.Contains(out, "ValueDeclaration") {
		t.Errorf("output:\n%s", out)
	}
}

func TestDiagCommand(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/A.hs": "module A where\nimport B\na = 1\n",
		"src/B.hs": "module B where\nb = = 2\n",
	})
	src := filepath.Join(root, "src")
	out, err := execute(t, "diag", "--format", "short", "--no-cache=false", "--no-warnings=false", "--warnings-as-errors=false", src)
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("err = %v\n%s", err, out)
	}
	if !strings.Contains(out, "B.hs:2:") || strings.Contains(out, "A.hs") {
		t.Errorf("output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "cache")); err != nil {
		t.Errorf("cache not written: %v", err)
	}

	out, err = execute(t, "deps", "--format", "pretty", "--external=false", src)
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("deps err = %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "B\nA\n  -> B\n") {
		t.Errorf("deps output:\n%s", out)
	}
}

func TestIndexAndLookup(t *testing.T) {
	root := writeProject(t, map[string]string{
		"Data/Pair.hs": "module Data.Pair where\ndata Pair a = Pair a a\nswap :: Pair a -> Pair a\nswap (Pair x y) = Pair y x\n",
	})
	db := filepath.Join(root, "index.db")
	out, err := execute(t, "index", "--db", db, "--prune=true", root)
	if err != nil {
		t.Fatalf("index: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 added") {
		t.Errorf("index output:\n%s", out)
	}

	out, err = execute(t, "lookup", "--db", db, "--module=false", "--files=false", "--format", "pretty", "swap")
	if err != nil {
		t.Fatalf("lookup: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Pair.hs:3:1") || !strings.Contains(out, "Data.Pair") {
		t.Errorf("lookup output:\n%s", out)
	}

	_, err = execute(t, "lookup", "--db", db, "--module=false", "--files=false", "missing")
	if !errors.Is(err, errHasErrors) {
		t.Errorf("missing name: err = %v", err)
	}
}
