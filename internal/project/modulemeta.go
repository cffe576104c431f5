package project

import (
	"path/filepath"
	"strings"
	"unicode"

	"hsfront/internal/source"
)

// ImportMeta is one import declaration of a module.
type ImportMeta struct {
	Name string // "Data.Map"
	Span source.Span
}

// ModuleMeta is what the import graph needs to know about one file.
type ModuleMeta struct {
	Name    string      // "Main" for files without a header
	File    string      // path as loaded
	Span    source.Span // the module name, or the whole file without a header
	Imports []ImportMeta
	Hash    uint64 // xxh3 of the content
	Broken  bool   // the parse reported errors
}

// IsValidModuleName reports whether name is a dot-separated list of
// constructor identifiers.
func IsValidModuleName(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return false
		}
		for i, r := range seg {
			switch {
			case i == 0 && !unicode.IsUpper(r):
				return false
			case r != '_' && r != '\'' && !unicode.IsLetter(r) && !unicode.IsDigit(r):
				return false
			}
		}
	}
	return true
}

// PathMatchesModule reports whether the file at rel may declare name. The
// file's path must end with the module path, so any source root works.
func PathMatchesModule(rel, name string) bool {
	if name == "Main" {
		return true
	}
	want := strings.ReplaceAll(name, ".", "/") + ".hs"
	rel = filepath.ToSlash(filepath.Clean(rel))
	return rel == want || strings.HasSuffix(rel, "/"+want)
}
