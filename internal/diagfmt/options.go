package diagfmt

import "hsfront/internal/source"

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	// PathModeAuto prints paths as they were given.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative // relative to BaseDir
	PathModeBasename
)

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   int // extra source lines shown above the primary line
	PathMode  PathMode
	BaseDir   string
	ShowNotes bool
	Max       int // 0 - без ограничения
}

// JSONOpts configures JSON and YAML output.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int
	IncludeNotes     bool
}

// SarifRunMeta describes the tool in SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

func displayPath(f *source.File, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := source.AbsolutePath(f.Path); err == nil {
			return abs
		}
	case PathModeRelative:
		if base != "" {
			if rel, err := source.RelativePath(f.Path, base); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return source.BaseName(f.Path)
	}
	return f.Path
}
