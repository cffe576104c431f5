package driver

import (
	"hsfront/internal/observ"
	"hsfront/internal/parser"
	"hsfront/internal/project"
)

// Options configure one driver run.
type Options struct {
	MaxDiagnostics int
	// Extensions gates extension syntax; see parser.Options.
	Extensions         []string
	QuietDefaultFixity bool

	Jobs    int
	Exclude func(dirName string) bool

	// Cache, when set, stores summaries of parsed files. ParseDir with
	// NeedTrees unset reuses them instead of reparsing.
	Cache     *Cache
	NeedTrees bool

	// Events receives progress; the driver never closes it.
	Events chan<- Event
	Timer  *observ.Timer
}

// OptionsFromConfig maps hsfront.toml onto driver options. The cache is
// opened by the caller.
func OptionsFromConfig(cfg project.Config) Options {
	return Options{
		MaxDiagnostics:     cfg.Diagnostics.Max,
		Extensions:         cfg.Language.Extensions,
		QuietDefaultFixity: !cfg.Diagnostics.WarnDefaultFixity,
		Jobs:               cfg.Jobs(),
		Exclude:            cfg.Excluded,
	}
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{
		MaxErrors:          o.MaxDiagnostics,
		Extensions:         o.Extensions,
		QuietDefaultFixity: o.QuietDefaultFixity,
	}
}
