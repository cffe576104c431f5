package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
)

// ConfigName is the file Discover looks for.
const ConfigName = "hsfront.toml"

// Config mirrors hsfront.toml. Zero sections mean defaults.
type Config struct {
	Language    LanguageConfig    `toml:"language"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Parse       ParseConfig       `toml:"parse"`
	Cache       CacheConfig       `toml:"cache"`
	Index       IndexConfig       `toml:"index"`

	// Path and Root are filled in by Load; Root is where relative paths
	// in the file are resolved from.
	Path string `toml:"-"`
	Root string `toml:"-"`
}

type LanguageConfig struct {
	// Extensions gates extension syntax. nil accepts everything; an empty
	// list warns about every extension not enabled by a LANGUAGE pragma.
	Extensions []string `toml:"extensions"`
}

type DiagnosticsConfig struct {
	Max               int  `toml:"max"`
	WarnDefaultFixity bool `toml:"warn_default_fixity"`
}

type ParseConfig struct {
	Jobs    int      `toml:"jobs"`
	Exclude []string `toml:"exclude"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type IndexConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used without hsfront.toml.
func Default() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Max: 100, WarnDefaultFixity: true},
		Parse:       ParseConfig{Exclude: []string{"dist-newstyle", ".stack-work", ".git"}},
		Cache:       CacheConfig{Enabled: true, Dir: ".hsfront/cache"},
		Index:       IndexConfig{Path: ".hsfront/index.db"},
		Root:        ".",
	}
}

// ErrBadConfig is wrapped by every validation error.
var ErrBadConfig = errors.New("invalid " + ConfigName)

// Load reads path over Default. Keys the schema does not know are
// returned as warnings, not errors.
func Load(path string) (Config, []string, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	var warnings []string
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("%s: unknown option %q", path, key.String()))
	}
	if !meta.IsDefined("language", "extensions") {
		cfg.Language.Extensions = nil
	} else if cfg.Language.Extensions == nil {
		cfg.Language.Extensions = []string{}
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return Config{}, warnings, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, warnings, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("%w: [diagnostics].max must not be negative", ErrBadConfig)
	}
	if c.Parse.Jobs < 0 {
		return fmt.Errorf("%w: [parse].jobs must not be negative", ErrBadConfig)
	}
	// сохраняем в uint32-счётчики драйвера
	if _, err := safecast.Conv[uint32](c.Parse.Jobs); err != nil {
		return fmt.Errorf("%w: [parse].jobs: %w", ErrBadConfig, err)
	}
	for _, ext := range c.Language.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("%w: empty name in [language].extensions", ErrBadConfig)
		}
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Dir) == "" {
		return fmt.Errorf("%w: [cache].dir is empty", ErrBadConfig)
	}
	return nil
}

// Jobs returns the worker count, GOMAXPROCS when unset.
func (c *Config) Jobs() int {
	if c.Parse.Jobs > 0 {
		return c.Parse.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Resolve makes a path from the file relative to Root.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Excluded reports whether a directory with this base name is skipped.
func (c *Config) Excluded(name string) bool {
	for _, ex := range c.Parse.Exclude {
		if ok, _ := filepath.Match(ex, name); ok {
			return true
		}
	}
	return false
}

// Discover walks up from startDir looking for hsfront.toml.
func Discover(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadFor discovers and loads the configuration governing target. Without
// a config file it returns Default.
func LoadFor(target string) (Config, []string, error) {
	path, ok, err := Discover(target)
	if err != nil {
		return Config{}, nil, err
	}
	if !ok {
		return Default(), nil, nil
	}
	return Load(path)
}
