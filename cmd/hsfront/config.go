package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hsfront/internal/diag"
	"hsfront/internal/driver"
	"hsfront/internal/observ"
	"hsfront/internal/project"
)

// loadConfig returns the hsfront.toml in effect for target: the one named
// by --config, or the nearest one above target. Unknown keys are printed
// as warnings.
func loadConfig(cmd *cobra.Command, target string) (project.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var (
		cfg      project.Config
		warnings []string
	)
	if path != "" {
		cfg, warnings, err = project.Load(path)
	} else {
		if target == "" || target == "-" {
			target = "."
		}
		cfg, warnings, err = project.LoadFor(target)
	}
	printConfigWarnings(cmd.ErrOrStderr(), warnings)
	if err != nil {
		return project.Config{}, err
	}
	return cfg, nil
}

func printConfigWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "warning %s: %s\n", diag.PrjUnknownOption.ID(), msg)
	}
}

// driverOptions maps cfg and the global flags onto driver options. The
// timer is nil unless --timings is set.
func driverOptions(cmd *cobra.Command, cfg project.Config) (driver.Options, error) {
	opts := driver.OptionsFromConfig(cfg)

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics > 0 {
		opts.MaxDiagnostics = maxDiagnostics
	}

	if f := cmd.Flags().Lookup("jobs"); f != nil {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs > 0 {
			opts.Jobs = jobs
		}
	}

	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

// attachCache opens the summary cache when the config enables it and the
// command was not run with --no-cache. A cache that cannot be opened is
// reported and skipped.
func attachCache(cmd *cobra.Command, cfg project.Config, opts *driver.Options) error {
	if !cfg.Cache.Enabled {
		return nil
	}
	if f := cmd.Flags().Lookup("no-cache"); f != nil {
		noCache, err := cmd.Flags().GetBool("no-cache")
		if err != nil {
			return fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		if noCache {
			return nil
		}
	}
	cache, err := driver.OpenCache(cfg.Resolve(cfg.Cache.Dir))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning %s: cache disabled: %v\n", diag.IOCacheError.ID(), err)
		return nil
	}
	opts.Cache = cache
	return nil
}

// useColor reports whether output to f is colored under --color.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// isDir reports whether path names a directory.
func isDir(path string) (bool, error) {
	if path == "-" {
		return false, nil
	}
	st, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return st.IsDir(), nil
}
