package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hsfront/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hsfront",
	Short: "Haskell source front end",
	Long:  `hsfront lexes, lays out and parses Haskell 2010 sources (plus common GHC extensions) into concrete syntax trees and diagnostics`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profileCleanup = stopProfiling
		return nil
	},
}

// Cleanups run once the command has finished.
var (
	traceCleanup   = func() {}
	profileCleanup = func() {}
)

// errHasErrors is returned by commands that ran fine but found error
// diagnostics; the process exits with status 1 without printing it.
var errHasErrors = errors.New("errors reported")

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(crosscheckCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to hsfront.toml (default: discovered from the target)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from config)")
	rootCmd.PersistentFlags().String("ui", "auto", "progress UI for directories (auto|on|off)")

	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	err := rootCmd.Execute()
	profileCleanup()
	traceCleanup()
	if err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintf(os.Stderr, "hsfront: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
