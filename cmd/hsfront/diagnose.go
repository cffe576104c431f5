package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hsfront/internal/diag"
	"hsfront/internal/diagfmt"
	"hsfront/internal/driver"
	"hsfront/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.hs|directory|->",
	Short: "Report syntax diagnostics for Haskell sources",
	Long: `Diag parses a file, or every *.hs file under a directory, and reports lexical,
layout and syntax diagnostics. For directories it also checks module names
against paths, duplicate modules and import cycles.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml|sarif)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Int("context", 2, "source lines shown above each diagnostic")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("no-cache", false, "do not read or write the summary cache")
}

// runDiagnose prints the diagnostics of a file or directory. It returns
// errHasErrors when any error was found (or any warning with
// --warnings-as-errors).
func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]

	out := diagOutput{args: os.Args[1:]}
	var err error
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if out.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if out.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if out.context, err = cmd.Flags().GetInt("context"); err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	switch out.format {
	case "pretty", "short", "json", "yaml", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", out.format)
	}
	out.color = out.format == "pretty" && useColor(cmd, os.Stdout)

	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	if err := attachCache(cmd, cfg, &opts); err != nil {
		return err
	}

	dir, err := isDir(target)
	if err != nil {
		return err
	}

	var (
		bag *diag.Bag
		fs  *source.FileSet
	)
	if dir {
		withUI, err := useTUI(cmd)
		if err != nil {
			return err
		}
		// прогресс рисуем только когда stdout занят не машинным форматом
		withUI = withUI && out.format == "pretty"
		res, err := runParseDir(cmd.Context(), "checking "+target, target, opts, withUI)
		if err != nil {
			return fmt.Errorf("diagnosis failed: %w", err)
		}
		driver.Imports(res)
		bag, fs = res.Bag(), res.FileSet
		out.pathMode, out.baseDir = diagfmt.PathModeRelative, target
	} else {
		var res *driver.FileResult
		if target == "-" {
			_, file, err := loadInput(cmd.InOrStdin(), target)
			if err != nil {
				return fmt.Errorf("diagnosis failed: %w", err)
			}
			fs, res = driver.ParseSource(cmd.Context(), file.Path, file.Content, opts)
		} else {
			fs, res, err = driver.ParseFile(cmd.Context(), target, opts)
			if err != nil {
				return fmt.Errorf("diagnosis failed: %w", err)
			}
		}
		bag = res.Bag
		bag.Sort()
	}
	if fullPath {
		out.pathMode = diagfmt.PathModeAbsolute
	}

	if err := writeDiagnostics(cmd.OutOrStdout(), bag, fs, out); err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)

	if bag.HasErrors() || (warningsAsErrors && bag.HasWarnings()) {
		return errHasErrors
	}
	return nil
}
