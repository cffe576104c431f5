package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hsfront/internal/crosscheck"
	"hsfront/internal/driver"
)

var crosscheckCmd = &cobra.Command{
	Use:   "crosscheck [flags] <file.hs|directory>",
	Short: "Compare top-level parses with tree-sitter-haskell",
	Long: `Crosscheck parses each file with hsfront and with tree-sitter-haskell and
compares how many imports, signatures, bindings and other top-level items
each one found.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrosscheck,
}

func init() {
	crosscheckCmd.Flags().Bool("verbose", false, "print the counts of matching files too")
	crosscheckCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runCrosscheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.NeedTrees = true

	dir, err := isDir(target)
	if err != nil {
		return err
	}
	var res *driver.DirResult
	if dir {
		res, err = driver.ParseDir(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("crosscheck failed: %w", err)
		}
	} else {
		fs, fr, err := driver.ParseFile(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("crosscheck failed: %w", err)
		}
		res = &driver.DirResult{Root: target, FileSet: fs, Results: []driver.FileResult{*fr}}
	}

	out := cmd.OutOrStdout()
	checked, failed := 0, 0
	for i := range res.Results {
		fr := &res.Results[i]
		if fr.Tree == nil {
			continue
		}
		report, err := crosscheck.Check(fr.Path, res.FileSet.Get(fr.FileID).Content, fr.Tree)
		if err != nil {
			return err
		}
		checked++
		if !report.OK() {
			failed++
		}
		writeCrosscheck(out, report, verbose)
	}
	fmt.Fprintf(out, "%d file(s) checked, %d mismatched\n", checked, failed)
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	if failed > 0 {
		return errHasErrors
	}
	return nil
}

func writeCrosscheck(w io.Writer, r *crosscheck.Report, verbose bool) {
	if r.OK() {
		if verbose {
			fmt.Fprintf(w, "ok   %s  %s\n", r.Path, r.Ours)
		}
		return
	}
	note := ""
	if r.OracleErrors {
		note = " (tree-sitter recovered from errors)"
	}
	fmt.Fprintf(w, "diff %s%s\n", r.Path, note)
	for _, m := range r.Mismatches {
		fmt.Fprintf(w, "     %-10s hsfront=%d tree-sitter=%d\n", m.Category, m.Ours, m.Oracle)
	}
}
