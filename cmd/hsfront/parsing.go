package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hsfront/internal/cst"
	"hsfront/internal/diagfmt"
	"hsfront/internal/driver"
	"hsfront/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.hs|directory|->",
	Short: "Parse Haskell sources and print the syntax tree",
	Long:  `Parse builds the concrete syntax tree of a file, or of every *.hs file under a directory, and prints it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|sexpr|json|yaml|none)")
	parseCmd.Flags().Bool("tokens", false, "print tokens under their nodes")
	parseCmd.Flags().Bool("trivia", false, "include comments and whitespace tokens")
	parseCmd.Flags().Bool("spans", false, "print line:col ranges")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	var treeOpts diagfmt.TreeOpts
	if treeOpts.Tokens, err = cmd.Flags().GetBool("tokens"); err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	if treeOpts.Trivia, err = cmd.Flags().GetBool("trivia"); err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	if treeOpts.Spans, err = cmd.Flags().GetBool("spans"); err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}
	switch format {
	case "tree", "sexpr", "json", "yaml", "none":
	default:
		return fmt.Errorf("unknown format: %s", format)
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
	out := cmd.OutOrStdout()

	if !dir {
		_, file, err := loadInput(cmd.InOrStdin(), target)
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		fs, res := driver.ParseSource(cmd.Context(), file.Path, file.Content, opts)
		if err := writeTree(out, format, res.Tree, fs, treeOpts); err != nil {
			return err
		}
		stderrDiagnostics(cmd, res.Bag, fs, "")
		printTimings(cmd.ErrOrStderr(), opts.Timer)
		if res.Bag.HasErrors() {
			return errHasErrors
		}
		return nil
	}

	withUI, err := useTUI(cmd)
	if err != nil {
		return err
	}
	res, err := runParseDir(cmd.Context(), "parsing "+target, target, opts, withUI)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	for i := range res.Results {
		fr := &res.Results[i]
		if fr.Tree == nil || format == "none" {
			continue
		}
		if format == "tree" || format == "sexpr" {
			fmt.Fprintf(out, "== %s ==\n", relTo(target, fr.Path))
		}
		if err := writeTree(out, format, fr.Tree, res.FileSet, treeOpts); err != nil {
			return err
		}
	}
	stderrDiagnostics(cmd, res.Bag(), res.FileSet, target)
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	if res.Errors() > 0 {
		return errHasErrors
	}
	return nil
}

func writeTree(w io.Writer, format string, tree *cst.Tree, fs *source.FileSet, opts diagfmt.TreeOpts) error {
	switch format {
	case "tree":
		return diagfmt.FormatTree(w, tree, fs, opts)
	case "sexpr":
		_, err := fmt.Fprintln(w, diagfmt.Sexpr(tree, tree.Root))
		return err
	case "json":
		return diagfmt.FormatTreeJSON(w, tree, opts)
	case "yaml":
		return diagfmt.FormatTreeYAML(w, tree, opts)
	case "none":
		return nil
	}
	return fmt.Errorf("unknown format: %s", format)
}
