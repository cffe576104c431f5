package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hsfront/internal/diag"
	"hsfront/internal/diagfmt"
	"hsfront/internal/source"
	"hsfront/internal/version"
)

// diagOutput collects the rendering flags shared by the commands that print
// diagnostics.
type diagOutput struct {
	format     string
	color      bool
	context    int
	withNotes  bool
	noWarnings bool
	pathMode   diagfmt.PathMode
	baseDir    string
	max        int
	args       []string
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, out diagOutput) error {
	if out.noWarnings {
		bag = withoutWarnings(bag)
	}
	switch out.format {
	case "pretty", "":
		if bag.Len() == 0 {
			return nil
		}
		return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     out.color,
			Context:   out.context,
			PathMode:  out.pathMode,
			BaseDir:   out.baseDir,
			ShowNotes: out.withNotes,
			Max:       out.max,
		})
	case "short":
		if bag.Len() == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, diag.FormatShort(bag.Items(), fs, out.withNotes))
		return err
	case "json", "yaml":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         out.pathMode,
			BaseDir:          out.baseDir,
			Max:              out.max,
			IncludeNotes:     out.withNotes,
		}
		if out.format == "yaml" {
			return diagfmt.YAML(w, bag, fs, opts)
		}
		return diagfmt.JSON(w, bag, fs, opts)
	case "sarif":
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "hsfront",
			ToolVersion:    version.Version,
			InvocationArgs: out.args,
		})
	default:
		return fmt.Errorf("unknown format: %s", out.format)
	}
}

// withoutWarnings copies bag keeping only errors and infos.
func withoutWarnings(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(0)
	for _, d := range bag.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning }) {
		out.Add(d)
	}
	return out
}

// stderrDiagnostics prints bag to stderr as pretty text, the way every
// command other than diag reports problems next to its main output.
func stderrDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, baseDir string) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	out := diagOutput{
		format:   "pretty",
		color:    useColor(cmd, os.Stderr),
		context:  2,
		pathMode: diagfmt.PathModeAuto,
	}
	if baseDir != "" {
		out.pathMode = diagfmt.PathModeRelative
		out.baseDir = baseDir
	}
	if err := writeDiagnostics(cmd.ErrOrStderr(), bag, fs, out); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to print diagnostics: %v\n", err)
	}
}

// relTo renders path relative to base when possible.
func relTo(base, path string) string {
	if base == "" {
		return path
	}
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
