package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hsfront/internal/driver"
)

var depsCmd = &cobra.Command{
	Use:   "deps [flags] <directory>",
	Short: "Print the module import graph of a source tree",
	Long:  `Deps parses every module under a directory and lists them in dependency order with their local and external imports`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDeps,
}

func init() {
	depsCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	depsCmd.Flags().Bool("external", false, "list imports no parsed file defines")
	depsCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	depsCmd.Flags().Bool("no-cache", false, "do not read or write the summary cache")
}

type moduleDeps struct {
	Module   string   `json:"module" yaml:"module"`
	Imports  []string `json:"imports" yaml:"imports"`
	External []string `json:"external,omitempty" yaml:"external,omitempty"`
}

type depsPayload struct {
	Modules []moduleDeps `json:"modules" yaml:"modules"`
	// Cyclic lists modules left out of the order by an import cycle.
	Cyclic []string `json:"cyclic,omitempty" yaml:"cyclic,omitempty"`
}

func runDeps(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	external, err := cmd.Flags().GetBool("external")
	if err != nil {
		return fmt.Errorf("failed to get external flag: %w", err)
	}

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

	res, err := driver.ParseDir(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("deps failed: %w", err)
	}
	graph := driver.Imports(res)
	payload := buildDepsPayload(graph, external)

	switch format {
	case "pretty":
		writeDepsPretty(cmd.OutOrStdout(), payload)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	// дубликаты и циклы попали в пофайловые мешки
	stderrDiagnostics(cmd, res.Bag(), res.FileSet, target)
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	if res.Errors() > 0 {
		return errHasErrors
	}
	return nil
}

func buildDepsPayload(graph *driver.ImportGraph, external bool) depsPayload {
	var p depsPayload
	ordered := make(map[string]bool)
	for _, name := range graph.Order() {
		ordered[name] = true
		m := moduleDeps{Module: name, Imports: graph.Deps(name)}
		if m.Imports == nil {
			m.Imports = []string{}
		}
		if external {
			m.External = graph.External(name)
		}
		p.Modules = append(p.Modules, m)
	}
	for _, name := range graph.Index.IDToName {
		if name != "" && !ordered[name] {
			p.Cyclic = append(p.Cyclic, name)
		}
	}
	return p
}

func writeDepsPretty(w io.Writer, p depsPayload) {
	for _, m := range p.Modules {
		fmt.Fprintln(w, m.Module)
		for _, imp := range m.Imports {
			fmt.Fprintf(w, "  -> %s\n", imp)
		}
		for _, ext := range m.External {
			fmt.Fprintf(w, "  .. %s\n", ext)
		}
	}
	if len(p.Cyclic) > 0 {
		fmt.Fprintln(w, "in cycles:")
		for _, name := range p.Cyclic {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}
