package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hsfront/internal/index"
	"hsfront/internal/project"
)

var indexCmd = &cobra.Command{
	Use:   "index [flags] <directory>",
	Short: "Record the declarations of a source tree in the SQLite index",
	Long:  `Index parses every module under a directory and stores its declarations for lookup; unchanged files are skipped`,
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [flags] <name>",
	Short: "Find declarations in the index",
	Long:  `Lookup prints where a name is declared, or with --module every declaration of a module`,
	Args:  cobra.RangeArgs(0, 1),
	RunE:  runLookup,
}

func init() {
	indexCmd.Flags().String("db", "", "index database (default: [index].path of hsfront.toml)")
	indexCmd.Flags().Bool("prune", true, "drop files that no longer exist under the directory")
	indexCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	indexCmd.Flags().Bool("no-cache", false, "do not read or write the summary cache")

	lookupCmd.Flags().String("db", "", "index database (default: [index].path of hsfront.toml)")
	lookupCmd.Flags().Bool("module", false, "treat the argument as a module name")
	lookupCmd.Flags().Bool("files", false, "list indexed files instead")
	lookupCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func indexPath(cmd *cobra.Command, cfg project.Config) (string, error) {
	db, err := cmd.Flags().GetString("db")
	if err != nil {
		return "", fmt.Errorf("failed to get db flag: %w", err)
	}
	if db != "" {
		return db, nil
	}
	return cfg.Resolve(cfg.Index.Path), nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	target := args[0]

	prune, err := cmd.Flags().GetBool("prune")
	if err != nil {
		return fmt.Errorf("failed to get prune flag: %w", err)
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
	dbPath, err := indexPath(cmd, cfg)
	if err != nil {
		return err
	}

	withUI, err := useTUI(cmd)
	if err != nil {
		return err
	}
	res, err := runParseDir(cmd.Context(), "indexing "+target, target, opts, withUI)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	ix, err := index.Open(dbPath)
	if err != nil {
		return err
	}
	defer ix.Close()

	stats, err := ix.Update(cmd.Context(), res.Summaries(), prune)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", dbPath, stats)

	if errs := res.Errors(); errs > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d error(s); run hsfront diag %s for details\n", errs, target)
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	byModule, err := cmd.Flags().GetBool("module")
	if err != nil {
		return fmt.Errorf("failed to get module flag: %w", err)
	}
	listFiles, err := cmd.Flags().GetBool("files")
	if err != nil {
		return fmt.Errorf("failed to get files flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	if !listFiles && len(args) == 0 {
		return errors.New("lookup needs a name, or --files")
	}

	cfg, err := loadConfig(cmd, ".")
	if err != nil {
		return err
	}
	dbPath, err := indexPath(cmd, cfg)
	if err != nil {
		return err
	}
	ix, err := index.Open(dbPath)
	if err != nil {
		return err
	}
	defer ix.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if listFiles {
		files, err := ix.Files(ctx)
		if err != nil {
			return err
		}
		if format == "json" {
			return writeJSON(out, files)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, f := range files {
			fmt.Fprintf(tw, "%s\t%s\t%d decls\t%d errors\n", f.Path, f.Module, f.Decls, f.Errors)
		}
		return tw.Flush()
	}

	var decls []index.Decl
	if byModule {
		decls, err = ix.ModuleDecls(ctx, args[0])
	} else {
		decls, err = ix.Lookup(ctx, args[0])
	}
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: not found in %s\n", args[0], dbPath)
			return errHasErrors
		}
		return err
	}
	if format == "json" {
		return writeJSON(out, decls)
	}
	return writeDecls(out, decls)
}

func writeDecls(w io.Writer, decls []index.Decl) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range decls {
		name := d.Name
		if d.Parent != "" {
			name = d.Parent + "." + d.Name
		}
		fmt.Fprintf(tw, "%s:%d:%d\t%s\t%s\t%s\n", d.Path, d.Line, d.Col, d.Kind, d.Module, name)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
