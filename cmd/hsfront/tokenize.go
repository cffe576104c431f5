package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hsfront/internal/diagfmt"
	"hsfront/internal/driver"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.hs|->",
	Short: "Tokenize a Haskell source file",
	Long:  `Tokenize breaks a Haskell source file into lexemes, comments and whitespace included with --trivia`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

var layoutCmd = &cobra.Command{
	Use:   "layout [flags] <file.hs|->",
	Short: "Show the token stream after the layout algorithm",
	Long:  `Layout prints the tokens with the virtual braces and semicolons the layout rule inserts`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLayout,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	tokenizeCmd.Flags().Bool("trivia", false, "include comments and whitespace")
	layoutCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

// loadInput reads path into a fresh file set; "-" reads stdin.
func loadInput(in io.Reader, path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	if path == "-" {
		src, err := io.ReadAll(in)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return fs, fs.Get(fs.AddVirtual("<stdin>", src)), nil
	}
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fs, fs.Get(id), nil
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}

	cfg, err := loadConfig(cmd, filePath)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}

	fs, file, err := loadInput(cmd.InOrStdin(), filePath)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	result := driver.TokenizeFile(cmd.Context(), fs, file, opts)

	// Выводим диагностику в stderr, если есть
	stderrDiagnostics(cmd, result.Bag, result.FileSet, "")

	if err := writeTokens(cmd.OutOrStdout(), format, result.Tokens, diagfmt.TokenFilter{Trivia: trivia}); err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	if result.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	cfg, err := loadConfig(cmd, filePath)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}

	fs, file, err := loadInput(cmd.InOrStdin(), filePath)
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}
	result := driver.LayoutFile(cmd.Context(), fs, file, opts)
	stderrDiagnostics(cmd, result.Bag, result.FileSet, "")

	toks := make([]token.Token, len(result.Items))
	for i, it := range result.Items {
		toks[i] = it.Token
	}
	if err := writeTokens(cmd.OutOrStdout(), format, toks, diagfmt.TokenFilter{}); err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	if result.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

func writeTokens(w io.Writer, format string, toks []token.Token, filter diagfmt.TokenFilter) error {
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(w, toks, filter)
	case "json":
		return diagfmt.FormatTokensJSON(w, toks, filter)
	case "yaml":
		return diagfmt.FormatTokensYAML(w, toks, filter)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
