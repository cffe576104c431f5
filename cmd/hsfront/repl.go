package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hsfront/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively tokenize, lay out and parse Haskell snippets",
	Long: `Repl reads Haskell one line at a time (or a :{ ... :} block) and prints
the tokens, the layout stream, the tree or the diagnostics. :help lists the
commands.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().String("mode", "tree", "initial view (tokens|layout|tree|diag)")
	replCmd.Flags().Bool("no-history", false, "do not read or write ~/.hsfront_history")
}

func runRepl(cmd *cobra.Command, args []string) error {
	modeStr, err := cmd.Flags().GetString("mode")
	if err != nil {
		return fmt.Errorf("failed to get mode flag: %w", err)
	}
	mode, err := repl.ParseMode(modeStr)
	if err != nil {
		return err
	}
	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return fmt.Errorf("failed to get no-history flag: %w", err)
	}

	cfg, err := loadConfig(cmd, ".")
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.Timer = nil

	s := repl.NewSession(cmd.OutOrStdout(), opts)
	s.Mode = mode
	s.Color = useColor(cmd, os.Stdout)

	history := repl.HistoryPath()
	if noHistory {
		history = ""
	}
	fmt.Fprintln(cmd.OutOrStdout(), "hsfront repl; :help for commands, :quit to leave")
	return repl.Run(cmd.Context(), s, history)
}
