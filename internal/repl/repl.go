package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterh/liner"
)

// HistoryPath is ~/.hsfront_history, or "" without a home directory.
func HistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".hsfront_history")
}

// Run drives s from the terminal until :quit, Ctrl-D or ctx is done.
// Ctrl-C drops the current line or :{ block.
func Run(ctx context.Context, s *Session, historyPath string) error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)
	state.SetMultiLineMode(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = state.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		prompt := fmt.Sprintf("hs[%s]> ", s.Mode)
		if s.Continuing() {
			prompt = "hs| "
		}
		line, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Fprintln(s.Out)
				s.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(s.Out)
				return nil
			default:
				return fmt.Errorf("read: %w", err)
			}
		}
		if line != "" {
			state.AppendHistory(line)
		}
		if s.Feed(ctx, line) {
			return nil
		}
	}
}
