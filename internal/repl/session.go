// Package repl is an interactive loop that parses Haskell snippets and
// prints one view of the result: tokens, the layout stream, the tree or
// the diagnostics.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"hsfront/internal/diagfmt"
	"hsfront/internal/driver"
	"hsfront/internal/token"
)

type Mode string

const (
	ModeTokens Mode = "tokens"
	ModeLayout Mode = "layout"
	ModeTree   Mode = "tree"
	ModeDiag   Mode = "diag"
)

var modes = []Mode{ModeTokens, ModeLayout, ModeTree, ModeDiag}

func ParseMode(s string) (Mode, error) {
	for _, m := range modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q (want tokens, layout, tree or diag)", s)
}

// Session holds the REPL state. It is independent of the terminal so that
// it can be driven from tests.
type Session struct {
	Mode    Mode
	Out     io.Writer
	Color   bool
	Options driver.Options

	multi   bool // inside :{ … :}
	pending strings.Builder
	count   int
}

func NewSession(out io.Writer, opts driver.Options) *Session {
	return &Session{Mode: ModeTree, Out: out, Options: opts}
}

// Reset drops a half-typed :{ block.
func (s *Session) Reset() {
	s.multi = false
	s.pending.Reset()
}

// Continuing reports whether a :{ block is open.
func (s *Session) Continuing() bool { return s.multi }

// Feed handles one input line and reports whether the session should end.
// A line is a command (":mode tree"), a snippet, or part of a :{ … :}
// block that is parsed as one snippet.
func (s *Session) Feed(ctx context.Context, line string) (quit bool) {
	trimmed := strings.TrimSpace(line)
	if s.multi {
		if trimmed == ":}" {
			s.multi = false
			src := s.pending.String()
			s.pending.Reset()
			s.eval(ctx, src)
			return false
		}
		s.pending.WriteString(line)
		s.pending.WriteByte('\n')
		return false
	}

	switch {
	case trimmed == "":
		return false
	case trimmed == ":{":
		s.multi = true
		return false
	case strings.HasPrefix(trimmed, ":"):
		return s.command(trimmed)
	}
	s.eval(ctx, line+"\n")
	return false
}

func (s *Session) command(cmd string) (quit bool) {
	name, arg, _ := strings.Cut(cmd[1:], " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "q", "quit":
		return true
	case "m", "mode":
		if arg == "" {
			fmt.Fprintf(s.Out, "mode: %s\n", s.Mode)
			return false
		}
		m, err := ParseMode(arg)
		if err != nil {
			fmt.Fprintln(s.Out, err)
			return false
		}
		s.Mode = m
	case "h", "help", "?":
		fmt.Fprint(s.Out, helpText)
	default:
		fmt.Fprintf(s.Out, "unknown command :%s (try :help)\n", name)
	}
	return false
}

const helpText = `  <snippet>            parse one line
  :{ … :}              parse several lines as one snippet
  :mode tokens|layout|tree|diag
  :quit
`

func (s *Session) eval(ctx context.Context, src string) {
	s.count++
	name := fmt.Sprintf("<interactive:%d>", s.count)
	opts := s.Options
	opts.NeedTrees = true
	fs, res := driver.ParseSource(ctx, name, []byte(src), opts)
	file := fs.Get(res.FileID)

	var err error
	switch s.Mode {
	case ModeTokens:
		tr := driver.TokenizeFile(ctx, fs, file, opts)
		err = diagfmt.FormatTokensPretty(s.Out, tr.Tokens, diagfmt.TokenFilter{})
	case ModeLayout:
		lr := driver.LayoutFile(ctx, fs, file, opts)
		toks := make([]token.Token, len(lr.Items))
		for i, it := range lr.Items {
			toks[i] = it.Token
		}
		err = diagfmt.FormatTokensPretty(s.Out, toks, diagfmt.TokenFilter{})
	case ModeTree:
		err = diagfmt.FormatTree(s.Out, res.Tree, fs, diagfmt.TreeOpts{Tokens: true})
	}
	if err != nil {
		fmt.Fprintf(s.Out, "output error: %v\n", err)
		return
	}

	if res.Bag.Len() == 0 {
		if s.Mode == ModeDiag {
			fmt.Fprintln(s.Out, "no diagnostics")
		}
		return
	}
	if err := diagfmt.Pretty(s.Out, res.Bag, fs, diagfmt.PrettyOpts{Color: s.Color, ShowNotes: true}); err != nil {
		fmt.Fprintf(s.Out, "output error: %v\n", err)
	}
}
