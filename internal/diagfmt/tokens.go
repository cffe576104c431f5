package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"hsfront/internal/source"
	"hsfront/internal/token"
)

// TokenOutput is one token in JSON and YAML dumps.
type TokenOutput struct {
	Kind    string `json:"kind" yaml:"kind"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	Start   uint32 `json:"start" yaml:"start"`
	End     uint32 `json:"end" yaml:"end"`
	Line    uint32 `json:"line" yaml:"line"`
	Col     uint32 `json:"col" yaml:"col"`
	Virtual bool   `json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

// TokenFilter decides which tokens a dump shows.
type TokenFilter struct {
	Trivia bool
}

func (f TokenFilter) keep(tok token.Token) bool {
	return f.Trivia || !tok.IsTrivia()
}

// FormatTokensPretty prints one token per line:
//
//	3  2:5   VarId(map)
//	4  2:5   VOpen
func FormatTokensPretty(w io.Writer, toks []token.Token, filter TokenFilter) error {
	i := 0
	for _, tok := range toks {
		if !filter.keep(tok) {
			continue
		}
		i++
		pos := fmt.Sprintf("%d:%d", tok.Pos.Line, tok.Pos.Col)
		if _, err := fmt.Fprintf(w, "%4d  %-7s %s\n", i, pos, tok); err != nil {
			return err
		}
	}
	return nil
}

func tokenOutputs(toks []token.Token, filter TokenFilter) []TokenOutput {
	out := make([]TokenOutput, 0, len(toks))
	for _, tok := range toks {
		if !filter.keep(tok) {
			continue
		}
		out = append(out, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
			Line:    tok.Pos.Line,
			Col:     tok.Pos.Col,
			Virtual: tok.Kind.IsVirtual(),
		})
	}
	return out
}

func FormatTokensJSON(w io.Writer, toks []token.Token, filter TokenFilter) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenOutputs(toks, filter))
}

func FormatTokensYAML(w io.Writer, toks []token.Token, filter TokenFilter) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tokenOutputs(toks, filter)); err != nil {
		return err
	}
	return enc.Close()
}

// spanText resolves span to "line:col-line:col".
func spanText(fs *source.FileSet, span source.Span) string {
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
