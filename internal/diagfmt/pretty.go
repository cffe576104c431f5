package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hsfront/internal/diag"
	"hsfront/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	path   *color.Color
	gutter *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.sev[diag.SevError], p.sev[diag.SevWarning], p.sev[diag.SevInfo], p.path, p.gutter, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty prints diagnostics in the order of bag.Items() (call bag.Sort()
// first):
//
//	Main.hs:3:7: error SYN3001: unexpected '='
//	   3 | f x = = 1
//	     |       ^
//
// Notes follow with their own location when ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	var sb strings.Builder
	for i := range items {
		d := &items[i]
		writeHeader(&sb, pal, fs, d.Primary, opts, pal.sev[d.Severity].Sprint(d.Severity.Label())+" "+d.Code.ID(), d.Message)
		writeSnippet(&sb, pal, fs, d.Primary, opts.Context, pal.sev[d.Severity])
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeHeader(&sb, pal, fs, n.Span, opts, pal.note.Sprint("note"), n.Msg)
				writeSnippet(&sb, pal, fs, n.Span, 0, pal.note)
			}
		}
	}
	if hidden := bag.Len() - len(items); hidden > 0 {
		fmt.Fprintf(&sb, "... and %d more\n", hidden)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeHeader(sb *strings.Builder, pal palette, fs *source.FileSet, span source.Span, opts PrettyOpts, label, msg string) {
	f := fs.Get(span.File)
	start := f.Position(span.Start)
	loc := fmt.Sprintf("%s:%d:%d:", displayPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col)
	fmt.Fprintf(sb, "%s %s: %s\n", pal.path.Sprint(loc), label, msg)
}

func writeSnippet(sb *strings.Builder, pal palette, fs *source.FileSet, span source.Span, context int, mark *color.Color) {
	f := fs.Get(span.File)
	line := f.Position(span.Start).Line
	first := max(1, int(line)-context)
	width := len(fmt.Sprint(line))
	for l := first; l <= int(line); l++ {
		text := expandTabs(f.GetLine(uint32(l)))
		fmt.Fprintf(sb, "%s %s\n", pal.gutter.Sprintf("%*d |", width+2, l), text)
	}

	// caret under the part of the span that is on the primary line
	raw := f.GetLine(line)
	lineStart := f.LineStart(line)
	from := int(span.Start - lineStart)
	to := min(int(span.End-lineStart), len(raw))
	from = min(from, len(raw))
	pad := runewidth.StringWidth(expandTabs(raw[:from]))
	n := max(1, runewidth.StringWidth(expandTabs(raw[:max(to, from)]))-pad)
	marker := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(sb, "%s %s%s\n", pal.gutter.Sprintf("%*s |", width+2, ""), strings.Repeat(" ", pad), mark.Sprint(marker))
}

// expandTabs replaces tabs so that columns agree with layout columns.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			next := (col/source.TabStop + 1) * source.TabStop
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}
