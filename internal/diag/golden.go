package diag

import (
	"fmt"
	"sort"
	"strings"

	"hsfront/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line, sorted by position:
//
//	error SYN3001 Main.hs:3:7 unexpected '='
//
// Notes follow as "note" lines when includeNotes is set. The output is stable
// and is what tests compare against.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendShort(rendered, &diags[i], fs, includeNotes)
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendShort(out []shortDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []shortDiagnostic {
	path, start := locate(fs, d.Primary)
	out = append(out, shortDiagnostic{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Path:     path,
		Line:     start.Line,
		Column:   start.Col,
		Message:  sanitizeMessage(d.Message),
	})
	if includeNotes {
		for _, note := range d.Notes {
			npath, nstart := locate(fs, note.Span)
			out = append(out, shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     npath,
				Line:     nstart.Line,
				Column:   nstart.Col,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func locate(fs *source.FileSet, span source.Span) (string, source.LineCol) {
	if fs == nil || int(span.File) >= fs.Len() {
		return "?", source.LineCol{}
	}
	start, _ := fs.Resolve(span)
	return fs.Get(span.File).Path, start
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
