package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Format is the serialisation of events.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format %q (want auto|text|ndjson)", s)
}

// AppendEvent appends one formatted line for ev to buf.
func AppendEvent(buf []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(buf, ev)
	}
	return appendText(buf, ev)
}

// 12:00:00.000123 [  42] end   pass  layout (1.2ms) file=A.hs
func appendText(buf []byte, ev *Event) []byte {
	buf = ev.Time.AppendFormat(buf, "15:04:05.000000")
	buf = fmt.Appendf(buf, " [%4d] %-5s %-6s %s", ev.SpanID, ev.Kind, ev.Scope, ev.Name)
	if ev.Detail != "" {
		buf = append(buf, ' ')
		buf = append(buf, ev.Detail...)
	}
	for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
		buf = append(buf, ' ')
		buf = append(buf, k...)
		buf = append(buf, '=')
		buf = append(buf, ev.Extra[k]...)
	}
	return append(buf, '\n')
}

type jsonEvent struct {
	TS     int64             `json:"ts"`
	Seq    uint64            `json:"seq"`
	Kind   string            `json:"kind"`
	Scope  string            `json:"scope"`
	Span   uint64            `json:"span"`
	Parent uint64            `json:"parent,omitempty"`
	GID    uint64            `json:"gid,omitempty"`
	Name   string            `json:"name"`
	Detail string            `json:"detail,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

func appendJSON(buf []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		TS:     ev.Time.UnixMicro(),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Span:   ev.SpanID,
		Parent: ev.ParentID,
		GID:    ev.GID,
		Name:   ev.Name,
		Detail: ev.Detail,
		Extra:  ev.Extra,
	})
	if err != nil {
		return append(buf, "{\"error\":"+strconv.Quote(err.Error())+"}\n"...)
	}
	buf = append(buf, data...)
	return append(buf, '\n')
}

func isStdStream(w io.Writer) bool {
	return w == os.Stdout || w == os.Stderr
}

// Duration formats d the way the text format prints it.
func Duration(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}
