package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer formats each event and writes it immediately.
type StreamTracer struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	level  Level
	format Format
	buf    []byte
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{w: bufio.NewWriter(w), level: level, format: format}
	if c, ok := w.(io.Closer); ok && !isStdStream(w) {
		t.closer = c
	}
	return t
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = AppendEvent(t.buf[:0], ev, t.format)
	t.w.Write(t.buf) //nolint:errcheck // reported by Flush
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w.Flush()
}

func (t *StreamTracer) Close() error {
	err := t.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
