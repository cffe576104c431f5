package main

import (
	"fmt"
	"io"

	"hsfront/internal/observ"
)

// printTimings writes the per-pass table collected by timer; a nil timer
// means --timings was not given.
func printTimings(out io.Writer, timer *observ.Timer) {
	if timer == nil || out == nil {
		return
	}
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}
