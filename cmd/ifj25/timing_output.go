package main

import (
	"fmt"
	"io"
	"time"

	"ifj25/internal/driver"
	"ifj25/internal/observ"
)

// printTimings writes one phase line per result, an aggregate line when
// more than one file was timed, and the wall time.
func printTimings(out io.Writer, results []*driver.TokenizeResult, wall time.Duration) {
	if out == nil {
		return
	}
	var all observ.Report
	timed := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", res.Path, res.Timing.Line())
		all.Add(res.Timing)
		timed++
	}
	if timed > 1 {
		fmt.Fprintf(out, "all files: %s\n", all.Line())
	}
	fmt.Fprintf(out, "total %.1f ms\n", float64(wall)/float64(time.Millisecond))
}
