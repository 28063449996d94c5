// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// SummaryWriters maps a format name to its handler.
// Register in init() blocks; last registration wins.
var SummaryWriters = map[string]func(w io.Writer, data interface{}) error{}

func RegisterSummary(format string, fn func(io.Writer, interface{}) error) { SummaryWriters[format] = fn }

// WriteSummary dispatches to the handler registered for format.
func WriteSummary(format string, w io.Writer, payload interface{}) error {
	fn, ok := SummaryWriters[format]
	if !ok {
		return fmt.Errorf("unknown summary format %q (no writer registered)", format)
	}
	return fn(w, payload)
}

// Formats lists registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(SummaryWriters))
	for k := range SummaryWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
