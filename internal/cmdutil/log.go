// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

// Warnf writes a "WARN: " line to dst unless quiet.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Infof writes a plain progress line to dst unless quiet.
func Infof(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, format+"\n", a...)
}

// Warner returns a printf-style func bound to dst and quiet, for packages
// that take a Warnf hook.
func Warner(dst io.Writer, quiet bool) func(string, ...any) {
	return func(format string, a ...any) { Warnf(dst, quiet, format, a...) }
}
