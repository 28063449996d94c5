// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK is returned by ParseArgs for --examples. The app
// prints the examples and exits 0.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples writes a titled quickstart: body supplies the commands,
// and a closing line points at --help.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s quickstart\n\n", name)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintf(out, "\nAll flags: %s --help\n", name)
}
