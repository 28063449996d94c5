// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"af3pairs/internal/clibase"
	"af3pairs/internal/fasta"
	"af3pairs/internal/writers"
)

// Process exit codes shared by af3pairs and af3pairs-summary.
const (
	ExitOK        = 0
	ExitNoResults = 1
	ExitUsage     = 2
	ExitIO        = 3
	ExitCanceled  = 130
)

// Flush flushes outw and returns code. A reader that went away (EPIPE)
// is not an error; any other write failure turns into ExitIO.
func Flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitIO
	}
	return code
}

// ParseFailure handles an error from a ParseArgs function. Help and
// examples go to stdout with exit 0; anything else prints the error and
// the usage text and exits 2.
func ParseFailure(fs *flag.FlagSet, outw *bufio.Writer, stderr io.Writer, err error, examples func(io.Writer)) int {
	switch {
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(outw)
		fs.Usage()
		return Flush(outw, stderr, ExitOK)
	case errors.Is(err, clibase.ErrPrintedAndExitOK):
		if examples != nil {
			examples(outw)
		}
		return Flush(outw, stderr, ExitOK)
	}
	_, _ = fmt.Fprintln(stderr, err)
	fs.SetOutput(outw)
	fs.Usage()
	return Flush(outw, stderr, ExitUsage)
}

// Code maps a run error to an exit code without printing anything.
// Malformed input is a usage error; everything else is I/O.
func Code(err error) int {
	var pe *fasta.ParseError
	var re *clibase.RangeError
	switch {
	case err == nil, writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.As(err, &pe), errors.As(err, &re):
		return ExitUsage
	}
	return ExitIO
}

// Fail prints err to stderr and returns Code(err). Cancellation prints
// a short notice instead of the wrapped error chain.
func Fail(stderr io.Writer, err error) int {
	code := Code(err)
	switch code {
	case ExitOK:
	case ExitCanceled:
		_, _ = fmt.Fprintln(stderr, "interrupted")
	default:
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return code
}
