// internal/clibase/common.go
package clibase

import (
	"flag"
	"fmt"
)

// Common holds CLI fields shared by af3pairs and af3pairs-summary.
type Common struct {
	Quiet    bool
	Version  bool
	Help     bool
	Examples bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Help, "h", false, "show this help [false]")
	fs.BoolVar(&c.Help, "help", false, "show this help [false]")
	fs.BoolVar(&c.Examples, "examples", false, "show quickstart examples and exit [false]")
}

// Early reports the sentinel for flags that short-circuit validation:
// flag.ErrHelp for -h, ErrPrintedAndExitOK for --examples, nil otherwise.
// Version is left to the caller since it is not an error.
func Early(c *Common) error {
	if c.Examples {
		return ErrPrintedAndExitOK
	}
	if c.Help {
		return flag.ErrHelp
	}
	return nil
}

// InRange returns an error naming flag when v is outside [lo, hi].
func InRange(flagName string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &RangeError{Flag: flagName, Value: v, Lo: lo, Hi: hi}
	}
	return nil
}

// RangeError reports an integer flag outside its accepted bounds.
type RangeError struct {
	Flag   string
	Value  int
	Lo, Hi int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("--%s must be between %d and %d, got %d", e.Flag, e.Lo, e.Hi, e.Value)
}
