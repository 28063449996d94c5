// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"af3pairs/internal/appcore"
	"af3pairs/internal/cli"
	"af3pairs/internal/cmdutil"
	"af3pairs/internal/prep"
	"af3pairs/internal/version"
)

// RunContext is the af3pairs entry point. Written (or, with --dry-run,
// planned) batch paths go to stdout one per line; diagnostics go to stderr.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet("af3pairs")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		return appcore.ParseFailure(fs, outw, stderr, err, cli.PrintExamples)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "af3pairs version %s\n", version.Version)
		return appcore.Flush(outw, stderr, appcore.ExitOK)
	}

	cfg, err := opts.Resolve()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return appcore.Flush(outw, stderr, appcore.ExitUsage)
	}
	cfg.Warnf = cmdutil.Warner(stderr, opts.Quiet)

	res, err := prep.Run(parent, cfg)
	for _, p := range res.Paths {
		_, _ = fmt.Fprintln(outw, p)
	}
	if err != nil {
		code := appcore.Fail(stderr, err)
		return appcore.Flush(outw, stderr, code)
	}

	verb := "wrote"
	if cfg.DryRun {
		verb = "would write"
	}
	cmdutil.Infof(stderr, opts.Quiet, "%d pairs (%s), %s %d file(s)", res.Pairs, res.Mode, verb, len(res.Paths))
	if res.RunID != "" {
		cmdutil.Infof(stderr, opts.Quiet, "manifest run %s", res.RunID)
	}
	return appcore.Flush(outw, stderr, appcore.ExitOK)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
