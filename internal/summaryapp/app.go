// internal/summaryapp/app.go
package summaryapp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"af3pairs/internal/appcore"
	"af3pairs/internal/cmdutil"
	"af3pairs/internal/manifest"
	"af3pairs/internal/results"
	"af3pairs/internal/summarycli"
	"af3pairs/internal/version"
	"af3pairs/internal/writers"
)

// RunContext is the af3pairs-summary entry point. It exits 1 when the
// input holds no usable result.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := summarycli.NewFlagSet("af3pairs-summary")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	opts, err := summarycli.ParseArgs(fs, argv)
	if err != nil {
		return appcore.ParseFailure(fs, outw, stderr, err, summarycli.PrintExamples)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "af3pairs-summary version %s\n", version.Version)
		return appcore.Flush(outw, stderr, appcore.ExitOK)
	}

	col := results.Collector{Warnf: cmdutil.Warner(stderr, opts.Quiet)}
	if opts.Manifest != "" {
		// Opening a missing path would create an empty database.
		if _, err := os.Stat(opts.Manifest); err != nil {
			return appcore.Fail(stderr, err)
		}
		m, err := manifest.Open(opts.Manifest)
		if err != nil {
			return appcore.Fail(stderr, err)
		}
		defer m.Close()
		col.Resolve = m
	}

	var recs []results.Record
	if opts.Kind() == results.FromZip {
		recs, err = col.Zips(parent, opts.Root())
	} else {
		recs, err = col.Dir(parent, opts.Root())
	}
	if err != nil {
		return appcore.Fail(stderr, err)
	}
	if len(recs) == 0 {
		_, _ = fmt.Fprintf(stderr, "no results found under %s\n", opts.Root())
		return appcore.ExitNoResults
	}
	results.Sort(recs)

	sum := writers.Summary{Kind: opts.Kind(), Records: recs}
	if opts.Summary == "-" {
		if err := writers.WriteSummary(opts.Format, outw, sum); err != nil {
			return appcore.Flush(outw, stderr, appcore.Fail(stderr, err))
		}
		return appcore.Flush(outw, stderr, appcore.ExitOK)
	}
	if err := writeFile(opts.Summary, opts.Format, sum); err != nil {
		return appcore.Fail(stderr, err)
	}
	cmdutil.Infof(stderr, opts.Quiet, "%d records -> %s", len(recs), opts.Summary)
	return appcore.ExitOK
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func writeFile(path, format string, sum writers.Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fh)
	if err := writers.WriteSummary(format, bw, sum); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return fh.Close()
}
