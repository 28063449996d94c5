// internal/summarycli/options.go
package summarycli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"af3pairs/internal/clibase"
	"af3pairs/internal/cliutil"
	"af3pairs/internal/results"
	"af3pairs/internal/writers"
)

// Default summary file names, one per source kind.
const (
	DefaultDirSummary = "AF3_results_summary.csv"
	DefaultZipSummary = "AF3Server_results_summary.csv"
)

// Options holds all CLI flags for af3pairs-summary.
type Options struct {
	clibase.Common

	OutDir   string // local AlphaFold3 output root
	ZipDir   string // directory of AlphaFold Server downloads
	Summary  string // output path, "-" for stdout
	Format   string
	Manifest string
}

// Kind reports which collector the options select.
func (o Options) Kind() results.Kind {
	if o.ZipDir != "" {
		return results.FromZip
	}
	return results.FromDir
}

// Root is the directory the collector reads.
func (o Options) Root() string {
	if o.ZipDir != "" {
		return o.ZipDir
	}
	return o.OutDir
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "AlphaFold3 pair score summary", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s --af3-out-dir AFOUT [options]\n", name)
		fmt.Fprintf(out, "  %s --zip-dir downloads/ [options]\n", name)

		fmt.Fprintln(out, "\nInput (exactly one):")
		fmt.Fprintln(out, "  -d, --af3-out-dir dir       AlphaFold3 output root (<dir>/<batch>/<job>/*summary_confidences.json)")
		fmt.Fprintln(out, "  -z, --zip-dir dir           AlphaFold Server downloads (<dir>/fold*.zip)")
		fmt.Fprintln(out, "  -m, --manifest file         af3pairs manifest; restores original ids and batch files")

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -s, --summary file          Output file, '-' for stdout [%s or %s]\n", DefaultDirSummary, DefaultZipSummary)
		fmt.Fprintf(out, "  -f, --format string         %s (default: from --summary extension)\n", strings.Join(writers.Formats(), "|"))

		fmt.Fprintln(out, "\nNames:")
		fmt.Fprintln(out, "  Protein ids are reported as found on disk. AlphaFold3 lower-cases job")
		fmt.Fprintln(out, "  names and nothing is upper-cased here; pass --manifest to restore the")
		fmt.Fprintln(out, "  original ids with their case.")
	})
	return fs
}

// PrintExamples prints a short quickstart for af3pairs-summary.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "af3pairs-summary", func(w io.Writer) {
		fmt.Fprintln(w, "Summarize a local AlphaFold3 run:")
		fmt.Fprintln(w, "  af3pairs-summary --af3-out-dir AFOUT")
		fmt.Fprintln(w, "\nSummarize AlphaFold Server downloads as TSV on stdout:")
		fmt.Fprintln(w, "  af3pairs-summary --zip-dir downloads/ -s - -f tsv")
		fmt.Fprintln(w, "\nRestore original ids from the preparation manifest:")
		fmt.Fprintln(w, "  af3pairs-summary -d AFOUT -m runs/manifest.db -s scores.jsonl")
	})
}

// ParseArgs registers and parses all flags, fills defaults that depend on
// the input kind, and validates the result.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options

	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.OutDir, "af3-out-dir", "", "AlphaFold3 output root")
	fs.StringVar(&o.OutDir, "d", "", "alias of --af3-out-dir")
	fs.StringVar(&o.OutDir, "af3_out_dir", "", "alias of --af3-out-dir")
	fs.StringVar(&o.ZipDir, "zip-dir", "", "AlphaFold Server zip directory")
	fs.StringVar(&o.ZipDir, "z", "", "alias of --zip-dir")
	fs.StringVar(&o.ZipDir, "af3_zf_dir", "", "alias of --zip-dir")
	fs.StringVar(&o.Summary, "summary", "", "output path")
	fs.StringVar(&o.Summary, "s", "", "alias of --summary")
	fs.StringVar(&o.Summary, "summary_path", "", "alias of --summary")
	fs.StringVar(&o.Format, "format", "", "output format")
	fs.StringVar(&o.Format, "f", "", "alias of --format")
	fs.StringVar(&o.Manifest, "manifest", "", "af3pairs manifest")
	fs.StringVar(&o.Manifest, "m", "", "alias of --manifest")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if err := clibase.Early(&o.Common); err != nil {
		return o, err
	}
	if o.Version {
		return o, nil
	}
	if len(posArgs) > 0 {
		return o, fmt.Errorf("unexpected argument %q", posArgs[0])
	}

	switch {
	case o.OutDir == "" && o.ZipDir == "":
		return o, errors.New("one of --af3-out-dir or --zip-dir is required")
	case o.OutDir != "" && o.ZipDir != "":
		return o, errors.New("--af3-out-dir and --zip-dir are mutually exclusive")
	}

	if o.Summary == "" {
		o.Summary = DefaultDirSummary
		if o.Kind() == results.FromZip {
			o.Summary = DefaultZipSummary
		}
	}
	if o.Format == "" {
		o.Format = writers.FormatCSV
		if o.Summary != "-" {
			o.Format = writers.FormatFromPath(o.Summary)
		}
	}
	o.Format = strings.ToLower(o.Format)
	if _, ok := writers.SummaryWriters[o.Format]; !ok {
		return o, fmt.Errorf("unsupported --format %q (want %s)", o.Format, strings.Join(writers.Formats(), ", "))
	}
	return o, nil
}
