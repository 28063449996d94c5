// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"af3pairs/internal/clibase"
	"af3pairs/internal/cliutil"
	"af3pairs/internal/config"
	"af3pairs/internal/prep"
	"af3pairs/pkg/api"
)

// Options holds all CLI flags and arguments for af3pairs.
type Options struct {
	clibase.Common

	// Input
	Fasta1 string
	Fasta2 string
	Config string

	// Jobs
	Count1      int
	Count2      int
	Num         int
	Seed        int
	ExcludeSelf bool

	// Output
	Tag      string
	OutDir   string
	Pretty   bool
	Manifest string
	DryRun   bool

	set map[string]bool
}

// NewFlagSet returns a FlagSet with the af3pairs usage text installed.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "AlphaFold3 pair-job batcher", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s [options] pathogen.fa [host.fa]\n", name)
		fmt.Fprintf(out, "  %s --config run.yaml\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -a, --fasta1 file           FASTA with the first chain of every pair [*]")
		fmt.Fprintln(out, "  -b, --fasta2 file           FASTA with the second chain (omit for all pairs within fasta1)")
		fmt.Fprintln(out, "  -c, --config file           YAML run file; explicit flags override it")

		fmt.Fprintln(out, "\nJobs:")
		fmt.Fprintf(out, "      --count1 int            Copies of the fasta1 chain (%d-%d) [%s]\n", prep.MinCount, prep.MaxCount, def("count1"))
		fmt.Fprintf(out, "      --count2 int            Copies of the second chain (%d-%d) [%s]\n", prep.MinCount, prep.MaxCount, def("count2"))
		fmt.Fprintf(out, "  -n, --num int               Pairs per JSON file (%d-%d) [%s]\n", prep.MinBatchSize, prep.MaxBatchSize, def("num"))
		fmt.Fprintf(out, "      --seed int              Model seed written into every job [%s]\n", def("seed"))
		fmt.Fprintf(out, "      --exclude-self          Skip x--VS--x pairs in single-file mode [%s]\n", def("exclude-self"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "      --tag string            Run tag for directory and file names [%s]\n", def("tag"))
		fmt.Fprintf(out, "  -o, --out-dir dir           Output root; files go to <dir>/<tag>_af3_jsons [%s]\n", def("out-dir"))
		fmt.Fprintf(out, "      --pretty                Indent JSON [%s]\n", def("pretty"))
		fmt.Fprintln(out, "  -m, --manifest file         SQLite manifest recording every job written")
		fmt.Fprintf(out, "      --dry-run               Print planned files without writing [%s]\n", def("dry-run"))
	})
	return fs
}

// PrintExamples prints a short quickstart for af3pairs.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "af3pairs", func(w io.Writer) {
		fmt.Fprintln(w, "All vs all between two files, 30 pairs per JSON:")
		fmt.Fprintln(w, "  af3pairs --tag 20250501 -o runs/ pathogen.fa host.fa")
		fmt.Fprintln(w, "\nEvery pair within one file, trimers of the second chain:")
		fmt.Fprintln(w, "  af3pairs --count2 3 -n 100 effectors.fa")
		fmt.Fprintln(w, "\nKeep a manifest for af3pairs-summary:")
		fmt.Fprintln(w, "  af3pairs -m runs/manifest.db pathogen.fa host.fa")
	})
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Up to two positional FASTA paths fill --fasta1/--fasta2 when those are unset.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	d := prep.Defaults()

	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.Fasta1, "fasta1", "", "first FASTA [*]")
	fs.StringVar(&o.Fasta1, "a", "", "alias of --fasta1")
	fs.StringVar(&o.Fasta1, "fa1_path", "", "alias of --fasta1")
	fs.StringVar(&o.Fasta2, "fasta2", "", "second FASTA")
	fs.StringVar(&o.Fasta2, "b", "", "alias of --fasta2")
	fs.StringVar(&o.Fasta2, "fa2_path", "", "alias of --fasta2")
	fs.StringVar(&o.Config, "config", "", "YAML run file")
	fs.StringVar(&o.Config, "c", "", "alias of --config")

	fs.IntVar(&o.Count1, "count1", d.Count1, "copies of the fasta1 chain")
	fs.IntVar(&o.Count1, "protein1_cnt", d.Count1, "alias of --count1")
	fs.IntVar(&o.Count2, "count2", d.Count2, "copies of the second chain")
	fs.IntVar(&o.Count2, "protein2_cnt", d.Count2, "alias of --count2")
	fs.IntVar(&o.Num, "num", d.BatchSize, "pairs per JSON file")
	fs.IntVar(&o.Num, "n", d.BatchSize, "alias of --num")
	fs.IntVar(&o.Seed, "seed", api.DefaultModelSeed, "model seed")
	fs.BoolVar(&o.ExcludeSelf, "exclude-self", false, "skip self pairs")

	fs.StringVar(&o.Tag, "tag", d.Tag, "run tag")
	fs.StringVar(&o.Tag, "today", d.Tag, "alias of --tag")
	fs.StringVar(&o.OutDir, "out-dir", d.OutDir, "output root")
	fs.StringVar(&o.OutDir, "o", d.OutDir, "alias of --out-dir")
	fs.StringVar(&o.OutDir, "out_dir", d.OutDir, "alias of --out-dir")
	fs.BoolVar(&o.Pretty, "pretty", false, "indent JSON")
	fs.StringVar(&o.Manifest, "manifest", "", "SQLite manifest path")
	fs.StringVar(&o.Manifest, "m", "", "alias of --manifest")
	fs.BoolVar(&o.DryRun, "dry-run", false, "plan only")

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
	o.set = cliutil.SetFlags(fs)

	pos, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return o, err
	}
	if len(pos) > 0 {
		if o.Fasta1 != "" || o.Fasta2 != "" {
			return o, errors.New("give FASTA files either as positionals or with --fasta1/--fasta2, not both")
		}
		if len(pos) > 2 {
			return o, fmt.Errorf("at most two FASTA files, got %d", len(pos))
		}
		o.Fasta1 = pos[0]
		o.set["fasta1"] = true
		if len(pos) == 2 {
			o.Fasta2 = pos[1]
			o.set["fasta2"] = true
		}
	}
	if o.Fasta1 == "" && o.Config == "" {
		return o, errors.New("provide a FASTA file (--fasta1 or positional) or --config")
	}
	return o, nil
}

// Resolve layers defaults, the optional --config file, then the flags that
// were given explicitly, and validates the result.
func (o Options) Resolve() (prep.Config, error) {
	cfg := prep.Defaults()
	if o.Config != "" {
		f, err := config.Load(o.Config)
		if err != nil {
			return cfg, err
		}
		f.Apply(&cfg)
	}

	set := func(names ...string) bool { return cliutil.AnySet(o.set, names...) }
	if set("fasta1", "a", "fa1_path") {
		cfg.Fasta1 = o.Fasta1
	}
	if set("fasta2", "b", "fa2_path") {
		cfg.Fasta2 = o.Fasta2
	}
	if set("count1", "protein1_cnt") {
		cfg.Count1 = o.Count1
	}
	if set("count2", "protein2_cnt") {
		cfg.Count2 = o.Count2
	}
	if set("num", "n") {
		cfg.BatchSize = o.Num
	}
	if set("seed") {
		cfg.Seed = o.Seed
	}
	if set("exclude-self") {
		cfg.ExcludeSelf = o.ExcludeSelf
	}
	if set("tag", "today") {
		cfg.Tag = o.Tag
	}
	if set("out-dir", "o", "out_dir") {
		cfg.OutDir = o.OutDir
	}
	if set("pretty") {
		cfg.Pretty = o.Pretty
	}
	if set("manifest", "m") {
		cfg.Manifest = o.Manifest
	}
	cfg.DryRun = o.DryRun

	if err := clibase.InRange("count1", cfg.Count1, prep.MinCount, prep.MaxCount); err != nil {
		return cfg, err
	}
	if err := clibase.InRange("count2", cfg.Count2, prep.MinCount, prep.MaxCount); err != nil {
		return cfg, err
	}
	if err := clibase.InRange("num", cfg.BatchSize, prep.MinBatchSize, prep.MaxBatchSize); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
