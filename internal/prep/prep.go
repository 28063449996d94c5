// internal/prep/prep.go
package prep

import (
	"context"
	"fmt"

	"af3pairs/internal/batch"
	"af3pairs/internal/fasta"
	"af3pairs/internal/manifest"
	"af3pairs/internal/pairs"
)

// Result summarizes a run.
type Result struct {
	Paths []string // batch files written (or planned, with DryRun)
	Pairs int
	Mode  pairs.Mode
	RunID string // manifest run id; empty without a manifest
}

// Run parses the inputs, enumerates pairs and writes the batch files.
//
// On error, files flushed before the failure stay on disk and are listed in
// the returned Result. Re-running starts counting from scratch, so a
// partial run cannot be resumed in place.
func Run(ctx context.Context, cfg Config) (Result, error) {
	var res Result
	if err := cfg.Validate(); err != nil {
		return res, err
	}

	a, err := fasta.Parse(cfg.Fasta1)
	if err != nil {
		return res, err
	}
	warnDupes(cfg, a)
	var b *fasta.Store
	if cfg.Fasta2 != "" {
		if b, err = fasta.Parse(cfg.Fasta2); err != nil {
			return res, err
		}
		warnDupes(cfg, b)
	}

	popt := pairs.Options{ExcludeSelf: cfg.ExcludeSelf}
	res.Mode = pairs.ModeOf(b)
	res.Pairs = pairs.Count(a, b, popt)

	naming := batch.Naming{
		Tag:    cfg.Tag,
		StemA:  batch.Stem(cfg.Fasta1),
		StemB:  batch.Stem(cfg.Fasta2),
		CountA: cfg.Count1,
		CountB: cfg.Count2,
	}

	if cfg.DryRun {
		for k := range batch.Sizes(res.Pairs, cfg.BatchSize) {
			res.Paths = append(res.Paths, naming.Path(cfg.OutDir, k+1))
		}
		return res, nil
	}

	if res.Pairs == 0 {
		cfg.warnf("%s: no pairs to write", cfg.Fasta1)
		return res, nil
	}

	wopt := batch.Options{
		OutDir: cfg.OutDir,
		Naming: naming,
		Size:   cfg.BatchSize,
		Pretty: cfg.Pretty,
	}
	if cfg.Manifest != "" {
		m, err := manifest.Open(cfg.Manifest)
		if err != nil {
			return res, err
		}
		defer m.Close()
		res.RunID, err = m.BeginRun(ctx, manifest.RunInfo{
			Tag: cfg.Tag, Fasta1: cfg.Fasta1, Fasta2: cfg.Fasta2,
			Count1: cfg.Count1, Count2: cfg.Count2, BatchSize: cfg.BatchSize,
		})
		if err != nil {
			return res, err
		}
		runID := res.RunID
		wopt.OnFlush = func(f batch.Flushed) error {
			return m.RecordBatch(ctx, runID, f.Index, f.Path, f.Jobs)
		}
	}

	w, err := batch.New(wopt)
	if err != nil {
		return res, err
	}
	second := a
	if b != nil {
		second = b
	}
	err = pairs.ForEach(a, b, popt, func(p pairs.Pair) error {
		return w.Add(ctx, batch.NewJob(a.At(p.I), second.At(p.J), cfg.Count1, cfg.Count2, cfg.Seed))
	})
	if err == nil {
		err = w.Close(ctx)
	}
	res.Paths = w.Paths()
	if err != nil {
		return res, fmt.Errorf("after %d of %d jobs: %w", w.Count(), res.Pairs, err)
	}
	return res, nil
}

func warnDupes(cfg Config, st *fasta.Store) {
	for _, id := range st.Duplicates() {
		cfg.warnf("%s: duplicate id %q; keeping the last sequence", st.Name(), id)
	}
}
