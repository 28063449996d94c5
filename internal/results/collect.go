// internal/results/collect.go
package results

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"af3pairs/internal/batch"
	"af3pairs/internal/manifest"
)

const (
	dirSuffix    = "_summary_confidences.json"
	dirPattern   = "*summary_confidences.json"
	zipPattern   = "fold*.zip"
	zipMember    = "summary_confidences_0.json"
	serverPrefix = "fold_"
)

// Resolver maps a (possibly lower-cased) job name back to the job that
// was written. *manifest.Store implements it.
type Resolver interface {
	Lookup(ctx context.Context, name string) (manifest.JobRef, error)
}

// Collector gathers score records. The zero value works; Resolve and
// Warnf are optional.
type Collector struct {
	Resolve Resolver
	Warnf   func(format string, a ...any)
}

func (c *Collector) warnf(format string, a ...any) {
	if c.Warnf != nil {
		c.Warnf(format, a...)
	}
}

// Dir reads <root>/*/*/*summary_confidences.json, the layout AlphaFold3
// produces when each batch file is run into a directory named after it:
//
//	<root>/<batch stem>/<job name>/<job name>_summary_confidences.json
//
// Files with missing scores or invalid JSON are skipped with a warning.
func (c *Collector) Dir(ctx context.Context, root string) ([]Record, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}
	files, err := filepath.Glob(filepath.Join(root, "*", "*", dirPattern))
	if err != nil {
		return nil, fmt.Errorf("bad glob under %q: %w", root, err)
	}
	out := make([]Record, 0, len(files))
	for _, fn := range files {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		rec, err := readFile(fn)
		if err != nil {
			c.skip(err)
			continue
		}
		base := filepath.Base(fn)
		rec.Name = strings.TrimSuffix(base, dirSuffix)
		if rec.Name == base || rec.Name == "" {
			rec.Name = filepath.Base(filepath.Dir(fn))
		}
		rec.ChainA, rec.ChainB, _ = SplitName(rec.Name)
		if p, ok := batch.ParseFileName(filepath.Base(filepath.Dir(filepath.Dir(fn)))); ok {
			rec.Multimer = p.Multimer()
		}
		if err := c.resolve(ctx, &rec); err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Zips reads every <dir>/fold*.zip and takes the scores from the member
// ending in summary_confidences_0.json. The record name is the archive
// stem without the "fold_" prefix.
func (c *Collector) Zips(ctx context.Context, dir string) ([]Record, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	files, err := filepath.Glob(filepath.Join(dir, zipPattern))
	if err != nil {
		return nil, fmt.Errorf("bad glob under %q: %w", dir, err)
	}
	out := make([]Record, 0, len(files))
	for _, fn := range files {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		rec, err := readZip(fn)
		if err != nil {
			c.skip(err)
			continue
		}
		rec.Name = strings.TrimPrefix(strings.TrimSuffix(filepath.Base(fn), ".zip"), serverPrefix)
		rec.ChainA, rec.ChainB, _ = SplitName(rec.Name)
		if err := c.resolve(ctx, &rec); err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Collector) skip(err error) {
	var le *LookupError
	if errors.As(err, &le) {
		c.warnf("skipping %s: no %s score", le.Path, le.Field)
		return
	}
	c.warnf("skipping %v", err)
}

// resolve restores canonical ids from the manifest. Unknown names keep
// what was read from disk.
func (c *Collector) resolve(ctx context.Context, rec *Record) error {
	if c.Resolve == nil {
		return nil
	}
	ref, err := c.Resolve.Lookup(ctx, rec.Name)
	if errors.Is(err, manifest.ErrNotFound) {
		c.warnf("%s: job %q not in manifest", rec.Source, rec.Name)
		return nil
	}
	if err != nil {
		return err
	}
	rec.Name, rec.ChainA, rec.ChainB, rec.BatchFile = ref.Name, ref.IDA, ref.IDB, ref.BatchPath
	if rec.Multimer == "" {
		if p, ok := batch.ParseFileName(ref.BatchPath); ok {
			rec.Multimer = p.Multimer()
		}
	}
	return nil
}

func readFile(fn string) (Record, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return Record{}, err
	}
	defer fh.Close()
	return decodeScores(fn, fh)
}

func readZip(fn string) (Record, error) {
	zr, err := zip.OpenReader(fn)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", fn, err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, zipMember) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Record{}, fmt.Errorf("%s: %s: %w", fn, f.Name, err)
		}
		rec, err := decodeScores(fn+":"+f.Name, rc)
		_ = rc.Close()
		if err != nil {
			return Record{}, err
		}
		rec.Source = fn
		return rec, nil
	}
	return Record{}, fmt.Errorf("%s: no *%s member", fn, zipMember)
}
