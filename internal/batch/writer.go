// internal/batch/writer.go
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"af3pairs/pkg/api"
)

// Flushed describes one batch file that was just written.
type Flushed struct {
	Index int
	Path  string
	Jobs  []api.JobV1
}

// Options configures a Writer.
type Options struct {
	OutDir string
	Naming Naming
	Size   int  // jobs per batch (n), >= 1
	Pretty bool // indented JSON

	// OnFlush, if set, runs after each file is on disk. An error aborts the run.
	OnFlush func(Flushed) error
}

// Writer groups jobs into batches of Options.Size and writes each full
// batch as one JSON array. Close writes the non-empty remainder.
//
// Batch k is numbered ceil(counter/n), counter being the number of jobs
// added so far, so indices are 1-based and increase by one per file.
type Writer struct {
	opt      Options
	cur      []api.JobV1
	counter  int
	paths    []string
	dirReady bool
	closed   bool
}

var ErrClosed = errors.New("batch: writer closed")

// New validates opt and returns a Writer. No file system work happens
// until the first batch is flushed.
func New(opt Options) (*Writer, error) {
	if opt.Size < 1 {
		return nil, fmt.Errorf("batch: size must be >= 1, got %d", opt.Size)
	}
	if opt.Naming.Tag == "" {
		return nil, errors.New("batch: empty run tag")
	}
	return &Writer{opt: opt}, nil
}

// Add queues one job, flushing when the batch reaches exactly Size jobs.
func (w *Writer) Add(ctx context.Context, job api.JobV1) error {
	if w.closed {
		return ErrClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	w.cur = append(w.cur, job)
	w.counter++
	if len(w.cur) == w.opt.Size {
		return w.flush()
	}
	return nil
}

// Close flushes a non-empty partial batch. A batch that filled up on the
// last Add was already written there and leaves nothing to flush here.
func (w *Writer) Close(ctx context.Context) error {
	if w.closed {
		return nil
	}
	w.closed = true
	if len(w.cur) == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return w.flush()
}

// Paths lists the files written so far, in emission order.
func (w *Writer) Paths() []string { return append([]string(nil), w.paths...) }

// Count is the number of jobs added so far.
func (w *Writer) Count() int { return w.counter }

func (w *Writer) flush() error {
	jobs := w.cur
	w.cur = nil

	idx := Index(w.counter, w.opt.Size)
	dir := w.opt.Naming.Dir(w.opt.OutDir)
	if !w.dirReady {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		w.dirReady = true
	}
	path := w.opt.Naming.Path(w.opt.OutDir, idx)
	if err := writeJSONAtomic(path, jobs, w.opt.Pretty); err != nil {
		return fmt.Errorf("write batch %d: %w", idx, err)
	}
	w.paths = append(w.paths, path)
	if w.opt.OnFlush != nil {
		if err := w.opt.OnFlush(Flushed{Index: idx, Path: path, Jobs: jobs}); err != nil {
			return err
		}
	}
	return nil
}

// Index is ceil(counter/n), the 1-based batch number after counter jobs.
func Index(counter, n int) int {
	return (counter + n - 1) / n
}

// Sizes returns the size of every batch a run of total jobs produces.
func Sizes(total, n int) []int {
	if total <= 0 || n < 1 {
		return nil
	}
	out := make([]int, 0, Index(total, n))
	for left := total; left > 0; left -= n {
		if left < n {
			out = append(out, left)
		} else {
			out = append(out, n)
		}
	}
	return out
}
