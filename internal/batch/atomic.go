// internal/batch/atomic.go
package batch

import (
	"bufio"
	"os"
	"path/filepath"

	"af3pairs/internal/jsonutil"
)

// writeJSONAtomic encodes v into a temp file next to dest, then renames it
// over dest. A reader never sees a half-written batch.
func writeJSONAtomic(dest string, v any, pretty bool) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	// CreateTemp makes the file 0600; batch files are meant to be shared.
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}

	bw := bufio.NewWriterSize(tmp, 64*1024)
	if err := jsonutil.Encode(bw, v, pretty); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
