package integration

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"af3pairs/internal/app"
)

func TestCancelledBeforeFirstFlush_Exit130(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, ">P%d\nMKV\n", i)
	}
	fa := filepath.Join(dir, "many.fa")
	if err := os.WriteFile(fa, []byte(sb.String()), 0644); err != nil {
		t.Fatalf("write fasta: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := app.RunContext(ctx, []string{"-o", dir, fa}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "20250501_af3_jsons")); !os.IsNotExist(err) {
		t.Fatalf("no batch should have been flushed: %v", err)
	}
}
