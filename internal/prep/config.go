// internal/prep/config.go
package prep

import (
	"errors"
	"fmt"
	"strings"

	"af3pairs/pkg/api"
)

// Bounds accepted for counts and batch size.
const (
	MinCount     = 1
	MaxCount     = 199
	MinBatchSize = 1
	MaxBatchSize = 999999
)

// Defaults used by the CLI and the YAML loader.
const (
	DefaultBatchSize = 30
	DefaultTag       = "20250501"
	DefaultOutDir    = "./"
)

// Config is everything one preparation run needs.
type Config struct {
	Fasta1 string // required
	Fasta2 string // optional; empty selects single-file combinations

	Count1    int // copies of the chain from Fasta1
	Count2    int // copies of the chain from Fasta2 (or the second Fasta1 chain)
	BatchSize int // jobs per JSON file

	Tag    string
	OutDir string
	Seed   int // model seed; <= 0 → api.DefaultModelSeed

	Pretty      bool
	ExcludeSelf bool
	Manifest    string // SQLite path; empty disables
	DryRun      bool

	// Warnf receives non-fatal diagnostics. Nil discards them.
	Warnf func(format string, a ...any)
}

// Defaults returns a Config with every optional field at its default.
func Defaults() Config {
	return Config{
		Count1:    1,
		Count2:    1,
		BatchSize: DefaultBatchSize,
		Tag:       DefaultTag,
		OutDir:    DefaultOutDir,
		Seed:      api.DefaultModelSeed,
	}
}

// Validate applies the range and presence checks.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Fasta1) == "" {
		return errors.New("fasta1 path is required")
	}
	if c.Fasta1 == "-" && c.Fasta2 == "-" {
		return errors.New("stdin can only be read once")
	}
	if c.Count1 < MinCount || c.Count1 > MaxCount {
		return fmt.Errorf("count1 must be between %d and %d, got %d", MinCount, MaxCount, c.Count1)
	}
	if c.Count2 < MinCount || c.Count2 > MaxCount {
		return fmt.Errorf("count2 must be between %d and %d, got %d", MinCount, MaxCount, c.Count2)
	}
	if c.BatchSize < MinBatchSize || c.BatchSize > MaxBatchSize {
		return fmt.Errorf("batch size must be between %d and %d, got %d", MinBatchSize, MaxBatchSize, c.BatchSize)
	}
	if c.Tag == "" {
		return errors.New("run tag must not be empty")
	}
	if strings.ContainsAny(c.Tag, `/\`) {
		return fmt.Errorf("run tag %q must not contain path separators", c.Tag)
	}
	if c.OutDir == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}

func (c Config) warnf(format string, a ...any) {
	if c.Warnf != nil {
		c.Warnf(format, a...)
	}
}
