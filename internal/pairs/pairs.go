// internal/pairs/pairs.go
package pairs

import (
	"af3pairs/internal/fasta"
)

// Mode selects how pairs are formed.
type Mode int

const (
	// CrossProduct pairs every id of A with every id of B.
	CrossProduct Mode = iota
	// Combinations pairs A with itself, upper triangle only (j >= i).
	Combinations
)

func (m Mode) String() string {
	if m == Combinations {
		return "combinations"
	}
	return "cross"
}

// Options tweak enumeration.
type Options struct {
	// ExcludeSelf drops (x, x) pairs in Combinations mode. Self-pairs are
	// included by default: each id is folded against itself once. This
	// has no effect in CrossProduct mode, where ids come from different
	// files.
	ExcludeSelf bool
}

// Pair is one enumerated combination. I and J index into the source stores.
type Pair struct {
	I, J int
	A, B string
}

// ModeOf reports the mode ForEach will use for (a, b).
func ModeOf(b *fasta.Store) Mode {
	if b == nil {
		return Combinations
	}
	return CrossProduct
}

// Count returns the number of pairs ForEach will yield.
func Count(a, b *fasta.Store, opt Options) int {
	n := a.Len()
	if b != nil {
		return n * b.Len()
	}
	if opt.ExcludeSelf {
		return n * (n - 1) / 2
	}
	return n * (n + 1) / 2
}

// ForEach calls fn for each pair in order. With b == nil it walks the
// upper triangle of a (outer i, inner j from i, or i+1 with ExcludeSelf);
// otherwise the full cross product, outer a, inner b.
//
// Nothing is buffered; call again to restart. A non-nil error from fn
// stops enumeration and is returned as is.
func ForEach(a, b *fasta.Store, opt Options, fn func(Pair) error) error {
	n := a.Len()
	if b != nil {
		m := b.Len()
		for i := 0; i < n; i++ {
			ida := a.ID(i)
			for j := 0; j < m; j++ {
				if err := fn(Pair{I: i, J: j, A: ida, B: b.ID(j)}); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for i := 0; i < n; i++ {
		ida := a.ID(i)
		start := i
		if opt.ExcludeSelf {
			start = i + 1
		}
		for j := start; j < n; j++ {
			if err := fn(Pair{I: i, J: j, A: ida, B: a.ID(j)}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Collect is ForEach into a slice. Meant for tests and small inputs.
func Collect(a, b *fasta.Store, opt Options) []Pair {
	out := make([]Pair, 0, Count(a, b, opt))
	_ = ForEach(a, b, opt, func(p Pair) error {
		out = append(out, p)
		return nil
	})
	return out
}
