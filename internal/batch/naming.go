// internal/batch/naming.go
package batch

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Naming holds everything that goes into a batch file name.
type Naming struct {
	Tag    string // run tag, often a date
	StemA  string
	StemB  string // empty in single-file mode
	CountA int
	CountB int
}

// Stem returns the base name of path with its last extension removed,
// so "dir/host.fa" → "host" and "x.fa.gz" → "x.fa". Stdin ("-") becomes "stdin".
func Stem(path string) string {
	if path == "" {
		return ""
	}
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// Dir is the per-tag directory under outDir that receives the batch files.
func (n Naming) Dir(outDir string) string {
	return filepath.Join(outDir, n.Tag+"_af3_jsons")
}

// Multimer is the "<a>+<b>mer" label shared by file names and summaries.
func (n Naming) Multimer() string {
	return fmt.Sprintf("%d+%dmer", n.CountA, n.CountB)
}

// FileName is "<tag>_<stemA>_<stemB>_<a>+<b>mer-<index>.json".
func (n Naming) FileName(index int) string {
	return fmt.Sprintf("%s_%s_%s_%s-%d.json", n.Tag, n.StemA, n.StemB, n.Multimer(), index)
}

// Path joins Dir and FileName.
func (n Naming) Path(outDir string, index int) string {
	return filepath.Join(n.Dir(outDir), n.FileName(index))
}

// ParsedName is what can be recovered unambiguously from a batch file name.
// Tag and stems may themselves contain '_' so they stay joined in Prefix.
type ParsedName struct {
	Prefix string // "<tag>_<stemA>_<stemB>"
	CountA int
	CountB int
	Index  int
}

// Multimer mirrors Naming.Multimer.
func (p ParsedName) Multimer() string {
	return fmt.Sprintf("%d+%dmer", p.CountA, p.CountB)
}

// ParseFileName inverts FileName. name may be a bare stem or carry a
// directory and the .json extension.
func ParseFileName(name string) (ParsedName, bool) {
	var p ParsedName
	base := strings.TrimSuffix(filepath.Base(name), ".json")

	dash := strings.LastIndexByte(base, '-')
	if dash < 0 {
		return p, false
	}
	idx, err := strconv.Atoi(base[dash+1:])
	if err != nil || idx < 1 {
		return p, false
	}
	head := base[:dash]
	if !strings.HasSuffix(head, "mer") {
		return p, false
	}
	us := strings.LastIndexByte(head, '_')
	if us < 0 {
		return p, false
	}
	counts := strings.TrimSuffix(head[us+1:], "mer")
	as, bs, ok := strings.Cut(counts, "+")
	if !ok {
		return p, false
	}
	ca, errA := strconv.Atoi(as)
	cb, errB := strconv.Atoi(bs)
	if errA != nil || errB != nil {
		return p, false
	}
	return ParsedName{Prefix: head[:us], CountA: ca, CountB: cb, Index: idx}, true
}
