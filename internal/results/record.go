// internal/results/record.go
package results

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"af3pairs/pkg/api"
)

// Kind tells which source a record set came from; writers pick columns by it.
type Kind int

const (
	// FromDir records come from local AlphaFold3 output directories.
	FromDir Kind = iota
	// FromZip records come from AlphaFold Server zip downloads.
	FromZip
)

// Record is one summarized job.
type Record struct {
	Name         string
	Multimer     string
	ChainA       string
	ChainB       string
	IPTM         float64
	PTM          float64
	Weighted     float64
	RankingScore *float64
	BatchFile    string
	Source       string
}

// API converts to the stable wire type.
func (r Record) API() api.ScoreV1 {
	return api.ScoreV1{
		Name: r.Name, Multimer: r.Multimer, ChainA: r.ChainA, ChainB: r.ChainB,
		IPTM: r.IPTM, PTM: r.PTM, Weighted: r.Weighted, RankingScore: r.RankingScore,
		BatchFile: r.BatchFile, Source: r.Source,
	}
}

// LookupError reports a score field missing from a result file. The
// record is unusable; no default is substituted.
type LookupError struct {
	Path  string
	Field string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: missing %q", e.Path, e.Field)
}

// Weighted is 0.8*iptm + 0.2*ptm rounded to 3 decimal places.
func Weighted(iptm, ptm float64) float64 {
	return math.Round((0.8*iptm+0.2*ptm)*1000) / 1000
}

type confidences struct {
	IPTM         *float64 `json:"iptm"`
	PTM          *float64 `json:"ptm"`
	RankingScore *float64 `json:"ranking_score"`
}

// decodeScores reads one summary_confidences JSON document.
func decodeScores(path string, r io.Reader) (Record, error) {
	var c confidences
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	if c.IPTM == nil {
		return Record{}, &LookupError{Path: path, Field: "iptm"}
	}
	if c.PTM == nil {
		return Record{}, &LookupError{Path: path, Field: "ptm"}
	}
	return Record{
		IPTM:         *c.IPTM,
		PTM:          *c.PTM,
		Weighted:     Weighted(*c.IPTM, *c.PTM),
		RankingScore: c.RankingScore,
		Source:       path,
	}, nil
}

// SplitName splits a job name at the pair separator, ignoring case since
// AlphaFold3 lower-cases names. ok is false when there is no separator.
// The match is made on name's own bytes: lower-casing can change the byte
// length of non-ASCII runes, so offsets into a lowered copy are unsafe.
func SplitName(name string) (a, b string, ok bool) {
	sep := api.NameSep
	for i := 0; i+len(sep) <= len(name); i++ {
		if strings.EqualFold(name[i:i+len(sep)], sep) {
			return name[:i], name[i+len(sep):], true
		}
	}
	return name, "", false
}

// Sort orders records by iptm then ptm, both descending. Ties keep a
// stable name order so output is reproducible.
func Sort(rs []Record) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].IPTM != rs[j].IPTM {
			return rs[i].IPTM > rs[j].IPTM
		}
		if rs[i].PTM != rs[j].PTM {
			return rs[i].PTM > rs[j].PTM
		}
		return rs[i].Name < rs[j].Name
	})
}
