// internal/writers/summary.go
package writers

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"af3pairs/internal/jsonlutil"
	"af3pairs/internal/jsonutil"
	"af3pairs/internal/results"
	"af3pairs/pkg/api"
)

// Summary output formats.
const (
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Column sets. Directory results split the pair into its two chains;
// server zips keep the pair name whole and add ranking_score.
var (
	DirHeader = []string{"Multimer", "Pathogen_protein", "Host_protein", "ipTM", "pTM", "0.8ipTM+0.2pTM"}
	ZipHeader = []string{"protein_pair_names", "ipTM", "pTM", "0.8ipTM+0.2pTM", "ranking_score"}
)

// Summary is the payload every summary writer receives.
type Summary struct {
	Kind    results.Kind
	Records []results.Record
}

// FormatFromPath infers a format from a file extension, defaulting to csv.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return FormatTSV
	case ".json":
		return FormatJSON
	case ".jsonl", ".ndjson":
		return FormatJSONL
	}
	return FormatCSV
}

func init() {
	RegisterSummary(FormatCSV, func(w io.Writer, payload interface{}) error {
		return writeDelimited(w, payload.(Summary), ',')
	})
	RegisterSummary(FormatTSV, func(w io.Writer, payload interface{}) error {
		return writeDelimited(w, payload.(Summary), '\t')
	})
	RegisterSummary(FormatJSON, func(w io.Writer, payload interface{}) error {
		s := payload.(Summary)
		list := make([]api.ScoreV1, 0, len(s.Records))
		for _, r := range s.Records {
			list = append(list, r.API())
		}
		return jsonutil.EncodePretty(w, list)
	})
	RegisterSummary(FormatJSONL, func(w io.Writer, payload interface{}) error {
		return jsonlutil.Write(w, payload.(Summary).Records, func(r results.Record) any { return r.API() })
	})
}

func header(k results.Kind) []string {
	if k == results.FromZip {
		return ZipHeader
	}
	return DirHeader
}

// Row renders one record under the column set for k.
func Row(k results.Kind, r results.Record) []string {
	if k == results.FromZip {
		rank := ""
		if r.RankingScore != nil {
			rank = ftoa(*r.RankingScore)
		}
		return []string{r.Name, ftoa(r.IPTM), ftoa(r.PTM), ftoa(r.Weighted), rank}
	}
	return []string{r.Multimer, r.ChainA, r.ChainB, ftoa(r.IPTM), ftoa(r.PTM), ftoa(r.Weighted)}
}

func writeDelimited(w io.Writer, s Summary, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(header(s.Kind)); err != nil {
		return err
	}
	for _, r := range s.Records {
		if err := cw.Write(Row(s.Kind, r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
