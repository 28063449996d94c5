// pkg/api/scores_v1.go
package api

// ScoreV1 is the stable JSON/JSONL schema for one summarized job result.
type ScoreV1 struct {
	Name         string   `json:"name"`
	Multimer     string   `json:"multimer,omitempty"`
	ChainA       string   `json:"chain_a,omitempty"`
	ChainB       string   `json:"chain_b,omitempty"`
	IPTM         float64  `json:"iptm"`
	PTM          float64  `json:"ptm"`
	Weighted     float64  `json:"weighted"` // 0.8*iptm + 0.2*ptm, 3 d.p.
	RankingScore *float64 `json:"ranking_score,omitempty"`
	BatchFile    string   `json:"batch_file,omitempty"`
	Source       string   `json:"source,omitempty"`
}
