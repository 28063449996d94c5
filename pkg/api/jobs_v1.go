// pkg/api/jobs_v1.go
package api

// NameSep joins the two chain ids in a job name.
const NameSep = "--VS--"

// DefaultModelSeed is the single model seed written into every job.
const DefaultModelSeed = 2025

// JobV1 is the stable JSON schema for one AlphaFold3 pair job.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type JobV1 struct {
	Name       string       `json:"name"`
	ModelSeeds []int        `json:"modelSeeds"`
	Sequences  []SequenceV1 `json:"sequences"`
}

// SequenceV1 is one entity of a job. Only protein chains are emitted.
type SequenceV1 struct {
	ProteinChain *ProteinChainV1 `json:"proteinChain,omitempty"`
}

// ProteinChainV1 carries a chain sequence and its copy count.
type ProteinChainV1 struct {
	Sequence string `json:"sequence"`
	Count    int    `json:"count"`
}
