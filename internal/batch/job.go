// internal/batch/job.go
package batch

import (
	"af3pairs/internal/fasta"
	"af3pairs/pkg/api"
)

// JobName is the canonical "<id_a>--VS--<id_b>" name.
func JobName(idA, idB string) string { return idA + api.NameSep + idB }

// NewJob builds the descriptor for one pair. seed <= 0 means api.DefaultModelSeed.
func NewJob(a, b fasta.Record, countA, countB, seed int) api.JobV1 {
	if seed <= 0 {
		seed = api.DefaultModelSeed
	}
	return api.JobV1{
		Name:       JobName(a.ID, b.ID),
		ModelSeeds: []int{seed},
		Sequences: []api.SequenceV1{
			{ProteinChain: &api.ProteinChainV1{Sequence: a.Seq, Count: countA}},
			{ProteinChain: &api.ProteinChainV1{Sequence: b.Seq, Count: countB}},
		},
	}
}
