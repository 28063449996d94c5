// Package pairs enumerates (id_a, id_b) pairs over one or two sequence
// stores. It never imports batch, manifest, app, or cli; keep it domain-only.
//
// Enumeration order is part of the contract: batch numbering and output
// file names downstream depend on it being identical across runs.
package pairs
