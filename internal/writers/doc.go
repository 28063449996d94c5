// Package writers turns summarized score records into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (column sets, CSV/TSV/JSON/JSONL).
//   • The results package stays collection-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
