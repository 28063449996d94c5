// internal/fasta/store.go
package fasta

// Record is one parsed FASTA entry.
type Record struct {
	ID  string
	Seq string
}

// Store is an ordered id → sequence mapping. Order is the order in which
// ids were first seen in the file. A Store is never modified after Parse
// returns it.
//
// Duplicate ids: the last sequence wins, but the id keeps the position of
// its first occurrence. Duplicates() lists the affected ids.
type Store struct {
	name  string
	ids   []string
	seqs  map[string]string
	dupes []string
}

func newStore(name string) *Store {
	return &Store{name: name, seqs: make(map[string]string)}
}

func (s *Store) put(id, seq string) {
	if _, ok := s.seqs[id]; ok {
		s.dupes = append(s.dupes, id)
	} else {
		s.ids = append(s.ids, id)
	}
	s.seqs[id] = seq
}

// Name is the path (or "-") the store was parsed from.
func (s *Store) Name() string { return s.name }

// Len returns the number of distinct ids.
func (s *Store) Len() int { return len(s.ids) }

// ID returns the i-th id in file order.
func (s *Store) ID(i int) string { return s.ids[i] }

// At returns the i-th record in file order.
func (s *Store) At(i int) Record {
	id := s.ids[i]
	return Record{ID: id, Seq: s.seqs[id]}
}

// Seq looks up a sequence by id.
func (s *Store) Seq(id string) (string, bool) {
	seq, ok := s.seqs[id]
	return seq, ok
}

// IDs returns a copy of the ids in file order.
func (s *Store) IDs() []string { return append([]string(nil), s.ids...) }

// Duplicates returns ids that appeared more than once, once per extra
// occurrence, in the order the repeats were seen.
func (s *Store) Duplicates() []string { return append([]string(nil), s.dupes...) }
