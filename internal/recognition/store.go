package recognition

import (
	"errors"

	"github.com/google/uuid"

	"github.com/abhisek/anerkennung/internal/mapping"
)

// ErrNotFound is returned for an unknown record ID or index.
var ErrNotFound = errors.New("record not found")

// Store is the ordered list of records. Every mutation recomputes the
// active flags over the whole list before it returns.
type Store struct {
	records []*Record
	rules   []Rule
}

// NewStore creates an empty store using DefaultRules.
func NewStore() *Store {
	return NewStoreWithRules(DefaultRules()...)
}

// NewStoreWithRules creates an empty store with custom selection rules.
func NewStoreWithRules(rules ...Rule) *Store {
	return &Store{rules: rules}
}

// Add appends a record for sourceKey and returns it after recomputation.
func (s *Store) Add(sourceKey string, mod mapping.Module, grade string) Record {
	r := &Record{
		ID:         uuid.New().String(),
		SourceKey:  sourceKey,
		TargetID:   mod.ID,
		TargetName: mod.Name,
		Grade:      grade,
	}
	s.records = append(s.records, r)
	s.recompute()
	return *r
}

// Take removes the record and returns it so the caller can restage it for
// editing. Re-adding appends it to the end of the list.
func (s *Store) Take(id string) (Record, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Record{}, ErrNotFound
	}
	r := *s.records[i]
	s.removeAt(i)
	return r, nil
}

// Remove deletes the record with the given ID.
func (s *Store) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.removeAt(i)
	return nil
}

// RemoveAt deletes the record at position i.
func (s *Store) RemoveAt(i int) error {
	if i < 0 || i >= len(s.records) {
		return ErrNotFound
	}
	s.removeAt(i)
	return nil
}

// Clear removes every record.
func (s *Store) Clear() {
	s.records = nil
	s.recompute()
}

// Load replaces the list, e.g. with records restored from disk. IDs are
// kept when present and assigned otherwise.
func (s *Store) Load(records []Record) {
	s.records = make([]*Record, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		s.records = append(s.records, &r)
	}
	s.recompute()
}

// Records returns a copy of the list in order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = *r
	}
	return out
}

// Active returns the active records in order.
func (s *Store) Active() []Record {
	var out []Record
	for _, r := range s.records {
		if r.Active {
			out = append(out, *r)
		}
	}
	return out
}

// At returns the record at position i.
func (s *Store) At(i int) (Record, error) {
	if i < 0 || i >= len(s.records) {
		return Record{}, ErrNotFound
	}
	return *s.records[i], nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// UsedKeys returns the source keys in list order.
func (s *Store) UsedKeys() []string {
	keys := make([]string, len(s.records))
	for i, r := range s.records {
		keys[i] = r.SourceKey
	}
	return keys
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.recompute()
}

func (s *Store) recompute() {
	Recompute(s.records, s.rules...)
}
