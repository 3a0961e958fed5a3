// Package recognition holds the ordered list of recognition records and
// the selection rules that decide which of them count.
package recognition

import (
	"sort"

	"github.com/abhisek/anerkennung/internal/mapping"
)

// Display labels for a record's selection state.
const (
	StatusActive   = "Dabei"
	StatusExcluded = "Ignoriert (Limit)"
)

// Record is one prior course mapped to one target module.
type Record struct {
	ID         string
	SourceKey  string
	TargetID   string
	TargetName string
	Grade      string

	// Active is owned by Recompute. Callers never set it.
	Active bool
}

// Status returns the label shown next to the record in the list.
func (r Record) Status() string {
	if r.Active {
		return StatusActive
	}
	return StatusExcluded
}

// AvailableCourses returns the sorted mapping keys that no record uses yet.
func AvailableCourses(m mapping.Mapping, records []Record) []string {
	used := make(map[string]bool, len(records))
	for _, r := range records {
		used[r.SourceKey] = true
	}
	out := make([]string, 0, len(m))
	for k := range m {
		if !used[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
