package recognition

import (
	"sort"
	"strings"

	"github.com/abhisek/anerkennung/internal/grade"
)

// ElementsMarker identifies the capped "Elements of" electives.
const ElementsMarker = "Elements of"

// Rule caps how many records of one category may be active at once.
type Rule struct {
	Name  string
	Match func(sourceKey string) bool
	Cap   int
}

// ContainsMarker matches source keys containing marker (case-sensitive).
func ContainsMarker(marker string) func(string) bool {
	return func(sourceKey string) bool {
		return strings.Contains(sourceKey, marker)
	}
}

// ElementsRule keeps the best two "Elements of" courses.
var ElementsRule = Rule{
	Name:  "elements",
	Match: ContainsMarker(ElementsMarker),
	Cap:   2,
}

// DefaultRules returns the rules applied by a Store created with NewStore.
func DefaultRules() []Rule {
	return []Rule{ElementsRule}
}

// Recompute resets every record to active and then, per rule, deactivates
// all but the Cap best-graded matching records. Lower parsed grades are
// better; ties keep list order. The result depends only on the list.
func Recompute(records []*Record, rules ...Rule) {
	for _, r := range records {
		r.Active = true
	}

	for _, rule := range rules {
		if rule.Match == nil {
			continue
		}

		type candidate struct {
			rec   *Record
			grade float64
		}
		var subset []candidate
		for _, r := range records {
			if rule.Match(r.SourceKey) {
				subset = append(subset, candidate{rec: r, grade: grade.Parse(r.Grade)})
			}
		}
		if len(subset) <= rule.Cap {
			continue
		}

		sort.SliceStable(subset, func(i, j int) bool {
			return subset[i].grade < subset[j].grade
		})
		for _, c := range subset[max(rule.Cap, 0):] {
			c.rec.Active = false
		}
	}
}
