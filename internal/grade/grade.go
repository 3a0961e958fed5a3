// Package grade turns free-text grades into comparable numbers.
package grade

import (
	"math"
	"strconv"
	"strings"
)

// Worst is returned for any grade that cannot be parsed. It sorts after
// every real grade on a scale where 1.0 is best.
const Worst = 99.9

// Parse normalizes a comma decimal separator to a dot and parses the
// result. It never fails: malformed input yields Worst.
func Parse(raw string) float64 {
	v, ok := parse(raw)
	if !ok {
		return Worst
	}
	return v
}

// Valid reports whether raw parses to a real grade.
func Valid(raw string) bool {
	_, ok := parse(raw)
	return ok
}

func parse(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
