// Package mapping holds the course → target module table used to turn a
// chosen prior course into a recognition record.
package mapping

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Module is the target module a prior course is recognized as.
type Module struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Mapping maps a course name to its target module.
type Mapping map[string]Module

// Default returns the built-in mapping used when no mapping file exists or
// the file cannot be read.
func Default() Mapping {
	return Mapping{
		"Elements of Mathematics":                      {ID: "MA4DSC1001", Name: "MA4DSC1001 Elements of Mathematics (WP)"},
		"Elements of Computer Science (Part 1)":        {ID: "MA4DSC1002", Name: "MA4DSC1002 Elements of Computer Science"},
		"Elements of Computer Science (Part 2)":        {ID: "MA4DSC1002", Name: "MA4DSC1002 Elements of Computer Science"},
		"Elements of Statistics":                       {ID: "MA4DSC1003", Name: "MA4DSC1003 Elements of Statistics"},
		"Statistical Programming with R":               {ID: "MA4DSC1004", Name: "MA4DSC1004 Statistical Programming with R"},
		"Data Mining":                                  {ID: "BA4WIN6008", Name: "BA4WIN6008 Data Mining"},
		"Big Data Analytics":                           {ID: "MA4DSC1008", Name: "MA4DSC1008 Big Data Analytics"},
		"Information Visualization":                    {ID: "MA4INF3022", Name: "MA4INF3022 Informationsvisualisierung"},
		"Semantic Technologies":                        {ID: "MA4WIN6010", Name: "MA4WIN6010 Semantische Technologien"},
		"Numerical Optimization for Data Science":      {ID: "MA4FWB4503", Name: "MA4FWB4503 Ausgewählte Kapitel der Mathematik C"},
		"Fundamentals of Environmental Remote Sensing": {ID: "MA6FWB4302", Name: "MA6FWB4302 Fundamentals of Environmental Remote Sensing"},
		"Introduction to Geoinformatics":               {ID: "MA6FWB4301", Name: "MA6FWB4301 Introduction to Geoinformatics"},
		"Deutsch: Grundkurs I (A1.1)":                  {ID: "MA2FWB1155", Name: "MA2FWB1155 Deutsch: Grundkurs I (A1.1)"},
		"Deutsch: Grundkurs II (A1.2)":                 {ID: "MA2FWB1156", Name: "MA2FWB1156 Deutsch: Grundkurs II (A1.2)"},
		"Deutsch: Aufbaukurs I (A2.1)":                 {ID: "MA2FWB1157", Name: "MA2FWB1157 Deutsch: Aufbaukurs I (A2.1)"},
		"Deutsch: Aufbaukurs II (A2.2)":                {ID: "MA2FWB1158", Name: "MA2FWB1158 Deutsch: Aufbaukurs II (A2.2)"},
	}
}

// Lookup finds the module for a course. Keys are compared in Unicode NFC
// form so decomposed umlauts still match, and surrounding whitespace is
// ignored. The returned key is the one stored in the mapping.
func (m Mapping) Lookup(course string) (string, Module, bool) {
	want := normalizeKey(course)
	if mod, ok := m[want]; ok {
		return want, mod, true
	}
	for k, mod := range m {
		if normalizeKey(k) == want {
			return k, mod, true
		}
	}
	return "", Module{}, false
}

// Keys returns the course names in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizeKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
