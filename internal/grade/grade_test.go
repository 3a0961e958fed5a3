package grade

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1", 1.0},
		{"2,3", 2.3},
		{"2.3", 2.3},
		{"2,0", 2.0},
		{" 1,7 ", 1.7},
		{"abc", Worst},
		{"", Worst},
		{"1,2,3", Worst},
		{"1.2.3", Worst},
		{"NaN", Worst},
		{"Inf", Worst},
		{"-Inf", Worst},
	}

	for _, tt := range tests {
		got := Parse(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{"\x00", "１,０", "1e400", "--1", ",", ".", "½", "2,3abc"}
	for _, in := range inputs {
		got := Parse(in)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("Parse(%q) = %v, want finite", in, got)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid("1,3") {
		t.Error("expected 1,3 to be valid")
	}
	if Valid("sehr gut") {
		t.Error("expected free text to be invalid")
	}
}
