package fragment

import (
	"testing"
)

func TestContains(t *testing.T) {
	f := Fragment{Chrom: "chr1", Start: 100, End: 250}
	tests := []struct {
		pos  int
		want bool
	}{
		{99, false},
		{100, true},
		{175, true},
		{249, true},
		{250, false},
	}
	for _, test := range tests {
		if got := f.Contains(test.pos); got != test.want {
			t.Errorf("Contains(%d): got %v, want %v", test.pos, got, test.want)
		}
	}
}

func TestAdjacent(t *testing.T) {
	a := Fragment{Chrom: "chr1", Start: 0, End: 100}
	b := Fragment{Chrom: "chr1", Start: 100, End: 250}
	c := Fragment{Chrom: "chr1", Start: 250, End: 400}
	other := Fragment{Chrom: "chr2", Start: 100, End: 250}

	if !a.Adjacent(b) || !b.Adjacent(a) {
		t.Errorf("expected %v and %v to be adjacent", a, b)
	}
	if a.Adjacent(c) {
		t.Errorf("%v and %v share no cut site", a, c)
	}
	if a.Adjacent(other) {
		t.Errorf("fragments on different chromosomes cannot be adjacent")
	}
	if a.Adjacent(a) {
		t.Errorf("a fragment is not adjacent to itself")
	}
}

func TestLen(t *testing.T) {
	f := Fragment{Chrom: "chr1", Start: 500, End: 900}
	if got := f.Len(); got != 400 {
		t.Errorf("Len: got %d, want 400", got)
	}
}
