// Package fragment indexes restriction fragments, the genomic intervals
// produced by an in-silico digest of the reference, and answers the point
// queries that map aligned Hi-C reads back onto them.
package fragment

import "fmt"

// Fragment is one restriction fragment: a 0-based half-open interval
// [Start, End) on a named chromosome. Fragments are plain values and
// compare by coordinates.
type Fragment struct {
	Chrom string
	Start int
	End   int
}

func (f Fragment) String() string {
	return fmt.Sprintf("%s:[%d,%d)", f.Chrom, f.Start, f.End)
}

// Len returns the fragment length in bases.
func (f Fragment) Len() int { return f.End - f.Start }

// Contains reports whether the 0-based position lies within the fragment.
func (f Fragment) Contains(pos int) bool {
	return pos >= f.Start && pos < f.End
}

// Adjacent reports whether f and g abut on the same chromosome, i.e. they
// share exactly one cut site. A fragment is not adjacent to itself.
func (f Fragment) Adjacent(g Fragment) bool {
	if f.Chrom != g.Chrom {
		return false
	}
	return f.End == g.Start || g.End == f.Start
}
