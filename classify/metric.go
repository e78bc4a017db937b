package classify

import (
	"github.com/grailbio/hic/fragment"
	"github.com/grailbio/hts/sam"
)

// satSub returns a-b, clamped at zero. Sizes are lengths; a locus sitting
// exactly on a fragment boundary must yield 0, never a negative length.
func satSub(a, b int) int {
	if d := a - b; d > 0 {
		return d
	}
	return 0
}

// pointedSpan is the distance from a locus to the fragment boundary the
// read points at: forward reads point at the fragment end, reverse reads
// at its start.
func pointedSpan(loc Locus, frag fragment.Fragment) int {
	if loc.Reverse {
		return satSub(loc.Pos, frag.Start)
	}
	return satSub(frag.End, loc.Pos)
}

// pairSize computes the size metric for a canonically ordered, fully
// assigned pair. DanglingEnd and Religation measure the midpoint
// separation; SelfCircle measures the circularized length, the two arcs
// from each midpoint to its outer fragment boundary; ValidInteraction
// approximates the sequenced insert as the sum of each read's distance to
// the boundary it points at. Filtered pairs have no size.
func pairSize(up, down Locus, upFrag, downFrag fragment.Fragment, cat Category) int {
	switch cat {
	case DanglingEnd, Religation:
		return satSub(down.Pos, up.Pos)
	case SelfCircle:
		return satSub(up.Pos, upFrag.Start) + satSub(downFrag.End, down.Pos)
	case ValidInteraction:
		return pointedSpan(up, upFrag) + pointedSpan(down, downFrag)
	}
	return -1
}

// CisDistance returns the distance between the two reads' alignment
// midpoints. ok is false for pairs on different chromosomes or with an
// unresolvable read.
func CisDistance(r1, r2 *sam.Record) (dist int, ok bool) {
	if r1 == nil || r2 == nil || r1.Ref == nil || r2.Ref == nil {
		return 0, false
	}
	if r1.Ref.ID() != r2.Ref.ID() {
		return 0, false
	}
	loc1, err1 := ResolveLocus(r1, PosMiddle)
	loc2, err2 := ResolveLocus(r2, PosMiddle)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	if loc1.Pos > loc2.Pos {
		return loc1.Pos - loc2.Pos, true
	}
	return loc2.Pos - loc1.Pos, true
}
