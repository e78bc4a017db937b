package classify

import (
	"github.com/grailbio/hts/sam"
)

// readEnd is one mapped end of a Hi-C pair together with its resolved
// midpoint locus.
type readEnd struct {
	r   *sam.Record
	loc Locus
}

// endLess orders two resolved ends by (reference ID, midpoint). Ties break
// on record values only, forward strand first, then first segment first, so
// the same two reads order identically no matter which arrived as R1.
func endLess(a, b readEnd) bool {
	if a.r.Ref.ID() != b.r.Ref.ID() {
		return a.r.Ref.ID() < b.r.Ref.ID()
	}
	if a.loc.Pos != b.loc.Pos {
		return a.loc.Pos < b.loc.Pos
	}
	if a.loc.Reverse != b.loc.Reverse {
		return !a.loc.Reverse
	}
	if aR1, bR1 := a.r.Flags&sam.Read1, b.r.Flags&sam.Read1; aR1 != bR1 {
		return aR1 != 0
	}
	return false
}

// orderPair fixes the canonical upstream and downstream roles of a pair.
// ok is false when either read cannot supply a registered reference and a
// midpoint, in which case no ordering exists.
func orderPair(r1, r2 *sam.Record) (up, down readEnd, ok bool) {
	if r1 == nil || r2 == nil || r1.Ref == nil || r2.Ref == nil {
		return readEnd{}, readEnd{}, false
	}
	if r1.Ref.ID() < 0 || r2.Ref.ID() < 0 {
		return readEnd{}, readEnd{}, false
	}
	loc1, err1 := ResolveLocus(r1, PosMiddle)
	loc2, err2 := ResolveLocus(r2, PosMiddle)
	if err1 != nil || err2 != nil {
		return readEnd{}, readEnd{}, false
	}
	e1 := readEnd{r: r1, loc: loc1}
	e2 := readEnd{r: r2, loc: loc2}
	if endLess(e2, e1) {
		return e2, e1, true
	}
	return e1, e2, true
}
