package classify

import (
	"github.com/grailbio/hic/fragment"
	"github.com/grailbio/hts/sam"
)

// Category labels one classified Hi-C pair.
type Category uint8

const (
	// Filtered marks pairs that cannot be interpreted: a read without an
	// alignment, an unorderable pair, a read without a unique restriction
	// fragment, or a same-fragment strand signature matching no known
	// artifact.
	Filtered Category = iota
	// DanglingEnd is an unligated fragment sequenced from both sides: both
	// reads on one fragment, upstream Reverse and downstream Forward.
	DanglingEnd
	// SelfCircle is a fragment ligated onto itself: both reads on one
	// fragment, upstream Forward and downstream Reverse.
	SelfCircle
	// Religation joins two adjacent fragments back at their shared cut
	// site, in any strand configuration.
	Religation
	// ValidInteraction is a genuine contact between non-adjacent fragments.
	ValidInteraction
)

const numCategories = 5

func (c Category) String() string {
	switch c {
	case Filtered:
		return "filtered"
	case DanglingEnd:
		return "dangling_end"
	case SelfCircle:
		return "self_circle"
	case Religation:
		return "religation"
	case ValidInteraction:
		return "valid_interaction"
	}
	return "unknown"
}

// FilterReason says why a pair ended up Filtered.
type FilterReason uint8

const (
	// FilterNone marks pairs that were not filtered.
	FilterNone FilterReason = iota
	// FilterUnmapped marks pairs where a read is unmapped or carries no
	// usable alignment start or span.
	FilterUnmapped
	// FilterUnordered marks pairs that could not be put in canonical order
	// because a read's reference is malformed.
	FilterUnordered
	// FilterUnassigned marks pairs where a read has no unique restriction
	// fragment, either outside the digest or on overlapping definitions.
	FilterUnassigned
	// FilterOrientation marks same-fragment pairs whose FF or RR strand
	// signature matches neither dangling end nor self circle.
	FilterOrientation
)

const numFilterReasons = 5

func (f FilterReason) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterUnmapped:
		return "unmapped"
	case FilterUnordered:
		return "unordered"
	case FilterUnassigned:
		return "unassigned"
	case FilterOrientation:
		return "orientation"
	}
	return "unknown"
}

// PairSide describes one end of a classified pair.
type PairSide struct {
	// Chrom is the reference name, empty when the read has none.
	Chrom string
	// Pos is the read's reported coordinate, -1 when unresolved.
	Pos int
	// Reverse is the read's strand.
	Reverse bool
	// Frag is the uniquely assigned restriction fragment, nil otherwise.
	Frag *fragment.Fragment
	// Hits is the number of fragments covering the read's midpoint: 1 when
	// assigned, 0 outside the digest, >1 on overlapping definitions, -1
	// when assignment was never attempted.
	Hits int
}

// Pair is the classification record for one read pair. Up and Down are in
// canonical order when Ordered is true, otherwise in input order.
type Pair struct {
	Name     string
	Category Category
	Filter   FilterReason
	// Orientation is the canonical strand signature; meaningful only when
	// Ordered.
	Orientation Orientation
	Ordered     bool
	// Size is the category's size metric, -1 when absent.
	Size int
	// CisDistance is the midpoint separation for same-chromosome pairs, -1
	// otherwise.
	CisDistance int
	Up, Down    PairSide
}

// Classifier classifies read pairs against a restriction digest. Safe for
// concurrent use.
type Classifier struct {
	idx     *fragment.Index
	readPos PosPolicy
	diag    Diag
}

// New returns a Classifier over idx. readPos selects the reported per-read
// coordinate; classification itself always uses alignment midpoints. A nil
// diag sends warnings to the process log.
func New(idx *fragment.Index, readPos PosPolicy, diag Diag) *Classifier {
	if diag == nil {
		diag = logDiag{}
	}
	return &Classifier{idx: idx, readPos: readPos, diag: diag}
}

func aligned(r *sam.Record) bool {
	return r != nil && r.Flags&sam.Unmapped == 0 && r.Ref != nil &&
		r.Pos >= 0 && r.End()-r.Pos > 0
}

func pairName(r1, r2 *sam.Record) string {
	if r1 != nil && r1.Name != "" {
		return r1.Name
	}
	if r2 != nil {
		return r2.Name
	}
	return ""
}

// Classify produces the classification record for one read pair. It never
// fails; pairs that cannot be interpreted come back Filtered with the
// reason attached.
func (c *Classifier) Classify(r1, r2 *sam.Record) Pair {
	p := Pair{Name: pairName(r1, r2), Size: -1, CisDistance: -1}
	if !aligned(r1) || !aligned(r2) {
		p.Filter = FilterUnmapped
		p.Up = c.sideOf(r1)
		p.Down = c.sideOf(r2)
		return p
	}
	up, down, ok := orderPair(r1, r2)
	if !ok {
		p.Filter = FilterUnordered
		p.Up = c.sideOf(r1)
		p.Down = c.sideOf(r2)
		return p
	}
	p.Ordered = true
	p.Orientation = orientationOf(up.loc.Reverse, down.loc.Reverse)
	p.Up = c.reportSide(up)
	p.Down = c.reportSide(down)
	sameChrom := up.r.Ref.ID() == down.r.Ref.ID()
	if sameChrom {
		p.CisDistance = down.loc.Pos - up.loc.Pos
	}

	ua := assignFragment(c.idx, up.r, up.loc, c.diag)
	da := assignFragment(c.idx, down.r, down.loc, c.diag)
	p.Up.Hits, p.Down.Hits = ua.hits, da.hits
	if ua.hits == 1 {
		f := ua.frag
		p.Up.Frag = &f
	}
	if da.hits == 1 {
		f := da.frag
		p.Down.Frag = &f
	}
	if ua.hits != 1 || da.hits != 1 {
		p.Filter = FilterUnassigned
		return p
	}

	uf, df := ua.frag, da.frag
	switch {
	case sameChrom && uf == df:
		switch p.Orientation {
		case RF:
			p.Category = DanglingEnd
		case FR:
			p.Category = SelfCircle
		default:
			p.Filter = FilterOrientation
			return p
		}
	case sameChrom && uf.Adjacent(df):
		p.Category = Religation
	default:
		p.Category = ValidInteraction
	}
	p.Size = pairSize(up.loc, down.loc, uf, df, p.Category)
	return p
}

// reportSide renders one canonical end for output, re-resolving the
// coordinate under the reporting policy when it differs from the midpoint.
func (c *Classifier) reportSide(e readEnd) PairSide {
	side := PairSide{Chrom: e.r.Ref.Name(), Pos: e.loc.Pos, Reverse: e.loc.Reverse, Hits: -1}
	if c.readPos != PosMiddle {
		if loc, err := ResolveLocus(e.r, c.readPos); err == nil {
			side.Pos = loc.Pos
		}
	}
	return side
}

// sideOf renders a read from a pair that never reached canonical order.
func (c *Classifier) sideOf(r *sam.Record) PairSide {
	side := PairSide{Pos: -1, Hits: -1}
	if r == nil {
		return side
	}
	if r.Ref != nil {
		side.Chrom = r.Ref.Name()
	}
	side.Reverse = r.Flags&sam.Reverse != 0
	if loc, err := ResolveLocus(r, c.readPos); err == nil {
		side.Pos = loc.Pos
	}
	return side
}
