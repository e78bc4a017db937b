package classify

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/hic/fragment"
	"github.com/grailbio/hts/sam"
)

// Diag receives advisory warnings about reads that drop out of
// classification. Implementations must be safe for concurrent use.
type Diag interface {
	Warnf(format string, args ...interface{})
}

// logDiag routes warnings to the process log.
type logDiag struct{}

func (logDiag) Warnf(format string, args ...interface{}) {
	log.Error.Printf(format, args...)
}

// assignment is the outcome of mapping one read onto the digest: Hits is
// the number of fragments covering the read's midpoint, and Frag is
// meaningful only when Hits == 1.
type assignment struct {
	frag fragment.Fragment
	hits int
}

// assignFragment maps a read to the restriction fragment containing its
// midpoint locus. Zero covering fragments means the locus sits outside the
// digest; more than one means the fragment file contains overlapping
// definitions. Both leave the read unassigned and are reported to diag,
// never treated as fatal.
func assignFragment(idx *fragment.Index, r *sam.Record, loc Locus, diag Diag) assignment {
	chrom := r.Ref.Name()
	hits := idx.Overlapping(chrom, loc.Pos)
	switch len(hits) {
	case 1:
		return assignment{frag: hits[0], hits: 1}
	case 0:
		diag.Warnf("no restriction fragment found for %s at %s:%d - skipped", r.Name, chrom, loc.Pos)
		return assignment{hits: 0}
	default:
		diag.Warnf("%d restriction fragments found for %s at %s:%d - skipped", len(hits), r.Name, chrom, loc.Pos)
		return assignment{hits: len(hits)}
	}
}
