package classify

import (
	"errors"
	"fmt"

	"github.com/grailbio/hts/sam"
)

// PosPolicy selects the representative coordinate of an aligned read.
type PosPolicy int

const (
	// PosMiddle uses the midpoint of the aligned span. Fragment assignment
	// always uses this policy: a read straddling a cut site belongs to the
	// fragment holding most of it, not whichever fragment touches its outer
	// edge.
	PosMiddle PosPolicy = iota
	// PosStart uses the 5' end of the alignment in sequencing direction,
	// i.e. the last aligned base for reverse-strand reads.
	PosStart
	// PosLeft uses the leftmost aligned base regardless of strand.
	PosLeft
)

// ParsePosPolicy converts a policy name ("middle", "start" or "left") to a
// PosPolicy.
func ParsePosPolicy(name string) (PosPolicy, error) {
	switch name {
	case "middle":
		return PosMiddle, nil
	case "start":
		return PosStart, nil
	case "left":
		return PosLeft, nil
	}
	return PosMiddle, fmt.Errorf("unknown read position policy %q (want 'middle', 'start' or 'left')", name)
}

func (p PosPolicy) String() string {
	switch p {
	case PosMiddle:
		return "middle"
	case PosStart:
		return "start"
	case PosLeft:
		return "left"
	}
	return fmt.Sprintf("PosPolicy(%d)", int(p))
}

// Locus is a read's resolved 0-based coordinate and strand.
type Locus struct {
	Pos     int
	Reverse bool
}

var errMissingAlignment = errors.New("read has no alignment start or span")

// ResolveLocus returns the read's representative coordinate under policy.
// A record without a valid alignment start, or whose CIGAR consumes no
// reference bases, cannot be resolved.
func ResolveLocus(r *sam.Record, policy PosPolicy) (Locus, error) {
	span := r.End() - r.Pos
	if r.Pos < 0 || span <= 0 {
		return Locus{}, errMissingAlignment
	}
	loc := Locus{Reverse: r.Flags&sam.Reverse != 0}
	switch policy {
	case PosMiddle:
		loc.Pos = r.Pos + span/2
	case PosStart:
		if loc.Reverse {
			loc.Pos = r.Pos + span - 1
		} else {
			loc.Pos = r.Pos
		}
	case PosLeft:
		loc.Pos = r.Pos
	default:
		return Locus{}, fmt.Errorf("unknown position policy %d", policy)
	}
	return loc, nil
}
