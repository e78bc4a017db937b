package classify

import (
	"fmt"
	"sync"
	"testing"

	"github.com/grailbio/hic/fragment"
	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	chr1, _   = sam.NewReference("chr1", "", "", 1000, nil, nil)
	chr2, _   = sam.NewReference("chr2", "", "", 2000, nil, nil)
	header, _ = sam.NewHeader(nil, []*sam.Reference{chr1, chr2})
	// chrU is deliberately left out of the header, so its ID stays -1.
	chrU, _ = sam.NewReference("chrU", "", "", 500, nil, nil)

	r1F = sam.Paired | sam.Read1
	r1R = sam.Paired | sam.Read1 | sam.Reverse
	r2F = sam.Paired | sam.Read2
	r2R = sam.Paired | sam.Read2 | sam.Reverse
	up1 = sam.Paired | sam.Read1 | sam.Unmapped | sam.MateUnmapped
	up2 = sam.Paired | sam.Read2 | sam.Unmapped | sam.MateUnmapped

	cigar1M = []sam.CigarOp{
		sam.NewCigarOp(sam.CigarMatch, 1),
	}
	cigar20M = []sam.CigarOp{
		sam.NewCigarOp(sam.CigarMatch, 20),
	}
	cigar100M = []sam.CigarOp{
		sam.NewCigarOp(sam.CigarMatch, 100),
	}

	// digestFrags is a toy digest: three contiguous fragments and one
	// isolated fragment on chr1, with an uncovered gap at [400,500), and
	// two contiguous fragments on chr2.
	digestFrags = []fragment.Fragment{
		{Chrom: "chr1", Start: 0, End: 100},
		{Chrom: "chr1", Start: 100, End: 250},
		{Chrom: "chr1", Start: 250, End: 400},
		{Chrom: "chr1", Start: 500, End: 900},
		{Chrom: "chr2", Start: 0, End: 300},
		{Chrom: "chr2", Start: 300, End: 600},
	}
)

// testDiag records warnings for inspection.
type testDiag struct {
	mutex    sync.Mutex
	warnings []string
}

func (d *testDiag) Warnf(format string, args ...interface{}) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

func newTestClassifier(t *testing.T, frags []fragment.Fragment) (*Classifier, *testDiag) {
	idx, err := fragment.NewIndex(frags)
	require.NoError(t, err)
	diag := &testDiag{}
	return New(idx, PosMiddle, diag), diag
}

func TestClassifyReligation(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	// Midpoints 40 and 120 land on the adjacent fragments [0,100) and
	// [100,250).
	r1 := NewRecord("relig:1", chr1, 40, r1F, 120, chr1, cigar1M)
	r2 := NewRecord("relig:1", chr1, 120, r2R, 40, chr1, cigar1M)

	p := c.Classify(r1, r2)
	assert.Equal(t, Religation, p.Category)
	assert.Equal(t, FR, p.Orientation)
	assert.Equal(t, 80, p.Size)
	assert.Equal(t, 80, p.CisDistance)
	require.NotNil(t, p.Up.Frag)
	require.NotNil(t, p.Down.Frag)
	assert.Equal(t, fragment.Fragment{Chrom: "chr1", Start: 0, End: 100}, *p.Up.Frag)
	assert.Equal(t, fragment.Fragment{Chrom: "chr1", Start: 100, End: 250}, *p.Down.Frag)
}

func TestClassifyReligationAnyOrientation(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	// Adjacency decides alone; every strand pattern religates.
	tests := []struct {
		upFlags, downFlags sam.Flags
		want               Orientation
	}{
		{r1F, r2F, FF},
		{r1R, r2R, RR},
		{r1F, r2R, FR},
		{r1R, r2F, RF},
	}
	for _, test := range tests {
		r1 := NewRecord("relig:2", chr1, 40, test.upFlags, 120, chr1, cigar1M)
		r2 := NewRecord("relig:2", chr1, 120, test.downFlags, 40, chr1, cigar1M)

		p := c.Classify(r1, r2)
		assert.Equal(t, Religation, p.Category, "orientation %s", test.want)
		assert.Equal(t, test.want, p.Orientation)
		assert.Equal(t, 80, p.Size)
	}
}

func TestClassifyDanglingEnd(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	// Both reads on [500,900), pointing inward: upstream Reverse at 520,
	// downstream Forward at 860.
	r1 := NewRecord("dangle:1", chr1, 520, r1R, 860, chr1, cigar1M)
	r2 := NewRecord("dangle:1", chr1, 860, r2F, 520, chr1, cigar1M)

	p := c.Classify(r1, r2)
	assert.Equal(t, DanglingEnd, p.Category)
	assert.Equal(t, RF, p.Orientation)
	assert.Equal(t, 340, p.Size)
	assert.Equal(t, 340, p.CisDistance)
}

func TestClassifySelfCircle(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	// Both reads on [500,900), pointing outward: upstream Forward at 520,
	// downstream Reverse at 860. The size is the two arcs to the outer
	// fragment boundaries.
	r1 := NewRecord("circle:1", chr1, 520, r1F, 860, chr1, cigar1M)
	r2 := NewRecord("circle:1", chr1, 860, r2R, 520, chr1, cigar1M)

	p := c.Classify(r1, r2)
	assert.Equal(t, SelfCircle, p.Category)
	assert.Equal(t, FR, p.Orientation)
	assert.Equal(t, 60, p.Size)
}

func TestClassifySameFragmentSameStrand(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	for _, flags := range [][2]sam.Flags{{r1F, r2F}, {r1R, r2R}} {
		r1 := NewRecord("strand:1", chr1, 520, flags[0], 860, chr1, cigar1M)
		r2 := NewRecord("strand:1", chr1, 860, flags[1], 520, chr1, cigar1M)

		p := c.Classify(r1, r2)
		assert.Equal(t, Filtered, p.Category)
		assert.Equal(t, FilterOrientation, p.Filter)
		assert.Equal(t, -1, p.Size)
	}
}

func TestClassifyValidInteraction(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	// Non-adjacent fragments [0,100) and [250,400). The forward read
	// points at its fragment end, the reverse read at its fragment start.
	r1 := NewRecord("valid:1", chr1, 40, r1F, 300, chr1, cigar1M)
	r2 := NewRecord("valid:1", chr1, 300, r2R, 40, chr1, cigar1M)

	p := c.Classify(r1, r2)
	assert.Equal(t, ValidInteraction, p.Category)
	assert.Equal(t, FR, p.Orientation)
	assert.Equal(t, (100-40)+(300-250), p.Size)
	assert.Equal(t, 260, p.CisDistance)
}

func TestClassifyValidInteractionOrientations(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	tests := []struct {
		upFlags, downFlags sam.Flags
		want               Orientation
		wantSize           int
	}{
		{r1F, r2F, FF, (100 - 40) + (400 - 300)},
		{r1R, r2R, RR, (40 - 0) + (300 - 250)},
		{r1F, r2R, FR, (100 - 40) + (300 - 250)},
		{r1R, r2F, RF, (40 - 0) + (400 - 300)},
	}
	for _, test := range tests {
		r1 := NewRecord("orient:1", chr1, 40, test.upFlags, 300, chr1, cigar1M)
		r2 := NewRecord("orient:1", chr1, 300, test.downFlags, 40, chr1, cigar1M)

		p := c.Classify(r1, r2)
		assert.Equal(t, ValidInteraction, p.Category, "orientation %s", test.want)
		assert.Equal(t, test.want, p.Orientation)
		assert.Equal(t, test.wantSize, p.Size, "orientation %s", test.want)
	}
}

func TestClassifyTrans(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	r1 := NewRecord("trans:1", chr2, 100, r1R, 40, chr1, cigar1M)
	r2 := NewRecord("trans:1", chr1, 40, r2F, 100, chr2, cigar1M)

	p := c.Classify(r1, r2)
	assert.Equal(t, ValidInteraction, p.Category)
	// Canonical order puts the chr1 read upstream regardless of input
	// order.
	assert.Equal(t, "chr1", p.Up.Chrom)
	assert.Equal(t, "chr2", p.Down.Chrom)
	assert.Equal(t, FR, p.Orientation)
	assert.Equal(t, (100-40)+(100-0), p.Size)
	assert.Equal(t, -1, p.CisDistance)
}

func TestClassifyNoCoverage(t *testing.T) {
	c, diag := newTestClassifier(t, digestFrags)
	// Midpoint 450 falls in the digest gap [400,500).
	r1 := NewRecord("gap:1", chr1, 450, r1F, 40, chr1, cigar1M)
	r2 := NewRecord("gap:1", chr1, 40, r2R, 450, chr1, cigar1M)

	p := c.Classify(r1, r2)
	assert.Equal(t, Filtered, p.Category)
	assert.Equal(t, FilterUnassigned, p.Filter)
	assert.Equal(t, -1, p.Size)
	// The covered read still reports its fragment.
	require.NotNil(t, p.Up.Frag)
	assert.Nil(t, p.Down.Frag)
	assert.Equal(t, 0, p.Down.Hits)
	require.Equal(t, 1, len(diag.warnings))
	assert.Contains(t, diag.warnings[0], "no restriction fragment found for gap:1")
}

func TestClassifyAmbiguous(t *testing.T) {
	c, diag := newTestClassifier(t, []fragment.Fragment{
		{Chrom: "chr1", Start: 0, End: 300},
		{Chrom: "chr1", Start: 200, End: 500},
	})
	// Midpoint 250 is covered by both definitions; midpoint 100 is
	// unique.
	r1 := NewRecord("ambig:1", chr1, 100, r1F, 250, chr1, cigar1M)
	r2 := NewRecord("ambig:1", chr1, 250, r2R, 100, chr1, cigar1M)

	p := c.Classify(r1, r2)
	assert.Equal(t, Filtered, p.Category)
	assert.Equal(t, FilterUnassigned, p.Filter)
	require.NotNil(t, p.Up.Frag)
	assert.Nil(t, p.Down.Frag)
	assert.Equal(t, 2, p.Down.Hits)
	require.Equal(t, 1, len(diag.warnings))
	assert.Contains(t, diag.warnings[0], "2 restriction fragments found for ambig:1")
}

func TestClassifyUnmapped(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	r1 := NewRecord("unmapped:1", chr1, 40, r1F, -1, nil, cigar1M)
	r2 := NewRecord("unmapped:1", nil, -1, up2, 40, chr1, nil)

	p := c.Classify(r1, r2)
	assert.Equal(t, Filtered, p.Category)
	assert.Equal(t, FilterUnmapped, p.Filter)
	assert.False(t, p.Ordered)
	assert.Equal(t, "chr1", p.Up.Chrom)
	assert.Equal(t, 40, p.Up.Pos)
	assert.Equal(t, "", p.Down.Chrom)
	assert.Equal(t, -1, p.Down.Pos)
}

func TestClassifyUnorderable(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	// chrU is not registered in any header, so its ID is -1 and the pair
	// has no canonical order.
	r1 := NewRecord("badref:1", chrU, 40, r1F, 100, chrU, cigar1M)
	r2 := NewRecord("badref:1", chrU, 100, r2R, 40, chrU, cigar1M)

	p := c.Classify(r1, r2)
	assert.Equal(t, Filtered, p.Category)
	assert.Equal(t, FilterUnordered, p.Filter)
	assert.False(t, p.Ordered)
}

func TestClassifyBoundaryMidpoints(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	// A reverse read whose midpoint sits exactly on its fragment start
	// contributes zero to the interaction size, not a negative length.
	r1 := NewRecord("edge:1", chr1, 40, r1F, 250, chr1, cigar1M)
	r2 := NewRecord("edge:1", chr1, 250, r2R, 40, chr1, cigar1M)

	p := c.Classify(r1, r2)
	require.Equal(t, ValidInteraction, p.Category)
	assert.Equal(t, (100-40)+0, p.Size)
}

func TestClassifySymmetric(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	pairs := [][2]*sam.Record{
		{
			NewRecord("sym:1", chr1, 40, r1F, 120, chr1, cigar1M),
			NewRecord("sym:1", chr1, 120, r2R, 40, chr1, cigar1M),
		},
		{
			NewRecord("sym:2", chr1, 520, r1R, 860, chr1, cigar1M),
			NewRecord("sym:2", chr1, 860, r2F, 520, chr1, cigar1M),
		},
		{
			NewRecord("sym:3", chr1, 40, r1F, 300, chr1, cigar1M),
			NewRecord("sym:3", chr1, 300, r2R, 40, chr1, cigar1M),
		},
		{
			NewRecord("sym:4", chr2, 100, r1R, 40, chr1, cigar1M),
			NewRecord("sym:4", chr1, 40, r2F, 100, chr2, cigar1M),
		},
		// Identical midpoints with opposite strands: the strand
		// tiebreak keeps the outcome input-order independent.
		{
			NewRecord("sym:5", chr1, 700, r1F, 700, chr1, cigar1M),
			NewRecord("sym:5", chr1, 700, r2R, 700, chr1, cigar1M),
		},
		// Identical midpoints, identical strands.
		{
			NewRecord("sym:6", chr1, 700, r1F, 700, chr1, cigar1M),
			NewRecord("sym:6", chr1, 700, r2F, 700, chr1, cigar1M),
		},
	}
	for _, recs := range pairs {
		fwd := c.Classify(recs[0], recs[1])
		rev := c.Classify(recs[1], recs[0])
		assert.Equal(t, fwd, rev, "pair %s must classify identically in either input order", recs[0].Name)
	}
}

func TestClassifyTiedMidpoints(t *testing.T) {
	c, _ := newTestClassifier(t, digestFrags)
	// Opposite strands at one midpoint on one fragment: forward sorts
	// upstream, giving FR, a self circle of the two full arcs.
	r1 := NewRecord("tie:1", chr1, 700, r1R, 700, chr1, cigar1M)
	r2 := NewRecord("tie:1", chr1, 700, r2F, 700, chr1, cigar1M)

	p := c.Classify(r1, r2)
	assert.Equal(t, SelfCircle, p.Category)
	assert.Equal(t, FR, p.Orientation)
	assert.Equal(t, (700-500)+(900-700), p.Size)
	assert.Equal(t, 0, p.CisDistance)
}

func TestClassifyReportedPosition(t *testing.T) {
	idx, err := fragment.NewIndex(digestFrags)
	require.NoError(t, err)
	// Assignment keeps using midpoints even when 5' coordinates are
	// reported: the reverse read's midpoint 560 stays on [500,900) even
	// though its 5' end is at 609.
	c := New(idx, PosStart, &testDiag{})
	r1 := NewRecord("pos:1", chr1, 510, r1R, 820, chr1, cigar100M)
	r2 := NewRecord("pos:1", chr1, 820, r2F, 510, chr1, cigar100M)

	p := c.Classify(r1, r2)
	assert.Equal(t, DanglingEnd, p.Category)
	assert.Equal(t, 609, p.Up.Pos)
	assert.Equal(t, 820, p.Down.Pos)
	// The size metric stays midpoint based.
	assert.Equal(t, 870-560, p.Size)
}
