package classify

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/grailbio/base/errors"
)

// Stats counts classification outcomes for one worker or one whole run.
// Add is not synchronized; give each worker its own Stats and combine them
// with Merge.
type Stats struct {
	// Pairs is the total number of pairs examined.
	Pairs int64
	// ByCategory counts pairs per classification outcome.
	ByCategory [numCategories]int64
	// ByFilter breaks the Filtered count down by reason.
	ByFilter [numFilterReasons]int64
	// ByOrientation counts ValidInteraction pairs per strand signature.
	ByOrientation [numOrientations]int64
	// Cis and Trans split ValidInteraction pairs by chromosome.
	Cis, Trans int64
	// CisDistanceSum accumulates the midpoint separation over cis
	// ValidInteraction pairs, for mean-distance QC downstream.
	CisDistanceSum int64
	// NoCoverageReads counts reads whose midpoint no fragment covers.
	NoCoverageReads int64
	// AmbiguousReads counts reads whose midpoint several fragments cover.
	AmbiguousReads int64

	mutex sync.Mutex
}

// Add tallies one classified pair.
func (s *Stats) Add(p Pair) {
	s.Pairs++
	s.ByCategory[p.Category]++
	if p.Category == Filtered {
		s.ByFilter[p.Filter]++
	}
	if p.Category == ValidInteraction {
		s.ByOrientation[p.Orientation]++
		if p.CisDistance >= 0 {
			s.Cis++
			s.CisDistanceSum += int64(p.CisDistance)
		} else {
			s.Trans++
		}
	}
	s.addSide(p.Up)
	s.addSide(p.Down)
}

func (s *Stats) addSide(side PairSide) {
	switch {
	case side.Hits == 0:
		s.NoCoverageReads++
	case side.Hits > 1:
		s.AmbiguousReads++
	}
}

// Merge adds the counts in other to s. Safe to call from multiple workers.
func (s *Stats) Merge(other *Stats) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Pairs += other.Pairs
	for i := range s.ByCategory {
		s.ByCategory[i] += other.ByCategory[i]
	}
	for i := range s.ByFilter {
		s.ByFilter[i] += other.ByFilter[i]
	}
	for i := range s.ByOrientation {
		s.ByOrientation[i] += other.ByOrientation[i]
	}
	s.Cis += other.Cis
	s.Trans += other.Trans
	s.CisDistanceSum += other.CisDistanceSum
	s.NoCoverageReads += other.NoCoverageReads
	s.AmbiguousReads += other.AmbiguousReads
}

// reportOrder fixes the category order of Summary and the report file.
var reportOrder = []Category{ValidInteraction, DanglingEnd, SelfCircle, Religation, Filtered}

// Summary returns a one-line account of the run, suitable for logging.
func (s *Stats) Summary() string {
	parts := make([]string, 0, numCategories)
	for _, cat := range reportOrder {
		parts = append(parts, fmt.Sprintf("%d %s", s.ByCategory[cat], cat))
	}
	return fmt.Sprintf("%d pair(s): %s", s.Pairs, strings.Join(parts, ", "))
}

func writeReport(opts *Opts, stats *Stats) (err error) {
	var f *os.File
	f, err = os.Create(opts.ReportFile)
	if err != nil {
		return errors.E(err, "couldn't create report file:", opts.ReportFile)
	}
	defer func() {
		if err2 := f.Close(); err == nil && err2 != nil {
			err = err2
		}
	}()

	var b strings.Builder
	b.WriteString("# bio-hic-classify\n")
	fmt.Fprintf(&b, "pairs\t%d\n", stats.Pairs)
	for _, cat := range reportOrder {
		fmt.Fprintf(&b, "%s\t%d\n", cat, stats.ByCategory[cat])
	}
	for o := Orientation(0); o < numOrientations; o++ {
		fmt.Fprintf(&b, "valid_interaction_%s\t%d\n", strings.ToLower(o.String()), stats.ByOrientation[o])
	}
	fmt.Fprintf(&b, "valid_interaction_cis\t%d\n", stats.Cis)
	fmt.Fprintf(&b, "valid_interaction_trans\t%d\n", stats.Trans)
	fmt.Fprintf(&b, "valid_interaction_cis_distance_sum\t%d\n", stats.CisDistanceSum)
	for r := FilterReason(1); r < numFilterReasons; r++ {
		fmt.Fprintf(&b, "filtered_%s\t%d\n", r, stats.ByFilter[r])
	}
	fmt.Fprintf(&b, "reads_without_fragment\t%d\n", stats.NoCoverageReads)
	fmt.Fprintf(&b, "reads_ambiguous_fragment\t%d\n", stats.AmbiguousReads)

	if _, err = f.WriteString(b.String()); err != nil {
		return errors.E(err, "error writing to report file:", opts.ReportFile)
	}
	return nil
}
