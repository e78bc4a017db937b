package fragment

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"
)

// entry adapts a Fragment to the biogo interval-tree interfaces. The id is
// the fragment's rank within its chromosome after deduplication; it keeps
// equal-start fragments distinct inside the tree.
type entry struct {
	frag Fragment
	id   uintptr
}

func (e entry) Overlap(b interval.IntRange) bool {
	return e.frag.Start < b.End && e.frag.End > b.Start
}

func (e entry) Range() interval.IntRange {
	return interval.IntRange{Start: e.frag.Start, End: e.frag.End}
}

func (e entry) ID() uintptr { return e.id }

// pointQuery selects intervals overlapping the single base [pos, pos+1).
type pointQuery int

func (q pointQuery) Overlap(b interval.IntRange) bool {
	return int(q) < b.End && int(q) >= b.Start
}

// Index answers point-overlap queries over a set of restriction fragments,
// one interval tree per chromosome. Build it once with NewIndex; afterwards
// it is immutable and safe for concurrent use.
type Index struct {
	trees map[string]*interval.IntTree
	n     int
}

// NewIndex builds an Index from fragments, in any order. Exact duplicates
// collapse into a single entry. Distinct overlapping fragments are all
// retained; point queries then report every one of them, which is how
// malformed digests surface downstream. A fragment with start < 0 or
// end <= start is rejected.
func NewIndex(frags []Fragment) (*Index, error) {
	byChrom := make(map[string][]Fragment)
	for _, f := range frags {
		if f.Start < 0 || f.End <= f.Start {
			return nil, fmt.Errorf("fragment: invalid interval %v", f)
		}
		byChrom[f.Chrom] = append(byChrom[f.Chrom], f)
	}
	idx := &Index{trees: make(map[string]*interval.IntTree, len(byChrom))}
	for chrom, list := range byChrom {
		sort.Slice(list, func(i, j int) bool {
			if list[i].Start != list[j].Start {
				return list[i].Start < list[j].Start
			}
			return list[i].End < list[j].End
		})
		tree := &interval.IntTree{}
		var id uintptr
		for i, f := range list {
			if i > 0 && f == list[i-1] {
				continue
			}
			if err := tree.Insert(entry{frag: f, id: id}, true); err != nil {
				return nil, fmt.Errorf("fragment: inserting %v: %v", f, err)
			}
			id++
		}
		tree.AdjustRanges()
		idx.trees[chrom] = tree
		idx.n += int(id)
	}
	return idx, nil
}

// Len returns the number of indexed fragments.
func (idx *Index) Len() int { return idx.n }

// Chroms returns the indexed chromosome names in sorted order.
func (idx *Index) Chroms() []string {
	chroms := make([]string, 0, len(idx.trees))
	for chrom := range idx.trees {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}

// Overlapping returns the fragments overlapping the 0-based single-base
// interval [pos, pos+1) on chrom, in ascending coordinate order. The result
// is empty when no fragment covers the locus; an unknown chromosome is just
// an uncovered locus, not an error.
func (idx *Index) Overlapping(chrom string, pos int) []Fragment {
	tree, ok := idx.trees[chrom]
	if !ok {
		return nil
	}
	var hits []Fragment
	for _, e := range tree.Get(pointQuery(pos)) {
		hits = append(hits, e.(entry).frag)
	}
	return hits
}
