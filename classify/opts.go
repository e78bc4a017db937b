package classify

import (
	"fmt"
	"runtime"
)

// Opts for Hi-C pair classification.
type Opts struct {
	// BamFile is the coordinate-indexed BAM or PAM input.
	BamFile   string
	IndexFile string

	// FragmentFile is the restriction-fragment BED, optionally gzipped.
	FragmentFile string
	// OneBasedFragments interprets fragment coordinates as one-based
	// [start, end].
	OneBasedFragments bool

	// OutputPath receives the classified pairs; empty writes to stdout.
	OutputPath string
	// ReportFile, when set, receives the per-category summary.
	ReportFile string

	// ReadPos selects the reported per-read coordinate. Classification
	// always uses alignment midpoints regardless of this setting.
	ReadPos PosPolicy
	// IncludeFiltered also emits Filtered pairs to the output.
	IncludeFiltered bool
	// Parallelism caps the number of concurrent classification workers.
	Parallelism int
}

func validate(opts *Opts) error {
	if opts.BamFile == "" {
		return fmt.Errorf("you must specify a bam file with --bam")
	}
	if opts.FragmentFile == "" {
		return fmt.Errorf("you must specify a restriction-fragment bed file with --fragments")
	}
	if opts.IndexFile == "" {
		opts.IndexFile = opts.BamFile + ".bai"
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.NumCPU()
	}
	return nil
}
