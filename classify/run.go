package classify

import (
	"context"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hic/encoding/bed"
	"github.com/grailbio/hic/fragment"
)

// Run classifies every primary read pair served by provider against the
// restriction digest in opts.FragmentFile, writes the pair records to
// opts.OutputPath and returns the run statistics. The caller owns the
// provider and closes it after Run returns.
//
// Pairs arrive through one PairIterator per worker, so output order is
// unspecified; downstream sorting is a separate concern.
func Run(ctx context.Context, provider bamprovider.Provider, opts Opts) (stats *Stats, err error) {
	if err = validate(&opts); err != nil {
		return nil, err
	}

	frags, err := bed.ReadFragmentsFromPath(opts.FragmentFile, bed.ReadOpts{OneBasedInput: opts.OneBasedFragments})
	if err != nil {
		return nil, errors.E(err, "couldn't read restriction fragments:", opts.FragmentFile)
	}
	idx, err := fragment.NewIndex(frags)
	if err != nil {
		return nil, err
	}
	log.Printf("indexed %d restriction fragment(s) on %d chromosome(s)", idx.Len(), len(idx.Chroms()))

	out := io.Writer(os.Stdout)
	if opts.OutputPath != "" {
		var outFile file.File
		if outFile, err = file.Create(ctx, opts.OutputPath); err != nil {
			return nil, errors.E(err, "couldn't create output file:", opts.OutputPath)
		}
		defer func() {
			if cerr := outFile.Close(ctx); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = outFile.Writer(ctx)
	}
	pw := NewPairWriter(out)
	if err = pw.WriteHeader(); err != nil {
		return nil, err
	}

	classifier := New(idx, opts.ReadPos, nil)
	iters, err := bamprovider.NewPairIterators(provider, true)
	if err != nil {
		return nil, err
	}
	global := &Stats{}
	err = traverse.Each(opts.Parallelism, func(jobIdx int) error {
		local := &Stats{}
		for i := jobIdx; i < len(iters); i += opts.Parallelism {
			it := iters[i]
			for it.Scan() {
				rec := it.Record()
				if rec.Err != nil {
					if _, ok := rec.Err.(bamprovider.MissingMateError); ok {
						// Mates lost to upstream filtering are
						// not pairs; report and keep going.
						log.Error.Printf("%s: %v", opts.BamFile, rec.Err)
						continue
					}
					return rec.Err
				}
				p := classifier.Classify(rec.R1, rec.R2)
				local.Add(p)
				if p.Category != Filtered || opts.IncludeFiltered {
					if werr := pw.Write(p); werr != nil {
						return werr
					}
				}
			}
		}
		global.Merge(local)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := bamprovider.FinishPairIterators(iters); err != nil {
		log.Error.Printf("%s: %v", opts.BamFile, err)
	}
	if err = pw.Flush(); err != nil {
		return nil, err
	}

	if opts.ReportFile != "" {
		if err = writeReport(&opts, global); err != nil {
			return nil, err
		}
	}
	return global, nil
}
