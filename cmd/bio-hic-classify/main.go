package main

/*
  bio-hic-classify assigns Hi-C read pairs to restriction fragments and
  classifies each pair as a valid interaction or a ligation artifact
  (dangling end, self circle, religation). For more information, see
  github.com/grailbio/hic/classify/doc.go
*/

import (
	"flag"
	"runtime"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hic/classify"
)

var (
	bamFile           = flag.String("bam", "", "Input BAM filename")
	indexFile         = flag.String("index", "", "Input BAM index filename. By default, set to input BAM filename + .bai")
	fragmentFile      = flag.String("fragments", "", "Restriction-fragment BED filename, optionally gzipped")
	oneBasedFragments = flag.Bool("one-based-fragments", false, "Interpret fragment BED coordinates as one-based [start, end]")
	outputPath        = flag.String("output", "", "Output pairs filename. By default, write to stdout")
	reportFile        = flag.String("report", "", "Output per-category summary filename")
	readPos           = flag.String("read-pos", "middle", "Reported read coordinate: 'middle', 'start' (5') or 'left'")
	includeFiltered   = flag.Bool("include-filtered", false, "Emit filtered pairs to the output as well")
	parallelism       = flag.Int("parallelism", runtime.NumCPU(), "Number of parallel classification workers")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() > 0 {
		a := flag.Args()
		log.Fatalf("unparsed flags, please check flag syntax: '%s'", strings.Join(a[len(a)-flag.NArg():], " "))
	}
	policy, err := classify.ParsePosPolicy(*readPos)
	if err != nil {
		log.Fatalf("%v", err)
	}

	opts := classify.Opts{
		BamFile:           *bamFile,
		IndexFile:         *indexFile,
		FragmentFile:      *fragmentFile,
		OneBasedFragments: *oneBasedFragments,
		OutputPath:        *outputPath,
		ReportFile:        *reportFile,
		ReadPos:           policy,
		IncludeFiltered:   *includeFiltered,
		Parallelism:       *parallelism,
	}

	provider := bamprovider.NewProvider(opts.BamFile, bamprovider.ProviderOpts{Index: opts.IndexFile})

	ctx := vcontext.Background()
	stats, err := classify.Run(ctx, provider, opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := provider.Close(); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("classified %s", stats.Summary())
}
