// Package bed loads restriction-fragment definitions from BED files. Only
// the first three columns (chromosome, start, end) are read; anything a
// digest tool appends after them is ignored.
package bed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hic/fragment"
	"github.com/klauspost/compress/gzip"
)

// ReadOpts defines behavior of this package's fragment-loading functions.
type ReadOpts struct {
	// OneBasedInput interprets the BED interval boundaries as one-based
	// [start, end] instead of the usual zero-based [start, end).
	OneBasedInput bool
}

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved. Any (group of) characters <= ' '
// is treated as a delimiter. These simple loops beat the standard library
// string-split functions when only the leading columns are wanted.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// ReadFragments decodes restriction fragments from BED text. Unlike an
// interval union, every record is kept as a distinct fragment and no
// sorting or merging is performed; the fragment index takes care of
// ordering. Blank lines, comment lines starting with '#', and empty
// intervals are skipped.
func ReadFragments(reader io.Reader, opts ReadOpts) ([]fragment.Fragment, error) {
	var startSubtract int
	if opts.OneBasedInput {
		startSubtract++
	}

	scanner := bufio.NewScanner(reader)
	var tokens [3][]byte
	var frags []fragment.Fragment
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if nToken == 0 {
			continue
		}
		if tokens[0][0] == '#' {
			continue
		}
		if nToken != 3 {
			return nil, fmt.Errorf("bed.ReadFragments: line %d has fewer tokens than expected", lineIdx)
		}

		start, err := strconv.Atoi(gunsafe.BytesToString(tokens[1]))
		if err != nil {
			return nil, fmt.Errorf("bed.ReadFragments: line %d: %v", lineIdx, err)
		}
		start -= startSubtract
		if start < 0 {
			return nil, fmt.Errorf("bed.ReadFragments: negative start coordinate %s on line %d", tokens[1], lineIdx)
		}
		end, err := strconv.Atoi(gunsafe.BytesToString(tokens[2]))
		if err != nil {
			return nil, fmt.Errorf("bed.ReadFragments: line %d: %v", lineIdx, err)
		}
		if end < start {
			return nil, fmt.Errorf("bed.ReadFragments: invalid coordinate pair on line %d", lineIdx)
		}
		if end == start {
			continue
		}
		frags = append(frags, fragment.Fragment{
			Chrom: string(tokens[0]),
			Start: start,
			End:   end,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frags, nil
}

// ReadFragmentsFromPath is a wrapper for ReadFragments that takes a path
// instead of an io.Reader. Gzipped files are detected by extension.
func ReadFragmentsFromPath(path string, opts ReadOpts) (frags []fragment.Fragment, err error) {
	ctx := vcontext.Background()
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	return ReadFragments(reader, opts)
}
