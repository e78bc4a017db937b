package classify

import (
	"bufio"
	"io"
	"strconv"
	"sync"
)

// PairWriter emits classified pairs as tab-separated lines:
//
//	name chrom1 pos1 strand1 chrom2 pos2 strand2 category orientation size
//
// Positions are 0-based and '.' marks an absent value. Write may be called
// from multiple workers; lines are never interleaved.
type PairWriter struct {
	mutex   sync.Mutex
	buf     *bufio.Writer
	scratch []byte
}

// NewPairWriter returns a PairWriter on w. Call Flush when done.
func NewPairWriter(w io.Writer) *PairWriter {
	return &PairWriter{buf: bufio.NewWriterSize(w, 1<<20)}
}

// WriteHeader emits the column-name comment line.
func (w *PairWriter) WriteHeader() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	_, err := w.buf.WriteString("#name\tchrom1\tpos1\tstrand1\tchrom2\tpos2\tstrand2\tcategory\torientation\tsize\n")
	return err
}

// Write emits one classified pair.
func (w *PairWriter) Write(p Pair) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	b := w.scratch[:0]
	b = appendString(b, p.Name)
	b = appendSide(b, p.Up)
	b = appendSide(b, p.Down)
	b = append(b, '\t')
	b = append(b, p.Category.String()...)
	b = append(b, '\t')
	if p.Ordered {
		b = append(b, p.Orientation.String()...)
	} else {
		b = append(b, '.')
	}
	b = append(b, '\t')
	if p.Size >= 0 {
		b = strconv.AppendInt(b, int64(p.Size), 10)
	} else {
		b = append(b, '.')
	}
	b = append(b, '\n')
	w.scratch = b
	_, err := w.buf.Write(b)
	return err
}

// Flush writes out any buffered lines.
func (w *PairWriter) Flush() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.buf.Flush()
}

func appendString(b []byte, s string) []byte {
	if s == "" {
		return append(b, '.')
	}
	return append(b, s...)
}

// appendSide renders chrom, pos and strand for one end. A read without a
// reference gets '.' in all three columns.
func appendSide(b []byte, side PairSide) []byte {
	b = append(b, '\t')
	if side.Chrom == "" {
		return append(b, '.', '\t', '.', '\t', '.')
	}
	b = append(b, side.Chrom...)
	b = append(b, '\t')
	if side.Pos >= 0 {
		b = strconv.AppendInt(b, int64(side.Pos), 10)
	} else {
		b = append(b, '.')
	}
	b = append(b, '\t')
	if side.Reverse {
		b = append(b, '-')
	} else {
		b = append(b, '+')
	}
	return b
}
