// Package hexdump writes the canonical offset, hex and character view of a
// byte stream.
package hexdump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// GroupSize is the number of bytes between the extra column gaps. Line
// lengths are always a multiple of it.
const GroupSize = 8

var ErrNegativeRange = errors.New("skip and length must not be negative")

// LineWidth returns the number of columns a full line of n bytes takes.
func LineWidth(n int) int {
	// offset(8) + 2 + 3n + (n/8 - 1) group gaps + |n chars|
	return 11 + 4*n + n/GroupSize
}

// BytesPerLine returns the largest multiple of GroupSize whose line fits in
// width columns, and never less than GroupSize.
func BytesPerLine(width int) int {
	n := GroupSize
	for LineWidth(n+GroupSize) <= width {
		n += GroupSize
	}
	return n
}

// Options select the bytes to dump and the line length.
type Options struct {
	PerLine int   // bytes per line, rounded down to a multiple of GroupSize
	Skip    int64 // bytes to skip before dumping; offsets stay absolute
	Length  int64 // bytes to dump, or -1 for the rest of the input
}

// Dump reads r according to opts and writes the dump to w.
func Dump(w io.Writer, r io.Reader, opts Options) error {
	if opts.Skip < 0 || opts.Length < -1 {
		return ErrNegativeRange
	}
	if opts.Skip > 0 {
		if err := skip(r, opts.Skip); err != nil {
			return err
		}
	}
	if opts.Length >= 0 {
		r = io.LimitReader(r, opts.Length)
	}

	bw := bufio.NewWriter(w)
	d := NewDumper(bw, opts.PerLine, opts.Skip)
	if _, err := io.Copy(d, r); err != nil {
		return err
	}
	if err := d.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

func skip(r io.Reader, n int64) error {
	if s, ok := r.(io.Seeker); ok {
		if _, err := s.Seek(n, io.SeekCurrent); err == nil {
			return nil
		}
	}
	_, err := io.CopyN(io.Discard, r, n)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Dumper is an io.WriteCloser that formats everything written to it. Close
// flushes a trailing partial line and writes the final offset.
type Dumper struct {
	w       io.Writer
	perLine int
	offset  int64
	pending []byte
	line    []byte
}

// NewDumper returns a Dumper writing lines of perLine bytes to w, numbering
// them from offset.
func NewDumper(w io.Writer, perLine int, offset int64) *Dumper {
	perLine -= perLine % GroupSize
	if perLine < GroupSize {
		perLine = GroupSize
	}
	return &Dumper{
		w:       w,
		perLine: perLine,
		offset:  offset,
		pending: make([]byte, 0, perLine),
	}
}

func (d *Dumper) Write(p []byte) (int, error) {
	written := len(p)
	for len(p) > 0 {
		n := min(d.perLine-len(d.pending), len(p))
		d.pending = append(d.pending, p[:n]...)
		p = p[n:]
		if len(d.pending) == d.perLine {
			if err := d.flush(); err != nil {
				return written - len(p), err
			}
		}
	}
	return written, nil
}

// Close writes any partial line and the closing offset.
func (d *Dumper) Close() error {
	if len(d.pending) > 0 {
		if err := d.flush(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(d.w, "%08x\n", d.offset)
	return err
}

const hexDigits = "0123456789abcdef"

func (d *Dumper) flush() error {
	line := d.line[:0]
	line = fmt.Appendf(line, "%08x  ", d.offset)
	for i := 0; i < d.perLine; i++ {
		if i > 0 && i%GroupSize == 0 {
			line = append(line, ' ')
		}
		if i < len(d.pending) {
			b := d.pending[i]
			line = append(line, hexDigits[b>>4], hexDigits[b&0x0f], ' ')
		} else {
			line = append(line, "   "...)
		}
	}
	line = append(line, '|')
	for _, b := range d.pending {
		if b < 0x20 || b > 0x7e {
			b = '.'
		}
		line = append(line, b)
	}
	line = append(line, '|', '\n')
	d.line = line

	d.offset += int64(len(d.pending))
	d.pending = d.pending[:0]
	_, err := d.w.Write(line)
	return err
}
