// Package columns aligns delimited text into columns.
package columns

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultSeparator joins the aligned cells.
const DefaultSeparator = "  "

var ErrInvalidColumn = errors.New("invalid column number")

// Options control splitting and alignment.
type Options struct {
	// Delimiter splits cells literally. Empty means runs of whitespace.
	Delimiter string
	Separator string
	// Right holds the zero-based indexes of right-aligned columns.
	Right map[int]bool
}

// ParseColumns parses a comma separated list of 1-based column numbers
// into zero-based indexes.
func ParseColumns(spec string) (map[int]bool, error) {
	out := map[int]bool{}
	if strings.TrimSpace(spec) == "" {
		return out, nil
	}
	for _, field := range strings.Split(spec, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, field)
		}
		out[n-1] = true
	}
	return out, nil
}

// Split breaks a line into cells.
func Split(line, delim string) []string {
	if delim == "" {
		return strings.Fields(line)
	}
	cells := strings.Split(line, delim)
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// Table is a set of rows measured for alignment.
type Table struct {
	rows   [][]string
	widths []int
}

// Read splits every line of r into a new table. Blank lines become empty
// rows.
func Read(r io.Reader, delim string) (*Table, error) {
	t := &Table{}
	return t, t.ReadFrom(r, delim)
}

// ReadFrom appends the lines of r to t. A last line without a newline still
// ends its row, so tables can be built from several inputs.
func (t *Table) ReadFrom(r io.Reader, delim string) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			t.Add(nil)
			continue
		}
		t.Add(Split(line, delim))
	}
	return sc.Err()
}

// Add appends a row.
func (t *Table) Add(cells []string) {
	for i, c := range cells {
		w := runewidth.StringWidth(c)
		if i >= len(t.widths) {
			t.widths = append(t.widths, w)
		} else {
			t.widths[i] = max(t.widths[i], w)
		}
	}
	t.rows = append(t.rows, cells)
}

// Widths returns the display width of each column.
func (t *Table) Widths() []int { return t.widths }

// Write renders the table. The last cell of a row is not padded on the
// right.
func (t *Table) Write(w io.Writer, opts Options) error {
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	bw := bufio.NewWriter(w)
	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for i, cell := range row {
			if i > 0 {
				line.WriteString(sep)
			}
			switch {
			case opts.Right[i]:
				line.WriteString(runewidth.FillLeft(cell, t.widths[i]))
			case i == len(row)-1:
				line.WriteString(cell)
			default:
				line.WriteString(runewidth.FillRight(cell, t.widths[i]))
			}
		}
		line.WriteByte('\n')
		if _, err := bw.WriteString(line.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Format reads r and writes it aligned to w.
func Format(w io.Writer, r io.Reader, opts Options) error {
	t, err := Read(r, opts.Delimiter)
	if err != nil {
		return err
	}
	return t.Write(w, opts)
}
