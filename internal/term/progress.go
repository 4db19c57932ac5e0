package term

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// Bar draws a single-line progress bar that redraws in place with a
// carriage return. It only redraws when the whole percentage changes.
type Bar struct {
	w     io.Writer
	label string
	model progress.Model
	last  int
}

// NewBar returns a bar labelled with label, width columns wide.
func NewBar(w io.Writer, label string, width int) *Bar {
	if width <= 0 {
		width = 32
	}
	return &Bar{
		w:     w,
		label: label,
		model: progress.New(progress.WithDefaultGradient(), progress.WithWidth(width)),
		last:  -1,
	}
}

// Update redraws the bar for done out of total bytes. A non-positive total
// leaves the bar untouched.
func (b *Bar) Update(done, total int64) {
	if total <= 0 {
		return
	}
	percent := float64(done) / float64(total)
	percent = min(max(percent, 0), 1)
	whole := int(percent * 100)
	if whole == b.last {
		return
	}
	b.last = whole
	fmt.Fprintf(b.w, "\r%s %s", b.model.ViewAs(percent), b.label)
}

// Clear erases the bar line.
func (b *Bar) Clear() {
	if b.last < 0 {
		return
	}
	fmt.Fprint(b.w, "\r\x1b[2K")
	b.last = -1
}
