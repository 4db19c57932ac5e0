package colors

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// WriteChart prints the reference chart: every named foreground on every
// named background, the 256-color palette and the text attributes.
func WriteChart(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, headingStyle.Render("Foreground on background"))
	fmt.Fprintf(bw, "%-16s", "")
	for fg := range 16 {
		fmt.Fprintf(bw, " %3d", fg)
	}
	fmt.Fprintln(bw)
	backgrounds := append([]Color{{}}, basicColors()...)
	for _, bg := range backgrounds {
		fmt.Fprintf(bw, "%-16s", bg)
		for _, fg := range basicColors() {
			fmt.Fprint(bw, " ", Style{FG: fg, BG: bg}.Render(" Aa"))
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, headingStyle.Render("256-color palette"))
	for row := range 16 {
		for col := range 16 {
			i := uint8(row*16 + col)
			fg := Basic(15)
			if contrastDark(i) {
				fg = Basic(0)
			}
			fmt.Fprint(bw, Style{FG: fg, BG: Palette(i)}.Render(fmt.Sprintf(" %3d ", i)))
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, headingStyle.Render("Attributes"))
	for _, a := range []struct {
		name  string
		style Style
	}{
		{"plain", Style{}},
		{"bold", Style{Bold: true}},
		{"underline", Style{Underline: true}},
		{"bold underline", Style{Bold: true, Underline: true}},
	} {
		fmt.Fprintf(bw, "%-16s %s  %s\n", a.name, a.style.Render("The quick brown fox"), a.style.Escaped())
	}
	return bw.Flush()
}

func basicColors() []Color {
	out := make([]Color, 16)
	for i := range out {
		out[i] = Basic(uint8(i))
	}
	return out
}

// contrastDark reports whether palette color i is light enough to need
// dark text on top of it.
func contrastDark(i uint8) bool {
	switch {
	case i < 16:
		return i == 3 || i == 7 || i >= 10 && i != 12
	case i >= 232:
		return i >= 244
	}
	i -= 16
	r, g, b := i/36, i/6%6, i%6
	return int(r)*30+int(g)*59+int(b)*11 > 250
}
