package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/colorhash"
)

var ErrInvalidColor = errors.New("invalid color")

// Kind tells how a Color is encoded.
type Kind int

const (
	KindNone    Kind = iota // terminal default
	KindBasic               // one of the 16 named colors
	KindPalette             // 256-color palette index
	KindRGB                 // 24-bit #rrggbb
)

// Color is a terminal foreground or background color.
type Color struct {
	Kind    Kind
	Index   uint8
	R, G, B uint8
}

// Names lists the 16 named colors in palette order.
var Names = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

func Basic(i uint8) Color   { return Color{Kind: KindBasic, Index: i % 16} }
func Palette(i uint8) Color { return Color{Kind: KindPalette, Index: i} }
func RGB(r, g, b uint8) Color {
	return Color{Kind: KindRGB, R: r, G: g, B: b}
}

// ParseColor accepts a color name ("red", "bright-blue", "brightblue"), a
// palette index from 0 to 255, or #rrggbb. An empty string or "default"
// is the terminal default.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "default", "none":
		return Color{}, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return Color{}, fmt.Errorf("%w: palette index %d out of range", ErrInvalidColor, n)
		}
		return Palette(uint8(n)), nil
	}
	name := strings.Replace(s, "bright", "bright-", 1)
	name = strings.ReplaceAll(name, "--", "-")
	for i, n := range Names {
		if n == name || (n == "bright-black" && (name == "gray" || name == "grey")) {
			return Basic(uint8(i)), nil
		}
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func (c Color) String() string {
	switch c.Kind {
	case KindBasic:
		return Names[c.Index]
	case KindPalette:
		return strconv.Itoa(int(c.Index))
	case KindRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return "default"
	}
}

// params returns the SGR parameters selecting c, base being 30 for the
// foreground and 40 for the background.
func (c Color) params(base int) string {
	switch c.Kind {
	case KindBasic:
		if c.Index < 8 {
			return strconv.Itoa(base + int(c.Index))
		}
		return strconv.Itoa(base + 60 + int(c.Index) - 8)
	case KindPalette:
		return fmt.Sprintf("%d;5;%d", base+8, c.Index)
	case KindRGB:
		return fmt.Sprintf("%d;2;%d;%d;%d", base+8, c.R, c.G, c.B)
	default:
		return ""
	}
}

// Hash derives a stable palette color from text.
func Hash(text string) Color {
	n := colorhash.HashString(text) % 256
	if n < 0 {
		n += 256
	}
	return Palette(uint8(n))
}

// Style is a combination of colors and attributes.
type Style struct {
	FG        Color
	BG        Color
	Bold      bool
	Underline bool
}

// Params returns the SGR parameters of the style; a plain style resets.
func (s Style) Params() []string {
	var out []string
	if s.Bold {
		out = append(out, "1")
	}
	if s.Underline {
		out = append(out, "4")
	}
	if p := s.FG.params(30); p != "" {
		out = append(out, p)
	}
	if p := s.BG.params(40); p != "" {
		out = append(out, p)
	}
	if len(out) == 0 {
		out = []string{"0"}
	}
	return out
}

// Sequence is the raw escape sequence selecting the style.
func (s Style) Sequence() string {
	return "\x1b[" + strings.Join(s.Params(), ";") + "m"
}

// Escaped is the sequence in the printable \e[...m form used in shell
// scripts and prompts.
func (s Style) Escaped() string {
	return `\e[` + strings.Join(s.Params(), ";") + "m"
}

// Render wraps text in the style and a trailing reset.
func (s Style) Render(text string) string {
	return s.Sequence() + text + Reset
}

// Reset clears all attributes.
const Reset = "\x1b[0m"
