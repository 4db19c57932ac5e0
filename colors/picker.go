package colors

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const gridSize = 16

var (
	helpStyle   = lipgloss.NewStyle().Faint(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
)

// Picker is the interactive style chooser. The cursor moves over the
// 256-color palette and single keys apply the color under it.
type Picker struct {
	Cursor int
	Style  Style

	chosen bool
	done   bool
}

// NewPicker starts with the cursor on color 0 and a plain style.
func NewPicker() Picker { return Picker{} }

func (m Picker) Init() tea.Cmd { return nil }

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.Cursor >= gridSize {
			m.Cursor -= gridSize
		}
	case "down", "j":
		if m.Cursor < gridSize*(gridSize-1) {
			m.Cursor += gridSize
		}
	case "left", "h":
		if m.Cursor%gridSize > 0 {
			m.Cursor--
		}
	case "right", "l":
		if m.Cursor%gridSize < gridSize-1 {
			m.Cursor++
		}
	case "f":
		m.Style.FG = Palette(uint8(m.Cursor))
	case "b":
		m.Style.BG = Palette(uint8(m.Cursor))
	case "F":
		m.Style.FG = Color{}
	case "B":
		m.Style.BG = Color{}
	case "o":
		m.Style.Bold = !m.Style.Bold
	case "u":
		m.Style.Underline = !m.Style.Underline
	case "r":
		m.Style = Style{}
	case "enter":
		m.chosen, m.done = true, true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Picker) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	for row := range gridSize {
		for col := range gridSize {
			i := row*gridSize + col
			cell := Style{BG: Palette(uint8(i))}.Render("    ")
			if i == m.Cursor {
				cell = cursorStyle.Render(fmt.Sprintf(" %3d", i))
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "cursor %3d  fg %-8s bg %-8s bold %-5v underline %v\n",
		m.Cursor, m.Style.FG, m.Style.BG, m.Style.Bold, m.Style.Underline)
	fmt.Fprintf(&b, "%s  %s\n\n", m.Style.Render(" The quick brown fox "), m.Style.Escaped())
	b.WriteString(helpStyle.Render("arrows/hjkl move • f/b set fg/bg • F/B clear • o bold • u underline • r reset • enter print • q quit"))
	b.WriteByte('\n')
	return b.String()
}

// Result returns the chosen style and whether the user confirmed it.
func (m Picker) Result() (Style, bool) {
	return m.Style, m.chosen
}
