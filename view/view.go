// Package view renders a track as a tracker column for the terminal.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vsariola/psymachine"
)

type Styles struct {
	Row    lipgloss.Style
	Beat   lipgloss.Style // row numbers on the first row of a beat
	Note   lipgloss.Style
	Off    lipgloss.Style
	Empty  lipgloss.Style
	Instr  lipgloss.Style
	Border lipgloss.Style // around the whole column
}

func DefaultStyles() Styles {
	return Styles{
		Row:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Beat:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Note:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Off:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Instr:  lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		Border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
	}
}

// PlainStyles renders without any decoration.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Row: s, Beat: s, Note: s, Off: s, Empty: s, Instr: s, Border: s}
}

// Render returns one line per row: the row number, the note, OFF or "---"
// and, on note rows, the instrument.
func Render(track psymachine.Track, instrument string, ticksPerBeat int, st Styles) string {
	ticksPerBeat = max(ticksPerBeat, 1)
	width := len(fmt.Sprint(max(len(track)-1, 0)))
	lines := make([]string, len(track))
	for i, c := range track {
		num := fmt.Sprintf("%0*d", width, i)
		if i%ticksPerBeat == 0 {
			num = st.Beat.Render(num)
		} else {
			num = st.Row.Render(num)
		}
		var cell string
		switch c.Kind {
		case psymachine.KindNote:
			cell = st.Note.Render(fmt.Sprintf("%-3s", c.Note)) + " " + st.Instr.Render(instrument)
		case psymachine.KindOff:
			cell = st.Off.Render(psymachine.OffMarker)
		default:
			cell = st.Empty.Render("---")
		}
		lines[i] = num + " " + cell
	}
	return st.Border.Render(strings.Join(lines, "\n"))
}
