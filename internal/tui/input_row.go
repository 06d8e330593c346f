package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const minInputW = 10

// inputRow lays the textinput view out as one row of exactly width columns.
// Whatever the view leaves free is painted with fill.
func inputRow(width int, view string, fill lipgloss.Style) string {
	width = max(width, minInputW)
	view = strings.NewReplacer("\r", "", "\n", " ").Replace(view)

	vw := xansi.StringWidth(view)
	if vw > width {
		// Reset after the cut so an open style does not leak into the next row.
		return xansi.Cut(view, 0, width) + "\x1b[m"
	}
	return view + fill.Render(strings.Repeat(" ", width-vw))
}
