package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Screen layout, top to bottom:
//
//	y=0   title bar (collapse button in the first columns)
//	y=1   add row
//	y=2.. items, two lines each: the item line and a gap line below it
//	last  help / status line
const (
	titleY       = 0
	addRowY      = 1
	firstItemY   = 2
	linesPerItem = 2

	collapseBtnW = 3
	// Columns before the checkbox: cursor marker + space.
	checkboxX = 2
	checkboxW = 3
)

type hitKind int

const (
	hitNone hitKind = iota
	hitCollapse
	hitTitle
	hitAddRow
	hitItem
)

type hit struct {
	kind     hitKind
	index    int
	upper    bool // item line (insert before) vs gap line (insert after)
	checkbox bool
}

// visibleRows is how many items fit between the add row and a footer of
// footerH lines. An unknown height (before the first resize) fits everything.
func visibleRows(height, footerH int) int {
	if height <= 0 {
		return 1 << 30
	}
	n := (height - firstItemY - footerH) / linesPerItem
	if n < 1 {
		n = 1
	}
	return n
}

// hitTest maps a screen cell to what is drawn there. n is the item count,
// offset the index of the first visible item and rows the number of item rows
// on screen.
func hitTest(x, y, n, offset, rows int, collapsed bool) hit {
	switch {
	case y == titleY && x >= 0 && x < collapseBtnW:
		return hit{kind: hitCollapse}
	case y == titleY:
		return hit{kind: hitTitle}
	case collapsed:
		return hit{kind: hitNone}
	case y == addRowY:
		return hit{kind: hitAddRow}
	case y < firstItemY:
		return hit{kind: hitNone}
	}
	row := (y - firstItemY) / linesPerItem
	if row >= rows {
		return hit{kind: hitNone}
	}
	idx := offset + row
	if idx < 0 || idx >= n {
		return hit{kind: hitNone}
	}
	upper := (y-firstItemY)%linesPerItem == 0
	return hit{
		kind:     hitItem,
		index:    idx,
		upper:    upper,
		checkbox: upper && x >= checkboxX && x < checkboxX+checkboxW,
	}
}

// fitWidth forces s to exactly width columns (ANSI-aware), truncating with an
// ellipsis or padding with spaces.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = strings.ReplaceAll(s, "\n", " ")
	w := xansi.StringWidth(s)
	if w > width {
		s = xansi.Truncate(s, width, "…")
		if w = xansi.StringWidth(s); w > width {
			s = xansi.Cut(s, 0, width)
			w = xansi.StringWidth(s)
		}
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
