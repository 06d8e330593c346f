package tui

import (
	"fmt"
	"strings"

	"stickynote/internal/model"
	"stickynote/internal/session"

	xansi "github.com/charmbracelet/x/ansi"
)

const fallbackWidth = 40

func (m appModel) View() string {
	w := m.width
	if w <= 0 {
		w = fallbackWidth
	}
	items := m.items()

	lines := []string{m.viewTitle(w, items)}
	if m.collapsed {
		return lines[0]
	}
	lines = append(lines, m.viewAddRow(w))

	drag := m.sess.Drag()
	sel := m.sess.Selection()
	end := min(len(items), m.offset+m.rows())
	for i := m.offset; i < end; i++ {
		upper, gap := m.viewItem(w, i, items[i], drag, sel)
		lines = append(lines, upper, gap)
	}

	footer := m.viewFooter(w)
	if m.height > 0 {
		blank := m.styles.row.Render(strings.Repeat(" ", w))
		for len(lines) < m.height-lineCount(footer) {
			lines = append(lines, blank)
		}
	}
	lines = append(lines, footer)
	return strings.Join(lines, "\n")
}

func (m appModel) viewTitle(w int, items []model.Item) string {
	btn := " ▾ "
	if m.collapsed {
		btn = " ▸ "
	}
	left := 0
	for _, it := range items {
		if !it.Completed {
			left++
		}
	}
	right := fmt.Sprintf(" %d left ", left)
	titleW := max(w-collapseBtnW-xansi.StringWidth(right), 1)
	return m.styles.titleBtn.Render(btn) +
		m.styles.title.Render(fitWidth(m.title, titleW)) +
		m.styles.titleBtn.Render(right)
}

func (m appModel) viewAddRow(w int) string {
	if _, ok := m.sess.Selection().(session.Composing); ok {
		return m.styles.row.Render("+ ") + inputRow(w-2, m.input.View(), m.styles.inputFill)
	}
	return m.styles.addRow.Render(fitWidth("+ Add a note…", w))
}

func (m appModel) viewItem(w, idx int, it model.Item, drag session.DragState, sel session.Selection) (string, string) {
	marker := "  "
	if idx == m.cursor {
		marker = "› "
	}
	box := "[ ]"
	if it.Completed {
		box = "[x]"
	}
	head := marker + box + " "

	gap := m.styles.row.Render(strings.Repeat(" ", w))
	if drag.TargetID == it.ID && drag.DraggedID != it.ID {
		if drag.InsertBefore {
			head = "↑ " + box + " "
		} else {
			gap = m.styles.indicator.Render(fitWidth("  ↓ drop below", w))
		}
	}

	if ed, ok := sel.(session.Editing); ok && ed.ID == it.ID {
		return m.styles.row.Render(head) + inputRow(w-xansi.StringWidth(head), m.input.View(), m.styles.inputFill), gap
	}

	line := fitWidth(head+it.Text, w)
	switch {
	case drag.DraggedID == it.ID:
		line = m.styles.dragged.Render(fitWidth("≡ "+box+" "+it.Text, w))
	case drag.TargetID == it.ID && drag.InsertBefore:
		line = m.styles.indicator.Render(line)
	case idx == m.cursor:
		line = m.styles.selected.Render(line)
	case it.Completed:
		line = m.styles.done.Render(line)
	default:
		line = m.styles.row.Render(line)
	}
	return line, gap
}

func (m appModel) viewFooter(w int) string {
	if m.status != "" {
		return m.styles.status.Render(fitWidth(" "+m.status, w))
	}
	switch m.sess.Selection().(type) {
	case session.Editing, session.Composing:
		return m.help.View(inputKeyMap{m.keys})
	}
	return m.help.View(m.keys)
}

func (m appModel) footerHeight() int {
	return lineCount(m.viewFooter(max(m.width, fallbackWidth)))
}

// rows is the number of item rows on screen.
func (m appModel) rows() int {
	return visibleRows(m.height, m.footerHeight())
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}
