package tui

import (
	"stickynote/internal/model"
	"stickynote/internal/mutate"
	"stickynote/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse implements click and drag-and-drop. A left press on an item
// starts a drag; motion with the button held updates the drop target from the
// row under the pointer (item line = before, gap line = after); release drops.
// A press and release without motion is a click: it selects the item, and
// clicking the already selected item edits it.
func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	items := m.items()
	h := hitTest(msg.X, msg.Y, len(items), m.offset, m.rows(), m.collapsed)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			m.scroll(-1)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			m.scroll(1)
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.mousePress(h, items)
	case tea.MouseActionMotion:
		if m.pressed && m.sess.Drag().Active() {
			m.dragOver(h, items)
		}
		return m, nil
	case tea.MouseActionRelease:
		return m.mouseRelease()
	}
	return m, nil
}

func (m appModel) mousePress(h hit, items []model.Item) (tea.Model, tea.Cmd) {
	m.setStatus("")

	// Blurring an edit may delete the edited row and shift the ones below it,
	// so the clicked item is pinned by id first.
	var clickedID string
	if h.kind == hitItem && h.index < len(items) {
		clickedID = items[h.index].ID
	}

	// Clicking anywhere but the open input takes focus away from it.
	switch sel := m.sess.Selection().(type) {
	case session.Editing:
		if h.upper && clickedID == sel.ID {
			return m, nil
		}
		m.blur()
	case session.Composing:
		if h.kind == hitAddRow {
			if !m.input.Focused() {
				cmd := m.input.Focus()
				return m, cmd
			}
			return m, nil
		}
		m.blur()
	}

	switch h.kind {
	case hitCollapse:
		m.toggleCollapse()
	case hitAddRow:
		return m.startCompose()
	case hitItem:
		idx := mutate.IndexOf(m.items(), clickedID)
		if idx < 0 {
			return m, nil
		}
		id := clickedID
		wasCursor := m.cursor == idx
		m.cursor = idx
		if h.checkbox {
			m.sess.Toggle(id)
			return m, nil
		}
		if m.sess.DragStart(id) {
			m.pressed = true
			m.moved = false
			m.clickEdits = wasCursor && h.upper
		}
	}
	return m, nil
}

func (m *appModel) dragOver(h hit, items []model.Item) {
	m.moved = true
	switch h.kind {
	case hitItem:
		m.sess.DragOver(items[h.index].ID, h.upper)
	case hitAddRow:
		m.sess.DragOverAddRow()
	default:
		m.sess.DragOver("", false)
	}
}

func (m appModel) mouseRelease() (tea.Model, tea.Cmd) {
	if !m.pressed {
		return m, nil
	}
	m.pressed = false
	drag := m.sess.Drag()

	if !m.moved {
		m.sess.EndDrag()
		if m.clickEdits {
			return m.startEdit(drag.DraggedID)
		}
		return m, nil
	}

	res := m.sess.Drop()
	if res.Changed {
		if idx := mutate.IndexOf(res.Items, drag.DraggedID); idx >= 0 {
			m.cursor = idx
		}
		m.log.Debugw("dropped", "item", drag.DraggedID, "target", drag.TargetID, "before", drag.InsertBefore)
	}
	m.clampCursor()
	return m, nil
}

func (m *appModel) scroll(delta int) {
	if m.collapsed {
		return
	}
	m.offset += delta
	rows := m.rows()
	if n := m.sess.Len(); m.offset > n-rows {
		m.offset = n - rows
	}
	if m.offset < 0 {
		m.offset = 0
	}
	if m.cursor < m.offset {
		m.cursor = m.offset
	}
	if m.cursor >= m.offset+rows {
		m.cursor = m.offset + rows - 1
	}
}
