package tui

import (
	"stickynote/internal/logging"
	"stickynote/internal/model"
	"stickynote/internal/mutate"
	"stickynote/internal/session"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	sess   *session.Session
	log    *logging.Logger
	title  string
	keys   keyMap
	help   help.Model
	input  textinput.Model
	styles styles

	width  int
	height int

	cursor    int
	offset    int
	collapsed bool

	// pressed is set between a left press on an item and the matching release.
	pressed    bool
	moved      bool
	clickEdits bool

	status string
}

func newAppModel(sess *session.Session, opts Options) appModel {
	title := opts.Title
	if title == "" {
		title = "stickynote"
	}
	m := appModel{
		sess:   sess,
		log:    logging.OrNop(opts.Log).WithComponent("tui"),
		title:  title,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: newStyles(),
	}
	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = "Add a note…"
	m.input.CharLimit = 500
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) items() []model.Item { return m.sess.Items() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		m.clampCursor()
		return m, nil

	case tea.BlurMsg:
		m.blur()
		return m, nil

	case tea.FocusMsg:
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.sess.Selection().(type) {
		case session.Editing:
			return m.updateEditing(msg)
		case session.Composing:
			return m.updateComposing(msg)
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.items()
	cur, hasCur := m.current(items)
	m.setStatus("")

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.blur()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.sess.EndDrag()
		m.pressed = false
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Collapse):
		m.toggleCollapse()
	case m.collapsed:
		// Everything below only applies to the expanded list.
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Add):
		return m.startCompose()
	case key.Matches(msg, m.keys.Toggle) && hasCur:
		m.sess.Toggle(cur.ID)
	case key.Matches(msg, m.keys.Edit) && hasCur:
		return m.startEdit(cur.ID)
	case key.Matches(msg, m.keys.Delete) && hasCur:
		m.sess.Delete(cur.ID)
		m.setStatus("deleted: " + cur.Text)
	case key.Matches(msg, m.keys.MoveUp) && hasCur:
		m.moveBy(cur.ID, -1)
	case key.Matches(msg, m.keys.MoveDown) && hasCur:
		m.moveBy(cur.ID, 1)
	}
	m.clampCursor()
	return m, nil
}

func (m appModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		res := m.sess.CommitEdit()
		m.afterInput(res)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.sess.CancelEdit()
		m.afterInput(mutate.Result{})
		return m, nil
	case key.Matches(msg, m.keys.Leave):
		res := m.sess.BlurEdit()
		m.afterInput(res)
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		m.blur()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.sess.SetDraft(m.input.Value())
	return m, cmd
}

func (m appModel) updateComposing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		res := m.sess.CommitCompose()
		if res.Changed {
			m.afterInput(res)
			if idx := mutate.IndexOf(res.Items, res.ItemID); idx >= 0 {
				m.cursor = idx
				m.ensureVisible()
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.sess.CancelCompose()
		m.afterInput(mutate.Result{})
		return m, nil
	case key.Matches(msg, m.keys.Leave):
		m.sess.BlurCompose()
		if _, still := m.sess.Selection().(session.Composing); !still {
			m.afterInput(mutate.Result{})
		} else {
			m.input.Blur()
		}
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		m.blur()
		return m, tea.Quit
	}
	if !m.input.Focused() {
		// A kept draft after focus loss: typing resumes it.
		cmd := m.input.Focus()
		var c2 tea.Cmd
		m.input, c2 = m.input.Update(msg)
		m.sess.SetDraft(m.input.Value())
		return m, tea.Batch(cmd, c2)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.sess.SetDraft(m.input.Value())
	return m, cmd
}

func (m appModel) startCompose() (tea.Model, tea.Cmd) {
	if !m.sess.StartCompose() {
		return m, nil
	}
	if c, ok := m.sess.Selection().(session.Composing); ok {
		m.input.SetValue(c.Draft)
	}
	m.input.Placeholder = "Add a note…"
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m appModel) startEdit(id string) (tea.Model, tea.Cmd) {
	if !m.sess.StartEdit(id) {
		return m, nil
	}
	ed := m.sess.Selection().(session.Editing)
	m.input.SetValue(ed.Draft)
	m.input.Placeholder = ""
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

// afterInput resets the input once an edit or compose has been resolved.
func (m *appModel) afterInput(res mutate.Result) {
	m.input.Blur()
	m.input.SetValue("")
	m.input.Placeholder = "Add a note…"
	if res.Changed && res.Type == model.EventItemDelete {
		m.setStatus("deleted empty note")
	}
	m.clampCursor()
}

// blur resolves everything that depends on focus: open edits, empty
// compose rows and in-flight drags.
func (m *appModel) blur() {
	switch m.sess.Selection().(type) {
	case session.Editing:
		m.afterInput(m.sess.BlurEdit())
	case session.Composing:
		m.sess.BlurCompose()
		if _, still := m.sess.Selection().(session.Composing); !still {
			m.afterInput(mutate.Result{})
		} else {
			m.input.Blur()
		}
	}
	m.sess.EndDrag()
	m.pressed = false
}

func (m *appModel) toggleCollapse() {
	if !m.collapsed {
		m.blur()
	}
	m.collapsed = !m.collapsed
}

func (m *appModel) moveBy(id string, delta int) {
	res := m.sess.MoveBy(id, delta)
	if idx := mutate.IndexOf(res.Items, id); idx >= 0 {
		m.cursor = idx
	}
}

func (m appModel) current(items []model.Item) (model.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(items) {
		return model.Item{}, false
	}
	return items[m.cursor], true
}

func (m *appModel) clampCursor() {
	n := m.sess.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m *appModel) ensureVisible() {
	rows := m.rows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if n := m.sess.Len(); m.offset > n-rows {
		m.offset = max(n-rows, 0)
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *appModel) setStatus(s string) {
	m.status = s
}
