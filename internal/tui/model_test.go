package tui

import (
	"fmt"
	"strings"
	"testing"

	"stickynote/internal/model"
	"stickynote/internal/mutate"
	"stickynote/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

type countingPersister struct{ n int }

func (p *countingPersister) Submit([]model.Item, ...model.Event) { p.n++ }

func newTestModel(t *testing.T) (appModel, *session.Session, *countingPersister) {
	t.Helper()
	p := &countingPersister{}
	n := 0
	sess := session.New([]model.Item{
		{ID: "a", Text: "alpha", Order: 0},
		{ID: "b", Text: "bravo", Order: 1},
		{ID: "c", Text: "charlie", Order: 2},
	}, session.Options{
		Persister: p,
		NewID: func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		},
	})
	m := newAppModel(sess, Options{Title: "test"})
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	return m, sess, p
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(appModel)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return am
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

// itemY returns the screen row of item i's line (upper=true) or gap line.
func itemY(i int, upper bool) int {
	y := firstItemY + i*linesPerItem
	if !upper {
		y++
	}
	return y
}

func order(sess *session.Session) string {
	var out []string
	for _, it := range sess.Items() {
		out = append(out, it.ID)
	}
	return strings.Join(out, ",")
}

func TestKeys_NavigateAndToggle(t *testing.T) {
	m, sess, p := newTestModel(t)

	m = update(t, m, runes("j"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if it, _ := mutate.Find(sess.Items(), "b"); !it.Completed {
		t.Fatalf("expected b completed")
	}
	if p.n != 1 {
		t.Fatalf("expected one save; got %d", p.n)
	}

	m = update(t, m, runes("k"))
	m = update(t, m, runes("k"))
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp at 0; got %d", m.cursor)
	}
}

func TestKeys_MoveDownAndDelete(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = update(t, m, runes("J"))
	if got := order(sess); got != "b,a,c" {
		t.Fatalf("expected b,a,c; got %s", got)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor should follow the moved item; got %d", m.cursor)
	}

	m = update(t, m, runes("d"))
	if got := order(sess); got != "b,c" {
		t.Fatalf("expected b,c; got %s", got)
	}
	if !mutate.IsDense(sess.Items()) {
		t.Fatalf("orders not dense after delete")
	}
	_ = m
}

func TestCompose_AddsItem(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = update(t, m, runes("a"))
	if _, ok := sess.Selection().(session.Composing); !ok {
		t.Fatalf("expected composing; got %#v", sess.Selection())
	}
	m = update(t, m, runes("milk"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if _, ok := sess.Selection().(session.NoSelection); !ok {
		t.Fatalf("expected idle after commit; got %#v", sess.Selection())
	}
	items := sess.Items()
	if len(items) != 4 || items[3].Text != "milk" || items[3].Order != 3 {
		t.Fatalf("unexpected items: %#v", items)
	}
	if m.cursor != 3 {
		t.Fatalf("cursor should move to the new item; got %d", m.cursor)
	}
}

func TestCompose_BlankEnterKeepsComposing(t *testing.T) {
	m, sess, p := newTestModel(t)

	m = update(t, m, runes("a"))
	m = update(t, m, runes("   "))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := sess.Selection().(session.Composing); !ok {
		t.Fatalf("expected to stay composing; got %#v", sess.Selection())
	}
	if p.n != 0 {
		t.Fatalf("blank add saved")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := sess.Selection().(session.NoSelection); !ok {
		t.Fatalf("expected idle after esc; got %#v", sess.Selection())
	}
}

func TestEdit_ClearingTextDeletes(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = update(t, m, runes("j"))
	m = update(t, m, runes("e"))
	if ed, ok := sess.Selection().(session.Editing); !ok || ed.ID != "b" {
		t.Fatalf("expected editing b; got %#v", sess.Selection())
	}
	for range "bravo" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := order(sess); got != "a,c" {
		t.Fatalf("expected a,c; got %s", got)
	}
	if _, ok := sess.Selection().(session.NoSelection); !ok {
		t.Fatalf("expected idle; got %#v", sess.Selection())
	}
	_ = m
}

func TestFocusLoss_CommitsChangedEdit(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = update(t, m, runes("e"))
	m = update(t, m, runes("!"))
	m = update(t, m, tea.BlurMsg{})
	if it, _ := mutate.Find(sess.Items(), "a"); it.Text != "alpha!" {
		t.Fatalf("expected committed text; got %q", it.Text)
	}
	if _, ok := sess.Selection().(session.NoSelection); !ok {
		t.Fatalf("expected idle; got %#v", sess.Selection())
	}
}

func TestFocusLoss_KeepsComposeDraft(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = update(t, m, runes("a"))
	m = update(t, m, runes("eggs"))
	m = update(t, m, tea.BlurMsg{})
	c, ok := sess.Selection().(session.Composing)
	if !ok || c.Draft != "eggs" {
		t.Fatalf("expected draft kept; got %#v", sess.Selection())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if items := sess.Items(); len(items) != 4 || items[3].Text != "eggs" {
		t.Fatalf("expected kept draft to be addable; got %#v", items)
	}
}

func TestMouse_DragAndDrop(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		toY   int
		want  string
		saved int
	}{
		{name: "first onto lower half of last", from: 0, toY: itemY(2, false), want: "b,c,a", saved: 1},
		{name: "last onto upper half of first", from: 2, toY: itemY(0, true), want: "c,a,b", saved: 1},
		{name: "onto add row", from: 0, toY: addRowY, want: "a,b,c", saved: 0},
		{name: "onto itself", from: 1, toY: itemY(1, true), want: "a,b,c", saved: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, sess, p := newTestModel(t)

			m = update(t, m, press(10, itemY(tc.from, true)))
			if !sess.Drag().Active() {
				t.Fatalf("press did not start a drag")
			}
			m = update(t, m, motion(10, tc.toY))
			m = update(t, m, release(10, tc.toY))

			if got := order(sess); got != tc.want {
				t.Fatalf("expected %s; got %s", tc.want, got)
			}
			if p.n != tc.saved {
				t.Fatalf("expected %d saves; got %d", tc.saved, p.n)
			}
			if sess.Drag().Active() {
				t.Fatalf("drag state not cleared")
			}
			if !mutate.IsDense(sess.Items()) {
				t.Fatalf("orders not dense")
			}
		})
	}
}

func TestMouse_CheckboxToggles(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = update(t, m, press(checkboxX+1, itemY(1, true)))
	m = update(t, m, release(checkboxX+1, itemY(1, true)))
	if it, _ := mutate.Find(sess.Items(), "b"); !it.Completed {
		t.Fatalf("expected b completed")
	}
	if sess.Drag().Active() {
		t.Fatalf("checkbox click must not start a drag")
	}
	_ = m
}

func TestMouse_CheckboxAfterEmptyEditBlur(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = update(t, m, runes("j"))
	m = update(t, m, runes("e"))
	for range "bravo" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}

	// Clicking c's checkbox blurs the empty edit, which deletes b and moves c up.
	m = update(t, m, press(checkboxX+1, itemY(2, true)))
	m = update(t, m, release(checkboxX+1, itemY(2, true)))

	if got := order(sess); got != "a,c" {
		t.Fatalf("expected a,c; got %s", got)
	}
	if it, _ := mutate.Find(sess.Items(), "c"); !it.Completed {
		t.Fatalf("expected c completed")
	}
	if it, _ := mutate.Find(sess.Items(), "a"); it.Completed {
		t.Fatalf("a must not be toggled")
	}
	if m.cursor != 1 {
		t.Fatalf("expected cursor on c (1); got %d", m.cursor)
	}
}

func TestMouse_ClickSelectedItemEdits(t *testing.T) {
	m, sess, _ := newTestModel(t)

	y := itemY(2, true)
	m = update(t, m, press(10, y))
	m = update(t, m, release(10, y))
	if m.cursor != 2 {
		t.Fatalf("click should select; cursor=%d", m.cursor)
	}
	if _, ok := sess.Selection().(session.NoSelection); !ok {
		t.Fatalf("first click should not edit")
	}
	m = update(t, m, press(10, y))
	m = update(t, m, release(10, y))
	if ed, ok := sess.Selection().(session.Editing); !ok || ed.ID != "c" {
		t.Fatalf("expected editing c; got %#v", sess.Selection())
	}
	if !m.input.Focused() || m.input.Value() != "charlie" {
		t.Fatalf("input not primed: focused=%v value=%q", m.input.Focused(), m.input.Value())
	}
}

func TestMouse_ClickAddRowComposes(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = update(t, m, press(5, addRowY))
	if _, ok := sess.Selection().(session.Composing); !ok {
		t.Fatalf("expected composing; got %#v", sess.Selection())
	}
	_ = m
}

func TestCollapse(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, press(1, titleY))
	if !m.collapsed {
		t.Fatalf("expected collapsed")
	}
	if v := m.View(); strings.Contains(v, "\n") || !strings.Contains(v, "test") {
		t.Fatalf("collapsed view should be the title bar only; got %q", v)
	}
	m = update(t, m, runes("j"))
	if m.cursor != 0 {
		t.Fatalf("navigation should be ignored while collapsed")
	}
	m = update(t, m, runes("c"))
	if m.collapsed {
		t.Fatalf("expected expanded")
	}
}

func TestView_ShowsItemsAndHeight(t *testing.T) {
	m, _, _ := newTestModel(t)

	v := m.View()
	for _, want := range []string{"alpha", "bravo", "charlie", "Add a note", "3 left"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
	if got := lineCount(v); got != 20 {
		t.Fatalf("expected view to fill 20 lines; got %d", got)
	}
}
