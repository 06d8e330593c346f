package session

import (
	"strings"

	"stickynote/internal/mutate"
)

// Selection is what the user is currently typing into: nothing, an existing
// item, or the "add new item" row. At most one can be active.
type Selection interface {
	isSelection()
}

type NoSelection struct{}

type Editing struct {
	ID       string
	Original string
	Draft    string
}

type Composing struct {
	Draft string
}

func (NoSelection) isSelection() {}
func (Editing) isSelection()     {}
func (Composing) isSelection()   {}

func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// StartEdit begins editing id. It is refused while composing, while another
// edit is open, or when id is unknown.
func (s *Session) StartEdit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sel.(NoSelection); !ok {
		return false
	}
	it, ok := mutate.Find(s.items.Current(), id)
	if !ok {
		return false
	}
	s.sel = Editing{ID: it.ID, Original: it.Text, Draft: it.Text}
	return true
}

// SetDraft updates the draft of the active edit or compose.
func (s *Session) SetDraft(draft string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch sel := s.sel.(type) {
	case Editing:
		sel.Draft = draft
		s.sel = sel
	case Composing:
		sel.Draft = draft
		s.sel = sel
	}
}

// CommitEdit applies the draft. An empty draft deletes the item.
func (s *Session) CommitEdit() mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	ed, ok := s.sel.(Editing)
	if !ok {
		return mutate.Result{Items: s.items.Current()}
	}
	s.sel = NoSelection{}
	return s.apply(mutate.Edit(s.items.Current(), ed.ID, ed.Draft))
}

func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sel.(Editing); ok {
		s.sel = NoSelection{}
	}
}

// BlurEdit resolves an edit when focus leaves it: an empty draft deletes the
// item, an unchanged draft cancels and anything else commits.
func (s *Session) BlurEdit() mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	ed, ok := s.sel.(Editing)
	if !ok {
		return mutate.Result{Items: s.items.Current()}
	}
	s.sel = NoSelection{}
	draft := strings.TrimSpace(ed.Draft)
	if draft != "" && draft == strings.TrimSpace(ed.Original) {
		return mutate.Result{Items: s.items.Current()}
	}
	return s.apply(mutate.Edit(s.items.Current(), ed.ID, draft))
}

// StartCompose opens the add row. Refused while an edit is open.
func (s *Session) StartCompose() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.sel.(type) {
	case Editing:
		return false
	case Composing:
		return true
	}
	s.sel = Composing{}
	return true
}

// CommitCompose adds the draft as a new item. A blank draft keeps composing.
func (s *Session) CommitCompose() mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.sel.(Composing)
	if !ok || strings.TrimSpace(c.Draft) == "" {
		return mutate.Result{Items: s.items.Current()}
	}
	s.sel = NoSelection{}
	return s.apply(mutate.Add(s.items.Current(), s.newID(), c.Draft))
}

func (s *Session) CancelCompose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sel.(Composing); ok {
		s.sel = NoSelection{}
	}
}

// BlurCompose closes an empty add row. A non-empty draft is kept.
func (s *Session) BlurCompose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.sel.(Composing); ok && strings.TrimSpace(c.Draft) == "" {
		s.sel = NoSelection{}
	}
}
