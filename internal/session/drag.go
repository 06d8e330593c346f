package session

import "stickynote/internal/mutate"

// DragState tracks an in-flight drag. TargetID is empty while the pointer is not
// over a droppable item (including the add row).
type DragState struct {
	DraggedID    string
	TargetID     string
	InsertBefore bool
}

func (d DragState) Active() bool {
	return d.DraggedID != ""
}

func (s *Session) Drag() DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag
}

func (s *Session) DragStart(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mutate.IndexOf(s.items.Current(), id) < 0 {
		return false
	}
	s.drag = DragState{DraggedID: id}
	return true
}

// DragOver records the item under the pointer and which half of it.
func (s *Session) DragOver(targetID string, insertBefore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drag.Active() {
		return
	}
	if mutate.IndexOf(s.items.Current(), targetID) < 0 {
		s.drag.TargetID = ""
		return
	}
	s.drag.TargetID = targetID
	s.drag.InsertBefore = insertBefore
}

// DragOverAddRow clears the target: the add row is not a drop target.
func (s *Session) DragOverAddRow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.TargetID = ""
}

// Drop reorders the dragged item onto the recorded target. Drag state is
// cleared whether or not anything moved.
func (s *Session) Drop() mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.drag
	s.drag = DragState{}
	if !d.Active() || d.TargetID == "" {
		return mutate.Result{Items: s.items.Current()}
	}
	return s.apply(mutate.Reorder(s.items.Current(), d.DraggedID, d.TargetID, d.InsertBefore))
}

// EndDrag abandons a drag (pointer released outside the list, escape, focus loss).
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag = DragState{}
}
