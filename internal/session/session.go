// Package session serializes every mutation of the todo list and keeps the
// transient interaction state (edit/compose selection, drag-and-drop) alongside
// the collection it refers to.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"stickynote/internal/logging"
	"stickynote/internal/model"
	"stickynote/internal/mutate"
	"stickynote/internal/store"
)

// Persister receives every changed collection. store.Saver implements it.
type Persister interface {
	Submit(items []model.Item, events ...model.Event)
}

type ItemLoader interface {
	LoadItems(ctx context.Context) ([]model.Item, error)
}

type Options struct {
	Persister Persister
	Log       *logging.Logger
	// NewID defaults to store.NewID.
	NewID func() string
	// Now defaults to time.Now.
	Now func() time.Time
}

type Session struct {
	mu    sync.Mutex
	items *store.ItemStore
	p     Persister
	log   *logging.Logger
	newID func() string
	now   func() time.Time

	sel  Selection
	drag DragState
}

func New(items []model.Item, opts Options) *Session {
	s := &Session{
		items: store.NewItemStore(items),
		p:     opts.Persister,
		log:   logging.OrNop(opts.Log).WithComponent("session"),
		newID: opts.NewID,
		now:   opts.Now,
		sel:   NoSelection{},
	}
	if s.newID == nil {
		s.newID = store.NewID
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Restore loads the persisted collection and normalizes its order. A load error
// is logged and yields an empty list so the app stays usable.
func Restore(ctx context.Context, l ItemLoader, log *logging.Logger) []model.Item {
	items, err := l.LoadItems(ctx)
	if err != nil {
		logging.OrNop(log).Errorw("load failed, starting with an empty list", "error", err)
		return []model.Item{}
	}
	return mutate.Normalize(items)
}

func (s *Session) Items() []model.Item {
	return s.items.Current()
}

func (s *Session) Len() int {
	return s.items.Len()
}

func (s *Session) Add(text string) mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(mutate.Add(s.items.Current(), s.newID(), text))
}

func (s *Session) Toggle(id string) mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(mutate.Toggle(s.items.Current(), id))
}

func (s *Session) Edit(id, text string) mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(mutate.Edit(s.items.Current(), id, text))
}

func (s *Session) Delete(id string) mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(mutate.Delete(s.items.Current(), id))
}

func (s *Session) Reorder(draggedID, targetID string, insertBefore bool) mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(mutate.Reorder(s.items.Current(), draggedID, targetID, insertBefore))
}

func (s *Session) MoveBy(id string, delta int) mutate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(mutate.MoveBy(s.items.Current(), id, delta))
}

// apply publishes a changed result. Callers hold s.mu.
func (s *Session) apply(res mutate.Result) mutate.Result {
	if !res.Changed {
		return res
	}
	s.items.Replace(res.Items)

	if ed, ok := s.sel.(Editing); ok && mutate.IndexOf(res.Items, ed.ID) < 0 {
		s.sel = NoSelection{}
	}
	if s.drag.Active() {
		if mutate.IndexOf(res.Items, s.drag.DraggedID) < 0 ||
			(s.drag.TargetID != "" && mutate.IndexOf(res.Items, s.drag.TargetID) < 0) {
			s.drag = DragState{}
		}
	}

	if s.p != nil {
		s.p.Submit(res.Items, s.event(res))
	}
	s.log.Debugw("applied", "type", res.Type, "item", res.ItemID, "count", len(res.Items))
	return res
}

func (s *Session) event(res mutate.Result) model.Event {
	ev := model.Event{TS: s.now().UTC(), Type: res.Type, ItemID: res.ItemID}
	if len(res.EventPayload) > 0 {
		b, err := json.Marshal(res.EventPayload)
		if err != nil {
			s.log.Warnw("encode event payload", "error", err, "type", res.Type)
		} else {
			ev.Payload = b
		}
	}
	return ev
}
