package store

import (
	"context"
	"sync"

	"stickynote/internal/logging"
	"stickynote/internal/model"
	"stickynote/internal/mutate"
)

type ItemWriter interface {
	SaveItems(ctx context.Context, items []model.Item) error
}

type EventAppender interface {
	AppendEvents(ctx context.Context, evs []model.Event) error
}

// Saver persists collection snapshots off the caller's goroutine. It keeps a
// single pending slot: a snapshot submitted while another is waiting replaces
// it, so the file always converges to the most recent state. Events are never
// dropped; they accumulate until the next write.
type Saver struct {
	w   ItemWriter
	h   EventAppender
	log *logging.Logger

	mu         sync.Mutex
	pending    []model.Item
	hasPending bool
	events     []model.Event
	submitted  uint64
	written    uint64
	lastErr    error
	progress   chan struct{}
	stopped    bool

	wake chan struct{}
}

// NewSaver returns a saver writing through w. h may be nil to disable history.
func NewSaver(w ItemWriter, h EventAppender, log *logging.Logger) *Saver {
	return &Saver{
		w:        w,
		h:        h,
		log:      logging.OrNop(log).WithComponent("saver"),
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
	}
}

// Submit schedules items (and any events describing how they were produced) for
// persistence. It never blocks on I/O.
func (s *Saver) Submit(items []model.Item, events ...model.Event) {
	s.mu.Lock()
	s.pending = mutate.Clone(items)
	s.hasPending = true
	s.events = append(s.events, events...)
	s.submitted++
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run is the single writer loop. When ctx is cancelled any pending snapshot is
// written once more before Run returns. Cancelling ctx only ends the loop; a
// write already picked up is never aborted by it.
func (s *Saver) Run(ctx context.Context) error {
	wctx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			s.drain(wctx)
			s.mu.Lock()
			s.stopped = true
			close(s.progress)
			s.progress = make(chan struct{})
			s.mu.Unlock()
			return nil
		case <-s.wake:
			s.drain(wctx)
		}
	}
}

func (s *Saver) drain(ctx context.Context) {
	s.mu.Lock()
	items, has := s.pending, s.hasPending
	events := s.events
	target := s.submitted
	s.pending, s.hasPending, s.events = nil, false, nil
	s.mu.Unlock()

	var err error
	if has {
		if err = s.w.SaveItems(ctx, items); err != nil {
			s.log.Errorw("save failed", "error", err, "count", len(items))
		}
	}
	if len(events) > 0 && s.h != nil {
		if herr := s.h.AppendEvents(ctx, events); herr != nil {
			s.log.Warnw("history append failed", "error", herr, "events", len(events))
		}
	}

	s.mu.Lock()
	if target > s.written {
		s.written = target
	}
	if has {
		s.lastErr = err
	}
	close(s.progress)
	s.progress = make(chan struct{})
	s.mu.Unlock()
}

// Flush waits until everything submitted so far has been written and returns
// the error of the most recent save, if any.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	target := s.submitted
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if s.written >= target || s.stopped {
			err := s.lastErr
			s.mu.Unlock()
			return err
		}
		ch := s.progress
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}
