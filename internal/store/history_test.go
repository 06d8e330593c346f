package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"stickynote/internal/model"
)

func TestHistory_AppendAndRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := Store{Dir: t.TempDir()}.History()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	evs := []model.Event{
		{TS: ts, Type: model.EventItemAdd, ItemID: "a", Payload: json.RawMessage(`{"text":"milk"}`)},
		{TS: ts.Add(time.Second), Type: model.EventItemToggle, ItemID: "a"},
		{TS: ts.Add(2 * time.Second), Type: model.EventItemDelete, ItemID: "a"},
	}
	if err := h.AppendEvents(ctx, evs[:2]); err != nil {
		t.Fatalf("append 1: %v", err)
	}
	if err := h.AppendEvents(ctx, evs[2:]); err != nil {
		t.Fatalf("append 2: %v", err)
	}

	all, err := h.ReadEvents(ctx, 0)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].Type != model.EventItemAdd || all[2].Type != model.EventItemDelete {
		t.Fatalf("unexpected order: %q .. %q", all[0].Type, all[2].Type)
	}
	if !all[0].TS.Equal(ts) {
		t.Fatalf("expected ts %v; got %v", ts, all[0].TS)
	}
	if string(all[1].Payload) != "{}" {
		t.Fatalf("expected empty payload object; got %s", all[1].Payload)
	}

	tail, err := h.ReadEvents(ctx, 2)
	if err != nil {
		t.Fatalf("ReadEvents tail: %v", err)
	}
	if len(tail) != 2 || tail[0].Type != model.EventItemToggle || tail[1].Type != model.EventItemDelete {
		t.Fatalf("unexpected tail: %#v", tail)
	}
}

func TestHistory_EmptyAppendIsNoop(t *testing.T) {
	t.Parallel()

	if err := (History{Path: "/nonexistent/dir/history.sqlite"}).AppendEvents(context.Background(), nil); err != nil {
		t.Fatalf("expected nil for empty append; got %v", err)
	}
}
