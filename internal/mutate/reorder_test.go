package mutate

import (
	"reflect"
	"strings"
	"testing"

	"stickynote/internal/model"
)

func abc() []model.Item {
	return []model.Item{
		{ID: "a", Text: "A", Order: 0},
		{ID: "b", Text: "B", Order: 1},
		{ID: "c", Text: "C", Order: 2},
	}
}

func ids(items []model.Item) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return strings.Join(out, ",")
}

func assertDense(t *testing.T, items []model.Item) {
	t.Helper()
	for i, it := range items {
		if it.Order != i {
			t.Fatalf("expected dense order; item %s at index %d has order %d", it.ID, i, it.Order)
		}
	}
}

func TestReorder_ScenarioA_FirstAfterLast(t *testing.T) {
	t.Parallel()

	res := Reorder(abc(), "a", "c", false)
	if !res.Changed {
		t.Fatalf("expected changed")
	}
	want := []model.Item{
		{ID: "b", Text: "B", Order: 0},
		{ID: "c", Text: "C", Order: 1},
		{ID: "a", Text: "A", Order: 2},
	}
	if !reflect.DeepEqual(res.Items, want) {
		t.Fatalf("unexpected result:\nwant: %#v\ngot:  %#v", want, res.Items)
	}
	if res.Type != model.EventItemReorder || res.ItemID != "a" {
		t.Fatalf("unexpected event: type=%q item=%q", res.Type, res.ItemID)
	}
}

func TestReorder_ScenarioB_LastBeforeFirst(t *testing.T) {
	t.Parallel()

	res := Reorder(abc(), "c", "a", true)
	want := []model.Item{
		{ID: "c", Text: "C", Order: 0},
		{ID: "a", Text: "A", Order: 1},
		{ID: "b", Text: "B", Order: 2},
	}
	if !reflect.DeepEqual(res.Items, want) {
		t.Fatalf("unexpected result:\nwant: %#v\ngot:  %#v", want, res.Items)
	}
}

func TestReorder_IndexArithmetic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		dragged      string
		target       string
		insertBefore bool
		want         string
	}{
		{name: "down, after next", dragged: "a", target: "b", insertBefore: false, want: "b,a,c"},
		{name: "down, before next", dragged: "a", target: "b", insertBefore: true, want: "b,a,c"},
		{name: "down, before later target", dragged: "a", target: "c", insertBefore: true, want: "b,c,a"},
		{name: "up, after previous lands in place", dragged: "b", target: "a", insertBefore: false, want: "a,b,c"},
		{name: "up, before previous", dragged: "b", target: "a", insertBefore: true, want: "b,a,c"},
		{name: "up, after first", dragged: "c", target: "a", insertBefore: false, want: "a,c,b"},
		{name: "middle to end", dragged: "b", target: "c", insertBefore: false, want: "a,c,b"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := Reorder(abc(), tc.dragged, tc.target, tc.insertBefore)
			if !res.Changed {
				t.Fatalf("expected changed")
			}
			if got := ids(res.Items); got != tc.want {
				t.Fatalf("expected %s; got %s", tc.want, got)
			}
			assertDense(t, res.Items)
		})
	}
}

func TestReorder_NoOps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dragged string
		target  string
	}{
		{name: "same item", dragged: "b", target: "b"},
		{name: "unknown dragged", dragged: "zz", target: "b"},
		{name: "unknown target", dragged: "a", target: "zz"},
		{name: "empty dragged", dragged: "", target: "b"},
		{name: "empty target", dragged: "a", target: " "},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := abc()
			res := Reorder(in, tc.dragged, tc.target, true)
			if res.Changed {
				t.Fatalf("expected no-op")
			}
			if !reflect.DeepEqual(res.Items, abc()) {
				t.Fatalf("expected items unchanged; got %#v", res.Items)
			}
			if res.Type != "" {
				t.Fatalf("expected no event type on no-op; got %q", res.Type)
			}
		})
	}
}

func TestReorder_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := abc()
	_ = Reorder(in, "a", "c", false)
	if !reflect.DeepEqual(in, abc()) {
		t.Fatalf("input mutated: %#v", in)
	}
}

func TestReorder_RenumbersSparseOrders(t *testing.T) {
	t.Parallel()

	in := []model.Item{
		{ID: "a", Order: 3},
		{ID: "b", Order: 7},
		{ID: "c", Order: 40},
	}
	res := Reorder(in, "c", "b", true)
	if got := ids(res.Items); got != "a,c,b" {
		t.Fatalf("expected a,c,b; got %s", got)
	}
	assertDense(t, res.Items)
}

func TestMoveBy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		delta   int
		want    string
		changed bool
	}{
		{name: "up one", id: "b", delta: -1, want: "b,a,c", changed: true},
		{name: "down one", id: "b", delta: 1, want: "a,c,b", changed: true},
		{name: "down two", id: "a", delta: 2, want: "b,c,a", changed: true},
		{name: "up past top clamps", id: "c", delta: -10, want: "c,a,b", changed: true},
		{name: "top cannot move up", id: "a", delta: -1, want: "a,b,c", changed: false},
		{name: "bottom cannot move down", id: "c", delta: 1, want: "a,b,c", changed: false},
		{name: "unknown id", id: "zz", delta: 1, want: "a,b,c", changed: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := MoveBy(abc(), tc.id, tc.delta)
			if res.Changed != tc.changed {
				t.Fatalf("expected changed=%v; got %v", tc.changed, res.Changed)
			}
			if got := ids(res.Items); got != tc.want {
				t.Fatalf("expected %s; got %s", tc.want, got)
			}
			assertDense(t, res.Items)
		})
	}
}
