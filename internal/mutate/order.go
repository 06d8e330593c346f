package mutate

import (
	"sort"
	"strings"

	"stickynote/internal/model"
)

// Result describes a list mutation. Items is always the complete collection to use
// next; when Changed is false it holds the input unchanged and nothing should be
// persisted.
type Result struct {
	Items        []model.Item
	Changed      bool
	Type         string
	ItemID       string
	EventPayload map[string]any
}

func unchanged(items []model.Item) Result {
	return Result{Items: items}
}

// Clone returns a copy of items that shares no backing array with the input.
func Clone(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	return out
}

// SortByOrder returns a copy of items sorted by Order ascending. Ties keep their
// original relative position.
func SortByOrder(items []model.Item) []model.Item {
	out := Clone(items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Renumber returns a copy of items with Order set to each item's array index.
func Renumber(items []model.Item) []model.Item {
	out := Clone(items)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// Normalize sorts by Order and renumbers densely. Used on freshly loaded data,
// which may come from a hand-edited file with gaps or duplicates.
func Normalize(items []model.Item) []model.Item {
	return Renumber(SortByOrder(items))
}

// IsDense reports whether every item's Order equals its index.
func IsDense(items []model.Item) bool {
	for i := range items {
		if items[i].Order != i {
			return false
		}
	}
	return true
}

func IndexOf(items []model.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with the given id.
func Find(items []model.Item, id string) (model.Item, bool) {
	idx := IndexOf(items, id)
	if idx < 0 {
		return model.Item{}, false
	}
	return items[idx], true
}

// NextOrder returns max(order)+1, or 0 for an empty collection.
func NextOrder(items []model.Item) int {
	if len(items) == 0 {
		return 0
	}
	hi := items[0].Order
	for _, it := range items[1:] {
		if it.Order > hi {
			hi = it.Order
		}
	}
	return hi + 1
}

// ResolveID resolves ref to an item id: an exact id match wins, otherwise ref must
// be an unambiguous id prefix.
func ResolveID(items []model.Item, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", NotFoundError{Kind: "item", ID: ref}
	}
	if IndexOf(items, ref) >= 0 {
		return ref, nil
	}
	var matches []string
	for _, it := range items {
		if strings.HasPrefix(it.ID, ref) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", NotFoundError{Kind: "item", ID: ref}
	case 1:
		return matches[0], nil
	default:
		return "", AmbiguousIDError{Ref: ref, Matches: matches}
	}
}
