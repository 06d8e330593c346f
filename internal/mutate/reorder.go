package mutate

import (
	"strings"

	"stickynote/internal/model"
)

// Reorder moves draggedID next to targetID and renumbers every item's Order to its
// new index.
//
// insertBefore selects the side of the target: true when the drop landed on the
// upper half of the target row, false for the lower half. The insertion index is
// computed against the original indices; when the dragged item started before the
// target and lands after it, the index is shifted down by one to account for the
// removal. The result is clamped to the shortened list.
//
// Dropping an item onto itself, or referencing an id that is not in items, is a
// no-op (Changed=false).
func Reorder(items []model.Item, draggedID, targetID string, insertBefore bool) Result {
	draggedID = strings.TrimSpace(draggedID)
	targetID = strings.TrimSpace(targetID)
	if draggedID == "" || targetID == "" || draggedID == targetID {
		return unchanged(items)
	}

	draggedIdx := IndexOf(items, draggedID)
	targetIdx := IndexOf(items, targetID)
	if draggedIdx < 0 || targetIdx < 0 {
		return unchanged(items)
	}
	dragged := items[draggedIdx]

	rest := make([]model.Item, 0, len(items)-1)
	rest = append(rest, items[:draggedIdx]...)
	rest = append(rest, items[draggedIdx+1:]...)

	insertAt := targetIdx
	if !insertBefore {
		insertAt = targetIdx + 1
		if draggedIdx < targetIdx {
			insertAt--
		}
	}
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}

	final := make([]model.Item, 0, len(items))
	final = append(final, rest[:insertAt]...)
	final = append(final, dragged)
	final = append(final, rest[insertAt:]...)
	final = Renumber(final)

	return Result{
		Items:   final,
		Changed: true,
		Type:    model.EventItemReorder,
		ItemID:  dragged.ID,
		EventPayload: map[string]any{
			"target":       targetID,
			"insertBefore": insertBefore,
			"from":         draggedIdx,
			"to":           insertAt,
		},
	}
}

// MoveBy moves id by delta slots (negative is up). It is the keyboard counterpart of
// a drag: moving up drops before the item delta slots above, moving down drops after
// the item delta slots below. Deltas past either end are clamped.
func MoveBy(items []model.Item, id string, delta int) Result {
	idx := IndexOf(items, id)
	if idx < 0 || delta == 0 || len(items) < 2 {
		return unchanged(items)
	}
	to := idx + delta
	if to < 0 {
		to = 0
	}
	if to > len(items)-1 {
		to = len(items) - 1
	}
	if to == idx {
		return unchanged(items)
	}
	return Reorder(items, id, items[to].ID, to < idx)
}
