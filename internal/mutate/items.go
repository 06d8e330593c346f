package mutate

import (
	"strings"

	"stickynote/internal/model"
)

// Add appends a new item with the trimmed text. Whitespace-only text is rejected
// (Changed=false). The new item's order is one past the current maximum.
func Add(items []model.Item, id, text string) Result {
	text = strings.TrimSpace(text)
	id = strings.TrimSpace(id)
	if text == "" || id == "" || IndexOf(items, id) >= 0 {
		return unchanged(items)
	}

	it := model.Item{
		ID:        id,
		Text:      text,
		Completed: false,
		Order:     NextOrder(items),
	}
	next := make([]model.Item, 0, len(items)+1)
	next = append(next, items...)
	next = append(next, it)

	return Result{
		Items:        next,
		Changed:      true,
		Type:         model.EventItemAdd,
		ItemID:       id,
		EventPayload: map[string]any{"text": text, "order": it.Order},
	}
}

// Toggle flips the completion flag of id. Order is untouched.
func Toggle(items []model.Item, id string) Result {
	idx := IndexOf(items, id)
	if idx < 0 {
		return unchanged(items)
	}
	next := Clone(items)
	next[idx].Completed = !next[idx].Completed
	return Result{
		Items:        next,
		Changed:      true,
		Type:         model.EventItemToggle,
		ItemID:       id,
		EventPayload: map[string]any{"completed": next[idx].Completed},
	}
}

// Edit replaces the text of id with the trimmed text. Empty text deletes the item.
func Edit(items []model.Item, id, text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Delete(items, id)
	}
	idx := IndexOf(items, id)
	if idx < 0 || items[idx].Text == text {
		return unchanged(items)
	}
	prev := items[idx].Text
	next := Clone(items)
	next[idx].Text = text
	return Result{
		Items:        next,
		Changed:      true,
		Type:         model.EventItemEdit,
		ItemID:       id,
		EventPayload: map[string]any{"from": prev, "to": text},
	}
}

// Delete removes id and renumbers the remaining items densely.
func Delete(items []model.Item, id string) Result {
	idx := IndexOf(items, id)
	if idx < 0 {
		return unchanged(items)
	}
	removed := items[idx]
	next := make([]model.Item, 0, len(items)-1)
	next = append(next, items[:idx]...)
	next = append(next, items[idx+1:]...)
	next = Renumber(next)
	return Result{
		Items:        next,
		Changed:      true,
		Type:         model.EventItemDelete,
		ItemID:       id,
		EventPayload: map[string]any{"text": removed.Text, "order": removed.Order},
	}
}
