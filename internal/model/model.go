package model

import (
	"encoding/json"
	"time"
)

// Item is one to-do entry. Order is the display position and is kept dense and
// zero-based by every mutation in package mutate.
type Item struct {
	ID        string `json:"id" validate:"required"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

// Event types recorded in the history log.
const (
	EventItemAdd     = "item.add"
	EventItemToggle  = "item.toggle"
	EventItemEdit    = "item.edit"
	EventItemDelete  = "item.delete"
	EventItemReorder = "item.reorder"
)

type Event struct {
	ID      int64           `json:"id,omitempty"`
	TS      time.Time       `json:"ts"`
	Type    string          `json:"type"`
	ItemID  string          `json:"itemId"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
