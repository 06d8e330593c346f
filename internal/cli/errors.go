package cli

import (
	"errors"

	"stickynote/internal/model"
	"stickynote/internal/mutate"
)

var errEmptyText = errors.New("nothing to add: text is empty")

func errNotFound(kind, id string) error {
	return mutate.NotFoundError{Kind: kind, ID: id}
}

// itemFrom returns the item a mutation touched.
func itemFrom(res mutate.Result) (model.Item, error) {
	it, ok := mutate.Find(res.Items, res.ItemID)
	if !ok {
		return model.Item{}, errNotFound("item", res.ItemID)
	}
	return it, nil
}
