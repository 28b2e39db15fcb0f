package invoice

import (
	"github.com/google/uuid"
)

// AssignItemIDs returns a copy of items where every item has an id unique
// within the list. Existing unique ids are kept.
func AssignItemIDs(items []Item) []Item {
	out := make([]Item, len(items))
	seen := make(map[string]bool, len(items))

	for i, it := range items {
		if it.ID == "" || seen[it.ID] {
			it.ID = "item-" + uuid.NewString()
		}

		seen[it.ID] = true
		out[i] = it
	}

	return out
}
