package trip

import (
	"cmp"
	"slices"
)

// SortItems stably orders items by their HH:MM time.
func SortItems(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(a.SortTime(), b.SortTime())
	})
}

// InsertItems returns d with items added and the list re-sorted by time.
func InsertItems(d Day, items ...Item) Day {
	out := make([]Item, 0, len(d.Items)+len(items))
	out = append(out, d.Items...)
	out = append(out, items...)
	SortItems(out)
	d.Items = out
	return d
}

// ReplaceItem returns d with the item with the same id replaced and the list
// re-sorted by time.
func ReplaceItem(d Day, it Item) (Day, error) {
	idx := slices.IndexFunc(d.Items, func(x Item) bool { return x.ItemID() == it.ItemID() })
	if idx < 0 {
		return d, ErrItemNotFound
	}
	out := slices.Clone(d.Items)
	out[idx] = it
	SortItems(out)
	d.Items = out
	return d, nil
}

// RemoveItem returns d without the item. The remaining order is untouched.
func RemoveItem(d Day, itemID string) (Day, error) {
	idx := slices.IndexFunc(d.Items, func(x Item) bool { return x.ItemID() == itemID })
	if idx < 0 {
		return d, ErrItemNotFound
	}
	d.Items = slices.Delete(slices.Clone(d.Items), idx, idx+1)
	return d, nil
}

// MoveItem moves the item at from to position to, as a drag-and-drop would.
// The result is not re-sorted; the next insert or edit restores time order.
func MoveItem(d Day, from, to int) (Day, error) {
	n := len(d.Items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return d, ErrInvalidPosition
	}
	out := slices.Clone(d.Items)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	d.Items = out
	return d, nil
}

// FindItem returns the item with the given id.
func FindItem(d Day, itemID string) (Item, bool) {
	for _, it := range d.Items {
		if it.ItemID() == itemID {
			return it, true
		}
	}
	return nil, false
}
