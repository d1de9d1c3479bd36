package model

import (
	"fmt"
	"iter"
)

// IndexError reports an index outside the list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("index %d out of bounds: list is empty", e.Index)
	}
	return fmt.Sprintf("index %d out of bounds: range 0-%d", e.Index, e.Len-1)
}

// List is an ordered, position-addressed collection of items.
// Removing an item shifts every later item down by one, so indices
// are only meaningful until the next removal.
type List struct {
	items []Item
}

func NewList(items ...Item) *List {
	return &List{items: append([]Item(nil), items...)}
}

func (l *List) Len() int { return len(l.items) }

// Add appends it at the end.
func (l *List) Add(it Item) { l.items = append(l.items, it) }

// Remove deletes the item at i and reports whether it existed.
func (l *List) Remove(i int) bool {
	if !l.valid(i) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Get returns a pointer for in-place mutation. Do not keep it across a Remove.
func (l *List) Get(i int) (*Item, bool) {
	if !l.valid(i) {
		return nil, false
	}
	return &l.items[i], true
}

// At returns a copy of the item at i.
func (l *List) At(i int) (Item, bool) {
	if !l.valid(i) {
		return Item{}, false
	}
	return l.items[i], true
}

// Update applies fn to the item at i, or returns an *IndexError.
func (l *List) Update(i int, fn func(*Item)) error {
	it, ok := l.Get(i)
	if !ok {
		return &IndexError{Index: i, Len: len(l.items)}
	}
	fn(it)
	return nil
}

// Retain keeps only the items for which keep returns true, in order.
// It returns how many were dropped.
func (l *List) Retain(keep func(Item) bool) int {
	kept := l.items[:0]
	for _, it := range l.items {
		if keep(it) {
			kept = append(kept, it)
		}
	}
	dropped := len(l.items) - len(kept)
	clear(l.items[len(kept):])
	l.items = kept
	return dropped
}

// All yields (position, item) pairs in current order.
func (l *List) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for i, it := range l.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Items returns a copy of the underlying slice.
func (l *List) Items() []Item {
	return append([]Item(nil), l.items...)
}

// Count returns how many items currently have status s.
func (l *List) Count(s Status) int {
	n := 0
	for _, it := range l.items {
		if it.Status() == s {
			n++
		}
	}
	return n
}

// Completion is the mean progress over all items, 0 for an empty list.
func (l *List) Completion() float64 {
	if len(l.items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range l.items {
		sum += it.progress.v
	}
	return sum / float64(len(l.items))
}

func (l *List) valid(i int) bool { return i >= 0 && i < len(l.items) }
