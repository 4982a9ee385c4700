package editor

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotInList is returned when removing an item the list does not hold.
var ErrNotInList = errors.New("editor: item not in list")

// Keyed is an item identified by a numeric key.
type Keyed interface {
	Key() int64
}

// RelationList is the related items shown on a detail view, e.g. the
// people of a company. Items are identified by Key.
type RelationList[T Keyed] struct {
	mu       sync.Mutex
	items    []T
	adding   map[int64]bool
	removing map[int64]bool
}

// NewRelationList creates a list holding a copy of items.
func NewRelationList[T Keyed](items []T) *RelationList[T] {
	return &RelationList[T]{items: slices.Clone(items), adding: map[int64]bool{}, removing: map[int64]bool{}}
}

// Items returns a snapshot of the list.
func (l *RelationList[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

func (l *RelationList[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *RelationList[T]) Contains(key int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indexOf(key) >= 0
}

func (l *RelationList[T]) indexOf(key int64) int {
	return slices.IndexFunc(l.items, func(it T) bool { return it.Key() == key })
}

// Add appends item unless an item with the same key is present. It
// reports whether the list changed.
func (l *RelationList[T]) Add(item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexOf(item.Key()) >= 0 {
		return false
	}
	l.items = append(l.items, item)
	return true
}

// Attach marks item's key in flight, runs commit and appends the item on
// success. An item already present is a no-op: commit is not called and
// added is false. A second Attach of the same key while the first is in
// flight returns ErrBusy.
func (l *RelationList[T]) Attach(ctx context.Context, item T, commit func(context.Context, T) error) (added bool, err error) {
	key := item.Key()
	l.mu.Lock()
	if l.indexOf(key) >= 0 {
		l.mu.Unlock()
		return false, nil
	}
	if l.adding[key] {
		l.mu.Unlock()
		return false, ErrBusy
	}
	l.adding[key] = true
	l.mu.Unlock()

	err = commit(ctx, item)

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.adding, key)
	if err != nil {
		return false, err
	}
	if l.indexOf(key) >= 0 {
		return false, nil
	}
	l.items = append(l.items, item)
	return true, nil
}

// Adding reports whether an Attach of key is in flight.
func (l *RelationList[T]) Adding(key int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.adding[key]
}

// Remove marks key in flight, runs commit and drops the item only when
// commit succeeds. On failure the item stays.
func (l *RelationList[T]) Remove(ctx context.Context, key int64, commit func(context.Context, T) error) error {
	l.mu.Lock()
	i := l.indexOf(key)
	if i < 0 {
		l.mu.Unlock()
		return ErrNotInList
	}
	if l.removing[key] {
		l.mu.Unlock()
		return ErrBusy
	}
	item := l.items[i]
	l.removing[key] = true
	l.mu.Unlock()

	err := commit(ctx, item)

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.removing, key)
	if err != nil {
		return err
	}
	l.items = slices.DeleteFunc(l.items, func(it T) bool { return it.Key() == key })
	return nil
}

// Removing reports whether a removal of key is in flight.
func (l *RelationList[T]) Removing(key int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removing[key]
}

// Replace swaps the whole list, e.g. with the server's copy after a save.
func (l *RelationList[T]) Replace(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = slices.Clone(items)
}
