// Package editor implements inline editing with optimistic display: a
// per-field state machine and a list of related items whose removal is
// confirmed by the server before the item disappears.
package editor

import (
	"context"
	"errors"
	"sync"
)

// State is the phase of an editable field.
type State int

const (
	Viewing State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return "viewing"
}

var (
	// ErrNotEditing is returned when Submit is called outside Editing.
	ErrNotEditing = errors.New("editor: field is not being edited")
	// ErrBusy is returned while a commit for the same target is in flight.
	ErrBusy = errors.New("editor: commit in flight")
)

// Commit persists value and returns the value the server confirmed.
type Commit[T any] func(ctx context.Context, value T) (T, error)

// Field is one editable value.
//
//	Viewing --Begin--> Editing --Submit--> Submitting --> Viewing
//	Editing --Cancel--> Viewing
//
// The confirmed value only changes on a successful commit. A failed commit
// resets the buffer to the confirmed value.
type Field[T any] struct {
	mu        sync.Mutex
	name      string
	confirmed T
	buffer    T
	state     State
}

// NewField creates a field in Viewing holding value.
func NewField[T any](name string, value T) *Field[T] {
	return &Field[T]{name: name, confirmed: value, buffer: value}
}

func (f *Field[T]) Name() string { return f.name }

func (f *Field[T]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Value returns the last server-confirmed value.
func (f *Field[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmed
}

// Buffer returns the value being edited.
func (f *Field[T]) Buffer() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buffer
}

// Shown is what the UI displays: the buffer while editing or submitting,
// the confirmed value otherwise.
func (f *Field[T]) Shown() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Viewing {
		return f.confirmed
	}
	return f.buffer
}

// Begin enters Editing with the buffer set to the confirmed value. It
// reports false when the field is not in Viewing.
func (f *Field[T]) Begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Viewing {
		return false
	}
	f.buffer = f.confirmed
	f.state = Editing
	return true
}

// Set replaces the buffer. Only allowed while Editing.
func (f *Field[T]) Set(v T) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Editing {
		return false
	}
	f.buffer = v
	return true
}

// Cancel leaves Editing and discards the buffer.
func (f *Field[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Editing {
		return
	}
	f.buffer = f.confirmed
	f.state = Viewing
}

// Submit commits the buffer. The lock is not held while commit runs.
func (f *Field[T]) Submit(ctx context.Context, commit Commit[T]) error {
	f.mu.Lock()
	if f.state != Editing {
		st := f.state
		f.mu.Unlock()
		if st == Submitting {
			return ErrBusy
		}
		return ErrNotEditing
	}
	f.state = Submitting
	value := f.buffer
	f.mu.Unlock()

	saved, err := commit(ctx, value)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		f.confirmed = saved
	}
	f.buffer = f.confirmed
	f.state = Viewing
	return err
}

// Reset overwrites the confirmed value, e.g. after a reload. Ignored while
// a commit is in flight.
func (f *Field[T]) Reset(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Submitting {
		return
	}
	f.confirmed = v
	f.buffer = v
	f.state = Viewing
}
