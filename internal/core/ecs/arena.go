package ecs

const minArenaCap = 8

// Arena is a growable indexed slot container. Len is the high-water mark of
// pushed slots, not the number of occupied ones: vacant slots hold the zero
// value and keep their index.
type Arena[T any] struct {
	slots  []T
	length int
}

func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{slots: make([]T, capacity)}
}

func (a *Arena[T]) Len() int { return a.length }
func (a *Arena[T]) Cap() int { return len(a.slots) }

// Get returns the value at i, or the zero value when i is outside [0, Len).
func (a *Arena[T]) Get(i int) T {
	if i < 0 || i >= a.length {
		var zero T
		return zero
	}
	return a.slots[i]
}

// Set overwrites slot i. Indices outside [0, Len) are ignored.
func (a *Arena[T]) Set(i int, v T) {
	if i < 0 || i >= a.length {
		return
	}
	a.slots[i] = v
}

// Push appends v and returns its index. A full arena grows to at least
// double its capacity; existing indices are preserved.
func (a *Arena[T]) Push(v T) int {
	if a.length == len(a.slots) {
		grown := make([]T, max(2*len(a.slots), minArenaCap))
		copy(grown, a.slots)
		a.slots = grown
	}
	a.slots[a.length] = v
	a.length++
	return a.length - 1
}

// Pop removes and returns the last slot. ok is false on an empty arena.
func (a *Arena[T]) Pop() (v T, ok bool) {
	if a.length == 0 {
		return v, false
	}
	a.length--
	v = a.slots[a.length]
	var zero T
	a.slots[a.length] = zero
	return v, true
}

// Clear zeroes every pushed slot and resets Len. Capacity is kept.
func (a *Arena[T]) Clear() {
	clear(a.slots[:a.length])
	a.length = 0
}
