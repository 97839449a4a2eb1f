package ecs

// Dispatchable is a pool item whose activation is staged: it is tracked
// first, and only becomes live when the queue (or its owner) dispatches it.
type Dispatchable interface {
	Slotted
	// Dispatch runs the item's one-time activation.
	Dispatch()
	// Reject forces the item's next Dispatch to fail its dependency gate.
	Reject()
}

// Retirer receives slots of destroyed items for release on the next
// housekeeping pass.
type Retirer interface {
	Retire(slot int)
}

// DispatchQueue is a Pool with a cursor separating tracked-but-inert entries
// from entries already handed to activation. Slots of destroyed entries are
// not released immediately: Retire queues them and Flush, called once per
// tick after every update pass, returns them to the free list. This keeps
// a slot from being reallocated while a walk over the pool is in progress.
type DispatchQueue[T Dispatchable] struct {
	Pool[T]
	cursor  int
	retired []int
}

func NewDispatchQueue[T Dispatchable](capacity int) *DispatchQueue[T] {
	q := &DispatchQueue[T]{retired: make([]int, 0, 64)}
	q.init(capacity)
	return q
}

// Cursor returns the index of the first entry not yet dispatched.
func (q *DispatchQueue[T]) Cursor() int { return q.cursor }

// Pending returns the number of entries between the cursor and Len.
func (q *DispatchQueue[T]) Pending() int { return q.Len() - q.cursor }

// Dispatch activates the next count entries and returns how many were
// present. Vacant slots in the range are consumed without activation.
func (q *DispatchQueue[T]) Dispatch(count int) int {
	return q.advance(count, false)
}

// Seek moves the cursor past count entries without activating them.
func (q *DispatchQueue[T]) Seek(count int) {
	q.cursor = q.end(count)
}

// Ignore moves the cursor past count entries, rejecting each one before
// dispatching it so that it tears itself down instead of going live.
func (q *DispatchQueue[T]) Ignore(count int) int {
	return q.advance(count, true)
}

func (q *DispatchQueue[T]) advance(count int, reject bool) int {
	var zero T
	n := 0
	for end := q.end(count); q.cursor < end; q.cursor++ {
		item := q.Get(q.cursor)
		if item == zero {
			continue
		}
		if reject {
			item.Reject()
		}
		item.Dispatch()
		n++
	}
	return n
}

func (q *DispatchQueue[T]) end(count int) int {
	if count < 0 {
		count = 0
	}
	return min(q.cursor+count, q.Len())
}

// Retire queues slot for release by the next Flush.
func (q *DispatchQueue[T]) Retire(slot int) {
	q.retired = append(q.retired, slot)
}

// Flush releases every retired slot and returns how many were released.
func (q *DispatchQueue[T]) Flush() int {
	n := 0
	for _, slot := range q.retired {
		if q.Release(slot) {
			n++
		}
	}
	q.retired = q.retired[:0]
	return n
}

// Clear empties the pool, drops retired slots and rewinds the cursor.
func (q *DispatchQueue[T]) Clear() {
	q.Pool.Clear()
	q.retired = q.retired[:0]
	q.cursor = 0
}
