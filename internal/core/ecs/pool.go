package ecs

// Slotted is implemented by pool items. The pool records the slot it hands
// out on the item so the item can later be untracked without a search.
type Slotted interface {
	comparable
	Slot() int
	SetSlot(slot int)
}

// Pool recycles arena slots through a LIFO free list.
// Accessed only from the game loop goroutine, no locks needed.
type Pool[T Slotted] struct {
	items Arena[T]
	free  Arena[int]
	live  int
}

func NewPool[T Slotted](capacity int) *Pool[T] {
	p := &Pool[T]{}
	p.init(capacity)
	return p
}

func (p *Pool[T]) init(capacity int) {
	p.items = Arena[T]{slots: make([]T, capacity)}
	p.free = Arena[int]{}
}

// Track stores item in the most recently freed slot, or appends it when the
// free list is empty, and returns the slot.
func (p *Pool[T]) Track(item T) int {
	idx, ok := p.free.Pop()
	if ok {
		p.items.Set(idx, item)
	} else {
		idx = p.items.Push(item)
	}
	item.SetSlot(idx)
	p.live++
	return idx
}

// Untrack vacates item's slot. It is a no-op when the slot no longer holds
// item (already untracked, or the pool was cleared).
func (p *Pool[T]) Untrack(item T) {
	var zero T
	if item == zero || p.items.Get(item.Slot()) != item {
		return
	}
	p.Release(item.Slot())
}

// Release vacates a slot by index and pushes it on the free list.
// Returns false if the slot was out of range or already vacant.
func (p *Pool[T]) Release(slot int) bool {
	var zero T
	if p.items.Get(slot) == zero {
		return false
	}
	p.items.Set(slot, zero)
	p.free.Push(slot)
	p.live--
	return true
}

// Get returns the item in slot, or the zero value for a vacant slot.
func (p *Pool[T]) Get(slot int) T {
	return p.items.Get(slot)
}

// Len returns the slot high-water mark.
func (p *Pool[T]) Len() int { return p.items.Len() }

// Live returns the number of occupied slots.
func (p *Pool[T]) Live() int { return p.live }

// Each calls fn for every occupied slot in [0, Len) where Len is read once
// up front: items tracked during the walk into new slots are not visited,
// and slots vacated during the walk are skipped.
func (p *Pool[T]) Each(fn func(slot int, item T)) {
	var zero T
	for i, n := 0, p.items.Len(); i < n; i++ {
		if item := p.items.Get(i); item != zero {
			fn(i, item)
		}
	}
}

// Clear vacates every slot and drops the free list.
func (p *Pool[T]) Clear() {
	p.items.Clear()
	p.free.Clear()
	p.live = 0
}
