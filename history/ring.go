// Package history provides a fixed capacity ring buffer used to keep a
// bounded window of the most recent per-frame samples.
package history

// Ring is a fixed capacity FIFO buffer.  Pushing onto a full ring evicts the
// oldest entry.  Iteration order is insertion order, oldest first.
type Ring[T any] struct {
	// buf is the backing storage of length equal to capacity
	buf []T
	// head is the index of the oldest entry
	head int
	// size is the number of valid entries
	size int
}

// NewRing returns a ring holding at most capacity entries.  A capacity below
// 1 is raised to 1
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Ring[T]{
		buf: make([]T, capacity),
	}
}

// Push appends v, evicting the oldest entry when the ring is full
func (r *Ring[T]) Push(v T) {

	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = v
		r.size++
		return
	}

	// full, overwrite oldest and advance head
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

// Len returns the number of entries held
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the maximum number of entries held
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// At returns the i'th entry where 0 is the oldest.  It panics if i is out
// of range
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic("history: index out of range")
	}

	return r.buf[(r.head+i)%len(r.buf)]
}

// Last returns the newest entry, or false if the ring is empty
func (r *Ring[T]) Last() (T, bool) {
	var zero T

	if r.size == 0 {
		return zero, false
	}

	return r.At(r.size - 1), true
}

// Values returns a copy of the entries, oldest first
func (r *Ring[T]) Values() []T {
	out := make([]T, r.size)

	for i := range out {
		out[i] = r.At(i)
	}

	return out
}

// Reset clears all entries keeping the capacity
func (r *Ring[T]) Reset() {
	var zero T

	for i := range r.buf {
		r.buf[i] = zero
	}

	r.head = 0
	r.size = 0
}

// Clone returns an independent copy of the ring
func (r *Ring[T]) Clone() *Ring[T] {
	cp := &Ring[T]{
		buf:  make([]T, len(r.buf)),
		head: r.head,
		size: r.size,
	}

	copy(cp.buf, r.buf)

	return cp
}
