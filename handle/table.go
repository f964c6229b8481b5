// Package handle maps Go values to opaque handles which can be given away to
// code that must not hold Go pointers (layout engine break records, visuals).
// Every slot carries a generation, releasing a handle bumps it, so stale
// handles are detected instead of silently aliasing a reused slot.
package handle

import "fmt"

// Handle is index plus generation. Zero value is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the "no handle" value.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%d:%d)", h.index, h.gen)
}

type slot[T any] struct {
	value T
	gen   uint32
	used  bool
}

// Table is a generation checked slot table. It is not safe for concurrent use.
type Table[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Alloc stores v and returns its handle.
func (t *Table[T]) Alloc(v T) Handle {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot[T]{})
	}
	s := &t.slots[idx]
	s.gen++
	if s.gen == 0 {
		// wrapped around, zero generation is reserved for "no handle"
		s.gen = 1
	}
	s.value, s.used = v, true
	t.live++
	return Handle{index: idx, gen: s.gen}
}

// Get returns value for the handle, false if handle is zero or stale.
func (t *Table[T]) Get(h Handle) (T, bool) {
	if s := t.lookup(h); s != nil {
		return s.value, true
	}
	var zero T
	return zero, false
}

// MustGet is Get for callers holding handles they own; stale handle there is
// a logic error.
func (t *Table[T]) MustGet(h Handle) T {
	s := t.lookup(h)
	if s == nil {
		panic(fmt.Sprintf("stale or foreign %s", h))
	}
	return s.value
}

// Set replaces value stored for live handle.
func (t *Table[T]) Set(h Handle, v T) bool {
	if s := t.lookup(h); s != nil {
		s.value = v
		return true
	}
	return false
}

// Release frees the slot. Releasing zero or already released handle is a
// no-op and returns false.
func (t *Table[T]) Release(h Handle) bool {
	s := t.lookup(h)
	if s == nil {
		return false
	}
	var zero T
	s.value, s.used = zero, false
	// bump generation right away so any copy of h becomes stale
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	t.free = append(t.free, h.index)
	t.live--
	return true
}

// Len returns number of live handles.
func (t *Table[T]) Len() int {
	return t.live
}

// Each calls fn for every live handle in slot order.
func (t *Table[T]) Each(fn func(Handle, T)) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.used {
			fn(Handle{index: uint32(i), gen: s.gen}, s.value)
		}
	}
}

func (t *Table[T]) lookup(h Handle) *slot[T] {
	if h.IsZero() || int(h.index) >= len(t.slots) {
		return nil
	}
	s := &t.slots[h.index]
	if !s.used || s.gen != h.gen {
		return nil
	}
	return s
}
