package lfqueue

import "iter"

// Iterator is a forward-only, weakly consistent cursor over the queue.
//
// It follows links without skipping nodes that were polled but not yet
// unlinked; Deleted reports whether the current node was marked when it was
// visited. The iterator never fails on concurrent changes and never mutates
// the queue, but the sequence it yields may not match any single instant.
type Iterator[E any] struct {
	q       *Queue[E]
	current *node[E]
	value   E
	deleted bool
	valid   bool
	done    bool
}

// Iterator returns a new iterator positioned before the first element.
func (q *Queue[E]) Iterator() *Iterator[E] {
	return &Iterator[E]{q: q, current: q.head}
}

// Valid reports whether the iterator currently points at an element.
func (it *Iterator[E]) Valid() bool {
	if it == nil {
		return false
	}
	return it.valid
}

// Value returns the element at the iterator's current position.
// It should only be called when Valid reports true.
func (it *Iterator[E]) Value() E {
	var zero E
	if it == nil || !it.valid {
		return zero
	}
	return it.value
}

// Deleted reports whether the current element had already been polled when
// the iterator reached it.
func (it *Iterator[E]) Deleted() bool {
	if it == nil || !it.valid {
		return false
	}
	return it.deleted
}

// Next advances to the following node and reports whether there was one.
// Once it returns false it keeps returning false.
func (it *Iterator[E]) Next() bool {
	if it == nil || it.q == nil || it.done {
		return false
	}

	succ, _ := it.current.next()
	if succ == it.q.tail {
		it.invalidate()
		return false
	}

	_, deleted := succ.next()
	it.current = succ
	it.value = succ.item
	it.deleted = deleted
	it.valid = true
	return true
}

func (it *Iterator[E]) invalidate() {
	var zero E
	it.current = nil
	it.value = zero
	it.deleted = false
	it.valid = false
	it.done = true
}

// All returns a lazy sequence of the elements that were live when visited.
// Each range over it starts again from the front of the queue.
func (q *Queue[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		it := q.Iterator()
		for it.Next() {
			if it.Deleted() {
				continue
			}
			if !yield(it.Value()) {
				return
			}
		}
	}
}
