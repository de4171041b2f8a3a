package lfqueue

import "sync/atomic"

// link is the compound (next, deleted) state of a node. Records are never
// mutated after publication; every change swaps in a fresh record, so the
// reference and the mark always move together.
type link[E any] struct {
	next    *node[E]
	deleted bool
}

// node holds an element and the atomically replaced link to its successor.
type node[E any] struct {
	item  E
	state atomic.Pointer[link[E]]
}

func newNode[E any](item E) *node[E] {
	return &node[E]{item: item}
}

// newSentinels returns head and tail with head -> tail and tail -> tail.
func newSentinels[E any]() (*node[E], *node[E]) {
	head := &node[E]{}
	tail := &node[E]{}
	head.setNext(tail)
	tail.setNext(tail)
	return head, tail
}

// next returns the successor and the deletion mark, read as one unit.
func (n *node[E]) next() (*node[E], bool) {
	l := n.state.Load()
	return l.next, l.deleted
}

func (n *node[E]) isDeleted() bool {
	return n.state.Load().deleted
}

// setNext is a plain store. Only valid while n is unreachable from head.
func (n *node[E]) setNext(succ *node[E]) {
	n.state.Store(&link[E]{next: succ})
}

// casNext swings n's successor from expected to update. It fails if n is
// marked or if its successor is no longer expected.
func (n *node[E]) casNext(expected, update *node[E]) bool {
	cur := n.state.Load()
	if cur.deleted || cur.next != expected {
		return false
	}
	return n.state.CompareAndSwap(cur, &link[E]{next: update})
}

// markDeleted flips the mark from false to true keeping the successor. It
// fails if another goroutine marked n first or the successor changed under us.
func (n *node[E]) markDeleted() bool {
	cur := n.state.Load()
	if cur.deleted {
		return false
	}
	return n.state.CompareAndSwap(cur, &link[E]{next: cur.next, deleted: true})
}
