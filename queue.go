// Package lfqueue provides an unbounded lock-free priority queue backed by a
// sorted singly linked list.
//
// Elements are kept in non-decreasing order. Offer splices a node in with a
// single CAS on its predecessor's link; Poll removes the minimum by marking
// the first live node deleted and then unlinking it on a best-effort basis.
// Any goroutine that meets a marked node helps unlink it. No operation takes
// a lock.
package lfqueue

import (
	"cmp"
	"math"
	"reflect"
)

// Less reports whether a must be ordered before b.
type Less[E any] func(a, b E) bool

// Queue is a concurrent priority queue that always yields its smallest
// element first. Equal elements are yielded in insertion order.
// The zero value is not usable; construct with New or NewFunc.
type Queue[E any] struct {
	less    Less[E]
	head    *node[E]
	tail    *node[E]
	nilable bool
	metrics *Metrics
}

// New returns an empty queue ordered by the < operator.
func New[E cmp.Ordered]() *Queue[E] {
	return NewFunc[E](cmp.Less[E])
}

// NewFunc returns an empty queue ordered by less.
func NewFunc[E any](less Less[E]) *Queue[E] {
	if less == nil {
		panic("lfqueue: nil less function")
	}
	head, tail := newSentinels[E]()
	return &Queue[E]{
		less:    less,
		head:    head,
		tail:    tail,
		nilable: nilable[E](),
		metrics: newMetrics(newXorshift()),
	}
}

// Offer inserts e behind every element not greater than it. It returns false
// only when e is a nil pointer, interface, map, slice, channel or function,
// in which case the queue is left untouched.
func (q *Queue[E]) Offer(e E) bool {
	if q.nilable && isNil(e) {
		return false
	}

	n := newNode(e)
	for {
		pos := q.find(e)
		n.setNext(pos.cur)

		if offerBeforeLinkHook != nil {
			offerBeforeLinkHook(pos.pred, pos.cur)
		}

		if pos.pred.casNext(pos.cur, n) {
			q.metrics.IncOffer()
			return true
		}
		q.metrics.IncOfferCASRetry()
	}
}

// Poll removes and returns the smallest element. The boolean is false if the
// queue was empty.
func (q *Queue[E]) Poll() (E, bool) {
	for {
		top := q.first()
		if top == q.tail {
			var zero E
			return zero, false
		}

		// Whoever marks top owns its element.
		if !top.markDeleted() {
			q.metrics.IncPollCASRetry()
			continue
		}

		if pollAfterMarkHook != nil {
			pollAfterMarkHook(top)
		}

		succ, _ := top.next()
		if q.head.casNext(top, succ) {
			q.metrics.IncUnlink()
		}
		q.metrics.IncPoll()
		return top.item, true
	}
}

// Peek returns the smallest element without removing it. The boolean is
// false if the queue was empty.
func (q *Queue[E]) Peek() (E, bool) {
	top := q.first()
	if top == q.tail {
		var zero E
		return zero, false
	}
	return top.item, true
}

// IsEmpty reports whether the queue holds no live element.
func (q *Queue[E]) IsEmpty() bool {
	return q.first() == q.tail
}

// Len counts the live elements with a full traversal.
//
// Under concurrent mutation the result is an approximation: nodes are
// counted as they are visited, so it may include elements already polled or
// miss ones offered behind the cursor. The count saturates at math.MaxInt.
func (q *Queue[E]) Len() int {
	count := 0
	cur, _ := q.head.next()
	for cur != q.tail {
		succ, deleted := cur.next()
		if !deleted {
			if count == math.MaxInt {
				return count
			}
			count++
		}
		cur = succ
	}
	return count
}

// Drain polls until the queue is observed empty and returns the elements in
// the order they were removed.
func (q *Queue[E]) Drain() []E {
	var out []E
	for {
		e, ok := q.Poll()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

// Stats returns a snapshot of the contention counters.
func (q *Queue[E]) Stats() Stats {
	return q.metrics.Snapshot()
}

func nilable[E any]() bool {
	switch reflect.TypeFor[E]().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	}
	return false
}

func isNil[E any](e E) bool {
	v := any(e)
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
