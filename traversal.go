package lfqueue

// position is an insertion point: pred is the live node to splice after and
// cur the node to splice before.
type position[E any] struct {
	pred *node[E]
	cur  *node[E]
}

// find walks from head to the first node that is either tail or holds an
// element item is strictly less than. Marked nodes met on the way are
// unlinked; losing such a CAS restarts the walk from head.
func (q *Queue[E]) find(item E) position[E] {
retry:
	for {
		pred := q.head
		cur, _ := pred.next()
		for {
			succ, deleted := cur.next()
			if deleted {
				if !pred.casNext(cur, succ) {
					continue retry
				}
				q.metrics.IncUnlink()
				cur = succ
				continue
			}
			if cur == q.tail || q.less(item, cur.item) {
				return position[E]{pred: pred, cur: cur}
			}
			pred, cur = cur, succ
		}
	}
}

// first returns the first live node after head, or tail when there is none.
// Marked nodes in front of it are unlinked on a best-effort basis.
func (q *Queue[E]) first() *node[E] {
	for {
		top, _ := q.head.next()
		succ, deleted := top.next()
		if !deleted {
			return top
		}
		if q.head.casNext(top, succ) {
			q.metrics.IncUnlink()
		}
	}
}
