package tree

import (
	"github.com/Congllspkt/xtreemap/lib/infra"
)

var (
	_ EntryIterator[uint8, struct{}] = (*xTreeMapIterator[uint8, struct{}])(nil)
)

// xTreeMapIterator walks the backing tree lazily through pred/succ
// links, so it mutates nothing and costs O(log n) amortized per step.
// It snapshots the tree's structural version at creation; Next fails
// with ErrXTreeMapConcurrentModified once the versions diverge. The
// check is per-step and best effort.
type xTreeMapIterator[K infra.OrderedKey, V any] struct {
	tree    *rbTree[K, V]
	next    *rbNode[K, V]
	cursor  *rbNode[K, V]
	stop    keyBound[K]
	version uint64
	isDesc  bool
}

func newTreeMapIterator[K infra.OrderedKey, V any](
	tree *rbTree[K, V],
	isDesc bool,
	start *rbNode[K, V],
	stop keyBound[K],
) EntryIterator[K, V] {
	return &xTreeMapIterator[K, V]{
		tree:    tree,
		next:    start,
		stop:    stop,
		version: tree.version,
		isDesc:  isDesc,
	}
}

func (it *xTreeMapIterator[K, V]) withinStop(key K) bool {
	if !it.stop.bounded {
		return true
	}
	res := it.tree.kcmp(key, it.stop.key)
	if it.isDesc {
		return res > 0 || (res == 0 && it.stop.inclusive)
	}
	return res < 0 || (res == 0 && it.stop.inclusive)
}

func (it *xTreeMapIterator[K, V]) Next() (bool, error) {
	if it.version != it.tree.version {
		return false, infra.WrapErrorStackWithMessage(ErrXTreeMapConcurrentModified, "stale iterator step")
	}
	if it.next == nil || !it.withinStop(it.next.key) {
		it.next = nil
		return false, nil
	}

	it.cursor = it.next
	if it.isDesc {
		it.next = it.next.pred()
	} else {
		it.next = it.next.succ()
	}
	return true, nil
}

// Key is only valid after a Next call that returned true.
func (it *xTreeMapIterator[K, V]) Key() K {
	if it.cursor == nil {
		panic("[x-tree-map] iterator accessed before the first step")
	}
	return it.cursor.key
}

// Val is only valid after a Next call that returned true.
func (it *xTreeMapIterator[K, V]) Val() V {
	if it.cursor == nil {
		panic("[x-tree-map] iterator accessed before the first step")
	}
	return it.cursor.val
}
