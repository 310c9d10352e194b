package tree

import (
	"github.com/Congllspkt/xtreemap/lib/infra"
)

// Balanced bulk-load from entries already sorted ascending under the
// active comparator. The midpoint split yields a complete tree whose
// full levels are all black; only the nodes on the deepest, possibly
// incomplete level are painted red, which keeps the black depth uniform
// across every path. O(n), no rebalance pass needed.

// redLevelOf computes the zero-based level (root = 0) of the deepest
// node in a midpoint-split tree of the given size. A complete tree of
// 2^h-1 nodes has no incomplete level and the result lands one past its
// bottom, which is harmless: no node lives there.
func redLevelOf(size int) int {
	level := 0
	for m := size - 1; m >= 0; m = m/2 - 1 {
		level++
	}
	return level
}

func (tree *rbTree[K, V]) bulkLoadSorted(entries []Entry[K, V]) {
	tree.root = buildSortedSpan(0, 0, len(entries)-1, redLevelOf(len(entries)), entries)
	tree.count = int64(len(entries))
	tree.version++
}

func buildSortedSpan[K infra.OrderedKey, V any](level, lo, hi, redLevel int, entries []Entry[K, V]) *rbNode[K, V] {
	if hi < lo {
		return nil
	}

	mid := int(uint(lo+hi) >> 1)
	node := &rbNode[K, V]{
		key: entries[mid].Key,
		val: entries[mid].Val,
	}
	if level == redLevel {
		node.color = Red
	}

	node.left = buildSortedSpan(level+1, lo, mid-1, redLevel, entries)
	node.right = buildSortedSpan(level+1, mid+1, hi, redLevel, entries)
	node.fixLink()
	return node
}
