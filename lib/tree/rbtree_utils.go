package tree

import (
	"errors"

	"github.com/Congllspkt/xtreemap/lib/infra"
)

// rbtree rule validation utilities, used by the test suites after every
// mutation batch.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func blackDepthTo[K infra.OrderedKey, V any](target, to *rbNode[K, V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.parent {
		if aux.isBlack() {
			depth++
		}
	}
	return depth
}

// In-order traversal to validate that no red node has a red parent or a
// red child.
func redViolationValidate[K infra.OrderedKey, V any](tree *rbTree[K, V]) error {
	size := tree.count
	aux := tree.root
	if size <= 0 || aux == nil {
		return nil
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; aux.isRed() {
			if (!aux.parent.isRoot() && aux.parent.isRed()) ||
				(aux.left.isRed() || aux.right.isRed()) {
				return errors.New("rbtree red violation")
			}
		}

		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
	return nil
}

// BFS traversal to load the nodes adjacent to at least one nil leaf.
func bfsLeaves[K infra.OrderedKey, V any](tree *rbTree[K, V]) []*rbNode[K, V] {
	size := tree.count
	aux := tree.root
	if size <= 0 || aux.isNilLeaf() {
		return nil
	}

	leaves := make([]*rbNode[K, V], 0, size>>1+1)
	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)

	for len(stack) > 0 {
		aux = stack[0]
		l, r := aux.left, aux.right
		if /* nil leaves, keep one */ l.isNilLeaf() || r.isNilLeaf() {
			leaves = append(leaves, aux)
		}
		if !l.isNilLeaf() {
			stack = append(stack, l)
		}
		if !r.isNilLeaf() {
			stack = append(stack, r)
		}
		stack = stack[1:]
	}
	return leaves
}

// Every path from the root to a nil leaf must pass through the same
// number of black nodes.
func blackViolationValidate[K infra.OrderedKey, V any](tree *rbTree[K, V]) error {
	leaves := bfsLeaves(tree)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo(leaves[0], tree.root)
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo(leaves[i], tree.root) != blackDepth {
			return errors.New("rbtree black violation")
		}
	}
	return nil
}

// In-order traversal must yield strictly increasing keys under the
// active comparator, and exactly count of them.
func bstOrderValidate[K infra.OrderedKey, V any](tree *rbTree[K, V]) error {
	var (
		err     error
		visited int64
		prevKey K
	)
	tree.foreach(func(idx int64, key K, val V) bool {
		visited++
		if idx > 0 && tree.kcmp(prevKey, key) >= 0 {
			err = errors.New("rbtree bst order violation")
			return false
		}
		prevKey = key
		return true
	})
	if err != nil {
		return err
	}
	if visited != tree.count {
		return errors.New("rbtree size violation")
	}
	return nil
}
