package tree

// Nearest-key navigation over the rbtree core. Every walk is a plain
// comparator descent that records the best candidate seen so far, so
// all of them are O(log n) and mutation free.

func (tree *rbTree[K, V]) minimumNode() *rbNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root.minimum()
}

func (tree *rbTree[K, V]) maximumNode() *rbNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root.maximum()
}

// floorNode loads the node with the greatest key <= key.
func (tree *rbTree[K, V]) floorNode(key K) *rbNode[K, V] {
	var candidate *rbNode[K, V]
	for aux := tree.root; aux != nil; {
		res := tree.kcmp(key, aux.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			candidate = aux
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return candidate
}

// ceilingNode loads the node with the least key >= key.
func (tree *rbTree[K, V]) ceilingNode(key K) *rbNode[K, V] {
	var candidate *rbNode[K, V]
	for aux := tree.root; aux != nil; {
		res := tree.kcmp(key, aux.key)
		if res == 0 {
			return aux
		} else if res < 0 {
			candidate = aux
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return candidate
}

// lowerNode loads the node with the greatest key < key. An exact match
// is never recorded.
func (tree *rbTree[K, V]) lowerNode(key K) *rbNode[K, V] {
	var candidate *rbNode[K, V]
	for aux := tree.root; aux != nil; {
		if tree.kcmp(key, aux.key) > 0 {
			candidate = aux
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return candidate
}

// higherNode loads the node with the least key > key. An exact match
// is never recorded.
func (tree *rbTree[K, V]) higherNode(key K) *rbNode[K, V] {
	var candidate *rbNode[K, V]
	for aux := tree.root; aux != nil; {
		if tree.kcmp(key, aux.key) < 0 {
			candidate = aux
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return candidate
}
