package tree

import (
	"io"

	"github.com/samber/lo"

	"github.com/Congllspkt/xtreemap/lib/infra"
)

// keyBound is one immutable edge of a view window. An unbounded edge
// matches every key.
type keyBound[K infra.OrderedKey] struct {
	key       K
	inclusive bool
	bounded   bool
}

var (
	_ TreeMap[uint8, struct{}] = (*xTreeMapView[uint8, struct{}])(nil)
)

// xTreeMapView is a live window over a backing xTreeMap. It owns no
// nodes: reads and writes delegate to the backing tree after the bound
// check, so a mutation through the view is immediately visible through
// the root container and any overlapping view, and vice versa.
type xTreeMapView[K infra.OrderedKey, V any] struct {
	backing *xTreeMap[K, V]
	from    keyBound[K]
	to      keyBound[K]
}

func newXTreeMapView[K infra.OrderedKey, V any](backing *xTreeMap[K, V], from, to keyBound[K]) (TreeMap[K, V], error) {
	if from.bounded && to.bounded && backing.tree.kcmp(from.key, to.key) > 0 {
		return nil, infra.WrapErrorStackWithMessage(ErrXTreeMapInvalidRange, "view construction rejected")
	}
	return &xTreeMapView[K, V]{
		backing: backing,
		from:    from,
		to:      to,
	}, nil
}

func (v *xTreeMapView[K, V]) aboveFrom(key K) bool {
	if !v.from.bounded {
		return true
	}
	res := v.backing.tree.kcmp(key, v.from.key)
	return res > 0 || (res == 0 && v.from.inclusive)
}

func (v *xTreeMapView[K, V]) belowTo(key K) bool {
	if !v.to.bounded {
		return true
	}
	res := v.backing.tree.kcmp(key, v.to.key)
	return res < 0 || (res == 0 && v.to.inclusive)
}

func (v *xTreeMapView[K, V]) inBound(key K) bool {
	return v.aboveFrom(key) && v.belowTo(key)
}

// firstNodeInBound loads the least in-bound node, nil when the window
// is empty.
func (v *xTreeMapView[K, V]) firstNodeInBound() *rbNode[K, V] {
	var node *rbNode[K, V]
	switch {
	case !v.from.bounded:
		node = v.backing.tree.minimumNode()
	case v.from.inclusive:
		node = v.backing.tree.ceilingNode(v.from.key)
	default:
		node = v.backing.tree.higherNode(v.from.key)
	}
	if node == nil || !v.belowTo(node.key) {
		return nil
	}
	return node
}

// lastNodeInBound loads the greatest in-bound node, nil when the window
// is empty.
func (v *xTreeMapView[K, V]) lastNodeInBound() *rbNode[K, V] {
	var node *rbNode[K, V]
	switch {
	case !v.to.bounded:
		node = v.backing.tree.maximumNode()
	case v.to.inclusive:
		node = v.backing.tree.floorNode(v.to.key)
	default:
		node = v.backing.tree.lowerNode(v.to.key)
	}
	if node == nil || !v.aboveFrom(node.key) {
		return nil
	}
	return node
}

// Len counts the in-bound entries, O(k) over the window width.
func (v *xTreeMapView[K, V]) Len() int64 {
	size := int64(0)
	v.Foreach(func(idx int64, key K, val V) bool {
		size++
		return true
	})
	return size
}

func (v *xTreeMapView[K, V]) IsEmpty() bool {
	return v.firstNodeInBound() == nil
}

func (v *xTreeMapView[K, V]) Put(key K, val V) (old V, replaced bool, err error) {
	if !v.inBound(key) {
		return old, false, infra.WrapErrorStackWithMessage(ErrXTreeMapKeyOutOfRange, "put through view rejected")
	}
	old, replaced = v.backing.tree.insert(key, val)
	return old, replaced, nil
}

func (v *xTreeMapView[K, V]) Get(key K) (V, bool) {
	var zero V
	if !v.inBound(key) {
		return zero, false
	}
	return v.backing.Get(key)
}

func (v *xTreeMapView[K, V]) ContainsKey(key K) bool {
	return v.inBound(key) && v.backing.ContainsKey(key)
}

func (v *xTreeMapView[K, V]) Remove(key K) (V, bool) {
	var zero V
	if !v.inBound(key) {
		return zero, false
	}
	return v.backing.tree.remove(key)
}

// Clear removes the in-bound entries only; the rest of the backing tree
// is kept.
func (v *xTreeMapView[K, V]) Clear() {
	keys := v.Keys()
	for _, key := range keys {
		v.backing.tree.remove(key)
	}
}

func (v *xTreeMapView[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	idx := int64(0)
	for node := v.firstNodeInBound(); node != nil && v.belowTo(node.key); node = node.succ() {
		if !action(idx, node.key, node.val) {
			return
		}
		idx++
	}
}

func (v *xTreeMapView[K, V]) ForeachDesc(action func(idx int64, key K, val V) bool) {
	idx := int64(0)
	for node := v.lastNodeInBound(); node != nil && v.aboveFrom(node.key); node = node.pred() {
		if !action(idx, node.key, node.val) {
			return
		}
		idx++
	}
}

func (v *xTreeMapView[K, V]) Iterator() EntryIterator[K, V] {
	return newTreeMapIterator(v.backing.tree, false, v.firstNodeInBound(), v.to)
}

func (v *xTreeMapView[K, V]) ReverseIterator() EntryIterator[K, V] {
	return newTreeMapIterator(v.backing.tree, true, v.lastNodeInBound(), v.from)
}

func (v *xTreeMapView[K, V]) Keys() []K {
	return lo.Map(v.Entries(), func(e Entry[K, V], _ int) K { return e.Key })
}

func (v *xTreeMapView[K, V]) Values() []V {
	return lo.Map(v.Entries(), func(e Entry[K, V], _ int) V { return e.Val })
}

func (v *xTreeMapView[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, 8)
	v.Foreach(func(idx int64, key K, val V) bool {
		entries = append(entries, Entry[K, V]{Key: key, Val: val})
		return true
	})
	return entries
}

func (v *xTreeMapView[K, V]) FirstKey() (K, error) {
	if node := v.firstNodeInBound(); node != nil {
		return node.key, nil
	}
	var zero K
	return zero, infra.WrapErrorStackWithMessage(ErrXTreeMapEmpty, "load first key of view")
}

func (v *xTreeMapView[K, V]) LastKey() (K, error) {
	if node := v.lastNodeInBound(); node != nil {
		return node.key, nil
	}
	var zero K
	return zero, infra.WrapErrorStackWithMessage(ErrXTreeMapEmpty, "load last key of view")
}

func (v *xTreeMapView[K, V]) FirstEntry() (Entry[K, V], bool) {
	return nodeToEntry(v.firstNodeInBound())
}

func (v *xTreeMapView[K, V]) LastEntry() (Entry[K, V], bool) {
	return nodeToEntry(v.lastNodeInBound())
}

// floorNodeInBound clamps a backing floor walk into the window: a
// candidate past the upper edge degrades to the window's last node, a
// candidate under the lower edge means absence.
func (v *xTreeMapView[K, V]) floorNodeInBound(node *rbNode[K, V]) *rbNode[K, V] {
	if node != nil && !v.belowTo(node.key) {
		node = v.lastNodeInBound()
	}
	if node == nil || !v.aboveFrom(node.key) {
		return nil
	}
	return node
}

// ceilingNodeInBound is the mirrored clamp for ceiling walks.
func (v *xTreeMapView[K, V]) ceilingNodeInBound(node *rbNode[K, V]) *rbNode[K, V] {
	if node != nil && !v.aboveFrom(node.key) {
		node = v.firstNodeInBound()
	}
	if node == nil || !v.belowTo(node.key) {
		return nil
	}
	return node
}

func (v *xTreeMapView[K, V]) Floor(key K) (K, bool) {
	return nodeToKey(v.floorNodeInBound(v.backing.tree.floorNode(key)))
}

func (v *xTreeMapView[K, V]) Ceiling(key K) (K, bool) {
	return nodeToKey(v.ceilingNodeInBound(v.backing.tree.ceilingNode(key)))
}

func (v *xTreeMapView[K, V]) Lower(key K) (K, bool) {
	return nodeToKey(v.floorNodeInBound(v.backing.tree.lowerNode(key)))
}

func (v *xTreeMapView[K, V]) Higher(key K) (K, bool) {
	return nodeToKey(v.ceilingNodeInBound(v.backing.tree.higherNode(key)))
}

func (v *xTreeMapView[K, V]) FloorEntry(key K) (Entry[K, V], bool) {
	return nodeToEntry(v.floorNodeInBound(v.backing.tree.floorNode(key)))
}

func (v *xTreeMapView[K, V]) CeilingEntry(key K) (Entry[K, V], bool) {
	return nodeToEntry(v.ceilingNodeInBound(v.backing.tree.ceilingNode(key)))
}

func (v *xTreeMapView[K, V]) LowerEntry(key K) (Entry[K, V], bool) {
	return nodeToEntry(v.floorNodeInBound(v.backing.tree.lowerNode(key)))
}

func (v *xTreeMapView[K, V]) HigherEntry(key K) (Entry[K, V], bool) {
	return nodeToEntry(v.ceilingNodeInBound(v.backing.tree.higherNode(key)))
}

// tightenFrom intersects a requested lower edge with the view's own.
func (v *xTreeMapView[K, V]) tightenFrom(from keyBound[K]) (keyBound[K], error) {
	if !from.bounded {
		return v.from, nil
	}
	if v.from.bounded {
		res := v.backing.tree.kcmp(from.key, v.from.key)
		if res < 0 || (res == 0 && from.inclusive && !v.from.inclusive) {
			return keyBound[K]{}, infra.WrapErrorStackWithMessage(ErrXTreeMapInvalidRange, "sub-view from key escapes the view range")
		}
	}
	if v.to.bounded {
		res := v.backing.tree.kcmp(from.key, v.to.key)
		if res > 0 || (res == 0 && from.inclusive && !v.to.inclusive) {
			return keyBound[K]{}, infra.WrapErrorStackWithMessage(ErrXTreeMapInvalidRange, "sub-view from key escapes the view range")
		}
	}
	return from, nil
}

// tightenTo intersects a requested upper edge with the view's own.
func (v *xTreeMapView[K, V]) tightenTo(to keyBound[K]) (keyBound[K], error) {
	if !to.bounded {
		return v.to, nil
	}
	if v.to.bounded {
		res := v.backing.tree.kcmp(to.key, v.to.key)
		if res > 0 || (res == 0 && to.inclusive && !v.to.inclusive) {
			return keyBound[K]{}, infra.WrapErrorStackWithMessage(ErrXTreeMapInvalidRange, "sub-view to key escapes the view range")
		}
	}
	if v.from.bounded {
		res := v.backing.tree.kcmp(to.key, v.from.key)
		if res < 0 || (res == 0 && to.inclusive && !v.from.inclusive) {
			return keyBound[K]{}, infra.WrapErrorStackWithMessage(ErrXTreeMapInvalidRange, "sub-view to key escapes the view range")
		}
	}
	return to, nil
}

func (v *xTreeMapView[K, V]) subView(from, to keyBound[K]) (TreeMap[K, V], error) {
	mergedFrom, err := v.tightenFrom(from)
	if err != nil {
		return nil, err
	}
	mergedTo, err := v.tightenTo(to)
	if err != nil {
		return nil, err
	}
	return newXTreeMapView(v.backing, mergedFrom, mergedTo)
}

func (v *xTreeMapView[K, V]) HeadView(toKey K, inclusive bool) (TreeMap[K, V], error) {
	return v.subView(
		keyBound[K]{},
		keyBound[K]{key: toKey, inclusive: inclusive, bounded: true},
	)
}

func (v *xTreeMapView[K, V]) TailView(fromKey K, inclusive bool) (TreeMap[K, V], error) {
	return v.subView(
		keyBound[K]{key: fromKey, inclusive: inclusive, bounded: true},
		keyBound[K]{},
	)
}

func (v *xTreeMapView[K, V]) RangeView(fromKey K, fromIncl bool, toKey K, toIncl bool) (TreeMap[K, V], error) {
	return v.subView(
		keyBound[K]{key: fromKey, inclusive: fromIncl, bounded: true},
		keyBound[K]{key: toKey, inclusive: toIncl, bounded: true},
	)
}

func (v *xTreeMapView[K, V]) WriteSnapshot(w io.Writer, c Compression) error {
	return writeSnapshotEntries(w, c, v.Len(), v.Foreach)
}
