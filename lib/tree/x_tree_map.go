package tree

import (
	"errors"
	"io"

	"github.com/samber/lo"

	"github.com/Congllspkt/xtreemap/lib/infra"
	"github.com/Congllspkt/xtreemap/lib/kv"
)

var (
	ErrXTreeMapEmpty              = errors.New("[x-tree-map] there is no element")
	ErrXTreeMapInvalidRange       = errors.New("[x-tree-map] from key is greater than to key")
	ErrXTreeMapKeyOutOfRange      = errors.New("[x-tree-map] key is out of the view range")
	ErrXTreeMapConcurrentModified = errors.New("[x-tree-map] tree map is structurally modified during iteration")
	ErrXTreeMapUnsortedEntries    = errors.New("[x-tree-map] entries are not sorted ascending by the comparator")
	ErrXTreeMapBadSnapshot        = errors.New("[x-tree-map] snapshot stream carries a malformed header")
)

var (
	_ TreeMap[uint8, struct{}] = (*xTreeMap[uint8, struct{}])(nil)
)

// xTreeMap is the root ordered container. It owns the rbtree storage;
// views borrow it.
type xTreeMap[K infra.OrderedKey, V any] struct {
	tree *rbTree[K, V]
}

type xTreeMapOptions[K infra.OrderedKey, V any] struct {
	keyComparator  infra.OrderedKeyComparator[K]
	isDesc         bool
	isRmBorrowPred bool
}

type TreeMapOpt[K infra.OrderedKey, V any] func(*xTreeMapOptions[K, V])

// WithTreeMapComparator stores keys under cmp instead of the key type's
// intrinsic order.
func WithTreeMapComparator[K infra.OrderedKey, V any](cmp infra.OrderedKeyComparator[K]) TreeMapOpt[K, V] {
	return func(opts *xTreeMapOptions[K, V]) {
		opts.keyComparator = cmp
	}
}

// WithTreeMapDesc inverts the active comparator.
func WithTreeMapDesc[K infra.OrderedKey, V any]() TreeMapOpt[K, V] {
	return func(opts *xTreeMapOptions[K, V]) {
		opts.isDesc = true
	}
}

// WithTreeMapRemoveBorrowPred makes a two-child removal borrow from the
// in-order predecessor instead of the successor.
func WithTreeMapRemoveBorrowPred[K infra.OrderedKey, V any]() TreeMapOpt[K, V] {
	return func(opts *xTreeMapOptions[K, V]) {
		opts.isRmBorrowPred = true
	}
}

func newXTreeMap[K infra.OrderedKey, V any](opts ...TreeMapOpt[K, V]) *xTreeMap[K, V] {
	options := &xTreeMapOptions[K, V]{}
	for _, o := range opts {
		o(options)
	}
	if options.keyComparator == nil {
		options.keyComparator = infra.NaturalOrderComparator[K]()
	}
	if options.isDesc {
		options.keyComparator = infra.ReverseOrderComparator(options.keyComparator)
	}

	return &xTreeMap[K, V]{
		tree: &rbTree[K, V]{
			kcmp:           options.keyComparator,
			isRmBorrowPred: options.isRmBorrowPred,
		},
	}
}

// NewTreeMap builds an empty ordered container. Without options the keys
// are stored ascending under their intrinsic order.
func NewTreeMap[K infra.OrderedKey, V any](opts ...TreeMapOpt[K, V]) TreeMap[K, V] {
	return newXTreeMap(opts...)
}

// NewTreeMapFromMap bulk-loads the entries of an unordered Go map,
// O(n log n).
func NewTreeMapFromMap[K infra.OrderedKey, V any](src map[K]V, opts ...TreeMapOpt[K, V]) TreeMap[K, V] {
	m := newXTreeMap(opts...)
	for key, val := range src {
		m.tree.insert(key, val)
	}
	return m
}

// NewTreeMapFromStorer bulk-loads from an unordered key-value source,
// O(n log n).
func NewTreeMapFromStorer[K infra.OrderedKey, V any](src kv.ThreadSafeStorer[K, V], opts ...TreeMapOpt[K, V]) TreeMap[K, V] {
	m := newXTreeMap(opts...)
	for _, key := range src.ListKeys() {
		if val, exists := src.Get(key); exists {
			m.tree.insert(key, val)
		}
	}
	return m
}

// NewTreeMapFromSortedEntries bulk-loads entries that are already sorted
// strictly ascending under the active comparator, O(n). Unsorted or
// duplicated input fails with ErrXTreeMapUnsortedEntries.
func NewTreeMapFromSortedEntries[K infra.OrderedKey, V any](entries []Entry[K, V], opts ...TreeMapOpt[K, V]) (TreeMap[K, V], error) {
	m := newXTreeMap(opts...)
	for i := 1; i < len(entries); i++ {
		if m.tree.kcmp(entries[i-1].Key, entries[i].Key) >= 0 {
			return nil, infra.WrapErrorStackWithMessage(ErrXTreeMapUnsortedEntries, "sorted bulk-load rejected")
		}
	}
	m.tree.bulkLoadSorted(entries)
	return m, nil
}

func (m *xTreeMap[K, V]) Len() int64 {
	return m.tree.len()
}

func (m *xTreeMap[K, V]) IsEmpty() bool {
	return m.tree.len() == 0
}

func (m *xTreeMap[K, V]) Put(key K, val V) (old V, replaced bool, err error) {
	old, replaced = m.tree.insert(key, val)
	return old, replaced, nil
}

func (m *xTreeMap[K, V]) Get(key K) (V, bool) {
	if node := m.tree.searchNode(key); node != nil {
		return node.val, true
	}
	var zero V
	return zero, false
}

func (m *xTreeMap[K, V]) ContainsKey(key K) bool {
	return m.tree.searchNode(key) != nil
}

func (m *xTreeMap[K, V]) Remove(key K) (V, bool) {
	return m.tree.remove(key)
}

func (m *xTreeMap[K, V]) Clear() {
	m.tree.release()
}

func (m *xTreeMap[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	m.tree.foreach(action)
}

func (m *xTreeMap[K, V]) ForeachDesc(action func(idx int64, key K, val V) bool) {
	m.tree.foreachDesc(action)
}

func (m *xTreeMap[K, V]) Iterator() EntryIterator[K, V] {
	return newTreeMapIterator(m.tree, false, m.ascStartNode(), keyBound[K]{})
}

func (m *xTreeMap[K, V]) ReverseIterator() EntryIterator[K, V] {
	return newTreeMapIterator(m.tree, true, m.descStartNode(), keyBound[K]{})
}

func (m *xTreeMap[K, V]) ascStartNode() *rbNode[K, V] {
	return m.tree.minimumNode()
}

func (m *xTreeMap[K, V]) descStartNode() *rbNode[K, V] {
	return m.tree.maximumNode()
}

func (m *xTreeMap[K, V]) Keys() []K {
	return lo.Map(m.Entries(), func(e Entry[K, V], _ int) K { return e.Key })
}

func (m *xTreeMap[K, V]) Values() []V {
	return lo.Map(m.Entries(), func(e Entry[K, V], _ int) V { return e.Val })
}

func (m *xTreeMap[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, m.tree.len())
	m.tree.foreach(func(idx int64, key K, val V) bool {
		entries = append(entries, Entry[K, V]{Key: key, Val: val})
		return true
	})
	return entries
}

func (m *xTreeMap[K, V]) FirstKey() (K, error) {
	if node := m.tree.minimumNode(); node != nil {
		return node.key, nil
	}
	var zero K
	return zero, infra.WrapErrorStackWithMessage(ErrXTreeMapEmpty, "load first key")
}

func (m *xTreeMap[K, V]) LastKey() (K, error) {
	if node := m.tree.maximumNode(); node != nil {
		return node.key, nil
	}
	var zero K
	return zero, infra.WrapErrorStackWithMessage(ErrXTreeMapEmpty, "load last key")
}

func (m *xTreeMap[K, V]) FirstEntry() (Entry[K, V], bool) {
	return nodeToEntry(m.tree.minimumNode())
}

func (m *xTreeMap[K, V]) LastEntry() (Entry[K, V], bool) {
	return nodeToEntry(m.tree.maximumNode())
}

func (m *xTreeMap[K, V]) Floor(key K) (K, bool) {
	return nodeToKey(m.tree.floorNode(key))
}

func (m *xTreeMap[K, V]) Ceiling(key K) (K, bool) {
	return nodeToKey(m.tree.ceilingNode(key))
}

func (m *xTreeMap[K, V]) Lower(key K) (K, bool) {
	return nodeToKey(m.tree.lowerNode(key))
}

func (m *xTreeMap[K, V]) Higher(key K) (K, bool) {
	return nodeToKey(m.tree.higherNode(key))
}

func (m *xTreeMap[K, V]) FloorEntry(key K) (Entry[K, V], bool) {
	return nodeToEntry(m.tree.floorNode(key))
}

func (m *xTreeMap[K, V]) CeilingEntry(key K) (Entry[K, V], bool) {
	return nodeToEntry(m.tree.ceilingNode(key))
}

func (m *xTreeMap[K, V]) LowerEntry(key K) (Entry[K, V], bool) {
	return nodeToEntry(m.tree.lowerNode(key))
}

func (m *xTreeMap[K, V]) HigherEntry(key K) (Entry[K, V], bool) {
	return nodeToEntry(m.tree.higherNode(key))
}

func (m *xTreeMap[K, V]) HeadView(toKey K, inclusive bool) (TreeMap[K, V], error) {
	return newXTreeMapView(m,
		keyBound[K]{},
		keyBound[K]{key: toKey, inclusive: inclusive, bounded: true},
	)
}

func (m *xTreeMap[K, V]) TailView(fromKey K, inclusive bool) (TreeMap[K, V], error) {
	return newXTreeMapView(m,
		keyBound[K]{key: fromKey, inclusive: inclusive, bounded: true},
		keyBound[K]{},
	)
}

func (m *xTreeMap[K, V]) RangeView(fromKey K, fromIncl bool, toKey K, toIncl bool) (TreeMap[K, V], error) {
	return newXTreeMapView(m,
		keyBound[K]{key: fromKey, inclusive: fromIncl, bounded: true},
		keyBound[K]{key: toKey, inclusive: toIncl, bounded: true},
	)
}

func (m *xTreeMap[K, V]) WriteSnapshot(w io.Writer, c Compression) error {
	return writeSnapshotEntries(w, c, m.tree.len(), m.Foreach)
}

func nodeToKey[K infra.OrderedKey, V any](node *rbNode[K, V]) (K, bool) {
	if node != nil {
		return node.key, true
	}
	var zero K
	return zero, false
}

func nodeToEntry[K infra.OrderedKey, V any](node *rbNode[K, V]) (Entry[K, V], bool) {
	if node != nil {
		return Entry[K, V]{Key: node.key, Val: node.val}, true
	}
	return Entry[K, V]{}, false
}
