package tree

import (
	"io"

	"github.com/Congllspkt/xtreemap/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// Entry is a single key-value pair emitted in comparator order.
type Entry[K infra.OrderedKey, V any] struct {
	Key K
	Val V
}

// EntryIterator walks key-value pairs lazily in comparator order
// (or reversed). Each iterator snapshots the container's structural
// version at creation; once the backing tree is structurally modified,
// every later Next reports ErrXTreeMapConcurrentModified. In-place value
// overwrites are not structural. The check is best effort only, it is
// not a guard against concurrent external mutation.
//
// Key and Val are only valid after a Next call that returned true.
type EntryIterator[K infra.OrderedKey, V any] interface {
	Next() (bool, error)
	Key() K
	Val() V
}

// TreeMap is a sorted associative container keyed by a total order.
// It is exposed by the root container and by every bounded view of it.
// A view forwards mutations straight to its backing tree, so changes
// through any handle are immediately visible through all others.
//
// All implementations are single-threaded by contract. No method locks;
// the caller serializes access.
type TreeMap[K infra.OrderedKey, V any] interface {
	Len() int64
	IsEmpty() bool
	// Put stores val under key and reports the displaced value, if any.
	// When the comparator regards key as equal to a stored key, both the
	// stored key and value are replaced. Through a bounded view, a key
	// outside the bound fails with ErrXTreeMapKeyOutOfRange.
	Put(key K, val V) (old V, replaced bool, err error)
	Get(key K) (V, bool)
	ContainsKey(key K) bool
	// Remove deletes key and returns the removed value. A miss (or an
	// out-of-bound key, through a view) reports (zero, false).
	Remove(key K) (V, bool)
	Clear()

	// Foreach walks entries in ascending comparator order until action
	// returns false. ForeachDesc walks descending.
	Foreach(action func(idx int64, key K, val V) bool)
	ForeachDesc(action func(idx int64, key K, val V) bool)
	Iterator() EntryIterator[K, V]
	ReverseIterator() EntryIterator[K, V]
	Keys() []K
	Values() []V
	Entries() []Entry[K, V]

	// FirstKey and LastKey fail with ErrXTreeMapEmpty when no entry is in
	// range. The entry variants report absence through the bool instead.
	FirstKey() (K, error)
	LastKey() (K, error)
	FirstEntry() (Entry[K, V], bool)
	LastEntry() (Entry[K, V], bool)

	// Floor: greatest key <= given key. Ceiling: least key >= given key.
	// Lower and Higher are the strict variants that skip an exact match.
	Floor(key K) (K, bool)
	Ceiling(key K) (K, bool)
	Lower(key K) (K, bool)
	Higher(key K) (K, bool)
	FloorEntry(key K) (Entry[K, V], bool)
	CeilingEntry(key K) (Entry[K, V], bool)
	LowerEntry(key K) (Entry[K, V], bool)
	HigherEntry(key K) (Entry[K, V], bool)

	// HeadView, TailView and RangeView open live windows over the backing
	// tree. Bounds are validated eagerly: an inverted range, or a range
	// escaping the parent view, fails with ErrXTreeMapInvalidRange.
	HeadView(toKey K, inclusive bool) (TreeMap[K, V], error)
	TailView(fromKey K, inclusive bool) (TreeMap[K, V], error)
	RangeView(fromKey K, fromIncl bool, toKey K, toIncl bool) (TreeMap[K, V], error)

	// WriteSnapshot streams the in-range entries, in comparator order,
	// into w through the given compression codec.
	WriteSnapshot(w io.Writer, c Compression) error
}
