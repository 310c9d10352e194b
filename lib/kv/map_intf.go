package kv

type SafeStoreKeyFilterFunc[K comparable] func(key K) bool

func defaultAllKeysFilter[K comparable](key K) bool {
	return true
}

// ThreadSafeStorer is an unordered key-value source. It keeps its own
// lock so it can feed a single-threaded container from any goroutine.
type ThreadSafeStorer[K comparable, V any] interface {
	Purge()
	AddOrUpdate(key K, obj V)
	Replace(items map[K]V)
	Delete(key K)
	Get(key K) (item V, exists bool)
	Len() int
	ListKeys(filters ...SafeStoreKeyFilterFunc[K]) []K
	ListValues(keys ...K) (items []V)
}
