package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
// If future releases of Go add new predeclared unsigned integer types,
// this constraint will be modified to include them.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// OrderedKey constrains the key types that carry an intrinsic total order.
// A key type outside this constraint is rejected by the compiler at the
// construction call site.
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// OrderedKeyComparator reports the order between two keys.
// Assume i is the new key.
//  1. i == j (i-j == 0, return 0)
//  2. i > j (i-j > 0, return 1), turn to right part.
//  3. i < j (i-j < 0, return -1), turn to left part.
//
// It must be a strict total order and stay consistent for the whole
// lifetime of the container that stores it. Two keys for which the
// comparator returns 0 are regarded as the same key for storage.
type OrderedKeyComparator[K OrderedKey] func(i, j K) int64

// NaturalOrderComparator derives the ascending comparator from the key
// type's intrinsic order.
func NaturalOrderComparator[K OrderedKey]() OrderedKeyComparator[K] {
	return func(i, j K) int64 {
		if i == j {
			return 0
		} else if i < j {
			return -1
		}
		return 1
	}
}

// ReverseOrderComparator inverts the order reported by cmp.
func ReverseOrderComparator[K OrderedKey](cmp OrderedKeyComparator[K]) OrderedKeyComparator[K] {
	return func(i, j K) int64 {
		return -cmp(i, j)
	}
}
