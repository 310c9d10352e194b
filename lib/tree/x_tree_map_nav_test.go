package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreeMapNavBoundaries(t *testing.T) {
	m := NewTreeMapFromMap(map[uint64]string{10: "a", 20: "b", 30: "c", 40: "d"})

	key, ok := m.Floor(25)
	require.True(t, ok)
	require.Equal(t, uint64(20), key)

	key, ok = m.Ceiling(25)
	require.True(t, ok)
	require.Equal(t, uint64(30), key)

	key, ok = m.Lower(20)
	require.True(t, ok)
	require.Equal(t, uint64(10), key)

	key, ok = m.Higher(20)
	require.True(t, ok)
	require.Equal(t, uint64(30), key)

	_, ok = m.Floor(5)
	require.False(t, ok)
	_, ok = m.Ceiling(45)
	require.False(t, ok)
	_, ok = m.Lower(10)
	require.False(t, ok)
	_, ok = m.Higher(40)
	require.False(t, ok)
}

func TestTreeMapNavExactMatch(t *testing.T) {
	m := NewTreeMapFromMap(map[uint64]string{10: "a", 20: "b", 30: "c"})

	// Floor and Ceiling keep an exact match, Lower and Higher skip it.
	key, ok := m.Floor(20)
	require.True(t, ok)
	require.Equal(t, uint64(20), key)

	key, ok = m.Ceiling(20)
	require.True(t, ok)
	require.Equal(t, uint64(20), key)

	key, ok = m.Lower(30)
	require.True(t, ok)
	require.Equal(t, uint64(20), key)

	key, ok = m.Higher(10)
	require.True(t, ok)
	require.Equal(t, uint64(20), key)
}

func TestTreeMapNavEntryVariants(t *testing.T) {
	m := NewTreeMapFromMap(map[uint64]string{10: "a", 20: "b", 30: "c"})

	e, ok := m.FloorEntry(25)
	require.True(t, ok)
	require.Equal(t, Entry[uint64, string]{Key: 20, Val: "b"}, e)

	e, ok = m.CeilingEntry(25)
	require.True(t, ok)
	require.Equal(t, Entry[uint64, string]{Key: 30, Val: "c"}, e)

	e, ok = m.LowerEntry(20)
	require.True(t, ok)
	require.Equal(t, Entry[uint64, string]{Key: 10, Val: "a"}, e)

	e, ok = m.HigherEntry(20)
	require.True(t, ok)
	require.Equal(t, Entry[uint64, string]{Key: 30, Val: "c"}, e)

	_, ok = m.LowerEntry(10)
	require.False(t, ok)
	_, ok = m.HigherEntry(30)
	require.False(t, ok)
}

func TestTreeMapNavOnEmpty(t *testing.T) {
	m := NewTreeMap[uint64, string]()

	_, ok := m.Floor(10)
	require.False(t, ok)
	_, ok = m.Ceiling(10)
	require.False(t, ok)
	_, ok = m.Lower(10)
	require.False(t, ok)
	_, ok = m.Higher(10)
	require.False(t, ok)
}

// Floor and Ceiling follow the active comparator order, not the key
// type's intrinsic one.
func TestTreeMapNavDescComparator(t *testing.T) {
	m := NewTreeMap(WithTreeMapDesc[uint64, struct{}]())
	for _, key := range []uint64{10, 20, 30, 40} {
		_, _, err := m.Put(key, struct{}{})
		require.NoError(t, err)
	}

	// Under the inverted order, 30 precedes 25 and 20 follows it.
	key, ok := m.Floor(25)
	require.True(t, ok)
	require.Equal(t, uint64(30), key)

	key, ok = m.Ceiling(25)
	require.True(t, ok)
	require.Equal(t, uint64(20), key)

	key, ok = m.Lower(20)
	require.True(t, ok)
	require.Equal(t, uint64(30), key)

	key, ok = m.Higher(20)
	require.True(t, ok)
	require.Equal(t, uint64(10), key)
}
