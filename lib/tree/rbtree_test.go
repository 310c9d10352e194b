package tree

import (
	randv2 "math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Congllspkt/xtreemap/lib/infra"
)

func newTestTree(isRmBorrowPred bool) *rbTree[uint64, uint64] {
	return &rbTree[uint64, uint64]{
		kcmp:           infra.NaturalOrderComparator[uint64](),
		isRmBorrowPred: isRmBorrowPred,
	}
}

func requireNoViolation[K infra.OrderedKey, V any](t *testing.T, tree *rbTree[K, V]) {
	t.Helper()
	require.NoError(t, redViolationValidate(tree))
	require.NoError(t, blackViolationValidate(tree))
	require.NoError(t, bstOrderValidate(tree))
}

func TestRbtreeLeftAndRightRotate(t *testing.T) {
	type checkData struct {
		color RBColor
		key   uint64
	}

	tree := newTestTree(false)

	checkLayout := func(expected []checkData) {
		t.Helper()
		visited := int64(0)
		tree.foreach(func(idx int64, key uint64, val uint64) bool {
			node := tree.searchNode(key)
			require.NotNil(t, node)
			require.Equal(t, expected[idx].color, node.color)
			require.Equal(t, expected[idx].key, key)
			visited++
			return true
		})
		require.Equal(t, int64(len(expected)), visited)
		requireNoViolation(t, tree)
	}

	tree.insert(52, 1)
	checkLayout([]checkData{
		{Black, 52},
	})

	tree.insert(47, 1)
	checkLayout([]checkData{
		{Red, 47}, {Black, 52},
	})

	tree.insert(3, 1)
	checkLayout([]checkData{
		{Red, 3}, {Black, 47}, {Red, 52},
	})

	tree.insert(35, 1)
	checkLayout([]checkData{
		{Black, 3},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	tree.insert(24, 1)
	checkLayout([]checkData{
		{Red, 3},
		{Black, 24},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	// remove, borrowing from the in-order successor

	old, removed := tree.remove(24)
	require.True(t, removed)
	require.Equal(t, uint64(1), old)
	checkLayout([]checkData{
		{Red, 3},
		{Black, 35},
		{Black, 47},
		{Black, 52},
	})

	_, removed = tree.remove(47)
	require.True(t, removed)
	checkLayout([]checkData{
		{Black, 3},
		{Black, 35},
		{Black, 52},
	})

	_, removed = tree.remove(52)
	require.True(t, removed)
	checkLayout([]checkData{
		{Red, 3}, {Black, 35},
	})

	_, removed = tree.remove(3)
	require.True(t, removed)
	checkLayout([]checkData{
		{Black, 35},
	})

	_, removed = tree.remove(35)
	require.True(t, removed)
	require.Equal(t, int64(0), tree.len())

	_, removed = tree.remove(35)
	require.False(t, removed)
}

func TestRbtreeInsertOverwriteIsNotStructural(t *testing.T) {
	tree := newTestTree(false)

	tree.insert(7, 700)
	tree.insert(11, 1100)
	versionBefore := tree.version

	old, replaced := tree.insert(7, 701)
	require.True(t, replaced)
	require.Equal(t, uint64(700), old)
	require.Equal(t, versionBefore, tree.version)
	require.Equal(t, int64(2), tree.len())

	node := tree.searchNode(7)
	require.NotNil(t, node)
	require.Equal(t, uint64(701), node.val)
}

func rbtreeSequentialChurnRunCore(t *testing.T, isRmBorrowPred bool) {
	total := uint64(1000)
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	tree := newTestTree(isRmBorrowPred)

	for i := uint64(0); i < insertTotal; i++ {
		tree.insert(i, 1)
		require.NoError(t, redViolationValidate(tree))
		require.NoError(t, blackViolationValidate(tree))
	}
	tree.foreach(func(idx int64, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		tree.insert(i, 1)
		require.NoError(t, redViolationValidate(tree))
		require.NoError(t, blackViolationValidate(tree))
	}

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		old, removed := tree.remove(i)
		require.True(t, removed)
		require.Equal(t, uint64(1), old)
		require.NoError(t, redViolationValidate(tree))
		require.NoError(t, blackViolationValidate(tree))
	}
	tree.foreach(func(idx int64, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})
	require.Equal(t, int64(insertTotal), tree.len())
}

func TestRbtreeSequentialChurn(t *testing.T) {
	type testcase struct {
		name           string
		isRmBorrowPred bool
	}
	testcases := []testcase{
		{
			name: "rm by succ",
		},
		{
			name:           "rm by pred",
			isRmBorrowPred: true,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeSequentialChurnRunCore(tt, tc.isRmBorrowPred)
		})
	}
}

func rbtreeRandomChurnRunCore(t *testing.T, total uint64, isRmBorrowPred bool) {
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	seen := make(map[uint64]struct{}, total)
	insertElements := make([]uint64, 0, insertTotal)
	removeElements := make([]uint64, 0, removeTotal)
	for uint64(len(insertElements)) < insertTotal || uint64(len(removeElements)) < removeTotal {
		num := randv2.Uint64() % (total * 16)
		if _, ok := seen[num]; ok {
			continue
		}
		seen[num] = struct{}{}
		if randv2.Uint32()&0x1 == 0 && uint64(len(insertElements)) < insertTotal {
			insertElements = append(insertElements, num)
		} else if uint64(len(removeElements)) < removeTotal {
			removeElements = append(removeElements, num)
		}
	}

	tree := newTestTree(isRmBorrowPred)

	for i := uint64(0); i < insertTotal; i++ {
		tree.insert(insertElements[i], i)
		require.NoError(t, redViolationValidate(tree))
		require.NoError(t, blackViolationValidate(tree))
	}
	sort.Slice(insertElements, func(i, j int) bool {
		return insertElements[i] < insertElements[j]
	})
	tree.foreach(func(idx int64, key uint64, val uint64) bool {
		require.Equal(t, insertElements[idx], key)
		return true
	})

	for i := uint64(0); i < removeTotal; i++ {
		tree.insert(removeElements[i], 1)
	}
	requireNoViolation(t, tree)

	for i := uint64(0); i < removeTotal; i++ {
		old, removed := tree.remove(removeElements[i])
		require.True(t, removed)
		require.Equal(t, uint64(1), old)
		require.NoError(t, redViolationValidate(tree))
		require.NoError(t, blackViolationValidate(tree))
	}
	tree.foreach(func(idx int64, key uint64, val uint64) bool {
		require.Equal(t, insertElements[idx], key)
		return true
	})
}

func TestRbtreeRandomChurn(t *testing.T) {
	type testcase struct {
		name           string
		total          uint64
		isRmBorrowPred bool
	}
	testcases := []testcase{
		{
			name:  "rm by succ 2000",
			total: 2000,
		},
		{
			name:           "rm by pred 2000",
			total:          2000,
			isRmBorrowPred: true,
		},
	}
	t.Parallel()
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeRandomChurnRunCore(tt, tc.total, tc.isRmBorrowPred)
		})
	}
}

func TestRbtreeDescComparator(t *testing.T) {
	tree := &rbTree[int64, uint64]{
		kcmp: infra.ReverseOrderComparator(infra.NaturalOrderComparator[int64]()),
	}

	total := int64(1000)
	for i := int64(0); i < total; i++ {
		tree.insert(i, 1)
	}
	requireNoViolation(t, tree)
	tree.foreach(func(idx int64, key int64, val uint64) bool {
		require.Equal(t, total-1-idx, key)
		return true
	})
}

func TestRbtreeRelease(t *testing.T) {
	tree := newTestTree(false)
	insertTotal := uint64(100_000)

	rand := uint64(randv2.Uint32() % 1_000)
	for i := uint64(0); i < insertTotal; i++ {
		tree.insert(i, 1)
		if i%1000 == rand {
			require.NoError(t, redViolationValidate(tree))
			require.NoError(t, blackViolationValidate(tree))
		}
	}
	tree.foreach(func(idx int64, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})

	versionBefore := tree.version
	tree.release()
	require.Equal(t, int64(0), tree.len())
	require.Nil(t, tree.root)
	require.Greater(t, tree.version, versionBefore)
}

func TestRbtreeBulkLoadSorted(t *testing.T) {
	for _, size := range []int{0, 1, 2, 3, 4, 5, 7, 8, 15, 16, 100, 1023, 1024, 4096} {
		entries := make([]Entry[uint64, uint64], 0, size)
		for i := 0; i < size; i++ {
			entries = append(entries, Entry[uint64, uint64]{Key: uint64(i * 2), Val: uint64(i)})
		}

		tree := newTestTree(false)
		tree.bulkLoadSorted(entries)
		require.Equal(t, int64(size), tree.len())
		requireNoViolation(t, tree)
		tree.foreach(func(idx int64, key uint64, val uint64) bool {
			require.Equal(t, uint64(idx*2), key)
			return true
		})
	}
}

func BenchmarkRbtreeInsert_Random(b *testing.B) {
	b.StopTimer()
	tree := &rbTree[int, int]{
		kcmp: infra.NaturalOrderComparator[int](),
	}

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.insert(rngArr[i], i)
	}
}

func BenchmarkRbtreeInsert_Serial(b *testing.B) {
	b.StopTimer()
	tree := &rbTree[int, int]{
		kcmp: infra.NaturalOrderComparator[int](),
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.insert(i, i)
	}
}
