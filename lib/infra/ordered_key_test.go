package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalOrderComparator(t *testing.T) {
	intCmp := NaturalOrderComparator[int64]()
	assert.Equal(t, int64(0), intCmp(7, 7))
	assert.Equal(t, int64(-1), intCmp(3, 7))
	assert.Equal(t, int64(1), intCmp(7, 3))

	strCmp := NaturalOrderComparator[string]()
	assert.Equal(t, int64(-1), strCmp("abc", "abd"))
	assert.Equal(t, int64(1), strCmp("b", "a"))
	assert.Equal(t, int64(0), strCmp("same", "same"))
}

func TestReverseOrderComparator(t *testing.T) {
	desc := ReverseOrderComparator(NaturalOrderComparator[uint64]())
	assert.Equal(t, int64(0), desc(10, 10))
	assert.Equal(t, int64(1), desc(3, 7))
	assert.Equal(t, int64(-1), desc(7, 3))
}
