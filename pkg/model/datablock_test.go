package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataBlockDisjoint(t *testing.T) {
	tests := []struct {
		name     string
		a, b     DataBlock
		disjoint bool
	}{
		{
			"disjoint sources",
			NewDataBlock([]string{"a", "b"}, interval(0, 9)),
			NewDataBlock([]string{"c"}, interval(0, 9)),
			true,
		},
		{
			"disjoint ranges",
			NewDataBlock([]string{"a"}, interval(0, 4)),
			NewDataBlock([]string{"a"}, interval(5, 9)),
			true,
		},
		{
			"shared source and range",
			NewDataBlock([]string{"a", "b"}, interval(0, 9)),
			NewDataBlock([]string{"b", "c"}, interval(5, 12)),
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.disjoint, tc.a.Disjoint(tc.b))
			assert.Equal(t, tc.disjoint, tc.b.Disjoint(tc.a))
		})
	}
}

func requirePairwiseDisjoint(t *testing.T, blocks []DataBlock) {
	t.Helper()
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			require.True(t, blocks[i].Disjoint(blocks[j]),
				"blocks %d and %d intersect: %v / %v", i, j, blocks[i], blocks[j])
		}
	}
}

func TestDataBlockSetAddDisjoint(t *testing.T) {
	set := &DataBlockSet{}
	set.Add(NewDataBlock([]string{"a"}, interval(0, 4)))
	set.Add(NewDataBlock([]string{"b"}, interval(0, 4)))
	set.Add(NewDataBlock([]string{"a"}, interval(5, 9)))

	assert.Equal(t, 3, set.Len())
	requirePairwiseDisjoint(t, set.Blocks())
}

func TestDataBlockSetDecomposesOverlap(t *testing.T) {
	set := &DataBlockSet{}
	set.Add(NewDataBlock([]string{"a", "b"}, interval(0, 6)))
	set.Add(NewDataBlock([]string{"b", "c"}, interval(4, 9)))

	requirePairwiseDisjoint(t, set.Blocks())
	assert.Equal(t, 3, set.Len())

	// the shared source spans the union; exclusive sources keep their own
	// range.
	foundShared := false
	for _, b := range set.Blocks() {
		if _, ok := b.Sources["b"]; ok {
			foundShared = true
			assert.Equal(t, []string{"b"}, b.SourceNames())
			assert.Equal(t, interval(0, 9), b.Range)
		}
	}
	assert.True(t, foundShared)
}

func TestDataBlockSetCascadingDecomposition(t *testing.T) {
	set := &DataBlockSet{}
	set.Add(NewDataBlock([]string{"a", "b"}, interval(0, 6)))
	set.Add(NewDataBlock([]string{"b", "c"}, interval(4, 9)))
	set.Add(NewDataBlock([]string{"a", "c"}, interval(2, 12)))
	set.Add(NewDataBlock([]string{"a", "b", "c"}, interval(0, 12)))

	requirePairwiseDisjoint(t, set.Blocks())

	// every source stays covered.
	sources := map[string]bool{}
	for _, b := range set.Blocks() {
		for name := range b.Sources {
			sources[name] = true
		}
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, sources)
}
