package model

import (
	"sort"
)

// DataBlock names a rectangle of the platform's data space: a set of sources
// crossed with a time range. Dataset definitions are unions of pairwise
// disjoint data blocks.
type DataBlock struct {
	Sources map[string]struct{}
	Range   TimeInterval
}

func NewDataBlock(sources []string, rng TimeInterval) DataBlock {
	set := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		set[s] = struct{}{}
	}
	return DataBlock{Sources: set, Range: rng}
}

func (b DataBlock) SourceNames() []string {
	names := make([]string, 0, len(b.Sources))
	for name := range b.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sharesSource reports whether the two blocks name at least one common source.
func (b DataBlock) sharesSource(other DataBlock) bool {
	small, large := b.Sources, other.Sources
	if len(large) < len(small) {
		small, large = large, small
	}
	for name := range small {
		if _, ok := large[name]; ok {
			return true
		}
	}
	return false
}

// Disjoint reports whether the two blocks cover no common (source, instant)
// pair: disjoint source sets or disjoint time ranges.
func (b DataBlock) Disjoint(other DataBlock) bool {
	return !b.sharesSource(other) || b.Range.Disjoint(other.Range)
}

// DataBlockSet maintains a collection of pairwise-disjoint data blocks.
// Adding an intersecting block decomposes the union into disjoint rectangles
// before storing.
type DataBlockSet struct {
	blocks []DataBlock
}

func (s *DataBlockSet) Blocks() []DataBlock { return s.blocks }

func (s *DataBlockSet) Len() int { return len(s.blocks) }

// Add inserts block, decomposing against any stored block it intersects.
// The decomposition of two intersecting rectangles A and B is three disjoint
// rectangles covering their union:
//
//	(A.sources ∩ B.sources, A.range ∪ B.range)
//	(A.sources ∖ B.sources, A.range)
//	(B.sources ∖ A.sources, B.range)
//
// Pieces with an empty source set are dropped. Stored blocks stay pairwise
// disjoint because the pieces partition the union by source membership.
func (s *DataBlockSet) Add(block DataBlock) {
	pending := []DataBlock{block}

	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]

		collided := false
		for i, stored := range s.blocks {
			if stored.Disjoint(next) {
				continue
			}

			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			pending = append(pending, decompose(stored, next)...)
			collided = true
			break
		}

		if !collided {
			s.blocks = append(s.blocks, next)
		}
	}
}

func decompose(a, b DataBlock) []DataBlock {
	shared := map[string]struct{}{}
	onlyA := map[string]struct{}{}
	onlyB := map[string]struct{}{}

	for name := range a.Sources {
		if _, ok := b.Sources[name]; ok {
			shared[name] = struct{}{}
		} else {
			onlyA[name] = struct{}{}
		}
	}
	for name := range b.Sources {
		if _, ok := a.Sources[name]; !ok {
			onlyB[name] = struct{}{}
		}
	}

	out := make([]DataBlock, 0, 3)
	if len(shared) > 0 {
		out = append(out, DataBlock{Sources: shared, Range: a.Range.Union(b.Range)})
	}
	if len(onlyA) > 0 {
		out = append(out, DataBlock{Sources: onlyA, Range: a.Range})
	}
	if len(onlyB) > 0 {
		out = append(out, DataBlock{Sources: onlyB, Range: b.Range})
	}
	return out
}
