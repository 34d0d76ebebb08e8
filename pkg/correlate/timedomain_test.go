package correlate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigrid/dpclient/pkg/model"
)

func rawBlock(startSec, periodSec int, count int32, seq int) model.RawCorrelatedData {
	return model.NewRawClockedData(testClock(startSec, periodSec, count), seq)
}

func TestVerifyStartTimeOrdering(t *testing.T) {
	ordered := []model.RawCorrelatedData{
		rawBlock(0, 1, 5, 0),
		rawBlock(0, 1, 8, 1),
		rawBlock(10, 1, 5, 2),
	}
	assert.True(t, VerifyStartTimeOrdering(ordered).OK)

	unordered := []model.RawCorrelatedData{
		rawBlock(10, 1, 5, 0),
		rawBlock(0, 1, 5, 1),
	}
	status := VerifyStartTimeOrdering(unordered)
	assert.False(t, status.OK)
	assert.NotEmpty(t, status.Detail)

	assert.True(t, VerifyStartTimeOrdering(nil).OK)
}

func TestVerifyDisjointTimeDomains(t *testing.T) {
	disjoint := []model.RawCorrelatedData{
		rawBlock(0, 1, 5, 0),  // [0, 4]
		rawBlock(5, 1, 5, 1),  // [5, 9]
		rawBlock(20, 1, 5, 2), // [20, 24]
	}
	assert.True(t, VerifyDisjointTimeDomains(disjoint).OK)

	colliding := []model.RawCorrelatedData{
		rawBlock(0, 1, 5, 0), // [0, 4]
		rawBlock(4, 1, 5, 1), // [4, 8]
	}
	status := VerifyDisjointTimeDomains(colliding)
	assert.False(t, status.OK)
	assert.NotEmpty(t, status.Detail)
}

// Two clocks (start=T, P, count=5) and (start=T+4P, P, count=5): ordering
// holds, domains collide, and the fusion is one super-domain [T, T+8P].
func TestFuseOverlappingClocks(t *testing.T) {
	set := []model.RawCorrelatedData{
		rawBlock(0, 1, 5, 0), // [T, T+4P]
		rawBlock(4, 1, 5, 1), // [T+4P, T+8P]
	}

	assert.True(t, VerifyStartTimeOrdering(set).OK)
	assert.False(t, VerifyDisjointTimeDomains(set).OK)

	domains := FuseSuperDomains(set)
	require.Len(t, domains, 1)
	assert.Equal(t, testStart, domains[0].Domain.Begin)
	assert.Equal(t, testStart.Add(8*time.Second), domains[0].Domain.End)
	assert.Len(t, domains[0].Blocks, 2)
}

func TestFuseKeepsDisjointGroupsApart(t *testing.T) {
	set := []model.RawCorrelatedData{
		rawBlock(0, 1, 5, 0),  // [0, 4]
		rawBlock(2, 1, 5, 1),  // [2, 6] overlaps the first
		rawBlock(20, 1, 5, 2), // [20, 24] far away
	}

	domains := FuseSuperDomains(set)
	require.Len(t, domains, 2)
	assert.Len(t, domains[0].Blocks, 2)
	assert.Len(t, domains[1].Blocks, 1)
	assert.True(t, domains[0].Domain.Disjoint(domains[1].Domain))
}

// Disjointness always holds after fusion, whatever the input overlap
// structure.
func TestDisjointAfterFusion(t *testing.T) {
	sets := [][]model.RawCorrelatedData{
		{rawBlock(0, 1, 5, 0)},
		{rawBlock(0, 1, 5, 0), rawBlock(4, 1, 5, 1)},
		{rawBlock(0, 1, 10, 0), rawBlock(2, 1, 3, 1), rawBlock(5, 1, 20, 2), rawBlock(30, 1, 5, 3)},
		{rawBlock(0, 2, 8, 0), rawBlock(1, 1, 3, 1), rawBlock(14, 1, 4, 2), rawBlock(15, 3, 2, 3)},
	}

	for _, set := range sets {
		domains := FuseSuperDomains(set)
		for i := 1; i < len(domains); i++ {
			assert.True(t, domains[i-1].Domain.Disjoint(domains[i].Domain))
			assert.True(t, domains[i-1].Domain.End.Before(domains[i].Domain.Begin))
		}

		// every input block lands in exactly one super-domain
		total := 0
		for _, d := range domains {
			total += len(d.Blocks)
		}
		assert.Equal(t, len(set), total)
	}
}

func TestFuseEmpty(t *testing.T) {
	assert.Nil(t, FuseSuperDomains(nil))
}
