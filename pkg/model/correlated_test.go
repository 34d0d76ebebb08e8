package model

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClock(startSec, periodSec int, count int32) UniformClock {
	return UniformClock{
		Start:       testStart.Add(time.Duration(startSec) * time.Second),
		PeriodNanos: int64(periodSec) * int64(time.Second),
		Count:       count,
	}
}

func testBucket(source string, desc TimestampDescriptor) DataBucket {
	values := make([]interface{}, desc.Len())
	for i := range values {
		values[i] = float64(i)
	}
	return DataBucket{
		SourceName: source,
		DataType:   TypeFloat64,
		Values:     values,
		Timestamps: desc,
	}
}

func TestRawClockedDataAddBucket(t *testing.T) {
	clock := testClock(0, 1, 5)
	raw := NewRawClockedData(clock, 0)

	require.NoError(t, raw.AddBucket(testBucket("a", clock)))
	require.NoError(t, raw.AddBucket(testBucket("b", clock)))

	err := raw.AddBucket(testBucket("a", clock))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate source")

	other := testClock(0, 1, 6)
	assert.Error(t, raw.AddBucket(testBucket("c", other)))

	assert.Equal(t, []string{"a", "b"}, raw.SourceNames())
	b, ok := raw.Bucket("b")
	assert.True(t, ok)
	assert.Equal(t, "b", b.SourceName)
	_, ok = raw.Bucket("nope")
	assert.False(t, ok)
}

func TestCompareRawNeverZero(t *testing.T) {
	// same time domain, distinct sequence: the comparator must still order
	// them.
	a := NewRawClockedData(testClock(0, 1, 5), 0)
	b := NewRawClockedData(testClock(0, 1, 5), 1)
	assert.Equal(t, -1, CompareRaw(a, b))
	assert.Equal(t, 1, CompareRaw(b, a))

	// earlier begin sorts first regardless of sequence.
	c := NewRawClockedData(testClock(10, 1, 5), 2)
	assert.Equal(t, -1, CompareRaw(a, c))

	// same begin, shorter domain sorts first.
	d := NewRawClockedData(testClock(0, 1, 3), 3)
	assert.Equal(t, 1, CompareRaw(a, d))
}

func TestCompareRawSortStable(t *testing.T) {
	blocks := []RawCorrelatedData{
		NewRawClockedData(testClock(20, 1, 5), 0),
		NewRawTmsListData(TimestampList{Times: testClock(0, 1, 5).Instants()}, 1),
		NewRawClockedData(testClock(0, 1, 5), 2),
		NewRawClockedData(testClock(10, 1, 5), 3),
	}

	sort.Slice(blocks, func(i, j int) bool { return CompareRaw(blocks[i], blocks[j]) < 0 })

	assert.Equal(t, []int{1, 2, 3, 0}, []int{
		blocks[0].Sequence(), blocks[1].Sequence(), blocks[2].Sequence(), blocks[3].Sequence(),
	})
}
