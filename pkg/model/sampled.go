package model

import (
	"sort"
	"time"

	"github.com/scigrid/dpclient/pkg/dperror"
)

// SampledTimeSeries is one source's dense value column inside a sampling
// block. Values align index-for-index with the block's timestamps; nil marks
// a missing sample.
type SampledTimeSeries struct {
	Type   ScalarType
	Values []interface{}
}

// UniformSamplingBlock is a dense, per-source table of samples over one
// shared timestamp descriptor.
type UniformSamplingBlock struct {
	timestamps TimestampDescriptor
	series     map[string]SampledTimeSeries
	seq        int
}

func NewUniformSamplingBlock(timestamps TimestampDescriptor, seq int) *UniformSamplingBlock {
	return &UniformSamplingBlock{
		timestamps: timestamps,
		series:     map[string]SampledTimeSeries{},
		seq:        seq,
	}
}

func (b *UniformSamplingBlock) Timestamps() TimestampDescriptor { return b.timestamps }

// SampleCount is the number of rows in the block.
func (b *UniformSamplingBlock) SampleCount() int { return b.timestamps.Len() }

// SeriesCount is the number of sources in the block.
func (b *UniformSamplingBlock) SeriesCount() int { return len(b.series) }

func (b *UniformSamplingBlock) Series(source string) (SampledTimeSeries, bool) {
	s, ok := b.series[source]
	return s, ok
}

func (b *UniformSamplingBlock) SeriesNames() []string {
	names := make([]string, 0, len(b.series))
	for name := range b.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddSeries stores a value column for a source. The column length must match
// the block's timestamp count and each source may be added once.
func (b *UniformSamplingBlock) AddSeries(source string, typ ScalarType, values []interface{}) error {
	if _, ok := b.series[source]; ok {
		return dperror.Newf(dperror.KindDuplicateSource, "series %q already present in sampling block", source)
	}
	if len(values) != b.timestamps.Len() {
		return dperror.Newf(dperror.KindInconsistentColumnSize,
			"series %q has %d values for %d timestamps", source, len(values), b.timestamps.Len())
	}
	b.series[source] = SampledTimeSeries{Type: typ, Values: values}
	return nil
}

// InsertEmptyTimeSeries registers a source absent from this block with a
// column of type-appropriate fill values. Used when unifying source sets
// across blocks.
func (b *UniformSamplingBlock) InsertEmptyTimeSeries(source string, typ ScalarType) error {
	values := make([]interface{}, b.timestamps.Len())
	for i := range values {
		values[i] = typ.ZeroValue()
	}
	return b.AddSeries(source, typ, values)
}

func (b *UniformSamplingBlock) TimeDomain() TimeInterval { return b.timestamps.TimeDomain() }

func (b *UniformSamplingBlock) StartInstant() time.Time { return b.timestamps.TimeDomain().Begin }

func (b *UniformSamplingBlock) Sequence() int { return b.seq }

// CompareSampled matches the ordering of CompareRaw: begin, end, then
// sequence. Never 0 for distinct instances.
func CompareSampled(a, b *UniformSamplingBlock) int {
	da, db := a.TimeDomain(), b.TimeDomain()
	switch {
	case da.Begin.Before(db.Begin):
		return -1
	case da.Begin.After(db.Begin):
		return 1
	}
	switch {
	case da.End.Before(db.End):
		return -1
	case da.End.After(db.End):
		return 1
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

// SampledAggregate is the ordered result of one query: sampling blocks with
// pairwise-disjoint, start-ordered time domains covering the requested range
// minus any server-side gaps.
type SampledAggregate struct {
	Blocks []*UniformSamplingBlock

	// Partial marks an aggregate assembled despite sub-request failures.
	// MissingIntervals records the time ranges the failed sub-requests
	// covered.
	Partial          bool
	MissingIntervals []TimeInterval
}

func (a *SampledAggregate) BlockCount() int { return len(a.Blocks) }

// SampleCount is the total number of rows across all blocks.
func (a *SampledAggregate) SampleCount() int {
	n := 0
	for _, b := range a.Blocks {
		n += b.SampleCount()
	}
	return n
}

// TimeDomain is the closed interval from the first block's begin to the last
// block's end. Zero when the aggregate is empty.
func (a *SampledAggregate) TimeDomain() TimeInterval {
	if len(a.Blocks) == 0 {
		return TimeInterval{}
	}
	return TimeInterval{
		Begin: a.Blocks[0].TimeDomain().Begin,
		End:   a.Blocks[len(a.Blocks)-1].TimeDomain().End,
	}
}

// SourceNames is the sorted union of series names across all blocks.
func (a *SampledAggregate) SourceNames() []string {
	set := map[string]struct{}{}
	for _, b := range a.Blocks {
		for _, name := range b.SeriesNames() {
			set[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
