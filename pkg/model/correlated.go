package model

import (
	"sort"
	"time"

	"github.com/scigrid/dpclient/pkg/dperror"
)

// RawCorrelatedData is a set of buckets sharing one timestamp descriptor.
// The concrete type is RawClockedData or RawTmsListData depending on the
// descriptor variant.
type RawCorrelatedData interface {
	// Timestamps is the shared descriptor of every bucket in the block.
	Timestamps() TimestampDescriptor
	// Buckets returns the buckets in insertion order.
	Buckets() []DataBucket
	// Bucket looks a bucket up by source name.
	Bucket(source string) (DataBucket, bool)
	// SourceNames returns the sorted source names present in the block.
	SourceNames() []string
	// AddBucket appends a bucket. The bucket's descriptor must equal the
	// block's; a second bucket for the same source fails with
	// DuplicateSource.
	AddBucket(b DataBucket) error
	// TimeDomain is the closed interval covered by the descriptor.
	TimeDomain() TimeInterval
	// StartInstant is the first instant of the descriptor.
	StartInstant() time.Time
	// Sequence is the insertion-order tie-break used by CompareRaw.
	Sequence() int
}

type rawCorrelated struct {
	desc    TimestampDescriptor
	buckets []DataBucket
	index   map[string]int
	seq     int
}

func (r *rawCorrelated) Timestamps() TimestampDescriptor { return r.desc }

func (r *rawCorrelated) Buckets() []DataBucket { return r.buckets }

func (r *rawCorrelated) Bucket(source string) (DataBucket, bool) {
	i, ok := r.index[source]
	if !ok {
		return DataBucket{}, false
	}
	return r.buckets[i], true
}

func (r *rawCorrelated) SourceNames() []string {
	names := make([]string, 0, len(r.index))
	for name := range r.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *rawCorrelated) AddBucket(b DataBucket) error {
	if b.Timestamps == nil || !DescriptorsEqual(b.Timestamps, r.desc) {
		return dperror.Newf(dperror.KindInvalidRequest,
			"bucket for source %q does not share the block's timestamp descriptor", b.SourceName)
	}
	if _, ok := r.index[b.SourceName]; ok {
		return dperror.Newf(dperror.KindDuplicateSource,
			"source %q appears more than once for one timestamp descriptor", b.SourceName)
	}
	r.index[b.SourceName] = len(r.buckets)
	r.buckets = append(r.buckets, b)
	return nil
}

func (r *rawCorrelated) TimeDomain() TimeInterval { return r.desc.TimeDomain() }

func (r *rawCorrelated) StartInstant() time.Time { return r.desc.TimeDomain().Begin }

func (r *rawCorrelated) Sequence() int { return r.seq }

// RawClockedData correlates buckets over a uniform sampling clock.
type RawClockedData struct {
	rawCorrelated
	clock UniformClock
}

func NewRawClockedData(clock UniformClock, seq int) *RawClockedData {
	return &RawClockedData{
		rawCorrelated: rawCorrelated{
			desc:  clock,
			index: map[string]int{},
			seq:   seq,
		},
		clock: clock,
	}
}

func (r *RawClockedData) Clock() UniformClock { return r.clock }

// RawTmsListData correlates buckets over an explicit timestamp list.
type RawTmsListData struct {
	rawCorrelated
	times TimestampList
}

func NewRawTmsListData(times TimestampList, seq int) *RawTmsListData {
	return &RawTmsListData{
		rawCorrelated: rawCorrelated{
			desc:  times,
			index: map[string]int{},
			seq:   seq,
		},
		times: times,
	}
}

func (r *RawTmsListData) Times() []time.Time { return r.times.Instants() }

// CompareRaw orders correlated blocks by time-domain begin, then end, then
// insertion sequence. It never returns 0 for distinct instances, so sorted
// collections never collapse two blocks.
func CompareRaw(a, b RawCorrelatedData) int {
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
	case a.Sequence() < b.Sequence():
		return -1
	case a.Sequence() > b.Sequence():
		return 1
	}
	return 0
}
