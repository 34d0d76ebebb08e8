// Package correlate groups recovered data buckets by timestamp descriptor
// and verifies/fuses the time domains of the resulting blocks.
package correlate

import (
	"sort"

	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/model"
)

// Correlator accumulates buckets into correlated blocks keyed by the
// canonical form of their timestamp descriptor. It is mutated by a single
// consumer goroutine and is restartable via Reset.
type Correlator struct {
	groups  map[model.DescriptorKey]model.RawCorrelatedData
	nextSeq int
}

func NewCorrelator() *Correlator {
	return &Correlator{
		groups: map[model.DescriptorKey]model.RawCorrelatedData{},
	}
}

// Add routes one bucket into its descriptor group, creating the group on
// first sight. A second bucket for the same source within one group fails
// with DuplicateSource.
func (c *Correlator) Add(bucket model.DataBucket) error {
	if err := bucket.Validate(); err != nil {
		return err
	}

	key := bucket.Timestamps.Key()
	group, ok := c.groups[key]
	if !ok {
		switch desc := bucket.Timestamps.(type) {
		case model.UniformClock:
			group = model.NewRawClockedData(desc, c.nextSeq)
		case model.TimestampList:
			group = model.NewRawTmsListData(desc, c.nextSeq)
		default:
			return dperror.Newf(dperror.KindUnsupportedType, "unknown timestamp descriptor %T", bucket.Timestamps)
		}
		c.nextSeq++
		c.groups[key] = group
	}

	return group.AddBucket(bucket)
}

// CorrelatedSet returns the blocks in natural order: time-domain begin, then
// end, then group creation order.
func (c *Correlator) CorrelatedSet() []model.RawCorrelatedData {
	out := make([]model.RawCorrelatedData, 0, len(c.groups))
	for _, g := range c.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return model.CompareRaw(out[i], out[j]) < 0 })
	return out
}

// Counts reports the number of clocked and timestamp-list blocks.
func (c *Correlator) Counts() (clocked, tmsList int) {
	for _, g := range c.groups {
		switch g.(type) {
		case *model.RawClockedData:
			clocked++
		case *model.RawTmsListData:
			tmsList++
		}
	}
	return clocked, tmsList
}

// Reset clears all accumulated state.
func (c *Correlator) Reset() {
	c.groups = map[model.DescriptorKey]model.RawCorrelatedData{}
	c.nextSeq = 0
}
