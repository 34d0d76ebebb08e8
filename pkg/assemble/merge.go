package assemble

import (
	"sort"
	"time"

	"github.com/scigrid/dpclient/pkg/correlate"
	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/model"
)

// mergeSuperDomain collapses the overlapping blocks of one super-domain into
// a single correlated block over the union of their timestamps. Where two
// blocks carry the same source at the same instant, the sample from the
// later sub-request wins, regardless of the order the blocks arrived in;
// everywhere else samples union by timestamp. Sources absent at some union
// instants get nil samples there.
func mergeSuperDomain(sd correlate.SuperDomain) (model.RawCorrelatedData, error) {
	if len(sd.Blocks) == 1 {
		return sd.Blocks[0], nil
	}

	type cell struct {
		value interface{}
		sub   int
		seq   int
	}
	type seriesAcc struct {
		typ   model.ScalarType
		cells map[int64]cell
	}

	union := map[int64]time.Time{}
	series := map[string]*seriesAcc{}
	minSeq := sd.Blocks[0].Sequence()

	for _, block := range sd.Blocks {
		if block.Sequence() < minSeq {
			minSeq = block.Sequence()
		}
		instants := block.Timestamps().Instants()
		for _, t := range instants {
			union[t.UnixNano()] = t
		}

		for _, bucket := range block.Buckets() {
			acc, ok := series[bucket.SourceName]
			if !ok {
				acc = &seriesAcc{typ: bucket.DataType, cells: map[int64]cell{}}
				series[bucket.SourceName] = acc
			}
			if acc.typ != bucket.DataType {
				return nil, dperror.Newf(dperror.KindUnsupportedType,
					"source %q carries %s and %s samples in overlapping blocks",
					bucket.SourceName, acc.typ, bucket.DataType)
			}

			// block sequence breaks ties within one sub-request, where
			// stream order is deterministic.
			for i, t := range instants {
				key := t.UnixNano()
				prev, exists := acc.cells[key]
				if !exists || bucket.SubIndex > prev.sub ||
					(bucket.SubIndex == prev.sub && block.Sequence() > prev.seq) {
					acc.cells[key] = cell{value: bucket.Values[i], sub: bucket.SubIndex, seq: block.Sequence()}
				}
			}
		}
	}

	times := make([]time.Time, 0, len(union))
	for _, t := range union {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	list := model.TimestampList{Times: times}
	merged := model.NewRawTmsListData(list, minSeq)

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		acc := series[name]
		values := make([]interface{}, len(times))
		for i, t := range times {
			if c, ok := acc.cells[t.UnixNano()]; ok {
				values[i] = c.value
			}
		}
		err := merged.AddBucket(model.DataBucket{
			SourceName: name,
			DataType:   acc.typ,
			Values:     values,
			Timestamps: list,
		})
		if err != nil {
			return nil, err
		}
	}

	return merged, nil
}

// fuseAndMerge resolves a non-disjoint correlated set into a disjoint one by
// fusing super-domains and merging each fused group's buckets.
func fuseAndMerge(set []model.RawCorrelatedData) ([]model.RawCorrelatedData, error) {
	domains := correlate.FuseSuperDomains(set)
	out := make([]model.RawCorrelatedData, 0, len(domains))
	for _, sd := range domains {
		merged, err := mergeSuperDomain(sd)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
	}
	sort.Slice(out, func(i, j int) bool { return model.CompareRaw(out[i], out[j]) < 0 })
	return out, nil
}
