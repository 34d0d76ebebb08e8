package model

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/scigrid/dpclient/pkg/dperror"
)

// TimestampDescriptor describes the sample instants of one bucket: either a
// uniform sampling clock or an explicit timestamp list. Buckets correlate
// into the same block iff their descriptors are equal.
type TimestampDescriptor interface {
	// Len is the number of sample instants described.
	Len() int
	// At returns the i-th instant. Panics when i is out of range.
	At(i int) time.Time
	// TimeDomain is the closed interval [first, last].
	TimeDomain() TimeInterval
	// Instants materializes all instants in order.
	Instants() []time.Time
	// Key is the canonical correlation key for this descriptor.
	Key() DescriptorKey
	// Validate checks the descriptor invariants.
	Validate() error
}

// DescriptorKey is a comparable canonical form of a TimestampDescriptor,
// usable as a map key. Uniform clocks key on (start, period, count);
// timestamp lists key on an xxhash of the instants.
type DescriptorKey struct {
	clocked     bool
	startNanos  int64
	periodNanos int64
	count       int32
	listHash    uint64
}

// UniformClock describes count instants spaced periodNanos apart starting at
// Start.
type UniformClock struct {
	Start       time.Time
	PeriodNanos int64
	Count       int32
}

var (
	_ TimestampDescriptor = UniformClock{}
	_ TimestampDescriptor = TimestampList{}
)

func (c UniformClock) Len() int { return int(c.Count) }

func (c UniformClock) At(i int) time.Time {
	if i < 0 || i >= int(c.Count) {
		panic("uniform clock index out of range")
	}
	return c.Start.Add(time.Duration(int64(i) * c.PeriodNanos))
}

func (c UniformClock) TimeDomain() TimeInterval {
	return TimeInterval{
		Begin: c.Start,
		End:   c.Start.Add(time.Duration(int64(c.Count-1) * c.PeriodNanos)),
	}
}

func (c UniformClock) Instants() []time.Time {
	out := make([]time.Time, 0, c.Count)
	for i := 0; i < int(c.Count); i++ {
		out = append(out, c.At(i))
	}
	return out
}

func (c UniformClock) Key() DescriptorKey {
	return DescriptorKey{
		clocked:     true,
		startNanos:  c.Start.UnixNano(),
		periodNanos: c.PeriodNanos,
		count:       c.Count,
	}
}

func (c UniformClock) Validate() error {
	if c.Count < 1 {
		return dperror.Newf(dperror.KindInvalidRequest, "uniform clock count must be >= 1, got %d", c.Count)
	}
	if c.PeriodNanos < 1 {
		return dperror.Newf(dperror.KindInvalidRequest, "uniform clock period must be >= 1ns, got %d", c.PeriodNanos)
	}
	return nil
}

// TimestampList is an explicit, strictly increasing list of instants.
type TimestampList struct {
	Times []time.Time
}

func (l TimestampList) Len() int { return len(l.Times) }

func (l TimestampList) At(i int) time.Time { return l.Times[i] }

func (l TimestampList) TimeDomain() TimeInterval {
	return TimeInterval{Begin: l.Times[0], End: l.Times[len(l.Times)-1]}
}

func (l TimestampList) Instants() []time.Time {
	out := make([]time.Time, len(l.Times))
	copy(out, l.Times)
	return out
}

func (l TimestampList) Key() DescriptorKey {
	h := xxhash.New()
	var buf [8]byte
	for _, t := range l.Times {
		binary.BigEndian.PutUint64(buf[:], uint64(t.UnixNano()))
		_, _ = h.Write(buf[:])
	}
	return DescriptorKey{
		clocked:  false,
		count:    int32(len(l.Times)),
		listHash: h.Sum64(),
	}
}

func (l TimestampList) Validate() error {
	if len(l.Times) < 1 {
		return dperror.New(dperror.KindInvalidRequest, "timestamp list must contain at least one instant")
	}
	for i := 1; i < len(l.Times); i++ {
		if !l.Times[i].After(l.Times[i-1]) {
			return dperror.Newf(dperror.KindInvalidRequest,
				"timestamp list not strictly increasing at index %d (%s >= %s)",
				i, l.Times[i-1].Format(time.RFC3339Nano), l.Times[i].Format(time.RFC3339Nano))
		}
	}
	return nil
}

// DescriptorsEqual reports whether two descriptors describe the same instants
// with the same representation.
func DescriptorsEqual(a, b TimestampDescriptor) bool {
	return a.Key() == b.Key()
}
