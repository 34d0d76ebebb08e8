package model

import (
	"github.com/scigrid/dpclient/pkg/dperror"
)

// DataBucket carries one source's typed samples over one timestamp
// descriptor. It is the unit of correlation.
type DataBucket struct {
	SourceName string
	DataType   ScalarType
	Values     []interface{}
	Timestamps TimestampDescriptor

	// SubIndex is the index of the sub-request that recovered the bucket.
	// Samples from a higher SubIndex win exact-instant collisions when
	// overlapping blocks merge.
	SubIndex int
}

// Validate checks the bucket invariants: a known scalar type, a non-empty
// value column, and a column length matching the descriptor.
func (b DataBucket) Validate() error {
	if b.Timestamps == nil {
		return dperror.Newf(dperror.KindMissingResource, "bucket for source %q has no timestamps", b.SourceName)
	}
	if err := b.Timestamps.Validate(); err != nil {
		return err
	}
	if b.DataType == TypeUnknown {
		return dperror.Newf(dperror.KindUnsupportedType, "bucket for source %q has unknown scalar type", b.SourceName)
	}
	if len(b.Values) == 0 {
		return dperror.Newf(dperror.KindMissingResource, "bucket for source %q has an empty data column", b.SourceName)
	}
	if len(b.Values) != b.Timestamps.Len() {
		return dperror.Newf(dperror.KindInconsistentColumnSize,
			"bucket for source %q has %d values for %d timestamps", b.SourceName, len(b.Values), b.Timestamps.Len())
	}
	for i, v := range b.Values {
		if err := b.DataType.CheckValue(v); err != nil {
			return dperror.Newf(dperror.KindUnsupportedType, "bucket for source %q value %d: %v", b.SourceName, i, err)
		}
	}
	return nil
}

// TimeDomain is the closed interval covered by the bucket's timestamps.
func (b DataBucket) TimeDomain() TimeInterval {
	return b.Timestamps.TimeDomain()
}
