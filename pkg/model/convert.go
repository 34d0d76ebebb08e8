package model

import (
	"time"

	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/dppb"
)

// Conversion between the wire schema (pkg/dppb) and the domain types. All
// functions are pure; they neither perform I/O nor hold state.

func TimestampToDomain(ts *dppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return time.Unix(ts.EpochSeconds, ts.Nanoseconds).UTC()
}

func TimestampToWire(t time.Time) *dppb.Timestamp {
	return &dppb.Timestamp{
		EpochSeconds: t.Unix(),
		Nanoseconds:  int64(t.Nanosecond()),
	}
}

func ScalarTypeToDomain(t dppb.DataType) (ScalarType, error) {
	switch t {
	case dppb.DataType_BOOL:
		return TypeBool, nil
	case dppb.DataType_INT32:
		return TypeInt32, nil
	case dppb.DataType_INT64:
		return TypeInt64, nil
	case dppb.DataType_FLOAT32:
		return TypeFloat32, nil
	case dppb.DataType_FLOAT64:
		return TypeFloat64, nil
	case dppb.DataType_STRING:
		return TypeString, nil
	case dppb.DataType_IMAGE:
		return TypeImage, nil
	default:
		return TypeUnknown, dperror.Newf(dperror.KindUnsupportedType, "wire data type %s has no domain scalar type", t)
	}
}

func ScalarTypeToWire(t ScalarType) dppb.DataType {
	switch t {
	case TypeBool:
		return dppb.DataType_BOOL
	case TypeInt32:
		return dppb.DataType_INT32
	case TypeInt64:
		return dppb.DataType_INT64
	case TypeFloat32:
		return dppb.DataType_FLOAT32
	case TypeFloat64:
		return dppb.DataType_FLOAT64
	case TypeString:
		return dppb.DataType_STRING
	case TypeImage:
		return dppb.DataType_IMAGE
	default:
		return dppb.DataType_DATA_TYPE_UNSPECIFIED
	}
}

// ValueToDomain decodes one typed-union cell. A nil cell, or a cell with no
// member set, decodes to nil (missing sample).
func ValueToDomain(v *dppb.DataValue) interface{} {
	switch {
	case v == nil:
		return nil
	case v.BoolValue != nil:
		return *v.BoolValue
	case v.Int32Value != nil:
		return *v.Int32Value
	case v.Int64Value != nil:
		return *v.Int64Value
	case v.Float32Value != nil:
		return *v.Float32Value
	case v.Float64Value != nil:
		return *v.Float64Value
	case v.StringValue != nil:
		return *v.StringValue
	case v.ImageValue != nil:
		return v.ImageValue
	default:
		return nil
	}
}

// ValueToWire encodes one sample. nil encodes to an empty cell.
func ValueToWire(v interface{}) (*dppb.DataValue, error) {
	out := &dppb.DataValue{}
	switch val := v.(type) {
	case nil:
	case bool:
		out.BoolValue = &val
	case int32:
		out.Int32Value = &val
	case int64:
		out.Int64Value = &val
	case float32:
		out.Float32Value = &val
	case float64:
		out.Float64Value = &val
	case string:
		out.StringValue = &val
	case []byte:
		out.ImageValue = val
	default:
		return nil, dperror.Newf(dperror.KindUnsupportedType, "value of type %T has no wire encoding", v)
	}
	return out, nil
}

// DescriptorToDomain converts a wire DataTimestamps to the matching
// descriptor variant.
func DescriptorToDomain(dt *dppb.DataTimestamps) (TimestampDescriptor, error) {
	switch {
	case dt == nil:
		return nil, dperror.New(dperror.KindMissingResource, "bucket carries no timestamp descriptor")
	case dt.SamplingClock != nil:
		clock := UniformClock{
			Start:       TimestampToDomain(dt.SamplingClock.StartTime),
			PeriodNanos: dt.SamplingClock.PeriodNanos,
			Count:       dt.SamplingClock.Count,
		}
		if err := clock.Validate(); err != nil {
			return nil, err
		}
		return clock, nil
	case dt.TimestampList != nil:
		times := make([]time.Time, 0, len(dt.TimestampList.Timestamps))
		for _, ts := range dt.TimestampList.Timestamps {
			times = append(times, TimestampToDomain(ts))
		}
		list := TimestampList{Times: times}
		if err := list.Validate(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, dperror.New(dperror.KindMissingResource, "timestamp descriptor has no variant set")
	}
}

func DescriptorToWire(desc TimestampDescriptor) *dppb.DataTimestamps {
	switch d := desc.(type) {
	case UniformClock:
		return &dppb.DataTimestamps{
			SamplingClock: &dppb.SamplingClock{
				StartTime:   TimestampToWire(d.Start),
				PeriodNanos: d.PeriodNanos,
				Count:       d.Count,
			},
		}
	case TimestampList:
		out := &dppb.TimestampList{Timestamps: make([]*dppb.Timestamp, 0, len(d.Times))}
		for _, t := range d.Times {
			out.Timestamps = append(out.Timestamps, TimestampToWire(t))
		}
		return &dppb.DataTimestamps{TimestampList: out}
	default:
		return nil
	}
}

// BucketToDomain converts a wire bucket and validates the result.
func BucketToDomain(b *dppb.DataBucket) (DataBucket, error) {
	if b == nil || b.DataColumn == nil {
		return DataBucket{}, dperror.New(dperror.KindMissingResource, "wire bucket carries no data column")
	}

	typ, err := ScalarTypeToDomain(b.DataColumn.DataType)
	if err != nil {
		return DataBucket{}, err
	}

	desc, err := DescriptorToDomain(b.DataTimestamps)
	if err != nil {
		return DataBucket{}, err
	}

	values := make([]interface{}, 0, len(b.DataColumn.Values))
	for _, v := range b.DataColumn.Values {
		values = append(values, ValueToDomain(v))
	}

	bucket := DataBucket{
		SourceName: b.DataColumn.Name,
		DataType:   typ,
		Values:     values,
		Timestamps: desc,
	}
	if err := bucket.Validate(); err != nil {
		return DataBucket{}, err
	}
	return bucket, nil
}

func BucketToWire(b DataBucket) (*dppb.DataBucket, error) {
	values := make([]*dppb.DataValue, 0, len(b.Values))
	for _, v := range b.Values {
		wv, err := ValueToWire(v)
		if err != nil {
			return nil, err
		}
		values = append(values, wv)
	}

	return &dppb.DataBucket{
		DataColumn: &dppb.DataColumn{
			Name:     b.SourceName,
			DataType: ScalarTypeToWire(b.DataType),
			Values:   values,
		},
		DataTimestamps: DescriptorToWire(b.Timestamps),
	}, nil
}

func DataBlockToDomain(b *dppb.DataBlock) DataBlock {
	return NewDataBlock(b.SourceNames, TimeInterval{
		Begin: TimestampToDomain(b.BeginTime),
		End:   TimestampToDomain(b.EndTime),
	})
}

func DataBlockToWire(b DataBlock) *dppb.DataBlock {
	return &dppb.DataBlock{
		BeginTime:   TimestampToWire(b.Range.Begin),
		EndTime:     TimestampToWire(b.Range.End),
		SourceNames: b.SourceNames(),
	}
}

// DataSetDef is the domain form of a dataset definition.
type DataSetDef struct {
	ID          string
	Name        string
	OwnerID     string
	Description string
	Blocks      []DataBlock
}

func DataSetToDomain(ds *dppb.DataSet) DataSetDef {
	out := DataSetDef{
		ID:          ds.Id,
		Name:        ds.Name,
		OwnerID:     ds.OwnerId,
		Description: ds.Description,
	}
	for _, b := range ds.DataBlocks {
		out.Blocks = append(out.Blocks, DataBlockToDomain(b))
	}
	return out
}

func DataSetToWire(ds DataSetDef) *dppb.DataSet {
	out := &dppb.DataSet{
		Id:          ds.ID,
		Name:        ds.Name,
		OwnerId:     ds.OwnerID,
		Description: ds.Description,
	}
	for _, b := range ds.Blocks {
		out.DataBlocks = append(out.DataBlocks, DataBlockToWire(b))
	}
	return out
}

// ExceptionalResultToError maps a server-side exceptional result to the
// tagged ServerError kind, preserving the server's message.
func ExceptionalResultToError(ex *dppb.ExceptionalResult) error {
	if ex == nil {
		return nil
	}
	return dperror.New(dperror.KindServer, ex.Message)
}

// UnpackResponse extracts the domain buckets of one response message. An
// exceptional result surfaces as a ServerError.
func UnpackResponse(resp *dppb.QueryDataResponse) ([]DataBucket, error) {
	if resp == nil {
		return nil, nil
	}
	if resp.ExceptionalResult != nil {
		return nil, ExceptionalResultToError(resp.ExceptionalResult)
	}

	wire := resp.GetQueryData().GetDataBuckets()
	buckets := make([]DataBucket, 0, len(wire))
	for _, wb := range wire {
		b, err := BucketToDomain(wb)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}
