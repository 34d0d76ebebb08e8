package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/dppb"
)

func TestTimestampRoundTrip(t *testing.T) {
	instants := []time.Time{
		testStart,
		testStart.Add(123456789 * time.Nanosecond),
		time.Date(1999, 12, 31, 23, 59, 59, 999999999, time.UTC),
	}
	for _, in := range instants {
		assert.Equal(t, in, TimestampToDomain(TimestampToWire(in)))
	}
	assert.True(t, TimestampToDomain(nil).IsZero())
}

func TestScalarTypeRoundTrip(t *testing.T) {
	for _, typ := range []ScalarType{TypeBool, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64, TypeString, TypeImage} {
		got, err := ScalarTypeToDomain(ScalarTypeToWire(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := ScalarTypeToDomain(dppb.DataType_DATA_TYPE_UNSPECIFIED)
	assert.True(t, dperror.IsKind(err, dperror.KindUnsupportedType))
}

func TestValueRoundTrip(t *testing.T) {
	values := []interface{}{
		true, int32(7), int64(-9), float32(1.5), float64(2.25), "hello", []byte{0xde, 0xad},
		nil,
	}
	for _, in := range values {
		wire, err := ValueToWire(in)
		require.NoError(t, err)
		assert.Equal(t, in, ValueToDomain(wire))
	}

	_, err := ValueToWire(struct{}{})
	assert.True(t, dperror.IsKind(err, dperror.KindUnsupportedType))
	assert.Nil(t, ValueToDomain(nil))
}

func TestBucketRoundTrip(t *testing.T) {
	clock := testClock(0, 1, 3)
	buckets := []DataBucket{
		{
			SourceName: "thermo-1",
			DataType:   TypeFloat64,
			Values:     []interface{}{1.0, nil, 3.0},
			Timestamps: clock,
		},
		{
			SourceName: "status-2",
			DataType:   TypeString,
			Values:     []interface{}{"up", "up", "down"},
			Timestamps: TimestampList{Times: clock.Instants()},
		},
	}

	for _, in := range buckets {
		wire, err := BucketToWire(in)
		require.NoError(t, err)
		out, err := BucketToDomain(wire)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestBucketToDomainRejectsBadWire(t *testing.T) {
	_, err := BucketToDomain(nil)
	assert.True(t, dperror.IsKind(err, dperror.KindMissingResource))

	_, err = BucketToDomain(&dppb.DataBucket{DataColumn: &dppb.DataColumn{Name: "a"}})
	assert.Error(t, err)

	// column length disagreeing with the clock
	_, err = BucketToDomain(&dppb.DataBucket{
		DataColumn: &dppb.DataColumn{
			Name:     "a",
			DataType: dppb.DataType_FLOAT64,
			Values:   []*dppb.DataValue{{}},
		},
		DataTimestamps: DescriptorToWire(testClock(0, 1, 3)),
	})
	assert.True(t, dperror.IsKind(err, dperror.KindInconsistentColumnSize))
}

func TestDataSetRoundTrip(t *testing.T) {
	in := DataSetDef{
		ID:          "ds-1",
		Name:        "beam diagnostics",
		OwnerID:     "ops",
		Description: "per-shift beam current and vacuum",
		Blocks: []DataBlock{
			NewDataBlock([]string{"bpm-1", "bpm-2"}, interval(0, 9)),
			NewDataBlock([]string{"vac-1"}, interval(10, 19)),
		},
	}

	out := DataSetToDomain(DataSetToWire(in))
	assert.Equal(t, in, out)
}

func TestUnpackResponse(t *testing.T) {
	clock := testClock(0, 1, 2)
	wireBucket, err := BucketToWire(DataBucket{
		SourceName: "a",
		DataType:   TypeInt64,
		Values:     []interface{}{int64(1), int64(2)},
		Timestamps: clock,
	})
	require.NoError(t, err)

	buckets, err := UnpackResponse(&dppb.QueryDataResponse{
		QueryData: &dppb.QueryData{DataBuckets: []*dppb.DataBucket{wireBucket}},
	})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "a", buckets[0].SourceName)

	_, err = UnpackResponse(&dppb.QueryDataResponse{
		ExceptionalResult: &dppb.ExceptionalResult{
			Status:  dppb.ExceptionalResultStatus_RESULT_STATUS_ERROR,
			Message: "quota exceeded",
		},
	})
	require.Error(t, err)
	assert.True(t, dperror.IsKind(err, dperror.KindServer))
	assert.Contains(t, err.Error(), "quota exceeded")

	buckets, err = UnpackResponse(nil)
	assert.NoError(t, err)
	assert.Empty(t, buckets)
}
