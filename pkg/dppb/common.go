// Package dppb contains hand-maintained Go bindings for the Data Platform
// wire schema, plus the gRPC client stubs for the query service.
//
// The upstream schema expresses unions (data values, timestamp descriptors,
// response payloads) as protobuf oneofs. These bindings flatten each oneof
// into mutually exclusive optional fields with the same field numbers, which
// is identical on the wire; at most one member is ever populated.
package dppb

import (
	proto "github.com/gogo/protobuf/proto"
)

type DataType int32

const (
	DataType_DATA_TYPE_UNSPECIFIED DataType = 0
	DataType_BOOL                  DataType = 1
	DataType_INT32                 DataType = 2
	DataType_INT64                 DataType = 3
	DataType_FLOAT32               DataType = 4
	DataType_FLOAT64               DataType = 5
	DataType_STRING                DataType = 6
	DataType_IMAGE                 DataType = 7
)

var DataType_name = map[int32]string{
	0: "DATA_TYPE_UNSPECIFIED",
	1: "BOOL",
	2: "INT32",
	3: "INT64",
	4: "FLOAT32",
	5: "FLOAT64",
	6: "STRING",
	7: "IMAGE",
}

var DataType_value = map[string]int32{
	"DATA_TYPE_UNSPECIFIED": 0,
	"BOOL":                  1,
	"INT32":                 2,
	"INT64":                 3,
	"FLOAT32":               4,
	"FLOAT64":               5,
	"STRING":                6,
	"IMAGE":                 7,
}

func (x DataType) String() string {
	return proto.EnumName(DataType_name, int32(x))
}

type ExceptionalResultStatus int32

const (
	ExceptionalResultStatus_RESULT_STATUS_UNSPECIFIED ExceptionalResultStatus = 0
	ExceptionalResultStatus_RESULT_STATUS_REJECT      ExceptionalResultStatus = 1
	ExceptionalResultStatus_RESULT_STATUS_ERROR       ExceptionalResultStatus = 2
	ExceptionalResultStatus_RESULT_STATUS_EMPTY       ExceptionalResultStatus = 3
	ExceptionalResultStatus_RESULT_STATUS_NOT_READY   ExceptionalResultStatus = 4
)

var ExceptionalResultStatus_name = map[int32]string{
	0: "RESULT_STATUS_UNSPECIFIED",
	1: "RESULT_STATUS_REJECT",
	2: "RESULT_STATUS_ERROR",
	3: "RESULT_STATUS_EMPTY",
	4: "RESULT_STATUS_NOT_READY",
}

var ExceptionalResultStatus_value = map[string]int32{
	"RESULT_STATUS_UNSPECIFIED": 0,
	"RESULT_STATUS_REJECT":      1,
	"RESULT_STATUS_ERROR":       2,
	"RESULT_STATUS_EMPTY":       3,
	"RESULT_STATUS_NOT_READY":   4,
}

func (x ExceptionalResultStatus) String() string {
	return proto.EnumName(ExceptionalResultStatus_name, int32(x))
}

// Timestamp is an instant as seconds and nanoseconds since the epoch.
type Timestamp struct {
	EpochSeconds int64 `protobuf:"varint,1,opt,name=epoch_seconds,json=epochSeconds,proto3" json:"epoch_seconds,omitempty"`
	Nanoseconds  int64 `protobuf:"varint,2,opt,name=nanoseconds,proto3" json:"nanoseconds,omitempty"`
}

func (m *Timestamp) Reset()         { *m = Timestamp{} }
func (m *Timestamp) String() string { return proto.CompactTextString(m) }
func (*Timestamp) ProtoMessage()    {}

// SamplingClock is a uniform timestamp descriptor: count instants spaced
// period_nanos apart from start_time.
type SamplingClock struct {
	StartTime   *Timestamp `protobuf:"bytes,1,opt,name=start_time,json=startTime,proto3" json:"start_time,omitempty"`
	PeriodNanos int64      `protobuf:"varint,2,opt,name=period_nanos,json=periodNanos,proto3" json:"period_nanos,omitempty"`
	Count       int32      `protobuf:"varint,3,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *SamplingClock) Reset()         { *m = SamplingClock{} }
func (m *SamplingClock) String() string { return proto.CompactTextString(m) }
func (*SamplingClock) ProtoMessage()    {}

// TimestampList is an explicit timestamp descriptor.
type TimestampList struct {
	Timestamps []*Timestamp `protobuf:"bytes,1,rep,name=timestamps,proto3" json:"timestamps,omitempty"`
}

func (m *TimestampList) Reset()         { *m = TimestampList{} }
func (m *TimestampList) String() string { return proto.CompactTextString(m) }
func (*TimestampList) ProtoMessage()    {}

// DataTimestamps carries exactly one timestamp descriptor variant.
type DataTimestamps struct {
	SamplingClock *SamplingClock `protobuf:"bytes,1,opt,name=sampling_clock,json=samplingClock,proto3" json:"sampling_clock,omitempty"`
	TimestampList *TimestampList `protobuf:"bytes,2,opt,name=timestamp_list,json=timestampList,proto3" json:"timestamp_list,omitempty"`
}

func (m *DataTimestamps) Reset()         { *m = DataTimestamps{} }
func (m *DataTimestamps) String() string { return proto.CompactTextString(m) }
func (*DataTimestamps) ProtoMessage()    {}

// DataValue carries at most one typed sample. A DataValue with no member set
// is a missing cell.
type DataValue struct {
	BoolValue    *bool    `protobuf:"varint,1,opt,name=bool_value,json=boolValue" json:"bool_value,omitempty"`
	Int32Value   *int32   `protobuf:"varint,2,opt,name=int32_value,json=int32Value" json:"int32_value,omitempty"`
	Int64Value   *int64   `protobuf:"varint,3,opt,name=int64_value,json=int64Value" json:"int64_value,omitempty"`
	Float32Value *float32 `protobuf:"fixed32,4,opt,name=float32_value,json=float32Value" json:"float32_value,omitempty"`
	Float64Value *float64 `protobuf:"fixed64,5,opt,name=float64_value,json=float64Value" json:"float64_value,omitempty"`
	StringValue  *string  `protobuf:"bytes,6,opt,name=string_value,json=stringValue" json:"string_value,omitempty"`
	ImageValue   []byte   `protobuf:"bytes,7,opt,name=image_value,json=imageValue" json:"image_value,omitempty"`
}

func (m *DataValue) Reset()         { *m = DataValue{} }
func (m *DataValue) String() string { return proto.CompactTextString(m) }
func (*DataValue) ProtoMessage()    {}

// DataColumn is one source's sample column.
type DataColumn struct {
	Name     string       `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	DataType DataType     `protobuf:"varint,2,opt,name=data_type,json=dataType,proto3,enum=dp.DataType" json:"data_type,omitempty"`
	Values   []*DataValue `protobuf:"bytes,3,rep,name=values,proto3" json:"values,omitempty"`
}

func (m *DataColumn) Reset()         { *m = DataColumn{} }
func (m *DataColumn) String() string { return proto.CompactTextString(m) }
func (*DataColumn) ProtoMessage()    {}

// DataBucket pairs one column with its timestamp descriptor.
type DataBucket struct {
	DataColumn     *DataColumn     `protobuf:"bytes,1,opt,name=data_column,json=dataColumn,proto3" json:"data_column,omitempty"`
	DataTimestamps *DataTimestamps `protobuf:"bytes,2,opt,name=data_timestamps,json=dataTimestamps,proto3" json:"data_timestamps,omitempty"`
}

func (m *DataBucket) Reset()         { *m = DataBucket{} }
func (m *DataBucket) String() string { return proto.CompactTextString(m) }
func (*DataBucket) ProtoMessage()    {}

// ExceptionalResult reports a server-side rejection or failure.
type ExceptionalResult struct {
	Status  ExceptionalResultStatus `protobuf:"varint,1,opt,name=status,proto3,enum=dp.ExceptionalResultStatus" json:"status,omitempty"`
	Message string                  `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *ExceptionalResult) Reset()         { *m = ExceptionalResult{} }
func (m *ExceptionalResult) String() string { return proto.CompactTextString(m) }
func (*ExceptionalResult) ProtoMessage()    {}

func (m *ExceptionalResult) GetMessage() string {
	if m != nil {
		return m.Message
	}
	return ""
}

func init() {
	proto.RegisterEnum("dp.DataType", DataType_name, DataType_value)
	proto.RegisterEnum("dp.ExceptionalResultStatus", ExceptionalResultStatus_name, ExceptionalResultStatus_value)
	proto.RegisterType((*Timestamp)(nil), "dp.Timestamp")
	proto.RegisterType((*SamplingClock)(nil), "dp.SamplingClock")
	proto.RegisterType((*TimestampList)(nil), "dp.TimestampList")
	proto.RegisterType((*DataTimestamps)(nil), "dp.DataTimestamps")
	proto.RegisterType((*DataValue)(nil), "dp.DataValue")
	proto.RegisterType((*DataColumn)(nil), "dp.DataColumn")
	proto.RegisterType((*DataBucket)(nil), "dp.DataBucket")
	proto.RegisterType((*ExceptionalResult)(nil), "dp.ExceptionalResult")
}
