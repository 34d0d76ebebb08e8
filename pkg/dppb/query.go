package dppb

import (
	proto "github.com/gogo/protobuf/proto"
)

type CursorOperationType int32

const (
	CursorOperationType_CURSOR_OP_UNSPECIFIED CursorOperationType = 0
	CursorOperationType_CURSOR_OP_NEXT        CursorOperationType = 1
)

var CursorOperationType_name = map[int32]string{
	0: "CURSOR_OP_UNSPECIFIED",
	1: "CURSOR_OP_NEXT",
}

var CursorOperationType_value = map[string]int32{
	"CURSOR_OP_UNSPECIFIED": 0,
	"CURSOR_OP_NEXT":        1,
}

func (x CursorOperationType) String() string {
	return proto.EnumName(CursorOperationType_name, int32(x))
}

// QuerySpec names the sources and the closed time range of one query.
type QuerySpec struct {
	BeginTime   *Timestamp `protobuf:"bytes,1,opt,name=begin_time,json=beginTime,proto3" json:"begin_time,omitempty"`
	EndTime     *Timestamp `protobuf:"bytes,2,opt,name=end_time,json=endTime,proto3" json:"end_time,omitempty"`
	SourceNames []string   `protobuf:"bytes,3,rep,name=source_names,json=sourceNames,proto3" json:"source_names,omitempty"`
}

func (m *QuerySpec) Reset()         { *m = QuerySpec{} }
func (m *QuerySpec) String() string { return proto.CompactTextString(m) }
func (*QuerySpec) ProtoMessage()    {}

// CursorOperation advances a bidirectional query stream.
type CursorOperation struct {
	Type CursorOperationType `protobuf:"varint,1,opt,name=type,proto3,enum=dp.CursorOperationType" json:"type,omitempty"`
}

func (m *CursorOperation) Reset()         { *m = CursorOperation{} }
func (m *CursorOperation) String() string { return proto.CompactTextString(m) }
func (*CursorOperation) ProtoMessage()    {}

// QueryDataRequest opens a query (Spec set) or, on a bidirectional stream,
// requests the next batch (CursorOp set). Exactly one member is populated.
type QueryDataRequest struct {
	Spec     *QuerySpec       `protobuf:"bytes,1,opt,name=spec,proto3" json:"spec,omitempty"`
	CursorOp *CursorOperation `protobuf:"bytes,2,opt,name=cursor_op,json=cursorOp,proto3" json:"cursor_op,omitempty"`
}

func (m *QueryDataRequest) Reset()         { *m = QueryDataRequest{} }
func (m *QueryDataRequest) String() string { return proto.CompactTextString(m) }
func (*QueryDataRequest) ProtoMessage()    {}

// QueryData is one batch of data buckets.
type QueryData struct {
	DataBuckets []*DataBucket `protobuf:"bytes,1,rep,name=data_buckets,json=dataBuckets,proto3" json:"data_buckets,omitempty"`
}

func (m *QueryData) Reset()         { *m = QueryData{} }
func (m *QueryData) String() string { return proto.CompactTextString(m) }
func (*QueryData) ProtoMessage()    {}

func (m *QueryData) GetDataBuckets() []*DataBucket {
	if m != nil {
		return m.DataBuckets
	}
	return nil
}

// QueryDataResponse carries either a batch of data or an exceptional result.
// Exactly one member is populated.
type QueryDataResponse struct {
	ExceptionalResult *ExceptionalResult `protobuf:"bytes,1,opt,name=exceptional_result,json=exceptionalResult,proto3" json:"exceptional_result,omitempty"`
	QueryData         *QueryData         `protobuf:"bytes,2,opt,name=query_data,json=queryData,proto3" json:"query_data,omitempty"`
}

func (m *QueryDataResponse) Reset()         { *m = QueryDataResponse{} }
func (m *QueryDataResponse) String() string { return proto.CompactTextString(m) }
func (*QueryDataResponse) ProtoMessage()    {}

func (m *QueryDataResponse) GetExceptionalResult() *ExceptionalResult {
	if m != nil {
		return m.ExceptionalResult
	}
	return nil
}

func (m *QueryDataResponse) GetQueryData() *QueryData {
	if m != nil {
		return m.QueryData
	}
	return nil
}

func init() {
	proto.RegisterEnum("dp.CursorOperationType", CursorOperationType_name, CursorOperationType_value)
	proto.RegisterType((*QuerySpec)(nil), "dp.QuerySpec")
	proto.RegisterType((*CursorOperation)(nil), "dp.CursorOperation")
	proto.RegisterType((*QueryDataRequest)(nil), "dp.QueryDataRequest")
	proto.RegisterType((*QueryData)(nil), "dp.QueryData")
	proto.RegisterType((*QueryDataResponse)(nil), "dp.QueryDataResponse")
}
