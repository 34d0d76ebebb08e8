package dppb

import (
	proto "github.com/gogo/protobuf/proto"
)

// DataBlock names a rectangle of data space inside a dataset definition.
type DataBlock struct {
	BeginTime   *Timestamp `protobuf:"bytes,1,opt,name=begin_time,json=beginTime,proto3" json:"begin_time,omitempty"`
	EndTime     *Timestamp `protobuf:"bytes,2,opt,name=end_time,json=endTime,proto3" json:"end_time,omitempty"`
	SourceNames []string   `protobuf:"bytes,3,rep,name=source_names,json=sourceNames,proto3" json:"source_names,omitempty"`
}

func (m *DataBlock) Reset()         { *m = DataBlock{} }
func (m *DataBlock) String() string { return proto.CompactTextString(m) }
func (*DataBlock) ProtoMessage()    {}

// DataSet is a named collection of data blocks.
type DataSet struct {
	Id          string       `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Name        string       `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	OwnerId     string       `protobuf:"bytes,3,opt,name=owner_id,json=ownerId,proto3" json:"owner_id,omitempty"`
	Description string       `protobuf:"bytes,4,opt,name=description,proto3" json:"description,omitempty"`
	DataBlocks  []*DataBlock `protobuf:"bytes,5,rep,name=data_blocks,json=dataBlocks,proto3" json:"data_blocks,omitempty"`
}

func (m *DataSet) Reset()         { *m = DataSet{} }
func (m *DataSet) String() string { return proto.CompactTextString(m) }
func (*DataSet) ProtoMessage()    {}

type CreateDataSetRequest struct {
	DataSet *DataSet `protobuf:"bytes,1,opt,name=data_set,json=dataSet,proto3" json:"data_set,omitempty"`
}

func (m *CreateDataSetRequest) Reset()         { *m = CreateDataSetRequest{} }
func (m *CreateDataSetRequest) String() string { return proto.CompactTextString(m) }
func (*CreateDataSetRequest) ProtoMessage()    {}

// CreateDataSetResponse returns the new dataset id or an exceptional result.
// Exactly one member is populated.
type CreateDataSetResponse struct {
	ExceptionalResult *ExceptionalResult `protobuf:"bytes,1,opt,name=exceptional_result,json=exceptionalResult,proto3" json:"exceptional_result,omitempty"`
	DataSetId         string             `protobuf:"bytes,2,opt,name=data_set_id,json=dataSetId,proto3" json:"data_set_id,omitempty"`
}

func (m *CreateDataSetResponse) Reset()         { *m = CreateDataSetResponse{} }
func (m *CreateDataSetResponse) String() string { return proto.CompactTextString(m) }
func (*CreateDataSetResponse) ProtoMessage()    {}

type QueryDataSetsRequest struct {
	OwnerId string `protobuf:"bytes,1,opt,name=owner_id,json=ownerId,proto3" json:"owner_id,omitempty"`
	Text    string `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
}

func (m *QueryDataSetsRequest) Reset()         { *m = QueryDataSetsRequest{} }
func (m *QueryDataSetsRequest) String() string { return proto.CompactTextString(m) }
func (*QueryDataSetsRequest) ProtoMessage()    {}

type QueryDataSetsResponse struct {
	ExceptionalResult *ExceptionalResult `protobuf:"bytes,1,opt,name=exceptional_result,json=exceptionalResult,proto3" json:"exceptional_result,omitempty"`
	DataSets          []*DataSet         `protobuf:"bytes,2,rep,name=data_sets,json=dataSets,proto3" json:"data_sets,omitempty"`
}

func (m *QueryDataSetsResponse) Reset()         { *m = QueryDataSetsResponse{} }
func (m *QueryDataSetsResponse) String() string { return proto.CompactTextString(m) }
func (*QueryDataSetsResponse) ProtoMessage()    {}

func init() {
	proto.RegisterType((*DataBlock)(nil), "dp.DataBlock")
	proto.RegisterType((*DataSet)(nil), "dp.DataSet")
	proto.RegisterType((*CreateDataSetRequest)(nil), "dp.CreateDataSetRequest")
	proto.RegisterType((*CreateDataSetResponse)(nil), "dp.CreateDataSetResponse")
	proto.RegisterType((*QueryDataSetsRequest)(nil), "dp.QueryDataSetsRequest")
	proto.RegisterType((*QueryDataSetsResponse)(nil), "dp.QueryDataSetsResponse")
}
