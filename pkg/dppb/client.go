package dppb

import (
	context "context"

	grpc "google.golang.org/grpc"
)

// DpQueryServiceClient is the client API for the Data Platform query
// service. The three call shapes correspond to the stream types supported by
// query requests.
type DpQueryServiceClient interface {
	// QueryData executes a query as a single request/response exchange.
	QueryData(ctx context.Context, in *QueryDataRequest, opts ...grpc.CallOption) (*QueryDataResponse, error)
	// QueryDataStream executes a query as a server stream: the server pushes
	// responses until it half-closes.
	QueryDataStream(ctx context.Context, in *QueryDataRequest, opts ...grpc.CallOption) (DpQueryService_QueryDataStreamClient, error)
	// QueryDataBidiStream opens a bidirectional query stream driven by
	// cursor operations.
	QueryDataBidiStream(ctx context.Context, opts ...grpc.CallOption) (DpQueryService_QueryDataBidiStreamClient, error)
}

type dpQueryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDpQueryServiceClient(cc grpc.ClientConnInterface) DpQueryServiceClient {
	return &dpQueryServiceClient{cc}
}

func (c *dpQueryServiceClient) QueryData(ctx context.Context, in *QueryDataRequest, opts ...grpc.CallOption) (*QueryDataResponse, error) {
	out := new(QueryDataResponse)
	err := c.cc.Invoke(ctx, "/dp.DpQueryService/QueryData", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dpQueryServiceClient) QueryDataStream(ctx context.Context, in *QueryDataRequest, opts ...grpc.CallOption) (DpQueryService_QueryDataStreamClient, error) {
	stream, err := c.cc.NewStream(ctx, &_DpQueryService_serviceDesc.Streams[0], "/dp.DpQueryService/QueryDataStream", opts...)
	if err != nil {
		return nil, err
	}
	x := &dpQueryServiceQueryDataStreamClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type DpQueryService_QueryDataStreamClient interface {
	Recv() (*QueryDataResponse, error)
	grpc.ClientStream
}

type dpQueryServiceQueryDataStreamClient struct {
	grpc.ClientStream
}

func (x *dpQueryServiceQueryDataStreamClient) Recv() (*QueryDataResponse, error) {
	m := new(QueryDataResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *dpQueryServiceClient) QueryDataBidiStream(ctx context.Context, opts ...grpc.CallOption) (DpQueryService_QueryDataBidiStreamClient, error) {
	stream, err := c.cc.NewStream(ctx, &_DpQueryService_serviceDesc.Streams[1], "/dp.DpQueryService/QueryDataBidiStream", opts...)
	if err != nil {
		return nil, err
	}
	return &dpQueryServiceQueryDataBidiStreamClient{stream}, nil
}

type DpQueryService_QueryDataBidiStreamClient interface {
	Send(*QueryDataRequest) error
	Recv() (*QueryDataResponse, error)
	grpc.ClientStream
}

type dpQueryServiceQueryDataBidiStreamClient struct {
	grpc.ClientStream
}

func (x *dpQueryServiceQueryDataBidiStreamClient) Send(m *QueryDataRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *dpQueryServiceQueryDataBidiStreamClient) Recv() (*QueryDataResponse, error) {
	m := new(QueryDataResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

var _DpQueryService_serviceDesc = grpc.ServiceDesc{
	ServiceName: "dp.DpQueryService",
	HandlerType: nil,
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "QueryDataStream",
			ServerStreams: true,
		},
		{
			StreamName:    "QueryDataBidiStream",
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "dp_query.proto",
}
