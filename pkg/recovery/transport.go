package recovery

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/scigrid/dpclient/pkg/dpcodec"
	"github.com/scigrid/dpclient/pkg/dppb"
)

// Transport is the capability the recovery channel needs from the wire: the
// three call shapes of the query service. The production implementation
// wraps the gRPC stubs; tests substitute in-memory fakes.
type Transport interface {
	QueryData(ctx context.Context, req *dppb.QueryDataRequest) (*dppb.QueryDataResponse, error)
	QueryDataStream(ctx context.Context, req *dppb.QueryDataRequest) (ResponseStream, error)
	QueryDataBidi(ctx context.Context) (BidiStream, error)
}

// ResponseStream yields response messages until io.EOF.
type ResponseStream interface {
	Recv() (*dppb.QueryDataResponse, error)
}

// BidiStream is a cursor-driven response stream.
type BidiStream interface {
	Send(req *dppb.QueryDataRequest) error
	Recv() (*dppb.QueryDataResponse, error)
	CloseSend() error
}

type grpcTransport struct {
	client dppb.DpQueryServiceClient
}

// NewGRPCTransport wraps a client connection as a Transport.
func NewGRPCTransport(cc grpc.ClientConnInterface) Transport {
	return &grpcTransport{client: dppb.NewDpQueryServiceClient(cc)}
}

func (t *grpcTransport) QueryData(ctx context.Context, req *dppb.QueryDataRequest) (*dppb.QueryDataResponse, error) {
	return t.client.QueryData(ctx, req)
}

func (t *grpcTransport) QueryDataStream(ctx context.Context, req *dppb.QueryDataRequest) (ResponseStream, error) {
	return t.client.QueryDataStream(ctx, req)
}

func (t *grpcTransport) QueryDataBidi(ctx context.Context) (BidiStream, error) {
	return t.client.QueryDataBidiStream(ctx)
}

// DialConfig configures the client connection to the query service.
type DialConfig struct {
	Address        string        `yaml:"address"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	MaxRecvMsgSize int           `yaml:"max_recv_msg_size"`
	MaxSendMsgSize int           `yaml:"max_send_msg_size"`
	Insecure       bool          `yaml:"insecure"`
}

func (cfg *DialConfig) ApplyDefaults() {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.MaxRecvMsgSize == 0 {
		cfg.MaxRecvMsgSize = 100 << 20
	}
	if cfg.MaxSendMsgSize == 0 {
		cfg.MaxSendMsgSize = 16 << 20
	}
}

// Dial opens the gRPC connection used by a query client. The returned
// connection is owned by the caller.
func Dial(cfg DialConfig) (*grpc.ClientConn, error) {
	cfg.ApplyDefaults()

	opts := []grpc.DialOption{
		grpc.WithDefaultCallOptions(
			grpc.ForceCodec(dpcodec.NewCodec()),
			grpc.MaxCallRecvMsgSize(cfg.MaxRecvMsgSize),
			grpc.MaxCallSendMsgSize(cfg.MaxSendMsgSize),
		),
	}
	if cfg.Insecure {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	conn, err := grpc.NewClient(cfg.Address, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "dialing query service")
	}
	return conn, nil
}
