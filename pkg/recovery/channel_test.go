package recovery

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/gogo/status"
	"github.com/grafana/dskit/backoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc/codes"

	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/dppb"
	"github.com/scigrid/dpclient/pkg/query"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() Config {
	return Config{
		QueueSize: 16,
		Backoff: backoff.Config{
			MinBackoff: time.Millisecond,
			MaxBackoff: 4 * time.Millisecond,
			MaxRetries: 3,
		},
	}
}

type fakeTransport struct {
	unary  func(ctx context.Context, req *dppb.QueryDataRequest) (*dppb.QueryDataResponse, error)
	stream func(ctx context.Context, req *dppb.QueryDataRequest) (ResponseStream, error)
	bidi   func(ctx context.Context) (BidiStream, error)
}

func (t *fakeTransport) QueryData(ctx context.Context, req *dppb.QueryDataRequest) (*dppb.QueryDataResponse, error) {
	return t.unary(ctx, req)
}

func (t *fakeTransport) QueryDataStream(ctx context.Context, req *dppb.QueryDataRequest) (ResponseStream, error) {
	return t.stream(ctx, req)
}

func (t *fakeTransport) QueryDataBidi(ctx context.Context) (BidiStream, error) {
	return t.bidi(ctx)
}

type fakeStream struct {
	msgs     []*dppb.QueryDataResponse
	finalErr error
	i        int
}

func (s *fakeStream) Recv() (*dppb.QueryDataResponse, error) {
	if s.i < len(s.msgs) {
		msg := s.msgs[s.i]
		s.i++
		return msg, nil
	}
	if s.finalErr != nil {
		return nil, s.finalErr
	}
	return nil, io.EOF
}

func sub(index int, stream query.StreamType, sources ...string) query.SubRequest {
	return query.SubRequest{
		ID:       "req-1",
		SubIndex: index,
		Sources:  sources,
		Stream:   stream,
	}
}

func drain(t *testing.T, buf *Buffer) []Message {
	t.Helper()
	buf.Shutdown()
	var out []Message
	for {
		msg, ok := buf.Poll()
		if !ok {
			return out
		}
		out = append(out, msg)
	}
}

func TestRecoverUnary(t *testing.T) {
	buf := NewBuffer(16)
	require.NoError(t, buf.Activate())

	transport := &fakeTransport{
		unary: func(_ context.Context, req *dppb.QueryDataRequest) (*dppb.QueryDataResponse, error) {
			require.NotNil(t, req.Spec)
			assert.Equal(t, []string{"a", "b"}, req.Spec.SourceNames)
			return testMsg("payload"), nil
		},
	}
	c := NewChannel(transport, buf, testConfig(), log.NewNopLogger())

	err := c.RecoverRequests(context.Background(), []query.SubRequest{sub(2, query.StreamUnary, "a", "b")})
	require.NoError(t, err)

	msgs := drain(t, buf)
	require.Len(t, msgs, 1)
	assert.Equal(t, "payload", msgs[0].Resp.ExceptionalResult.Message)
	// the sub-request index travels with the message
	assert.Equal(t, 2, msgs[0].SubIndex)
}

func TestRecoverServerStream(t *testing.T) {
	buf := NewBuffer(16)
	require.NoError(t, buf.Activate())

	transport := &fakeTransport{
		stream: func(context.Context, *dppb.QueryDataRequest) (ResponseStream, error) {
			return &fakeStream{msgs: []*dppb.QueryDataResponse{
				testMsg("one"), testMsg("two"), testMsg("three"),
			}}, nil
		},
	}
	c := NewChannel(transport, buf, testConfig(), log.NewNopLogger())

	err := c.RecoverRequests(context.Background(), []query.SubRequest{sub(0, query.StreamServer, "a")})
	require.NoError(t, err)

	msgs := drain(t, buf)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Resp.ExceptionalResult.Message)
	assert.Equal(t, "three", msgs[2].Resp.ExceptionalResult.Message)
}

type fakeBidi struct {
	fakeStream
	sent []*dppb.QueryDataRequest
}

func (s *fakeBidi) Send(req *dppb.QueryDataRequest) error {
	s.sent = append(s.sent, req)
	return nil
}

func (s *fakeBidi) CloseSend() error { return nil }

func TestRecoverBidiStream(t *testing.T) {
	buf := NewBuffer(16)
	require.NoError(t, buf.Activate())

	bidi := &fakeBidi{fakeStream: fakeStream{msgs: []*dppb.QueryDataResponse{
		testMsg("one"), testMsg("two"),
	}}}
	transport := &fakeTransport{
		bidi: func(context.Context) (BidiStream, error) { return bidi, nil },
	}
	c := NewChannel(transport, buf, testConfig(), log.NewNopLogger())

	err := c.RecoverRequests(context.Background(), []query.SubRequest{sub(0, query.StreamBidi, "a")})
	require.NoError(t, err)

	msgs := drain(t, buf)
	assert.Len(t, msgs, 2)

	// opening spec, then one cursor advance per received message
	require.Len(t, bidi.sent, 3)
	assert.NotNil(t, bidi.sent[0].Spec)
	assert.NotNil(t, bidi.sent[1].CursorOp)
	assert.Equal(t, dppb.CursorOperationType_CURSOR_OP_NEXT, bidi.sent[1].CursorOp.Type)
	assert.NotNil(t, bidi.sent[2].CursorOp)
}

func TestRetryTransientBeforeDelivery(t *testing.T) {
	buf := NewBuffer(16)
	require.NoError(t, buf.Activate())

	var (
		mtx      sync.Mutex
		attempts int
	)
	transport := &fakeTransport{
		stream: func(context.Context, *dppb.QueryDataRequest) (ResponseStream, error) {
			mtx.Lock()
			defer mtx.Unlock()
			attempts++
			if attempts == 1 {
				return nil, errors.New("connection reset")
			}
			return &fakeStream{msgs: []*dppb.QueryDataResponse{testMsg("recovered")}}, nil
		},
	}
	c := NewChannel(transport, buf, testConfig(), log.NewNopLogger())

	err := c.RecoverRequests(context.Background(), []query.SubRequest{sub(0, query.StreamServer, "a")})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Len(t, drain(t, buf), 1)
}

func TestNoRetryAfterDelivery(t *testing.T) {
	buf := NewBuffer(16)
	require.NoError(t, buf.Activate())

	var (
		mtx      sync.Mutex
		attempts int
	)
	transport := &fakeTransport{
		stream: func(context.Context, *dppb.QueryDataRequest) (ResponseStream, error) {
			mtx.Lock()
			defer mtx.Unlock()
			attempts++
			return &fakeStream{
				msgs:     []*dppb.QueryDataResponse{testMsg("partial")},
				finalErr: errors.New("connection reset"),
			}, nil
		},
	}
	c := NewChannel(transport, buf, testConfig(), log.NewNopLogger())

	err := c.RecoverRequests(context.Background(), []query.SubRequest{sub(0, query.StreamServer, "a")})
	require.Error(t, err)

	// retrying after a delivery would duplicate buckets downstream
	assert.Equal(t, 1, attempts)

	var re *dperror.RecoveryError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Failures, 1)
	assert.Equal(t, dperror.KindTransportTransient, re.Failures[0].Kind)
}

func TestCancelDuringBackoffReportsCancelled(t *testing.T) {
	buf := NewBuffer(16)
	require.NoError(t, buf.Activate())

	cfg := testConfig()
	cfg.Backoff.MinBackoff = 200 * time.Millisecond
	cfg.Backoff.MaxBackoff = 400 * time.Millisecond
	cfg.Backoff.MaxRetries = 5

	transport := &fakeTransport{
		stream: func(context.Context, *dppb.QueryDataRequest) (ResponseStream, error) {
			return nil, errors.New("connection reset")
		},
	}
	c := NewChannel(transport, buf, cfg, log.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timer := time.AfterFunc(20*time.Millisecond, cancel)
	defer timer.Stop()

	err := c.RecoverRequests(ctx, []query.SubRequest{sub(0, query.StreamServer, "a")})
	require.Error(t, err)

	// the failure is cancellation, not the stale transient error from
	// before the backoff wait
	var re *dperror.RecoveryError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Failures, 1)
	assert.Equal(t, dperror.KindCancelled, re.Failures[0].Kind)
	buf.ShutdownNow()
}

func TestFatalFailureCancelsPeers(t *testing.T) {
	buf := NewBuffer(16)
	require.NoError(t, buf.Activate())

	transport := &fakeTransport{
		stream: func(ctx context.Context, req *dppb.QueryDataRequest) (ResponseStream, error) {
			if req.Spec.SourceNames[0] == "bad" {
				return nil, status.Error(codes.InvalidArgument, "malformed query")
			}
			// the peer hangs until the fatal failure cancels it
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	c := NewChannel(transport, buf, testConfig(), log.NewNopLogger())

	done := make(chan error, 1)
	go func() {
		done <- c.RecoverRequests(context.Background(), []query.SubRequest{
			sub(0, query.StreamServer, "slow"),
			sub(1, query.StreamServer, "bad"),
		})
	}()

	select {
	case err := <-done:
		var re *dperror.RecoveryError
		require.ErrorAs(t, err, &re)
		require.Len(t, re.Failures, 2)

		// sorted by sub-index
		assert.Equal(t, 0, re.Failures[0].SubIndex)
		assert.Equal(t, 1, re.Failures[1].SubIndex)
		assert.Equal(t, dperror.KindTransportFatal, re.Failures[1].Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("fatal failure did not cancel the hanging peer")
	}
	buf.ShutdownNow()
}

func TestRecoverRejectsIllegalStream(t *testing.T) {
	buf := NewBuffer(16)
	require.NoError(t, buf.Activate())
	c := NewChannel(&fakeTransport{}, buf, testConfig(), log.NewNopLogger())

	err := c.RecoverRequests(context.Background(), []query.SubRequest{
		sub(0, query.StreamType(42), "a"),
	})
	var re *dperror.RecoveryError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Failures, 1)
	assert.Equal(t, dperror.KindInvalidRequest, re.Failures[0].Kind)
	buf.ShutdownNow()
}
