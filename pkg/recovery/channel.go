// Package recovery drives the transport calls of one query and buffers the
// response messages for the correlating consumer.
package recovery

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gogo/protobuf/proto"
	"github.com/grafana/dskit/backoff"
	"go.uber.org/atomic"

	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/dppb"
	"github.com/scigrid/dpclient/pkg/model"
	"github.com/scigrid/dpclient/pkg/query"
)

// Channel recovers sub-requests concurrently, one transport call per
// sub-request, and forwards every received message to the shared buffer.
type Channel struct {
	transport Transport
	buf       *Buffer
	cfg       Config
	logger    log.Logger

	delivered atomic.Int64
}

func NewChannel(transport Transport, buf *Buffer, cfg Config, logger log.Logger) *Channel {
	return &Channel{
		transport: transport,
		buf:       buf,
		cfg:       cfg,
		logger:    logger,
	}
}

// RecoverRequests runs every sub-request in parallel and returns once each
// has completed or failed. Failures aggregate into a single RecoveryError;
// a fatal failure cancels the peer sub-requests.
func (c *Channel) RecoverRequests(ctx context.Context, subs []query.SubRequest) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mtx      sync.Mutex
		failures []dperror.SubFailure
		wg       sync.WaitGroup
	)

	for _, sub := range subs {
		wg.Add(1)
		go func(sub query.SubRequest) {
			defer wg.Done()

			err := c.recoverOne(ctx, sub)
			if err == nil {
				return
			}

			kind := dperror.KindOf(err)
			metricSubRequestFailures.WithLabelValues(kind.String()).Inc()
			level.Warn(c.logger).Log("msg", "sub-request failed", "request", sub.ID, "sub", sub.SubIndex, "err", err)

			mtx.Lock()
			failures = append(failures, dperror.SubFailure{
				SubIndex: sub.SubIndex,
				Kind:     kind,
				Message:  err.Error(),
			})
			mtx.Unlock()

			// a broken request or credential failure will fail every peer
			// the same way; stop them early.
			if kind == dperror.KindTransportFatal {
				cancel()
			}
		}(sub)
	}

	wg.Wait()
	level.Debug(c.logger).Log("msg", "recovery complete", "subs", len(subs), "delivered", c.delivered.Load(), "failed", len(failures))

	if len(failures) == 0 {
		return nil
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].SubIndex < failures[j].SubIndex })
	return &dperror.RecoveryError{Failures: failures}
}

// recoverOne executes one sub-request, retrying transient failures with
// backoff as long as no message has been delivered yet. Retrying after
// delivery would duplicate buckets downstream.
func (c *Channel) recoverOne(ctx context.Context, sub query.SubRequest) error {
	bo := backoff.New(ctx, c.cfg.Backoff)
	var lastErr error

	for bo.Ongoing() {
		delivered, err := c.runCall(ctx, sub)
		if err == nil {
			return nil
		}

		classified := classify(err)
		kind := dperror.KindOf(classified)

		if delivered > 0 {
			return classified
		}
		if kind != dperror.KindTransportTransient && kind != dperror.KindDeadline {
			return classified
		}

		lastErr = classified
		bo.Wait()
	}

	// cancellation during a backoff wait reports as such, not as the
	// transient failure that preceded it.
	if err := ctx.Err(); err != nil {
		return dperror.Wrap(dperror.KindCancelled, err, "sub-request cancelled")
	}
	return lastErr
}

// runCall performs a single call attempt and reports how many messages it
// delivered to the buffer.
func (c *Channel) runCall(ctx context.Context, sub query.SubRequest) (int, error) {
	if c.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.CallTimeout)
		defer cancel()
	}

	switch sub.Stream {
	case query.StreamUnary:
		return c.runUnary(ctx, sub)
	case query.StreamServer:
		return c.runServerStream(ctx, sub)
	case query.StreamBidi:
		return c.runBidiStream(ctx, sub)
	default:
		return 0, dperror.Newf(dperror.KindInvalidRequest, "stream type %d is illegal for queries", sub.Stream)
	}
}

func (c *Channel) runUnary(ctx context.Context, sub query.SubRequest) (int, error) {
	resp, err := c.transport.QueryData(ctx, wireRequest(sub))
	if err != nil {
		return 0, err
	}
	if err := c.deliver(sub.SubIndex, resp); err != nil {
		return 0, err
	}
	return 1, nil
}

func (c *Channel) runServerStream(ctx context.Context, sub query.SubRequest) (int, error) {
	stream, err := c.transport.QueryDataStream(ctx, wireRequest(sub))
	if err != nil {
		return 0, err
	}

	delivered := 0
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return delivered, nil
		}
		if err != nil {
			return delivered, err
		}
		if err := c.deliver(sub.SubIndex, resp); err != nil {
			return delivered, err
		}
		delivered++
	}
}

func (c *Channel) runBidiStream(ctx context.Context, sub query.SubRequest) (int, error) {
	stream, err := c.transport.QueryDataBidi(ctx)
	if err != nil {
		return 0, err
	}

	if err := stream.Send(wireRequest(sub)); err != nil {
		return 0, err
	}

	delivered := 0
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return delivered, nil
		}
		if err != nil {
			return delivered, err
		}
		if err := c.deliver(sub.SubIndex, resp); err != nil {
			return delivered, err
		}
		delivered++

		next := &dppb.QueryDataRequest{
			CursorOp: &dppb.CursorOperation{Type: dppb.CursorOperationType_CURSOR_OP_NEXT},
		}
		if err := stream.Send(next); err != nil {
			if errors.Is(err, io.EOF) {
				// the server half-closed; the real error, if any, arrives on
				// the next Recv.
				continue
			}
			return delivered, err
		}
	}
}

func (c *Channel) deliver(subIndex int, resp *dppb.QueryDataResponse) error {
	if err := c.buf.Offer(Message{SubIndex: subIndex, Resp: resp}); err != nil {
		return err
	}
	c.delivered.Inc()
	metricRecoveredMessages.Inc()
	metricRecoveredBytes.Add(float64(proto.Size(resp)))
	return nil
}

// classify maps transport and buffer errors to tagged kinds. Buffer-closed
// races read as cancellation of the affected sub-request.
func classify(err error) error {
	switch dperror.KindOf(err) {
	case dperror.KindBufferClosed:
		return dperror.Wrap(dperror.KindCancelled, err, "buffer shut down mid-stream")
	case dperror.KindUnknown:
		return dperror.FromTransport(err)
	default:
		return err
	}
}

func wireRequest(sub query.SubRequest) *dppb.QueryDataRequest {
	return &dppb.QueryDataRequest{
		Spec: &dppb.QuerySpec{
			BeginTime:   model.TimestampToWire(sub.Range.Begin),
			EndTime:     model.TimestampToWire(sub.Range.End),
			SourceNames: sub.Sources,
		},
	}
}
