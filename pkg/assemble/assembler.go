package assemble

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gogo/protobuf/proto"
	"golang.org/x/sync/errgroup"

	"github.com/scigrid/dpclient/pkg/correlate"
	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/model"
	"github.com/scigrid/dpclient/pkg/perf"
	"github.com/scigrid/dpclient/pkg/query"
	"github.com/scigrid/dpclient/pkg/recovery"
)

// Config for the aggregate assembler.
type Config struct {
	Recovery recovery.Config `yaml:"recovery"`
}

// RegisterFlagsAndApplyDefaults register flags.
func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	cfg.Recovery.RegisterFlagsAndApplyDefaults(prefix+".recovery", f)
}

// Assembler is the top-level orchestrator: it decomposes a request, recovers
// the sub-requests over the transport, correlates the buckets and assembles
// the ordered sampled aggregate.
type Assembler struct {
	transport recovery.Transport
	cfg       Config
	logger    log.Logger
}

func New(transport recovery.Transport, cfg Config, logger log.Logger) *Assembler {
	return &Assembler{
		transport: transport,
		cfg:       cfg,
		logger:    logger,
	}
}

// Process runs one request end to end and returns the sampled aggregate
// together with the run's performance record. On failure the record still
// carries whatever stages completed.
func (a *Assembler) Process(parent context.Context, req query.Request) (*model.SampledAggregate, perf.Result, error) {
	res := perf.Result{RequestID: req.ID}

	subs, err := query.Decompose(req, req.StreamCount)
	if err != nil {
		return nil, res, err
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	buf := recovery.NewBuffer(a.cfg.Recovery.QueueSize)
	if err := buf.Activate(); err != nil {
		return nil, res, err
	}
	channel := recovery.NewChannel(a.transport, buf, a.cfg.Recovery, a.logger)
	correlator := correlate.NewCorrelator()

	// single consumer: drain the buffer, unpack buckets, feed the
	// correlator. Only this goroutine mutates the correlator.
	var (
		consumedMsgs  int
		consumedBytes int64
		g             errgroup.Group
	)
	g.Go(func() error {
		for {
			msg, ok := buf.Poll()
			if !ok {
				return nil
			}
			consumedMsgs++
			consumedBytes += int64(proto.Size(msg.Resp))

			buckets, err := model.UnpackResponse(msg.Resp)
			if err != nil {
				cancel()
				buf.ShutdownNow()
				return err
			}
			for _, b := range buckets {
				b.SubIndex = msg.SubIndex
				if err := correlator.Add(b); err != nil {
					cancel()
					buf.ShutdownNow()
					return err
				}
			}
		}
	})

	recoveryStart := time.Now()
	recErr := channel.RecoverRequests(ctx, subs)
	buf.Shutdown()
	consErr := g.Wait()

	res.DurationRecovery = time.Since(recoveryStart)
	res.RecoveredMessages = consumedMsgs
	res.RecoveredBytes = consumedBytes
	res.ComputeRate()
	metricRecoveryDuration.Observe(res.DurationRecovery.Seconds())

	// correlator and server errors abort the whole operation; partial
	// tolerance applies to transport failures only.
	if consErr != nil {
		return nil, res, consErr
	}
	if parent.Err() != nil {
		return nil, res, dperror.Wrap(dperror.KindCancelled, parent.Err(), "processing cancelled")
	}

	assemblyStart := time.Now()

	raw := correlator.CorrelatedSet()
	res.ClockedBlockCount, res.TmsListBlockCount = correlator.Counts()

	ordering := correlate.VerifyStartTimeOrdering(raw)
	res.OrderingOK = ordering.OK
	if !ordering.OK && req.Options.StrictDomains {
		return nil, res, dperror.New(dperror.KindOrderingViolation, ordering.Detail)
	}

	disjoint := correlate.VerifyDisjointTimeDomains(raw)
	res.DisjointOK = disjoint.OK
	if !disjoint.OK {
		if req.Options.StrictDomains {
			return nil, res, dperror.New(dperror.KindDomainCollision, disjoint.Detail)
		}
		level.Debug(a.logger).Log("msg", "fusing overlapping time domains", "request", req.ID, "detail", disjoint.Detail)
		raw, err = fuseAndMerge(raw)
		if err != nil {
			return nil, res, err
		}
	}

	blocks := make([]*model.UniformSamplingBlock, 0, len(raw))
	for _, r := range raw {
		block, err := BuildSampledBlock(r)
		if err != nil {
			return nil, res, err
		}
		blocks = append(blocks, block)
	}

	aggregate := &model.SampledAggregate{Blocks: blocks}

	if recErr != nil {
		if !req.Options.ToleratePartial {
			return nil, res, recErr
		}

		aggregate.Partial = true
		res.Partial = true
		var re *dperror.RecoveryError
		if errors.As(recErr, &re) {
			for _, f := range re.Failures {
				if f.SubIndex >= 0 && f.SubIndex < len(subs) {
					aggregate.MissingIntervals = append(aggregate.MissingIntervals, subs[f.SubIndex].Range)
				}
			}
		}
		level.Warn(a.logger).Log("msg", "returning partial aggregate", "request", req.ID, "missing", len(aggregate.MissingIntervals))
	}

	res.DurationAssembly = time.Since(assemblyStart)
	metricAssemblyDuration.Observe(res.DurationAssembly.Seconds())

	return aggregate, res, nil
}
