// Package query defines the logical request model and the decomposition of
// one request into sub-requests for parallel recovery.
package query

import (
	"github.com/google/uuid"

	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/model"
)

// StreamType selects the transport call shape of a query.
type StreamType int

const (
	// StreamUnary recovers the whole response as one message.
	StreamUnary StreamType = iota
	// StreamServer lets the server push messages until it half-closes.
	StreamServer
	// StreamBidi drives the server with cursor operations.
	StreamBidi
)

func (s StreamType) String() string {
	switch s {
	case StreamUnary:
		return "unary"
	case StreamServer:
		return "server-stream"
	case StreamBidi:
		return "bidirectional"
	default:
		return "invalid"
	}
}

// Decomposition selects how a request splits into sub-requests.
type Decomposition int

const (
	DecompNone Decomposition = iota
	DecompHorizontal
	DecompVertical
	DecompGrid
)

func (d Decomposition) String() string {
	switch d {
	case DecompNone:
		return "none"
	case DecompHorizontal:
		return "horizontal"
	case DecompVertical:
		return "vertical"
	case DecompGrid:
		return "grid"
	default:
		return "invalid"
	}
}

// Options tunes per-request behavior of the assembly pipeline.
type Options struct {
	// ToleratePartial returns a partial aggregate instead of failing when
	// some sub-requests fail.
	ToleratePartial bool
	// StrictDomains promotes ordering violations and time-domain collisions
	// from fuse-and-continue to fatal.
	StrictDomains bool
}

// Request is one logical time-range, source-set query.
type Request struct {
	ID          string
	Sources     []string
	Range       model.TimeInterval
	Stream      StreamType
	Decomp      Decomposition
	StreamCount int
	Options     Options
}

// New builds a request with a fresh ID, server streaming and no
// decomposition.
func New(sources []string, rng model.TimeInterval) Request {
	return Request{
		ID:          uuid.NewString(),
		Sources:     sources,
		Range:       rng,
		Stream:      StreamServer,
		Decomp:      DecompNone,
		StreamCount: 1,
	}
}

// Validate checks the request against the model invariants.
func (r Request) Validate() error {
	if r.ID == "" {
		return dperror.New(dperror.KindInvalidRequest, "request has no id")
	}
	if len(r.Sources) == 0 {
		return dperror.Newf(dperror.KindInvalidRequest, "request %s names no sources", r.ID)
	}
	if r.Range.End.Before(r.Range.Begin) {
		return dperror.Newf(dperror.KindInvalidRequest, "request %s has inverted time range %s", r.ID, r.Range)
	}
	if r.Stream < StreamUnary || r.Stream > StreamBidi {
		return dperror.Newf(dperror.KindInvalidRequest, "request %s has illegal stream type %d", r.ID, r.Stream)
	}
	if r.Decomp < DecompNone || r.Decomp > DecompGrid {
		return dperror.Newf(dperror.KindInvalidRequest, "request %s has illegal decomposition %d", r.ID, r.Decomp)
	}
	if r.StreamCount < 1 {
		return dperror.Newf(dperror.KindInvalidRequest, "request %s has stream count %d", r.ID, r.StreamCount)
	}
	return nil
}

// SubRequest is one recoverable slice of a request. Sub-indexes are assigned
// monotonically by the decomposer.
type SubRequest struct {
	// ID is the parent request's id.
	ID       string
	SubIndex int
	Sources  []string
	Range    model.TimeInterval
	Stream   StreamType
}
