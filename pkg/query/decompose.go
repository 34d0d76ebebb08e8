package query

import (
	"time"

	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/model"
)

// maxGridStreams bounds the total sub-request count of a grid decomposition.
const maxGridStreams = 64

// Decompose splits req into at most n sub-requests according to the
// request's decomposition policy. The union of the sub-requests covers the
// original source set and time range exactly once.
func Decompose(req Request, n int) ([]SubRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, dperror.Newf(dperror.KindInvalidRequest, "target sub-request count must be >= 1, got %d", n)
	}

	switch req.Decomp {
	case DecompNone:
		return []SubRequest{{
			ID:      req.ID,
			Sources: req.Sources,
			Range:   req.Range,
			Stream:  req.Stream,
		}}, nil

	case DecompHorizontal:
		groups, err := splitSources(req, n)
		if err != nil {
			return nil, err
		}
		subs := make([]SubRequest, 0, len(groups))
		for i, g := range groups {
			subs = append(subs, SubRequest{
				ID:       req.ID,
				SubIndex: i,
				Sources:  g,
				Range:    req.Range,
				Stream:   req.Stream,
			})
		}
		return subs, nil

	case DecompVertical:
		ranges, err := splitRange(req, n)
		if err != nil {
			return nil, err
		}
		subs := make([]SubRequest, 0, len(ranges))
		for i, rng := range ranges {
			subs = append(subs, SubRequest{
				ID:       req.ID,
				SubIndex: i,
				Sources:  req.Sources,
				Range:    rng,
				Stream:   req.Stream,
			})
		}
		return subs, nil

	case DecompGrid:
		// n streams per axis, bounded total. Shrink the time axis first:
		// uneven source groups hurt less than uneven time slices.
		h, v := n, n
		if h > len(req.Sources) {
			h = len(req.Sources)
		}
		for h*v > maxGridStreams && v > 1 {
			v--
		}
		for h*v > maxGridStreams && h > 1 {
			h--
		}

		groups, err := splitSources(req, h)
		if err != nil {
			return nil, err
		}
		ranges, err := splitRange(req, v)
		if err != nil {
			return nil, err
		}

		subs := make([]SubRequest, 0, len(groups)*len(ranges))
		idx := 0
		for _, rng := range ranges {
			for _, g := range groups {
				subs = append(subs, SubRequest{
					ID:       req.ID,
					SubIndex: idx,
					Sources:  g,
					Range:    rng,
					Stream:   req.Stream,
				})
				idx++
			}
		}
		return subs, nil

	default:
		return nil, dperror.Newf(dperror.KindInvalidRequest, "unknown decomposition %d", req.Decomp)
	}
}

// splitSources partitions the request's sources into up to n groups of
// near-equal size. Leftover sources go round-robin to the earlier groups.
func splitSources(req Request, n int) ([][]string, error) {
	if len(req.Sources) == 0 {
		return nil, dperror.Newf(dperror.KindInvalidRequest, "request %s: horizontal decomposition needs at least one source", req.ID)
	}

	if n > len(req.Sources) {
		n = len(req.Sources)
	}

	base := len(req.Sources) / n
	extra := len(req.Sources) % n

	groups := make([][]string, 0, n)
	at := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		groups = append(groups, req.Sources[at:at+size])
		at += size
	}
	return groups, nil
}

// splitRange partitions the request's time range into up to n contiguous
// sub-ranges. The split is half-open: each boundary instant belongs to the
// later sub-range, so a sub-range ends one nanosecond before the next begins.
func splitRange(req Request, n int) ([]model.TimeInterval, error) {
	width := req.Range.Width()
	if width <= 0 {
		return nil, dperror.Newf(dperror.KindInvalidRequest, "request %s: vertical decomposition needs a non-zero time range", req.ID)
	}

	if int64(n) > width.Nanoseconds() {
		n = int(width.Nanoseconds())
	}

	step := width / time.Duration(n)
	ranges := make([]model.TimeInterval, 0, n)
	begin := req.Range.Begin
	for i := 0; i < n; i++ {
		end := req.Range.End
		if i < n-1 {
			end = begin.Add(step - time.Nanosecond)
		}
		ranges = append(ranges, model.TimeInterval{Begin: begin, End: end})
		begin = end.Add(time.Nanosecond)
	}
	return ranges, nil
}
