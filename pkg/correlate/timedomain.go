package correlate

import (
	"fmt"

	"github.com/scigrid/dpclient/pkg/model"
)

// Status is the result of a time-domain verification pass.
type Status struct {
	OK bool
	// Detail names the first violation when OK is false.
	Detail string
}

func ok() Status { return Status{OK: true} }

func violation(format string, args ...interface{}) Status {
	return Status{Detail: fmt.Sprintf(format, args...)}
}

// VerifyStartTimeOrdering checks that block start times are monotonically
// non-decreasing.
func VerifyStartTimeOrdering(set []model.RawCorrelatedData) Status {
	for i := 1; i < len(set); i++ {
		prev, cur := set[i-1].StartInstant(), set[i].StartInstant()
		if cur.Before(prev) {
			return violation("block %d starts at %s before block %d at %s", i, cur, i-1, prev)
		}
	}
	return ok()
}

// VerifyDisjointTimeDomains checks that adjacent block time domains do not
// intersect. The set must already be in natural order.
func VerifyDisjointTimeDomains(set []model.RawCorrelatedData) Status {
	for i := 1; i < len(set); i++ {
		prev, cur := set[i-1].TimeDomain(), set[i].TimeDomain()
		if prev.Overlaps(cur) {
			return violation("block %d domain %s collides with block %d domain %s", i-1, prev, i, cur)
		}
	}
	return ok()
}

// SuperDomain is the fused union of overlapping block time domains, together
// with the blocks that contributed.
type SuperDomain struct {
	Domain model.TimeInterval
	Blocks []model.RawCorrelatedData
}

// FuseSuperDomains sweeps the ordered set and fuses blocks whose time
// domains overlap or touch the open super-domain. The result is a list of
// pairwise disjoint super-domains in start order.
func FuseSuperDomains(set []model.RawCorrelatedData) []SuperDomain {
	if len(set) == 0 {
		return nil
	}

	out := []SuperDomain{}
	cur := SuperDomain{
		Domain: set[0].TimeDomain(),
		Blocks: []model.RawCorrelatedData{set[0]},
	}

	for _, block := range set[1:] {
		d := block.TimeDomain()
		if !d.Begin.After(cur.Domain.End) {
			cur.Domain = cur.Domain.Union(d)
			cur.Blocks = append(cur.Blocks, block)
			continue
		}

		out = append(out, cur)
		cur = SuperDomain{
			Domain: d,
			Blocks: []model.RawCorrelatedData{block},
		}
	}

	return append(out, cur)
}
