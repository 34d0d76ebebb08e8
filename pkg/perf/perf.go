// Package perf records per-run performance of the recovery and assembly
// pipeline and aggregates runs into summaries and per-configuration scores.
package perf

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"
)

// Result is the performance record of one processed request.
type Result struct {
	RequestID         string
	RecoveredMessages int
	RecoveredBytes    int64
	ClockedBlockCount int
	TmsListBlockCount int
	DurationRecovery  time.Duration
	DurationAssembly  time.Duration
	DataRateMBps      float64
	OrderingOK        bool
	DisjointOK        bool
	Partial           bool
}

// BlockCount is the total correlated block count, clocked plus
// timestamp-list.
func (r Result) BlockCount() int {
	return r.ClockedBlockCount + r.TmsListBlockCount
}

// ComputeRate derives DataRateMBps from the recovered bytes and the recovery
// duration.
func (r *Result) ComputeRate() {
	secs := r.DurationRecovery.Seconds()
	if secs <= 0 {
		r.DataRateMBps = 0
		return
	}
	r.DataRateMBps = float64(r.RecoveredBytes) / 1e6 / secs
}

// PrintOut writes the line-oriented block used in tool output files.
func (r Result) PrintOut(w io.Writer) {
	fmt.Fprintf(w, "request        : %s\n", r.RequestID)
	fmt.Fprintf(w, "messages       : %d\n", r.RecoveredMessages)
	fmt.Fprintf(w, "bytes          : %d\n", r.RecoveredBytes)
	fmt.Fprintf(w, "blocks         : %d (clocked %d, tms-list %d)\n", r.BlockCount(), r.ClockedBlockCount, r.TmsListBlockCount)
	fmt.Fprintf(w, "recovery       : %s\n", r.DurationRecovery)
	fmt.Fprintf(w, "assembly       : %s\n", r.DurationAssembly)
	fmt.Fprintf(w, "rate           : %.3f MB/s\n", r.DataRateMBps)
	fmt.Fprintf(w, "ordering ok    : %t\n", r.OrderingOK)
	fmt.Fprintf(w, "disjoint ok    : %t\n", r.DisjointOK)
	fmt.Fprintf(w, "partial        : %t\n", r.Partial)
	fmt.Fprintln(w, "")
}

// Summary aggregates results across runs. The standard deviation uses the
// second-moment shortcut sigma = sqrt(<r^2> - <r>^2).
type Summary struct {
	Count        int
	MinRateMBps  float64
	MaxRateMBps  float64
	sumRate      float64
	sumRateSq    float64
	TargetMBps   float64
	TargetHits   int
	RequestHits  map[string]int
	TotalBytes   int64
	TotalPartial int
}

func NewSummary(targetMBps float64) *Summary {
	return &Summary{
		TargetMBps:  targetMBps,
		MinRateMBps: math.Inf(1),
		MaxRateMBps: math.Inf(-1),
		RequestHits: map[string]int{},
	}
}

func (s *Summary) Observe(r Result) {
	s.Count++
	s.TotalBytes += r.RecoveredBytes
	s.RequestHits[r.RequestID]++
	if r.Partial {
		s.TotalPartial++
	}

	rate := r.DataRateMBps
	s.sumRate += rate
	s.sumRateSq += rate * rate
	if rate < s.MinRateMBps {
		s.MinRateMBps = rate
	}
	if rate > s.MaxRateMBps {
		s.MaxRateMBps = rate
	}
	if s.TargetMBps > 0 && rate >= s.TargetMBps {
		s.TargetHits++
	}
}

func (s *Summary) AvgRateMBps() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.sumRate / float64(s.Count)
}

func (s *Summary) RateStdDev() float64 {
	if s.Count == 0 {
		return 0
	}
	mean := s.sumRate / float64(s.Count)
	variance := s.sumRateSq/float64(s.Count) - mean*mean
	if variance < 0 {
		// numeric noise around zero variance
		variance = 0
	}
	return math.Sqrt(variance)
}

func (s *Summary) PrintOut(w io.Writer) {
	fmt.Fprintf(w, "runs           : %d\n", s.Count)
	ids := make([]string, 0, len(s.RequestHits))
	for id := range s.RequestHits {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "runs[%s] : %d\n", id, s.RequestHits[id])
	}
	fmt.Fprintf(w, "total bytes    : %d\n", s.TotalBytes)
	fmt.Fprintf(w, "partial runs   : %d\n", s.TotalPartial)
	if s.Count > 0 {
		fmt.Fprintf(w, "rate min/avg/max : %.3f / %.3f / %.3f MB/s\n", s.MinRateMBps, s.AvgRateMBps(), s.MaxRateMBps)
		fmt.Fprintf(w, "rate stddev    : %.3f MB/s\n", s.RateStdDev())
	}
	if s.TargetMBps > 0 {
		fmt.Fprintf(w, "hits >= %.1f MB/s : %d\n", s.TargetMBps, s.TargetHits)
	}
}
