package perf

import (
	"math"
	"sort"
)

// ConfigScore keeps running statistics for one named pipeline configuration
// (stream type, decomposition, stream count, ...).
type ConfigScore struct {
	Name string
	// Seq breaks comparator ties so distinct entries never collapse in a
	// sorted collection.
	Seq int

	Runs        int
	Hits        int
	MinRateMBps float64
	MaxRateMBps float64
	sumRate     float64
}

func newConfigScore(name string, seq int) *ConfigScore {
	return &ConfigScore{
		Name:        name,
		Seq:         seq,
		MinRateMBps: math.Inf(1),
		MaxRateMBps: math.Inf(-1),
	}
}

func (s *ConfigScore) observe(rate float64, hit bool) {
	s.Runs++
	s.sumRate += rate
	if rate < s.MinRateMBps {
		s.MinRateMBps = rate
	}
	if rate > s.MaxRateMBps {
		s.MaxRateMBps = rate
	}
	if hit {
		s.Hits++
	}
}

func (s *ConfigScore) AvgRateMBps() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.sumRate / float64(s.Runs)
}

// ScoreBoard maintains per-configuration scores.
type ScoreBoard struct {
	TargetMBps float64
	scores     map[string]*ConfigScore
	nextSeq    int
}

func NewScoreBoard(targetMBps float64) *ScoreBoard {
	return &ScoreBoard{
		TargetMBps: targetMBps,
		scores:     map[string]*ConfigScore{},
	}
}

func (b *ScoreBoard) Observe(config string, r Result) {
	score, ok := b.scores[config]
	if !ok {
		score = newConfigScore(config, b.nextSeq)
		b.nextSeq++
		b.scores[config] = score
	}
	score.observe(r.DataRateMBps, b.TargetMBps > 0 && r.DataRateMBps >= b.TargetMBps)
}

// ByRate returns the scores ordered by average rate descending. Ties fall
// back to insertion sequence, so the order is total.
func (b *ScoreBoard) ByRate() []*ConfigScore {
	out := b.collect()
	sort.Slice(out, func(i, j int) bool {
		a, c := out[i], out[j]
		if a.AvgRateMBps() != c.AvgRateMBps() {
			return a.AvgRateMBps() > c.AvgRateMBps()
		}
		return a.Seq < c.Seq
	})
	return out
}

// ByHits returns the scores ordered by target-hit count descending, with the
// same total-order tie-break.
func (b *ScoreBoard) ByHits() []*ConfigScore {
	out := b.collect()
	sort.Slice(out, func(i, j int) bool {
		a, c := out[i], out[j]
		if a.Hits != c.Hits {
			return a.Hits > c.Hits
		}
		return a.Seq < c.Seq
	})
	return out
}

func (b *ScoreBoard) collect() []*ConfigScore {
	out := make([]*ConfigScore, 0, len(b.scores))
	for _, s := range b.scores {
		out = append(out, s)
	}
	return out
}
