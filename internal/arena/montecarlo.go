package arena

import (
	"math"
	"sort"

	"github.com/xtding233/arena-odds/internal/card"
)

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	// mean
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	// percentiles
	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// Estimate is the empirical counterpart of Model: how often simulated picks
// offered at least one matching card.
type Estimate struct {
	Trials       int     `json:"trials"`
	RegularPicks int     `json:"regular_picks"`
	RegularHits  int     `json:"regular_hits"`
	SpecialPicks int     `json:"special_picks"`
	SpecialHits  int     `json:"special_hits"`
	RegularRate  float64 `json:"regular_rate"`
	SpecialRate  float64 `json:"special_rate"`
	// PerDraft summarizes successful picks per simulated draft.
	PerDraft Stats `json:"per_draft"`
}

// EstimateSuccess simulates trials full drafts for class and counts the picks that
// offered at least one card satisfying pred.
func (s *Simulator) EstimateSuccess(class card.Class, cards []card.Record, pred card.Predicate, trials int) (Estimate, error) {
	if trials <= 0 {
		return Estimate{}, nil
	}
	if class == card.ClassNeutral {
		return Estimate{}, ErrNoHeroClass
	}
	if pred == nil {
		pred = card.Any
	}
	classPart, neutralPart := SplitByOwner(class, cards)

	est := Estimate{Trials: trials}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		d, err := s.draft(class, classPart, neutralPart)
		if err != nil {
			return Estimate{}, err
		}
		hits := 0
		for _, p := range d.Picks {
			hit := offers(p, pred)
			if hit {
				hits++
			}
			if p.Special {
				est.SpecialPicks++
				if hit {
					est.SpecialHits++
				}
			} else {
				est.RegularPicks++
				if hit {
					est.RegularHits++
				}
			}
		}
		samples[i] = hits
	}
	if est.RegularPicks > 0 {
		est.RegularRate = float64(est.RegularHits) / float64(est.RegularPicks)
	}
	if est.SpecialPicks > 0 {
		est.SpecialRate = float64(est.SpecialHits) / float64(est.SpecialPicks)
	}
	est.PerDraft = calcStats(samples)
	return est, nil
}

func offers(p Pick, pred card.Predicate) bool {
	for _, c := range p.Cards {
		if pred(c) {
			return true
		}
	}
	return false
}
