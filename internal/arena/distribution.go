package arena

import "math"

// SplitPicks divides a horizon of n remaining picks into regular and special picks:
// special = n/10 + 1 for n > 0, never more than the draft's four special picks nor n.
func SplitPicks(n int) (regular, special int, err error) {
	if n < 0 || n > DraftPicks {
		return 0, 0, ErrHorizon
	}
	if n == 0 {
		return 0, 0, nil
	}
	special = n/10 + 1
	if special > len(specialPicks) {
		special = len(specialPicks)
	}
	if special > n {
		special = n
	}
	return n - special, special, nil
}

// Distribution is the law of the number of successful picks over a horizon: the
// sum of a Binomial(Regular, PRegular) and a Binomial(Special, PSpecial).
type Distribution struct {
	N        int     `json:"n"`
	Regular  int     `json:"regular_picks"`
	Special  int     `json:"special_picks"`
	PRegular float64 `json:"regular_p"`
	PSpecial float64 `json:"special_p"`

	pmf []float64
}

// NewDistribution convolves the two binomials over k = 0..regular+special.
func NewDistribution(regular int, pRegular float64, special int, pSpecial float64) Distribution {
	n := regular + special
	pmf := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		var s float64
		for i := 0; i <= k; i++ {
			s += binomialPMF(regular, pRegular, k-i) * binomialPMF(special, pSpecial, i)
		}
		pmf[k] = clamp01(s)
	}
	return Distribution{
		N:        n,
		Regular:  regular,
		Special:  special,
		PRegular: pRegular,
		PSpecial: pSpecial,
		pmf:      pmf,
	}
}

// Distribution over the next n picks.
func (m *Model) Distribution(n int) (Distribution, error) {
	reg, spec, err := SplitPicks(n)
	if err != nil {
		return Distribution{}, err
	}
	return NewDistribution(reg, m.RegularSuccess(), spec, m.SpecialSuccess()), nil
}

// Expectation is the expected number of successful picks among the next n.
func (m *Model) Expectation(n int) (float64, error) {
	d, err := m.Distribution(n)
	if err != nil {
		return 0, err
	}
	return d.Expectation(), nil
}

// PMF is P(exactly k successful picks); 0 outside [0, N].
func (d Distribution) PMF(k int) float64 {
	if k < 0 || k >= len(d.pmf) {
		return 0
	}
	return d.pmf[k]
}

// CDF is P(at most k successful picks).
func (d Distribution) CDF(k int) float64 {
	var s float64
	for i := 0; i <= k && i < len(d.pmf); i++ {
		s += d.pmf[i]
	}
	return clamp01(s)
}

// AtLeast is P(k or more successful picks).
func (d Distribution) AtLeast(k int) float64 {
	if k <= 0 {
		return 1
	}
	return clamp01(1 - d.CDF(k-1))
}

// Values returns pmf(0..N).
func (d Distribution) Values() []float64 {
	return append([]float64(nil), d.pmf...)
}

// Expectation sums k·pmf(k).
func (d Distribution) Expectation() float64 {
	var e float64
	for k, p := range d.pmf {
		e += float64(k) * p
	}
	return e
}

// Variance sums k²·pmf(k) and subtracts the squared expectation.
func (d Distribution) Variance() float64 {
	var m2 float64
	for k, p := range d.pmf {
		m2 += float64(k*k) * p
	}
	e := d.Expectation()
	v := m2 - e*e
	if v < 0 {
		return 0
	}
	return v
}

func (d Distribution) StdDev() float64 { return math.Sqrt(d.Variance()) }
