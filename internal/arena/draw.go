package arena

import "errors"

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// Draw flips a biased coin: p <= 0 never hits, p >= 1 always hits,
// otherwise rng.Float64() < p.
func Draw(p float64, rng RandomSource) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}
