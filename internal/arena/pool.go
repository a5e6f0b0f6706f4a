package arena

import (
	"errors"

	"github.com/xtding233/arena-odds/internal/card"
)

var ErrEmptyPool = errors.New("draw from empty pool")

// Pool is a resettable draw-without-replacement urn of cards.
//
// buf is the pool's own copy of initial, kept as a permutation of it: buf[:n] is the
// available set and buf[n:] holds the cards drawn since the last Reset. Reset only
// has to restore n, and initial is never handed out or written.
type Pool struct {
	initial []card.Record
	buf     []card.Record
	n       int
}

// NewPool copies cards, so later changes to the argument do not leak in.
func NewPool(cards []card.Record) *Pool {
	initial := append([]card.Record(nil), cards...)
	return &Pool{
		initial: initial,
		buf:     append([]card.Record(nil), initial...),
		n:       len(initial),
	}
}

// Draw removes and returns one available card, each with equal probability.
func (p *Pool) Draw(rng RandomSource) (card.Record, error) {
	if p.n == 0 {
		return card.Record{}, ErrEmptyPool
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	i := rng.IntN(p.n)
	last := p.n - 1
	p.buf[i], p.buf[last] = p.buf[last], p.buf[i]
	p.n = last
	return p.buf[last], nil
}

// Reset puts every drawn card back.
func (p *Pool) Reset() { p.n = len(p.buf) }

// Len is the number of cards still available.
func (p *Pool) Len() int { return p.n }

// Size is the number of cards the pool was built with.
func (p *Pool) Size() int { return len(p.initial) }

// Available returns a copy of the cards that can still be drawn.
func (p *Pool) Available() []card.Record {
	return append([]card.Record(nil), p.buf[:p.n]...)
}

// Cards returns a copy of the full baseline contents.
func (p *Pool) Cards() []card.Record {
	return append([]card.Record(nil), p.initial...)
}

// Count returns how many baseline cards satisfy pred.
func (p *Pool) Count(pred card.Predicate) int {
	n := 0
	for _, c := range p.initial {
		if pred(c) {
			n++
		}
	}
	return n
}
