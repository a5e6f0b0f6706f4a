package arena

import "errors"

var (
	// ErrPrecondition means a draw targeted a (rarity, owner) bucket with no cards.
	// The card collection is malformed; the draft cannot continue.
	ErrPrecondition = errors.New("precondition violated")
	ErrHorizon      = errors.New("horizon must be between 0 and 30 picks")
	ErrNoHeroClass  = errors.New("draft requires a hero class")
)
