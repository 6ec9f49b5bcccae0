package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrDeckExhausted is returned when the residual deck cannot supply the cards
// a trial requires.
var ErrDeckExhausted = errors.New("residual deck exhausted")

// Residual is the unseen remainder of the deck: all 52 identifiers minus the
// cards already known to the caller (hero's hole cards plus any visible
// board). One Residual is reused across trials; each trial reshuffles it in
// place, which keeps the permutation uniform.
type Residual struct {
	cards []Card
}

// NewResidual builds the residual deck from the known cards. It fails with
// ErrInvalidCard or ErrInvalidInput if the known cards are out of range or
// contain duplicates.
func NewResidual(known []Card) (*Residual, error) {
	if err := ValidateCards(known); err != nil {
		return nil, err
	}

	seen := NewCardSet(known)
	cards := make([]Card, 0, NumCards-len(known))
	for id := Card(0); id < NumCards; id++ {
		if !seen.Contains(id) {
			cards = append(cards, id)
		}
	}

	return &Residual{cards: cards}, nil
}

// Size returns the number of unseen cards.
func (r *Residual) Size() int {
	return len(r.cards)
}

// Shuffle permutes the residual in place using Fisher-Yates. The shuffle
// algorithm is pinned here so that a fixed seed reproduces the same sampled
// worlds across runs and across implementations of the surrounding loop.
func (r *Residual) Shuffle(rng *rand.Rand) {
	for i := len(r.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		r.cards[i], r.cards[j] = r.cards[j], r.cards[i]
	}
}

// SampleTrial shuffles the residual and deals one trial's completion: fill is
// populated with cards completing the board, then each opponent receives two
// cards in opponent order. Cards are consumed strictly in order, without
// replacement. Fails with ErrDeckExhausted if the residual cannot cover the
// request.
func (r *Residual) SampleTrial(rng *rand.Rand, fill []Card, holes [][2]Card) error {
	need := len(fill) + 2*len(holes)
	if need > len(r.cards) {
		return fmt.Errorf("%w: need %d cards, %d unseen", ErrDeckExhausted, need, len(r.cards))
	}

	r.Shuffle(rng)

	next := 0
	for i := range fill {
		fill[i] = r.cards[next]
		next++
	}
	for i := range holes {
		holes[i][0] = r.cards[next]
		holes[i][1] = r.cards[next+1]
		next += 2
	}

	return nil
}
