// Package evaluator ranks Texas Hold'em hands. Evaluation of more than five
// cards enumerates every five-card subset and keeps the strongest key, so a
// seven-card hand checks all C(7,5)=21 combinations.
package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pokersim/holdem/internal/deck"
)

// ErrInvalidHandSize is returned when evaluation is attempted with fewer
// cards than a poker hand requires.
var ErrInvalidHandSize = errors.New("hand requires at least 5 cards")

// Evaluate returns the strength key of the best five-card hand formed from
// the supplied cards. At least five unique cards are required. The function
// is pure: identical input always yields an identical key.
func Evaluate(cards []deck.Card) (HandKey, error) {
	if len(cards) < 5 {
		return HandKey{}, fmt.Errorf("%w: got %d", ErrInvalidHandSize, len(cards))
	}
	if err := deck.ValidateCards(cards); err != nil {
		return HandKey{}, err
	}

	var five [5]deck.Card
	if len(cards) == 5 {
		copy(five[:], cards)
		return evaluate5(five), nil
	}

	// Walk the five-card combinations in lexicographic index order, threading
	// the running maximum as a value.
	idx := [5]int{0, 1, 2, 3, 4}
	var best HandKey
	first := true
	for {
		for i, j := range idx {
			five[i] = cards[j]
		}
		key := evaluate5(five)
		if first || key.Compare(best) > 0 {
			best = key
			first = false
		}

		i := len(idx) - 1
		for i >= 0 && idx[i] == len(cards)-len(idx)+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < len(idx); j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return best, nil
}

// Compare orders two seven-card hands. Returns 1 if h1 wins, -1 if h2 wins,
// 0 on a tie. Each hand must hold exactly seven unique cards; the two hands
// may share cards (a common board).
func Compare(h1, h2 []deck.Card) (int, error) {
	if len(h1) != 7 || len(h2) != 7 {
		return 0, fmt.Errorf("%w: compare requires 7-card hands, got %d and %d",
			ErrInvalidHandSize, len(h1), len(h2))
	}

	k1, err := Evaluate(h1)
	if err != nil {
		return 0, err
	}
	k2, err := Evaluate(h2)
	if err != nil {
		return 0, err
	}

	return k1.Compare(k2), nil
}

// rankGroup couples a rank with how many cards of it a hand holds.
type rankGroup struct {
	count int
	rank  deck.Rank
}

// evaluate5 classifies exactly five cards. Callers guarantee uniqueness.
func evaluate5(cards [5]deck.Card) HandKey {
	var counts [13]int
	flush := true
	for i, card := range cards {
		counts[card.Rank()]++
		if i > 0 && card.Suit() != cards[0].Suit() {
			flush = false
		}
	}

	// Group ranks by multiplicity: quads/trips/pairs first, then by rank
	// descending. The group order doubles as the tiebreak order for every
	// paired category.
	groups := make([]rankGroup, 0, 5)
	for rank := deck.Ace; ; rank-- {
		if counts[rank] > 0 {
			groups = append(groups, rankGroup{count: counts[rank], rank: rank})
		}
		if rank == deck.Two {
			break
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	straightRank, isStraight := straightHigh(counts)

	var key HandKey
	switch {
	case flush && isStraight:
		key.Category = StraightFlush
		key.Tiebreak[0] = straightRank

	case groups[0].count == 4:
		key.Category = FourOfAKind
		key.Tiebreak[0] = groups[0].rank
		key.Tiebreak[1] = groups[1].rank

	case groups[0].count == 3 && groups[1].count >= 2:
		key.Category = FullHouse
		key.Tiebreak[0] = groups[0].rank
		key.Tiebreak[1] = groups[1].rank

	case flush:
		key.Category = Flush
		fillRanks(&key, groups)

	case isStraight:
		key.Category = Straight
		key.Tiebreak[0] = straightRank

	case groups[0].count == 3:
		key.Category = ThreeOfAKind
		fillRanks(&key, groups)

	case groups[0].count == 2 && groups[1].count == 2:
		key.Category = TwoPair
		fillRanks(&key, groups)

	case groups[0].count == 2:
		key.Category = OnePair
		fillRanks(&key, groups)

	default:
		key.Category = HighCard
		fillRanks(&key, groups)
	}

	return key
}

func fillRanks(key *HandKey, groups []rankGroup) {
	for i, g := range groups {
		if i == len(key.Tiebreak) {
			break
		}
		key.Tiebreak[i] = g.rank
	}
}

// straightHigh reports the high rank of a straight within the given rank
// multiset, if any. Candidate highs are scanned from Ace down to Five; the
// scan floor bounds the wraparound arithmetic so that the only straight
// reachable through the ace position is the wheel. The wheel is then tested
// as a fixed special case, ranking as a Five-high straight.
func straightHigh(counts [13]int) (deck.Rank, bool) {
	for high := int(deck.Ace); high >= int(deck.Five); high-- {
		ok := true
		for k := 0; k < 5; k++ {
			if counts[(high-k+13)%13] == 0 {
				ok = false
				break
			}
		}
		if ok {
			return deck.Rank(high), true
		}
	}

	// Wheel: A-2-3-4-5, five-high by rule.
	if counts[deck.Ace] > 0 && counts[deck.Two] > 0 && counts[deck.Three] > 0 &&
		counts[deck.Four] > 0 && counts[deck.Five] > 0 {
		return deck.Five, true
	}

	return 0, false
}
