package evaluator

import "github.com/pokersim/holdem/internal/deck"

// Category enumerates the poker hand classes ordered from weakest to
// strongest. The zero value is HighCard.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Categories lists every category in ascending strength order.
var Categories = [...]Category{
	HighCard, OnePair, TwoPair, ThreeOfAKind, Straight,
	Flush, FullHouse, FourOfAKind, StraightFlush,
}

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandKey is the comparable strength of a five-card hand: a category plus up
// to five tiebreak ranks, most-significant first and zero-padded. Ordering is
// lexicographic: category first, then tiebreak element by element.
type HandKey struct {
	Category Category
	Tiebreak [5]deck.Rank
}

// Compare orders two keys: 1 if k is stronger, -1 if other is stronger, 0 on
// an exact tie.
func (k HandKey) Compare(other HandKey) int {
	if k.Category != other.Category {
		if k.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(k.Tiebreak); i++ {
		if k.Tiebreak[i] != other.Tiebreak[i] {
			if k.Tiebreak[i] > other.Tiebreak[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String returns the category name.
func (k HandKey) String() string {
	return k.Category.String()
}
