package deck

import (
	"errors"
	"fmt"
	"strings"
)

// NumCards is the size of a standard deck.
const NumCards = 52

// Errors reported for malformed card input. They are checked once per call,
// never inside a simulation loop.
var (
	ErrInvalidCard  = errors.New("card identifier out of range")
	ErrInvalidInput = errors.New("invalid card input")
)

// Suit represents a card suit. Suits carry no ordering; they only matter for
// flush detection.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Rank represents a card rank, ordered Two (lowest) to Ace (highest).
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is a single playing card encoded as an integer identifier in [0,52).
// The encoding is fixed for interop: rank = id mod 13, suit = id div 13.
type Card uint8

// New creates a card from its rank and suit.
func New(rank Rank, suit Suit) Card {
	return Card(uint8(suit)*13 + uint8(rank))
}

// Rank returns the card's rank.
func (c Card) Rank() Rank {
	return Rank(c % 13)
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(c / 13)
}

// Valid reports whether the identifier is inside [0,52).
func (c Card) Valid() bool {
	return c < NumCards
}

// String returns the display form of a card (e.g., "A♠")
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return fmt.Sprintf("%s%s", c.Rank(), c.Suit())
}

// ParseCard parses two-character card notation like "As" or "td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: card %q must be two characters", ErrInvalidInput, s)
	}

	rank, err := parseRank(s[0])
	if err != nil {
		return 0, err
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return 0, err
	}

	return New(rank, suit), nil
}

// ParseCards parses a string of card notation into a slice of cards.
// Format: "AsKsQsJsTs" where each card is [Rank][Suit]
// Ranks: A, K, Q, J, T, 9, 8, 7, 6, 5, 4, 3, 2
// Suits: c (clubs), d (diamonds), h (hearts), s (spades)
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: card string %q has odd length", ErrInvalidInput, s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("card at position %d: %w", i/2, err)
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	case '9':
		return Nine, nil
	case '8':
		return Eight, nil
	case '7':
		return Seven, nil
	case '6':
		return Six, nil
	case '5':
		return Five, nil
	case '4':
		return Four, nil
	case '3':
		return Three, nil
	case '2':
		return Two, nil
	default:
		return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidInput, string(c))
	}
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'c', 'C':
		return Clubs, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'h', 'H':
		return Hearts, nil
	case 's', 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidInput, string(c))
	}
}

// CardSet is a bitset over the 52 card identifiers.
type CardSet uint64

// Add adds a card to the set
func (cs *CardSet) Add(card Card) {
	*cs |= 1 << card
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(card Card) bool {
	return cs&(1<<card) != 0
}

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards []Card) CardSet {
	var cs CardSet
	for _, card := range cards {
		cs.Add(card)
	}
	return cs
}

// ValidateCards checks that every card identifier is in range and that no
// identifier appears twice.
func ValidateCards(cards []Card) error {
	var seen CardSet
	for _, card := range cards {
		if !card.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidCard, card)
		}
		if seen.Contains(card) {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidInput, card)
		}
		seen.Add(card)
	}
	return nil
}

// FormatCards renders a card slice as space-separated notation.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
