package deck

import (
	"errors"
	"testing"
)

func TestCardEncoding(t *testing.T) {
	tests := []struct {
		name string
		id   Card
		rank Rank
		suit Suit
	}{
		{"lowest id is the two of clubs", 0, Two, Clubs},
		{"rank is id mod 13", 14, Three, Diamonds},
		{"suit is id div 13", 27, Three, Hearts},
		{"highest id is the ace of spades", 51, Ace, Spades},
		{"ace of diamonds", 25, Ace, Diamonds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Rank(); got != tt.rank {
				t.Errorf("Rank() = %v, want %v", got, tt.rank)
			}
			if got := tt.id.Suit(); got != tt.suit {
				t.Errorf("Suit() = %v, want %v", got, tt.suit)
			}
			if New(tt.rank, tt.suit) != tt.id {
				t.Errorf("New(%v, %v) = %d, want %d", tt.rank, tt.suit, New(tt.rank, tt.suit), tt.id)
			}
		})
	}
}

func TestCardValid(t *testing.T) {
	if !Card(0).Valid() || !Card(51).Valid() {
		t.Error("identifiers 0 and 51 should be valid")
	}
	if Card(52).Valid() {
		t.Error("identifier 52 should be invalid")
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("AsKd 2c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Card{New(Ace, Spades), New(King, Diamonds), New(Two, Clubs)}
	if len(cards) != len(want) {
		t.Fatalf("got %d cards, want %d", len(cards), len(want))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("card %d = %s, want %s", i, cards[i], want[i])
		}
	}
}

func TestParseCardsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"odd length", "AsK"},
		{"unknown rank", "XsKd"},
		{"unknown suit", "AxKd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCards(tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseCards(%q) error = %v, want ErrInvalidInput", tt.input, err)
			}
		})
	}
}

func TestCardString(t *testing.T) {
	if got := New(Ace, Spades).String(); got != "A♠" {
		t.Errorf("String() = %q, want %q", got, "A♠")
	}
	if got := New(Ten, Hearts).String(); got != "T♥" {
		t.Errorf("String() = %q, want %q", got, "T♥")
	}
}

func TestValidateCards(t *testing.T) {
	if err := ValidateCards([]Card{0, 1, 51}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateCards([]Card{0, 52}); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("out-of-range card: error = %v, want ErrInvalidCard", err)
	}
	if err := ValidateCards([]Card{7, 7}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("duplicate card: error = %v, want ErrInvalidInput", err)
	}
}

func TestCardSet(t *testing.T) {
	cs := NewCardSet([]Card{0, 13, 51})
	for _, card := range []Card{0, 13, 51} {
		if !cs.Contains(card) {
			t.Errorf("set should contain %s", card)
		}
	}
	if cs.Contains(1) {
		t.Error("set should not contain an unadded card")
	}
}
