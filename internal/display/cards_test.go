package display

import (
	"strings"
	"testing"

	"github.com/pokersim/holdem/internal/deck"
)

func TestCard(t *testing.T) {
	// Color codes depend on the terminal profile; the card text is always
	// present.
	if got := Card(deck.MustParseCards("As")[0]); !strings.Contains(got, "A♠") {
		t.Errorf("Card(As) = %q, want it to contain A♠", got)
	}
	if got := Card(deck.MustParseCards("Th")[0]); !strings.Contains(got, "T♥") {
		t.Errorf("Card(Th) = %q, want it to contain T♥", got)
	}
}

func TestCards(t *testing.T) {
	got := Cards(deck.MustParseCards("AsKd"))
	if !strings.Contains(got, "A♠") || !strings.Contains(got, "K♦") {
		t.Errorf("Cards(AsKd) = %q, missing card text", got)
	}
	if Cards(nil) != "" {
		t.Error("empty hand should render empty")
	}
}
