package deck

import (
	"errors"
	"testing"

	"github.com/pokersim/holdem/internal/randutil"
)

func TestNewResidualExcludesKnown(t *testing.T) {
	known := MustParseCards("AsKd")
	residual, err := NewResidual(known)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if residual.Size() != NumCards-2 {
		t.Errorf("Size() = %d, want %d", residual.Size(), NumCards-2)
	}

	seen := NewCardSet(known)
	fill := make([]Card, 5)
	holes := make([][2]Card, 8)
	if err := residual.SampleTrial(randutil.New(1), fill, holes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, card := range fill {
		if seen.Contains(card) {
			t.Errorf("sampled known card %s", card)
		}
		seen.Add(card)
	}
	for _, hole := range holes {
		for _, card := range hole[:] {
			if seen.Contains(card) {
				t.Errorf("sampled card %s twice", card)
			}
			seen.Add(card)
		}
	}
}

func TestNewResidualValidation(t *testing.T) {
	if _, err := NewResidual([]Card{60}); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("out-of-range known card: error = %v, want ErrInvalidCard", err)
	}
	if _, err := NewResidual([]Card{3, 3}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("duplicate known card: error = %v, want ErrInvalidInput", err)
	}
}

func TestSampleTrialDeterminism(t *testing.T) {
	known := MustParseCards("AsKd")

	sample := func() ([]Card, [][2]Card) {
		residual, err := NewResidual(known)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rng := randutil.New(42)
		fill := make([]Card, 5)
		holes := make([][2]Card, 2)
		for trial := 0; trial < 3; trial++ {
			if err := residual.SampleTrial(rng, fill, holes); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		return fill, holes
	}

	fill1, holes1 := sample()
	fill2, holes2 := sample()

	for i := range fill1 {
		if fill1[i] != fill2[i] {
			t.Errorf("board card %d differs: %s vs %s", i, fill1[i], fill2[i])
		}
	}
	for i := range holes1 {
		if holes1[i] != holes2[i] {
			t.Errorf("opponent %d differs: %v vs %v", i, holes1[i], holes2[i])
		}
	}
}

func TestSampleTrialExhaustion(t *testing.T) {
	// Leave only 10 unseen cards, then ask for more.
	known := make([]Card, 42)
	for i := range known {
		known[i] = Card(i)
	}
	residual, err := NewResidual(known)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fill := make([]Card, 5)
	holes := make([][2]Card, 3)
	err = residual.SampleTrial(randutil.New(1), fill, holes)
	if !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("error = %v, want ErrDeckExhausted", err)
	}
}
