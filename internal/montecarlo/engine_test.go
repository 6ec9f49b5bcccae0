package montecarlo

import (
	"context"
	"errors"
	"testing"

	"github.com/pokersim/holdem/internal/deck"
)

func TestRunSumInvariant(t *testing.T) {
	result, err := Run(context.Background(), Params{
		Hole:      deck.MustParseCards("AsKd"),
		Opponents: 2,
		Trials:    2000,
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2000 {
		t.Errorf("total = %d, want 2000", result.Total)
	}
	if result.Wins+result.Ties+result.Losses != result.Total {
		t.Errorf("wins %d + ties %d + losses %d != total %d",
			result.Wins, result.Ties, result.Losses, result.Total)
	}
}

func TestRunDeterminism(t *testing.T) {
	p := Params{
		Hole:      []deck.Card{48, 44}, // Js 7s
		Opponents: 1,
		Trials:    1000,
		Seed:      42,
	}

	first, err := Run(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Run(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same seed produced different results: %+v vs %+v", first, second)
	}
}

func TestRunDefaultSeedIsFixed(t *testing.T) {
	p := Params{
		Hole:   deck.MustParseCards("AsKd"),
		Trials: 500,
	}

	first, err := Run(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Run(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("unseeded runs differ: %+v vs %+v", first, second)
	}

	explicit, err := Run(context.Background(), Params{
		Hole:   deck.MustParseCards("AsKd"),
		Trials: 500,
		Seed:   DefaultSeed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if explicit != first {
		t.Errorf("seed 0 and DefaultSeed diverge: %+v vs %+v", explicit, first)
	}
}

func TestRunZeroTrials(t *testing.T) {
	result, err := Run(context.Background(), Params{
		Hole:      deck.MustParseCards("AsKd"),
		Opponents: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != (SimResult{}) {
		t.Errorf("result = %+v, want all zero", result)
	}
	if result.WinRate() != 0 || result.Equity() != 0 {
		t.Errorf("rates on empty run should be 0, got win=%f equity=%f",
			result.WinRate(), result.Equity())
	}
}

func TestRunZeroOpponents(t *testing.T) {
	result, err := Run(context.Background(), Params{
		Hole:   deck.MustParseCards("2c7d"),
		Trials: 100,
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Wins != 100 || result.Ties != 0 || result.Losses != 0 {
		t.Errorf("with no opponents every trial wins, got %+v", result)
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want error
	}{
		{
			name: "one hole card",
			p:    Params{Hole: deck.MustParseCards("As"), Trials: 10},
			want: deck.ErrInvalidInput,
		},
		{
			name: "two-card board",
			p: Params{
				Hole:   deck.MustParseCards("AsKd"),
				Board:  deck.MustParseCards("2c7d"),
				Trials: 10,
			},
			want: deck.ErrInvalidInput,
		},
		{
			name: "too many opponents",
			p:    Params{Hole: deck.MustParseCards("AsKd"), Opponents: 9, Trials: 10},
			want: deck.ErrInvalidInput,
		},
		{
			name: "negative trials",
			p:    Params{Hole: deck.MustParseCards("AsKd"), Trials: -1},
			want: deck.ErrInvalidInput,
		},
		{
			name: "hole card repeated on board",
			p: Params{
				Hole:   deck.MustParseCards("AsKd"),
				Board:  deck.MustParseCards("As7d2c"),
				Trials: 10,
			},
			want: deck.ErrInvalidInput,
		},
		{
			name: "card out of range",
			p:    Params{Hole: []deck.Card{0, 52}, Trials: 10},
			want: deck.ErrInvalidCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.p)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunBoardCardsRespected(t *testing.T) {
	// Hero holds the nut flush on a completed board: no random completion can
	// beat it, so every trial is a win or tie.
	result, err := Run(context.Background(), Params{
		Hole:      deck.MustParseCards("AsKs"),
		Board:     deck.MustParseCards("QsJsTs"),
		Opponents: 3,
		Trials:    500,
		Seed:      7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Losses != 0 {
		t.Errorf("royal flush lost %d trials", result.Losses)
	}
}

func TestRunEquitySanity(t *testing.T) {
	// Pocket aces heads-up run roughly 85% against a random hand. Allow a
	// wide band; 10k trials keeps sampling noise well inside it.
	result, err := Run(context.Background(), Params{
		Hole:      deck.MustParseCards("AsAh"),
		Opponents: 1,
		Trials:    10000,
		Seed:      99,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eq := result.Equity(); eq < 0.80 || eq > 0.90 {
		t.Errorf("AA heads-up equity = %f, want within [0.80, 0.90]", eq)
	}
}

func TestRunParallelDeterminism(t *testing.T) {
	p := Params{
		Hole:      deck.MustParseCards("AsKd"),
		Opponents: 2,
		Trials:    4000,
		Seed:      42,
		Workers:   4,
	}

	first, err := Run(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Run(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("parallel runs with same seed differ: %+v vs %+v", first, second)
	}
	if first.Total != 4000 {
		t.Errorf("total = %d, want 4000", first.Total)
	}
	if first.Wins+first.Ties+first.Losses != first.Total {
		t.Errorf("counts do not sum to total: %+v", first)
	}
}

func TestRunMoreWorkersThanTrials(t *testing.T) {
	result, err := Run(context.Background(), Params{
		Hole:    deck.MustParseCards("AsKd"),
		Trials:  3,
		Seed:    1,
		Workers: 16,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("total = %d, want 3", result.Total)
	}
}

func TestRunMaxOpponents(t *testing.T) {
	// Eight opponents need 16 cards plus a 5-card runout, which a fresh deck
	// still covers.
	_, err := Run(context.Background(), Params{
		Hole:      deck.MustParseCards("AsKd"),
		Opponents: 8,
		Trials:    10,
	})
	if err != nil {
		t.Fatalf("8 opponents from a fresh deck should fit: %v", err)
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Params{
		Hole:      deck.MustParseCards("AsKd"),
		Opponents: 1,
		Trials:    100000,
		Seed:      42,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
