package analysis

import (
	"context"
	"fmt"

	"github.com/pokersim/holdem/internal/deck"
	"github.com/pokersim/holdem/internal/evaluator"
	"github.com/pokersim/holdem/internal/montecarlo"
	"github.com/pokersim/holdem/internal/randutil"
)

// LiveReport is the analysis of a partially selected hand. Convention: the
// first two selected cards are hero's hole cards, the rest the board.
type LiveReport struct {
	CardsCount   int                `json:"cards_count"`
	Hole         []deck.Card        `json:"hole_cards,omitempty"`
	Board        []deck.Card        `json:"board_cards,omitempty"`
	Message      string             `json:"message,omitempty"`
	WinRate      float64            `json:"win_pct"`
	TieRate      float64            `json:"tie_pct"`
	LossRate     float64            `json:"loss_pct"`
	Equity       float64            `json:"equity"`
	Distribution map[string]float64 `json:"hand_distribution"`
	BestPossible string             `json:"best_possible_hand"`
	CurrentHand  string             `json:"current_hand,omitempty"`
	Draws        []string           `json:"potential_draws,omitempty"`
}

// Live analyzes 1-7 selected cards. A single card yields a prompt to keep
// selecting; from two cards on it simulates hero against random opponents
// while tallying the hand category hero makes in each sampled world. Unlike
// the engine, the live view accepts intermediate board sizes (1 or 2 cards).
func Live(ctx context.Context, cards []deck.Card, opponents, trials int, seed int64) (LiveReport, error) {
	if len(cards) == 0 || len(cards) > 7 {
		return LiveReport{}, fmt.Errorf("%w: live analysis takes 1-7 cards, got %d",
			deck.ErrInvalidInput, len(cards))
	}
	if err := deck.ValidateCards(cards); err != nil {
		return LiveReport{}, err
	}
	if opponents < 1 || opponents > montecarlo.MaxOpponents {
		return LiveReport{}, fmt.Errorf("%w: opponents must be 1-%d, got %d",
			deck.ErrInvalidInput, montecarlo.MaxOpponents, opponents)
	}
	if trials <= 0 {
		return LiveReport{}, fmt.Errorf("%w: trials must be positive, got %d",
			deck.ErrInvalidInput, trials)
	}

	if len(cards) == 1 {
		return LiveReport{
			CardsCount:   1,
			Message:      "Select 2 hole cards for probability analysis.",
			Distribution: map[string]float64{},
			BestPossible: "Need 2+ cards",
		}, nil
	}

	hole := cards[:2]
	board := cards[2:]

	if seed == 0 {
		seed = montecarlo.DefaultSeed
	}

	residual, err := deck.NewResidual(cards)
	if err != nil {
		return LiveReport{}, err
	}

	need := (5 - len(board)) + 2*opponents
	if need > residual.Size() {
		return LiveReport{}, fmt.Errorf("%w: trial needs %d cards, %d unseen",
			deck.ErrDeckExhausted, need, residual.Size())
	}

	rng := randutil.New(seed)
	fill := make([]deck.Card, 5-len(board))
	holes := make([][2]deck.Card, opponents)
	hero := make([]deck.Card, 7)
	opp := make([]deck.Card, 7)
	copy(hero, hole)
	copy(hero[2:], board)

	var counts [len(evaluator.Categories)]int
	var result montecarlo.SimResult

	for done := 0; done < trials; done++ {
		if done%512 == 0 {
			if err := ctx.Err(); err != nil {
				return LiveReport{}, err
			}
		}

		if err := residual.SampleTrial(rng, fill, holes); err != nil {
			return LiveReport{}, err
		}
		copy(hero[2+len(board):], fill)

		heroKey, err := evaluator.Evaluate(hero)
		if err != nil {
			return LiveReport{}, err
		}
		counts[heroKey.Category]++

		outcome := 1
		for _, h := range holes {
			opp[0], opp[1] = h[0], h[1]
			copy(opp[2:], hero[2:])

			oppKey, err := evaluator.Evaluate(opp)
			if err != nil {
				return LiveReport{}, err
			}

			cmp := heroKey.Compare(oppKey)
			if cmp < 0 {
				outcome = -1
				break
			}
			if cmp == 0 {
				outcome = 0
			}
		}

		switch {
		case outcome > 0:
			result.Wins++
		case outcome < 0:
			result.Losses++
		default:
			result.Ties++
		}
		result.Total++
	}

	report := LiveReport{
		CardsCount:   len(cards),
		Hole:         hole,
		Board:        board,
		WinRate:      result.WinRate(),
		TieRate:      result.TieRate(),
		LossRate:     result.LossRate(),
		Equity:       result.Equity(),
		Distribution: make(map[string]float64),
		Draws:        PotentialDraws(hole, board),
	}

	best := evaluator.HighCard
	for _, category := range evaluator.Categories {
		n := counts[category]
		if n == 0 {
			continue
		}
		report.Distribution[category.String()] = float64(n) / float64(result.Total)
		best = category
	}
	report.BestPossible = best.String()

	// With five or more selected cards hero's current hand is known exactly.
	if len(cards) >= 5 {
		desc, err := DescribeHand(cards)
		if err != nil {
			return LiveReport{}, err
		}
		report.CurrentHand = desc.Name
		report.BestPossible = desc.Name
	}

	return report, nil
}
