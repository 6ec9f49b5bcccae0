// Package analysis builds higher-level equity reports on top of the Monte
// Carlo engine: per-street equity, hand descriptions, draw detection, and a
// live view over a partially selected hand.
package analysis

import (
	"context"
	"fmt"

	"github.com/pokersim/holdem/internal/deck"
	"github.com/pokersim/holdem/internal/evaluator"
	"github.com/pokersim/holdem/internal/montecarlo"
)

// minStreetTrials floors the per-street trial count when a budget is split
// across streets.
const minStreetTrials = 500

// StreetEquity is the simulated equity with a given board prefix revealed.
type StreetEquity struct {
	Street   string  `json:"street"`
	BoardLen int     `json:"board_len"`
	Equity   float64 `json:"equity"`
	WinRate  float64 `json:"win_pct"`
	TieRate  float64 `json:"tie_pct"`
	LossRate float64 `json:"loss_pct"`
}

// EquityByStreet reruns the simulation at every street the board reaches:
// preflop always, then flop, turn, and river as cards are available. The
// trial budget is split evenly across the four streets with a floor.
func EquityByStreet(ctx context.Context, hole, board []deck.Card, opponents, trials int, seed int64) ([]StreetEquity, error) {
	perStreet := trials / 4
	if perStreet < minStreetTrials {
		perStreet = minStreetTrials
	}

	streets := []struct {
		name string
		size int
	}{
		{"preflop", 0},
		{"flop", 3},
		{"turn", 4},
		{"river", 5},
	}

	var out []StreetEquity
	for _, street := range streets {
		if len(board) < street.size {
			break
		}
		result, err := montecarlo.Run(ctx, montecarlo.Params{
			Hole:      hole,
			Board:     board[:street.size],
			Opponents: opponents,
			Trials:    perStreet,
			Seed:      seed,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", street.name, err)
		}
		out = append(out, StreetEquity{
			Street:   street.name,
			BoardLen: street.size,
			Equity:   result.Equity(),
			WinRate:  result.WinRate(),
			TieRate:  result.TieRate(),
			LossRate: result.LossRate(),
		})
	}

	return out, nil
}

// HandDescription names the best five-card hand formed by a card set.
type HandDescription struct {
	Category evaluator.Category `json:"category"`
	Name     string             `json:"hand_name"`
	Tiebreak []deck.Rank        `json:"tiebreak"`
}

// DescribeHand evaluates five to seven cards and reports the best hand.
func DescribeHand(cards []deck.Card) (HandDescription, error) {
	key, err := evaluator.Evaluate(cards)
	if err != nil {
		return HandDescription{}, err
	}

	// Trim padding so the description only carries meaningful ranks.
	used := tiebreakLen(key.Category)
	tiebreak := make([]deck.Rank, used)
	copy(tiebreak, key.Tiebreak[:used])

	return HandDescription{
		Category: key.Category,
		Name:     key.Category.String(),
		Tiebreak: tiebreak,
	}, nil
}

func tiebreakLen(c evaluator.Category) int {
	switch c {
	case evaluator.StraightFlush, evaluator.Straight:
		return 1
	case evaluator.FourOfAKind, evaluator.FullHouse:
		return 2
	case evaluator.ThreeOfAKind, evaluator.TwoPair:
		return 3
	case evaluator.OnePair:
		return 4
	default:
		return 5
	}
}

// PotentialDraws lists draws the hero could still complete: four to a flush,
// four to an open straight, four to the wheel.
func PotentialDraws(hole, board []deck.Card) []string {
	var draws []string
	all := append(append([]deck.Card{}, hole...), board...)
	if len(all) < 5 {
		return draws
	}

	var suitCounts [4]int
	for _, card := range all {
		suitCounts[card.Suit()]++
	}
	for _, count := range suitCounts {
		if count == 4 {
			draws = append(draws, "Flush draw (9 outs)")
			break
		}
	}

	var present [13]bool
	for _, card := range all {
		present[card.Rank()] = true
	}
	for high := int(deck.Ace); high >= int(deck.Five); high-- {
		have := 0
		for k := 0; k < 5; k++ {
			if present[(high-k+13)%13] {
				have++
			}
		}
		if have == 4 {
			draws = append(draws, "Straight draw (8 outs)")
			break
		}
	}

	wheelHave := 0
	for _, rank := range []deck.Rank{deck.Ace, deck.Two, deck.Three, deck.Four, deck.Five} {
		if present[rank] {
			wheelHave++
		}
	}
	if wheelHave >= 4 {
		draws = append(draws, "Wheel draw (8 outs)")
	}

	return draws
}

// HandsThatBeat lists the category names stronger than the given one.
func HandsThatBeat(category evaluator.Category) []string {
	var stronger []string
	for _, c := range evaluator.Categories {
		if c > category {
			stronger = append(stronger, c.String())
		}
	}
	return stronger
}

// StrategyMessage maps an equity estimate to an EV-oriented suggestion.
func StrategyMessage(winRate, tieRate float64) string {
	equity := winRate + tieRate/2
	switch {
	case equity >= 0.65:
		return "Strong equity — consider betting or raising for value."
	case equity >= 0.50:
		return "Positive equity — betting or calling is often correct."
	case equity >= 0.35:
		return "Moderate equity — play depends on pot odds and opponent tendencies."
	case equity >= 0.20:
		return "Low equity — consider folding unless pot odds justify a call."
	default:
		return "Weak equity — folding is usually correct unless you have strong implied odds."
	}
}
