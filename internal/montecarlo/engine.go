// Package montecarlo estimates hero equity by sampling completions of the
// unseen deck and comparing hero against every opponent in each sampled
// world.
package montecarlo

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/pokersim/holdem/internal/deck"
	"github.com/pokersim/holdem/internal/evaluator"
	"github.com/pokersim/holdem/internal/randutil"
)

const (
	// DefaultSeed is used when the caller supplies none, keeping unseeded
	// runs reproducible rather than time-dependent.
	DefaultSeed = 12345

	// DefaultTrials matches the historical default of the simulation API.
	DefaultTrials = 10000

	// DefaultOpponents is the number of opponents assumed when unspecified.
	DefaultOpponents = 1

	// MaxOpponents bounds a run; beyond eight the residual deck could not
	// deal a full table anyway.
	MaxOpponents = 8

	// trialBatch is how many trials run between cancellation checks.
	trialBatch = 512
)

// Params configures one simulation run.
type Params struct {
	// Hole is hero's two private cards.
	Hole []deck.Card

	// Board holds the visible community cards: 0, 3, 4, or 5 of them.
	Board []deck.Card

	// Opponents is the number of random opponents, 0 through MaxOpponents.
	// With zero opponents every trial is a win by definition.
	Opponents int

	// Trials is the number of sampled worlds. Zero is valid and yields an
	// all-zero result.
	Trials int

	// Seed drives the shuffle. Zero selects DefaultSeed.
	Seed int64

	// Workers splits trials across goroutines when greater than one. Results
	// are deterministic for a fixed seed and worker count.
	Workers int
}

// SimResult aggregates trial outcomes. Exactly one of wins, ties, and losses
// is incremented per trial, so Wins+Ties+Losses always equals Total.
type SimResult struct {
	Wins   int `json:"wins"`
	Ties   int `json:"ties"`
	Losses int `json:"losses"`
	Total  int `json:"total"`
}

// WinRate returns wins/total, or 0 for an empty run.
func (r SimResult) WinRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Total)
}

// TieRate returns ties/total, or 0 for an empty run.
func (r SimResult) TieRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Ties) / float64(r.Total)
}

// LossRate returns losses/total, or 0 for an empty run.
func (r SimResult) LossRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Losses) / float64(r.Total)
}

// Equity returns the standard equity estimate: wins plus half of ties.
func (r SimResult) Equity() float64 {
	return r.WinRate() + r.TieRate()/2
}

func (r SimResult) add(o SimResult) SimResult {
	return SimResult{
		Wins:   r.Wins + o.Wins,
		Ties:   r.Ties + o.Ties,
		Losses: r.Losses + o.Losses,
		Total:  r.Total + o.Total,
	}
}

// Run executes a Monte Carlo simulation. Preconditions are validated once up
// front; any violation fails the whole run with no partial result. The
// context is checked between trial batches so large runs can be cancelled.
func Run(ctx context.Context, p Params) (SimResult, error) {
	if err := validate(p); err != nil {
		return SimResult{}, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	known := make([]deck.Card, 0, len(p.Hole)+len(p.Board))
	known = append(known, p.Hole...)
	known = append(known, p.Board...)

	need := (5 - len(p.Board)) + 2*p.Opponents
	if need > deck.NumCards-len(known) {
		return SimResult{}, fmt.Errorf("%w: trial needs %d cards, %d unseen",
			deck.ErrDeckExhausted, need, deck.NumCards-len(known))
	}

	if p.Workers > 1 && p.Trials > 0 {
		return runParallel(ctx, p, known, seed)
	}

	result, err := runTrials(ctx, p, known, randutil.New(seed), p.Trials)
	if err != nil {
		return SimResult{}, err
	}
	return result, nil
}

func validate(p Params) error {
	if len(p.Hole) != 2 {
		return fmt.Errorf("%w: need exactly 2 hole cards, got %d", deck.ErrInvalidInput, len(p.Hole))
	}
	switch len(p.Board) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("%w: board must have 0, 3, 4, or 5 cards, got %d", deck.ErrInvalidInput, len(p.Board))
	}
	if p.Opponents < 0 || p.Opponents > MaxOpponents {
		return fmt.Errorf("%w: opponents must be 0-%d, got %d", deck.ErrInvalidInput, MaxOpponents, p.Opponents)
	}
	if p.Trials < 0 {
		return fmt.Errorf("%w: trials must be non-negative, got %d", deck.ErrInvalidInput, p.Trials)
	}

	cards := make([]deck.Card, 0, len(p.Hole)+len(p.Board))
	cards = append(cards, p.Hole...)
	cards = append(cards, p.Board...)
	return deck.ValidateCards(cards)
}

// runTrials is the sequential trial loop: one residual deck reshuffled per
// trial, hero evaluated once, then compared against each opponent.
func runTrials(ctx context.Context, p Params, known []deck.Card, rng *rand.Rand, trials int) (SimResult, error) {
	residual, err := deck.NewResidual(known)
	if err != nil {
		return SimResult{}, err
	}

	fill := make([]deck.Card, 5-len(p.Board))
	holes := make([][2]deck.Card, p.Opponents)
	hero := make([]deck.Card, 7)
	opp := make([]deck.Card, 7)
	copy(hero, p.Hole)
	copy(hero[2:], p.Board)

	var result SimResult
	for done := 0; done < trials; {
		if err := ctx.Err(); err != nil {
			return SimResult{}, err
		}

		batch := trials - done
		if batch > trialBatch {
			batch = trialBatch
		}

		for i := 0; i < batch; i++ {
			if err := residual.SampleTrial(rng, fill, holes); err != nil {
				return SimResult{}, err
			}
			copy(hero[2+len(p.Board):], fill)

			heroKey, err := evaluator.Evaluate(hero)
			if err != nil {
				return SimResult{}, err
			}

			// Win unless an opponent beats or ties hero.
			outcome := 1
			for _, h := range holes {
				opp[0], opp[1] = h[0], h[1]
				copy(opp[2:], hero[2:])

				oppKey, err := evaluator.Evaluate(opp)
				if err != nil {
					return SimResult{}, err
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
		done += batch
	}

	return result, nil
}

// runParallel distributes trials across workers, each with a generator
// stream derived from the run seed and its index. Per-worker counts are
// reduced by summation, which is deterministic for a fixed partition.
func runParallel(ctx context.Context, p Params, known []deck.Card, seed int64) (SimResult, error) {
	workers := p.Workers
	if workers > p.Trials {
		workers = p.Trials
	}

	partials := make([]SimResult, workers)
	g, gctx := errgroup.WithContext(ctx)

	base := p.Trials / workers
	extra := p.Trials % workers
	for w := 0; w < workers; w++ {
		share := base
		if w < extra {
			share++
		}
		rng := randutil.Worker(seed, w)
		g.Go(func() error {
			partial, err := runTrials(gctx, p, known, rng, share)
			if err != nil {
				return err
			}
			partials[w] = partial
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return SimResult{}, err
	}

	var result SimResult
	for _, partial := range partials {
		result = result.add(partial)
	}
	return result, nil
}
