// Package statistics quantifies the sampling error of Monte Carlo equity
// estimates. Each trial is a Bernoulli outcome, so win and equity rates are
// binomial proportions with well-known confidence intervals.
package statistics

import "math"

// z95 is the normal quantile for a two-sided 95% interval.
const z95 = 1.959963984540054

// Proportion is a binomial estimate: successes out of trials.
type Proportion struct {
	Successes int
	Trials    int
}

// Estimate returns the point estimate successes/trials, or 0 for no trials.
func (p Proportion) Estimate() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Successes) / float64(p.Trials)
}

// StdError returns the standard error of the estimate.
func (p Proportion) StdError() float64 {
	if p.Trials == 0 {
		return 0
	}
	est := p.Estimate()
	return math.Sqrt(est * (1 - est) / float64(p.Trials))
}

// Wilson95 returns the 95% Wilson score interval. Unlike the normal
// approximation it stays inside [0, 1] and behaves at extreme rates, which
// matters for near-lock hands that win almost every trial.
func (p Proportion) Wilson95() (low, high float64) {
	if p.Trials == 0 {
		return 0, 0
	}

	n := float64(p.Trials)
	est := p.Estimate()
	z2 := z95 * z95

	denom := 1 + z2/n
	center := (est + z2/(2*n)) / denom
	margin := z95 * math.Sqrt(est*(1-est)/n+z2/(4*n*n)) / denom

	low = center - margin
	high = center + margin
	if low < 0 {
		low = 0
	}
	if high > 1 {
		high = 1
	}
	return low, high
}

// MarginOfError returns the worst-case 95% half-width for a trial count,
// taken at a rate of one half where binomial variance peaks.
func MarginOfError(trials int) float64 {
	if trials == 0 {
		return 0
	}
	return z95 * 0.5 / math.Sqrt(float64(trials))
}

// TrialsForMargin returns the trial count needed to push the worst-case 95%
// half-width at or below the given margin.
func TrialsForMargin(margin float64) int {
	if margin <= 0 {
		return 0
	}
	return int(math.Ceil(z95 * z95 * 0.25 / (margin * margin)))
}
