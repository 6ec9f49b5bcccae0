package statistics

import (
	"math"
	"testing"
)

func TestProportionEstimate(t *testing.T) {
	p := Proportion{Successes: 850, Trials: 1000}
	if got := p.Estimate(); got != 0.85 {
		t.Errorf("estimate = %f, want 0.85", got)
	}

	empty := Proportion{}
	if empty.Estimate() != 0 || empty.StdError() != 0 {
		t.Error("empty proportion should estimate 0 with no error")
	}
}

func TestStdErrorShrinksWithTrials(t *testing.T) {
	small := Proportion{Successes: 50, Trials: 100}
	large := Proportion{Successes: 5000, Trials: 10000}
	if small.StdError() <= large.StdError() {
		t.Errorf("more trials should shrink the error: %f vs %f",
			small.StdError(), large.StdError())
	}

	// At p=0.5 and n=10000 the standard error is 0.005.
	if got := large.StdError(); math.Abs(got-0.005) > 1e-9 {
		t.Errorf("stderr = %f, want 0.005", got)
	}
}

func TestWilson95(t *testing.T) {
	p := Proportion{Successes: 850, Trials: 1000}
	low, high := p.Wilson95()

	if low >= high {
		t.Fatalf("degenerate interval [%f, %f]", low, high)
	}
	if est := p.Estimate(); est < low || est > high {
		t.Errorf("estimate %f outside [%f, %f]", est, low, high)
	}
	// Roughly ±2.2% at this rate and trial count.
	if width := high - low; width < 0.03 || width > 0.06 {
		t.Errorf("interval width = %f, want around 0.045", width)
	}
}

func TestWilson95Extremes(t *testing.T) {
	sure := Proportion{Successes: 1000, Trials: 1000}
	low, high := sure.Wilson95()
	if math.Abs(high-1) > 1e-9 {
		t.Errorf("high = %f, want 1 for an all-wins sample", high)
	}
	if high > 1 {
		t.Errorf("high = %f, interval left [0, 1]", high)
	}
	if low >= 1 || low < 0.99 {
		t.Errorf("low = %f, want just under 1", low)
	}

	never := Proportion{Successes: 0, Trials: 1000}
	low, high = never.Wilson95()
	if math.Abs(low) > 1e-9 {
		t.Errorf("low = %f, want 0 for a no-wins sample", low)
	}
	if high <= 0 || high > 0.01 {
		t.Errorf("high = %f, want just over 0", high)
	}

	none := Proportion{}
	if low, high := none.Wilson95(); low != 0 || high != 0 {
		t.Errorf("no-trial interval = [%f, %f], want [0, 0]", low, high)
	}
}

func TestMarginOfError(t *testing.T) {
	// 10k trials pin the rate within about one percentage point.
	if got := MarginOfError(10000); math.Abs(got-0.0098) > 0.0002 {
		t.Errorf("margin at 10000 trials = %f, want about 0.0098", got)
	}
	if MarginOfError(0) != 0 {
		t.Error("margin without trials should be 0")
	}
}

func TestTrialsForMargin(t *testing.T) {
	trials := TrialsForMargin(0.01)
	if trials < 9000 || trials > 10000 {
		t.Errorf("trials for 1%% margin = %d, want about 9604", trials)
	}
	if m := MarginOfError(trials); m > 0.01 {
		t.Errorf("margin at computed count = %f, exceeds 0.01", m)
	}
	if TrialsForMargin(0) != 0 {
		t.Error("non-positive margin should yield 0")
	}
}
