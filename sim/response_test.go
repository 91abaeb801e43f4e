package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/literise/placement-sim/sim/internal/testutil"
)

func TestProbabilityCorrect_HalfAtDifficulty(t *testing.T) {
	item := Item{Difficulty: 0.8, Discrimination: 1.7}
	assert.InDelta(t, 0.5, ProbabilityCorrect(0.8, item), 1e-12)
}

func TestProbabilityCorrect_MonotoneInTheta(t *testing.T) {
	item := Item{Difficulty: 0.2, Discrimination: 1.2}
	prev := 0.0
	for theta := -4.0; theta <= 4.0; theta += 0.25 {
		p := ProbabilityCorrect(theta, item)
		assert.Greater(t, p, prev, "theta=%v", theta)
		assert.True(t, p > 0 && p < 1)
		prev = p
	}
}

func TestProbabilityCorrect_KnownValue(t *testing.T) {
	item := Item{Difficulty: 0, Discrimination: 1}
	want := 1 / (1 + math.Exp(-1))
	assert.InDelta(t, want, ProbabilityCorrect(1, item), 1e-12)
}

func TestSimulate_CorrectRateMatchesProbability(t *testing.T) {
	sim := NewResponseSimulator(DefaultConfig().ResponseTime)
	rng := rand.New(rand.NewSource(42))
	item := Item{Difficulty: 0.5, Discrimination: 1.4}
	theta := 1.0

	n := 20000
	correct := 0
	for i := 0; i < n; i++ {
		if sim.Simulate(theta, item, rng).IsCorrect {
			correct++
		}
	}
	testutil.AssertFloat64Equal(t, "correct rate", ProbabilityCorrect(theta, item), float64(correct)/float64(n), 0.03)
}

func TestSimulate_ConsumesCorrectnessThenTiming(t *testing.T) {
	timing := DefaultConfig().ResponseTime
	sim := NewResponseSimulator(timing)
	item := Item{Difficulty: 1.0, Discrimination: 1.0}

	got := sim.Simulate(0.3, item, rand.New(rand.NewSource(9)))

	ref := rand.New(rand.NewSource(9))
	wantCorrect := ref.Float64() < ProbabilityCorrect(0.3, item)
	wantTime := math.Max(timing.Floor, timing.Base+timing.PerDifficulty*3+ref.NormFloat64()*timing.NoiseStd)

	assert.Equal(t, wantCorrect, got.IsCorrect)
	assert.Equal(t, wantTime, got.ResponseTime)
	assert.Equal(t, item, got.Item)
}

func TestSimulate_ResponseTimeFloored(t *testing.T) {
	sim := NewResponseSimulator(ResponseTimeModel{Base: -100, PerDifficulty: 0, NoiseStd: 1, Floor: 5})
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		assert.Equal(t, 5.0, sim.Simulate(0, Item{Discrimination: 1}, rng).ResponseTime)
	}
}

func TestSimulate_HarderItemsTakeLongerOnAverage(t *testing.T) {
	sim := NewResponseSimulator(DefaultConfig().ResponseTime)
	rng := rand.New(rand.NewSource(11))
	mean := func(b float64) float64 {
		sum := 0.0
		for i := 0; i < 2000; i++ {
			sum += sim.Simulate(0, Item{Difficulty: b, Discrimination: 1}, rng).ResponseTime
		}
		return sum / 2000
	}
	assert.Greater(t, mean(1.5), mean(-1.5)+15)
}

func TestSimulateForm_AnswersEveryItemInOrder(t *testing.T) {
	form := DefaultItemBank().SampleItems(rand.New(rand.NewSource(1)))
	sim := NewResponseSimulator(DefaultConfig().ResponseTime)
	out := sim.SimulateForm(0, &form, rand.New(rand.NewSource(2)))
	for i := range out {
		assert.Equal(t, form[i], out[i].Item)
		assert.GreaterOrEqual(t, out[i].ResponseTime, 5.0)
	}
}
