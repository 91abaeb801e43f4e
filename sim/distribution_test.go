package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literise/placement-sim/sim/internal/testutil"
)

func TestGaussianSampler_MeanAndStdMatchParams(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewGaussianSampler(0, 1.5)
	require.NoError(t, err)

	n := 20000
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = s.Sample(rng)
	}
	testutil.AssertMeanNear(t, "gaussian", xs, 0, 0.05)

	sumSq := 0.0
	for _, x := range xs {
		sumSq += x * x
	}
	std := math.Sqrt(sumSq / float64(n))
	testutil.AssertFloat64Equal(t, "gaussian std", 1.5, std, 0.03)
}

func TestGaussianSampler_ZeroStdIsConstant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s, err := NewGaussianSampler(0.7, 0)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 0.7, s.Sample(rng))
	}
}

func TestNewGaussianSampler_RejectsInvalid(t *testing.T) {
	_, err := NewGaussianSampler(math.NaN(), 1)
	assert.Error(t, err)
	_, err = NewGaussianSampler(0, -1)
	assert.Error(t, err)
	_, err = NewGaussianSampler(0, math.Inf(1))
	assert.Error(t, err)
}

func TestUniformSampler_StaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewUniformSampler(-0.5, 2.0)
	require.NoError(t, err)
	lo, hi := s.Bounds()
	assert.Equal(t, -0.5, lo)
	assert.Equal(t, 2.0, hi)

	xs := make([]float64, 10000)
	for i := range xs {
		v := s.Sample(rng)
		if v < lo || v >= hi {
			t.Fatalf("sample %d: %v outside [%v, %v)", i, v, lo, hi)
		}
		xs[i] = v
	}
	testutil.AssertMeanNear(t, "uniform", xs, 0.75, 0.03)
}

func TestNewUniformSampler_RejectsInvertedBounds(t *testing.T) {
	_, err := NewUniformSampler(2, 1)
	assert.Error(t, err)
	_, err = NewUniformSampler(math.Inf(-1), 1)
	assert.Error(t, err)
}
