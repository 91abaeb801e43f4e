package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// ValueSampler draws a real-valued parameter (ability, difficulty,
// discrimination) from a fixed distribution.
type ValueSampler interface {
	Sample(rng *rand.Rand) float64
}

// GaussianSampler draws from N(mean, stdDev).
type GaussianSampler struct {
	mean, stdDev float64
}

// NewGaussianSampler returns a sampler for N(mean, stdDev).
func NewGaussianSampler(mean, stdDev float64) (*GaussianSampler, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("gaussian mean must be finite, got %f", mean)
	}
	if math.IsNaN(stdDev) || math.IsInf(stdDev, 0) || stdDev < 0 {
		return nil, fmt.Errorf("gaussian std_dev must be finite and non-negative, got %f", stdDev)
	}
	return &GaussianSampler{mean: mean, stdDev: stdDev}, nil
}

func (s *GaussianSampler) Sample(rng *rand.Rand) float64 {
	return rng.NormFloat64()*s.stdDev + s.mean
}

// UniformSampler draws from U[lo, hi).
type UniformSampler struct {
	lo, hi float64
}

// NewUniformSampler returns a sampler for U[lo, hi).
func NewUniformSampler(lo, hi float64) (*UniformSampler, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("uniform bounds must be finite, got [%f, %f)", lo, hi)
	}
	if hi < lo {
		return nil, fmt.Errorf("uniform upper bound %f below lower bound %f", hi, lo)
	}
	return &UniformSampler{lo: lo, hi: hi}, nil
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	return s.lo + rng.Float64()*(s.hi-s.lo)
}

// Bounds returns the sampler's [lo, hi) range.
func (s *UniformSampler) Bounds() (lo, hi float64) {
	return s.lo, s.hi
}

// mustUniform is used for the package's built-in constant ranges, which
// are valid by construction.
func mustUniform(lo, hi float64) *UniformSampler {
	s, err := NewUniformSampler(lo, hi)
	if err != nil {
		panic(err)
	}
	return s
}
