package sim

import (
	"fmt"
	"math/rand"
)

// StudentProfile is one simulated test taker. TrueTheta is the single hidden
// variable driving every observed response; it is never exposed in the
// dataset except through the placement label.
type StudentProfile struct {
	ID        string
	Index     int
	TrueTheta float64
}

// StudentID formats the stable identifier for the student at index.
// Zero padding keeps lexical and numeric order identical up to 99999 students.
func StudentID(prefix string, index int) string {
	return fmt.Sprintf("%s_%05d", prefix, index)
}

// AbilitySampler draws latent abilities for new students.
type AbilitySampler struct {
	theta  ValueSampler
	prefix string
}

// NewAbilitySampler returns a sampler drawing theta from N(mean, std).
func NewAbilitySampler(mean, std float64, idPrefix string) (*AbilitySampler, error) {
	g, err := NewGaussianSampler(mean, std)
	if err != nil {
		return nil, fmt.Errorf("ability distribution: %w", err)
	}
	return &AbilitySampler{theta: g, prefix: idPrefix}, nil
}

// SampleStudent creates the profile for the student at index.
func (a *AbilitySampler) SampleStudent(index int, rng *rand.Rand) StudentProfile {
	return StudentProfile{
		ID:        StudentID(a.prefix, index),
		Index:     index,
		TrueTheta: a.theta.Sample(rng),
	}
}
