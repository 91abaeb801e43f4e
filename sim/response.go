package sim

import (
	"math"
	"math/rand"
)

// QuestionResponse is the observed outcome of one item.
type QuestionResponse struct {
	Item         Item
	IsCorrect    bool
	ResponseTime float64 // seconds
}

// ProbabilityCorrect evaluates the two-parameter logistic model:
// P = 1 / (1 + exp(-a(theta - b))).
func ProbabilityCorrect(theta float64, item Item) float64 {
	return 1.0 / (1.0 + math.Exp(-item.Discrimination*(theta-item.Difficulty)))
}

// ResponseSimulator turns abilities and items into observed responses.
type ResponseSimulator struct {
	timing ResponseTimeModel
}

// NewResponseSimulator returns a simulator using the given timing model.
func NewResponseSimulator(timing ResponseTimeModel) *ResponseSimulator {
	return &ResponseSimulator{timing: timing}
}

// Simulate draws one response. Exactly two values are consumed from rng:
// the correctness trial, then the timing noise.
func (s *ResponseSimulator) Simulate(theta float64, item Item, rng *rand.Rand) QuestionResponse {
	correct := rng.Float64() < ProbabilityCorrect(theta, item)

	// harder items take longer
	base := s.timing.Base + s.timing.PerDifficulty*(item.Difficulty+2)
	rt := base + rng.NormFloat64()*s.timing.NoiseStd
	if rt < s.timing.Floor {
		rt = s.timing.Floor
	}
	return QuestionResponse{Item: item, IsCorrect: correct, ResponseTime: rt}
}

// Responses is one full-length administration in item order.
type Responses [NumItems]QuestionResponse

// SimulateForm answers every item of form in order.
func (s *ResponseSimulator) SimulateForm(theta float64, form *TestForm, rng *rand.Rand) *Responses {
	out := new(Responses)
	for i := range form {
		out[i] = s.Simulate(theta, form[i], rng)
	}
	return out
}
