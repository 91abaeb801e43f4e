package sim

import (
	"fmt"
	"math/rand"
)

// Provenance tags whether a feature vector came from a full administration
// or was derived from one as an early-stopping approximation.
type Provenance string

const (
	ProvenanceFull      Provenance = "full"
	ProvenanceEarlyStop Provenance = "early_stop"
)

// Relative noise magnitudes for overall and per-category accuracy.
const (
	accuracyNoiseRatio = 0.5
	categoryNoiseRatio = 0.3
)

// Variant is a feature vector tagged with its provenance.
type Variant struct {
	Features   FeatureVector
	Provenance Provenance
}

// Augmenter approximates shorter administrations of an already simulated
// student by perturbing the full-length features instead of re-simulating.
type Augmenter struct {
	noiseScale float64
}

// NewAugmenter returns an augmenter whose noise at q answered questions is
// (28-q)/28 * noiseScale.
func NewAugmenter(noiseScale float64) *Augmenter {
	return &Augmenter{noiseScale: noiseScale}
}

// NoiseFactor returns the standard deviation applied to estimated theta
// when stopping after qCount questions.
func (a *Augmenter) NoiseFactor(qCount int) float64 {
	return float64(NumItems-qCount) / NumItems * a.noiseScale
}

// Truncate derives the variant for a test stopped after qCount questions.
// Draw order is theta, overall accuracy, then categories 1-4. All
// perturbations are zero-mean; accuracies are clamped into [0,1] and the
// consistency is recomputed from the clamped category accuracies. Timing
// statistics and trend are carried through unchanged.
func (a *Augmenter) Truncate(full FeatureVector, qCount int, rng *rand.Rand) (Variant, error) {
	if qCount <= 0 || qCount >= NumItems {
		return Variant{}, fmt.Errorf("truncate: question count %d outside [1, %d]", qCount, NumItems-1)
	}
	nf := a.NoiseFactor(qCount)

	out := full
	out.EstimatedTheta = full.EstimatedTheta + rng.NormFloat64()*nf
	out.OverallAccuracy = clamp01(full.OverallAccuracy + rng.NormFloat64()*nf*accuracyNoiseRatio)
	for c := range out.CategoryAccuracy {
		out.CategoryAccuracy[c] = clamp01(full.CategoryAccuracy[c] + rng.NormFloat64()*nf*categoryNoiseRatio)
	}
	out.CategoryConsistency = CategoryConsistency(out.CategoryAccuracy)
	out.QuestionsAnswered = qCount

	return Variant{Features: out, Provenance: ProvenanceEarlyStop}, nil
}
