package sim

import "gonum.org/v1/gonum/stat"

// consistencyVarianceScale multiplies the population variance of the four
// category accuracies before it is subtracted from 1.
const consistencyVarianceScale = 2.0

// FeatureVector is the fixed-shape model input derived from one
// (possibly truncated) administration.
type FeatureVector struct {
	EstimatedTheta      float64
	OverallAccuracy     float64
	CategoryAccuracy    [NumCategories]float64
	CategoryConsistency float64
	AvgResponseTime     float64
	ResponseTimeStd     float64
	PerformanceTrend    float64
	QuestionsAnswered   int
}

// EstimateTheta is the online-scoring proxy for ability: a fixed linear
// rescaling of overall accuracy, not an IRT likelihood solution.
func EstimateTheta(accuracy float64) float64 {
	return (accuracy - 0.5) * 4
}

// CategoryConsistency scores how uniform the category accuracies are:
// clamp(1 - 2*PopVariance(acc), 0, 1). Equal accuracies give 1.
func CategoryConsistency(acc [NumCategories]float64) float64 {
	return clamp01(1 - stat.PopVariance(acc[:], nil)*consistencyVarianceScale)
}

// Aggregate reduces a full 28-item administration to its feature vector and
// derives the placement label from the true ability.
func Aggregate(theta float64, responses *Responses) (FeatureVector, PlacementLabel) {
	var (
		correct     int
		catCorrect  [NumCategories]int
		halfCorrect [2]int
		times       = make([]float64, len(responses))
		half        = NumItems / 2
	)
	for i, r := range responses {
		times[i] = r.ResponseTime
		if !r.IsCorrect {
			continue
		}
		correct++
		catCorrect[CategoryAt(i)]++
		if i < half {
			halfCorrect[0]++
		} else {
			halfCorrect[1]++
		}
	}

	fv := FeatureVector{
		OverallAccuracy:   float64(correct) / NumItems,
		AvgResponseTime:   stat.Mean(times, nil),
		ResponseTimeStd:   stat.StdDev(times, nil),
		PerformanceTrend:  float64(halfCorrect[1])/float64(NumItems-half) - float64(halfCorrect[0])/float64(half),
		QuestionsAnswered: NumItems,
	}
	for c := range catCorrect {
		fv.CategoryAccuracy[c] = float64(catCorrect[c]) / ItemsPerCategory
	}
	fv.EstimatedTheta = EstimateTheta(fv.OverallAccuracy)
	fv.CategoryConsistency = CategoryConsistency(fv.CategoryAccuracy)

	return fv, Placement(theta)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
