package ranking

import (
	"math"

	"github.com/beautrip/backend/internal/domain/entities"
)

// DefaultPriorWeight is the prior strength used for Bayesian rating
// adjustment: an item needs on the order of 20 reviews before its own
// rating outweighs the dataset-wide mean.
const DefaultPriorWeight = 20.0

// DedupeLimitPerName caps how many treatments sharing a name survive in one
// ranking group.
const DedupeLimitPerName = 2

// Item score weights: shrunk rating vs. log-scaled popularity.
const (
	itemRatingWeight     = 0.6
	itemPopularityWeight = 0.4
)

// BayesianAdjustedRating shrinks an item's raw rating toward the global
// average in proportion to how little review evidence backs it:
//
//	(v/(v+m))*R + (m/(v+m))*C
//
// With zero reviews the result is exactly the global average; with many
// reviews it converges to the raw rating. Negative inputs are clamped to 0,
// so the result is always finite for finite inputs.
func BayesianAdjustedRating(itemRating float64, itemReviewCount int, globalAvg, priorWeight float64) float64 {
	v := math.Max(0, float64(itemReviewCount))
	r := math.Max(0, itemRating)
	m := math.Max(0, priorWeight)

	if v+m == 0 {
		return globalAvg
	}

	return (v/(v+m))*r + (m/(v+m))*globalAvg
}

// GlobalAverageRating averages the ratings of records that have one
// (rating > 0). Returns 0 when no record qualifies.
func GlobalAverageRating(records []*entities.Treatment) float64 {
	sum := 0.0
	count := 0
	for _, rec := range records {
		if rec.Rating > 0 {
			sum += rec.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Normalize01 maps value into [0,1] relative to [min,max]. A degenerate
// range (max <= min) yields 0 rather than dividing by zero.
func Normalize01(value, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return (value - min) / (max - min)
}

// itemScore is the per-treatment composite used to order items inside a
// group: shrunk rating blended with log-scaled review volume.
func itemScore(t *entities.Treatment, globalAvg, priorWeight float64) float64 {
	adjusted := BayesianAdjustedRating(t.Rating, t.ReviewCount, globalAvg, priorWeight)
	popularity := math.Log10(float64(t.ReviewCount) + 1)
	return adjusted*itemRatingWeight + popularity*itemPopularityWeight
}
