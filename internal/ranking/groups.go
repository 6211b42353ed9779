package ranking

import (
	"math"
	"sort"

	"github.com/beautrip/backend/internal/domain/entities"
)

// Group score weights and thin-evidence penalty knees.
const (
	groupRatingWeight = 0.4
	groupReviewWeight = 0.3
	groupCountWeight  = 0.3

	minReviewsForFullWeight = 5
	minItemsForFullWeight   = 3
	countScoreExponent      = 0.7
)

// RankGroup orders one category's treatments by composite score, collapses
// adjacent duplicate names, caps repeats per name, and computes the group
// aggregates. The input slice is not mutated.
func RankGroup(records []*entities.Treatment, groupKey string, globalAvg float64) *entities.RankingGroup {
	return rankGroupWithPrior(records, groupKey, globalAvg, DefaultPriorWeight)
}

func rankGroupWithPrior(records []*entities.Treatment, groupKey string, globalAvg, priorWeight float64) *entities.RankingGroup {
	items := make([]*entities.Treatment, len(records))
	copy(items, records)

	scores := make(map[*entities.Treatment]float64, len(items))
	for _, t := range items {
		scores[t] = itemScore(t, globalAvg, priorWeight)
	}

	// Ties keep input order
	sort.SliceStable(items, func(i, j int) bool {
		return scores[items[i]] > scores[items[j]]
	})

	items = CollapseAdjacentNames(items)
	items = LimitByKey(items, func(t *entities.Treatment) string { return t.Name }, DedupeLimitPerName)

	group := &entities.RankingGroup{
		GroupKey: groupKey,
		Items:    items,
	}

	ratingSum := 0.0
	for _, t := range items {
		ratingSum += t.Rating
		group.TotalReviews += t.ReviewCount
	}
	if len(items) > 0 {
		group.AverageRating = ratingSum / float64(len(items))
	}

	return group
}

// RankGroups ranks every category group and orders the groups themselves.
// Groups with no review evidence or a single item are dropped (minimum
// evidence filter); the survivors are scored on shrunk average rating plus
// log-normalized review volume and item count, with quadratic/power
// penalties when a group is thin on either signal.
func RankGroups(recordsByGroup map[string][]*entities.Treatment, globalAvg float64) []*entities.RankingGroup {
	return RankGroupsWithPrior(recordsByGroup, globalAvg, DefaultPriorWeight)
}

// RankGroupsWithPrior is RankGroups with an explicit Bayesian prior weight.
func RankGroupsWithPrior(recordsByGroup map[string][]*entities.Treatment, globalAvg, priorWeight float64) []*entities.RankingGroup {
	// Deterministic group order before the score sort; map iteration
	// order must not leak into results.
	keys := make([]string, 0, len(recordsByGroup))
	for key := range recordsByGroup {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]*entities.RankingGroup, 0, len(keys))
	for _, key := range keys {
		group := rankGroupWithPrior(recordsByGroup[key], key, globalAvg, priorWeight)
		if group.TotalReviews == 0 || len(group.Items) <= 1 {
			continue
		}
		groups = append(groups, group)
	}

	if len(groups) == 0 {
		return groups
	}

	// Normalization ranges over the survivors, widened to at least [0,1]
	// so a uniform field doesn't degenerate.
	rMin, rMax := 0.0, 1.0
	cMin, cMax := 0.0, 1.0
	for _, g := range groups {
		lr := math.Log10(float64(g.TotalReviews) + 1)
		lc := math.Log10(float64(len(g.Items)) + 1)
		rMin, rMax = math.Min(rMin, lr), math.Max(rMax, lr)
		cMin, cMax = math.Min(cMin, lc), math.Max(cMax, lc)
	}

	for _, g := range groups {
		reviewPenalty := 1.0
		if g.TotalReviews < minReviewsForFullWeight {
			ratio := float64(g.TotalReviews) / minReviewsForFullWeight
			reviewPenalty = ratio * ratio
		}

		countPenalty := 1.0
		if len(g.Items) < minItemsForFullWeight {
			countPenalty = math.Pow(float64(len(g.Items))/minItemsForFullWeight, 1.5)
		}

		reviewScore := Normalize01(math.Log10(float64(g.TotalReviews)+1), rMin, rMax) * reviewPenalty
		countScore := math.Pow(Normalize01(math.Log10(float64(len(g.Items))+1), cMin, cMax), countScoreExponent) * countPenalty
		adjusted := BayesianAdjustedRating(g.AverageRating, g.TotalReviews, globalAvg, priorWeight)

		g.Score = adjusted*groupRatingWeight + reviewScore*groupReviewWeight + countScore*groupCountWeight
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Score > groups[j].Score
	})

	return groups
}

// GroupByCategory buckets treatments by their ranking category, skipping
// records that have none even after normalization.
func GroupByCategory(records []*entities.Treatment) map[string][]*entities.Treatment {
	byGroup := make(map[string][]*entities.Treatment)
	for _, t := range records {
		key := t.GroupCategory()
		if key == "" {
			continue
		}
		byGroup[key] = append(byGroup[key], t)
	}
	return byGroup
}
