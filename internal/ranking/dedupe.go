package ranking

import (
	"github.com/beautrip/backend/internal/domain/entities"
)

// LimitByKey keeps at most limit items per distinct key, preserving the
// original relative order (first seen, first kept). Items whose key is
// empty carry no grouping constraint and are always kept.
func LimitByKey[T any](items []T, keyFn func(T) string, limit int) []T {
	if limit < 0 {
		limit = 0
	}

	seen := make(map[string]int)
	kept := make([]T, 0, len(items))
	for _, item := range items {
		key := keyFn(item)
		if key == "" {
			kept = append(kept, item)
			continue
		}
		if seen[key] >= limit {
			continue
		}
		seen[key]++
		kept = append(kept, item)
	}
	return kept
}

// CollapseAdjacentNames removes a treatment whose name matches the
// previously kept treatment's name, collapsing consecutive runs in a
// score-sorted sequence to a single representative. Non-adjacent repeats
// survive; the global per-name cap is LimitByKey's job.
func CollapseAdjacentNames(sorted []*entities.Treatment) []*entities.Treatment {
	kept := make([]*entities.Treatment, 0, len(sorted))
	for _, t := range sorted {
		if len(kept) > 0 && kept[len(kept)-1].Name == t.Name {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
