package ranking

import (
	"testing"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func names(items []*entities.Treatment) []string {
	out := make([]string, len(items))
	for i, t := range items {
		out[i] = t.Name
	}
	return out
}

func byName(ns ...string) []*entities.Treatment {
	out := make([]*entities.Treatment, len(ns))
	for i, n := range ns {
		out[i] = &entities.Treatment{Name: n}
	}
	return out
}

func TestLimitByKeyCapsPerKeyPreservingOrder(t *testing.T) {
	items := byName("a", "b", "a", "c", "a", "b")

	got := LimitByKey(items, func(tr *entities.Treatment) string { return tr.Name }, 2)

	assert.Equal(t, []string{"a", "b", "a", "c", "b"}, names(got))
}

func TestLimitByKeyEmptyKeysAlwaysKept(t *testing.T) {
	items := byName("", "a", "", "a", "a", "")

	got := LimitByKey(items, func(tr *entities.Treatment) string { return tr.Name }, 1)

	assert.Equal(t, []string{"", "a", "", ""}, names(got))
}

func TestLimitByKeyZeroLimit(t *testing.T) {
	items := byName("a", "b")
	got := LimitByKey(items, func(tr *entities.Treatment) string { return tr.Name }, 0)
	assert.Empty(t, got)

	got = LimitByKey(items, func(tr *entities.Treatment) string { return tr.Name }, -1)
	assert.Empty(t, got)
}

func TestCollapseAdjacentNames(t *testing.T) {
	items := byName("a", "a", "a", "b", "a", "b", "b")

	got := CollapseAdjacentNames(items)

	// Only consecutive runs collapse; non-adjacent repeats survive
	assert.Equal(t, []string{"a", "b", "a", "b"}, names(got))
}

func TestCollapseAdjacentNamesEmpty(t *testing.T) {
	assert.Empty(t, CollapseAdjacentNames(nil))
}
