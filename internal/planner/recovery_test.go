package planner

import (
	"testing"
	"time"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(id string, procDate time.Time, recoveryDays int) *entities.ScheduleEntry {
	return &entities.ScheduleEntry{
		ID:            id,
		TreatmentName: "Entry " + id,
		ProcedureDate: procDate,
		RecoveryDays:  recoveryDays,
	}
}

func TestClassifyRecoveryWindowIndices(t *testing.T) {
	// Procedure on the 10th with 3 recovery days: the procedure day itself
	// is not a recovery day, the 11th..13th carry indices 1..3, and the
	// 14th is past the window.
	entries := []*entities.ScheduleEntry{entry("e1", day(2024, time.June, 10), 3)}

	cases := []struct {
		date time.Time
		idx  *int
	}{
		{day(2024, time.June, 10), nil},
		{day(2024, time.June, 11), intPtr(1)},
		{day(2024, time.June, 12), intPtr(2)},
		{day(2024, time.June, 13), intPtr(3)},
		{day(2024, time.June, 14), nil},
	}

	for _, tc := range cases {
		got := Classify(tc.date, entries, nil)
		if tc.idx == nil {
			assert.Nil(t, got.RecoveryDayIndex, tc.date.Format("2006-01-02"))
		} else {
			require.NotNil(t, got.RecoveryDayIndex, tc.date.Format("2006-01-02"))
			assert.Equal(t, *tc.idx, *got.RecoveryDayIndex)
		}
	}

	assert.True(t, Classify(day(2024, time.June, 10), entries, nil).IsProcedureDay)
	assert.False(t, Classify(day(2024, time.June, 11), entries, nil).IsProcedureDay)
}

func intPtr(v int) *int { return &v }

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	// Classification must not depend on the clock time of any input.
	procMorning := time.Date(2024, time.June, 10, 8, 15, 0, 0, time.UTC)
	procNight := time.Date(2024, time.June, 10, 23, 59, 59, 0, time.UTC)
	query := time.Date(2024, time.June, 12, 17, 30, 0, 0, time.UTC)

	travel := &entities.TravelPeriod{
		Start: time.Date(2024, time.June, 9, 22, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 15, 6, 0, 0, 0, time.UTC),
	}

	a := Classify(query, []*entities.ScheduleEntry{entry("e1", procMorning, 3)}, travel)
	b := Classify(day(2024, time.June, 12), []*entities.ScheduleEntry{entry("e1", procNight, 3)}, travel)

	require.NotNil(t, a.RecoveryDayIndex)
	require.NotNil(t, b.RecoveryDayIndex)
	assert.Equal(t, *a.RecoveryDayIndex, *b.RecoveryDayIndex)
	assert.Equal(t, a.IsTravelDay, b.IsTravelDay)
	assert.Equal(t, a.IsProcedureDay, b.IsProcedureDay)
}

func TestClassifyAcrossSpringForward(t *testing.T) {
	// New York loses an hour on 2024-03-10; recovery day indices must still
	// advance one per calendar day.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database unavailable")
	}

	entries := []*entities.ScheduleEntry{
		entry("e1", time.Date(2024, time.March, 9, 9, 0, 0, 0, loc), 3),
	}

	cases := []struct {
		date time.Time
		idx  *int
	}{
		{time.Date(2024, time.March, 10, 0, 0, 0, 0, loc), intPtr(1)},
		{time.Date(2024, time.March, 11, 0, 0, 0, 0, loc), intPtr(2)},
		{time.Date(2024, time.March, 12, 0, 0, 0, 0, loc), intPtr(3)},
		{time.Date(2024, time.March, 13, 0, 0, 0, 0, loc), nil},
	}

	for _, tc := range cases {
		got := Classify(tc.date, entries, nil)
		if tc.idx == nil {
			assert.Nil(t, got.RecoveryDayIndex, tc.date.Format("2006-01-02"))
		} else {
			require.NotNil(t, got.RecoveryDayIndex, tc.date.Format("2006-01-02"))
			assert.Equal(t, *tc.idx, *got.RecoveryDayIndex, tc.date.Format("2006-01-02"))
		}
	}
}

func TestDaysBetweenDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database unavailable")
	}

	// Spring forward: 2024-03-10 is a 23-hour day
	assert.Equal(t, 1, daysBetween(
		time.Date(2024, time.March, 9, 0, 0, 0, 0, loc),
		time.Date(2024, time.March, 10, 0, 0, 0, 0, loc),
	))
	assert.Equal(t, 2, daysBetween(
		time.Date(2024, time.March, 9, 0, 0, 0, 0, loc),
		time.Date(2024, time.March, 11, 0, 0, 0, 0, loc),
	))

	// Fall back: 2024-11-03 is a 25-hour day
	assert.Equal(t, 2, daysBetween(
		time.Date(2024, time.November, 2, 0, 0, 0, 0, loc),
		time.Date(2024, time.November, 4, 0, 0, 0, 0, loc),
	))
}

func TestClassifyTravelDayInclusiveBounds(t *testing.T) {
	travel := &entities.TravelPeriod{
		Start: day(2024, time.June, 10),
		End:   day(2024, time.June, 15),
	}

	assert.False(t, Classify(day(2024, time.June, 9), nil, travel).IsTravelDay)
	assert.True(t, Classify(day(2024, time.June, 10), nil, travel).IsTravelDay)
	assert.True(t, Classify(day(2024, time.June, 15), nil, travel).IsTravelDay)
	assert.False(t, Classify(day(2024, time.June, 16), nil, travel).IsTravelDay)

	assert.False(t, Classify(day(2024, time.June, 10), nil, nil).IsTravelDay)
}

func TestClassifyRecoveryOutsideTravel(t *testing.T) {
	// Travel ends on the 15th; a procedure on the 14th with 5 recovery
	// days runs through the 19th, so the 16th is recovery outside travel.
	travel := &entities.TravelPeriod{
		Start: day(2024, time.June, 10),
		End:   day(2024, time.June, 15),
	}
	e := entry("e1", day(2024, time.June, 14), 5)

	assert.True(t, IsRecoveryOutsideTravel(e, travel))

	got := Classify(day(2024, time.June, 16), []*entities.ScheduleEntry{e}, travel)
	assert.False(t, got.IsTravelDay)
	require.NotNil(t, got.RecoveryDayIndex)
	assert.Equal(t, 2, *got.RecoveryDayIndex)
	assert.True(t, got.IsRecoveryOutsideTravel)

	// Inside the travel window the same recovery day does not flag
	inside := Classify(day(2024, time.June, 15), []*entities.ScheduleEntry{e}, travel)
	assert.True(t, inside.IsTravelDay)
	assert.False(t, inside.IsRecoveryOutsideTravel)
}

func TestIsRecoveryOutsideTravelEdges(t *testing.T) {
	travel := &entities.TravelPeriod{
		Start: day(2024, time.June, 10),
		End:   day(2024, time.June, 15),
	}

	// Recovery ending exactly on the last travel day does not warn
	assert.False(t, IsRecoveryOutsideTravel(entry("e1", day(2024, time.June, 12), 3), travel))
	assert.True(t, IsRecoveryOutsideTravel(entry("e2", day(2024, time.June, 13), 3), travel))

	assert.False(t, IsRecoveryOutsideTravel(entry("e3", day(2024, time.June, 14), 5), nil))
	assert.False(t, IsRecoveryOutsideTravel(nil, travel))
}

func TestClassifyOverlappingRecoveryWindows(t *testing.T) {
	// Two windows cover the 13th; the index comes from the earlier
	// procedure and both matches are reported.
	entries := []*entities.ScheduleEntry{
		entry("late", day(2024, time.June, 12), 4),
		entry("early", day(2024, time.June, 10), 5),
	}

	got := Classify(day(2024, time.June, 13), entries, nil)

	require.Len(t, got.RecoveryMatches, 2)
	assert.Equal(t, "early", got.RecoveryMatches[0].EntryID)
	assert.Equal(t, "late", got.RecoveryMatches[1].EntryID)
	require.NotNil(t, got.RecoveryDayIndex)
	assert.Equal(t, 3, *got.RecoveryDayIndex)
}

func TestClassifyZeroRecoveryDays(t *testing.T) {
	entries := []*entities.ScheduleEntry{
		entry("none", day(2024, time.June, 10), 0),
		entry("negative", day(2024, time.June, 10), -2),
	}

	for d := 10; d <= 13; d++ {
		got := Classify(day(2024, time.June, d), entries, nil)
		assert.Empty(t, got.RecoveryMatches)
		assert.Nil(t, got.RecoveryDayIndex)
	}
}

func TestClassifyRange(t *testing.T) {
	entries := []*entities.ScheduleEntry{entry("e1", day(2024, time.June, 10), 2)}
	travel := &entities.TravelPeriod{Start: day(2024, time.June, 9), End: day(2024, time.June, 11)}

	days := ClassifyRange(day(2024, time.June, 9), day(2024, time.June, 12), entries, travel)

	require.Len(t, days, 4)
	assert.True(t, days[0].IsTravelDay)
	assert.True(t, days[1].IsProcedureDay)
	require.NotNil(t, days[2].RecoveryDayIndex)
	assert.Equal(t, 1, *days[2].RecoveryDayIndex)
	require.NotNil(t, days[3].RecoveryDayIndex)
	assert.Equal(t, 2, *days[3].RecoveryDayIndex)
	assert.True(t, days[3].IsRecoveryOutsideTravel)

	assert.Empty(t, ClassifyRange(day(2024, time.June, 12), day(2024, time.June, 9), entries, travel))
}

func TestRecoveryEnd(t *testing.T) {
	e := entry("e1", time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC), 3)
	assert.Equal(t, day(2024, time.June, 13), RecoveryEnd(e))

	e = entry("e2", day(2024, time.June, 10), -1)
	assert.Equal(t, day(2024, time.June, 10), RecoveryEnd(e))
}
