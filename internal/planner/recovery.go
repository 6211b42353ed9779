package planner

import (
	"sort"
	"time"

	"github.com/beautrip/backend/internal/domain/entities"
)

// DayStart strips the time-of-day component in the date's own location.
// Every comparison in this package happens at calendar-day granularity, so
// two instants on the same local day always compare equal.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// daysBetween returns b - a in whole calendar days. Both dates are
// re-anchored in UTC first: a DST transition between them makes a local day
// 23 or 25 hours long, which would skew a plain duration division.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// RecoveryEnd returns the last day of an entry's recovery window. With no
// recovery days that is the procedure day itself.
func RecoveryEnd(entry *entities.ScheduleEntry) time.Time {
	days := entry.RecoveryDays
	if days < 0 {
		days = 0
	}
	return DayStart(entry.ProcedureDate).AddDate(0, 0, days)
}

// IsRecoveryOutsideTravel reports whether an entry's recovery window runs
// past the end of the travel period. Used for the upfront warning when an
// entry is created. A nil travel period never warns.
func IsRecoveryOutsideTravel(entry *entities.ScheduleEntry, travel *entities.TravelPeriod) bool {
	if entry == nil || travel == nil {
		return false
	}
	return RecoveryEnd(entry).After(DayStart(travel.End))
}

// Classify answers, for one calendar date, which travel/procedure/recovery
// state applies given the user's schedule entries and travel period.
//
// The recovery window of an entry is the recoveryDays days after the
// procedure date; the procedure day itself is not a recovery day. When
// several windows cover the date, RecoveryMatches lists all of them and
// RecoveryDayIndex is taken from the earliest procedure date, entry order
// breaking ties. Absent inputs degrade to "no signal": this function never
// panics and has no error return.
func Classify(date time.Time, entries []*entities.ScheduleEntry, travel *entities.TravelPeriod) entities.DateClassification {
	day := DayStart(date)

	result := entities.DateClassification{Date: day}

	if travel != nil {
		start, end := DayStart(travel.Start), DayStart(travel.End)
		result.IsTravelDay = !day.Before(start) && !day.After(end)
	}

	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if SameDay(entry.ProcedureDate, day) {
			result.IsProcedureDay = true
		}
		if entry.RecoveryDays <= 0 {
			continue
		}
		offset := daysBetween(entry.ProcedureDate, day)
		if offset >= 1 && offset <= entry.RecoveryDays {
			result.RecoveryMatches = append(result.RecoveryMatches, entities.RecoveryMatch{
				EntryID:       entry.ID,
				TreatmentName: entry.TreatmentName,
				ProcedureDate: DayStart(entry.ProcedureDate),
				DayIndex:      offset,
			})
		}
	}

	if len(result.RecoveryMatches) > 0 {
		// Earliest procedure first; entry order breaks ties
		sort.SliceStable(result.RecoveryMatches, func(i, j int) bool {
			return result.RecoveryMatches[i].ProcedureDate.Before(result.RecoveryMatches[j].ProcedureDate)
		})
		idx := result.RecoveryMatches[0].DayIndex
		result.RecoveryDayIndex = &idx
		result.IsRecoveryOutsideTravel = !result.IsTravelDay
	}

	return result
}

// ClassifyRange classifies every day in [from, to] inclusive, in order.
// An inverted range yields an empty slice.
func ClassifyRange(from, to time.Time, entries []*entities.ScheduleEntry, travel *entities.TravelPeriod) []entities.DateClassification {
	start, end := DayStart(from), DayStart(to)
	if end.Before(start) {
		return nil
	}

	var out []entities.DateClassification
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		out = append(out, Classify(day, entries, travel))
	}
	return out
}
