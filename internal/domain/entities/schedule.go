package entities

import (
	"time"
)

// ScheduleEntry is a procedure a user has added to their travel plan
type ScheduleEntry struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	TreatmentID   string    `json:"treatment_id,omitempty" db:"treatment_id"`
	TreatmentName string    `json:"treatment_name" db:"treatment_name"`
	ProcedureDate time.Time `json:"procedure_date" db:"procedure_date"`
	RecoveryDays  int       `json:"recovery_days" db:"recovery_days"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// TravelPeriod is the user's stated travel window, inclusive on both ends
type TravelPeriod struct {
	UserID string    `json:"user_id,omitempty" db:"user_id"`
	Start  time.Time `json:"start" db:"start_date"`
	End    time.Time `json:"end" db:"end_date"`
}

// RecoveryMatch identifies one schedule entry whose recovery window covers a
// queried date, with the 1-based day offset into that window.
type RecoveryMatch struct {
	EntryID       string    `json:"entry_id"`
	TreatmentName string    `json:"treatment_name,omitempty"`
	ProcedureDate time.Time `json:"procedure_date"`
	DayIndex      int       `json:"day_index"`
}

// DateClassification is the per-date answer the calendar renders from:
// whether the date is a travel day, a procedure day, and which recovery
// windows cover it. RecoveryDayIndex is nil when no window applies; when
// several windows overlap it reports the match with the earliest procedure
// date and RecoveryMatches carries all of them.
type DateClassification struct {
	Date                    time.Time       `json:"date"`
	IsTravelDay             bool            `json:"is_travel_day"`
	IsProcedureDay          bool            `json:"is_procedure_day"`
	RecoveryDayIndex        *int            `json:"recovery_day_index"`
	IsRecoveryOutsideTravel bool            `json:"is_recovery_outside_travel"`
	RecoveryMatches         []RecoveryMatch `json:"recovery_matches,omitempty"`
}
