package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

// ScheduleAdapter implements ScheduleRepository on sqlx
type ScheduleAdapter struct {
	db *sqlx.DB
}

// NewScheduleAdapter creates a new schedule adapter
func NewScheduleAdapter(db *sqlx.DB) repositories.ScheduleRepository {
	return &ScheduleAdapter{db: db}
}

// CreateEntry creates a new schedule entry
func (a *ScheduleAdapter) CreateEntry(ctx context.Context, entry *entities.ScheduleEntry) error {
	query := `
		INSERT INTO schedule_entries (id, user_id, treatment_id, treatment_name, procedure_date, recovery_days, created_at, updated_at)
		VALUES (:id, :user_id, :treatment_id, :treatment_name, :procedure_date, :recovery_days, :created_at, :updated_at)`

	_, err := a.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return apperrors.NewInternalError("failed to create schedule entry", err)
	}

	return nil
}

// GetEntryByID retrieves a schedule entry by ID
func (a *ScheduleAdapter) GetEntryByID(ctx context.Context, id string) (*entities.ScheduleEntry, error) {
	entry := &entities.ScheduleEntry{}
	err := a.db.GetContext(ctx, entry,
		`SELECT id, user_id, treatment_id, treatment_name, procedure_date, recovery_days, created_at, updated_at
		 FROM schedule_entries WHERE id = $1`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("schedule entry with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get schedule entry", err)
	}

	return entry, nil
}

// ListEntriesByUser retrieves all schedule entries for a user
func (a *ScheduleAdapter) ListEntriesByUser(ctx context.Context, userID string) ([]*entities.ScheduleEntry, error) {
	var entries []*entities.ScheduleEntry
	err := a.db.SelectContext(ctx, &entries,
		`SELECT id, user_id, treatment_id, treatment_name, procedure_date, recovery_days, created_at, updated_at
		 FROM schedule_entries WHERE user_id = $1 ORDER BY procedure_date ASC`, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list schedule entries", err)
	}

	return entries, nil
}

// ListEntriesInRange retrieves entries whose procedure date or recovery
// window touches [from, to]. The recovery window extends recovery_days past
// the procedure date.
func (a *ScheduleAdapter) ListEntriesInRange(ctx context.Context, userID string, from, to time.Time) ([]*entities.ScheduleEntry, error) {
	var entries []*entities.ScheduleEntry
	err := a.db.SelectContext(ctx, &entries,
		`SELECT id, user_id, treatment_id, treatment_name, procedure_date, recovery_days, created_at, updated_at
		 FROM schedule_entries
		 WHERE user_id = $1
		   AND procedure_date <= $3
		   AND procedure_date + recovery_days * INTERVAL '1 day' >= $2
		 ORDER BY procedure_date ASC`, userID, from, to)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list schedule entries in range", err)
	}

	return entries, nil
}

// UpdateEntry updates a schedule entry
func (a *ScheduleAdapter) UpdateEntry(ctx context.Context, entry *entities.ScheduleEntry) error {
	entry.UpdatedAt = time.Now()

	result, err := a.db.NamedExecContext(ctx,
		`UPDATE schedule_entries
		 SET treatment_id = :treatment_id, treatment_name = :treatment_name,
		     procedure_date = :procedure_date, recovery_days = :recovery_days, updated_at = :updated_at
		 WHERE id = :id`, entry)
	if err != nil {
		return apperrors.NewInternalError("failed to update schedule entry", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("schedule entry with id %s not found", entry.ID))
	}

	return nil
}

// DeleteEntry deletes a schedule entry
func (a *ScheduleAdapter) DeleteEntry(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, `DELETE FROM schedule_entries WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewInternalError("failed to delete schedule entry", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("schedule entry with id %s not found", id))
	}

	return nil
}

// GetTravelPeriod retrieves a user's travel period, nil when unset
func (a *ScheduleAdapter) GetTravelPeriod(ctx context.Context, userID string) (*entities.TravelPeriod, error) {
	period := &entities.TravelPeriod{}
	err := a.db.GetContext(ctx, period,
		`SELECT user_id, start_date, end_date FROM travel_periods WHERE user_id = $1`, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get travel period", err)
	}

	return period, nil
}

// SetTravelPeriod creates or replaces a user's travel period
func (a *ScheduleAdapter) SetTravelPeriod(ctx context.Context, period *entities.TravelPeriod) error {
	_, err := a.db.NamedExecContext(ctx,
		`INSERT INTO travel_periods (user_id, start_date, end_date)
		 VALUES (:user_id, :start_date, :end_date)
		 ON CONFLICT (user_id) DO UPDATE SET start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date`,
		period)
	if err != nil {
		return apperrors.NewInternalError("failed to set travel period", err)
	}

	return nil
}

// DeleteTravelPeriod removes a user's travel period
func (a *ScheduleAdapter) DeleteTravelPeriod(ctx context.Context, userID string) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM travel_periods WHERE user_id = $1`, userID)
	if err != nil {
		return apperrors.NewInternalError("failed to delete travel period", err)
	}

	return nil
}
