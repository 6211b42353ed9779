package database_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautrip/backend/internal/adapters/database"
	"github.com/beautrip/backend/internal/domain/repositories"
	"github.com/beautrip/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

func setupTreatmentAdapter(t *testing.T) (repositories.TreatmentRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	adapter := database.NewTreatmentAdapter(postgres.NewClientFromDB(mockDB))
	return adapter, mock
}

func treatmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "hospital_id", "category_large", "category_mid", "category_small",
		"description", "price", "currency", "rating", "review_count", "recovery_days",
		"tags", "is_active", "created_at", "updated_at",
	})
}

func TestTreatmentAdapterGetByID(t *testing.T) {
	adapter, mock := setupTreatmentAdapter(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM "treatments"`).
		WillReturnRows(treatmentRows().AddRow(
			"t1", "Rhinoplasty", "h1", "Surgery", "Nose", "Rhinoplasty",
			"Primary rhinoplasty", 4500.0, "USD", 8.7, 120, 14,
			"{popular}", true, now, now,
		))

	treatment, err := adapter.GetByID(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, "t1", treatment.ID)
	assert.Equal(t, "Rhinoplasty", treatment.Name)
	assert.Equal(t, "Nose", treatment.CategoryMid)
	assert.Equal(t, 8.7, treatment.Rating)
	assert.Equal(t, 120, treatment.ReviewCount)
	assert.Equal(t, []string{"popular"}, treatment.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTreatmentAdapterGetByIDNotFound(t *testing.T) {
	adapter, mock := setupTreatmentAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "treatments"`).WillReturnError(sql.ErrNoRows)

	treatment, err := adapter.GetByID(context.Background(), "missing")

	require.Error(t, err)
	assert.Nil(t, treatment)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestTreatmentAdapterGetByIDsEmpty(t *testing.T) {
	adapter, _ := setupTreatmentAdapter(t)

	treatments, err := adapter.GetByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, treatments)
}

func TestTreatmentAdapterListForRanking(t *testing.T) {
	adapter, mock := setupTreatmentAdapter(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM "treatments" WHERE .+"is_active"`).
		WillReturnRows(treatmentRows().
			AddRow("t1", "Botox", "h1", "", "Skin", "", "", 300.0, "USD", 9.0, 40, 0, "{}", true, now, now).
			AddRow("t2", "Filler", "h2", "", "Skin", "", "", 350.0, "USD", 8.5, 25, 1, "{}", true, now, now))

	treatments, err := adapter.ListForRanking(context.Background())

	require.NoError(t, err)
	require.Len(t, treatments, 2)
	assert.Equal(t, "Botox", treatments[0].Name)
	assert.Equal(t, "Skin", treatments[1].CategoryMid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTreatmentAdapterUpdateRating(t *testing.T) {
	adapter, mock := setupTreatmentAdapter(t)

	mock.ExpectExec(`UPDATE "treatments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.UpdateRating(context.Background(), "t1", 8.2, 41)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTreatmentAdapterUpdateRatingNotFound(t *testing.T) {
	adapter, mock := setupTreatmentAdapter(t)

	mock.ExpectExec(`UPDATE "treatments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.UpdateRating(context.Background(), "missing", 8.2, 41)

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestTreatmentAdapterDeleteSoftDeletes(t *testing.T) {
	adapter, mock := setupTreatmentAdapter(t)

	// Delete flips is_active instead of removing the row
	mock.ExpectExec(`UPDATE "treatments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Delete(context.Background(), "t1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
