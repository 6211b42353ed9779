package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
	"github.com/beautrip/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

var treatmentColumns = []interface{}{
	"id", "name", "hospital_id", "category_large", "category_mid", "category_small",
	"description", "price", "currency", "rating", "review_count", "recovery_days",
	"tags", "is_active", "created_at", "updated_at",
}

// TreatmentAdapter implements TreatmentRepository
type TreatmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTreatmentAdapter creates a new treatment adapter
func NewTreatmentAdapter(client *postgres.Client) repositories.TreatmentRepository {
	return &TreatmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new treatment
func (a *TreatmentAdapter) Create(ctx context.Context, treatment *entities.Treatment) error {
	record := goqu.Record{
		"id":             treatment.ID,
		"name":           treatment.Name,
		"hospital_id":    treatment.HospitalID,
		"category_large": sql.NullString{String: treatment.CategoryLarge, Valid: treatment.CategoryLarge != ""},
		"category_mid":   sql.NullString{String: treatment.CategoryMid, Valid: treatment.CategoryMid != ""},
		"category_small": sql.NullString{String: treatment.CategorySmall, Valid: treatment.CategorySmall != ""},
		"description":    sql.NullString{String: treatment.Description, Valid: treatment.Description != ""},
		"price":          treatment.Price,
		"currency":       treatment.Currency,
		"rating":         treatment.Rating,
		"review_count":   treatment.ReviewCount,
		"recovery_days":  treatment.RecoveryDays,
		"tags":           pq.Array(treatment.Tags),
		"is_active":      treatment.IsActive,
		"created_at":     treatment.CreatedAt,
		"updated_at":     treatment.UpdatedAt,
	}

	query, args, err := a.db.Insert("treatments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create treatment", err)
	}

	return nil
}

// GetByID retrieves a treatment by ID
func (a *TreatmentAdapter) GetByID(ctx context.Context, id string) (*entities.Treatment, error) {
	query, args, err := a.db.Select(treatmentColumns...).
		From("treatments").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	treatment, err := a.scanTreatmentRow(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("treatment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get treatment", err)
	}

	return treatment, nil
}

// GetByIDs retrieves multiple treatments by their IDs
func (a *TreatmentAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Treatment, error) {
	if len(ids) == 0 {
		return []*entities.Treatment{}, nil
	}

	query, args, err := a.db.Select(treatmentColumns...).
		From("treatments").
		Where(goqu.Ex{"id": ids}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryTreatments(ctx, query, args...)
}

// Update updates a treatment
func (a *TreatmentAdapter) Update(ctx context.Context, treatment *entities.Treatment) error {
	treatment.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":           treatment.Name,
		"hospital_id":    treatment.HospitalID,
		"category_large": sql.NullString{String: treatment.CategoryLarge, Valid: treatment.CategoryLarge != ""},
		"category_mid":   sql.NullString{String: treatment.CategoryMid, Valid: treatment.CategoryMid != ""},
		"category_small": sql.NullString{String: treatment.CategorySmall, Valid: treatment.CategorySmall != ""},
		"description":    sql.NullString{String: treatment.Description, Valid: treatment.Description != ""},
		"price":          treatment.Price,
		"currency":       treatment.Currency,
		"rating":         treatment.Rating,
		"review_count":   treatment.ReviewCount,
		"recovery_days":  treatment.RecoveryDays,
		"tags":           pq.Array(treatment.Tags),
		"is_active":      treatment.IsActive,
		"updated_at":     treatment.UpdatedAt,
	}

	query, args, err := a.db.Update("treatments").
		Set(record).
		Where(goqu.Ex{"id": treatment.ID}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update treatment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("treatment with id %s not found", treatment.ID))
	}

	return nil
}

// Delete deletes a treatment
func (a *TreatmentAdapter) Delete(ctx context.Context, id string) error {
	// Soft delete
	query, args, err := a.db.Update("treatments").
		Set(goqu.Record{
			"is_active":  false,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete treatment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("treatment with id %s not found", id))
	}

	return nil
}

// List retrieves treatments with filters
func (a *TreatmentAdapter) List(ctx context.Context, filter repositories.TreatmentFilter) ([]*entities.Treatment, error) {
	ds := a.db.Select(treatmentColumns...).From("treatments")

	if filter.HospitalID != "" {
		ds = ds.Where(goqu.Ex{"hospital_id": filter.HospitalID})
	}

	if filter.CategoryLarge != "" {
		ds = ds.Where(goqu.Ex{"category_large": filter.CategoryLarge})
	}

	if filter.CategoryMid != "" {
		ds = ds.Where(goqu.Ex{"category_mid": filter.CategoryMid})
	}

	if filter.CategorySmall != "" {
		ds = ds.Where(goqu.Ex{"category_small": filter.CategorySmall})
	}

	if filter.IsActive != nil {
		ds = ds.Where(goqu.Ex{"is_active": *filter.IsActive})
	}

	ds = ds.Order(goqu.I("name").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryTreatments(ctx, query, args...)
}

// ListForRanking retrieves every active treatment for the ranking pipeline.
// Ordered by ID so equal-score ties resolve the same way on every build.
func (a *TreatmentAdapter) ListForRanking(ctx context.Context) ([]*entities.Treatment, error) {
	query, args, err := a.db.Select(treatmentColumns...).
		From("treatments").
		Where(goqu.Ex{"is_active": true}).
		Order(goqu.I("id").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build ranking query", err)
	}

	return a.queryTreatments(ctx, query, args...)
}

// UpdateRating writes a recomputed rating and review count
func (a *TreatmentAdapter) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	query, args, err := a.db.Update("treatments").
		Set(goqu.Record{
			"rating":       rating,
			"review_count": reviewCount,
			"updated_at":   time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build rating update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update treatment rating", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("treatment with id %s not found", id))
	}

	return nil
}

func (a *TreatmentAdapter) queryTreatments(ctx context.Context, query string, args ...interface{}) ([]*entities.Treatment, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query treatments", err)
	}
	defer rows.Close()

	var treatments []*entities.Treatment
	for rows.Next() {
		treatment, err := a.scanTreatmentRow(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan treatment", err)
		}
		treatments = append(treatments, treatment)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating treatments", err)
	}

	return treatments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *TreatmentAdapter) scanTreatmentRow(row rowScanner) (*entities.Treatment, error) {
	treatment := &entities.Treatment{}
	var categoryLarge, categoryMid, categorySmall, description sql.NullString

	err := row.Scan(
		&treatment.ID,
		&treatment.Name,
		&treatment.HospitalID,
		&categoryLarge,
		&categoryMid,
		&categorySmall,
		&description,
		&treatment.Price,
		&treatment.Currency,
		&treatment.Rating,
		&treatment.ReviewCount,
		&treatment.RecoveryDays,
		pq.Array(&treatment.Tags),
		&treatment.IsActive,
		&treatment.CreatedAt,
		&treatment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	treatment.CategoryLarge = categoryLarge.String
	treatment.CategoryMid = categoryMid.String
	treatment.CategorySmall = categorySmall.String
	treatment.Description = description.String

	return treatment, nil
}
