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

var hospitalColumns = []interface{}{
	"id", "name", "street", "city", "country", "latitude", "longitude",
	"phone_number", "website", "description", "rating", "review_count",
	"tags", "is_active", "created_at", "updated_at",
}

// HospitalAdapter implements HospitalRepository
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalRepository {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new hospital
func (a *HospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	query, args, err := a.db.Insert("hospitals").Rows(a.toRecord(hospital)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create hospital", err)
	}

	return nil
}

// GetByID retrieves a hospital by ID
func (a *HospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	query, args, err := a.db.Select(hospitalColumns...).
		From("hospitals").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	hospital, err := a.scanHospitalRow(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hospital", err)
	}

	return hospital, nil
}

// GetByIDs retrieves multiple hospitals by their IDs
func (a *HospitalAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Hospital, error) {
	if len(ids) == 0 {
		return []*entities.Hospital{}, nil
	}

	query, args, err := a.db.Select(hospitalColumns...).
		From("hospitals").
		Where(goqu.Ex{"id": ids}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryHospitals(ctx, query, args...)
}

// Update updates a hospital
func (a *HospitalAdapter) Update(ctx context.Context, hospital *entities.Hospital) error {
	hospital.UpdatedAt = time.Now()

	record := a.toRecord(hospital)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("hospitals").
		Set(record).
		Where(goqu.Ex{"id": hospital.ID}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update hospital", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", hospital.ID))
	}

	return nil
}

// Delete deletes a hospital
func (a *HospitalAdapter) Delete(ctx context.Context, id string) error {
	// Soft delete
	query, args, err := a.db.Update("hospitals").
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
		return apperrors.NewInternalError("failed to delete hospital", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}

	return nil
}

// List retrieves hospitals with filters
func (a *HospitalAdapter) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	ds := a.db.Select(hospitalColumns...).From("hospitals")

	if filter.City != "" {
		ds = ds.Where(goqu.Ex{"city": filter.City})
	}

	if filter.Country != "" {
		ds = ds.Where(goqu.Ex{"country": filter.Country})
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

	return a.queryHospitals(ctx, query, args...)
}

func (a *HospitalAdapter) toRecord(hospital *entities.Hospital) goqu.Record {
	return goqu.Record{
		"id":           hospital.ID,
		"name":         hospital.Name,
		"street":       sql.NullString{String: hospital.Address.Street, Valid: hospital.Address.Street != ""},
		"city":         hospital.Address.City,
		"country":      hospital.Address.Country,
		"latitude":     hospital.Location.Latitude,
		"longitude":    hospital.Location.Longitude,
		"phone_number": sql.NullString{String: hospital.PhoneNumber, Valid: hospital.PhoneNumber != ""},
		"website":      sql.NullString{String: hospital.Website, Valid: hospital.Website != ""},
		"description":  sql.NullString{String: hospital.Description, Valid: hospital.Description != ""},
		"rating":       hospital.Rating,
		"review_count": hospital.ReviewCount,
		"tags":         pq.Array(hospital.Tags),
		"is_active":    hospital.IsActive,
		"created_at":   hospital.CreatedAt,
		"updated_at":   hospital.UpdatedAt,
	}
}

func (a *HospitalAdapter) queryHospitals(ctx context.Context, query string, args ...interface{}) ([]*entities.Hospital, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query hospitals", err)
	}
	defer rows.Close()

	var hospitals []*entities.Hospital
	for rows.Next() {
		hospital, err := a.scanHospitalRow(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospitals = append(hospitals, hospital)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating hospitals", err)
	}

	return hospitals, nil
}

func (a *HospitalAdapter) scanHospitalRow(row rowScanner) (*entities.Hospital, error) {
	hospital := &entities.Hospital{}
	var street, phoneNumber, website, description sql.NullString

	err := row.Scan(
		&hospital.ID,
		&hospital.Name,
		&street,
		&hospital.Address.City,
		&hospital.Address.Country,
		&hospital.Location.Latitude,
		&hospital.Location.Longitude,
		&phoneNumber,
		&website,
		&description,
		&hospital.Rating,
		&hospital.ReviewCount,
		pq.Array(&hospital.Tags),
		&hospital.IsActive,
		&hospital.CreatedAt,
		&hospital.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	hospital.Address.Street = street.String
	hospital.PhoneNumber = phoneNumber.String
	hospital.Website = website.String
	hospital.Description = description.String

	return hospital, nil
}
