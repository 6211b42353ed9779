package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
	"github.com/beautrip/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

// FavoriteAdapter implements FavoriteRepository
type FavoriteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFavoriteAdapter creates a new favorite adapter
func NewFavoriteAdapter(client *postgres.Client) repositories.FavoriteRepository {
	return &FavoriteAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Add records a favorite; adding twice is not an error
func (a *FavoriteAdapter) Add(ctx context.Context, userID, treatmentID string) error {
	record := goqu.Record{
		"user_id":      userID,
		"treatment_id": treatmentID,
		"created_at":   time.Now(),
	}

	query, args, err := a.db.Insert("favorites").
		Rows(record).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to add favorite", err)
	}

	return nil
}

// Remove deletes a favorite
func (a *FavoriteAdapter) Remove(ctx context.Context, userID, treatmentID string) error {
	query, args, err := a.db.Delete("favorites").
		Where(goqu.Ex{"user_id": userID, "treatment_id": treatmentID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to remove favorite", err)
	}

	return nil
}

// ListByUser retrieves a user's favorites, newest first
func (a *FavoriteAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error) {
	query, args, err := a.db.Select("user_id", "treatment_id", "created_at").
		From("favorites").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list favorites", err)
	}
	defer rows.Close()

	var favorites []*entities.Favorite
	for rows.Next() {
		favorite := &entities.Favorite{}
		if err := rows.Scan(&favorite.UserID, &favorite.TreatmentID, &favorite.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan favorite", err)
		}
		favorites = append(favorites, favorite)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating favorites", err)
	}

	return favorites, nil
}

// Exists checks whether a favorite is recorded
func (a *FavoriteAdapter) Exists(ctx context.Context, userID, treatmentID string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("favorites").
		Where(goqu.Ex{"user_id": userID, "treatment_id": treatmentID}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build exists query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check favorite", err)
	}

	return count > 0, nil
}

// CountByTreatment counts how many users favorited a treatment
func (a *FavoriteAdapter) CountByTreatment(ctx context.Context, treatmentID string) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("favorites").
		Where(goqu.Ex{"treatment_id": treatmentID}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count favorites", err)
	}

	return count, nil
}
