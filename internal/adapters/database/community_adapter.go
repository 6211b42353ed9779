package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
	"github.com/beautrip/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

// ReviewAdapter implements ReviewRepository
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":           review.ID,
		"user_id":      review.UserID,
		"treatment_id": review.TreatmentID,
		"rating":       review.Rating,
		"body":         sql.NullString{String: review.Body, Valid: review.Body != ""},
		"created_at":   review.CreatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// GetByID retrieves a review by ID
func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	query, args, err := a.db.Select("id", "user_id", "treatment_id", "rating", "body", "created_at").
		From("reviews").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	review := &entities.Review{}
	var body sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&review.UserID,
		&review.TreatmentID,
		&review.Rating,
		&body,
		&review.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}

	review.Body = body.String
	return review, nil
}

// ListByTreatment retrieves reviews for a treatment, newest first
func (a *ReviewAdapter) ListByTreatment(ctx context.Context, treatmentID string, limit, offset int) ([]*entities.Review, error) {
	ds := a.db.Select("id", "user_id", "treatment_id", "rating", "body", "created_at").
		From("reviews").
		Where(goqu.Ex{"treatment_id": treatmentID}).
		Order(goqu.I("created_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review := &entities.Review{}
		var body sql.NullString
		if err := rows.Scan(&review.ID, &review.UserID, &review.TreatmentID, &review.Rating, &body, &review.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		review.Body = body.String
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reviews", err)
	}

	return reviews, nil
}

// AggregateByTreatment returns the average rating and review count for a
// treatment. No reviews yields 0, 0.
func (a *ReviewAdapter) AggregateByTreatment(ctx context.Context, treatmentID string) (float64, int, error) {
	query, args, err := a.db.Select(
		goqu.COALESCE(goqu.AVG("rating"), 0).As("avg_rating"),
		goqu.COUNT("*").As("review_count"),
	).
		From("reviews").
		Where(goqu.Ex{"treatment_id": treatmentID}).
		ToSQL()
	if err != nil {
		return 0, 0, apperrors.NewInternalError("failed to build aggregate query", err)
	}

	var avg float64
	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&avg, &count); err != nil {
		return 0, 0, apperrors.NewInternalError("failed to aggregate reviews", err)
	}

	return avg, count, nil
}

// Delete deletes a review
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reviews").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}

	return nil
}

// PostAdapter implements PostRepository
type PostAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostAdapter creates a new post adapter
func NewPostAdapter(client *postgres.Client) repositories.PostRepository {
	return &PostAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new post
func (a *PostAdapter) Create(ctx context.Context, post *entities.Post) error {
	record := goqu.Record{
		"id":         post.ID,
		"user_id":    post.UserID,
		"title":      post.Title,
		"body":       post.Body,
		"category":   sql.NullString{String: post.Category, Valid: post.Category != ""},
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
	}

	query, args, err := a.db.Insert("posts").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create post", err)
	}

	return nil
}

// GetByID retrieves a post by ID
func (a *PostAdapter) GetByID(ctx context.Context, id string) (*entities.Post, error) {
	query, args, err := a.db.Select("id", "user_id", "title", "body", "category", "created_at", "updated_at").
		From("posts").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	post := &entities.Post{}
	var category sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Body,
		&category,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("post with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get post", err)
	}

	post.Category = category.String
	return post, nil
}

// List retrieves posts with filters
func (a *PostAdapter) List(ctx context.Context, filter repositories.PostFilter) ([]*entities.Post, error) {
	ds := a.db.Select("id", "user_id", "title", "body", "category", "created_at", "updated_at").
		From("posts")

	if filter.UserID != "" {
		ds = ds.Where(goqu.Ex{"user_id": filter.UserID})
	}
	if filter.Category != "" {
		ds = ds.Where(goqu.Ex{"category": filter.Category})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

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

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list posts", err)
	}
	defer rows.Close()

	var posts []*entities.Post
	for rows.Next() {
		post := &entities.Post{}
		var category sql.NullString
		if err := rows.Scan(&post.ID, &post.UserID, &post.Title, &post.Body, &category, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan post", err)
		}
		post.Category = category.String
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating posts", err)
	}

	return posts, nil
}

// Update updates a post
func (a *PostAdapter) Update(ctx context.Context, post *entities.Post) error {
	post.UpdatedAt = time.Now()

	record := goqu.Record{
		"title":      post.Title,
		"body":       post.Body,
		"category":   sql.NullString{String: post.Category, Valid: post.Category != ""},
		"updated_at": post.UpdatedAt,
	}

	query, args, err := a.db.Update("posts").
		Set(record).
		Where(goqu.Ex{"id": post.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update post", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("post with id %s not found", post.ID))
	}

	return nil
}

// Delete deletes a post
func (a *PostAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("posts").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete post", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("post with id %s not found", id))
	}

	return nil
}
