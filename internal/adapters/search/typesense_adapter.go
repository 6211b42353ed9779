package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
	tsclient "github.com/beautrip/backend/internal/infrastructure/clients/typesense"
)

const collectionName = tsclient.TreatmentsCollection

// TypesenseAdapter implements treatment search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements TreatmentSearchRepository
var _ repositories.TreatmentSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Index indexes a treatment
func (a *TypesenseAdapter) Index(ctx context.Context, treatment *entities.Treatment) error {
	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, treatmentDocument(treatment))
	if err != nil {
		return fmt.Errorf("failed to index treatment: %w", err)
	}

	return nil
}

// BulkIndex indexes many treatments in one import call
func (a *TypesenseAdapter) BulkIndex(ctx context.Context, treatments []*entities.Treatment) error {
	if len(treatments) == 0 {
		return nil
	}

	documents := make([]interface{}, len(treatments))
	for i, treatment := range treatments {
		documents[i] = treatmentDocument(treatment)
	}

	action := string(api.Upsert)
	params := &api.ImportDocumentsParams{Action: &action}
	_, err := a.client.Client().Collection(collectionName).Documents().Import(ctx, documents, params)
	if err != nil {
		return fmt.Errorf("failed to bulk index treatments: %w", err)
	}

	return nil
}

// Delete removes a treatment from index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete treatment from index: %w", err)
	}
	return nil
}

// Search searches treatments
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Treatment, error) {
	query := params.Query
	if query == "" {
		query = "*"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,tags"),
		FilterBy: pointer.String(buildFilter(params)),
		Page:     pointer.Int(params.Offset/limit + 1),
		PerPage:  pointer.Int(limit),
	}

	if params.SortByScore {
		searchParams.SortBy = pointer.String("rating:desc,review_count:desc")
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search treatments: %w", err)
	}

	treatments := []*entities.Treatment{}
	if result.Hits == nil {
		return treatments, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document
		treatments = append(treatments, treatmentFromDocument(doc))
	}

	return treatments, nil
}

// buildFilter assembles the Typesense filter_by expression
func buildFilter(params repositories.SearchParams) string {
	filters := []string{"is_active:=true"}

	if params.Category != "" {
		filters = append(filters, fmt.Sprintf("category_mid:=`%s`", params.Category))
	}
	if params.HospitalID != "" {
		filters = append(filters, fmt.Sprintf("hospital_id:=%s", params.HospitalID))
	}
	if params.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("price:>=%f", *params.MinPrice))
	}
	if params.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("price:<=%f", *params.MaxPrice))
	}
	if params.MinRating != nil {
		filters = append(filters, fmt.Sprintf("rating:>=%f", *params.MinRating))
	}

	return strings.Join(filters, " && ")
}

func treatmentDocument(treatment *entities.Treatment) map[string]interface{} {
	tags := treatment.Tags
	if tags == nil {
		tags = []string{}
	}

	return map[string]interface{}{
		"id":             treatment.ID,
		"name":           treatment.Name,
		"hospital_id":    treatment.HospitalID,
		"category_large": treatment.CategoryLarge,
		"category_mid":   treatment.CategoryMid,
		"category_small": treatment.CategorySmall,
		"price":          treatment.Price,
		"rating":         treatment.Rating,
		"review_count":   treatment.ReviewCount,
		"recovery_days":  treatment.RecoveryDays,
		"created_at":     treatment.CreatedAt.Unix(),
		"is_active":      treatment.IsActive,
		"tags":           tags,
	}
}

// treatmentFromDocument reconstructs a partial treatment from a search hit.
// Typesense hands back map[string]interface{} so every cast is checked.
func treatmentFromDocument(doc map[string]interface{}) *entities.Treatment {
	treatment := &entities.Treatment{}

	if val, ok := doc["id"].(string); ok {
		treatment.ID = val
	}
	if val, ok := doc["name"].(string); ok {
		treatment.Name = val
	}
	if val, ok := doc["hospital_id"].(string); ok {
		treatment.HospitalID = val
	}
	if val, ok := doc["category_large"].(string); ok {
		treatment.CategoryLarge = val
	}
	if val, ok := doc["category_mid"].(string); ok {
		treatment.CategoryMid = val
	}
	if val, ok := doc["category_small"].(string); ok {
		treatment.CategorySmall = val
	}
	if val, ok := doc["price"].(float64); ok {
		treatment.Price = val
	}
	if val, ok := doc["rating"].(float64); ok {
		treatment.Rating = val
	}
	if val, ok := doc["review_count"].(float64); ok {
		treatment.ReviewCount = int(val)
	}
	if val, ok := doc["recovery_days"].(float64); ok {
		treatment.RecoveryDays = int(val)
	}
	if val, ok := doc["is_active"].(bool); ok {
		treatment.IsActive = val
	}
	if vals, ok := doc["tags"].([]interface{}); ok {
		for _, v := range vals {
			if s, ok := v.(string); ok {
				treatment.Tags = append(treatment.Tags, s)
			}
		}
	}

	return treatment
}
