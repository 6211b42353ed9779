package entities

import (
	"time"

	"github.com/google/uuid"
)

// TreatmentEventType represents the type of treatment event
type TreatmentEventType string

const (
	TreatmentEventTypeCreated       TreatmentEventType = "treatment_created"
	TreatmentEventTypeUpdated       TreatmentEventType = "treatment_updated"
	TreatmentEventTypeDeactivated   TreatmentEventType = "treatment_deactivated"
	TreatmentEventTypeReviewAdded   TreatmentEventType = "review_added"
	TreatmentEventTypeRatingChanged TreatmentEventType = "rating_changed"
)

// TreatmentEvent is published on treatment/review mutations so downstream
// consumers (ranking page caches, the search index) can react.
type TreatmentEvent struct {
	ID            string                 `json:"id"`
	TreatmentID   string                 `json:"treatment_id"`
	EventType     TreatmentEventType     `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changed_fields,omitempty"`
}

// NewTreatmentEvent creates a new treatment event
func NewTreatmentEvent(treatmentID string, eventType TreatmentEventType, changedFields map[string]interface{}) *TreatmentEvent {
	return &TreatmentEvent{
		ID:            uuid.NewString(),
		TreatmentID:   treatmentID,
		EventType:     eventType,
		Timestamp:     time.Now(),
		ChangedFields: changedFields,
	}
}
