package providers

import (
	"context"

	"github.com/beautrip/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// treatment events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.TreatmentEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.TreatmentEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event scopes
const (
	// EventChannelTreatmentUpdates is the channel for all treatment updates
	EventChannelTreatmentUpdates = "treatment:updates"

	// EventChannelTreatmentPrefix is the prefix for treatment-specific channels
	EventChannelTreatmentPrefix = "treatment:"

	// EventChannelCategoryPrefix is the prefix for per-category channels
	EventChannelCategoryPrefix = "category:"
)

// GetTreatmentChannel returns the channel name for a specific treatment
func GetTreatmentChannel(treatmentID string) string {
	return EventChannelTreatmentPrefix + treatmentID
}

// GetCategoryChannel returns the channel name for a ranking category
func GetCategoryChannel(category string) string {
	return EventChannelCategoryPrefix + category
}
