// Package events carries treatment mutations over Redis Pub/Sub. The write
// path publishes on every create/update/review; the cache invalidation
// service is the main subscriber, dropping ranking pages and cached
// treatment responses in reaction.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/providers"
	redisclient "github.com/beautrip/backend/internal/infrastructure/clients/redis"
)

// subscriberBuffer sizes each subscriber's delivery channel. A review
// import can emit a burst of rating_changed events, so there is slack
// before deliveries start getting dropped.
const subscriberBuffer = 64

type subscriberSet map[chan *entities.TreatmentEvent]struct{}

// RedisEventBus fans treatment events out to in-process subscribers through
// Redis Pub/Sub, so every API instance sees mutations made by any of them.
type RedisEventBus struct {
	client *redisclient.Client

	mu        sync.RWMutex
	pubsubs   map[string]*redis.PubSub
	listeners map[string]subscriberSet

	ctx    context.Context
	cancel context.CancelFunc
}

// NewRedisEventBus creates an event bus backed by the given Redis client.
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:    client,
		pubsubs:   make(map[string]*redis.PubSub),
		listeners: make(map[string]subscriberSet),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Publish sends one treatment event to every subscriber of the channel,
// across all running instances.
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.TreatmentEvent) error {
	if event == nil {
		return fmt.Errorf("cannot publish nil event")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.EventType, err)
	}

	if err := b.client.Client().Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.EventType, err)
	}

	log.Printf("Published %s event for treatment %s on %s", event.EventType, event.TreatmentID, channel)
	return nil
}

// Subscribe returns a channel of events published on the given channel. The
// first subscriber opens the underlying Redis subscription; cancelling ctx
// detaches the subscriber and the last one to leave closes it again.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.TreatmentEvent, error) {
	b.mu.Lock()
	if _, open := b.pubsubs[channel]; !open {
		pubsub := b.client.Client().Subscribe(b.ctx, channel)
		b.pubsubs[channel] = pubsub
		go b.pump(channel, pubsub)
	}

	if b.listeners[channel] == nil {
		b.listeners[channel] = make(subscriberSet)
	}
	delivery := make(chan *entities.TreatmentEvent, subscriberBuffer)
	b.listeners[channel][delivery] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.detach(channel, delivery)
	}()

	return delivery, nil
}

// pump reads raw messages off the Redis subscription and fans the decoded
// events out to the channel's subscribers.
func (b *RedisEventBus) pump(channel string, pubsub *redis.PubSub) {
	defer func() {
		if err := b.teardown(channel); err != nil {
			log.Printf("Warning: failed to tear down channel %s: %v", channel, err)
		}
	}()

	messages := pubsub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event entities.TreatmentEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Warning: dropping undecodable event on %s: %v", channel, err)
				continue
			}
			b.fanOut(channel, &event)
		}
	}
}

func (b *RedisEventBus) fanOut(channel string, event *entities.TreatmentEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for delivery := range b.listeners[channel] {
		select {
		case delivery <- event:
		default:
			// Slow consumer; cache invalidation is idempotent, so a
			// dropped event costs one stale page at worst
			log.Printf("Warning: subscriber on %s is full, dropping %s event %s", channel, event.EventType, event.ID)
		}
	}
}

// detach removes one subscriber; the last one also closes the Redis side.
func (b *RedisEventBus) detach(channel string, delivery chan *entities.TreatmentEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.listeners[channel]
	if !ok {
		return
	}
	if _, ok := set[delivery]; !ok {
		return
	}

	delete(set, delivery)
	close(delivery)

	if len(set) > 0 {
		return
	}
	delete(b.listeners, channel)
	if pubsub, ok := b.pubsubs[channel]; ok {
		_ = pubsub.Close()
		delete(b.pubsubs, channel)
	}
}

// teardown closes every subscriber of a channel along with the Redis
// subscription itself.
func (b *RedisEventBus) teardown(channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for delivery := range b.listeners[channel] {
		close(delivery)
	}
	delete(b.listeners, channel)

	if pubsub, ok := b.pubsubs[channel]; ok {
		delete(b.pubsubs, channel)
		if err := pubsub.Close(); err != nil {
			return fmt.Errorf("failed to close subscription on %s: %w", channel, err)
		}
	}
	return nil
}

// Unsubscribe drops every subscriber of a channel.
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	return b.teardown(channel)
}

// Close shuts the bus down, detaching all subscribers.
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.RLock()
	channels := make([]string, 0, len(b.pubsubs))
	for channel := range b.pubsubs {
		channels = append(channels, channel)
	}
	b.mu.RUnlock()

	var firstErr error
	for _, channel := range channels {
		if err := b.teardown(channel); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
