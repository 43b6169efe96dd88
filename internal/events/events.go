package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"resumehub/config"
	"resumehub/internal/database"
	"resumehub/internal/logger"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const (
	ChannelIntegration = "integration"
	ChannelAdmin       = "admin"

	TypeIntegrationSynced  = "integration.synced"
	TypeIntegrationDeleted = "integration.deleted"
	TypeDataCleared        = "admin.data_cleared"
)

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewEvent(channel, eventType, userID string, data map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Channel:   channel,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

type Handler func(Event) error

// EventBus fans events out over valkey pub/sub when a cache client is
// configured, so every instance sees them. Without one, events are
// delivered in-process.
type EventBus struct {
	client   database.CacheClient
	handlers map[string][]Handler
	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	log      logger.Logger
}

func New(client database.CacheClient, config config.Config) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())
	bus := &EventBus{
		client:   client,
		handlers: map[string][]Handler{},
		ctx:      ctx,
		cancel:   cancel,
		log:      logger.New("EventBus"),
	}
	bus.log.Info("Event bus ready", "distributed", client != nil, "environment", config.GeneralEnvironment)
	return bus
}

func (b *EventBus) Subscribe(channel string, handler Handler) {
	b.mu.Lock()
	first := len(b.handlers[channel]) == 0
	b.handlers[channel] = append(b.handlers[channel], handler)
	b.mu.Unlock()

	if first && b.client != nil {
		b.wg.Add(1)
		go b.receive(channel)
	}
}

func (b *EventBus) receive(channel string) {
	defer b.wg.Done()
	log := b.log.Function("receive")

	err := b.client.Receive(b.ctx, b.client.B().Subscribe().Channel(channel).Build(),
		func(message valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(message.Message), &event); err != nil {
				log.Er("failed to decode event", err, "channel", channel)
				return
			}
			b.dispatch(channel, event)
		},
	)
	if err != nil && b.ctx.Err() == nil {
		log.Er("subscription ended", err, "channel", channel)
	}
}

func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	if event.Channel == "" {
		event.Channel = channel
	}

	if b.client == nil {
		b.dispatch(channel, event)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to encode event", err, "type", event.Type)
	}

	ctx, cancel := context.WithTimeout(b.ctx, 5*time.Second)
	defer cancel()

	if err := b.client.Do(ctx, b.client.B().Publish().
		Channel(channel).
		Message(valkey.BinaryString(payload)).
		Build(),
	).Error(); err != nil {
		return log.Err("failed to publish event", err, "channel", channel, "type", event.Type)
	}

	return nil
}

func (b *EventBus) dispatch(channel string, event Event) {
	log := b.log.Function("dispatch")

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[channel]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			log.Er("event handler failed", err, "channel", channel, "type", event.Type)
		}
	}
}

func (b *EventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	return nil
}
