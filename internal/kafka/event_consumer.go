package kafka

import (
	"context"
	"encoding/json"
	"log"

	"ms-structured-data/internal/config"
	"ms-structured-data/internal/eventbridge"
	"ms-structured-data/internal/models"
	"ms-structured-data/internal/render"
)

// EventConsumer follows Debezium change messages for the host's events
// table. Any update or deletion invalidates the cached payloads for the
// event; presale-boundary schedules are kept in sync so availability flips
// on time instead of waiting for the cache TTL.
type EventConsumer struct {
	BaseConsumer
	Renderer  *render.Renderer
	Scheduler *eventbridge.Service
}

// NewEventConsumer creates a new consumer for event change messages
func NewEventConsumer(cfg config.Config, renderer *render.Renderer, scheduler *eventbridge.Service) *EventConsumer {
	baseConsumer := NewBaseConsumer(cfg, cfg.KafkaURL, cfg.EventsKafkaTopic)

	return &EventConsumer{
		BaseConsumer: *baseConsumer,
		Renderer:     renderer,
		Scheduler:    scheduler,
	}
}

// StartConsuming starts consuming event change messages
func (c *EventConsumer) StartConsuming(ctx context.Context) {
	log.Printf("Starting event change consumer for topic %s", c.Config.EventsKafkaTopic)
	c.ConsumeMessages(ctx, func(value []byte) error {
		return c.processEventChange(ctx, value)
	})
}

func (c *EventConsumer) processEventChange(ctx context.Context, value []byte) error {
	var raw struct {
		Payload struct {
			Before *models.EventRow      `json:"before"`
			After  *models.EventRow      `json:"after"`
			Source models.DebeziumSource `json:"source"`
			Op     string                `json:"op"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(value, &raw); err != nil {
		log.Printf("Error unmarshalling event change message: %v", err)
		return err
	}

	eventID := ""
	if raw.Payload.After != nil {
		eventID = raw.Payload.After.ID
	} else if raw.Payload.Before != nil {
		eventID = raw.Payload.Before.ID
	}
	if eventID == "" {
		log.Printf("Event change message without an event ID, skipping")
		return nil
	}

	log.Printf("Processing event %s change, operation: %s", eventID, raw.Payload.Op)

	switch raw.Payload.Op {
	case "c":
		// Nothing is cached for a brand-new event, but its presale
		// boundaries already need schedules.
		if c.Scheduler != nil && raw.Payload.After != nil {
			c.Scheduler.EnsurePresaleSchedules(eventID, raw.Payload.After.PresaleStart, raw.Payload.After.PresaleEnd)
		}

	case "u":
		c.Renderer.InvalidateAllLocales(ctx, eventID)
		if c.Scheduler != nil && raw.Payload.After != nil {
			c.Scheduler.EnsurePresaleSchedules(eventID, raw.Payload.After.PresaleStart, raw.Payload.After.PresaleEnd)
		}

	case "d":
		c.Renderer.InvalidateAllLocales(ctx, eventID)
		if c.Scheduler != nil {
			c.Scheduler.DeleteSchedules(eventID)
		}

	default:
		log.Printf("Unhandled operation '%s' for event %s", raw.Payload.Op, eventID)
	}

	return nil
}
