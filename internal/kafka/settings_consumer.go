package kafka

import (
	"context"
	"encoding/json"
	"log"

	"ms-structured-data/internal/config"
	"ms-structured-data/internal/models"
	"ms-structured-data/internal/render"
)

// SettingsConsumer follows Debezium change messages for the host's
// event_settings table and invalidates cached payloads whenever a
// structured-data setting changes.
type SettingsConsumer struct {
	BaseConsumer
	Renderer *render.Renderer
}

// NewSettingsConsumer creates a new consumer for settings change messages
func NewSettingsConsumer(cfg config.Config, renderer *render.Renderer) *SettingsConsumer {
	baseConsumer := NewBaseConsumer(cfg, cfg.KafkaURL, cfg.SettingsKafkaTopic)

	return &SettingsConsumer{
		BaseConsumer: *baseConsumer,
		Renderer:     renderer,
	}
}

// StartConsuming starts consuming settings change messages
func (c *SettingsConsumer) StartConsuming(ctx context.Context) {
	log.Printf("Starting settings change consumer for topic %s", c.Config.SettingsKafkaTopic)
	c.ConsumeMessages(ctx, func(value []byte) error {
		return c.processSettingChange(ctx, value)
	})
}

func (c *SettingsConsumer) processSettingChange(ctx context.Context, value []byte) error {
	var raw struct {
		Payload struct {
			Before *models.SettingRow `json:"before"`
			After  *models.SettingRow `json:"after"`
			Op     string             `json:"op"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(value, &raw); err != nil {
		log.Printf("Error unmarshalling settings change message: %v", err)
		return err
	}

	row := raw.Payload.After
	if row == nil {
		row = raw.Payload.Before
	}
	if row == nil || row.EventID == "" {
		log.Printf("Settings change message without a row, skipping")
		return nil
	}

	if !models.IsStructuredDataKey(row.Key) {
		// Change to a setting this service does not render from.
		return nil
	}

	log.Printf("Setting %s changed for event %s, invalidating cached payloads", row.Key, row.EventID)
	c.Renderer.InvalidateAllLocales(ctx, row.EventID)
	return nil
}
