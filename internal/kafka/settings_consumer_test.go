package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ms-structured-data/internal/models"
	"ms-structured-data/internal/render"
	"ms-structured-data/internal/structured"
)

type testSettingsStore struct{}

func (testSettingsStore) ForEvent(eventID string) (models.EventSettings, error) {
	return models.NewEventSettings(nil), nil
}

func (testSettingsStore) Set(eventID, key, value string) error { return nil }

type testQuotas struct{}

func (testQuotas) CheckQuotas(item *models.Item, variation *models.Variation, subevent *models.SubEvent, trustParameters, countWaitlist bool) (models.QuotaAvailability, int64, error) {
	return models.QuotaOK, 1, nil
}

// recordingCache tracks deletions so invalidations are observable.
type recordingCache struct {
	deletes []string
}

func (c *recordingCache) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (c *recordingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

func (c *recordingCache) Delete(ctx context.Context, key string) error {
	c.deletes = append(c.deletes, key)
	return nil
}

func newTestConsumerRenderer(c *recordingCache) *render.Renderer {
	builder := structured.NewBuilder(testSettingsStore{}, testQuotas{}, structured.SystemClock{}, "https://tickets.example.com")
	return render.NewRenderer(builder, testSettingsStore{}, c, time.Minute, []string{"en", "de"})
}

func TestProcessSettingChangeInvalidatesStructuredDataKeys(t *testing.T) {
	cache := &recordingCache{}
	consumer := &SettingsConsumer{Renderer: newTestConsumerRenderer(cache)}

	message := []byte(`{"payload": {"op": "u", "after": {"event_id": "democon", "key": "structured_data_offer_price"}}}`)

	err := consumer.processSettingChange(context.Background(), message)

	assert.NoError(t, err)
	assert.Equal(t, []string{
		render.CacheKey("democon", "en"),
		render.CacheKey("democon", "de"),
	}, cache.deletes)
}

func TestProcessSettingChangeIgnoresUnrelatedKeys(t *testing.T) {
	cache := &recordingCache{}
	consumer := &SettingsConsumer{Renderer: newTestConsumerRenderer(cache)}

	message := []byte(`{"payload": {"op": "u", "after": {"event_id": "democon", "key": "mail_from"}}}`)

	err := consumer.processSettingChange(context.Background(), message)

	assert.NoError(t, err)
	assert.Empty(t, cache.deletes)
}

func TestProcessSettingChangeUsesBeforeRowOnDelete(t *testing.T) {
	cache := &recordingCache{}
	consumer := &SettingsConsumer{Renderer: newTestConsumerRenderer(cache)}

	message := []byte(`{"payload": {"op": "d", "before": {"event_id": "democon", "key": "structured_data_enabled"}, "after": null}}`)

	err := consumer.processSettingChange(context.Background(), message)

	assert.NoError(t, err)
	assert.Len(t, cache.deletes, 2)
}

func TestProcessSettingChangeMalformedMessage(t *testing.T) {
	cache := &recordingCache{}
	consumer := &SettingsConsumer{Renderer: newTestConsumerRenderer(cache)}

	err := consumer.processSettingChange(context.Background(), []byte(`not json`))

	assert.Error(t, err)
	assert.Empty(t, cache.deletes)
}

func TestProcessEventChangeUpdateInvalidates(t *testing.T) {
	cache := &recordingCache{}
	consumer := &EventConsumer{Renderer: newTestConsumerRenderer(cache)}

	message := []byte(`{"payload": {"op": "u", "after": {"id": "democon", "presale_start": null, "presale_end": null}}}`)

	err := consumer.processEventChange(context.Background(), message)

	assert.NoError(t, err)
	assert.Len(t, cache.deletes, 2)
}

func TestProcessEventChangeCreateDoesNotInvalidate(t *testing.T) {
	cache := &recordingCache{}
	consumer := &EventConsumer{Renderer: newTestConsumerRenderer(cache)}

	message := []byte(`{"payload": {"op": "c", "after": {"id": "democon"}}}`)

	err := consumer.processEventChange(context.Background(), message)

	assert.NoError(t, err)
	assert.Empty(t, cache.deletes)
}

func TestProcessEventChangeDeleteUsesBeforeRow(t *testing.T) {
	cache := &recordingCache{}
	consumer := &EventConsumer{Renderer: newTestConsumerRenderer(cache)}

	message := []byte(`{"payload": {"op": "d", "before": {"id": "democon"}, "after": null}}`)

	err := consumer.processEventChange(context.Background(), message)

	assert.NoError(t, err)
	assert.Len(t, cache.deletes, 2)
}

func TestProcessEventChangeMissingID(t *testing.T) {
	cache := &recordingCache{}
	consumer := &EventConsumer{Renderer: newTestConsumerRenderer(cache)}

	err := consumer.processEventChange(context.Background(), []byte(`{"payload": {"op": "u"}}`))

	assert.NoError(t, err)
	assert.Empty(t, cache.deletes)
}
