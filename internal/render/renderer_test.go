package render

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-structured-data/internal/models"
	"ms-structured-data/internal/structured"
)

// fakeStore is an in-memory settings store recording every Set call.
type fakeStore struct {
	values map[string]string
	err    error
	sets   []string
}

func (f *fakeStore) ForEvent(eventID string) (models.EventSettings, error) {
	if f.err != nil {
		return models.EventSettings{}, f.err
	}
	return models.NewEventSettings(f.values), nil
}

func (f *fakeStore) Set(eventID, key, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	f.sets = append(f.sets, key)
	return nil
}

// fakeCache is a map-backed Cache with optional error injection.
type fakeCache struct {
	entries map[string]string
	getErr  error
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	value, ok := f.entries[key]
	return value, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	delete(f.entries, key)
	return nil
}

type stubQuotas struct{}

func (stubQuotas) CheckQuotas(item *models.Item, variation *models.Variation, subevent *models.SubEvent, trustParameters, countWaitlist bool) (models.QuotaAvailability, int64, error) {
	return models.QuotaOK, 50, nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

func testEvent() *models.Event {
	price := 10.0
	return &models.Event{
		ID:            "democon",
		Slug:          "democon",
		OrganizerName: "Demo Organizer",
		OrganizerSlug: "demo",
		Name:          models.PlainString("DemoCon 2026"),
		Currency:      "EUR",
		DateFrom:      time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
		ShowTimes:     true,
		DefaultLocale: "en",
		Items: []models.Item{
			{ID: 1, Name: models.PlainString("Standard"), Active: true, Admission: true, DefaultPrice: &price},
		},
	}
}

func newTestRenderer(store *fakeStore, c *fakeCache) *Renderer {
	builder := structured.NewBuilder(store, stubQuotas{}, fixedClock{}, "https://tickets.example.com")
	return NewRenderer(builder, store, c, 10*time.Minute, []string{"en", "de"})
}

func TestRenderScriptTagWrapsPayload(t *testing.T) {
	store := &fakeStore{}
	renderer := newTestRenderer(store, newFakeCache())

	tag := renderer.RenderScriptTag(context.Background(), testEvent(), "en", false)

	assert.True(t, strings.HasPrefix(tag, `<script type="application/ld+json">`))
	assert.True(t, strings.HasSuffix(tag, "</script>\n"))
	assert.Contains(t, tag, `"@context":"https://schema.org"`)
	assert.Contains(t, tag, `"@type":"Event"`)
}

func TestRenderScriptTagDisabled(t *testing.T) {
	store := &fakeStore{values: map[string]string{models.KeyEnabled: "false"}}
	renderer := newTestRenderer(store, newFakeCache())

	tag := renderer.RenderScriptTag(context.Background(), testEvent(), "en", false)

	assert.Equal(t, "", tag)
}

func TestRenderScriptTagPaymentPage(t *testing.T) {
	store := &fakeStore{}
	renderer := newTestRenderer(store, newFakeCache())

	tag := renderer.RenderScriptTag(context.Background(), testEvent(), "en", true)

	assert.Equal(t, "", tag)
	// The payment page check precedes everything, including the settings load.
	assert.Empty(t, store.sets)
}

func TestRenderScriptTagEscapesClosingSequence(t *testing.T) {
	store := &fakeStore{}
	renderer := newTestRenderer(store, newFakeCache())
	event := testEvent()
	event.Name = models.PlainString("a</b")

	tag := renderer.RenderScriptTag(context.Background(), event, "en", false)

	assert.Contains(t, tag, `a<\/b`)
	// The only "</" left is the script tag's own closer.
	body := strings.TrimSuffix(strings.TrimPrefix(tag, `<script type="application/ld+json">`), "</script>\n")
	assert.NotContains(t, body, "</")
}

func TestRenderScriptTagEscapesNonASCII(t *testing.T) {
	store := &fakeStore{}
	renderer := newTestRenderer(store, newFakeCache())
	event := testEvent()
	event.Name = models.PlainString("Zürich")

	tag := renderer.RenderScriptTag(context.Background(), event, "en", false)

	assert.Contains(t, tag, `Z\u00fcrich`)
	assert.NotContains(t, tag, "ü")
}

func TestRenderScriptTagUsesCachedPayload(t *testing.T) {
	store := &fakeStore{}
	c := newFakeCache()
	c.entries[CacheKey("democon", "en")] = `{"@context":"https://schema.org","cached":true}`
	renderer := newTestRenderer(store, c)

	tag := renderer.RenderScriptTag(context.Background(), testEvent(), "en", false)

	assert.Contains(t, tag, `"cached":true`)
}

func TestRenderScriptTagCacheFailureIsEmpty(t *testing.T) {
	store := &fakeStore{}
	c := newFakeCache()
	c.getErr = fmt.Errorf("redis down")
	renderer := newTestRenderer(store, c)

	tag := renderer.RenderScriptTag(context.Background(), testEvent(), "en", false)

	assert.Equal(t, "", tag)
}

func TestRenderScriptTagSettingsFailureIsEmpty(t *testing.T) {
	store := &fakeStore{err: fmt.Errorf("store down")}
	renderer := newTestRenderer(store, newFakeCache())

	tag := renderer.RenderScriptTag(context.Background(), testEvent(), "en", false)

	assert.Equal(t, "", tag)
}

func TestRenderScriptTagWritesMicrodataSentinelOnce(t *testing.T) {
	store := &fakeStore{}
	renderer := newTestRenderer(store, newFakeCache())
	event := testEvent()

	renderer.RenderScriptTag(context.Background(), event, "en", false)
	renderer.RenderScriptTag(context.Background(), event, "en", false)

	require.Len(t, store.sets, 1)
	assert.Equal(t, models.KeyEventMicrodata, store.sets[0])
	assert.Equal(t, models.MicrodataSentinel, store.values[models.KeyEventMicrodata])
}

func TestInvalidateThenRebuild(t *testing.T) {
	store := &fakeStore{}
	c := newFakeCache()
	renderer := newTestRenderer(store, c)
	event := testEvent()
	ctx := context.Background()

	first := renderer.RenderScriptTag(ctx, event, "en", false)
	assert.Contains(t, first, "DemoCon 2026")

	event.Name = models.PlainString("Renamed Con")
	stale := renderer.RenderScriptTag(ctx, event, "en", false)
	assert.Contains(t, stale, "DemoCon 2026")

	renderer.InvalidateAllLocales(ctx, event.ID)
	fresh := renderer.RenderScriptTag(ctx, event, "en", false)
	assert.Contains(t, fresh, "Renamed Con")
}

func TestInvalidateAllLocalesDeletesEveryLocale(t *testing.T) {
	store := &fakeStore{}
	c := newFakeCache()
	renderer := newTestRenderer(store, c)

	renderer.InvalidateAllLocales(context.Background(), "democon")

	assert.Equal(t, []string{
		CacheKey("democon", "en"),
		CacheKey("democon", "de"),
	}, c.deletes)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "structured_data:jsonld:democon:de", CacheKey("democon", "de"))
}

func TestBuildDocumentReturnsWarnings(t *testing.T) {
	store := &fakeStore{}
	renderer := newTestRenderer(store, newFakeCache())
	event := testEvent()
	event.Name = models.LocalizedString{}

	doc, warnings, err := renderer.BuildDocument(event)

	require.NoError(t, err)
	assert.Empty(t, doc.Name)
	assert.Contains(t, warnings, "Missing event name")
}
