package render

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ms-structured-data/internal/cache"
	"ms-structured-data/internal/metrics"
	"ms-structured-data/internal/models"
	"ms-structured-data/internal/structured"
)

// SettingsStore extends the builder's read contract with the write access
// the renderer needs for the microdata-suppression side effect.
type SettingsStore interface {
	structured.SettingsStore
	Set(eventID, key, value string) error
}

// Renderer wraps the assemble+validate pipeline behind the payload cache and
// produces the script tag injected into public pages.
type Renderer struct {
	Builder  *structured.Builder
	Settings SettingsStore
	Cache    cache.Cache
	TTL      time.Duration
	Locales  []string
}

func NewRenderer(builder *structured.Builder, settings SettingsStore, c cache.Cache, ttl time.Duration, locales []string) *Renderer {
	if len(locales) == 0 {
		locales = []string{"en"}
	}
	return &Renderer{
		Builder:  builder,
		Settings: settings,
		Cache:    c,
		TTL:      ttl,
		Locales:  locales,
	}
}

// CacheKey addresses one serialized document per (event, locale).
func CacheKey(eventID, locale string) string {
	return fmt.Sprintf("structured_data:jsonld:%s:%s", eventID, locale)
}

// BuildDocument assembles and validates a document without touching the
// cache. Used by the admin preview; errors surface to the caller.
func (r *Renderer) BuildDocument(event *models.Event) (*models.Document, []string, error) {
	doc, err := r.Builder.Assemble(event)
	if err != nil {
		return nil, nil, err
	}
	return doc, structured.Validate(doc), nil
}

// RenderScriptTag returns the full <script type="application/ld+json"> block
// for a public page, or "" when the feature is disabled for the event, the
// page is a payment page, or anything at all goes wrong. The public path
// never surfaces errors to visitors or crawlers.
func (r *Renderer) RenderScriptTag(ctx context.Context, event *models.Event, locale string, paymentPage bool) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Panic while rendering structured data for event %s: %v", event.ID, rec)
			metrics.RenderFailures.Inc()
			out = ""
		}
	}()

	if paymentPage {
		return ""
	}

	set, err := r.Settings.ForEvent(event.ID)
	if err != nil {
		log.Printf("Failed to load settings for event %s: %v", event.ID, err)
		metrics.RenderFailures.Inc()
		return ""
	}
	if !set.Bool(models.KeyEnabled, true) {
		return ""
	}

	r.suppressHostMicrodata(event.ID, set)

	payload, err := r.cachedPayload(ctx, event, locale)
	if err != nil {
		log.Printf("Failed to build structured data for event %s: %v", event.ID, err)
		metrics.RenderFailures.Inc()
		return ""
	}
	if payload == "" {
		return ""
	}

	// Only "</" sequences get escaped, so the payload cannot close the
	// script tag early. The JSON-LD content itself must not be
	// entity-escaped.
	safe := strings.ReplaceAll(payload, "</", "<\\/")
	return `<script type="application/ld+json">` + safe + "</script>\n"
}

// suppressHostMicrodata writes a blank sentinel into the host's own
// structured-data setting so it does not emit a second JSON-LD block on the
// same page. Re-writing the same sentinel is harmless.
func (r *Renderer) suppressHostMicrodata(eventID string, set models.EventSettings) {
	// The sentinel itself counts as set, so this writes at most once.
	if set.String(models.KeyEventMicrodata) != "" {
		return
	}
	if err := r.Settings.Set(eventID, models.KeyEventMicrodata, models.MicrodataSentinel); err != nil {
		log.Printf("Failed to suppress host microdata for event %s: %v", eventID, err)
	}
}

// cachedPayload returns the serialized document for (event, locale), building
// and caching it on a miss. Concurrent misses may both rebuild; the build is
// idempotent and the overwrite is last-writer-wins with identical content.
func (r *Renderer) cachedPayload(ctx context.Context, event *models.Event, locale string) (string, error) {
	key := CacheKey(event.ID, locale)

	cached, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if ok {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	doc, warnings, err := r.BuildDocument(event)
	if err != nil {
		return "", err
	}
	if len(warnings) > 0 {
		log.Printf("Structured data validation warnings for event %s: %s",
			event.ID, strings.Join(warnings, "; "))
		metrics.ValidationWarnings.Add(float64(len(warnings)))
	}

	payload, err := Serialize(doc, false)
	if err != nil {
		return "", err
	}
	metrics.DocumentsBuilt.Inc()

	if err := r.Cache.Set(ctx, key, payload, r.TTL); err != nil {
		return "", err
	}
	return payload, nil
}

// InvalidateCache deletes the cached payload for one (event, locale) pair.
func (r *Renderer) InvalidateCache(ctx context.Context, eventID, locale string) error {
	metrics.CacheInvalidations.Inc()
	return r.Cache.Delete(ctx, CacheKey(eventID, locale))
}

// InvalidateAllLocales drops every configured locale's payload for an event.
// Delete failures are logged and the remaining locales still processed.
func (r *Renderer) InvalidateAllLocales(ctx context.Context, eventID string) {
	for _, locale := range r.Locales {
		if err := r.InvalidateCache(ctx, eventID, locale); err != nil {
			log.Printf("Failed to invalidate cached payload for event %s locale %s: %v", eventID, locale, err)
		}
	}
}
