package structured

import (
	"log"
	"strconv"
	"strings"
	"time"

	"ms-structured-data/internal/models"
)

// resolvedFields is the flattened, locale-resolved, override-applied view of
// an event that the document assembly works from. Recomputed on every build.
type resolvedFields struct {
	name        string
	description string
	image       string

	locationName     string
	locationStreet   string
	locationLocality string
	locationRegion   string
	locationPostal   string
	locationCountry  string

	performerName string
	organizerName string
	organizerURL  string

	eventStatus    string
	attendanceMode string

	offerPrice        string // raw decimal string, "" when absent
	offerCurrency     string
	offerAvailability string
	offerURL          string
	offerValidFrom    *time.Time

	// which global offer overrides are enabled; the offer builder needs the
	// flags, not just the resolved values
	priceOverridden        bool
	currencyOverridden     bool
	availabilityOverridden bool
	urlOverridden          bool
	validFromOverridden    bool
}

func (b *Builder) resolveFields(event *models.Event, set models.EventSettings) resolvedFields {
	d := b.eventDefaults(event)
	locale := event.Locale()

	f := resolvedFields{
		name:        resolveI18n(set, models.KeyName, models.KeyOverrideName, d.name, locale),
		description: resolveI18n(set, models.KeyDescription, models.KeyOverrideDescription, d.description, locale),
		image:       resolvePlain(set, models.KeyImage, models.KeyOverrideImage, d.image),

		locationName:     resolveI18n(set, models.KeyLocationName, models.KeyOverrideLocationName, d.locationName, locale),
		locationStreet:   resolvePlain(set, models.KeyLocationStreet, models.KeyOverrideLocationAddress, ""),
		locationLocality: resolvePlain(set, models.KeyLocationLocality, models.KeyOverrideLocationAddress, ""),
		locationRegion:   resolvePlain(set, models.KeyLocationRegion, models.KeyOverrideLocationAddress, ""),
		locationPostal:   resolvePlain(set, models.KeyLocationPostal, models.KeyOverrideLocationAddress, ""),
		locationCountry:  resolvePlain(set, models.KeyLocationCountry, models.KeyOverrideLocationAddress, ""),

		performerName: resolveI18n(set, models.KeyPerformerName, models.KeyOverridePerformerName, models.LocalizedString{}, locale),
		organizerName: resolveI18n(set, models.KeyOrganizerName, models.KeyOverrideOrganizerName, models.PlainString(d.organizerName), locale),
		organizerURL:  resolvePlain(set, models.KeyOrganizerURL, models.KeyOverrideOrganizerURL, d.organizerURL),

		eventStatus:    resolvePlain(set, models.KeyEventStatus, models.KeyOverrideEventStatus, d.eventStatus),
		attendanceMode: resolvePlain(set, models.KeyAttendanceMode, models.KeyOverrideAttendanceMode, d.attendanceMode),

		offerPrice:        resolveDecimal(set, models.KeyOfferPrice, models.KeyOverrideOfferPrice, event.ID),
		offerCurrency:     resolvePlain(set, models.KeyOfferCurrency, models.KeyOverrideOfferCurrency, d.offerCurrency),
		offerAvailability: resolvePlain(set, models.KeyOfferAvailability, models.KeyOverrideOfferAvailability, d.offerAvailability),
		offerURL:          resolvePlain(set, models.KeyOfferURL, models.KeyOverrideOfferURL, d.offerURL),
		offerValidFrom:    resolveTime(set, models.KeyOfferValidFrom, models.KeyOverrideOfferValidFrom, d.offerValidFrom, event.ID),

		priceOverridden:        set.Bool(models.KeyOverrideOfferPrice, false),
		currencyOverridden:     set.Bool(models.KeyOverrideOfferCurrency, false),
		availabilityOverridden: set.Bool(models.KeyOverrideOfferAvailability, false),
		urlOverridden:          set.Bool(models.KeyOverrideOfferURL, false),
		validFromOverridden:    set.Bool(models.KeyOverrideOfferValidFrom, false),
	}

	return f
}

// resolveI18n resolves a human-readable text field. An enabled override with
// an empty stored value resolves to "" rather than falling through to the
// default, so admins can explicitly blank a field. Overrides resolve against
// the event's default locale, never the request locale.
func resolveI18n(set models.EventSettings, valueKey, overrideKey string, def models.LocalizedString, locale string) string {
	if !set.Bool(overrideKey, false) {
		return def.Localize(locale)
	}
	value := set.Localized(valueKey)
	if value.IsEmpty() {
		return ""
	}
	return value.Localize(locale)
}

// resolvePlain resolves a scalar field: enabled override value if stored,
// otherwise the computed default.
func resolvePlain(set models.EventSettings, valueKey, overrideKey, def string) string {
	if !set.Bool(overrideKey, false) {
		return def
	}
	return set.StringDefault(valueKey, def)
}

// resolveDecimal resolves the global price override. Non-numeric stored
// values fail silently and resolve to absent.
func resolveDecimal(set models.EventSettings, valueKey, overrideKey, eventID string) string {
	if !set.Bool(overrideKey, false) {
		return ""
	}
	raw := strings.TrimSpace(set.String(valueKey))
	if raw == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		log.Printf("Warning: invalid decimal in setting %s for event %s: %q", valueKey, eventID, raw)
		return ""
	}
	return raw
}

// resolveTime resolves the global valid-from override, expecting RFC 3339.
func resolveTime(set models.EventSettings, valueKey, overrideKey string, def *time.Time, eventID string) *time.Time {
	if !set.Bool(overrideKey, false) {
		return def
	}
	raw := strings.TrimSpace(set.String(valueKey))
	if raw == "" {
		return def
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		log.Printf("Warning: invalid timestamp in setting %s for event %s: %q", valueKey, eventID, raw)
		return def
	}
	return &value
}
