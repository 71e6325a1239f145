package models

import (
	"strconv"
	"strings"
)

// Per-event setting keys recognized by this service. Values live in the
// host's per-event key/value store; unknown keys are dropped at the load
// boundary instead of being passed around as ad hoc strings.
const (
	KeyEnabled = "structured_data_enabled"

	KeyOverrideName        = "structured_data_override_name"
	KeyName                = "structured_data_name"
	KeyOverrideDescription = "structured_data_override_description"
	KeyDescription         = "structured_data_description"
	KeyOverrideImage       = "structured_data_override_image"
	KeyImage               = "structured_data_image"

	KeyOverrideLocationName    = "structured_data_override_location_name"
	KeyLocationName            = "structured_data_location_name"
	KeyOverrideLocationAddress = "structured_data_override_location_address"
	KeyLocationStreet          = "structured_data_location_street"
	KeyLocationLocality        = "structured_data_location_locality"
	KeyLocationRegion          = "structured_data_location_region"
	KeyLocationPostal          = "structured_data_location_postal"
	KeyLocationCountry         = "structured_data_location_country"

	KeyOverridePerformerName = "structured_data_override_performer_name"
	KeyPerformerName         = "structured_data_performer_name"
	KeyOverrideOrganizerName = "structured_data_override_organizer_name"
	KeyOrganizerName         = "structured_data_organizer_name"
	KeyOverrideOrganizerURL  = "structured_data_override_organizer_url"
	KeyOrganizerURL          = "structured_data_organizer_url"

	KeyOverrideEventStatus    = "structured_data_override_event_status"
	KeyEventStatus            = "structured_data_event_status"
	KeyOverrideAttendanceMode = "structured_data_override_attendance_mode"
	KeyAttendanceMode         = "structured_data_attendance_mode"

	KeyOverrideOfferPrice        = "structured_data_override_offer_price"
	KeyOfferPrice                = "structured_data_offer_price"
	KeyOverrideOfferCurrency     = "structured_data_override_offer_currency"
	KeyOfferCurrency             = "structured_data_offer_currency"
	KeyOverrideOfferAvailability = "structured_data_override_offer_availability"
	KeyOfferAvailability         = "structured_data_offer_availability"
	KeyOverrideOfferURL          = "structured_data_override_offer_url"
	KeyOfferURL                  = "structured_data_offer_url"
	KeyOverrideOfferValidFrom    = "structured_data_override_offer_valid_from"
	KeyOfferValidFrom            = "structured_data_offer_valid_from"

	KeyItemOverrides = "structured_data_item_overrides"

	// KeyEventMicrodata is the host platform's own structured-data setting.
	// We write a blank sentinel into it so the host does not emit a second
	// JSON-LD block on the same page.
	KeyEventMicrodata = "event_microdata"

	// MicrodataSentinel is truthy for the host's template check but renders
	// as effectively empty markup.
	MicrodataSentinel = " "
)

var recognizedSettingKeys = map[string]struct{}{
	KeyEnabled:                   {},
	KeyOverrideName:              {},
	KeyName:                      {},
	KeyOverrideDescription:       {},
	KeyDescription:               {},
	KeyOverrideImage:             {},
	KeyImage:                     {},
	KeyOverrideLocationName:      {},
	KeyLocationName:              {},
	KeyOverrideLocationAddress:   {},
	KeyLocationStreet:            {},
	KeyLocationLocality:          {},
	KeyLocationRegion:            {},
	KeyLocationPostal:            {},
	KeyLocationCountry:           {},
	KeyOverridePerformerName:     {},
	KeyPerformerName:             {},
	KeyOverrideOrganizerName:     {},
	KeyOrganizerName:             {},
	KeyOverrideOrganizerURL:      {},
	KeyOrganizerURL:              {},
	KeyOverrideEventStatus:       {},
	KeyEventStatus:               {},
	KeyOverrideAttendanceMode:    {},
	KeyAttendanceMode:            {},
	KeyOverrideOfferPrice:        {},
	KeyOfferPrice:                {},
	KeyOverrideOfferCurrency:     {},
	KeyOfferCurrency:             {},
	KeyOverrideOfferAvailability: {},
	KeyOfferAvailability:         {},
	KeyOverrideOfferURL:          {},
	KeyOfferURL:                  {},
	KeyOverrideOfferValidFrom:    {},
	KeyOfferValidFrom:            {},
	KeyItemOverrides:             {},
	KeyEventMicrodata:            {},
}

// IsRecognizedSettingKey reports whether this service knows the key.
func IsRecognizedSettingKey(key string) bool {
	_, ok := recognizedSettingKeys[key]
	return ok
}

// IsStructuredDataKey reports whether a settings change on the key affects
// the generated payload and should invalidate cached documents.
func IsStructuredDataKey(key string) bool {
	return strings.HasPrefix(key, "structured_data_")
}

// EventSettings is the snapshot of one event's recognized settings. It is
// loaded fresh on every document build and never cached independently.
type EventSettings struct {
	values map[string]string
}

// NewEventSettings filters the raw key/value rows down to recognized keys.
func NewEventSettings(values map[string]string) EventSettings {
	filtered := make(map[string]string, len(values))
	for key, value := range values {
		if IsRecognizedSettingKey(key) {
			filtered[key] = value
		}
	}
	return EventSettings{values: filtered}
}

// String returns the stored value, or "" when absent.
func (s EventSettings) String(key string) string {
	return s.values[key]
}

// StringDefault returns the stored value, or def when absent or empty.
func (s EventSettings) StringDefault(key, def string) string {
	if v := s.values[key]; v != "" {
		return v
	}
	return def
}

// Bool parses the stored value as a boolean, returning def when absent or
// unparseable.
func (s EventSettings) Bool(key string, def bool) bool {
	raw, ok := s.values[key]
	if !ok || raw == "" {
		return def
	}
	value, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return def
	}
	return value
}

// Localized parses the stored value as a possibly locale-keyed text blob.
func (s EventSettings) Localized(key string) LocalizedString {
	return ParseLocalizedString(s.values[key])
}
