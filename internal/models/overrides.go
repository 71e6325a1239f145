package models

import (
	"log"
	"strconv"

	json "github.com/goccy/go-json"
)

// ItemOverride is the per-item/per-variation override record stored by the
// admin UI. Ignore is a string pointer because presence and value carry
// different meanings: an absent key falls back to the default-ignore rule,
// while the stored strings compare against the literal "true" (so "false"
// and any other value both mean "not ignored").
type ItemOverride struct {
	Ignore       *string `json:"ignore,omitempty"`
	Price        string  `json:"price,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	Availability string  `json:"availability,omitempty"`
	URL          string  `json:"url,omitempty"`
}

// ItemOverrideMap holds the per-item overrides for one event, keyed by
// "<itemID>" or "<itemID>-<variationID>". The string keys exist only at the
// storage boundary; lookups go through typed IDs.
type ItemOverrideMap map[string]ItemOverride

// ParseItemOverrides decodes the stored JSON blob. Malformed data degrades
// to an empty map with a logged warning; offers then use defaults only.
func ParseItemOverrides(raw, eventID string) ItemOverrideMap {
	if raw == "" {
		return ItemOverrideMap{}
	}
	var overrides ItemOverrideMap
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		log.Printf("Warning: failed to parse item overrides JSON for event %s: %v", eventID, err)
		return ItemOverrideMap{}
	}
	if overrides == nil {
		overrides = ItemOverrideMap{}
	}
	return overrides
}

// OverrideKey serializes the composite (item, variation) key.
func OverrideKey(itemID int64, variationID *int64) string {
	key := strconv.FormatInt(itemID, 10)
	if variationID != nil {
		key += "-" + strconv.FormatInt(*variationID, 10)
	}
	return key
}

// Lookup returns the override record for the item/variation pair, if any.
func (m ItemOverrideMap) Lookup(itemID int64, variationID *int64) (ItemOverride, bool) {
	override, ok := m[OverrideKey(itemID, variationID)]
	return override, ok
}
