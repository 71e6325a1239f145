package models

import (
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// LocalizedString holds a human-readable value that is either a plain string
// or a locale-keyed map, matching how the host platform serializes its i18n
// fields ({"en": "...", "de": "..."} as a JSON blob).
type LocalizedString struct {
	plain    string
	byLocale map[string]string
}

// PlainString wraps a plain, locale-independent value.
func PlainString(value string) LocalizedString {
	return LocalizedString{plain: value}
}

// LocalizedFromMap builds a locale-keyed value.
func LocalizedFromMap(byLocale map[string]string) LocalizedString {
	return LocalizedString{byLocale: byLocale}
}

// ParseLocalizedString decodes a stored settings value. A JSON object is
// treated as a locale map; anything else is kept verbatim as a plain string.
func ParseLocalizedString(raw string) LocalizedString {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var byLocale map[string]string
		if err := json.Unmarshal([]byte(trimmed), &byLocale); err == nil {
			return LocalizedString{byLocale: byLocale}
		}
	}
	return LocalizedString{plain: raw}
}

// Localize resolves the value for the given locale. Locale maps fall back to
// the language part of the locale ("de-AT" -> "de"), then "en", then the
// first non-empty entry in key order.
func (s LocalizedString) Localize(locale string) string {
	if s.byLocale == nil {
		return s.plain
	}
	if v := s.byLocale[locale]; v != "" {
		return v
	}
	if idx := strings.IndexByte(locale, '-'); idx > 0 {
		if v := s.byLocale[locale[:idx]]; v != "" {
			return v
		}
	}
	if v := s.byLocale["en"]; v != "" {
		return v
	}
	keys := make([]string, 0, len(s.byLocale))
	for k := range s.byLocale {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := s.byLocale[k]; v != "" {
			return v
		}
	}
	return ""
}

// IsEmpty reports whether no locale carries a value.
func (s LocalizedString) IsEmpty() bool {
	if s.byLocale == nil {
		return s.plain == ""
	}
	for _, v := range s.byLocale {
		if v != "" {
			return false
		}
	}
	return true
}
