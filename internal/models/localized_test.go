package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocalizedStringPlain(t *testing.T) {
	s := ParseLocalizedString("Hello")

	assert.Equal(t, "Hello", s.Localize("en"))
	assert.Equal(t, "Hello", s.Localize("de"))
}

func TestParseLocalizedStringMap(t *testing.T) {
	s := ParseLocalizedString(`{"en": "Hello", "de": "Hallo"}`)

	assert.Equal(t, "Hello", s.Localize("en"))
	assert.Equal(t, "Hallo", s.Localize("de"))
}

func TestParseLocalizedStringMalformedJSONStaysPlain(t *testing.T) {
	raw := `{"en": "Hello"`
	s := ParseLocalizedString(raw)

	assert.Equal(t, raw, s.Localize("en"))
}

func TestLocalizeLanguagePartFallback(t *testing.T) {
	s := LocalizedFromMap(map[string]string{"de": "Hallo"})

	assert.Equal(t, "Hallo", s.Localize("de-AT"))
}

func TestLocalizeEnglishFallback(t *testing.T) {
	s := LocalizedFromMap(map[string]string{"en": "Hello", "fr": "Bonjour"})

	assert.Equal(t, "Hello", s.Localize("es"))
}

func TestLocalizeFirstNonEmptyFallback(t *testing.T) {
	s := LocalizedFromMap(map[string]string{"fr": "", "it": "Ciao", "pt": "Ola"})

	// Key order is sorted, so "it" comes before "pt".
	assert.Equal(t, "Ciao", s.Localize("es"))
}

func TestLocalizeEmptyMap(t *testing.T) {
	s := LocalizedFromMap(map[string]string{})

	assert.Equal(t, "", s.Localize("en"))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, PlainString("").IsEmpty())
	assert.False(t, PlainString("x").IsEmpty())
	assert.True(t, LocalizedFromMap(map[string]string{"en": ""}).IsEmpty())
	assert.False(t, LocalizedFromMap(map[string]string{"en": "x"}).IsEmpty())
}
