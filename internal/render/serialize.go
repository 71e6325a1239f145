package render

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf16"

	json "github.com/goccy/go-json"

	"ms-structured-data/internal/models"
)

// Serialize encodes a document as ASCII-safe JSON. HTML escaping is turned
// off: the only protection the payload needs is the "</" escaping applied at
// the script-tag boundary. The indented form is used by the admin preview.
func Serialize(doc *models.Document, indent bool) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("serializing document: %v", err)
	}
	return escapeNonASCII(strings.TrimRight(buf.String(), "\n")), nil
}

// escapeNonASCII rewrites every rune outside the ASCII range as a \uXXXX
// escape (surrogate pairs for runes beyond the BMP), so the payload survives
// any downstream charset handling.
func escapeNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, "\\u%04x\\u%04x", hi, lo)
			continue
		}
		fmt.Fprintf(&b, "\\u%04x", r)
	}
	return b.String()
}
