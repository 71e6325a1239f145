package structured

import "strings"

// StripTags removes HTML markup from description text, keeping only the
// character data. Unclosed tags swallow the rest of the string, matching
// the usual tag-stripper behavior.
func StripTags(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inTag := false
	for _, r := range text {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
