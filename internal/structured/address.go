package structured

import (
	"strings"
	"unicode"
)

// ParsedAddress holds the postal-address parts derivable from free text.
// Fields the heuristic could not derive stay empty.
type ParsedAddress struct {
	StreetAddress   string
	PostalCode      string
	AddressLocality string
	AddressCountry  string
}

// ParseMultilineAddress decomposes a multi-line street field following the
// common central-European convention: line 1 is the street, line 2 is
// "<postal> <city>", line 3 is the country. This is best-effort for one
// regional format only; it never fails on malformed input, unparsed lines
// are simply not represented in the result.
func ParseMultilineAddress(text string) ParsedAddress {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	var parsed ParsedAddress
	if len(lines) == 0 {
		return parsed
	}

	parsed.StreetAddress = lines[0]

	if len(lines) >= 2 {
		// Split on the first whitespace run. Exactly two parts means
		// "<postal> <city>"; anything else is taken as the city alone.
		first, rest := splitFirstWhitespace(lines[1])
		if rest != "" {
			parsed.PostalCode = first
			parsed.AddressLocality = rest
		} else {
			parsed.AddressLocality = lines[1]
		}
	}

	if len(lines) >= 3 {
		parsed.AddressCountry = lines[2]
	}

	return parsed
}

func splitFirstWhitespace(line string) (string, string) {
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx:])
}
