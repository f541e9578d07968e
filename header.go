package conserje

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader turns a column header into its canonical snake_case field
// name. An empty result means the column is not converted.
func NormalizeHeader(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ToLower(stripDiacritics(s))

	var b strings.Builder
	underscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		case r == '_':
			if !underscore {
				b.WriteRune(r)
			}
			underscore = true
		}
	}

	name := strings.Trim(b.String(), "_")
	if alias, ok := HeaderAliases[name]; ok {
		return alias
	}
	return name
}

// NormalizeHeaders normalizes a whole header row.
func NormalizeHeaders(row []string) []string {
	headers := make([]string, len(row))
	for i, h := range row {
		headers[i] = NormalizeHeader(h)
	}
	return headers
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
