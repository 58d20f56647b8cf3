package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name.
// Spanish characters are transliterated to ASCII equivalents.
//
// Examples:
//   - "Pan de Muerto" → "pan-de-muerto"
//   - "Concha Española" → "concha-espanola"
//   - "Café   con Leche!" → "cafe-con-leche"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))

	// Transliterate Spanish characters to ASCII
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
		"ñ", "n", "ü", "u",
	)
	slug = replacer.Replace(slug)

	// Replace any non-alphanumeric characters with hyphens
	slug = slugRegexp.ReplaceAllString(slug, "-")

	// Trim leading and trailing hyphens
	slug = strings.Trim(slug, "-")

	return slug
}
