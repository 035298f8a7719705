package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// TeamKey canonicalizes a club team label for filtering. The result is
// insensitive to case, diacritics and whitespace, and the function is
// idempotent: TeamKey(TeamKey(x)) == TeamKey(x).
func TeamKey(teamType string) string {
	stripped, _, err := transform.String(deaccent, teamType)
	if err != nil {
		stripped = teamType
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
