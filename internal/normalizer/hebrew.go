// Package normalizer cleans Hebrew place names coming from GIS layers and
// user input before they are matched against the rule tables or indexed for
// search. Normalization is conservative: it unifies encoding and punctuation
// noise but never rewrites words, so substring-containment matching against
// the statutory name tables keeps its exact semantics.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)
	// Hebrew points and cantillation marks (niqqud/teamim).
	reNiqqud = regexp.MustCompile("[֑-ׇ]")
	// Typographic quotes used inconsistently for geresh/gershayim.
	quoteReplacer = strings.NewReplacer(
		"׳", "'", // Hebrew geresh
		"״", "\"", // Hebrew gershayim
		"‘", "'",
		"’", "'",
		"“", "\"",
		"”", "\"",
	)
)

// PlaceNameNormalizer prepares Hebrew neighborhood, quarter and street names
// for matching.
type PlaceNameNormalizer struct{}

func NewPlaceNameNormalizer() *PlaceNameNormalizer {
	return &PlaceNameNormalizer{}
}

// Normalize returns the canonical matching form of a place name: NFC
// composed, niqqud stripped, quote variants unified, whitespace collapsed.
func (n *PlaceNameNormalizer) Normalize(name string) string {
	s := norm.NFC.String(name)
	s = reNiqqud.ReplaceAllString(s, "")
	s = quoteReplacer.Replace(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SearchKey returns a lowercase ASCII key for cache and index lookups.
// Hebrew is transliterated; anything non-alphanumeric collapses to a single
// underscore. Keys are stable but lossy, so they are never used for the
// statutory substring matching, only as identifiers.
func (n *PlaceNameNormalizer) SearchKey(name string) string {
	s := unidecode.Unidecode(n.Normalize(name))
	s = strings.ToLower(s)
	var b strings.Builder
	lastUnderscore := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}
