package textfield

import (
	"regexp"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var digitPattern = regexp.MustCompile(`[0-9]`)

// ContainsDigit reports whether s has at least one ASCII decimal digit.
func ContainsDigit(s string) bool {
	return digitPattern.MatchString(s)
}

// Capitalize upper-cases s without locale-specific rules.
func Capitalize(s string) string {
	// Casers carry state; build one per call.
	return cases.Upper(language.Und).String(s)
}

// CharacterCount counts user-perceived characters (extended grapheme
// clusters): a flag, a skin-toned emoji or a decomposed syllable counts once.
func CharacterCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
