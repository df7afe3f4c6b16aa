package dict

import (
	"strings"
	"unicode"

	"github.com/hazyhaar/hanzi-registry/pkg/pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText lowercases s and strips combining marks (café -> cafe). Used for
// definitions, which carry the occasional accented loanword.
func foldText(s string) string {
	// transform.Chain keeps state, so each call builds its own.
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(strip, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// searchKey puts numeric pinyin in the form NormalizeQuery produces:
// lowercase, u: and ü spelled v, one space after each tone digit.
func searchKey(numeric string) string {
	s := strings.ToLower(numeric)
	s = strings.ReplaceAll(s, "u:", "v")
	s = strings.ReplaceAll(s, "ü", "v")
	return strings.Join(strings.Fields(pinyin.SplitNumeric(s)), " ")
}

// stripDigits removes tone numbers from a search key.
func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}
