package pinyin

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Initial and final inventories, longest alternatives first so that the
// leftmost-first regexp prefers "zh" over "z" and "iang" over "ia".
var (
	initials = []string{"zh", "ch", "sh", "b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h", "j", "q", "x", "r", "z", "c", "s", "y", "w"}
	finals   = []string{
		"iang", "iong", "uang", "ueng",
		"ang", "eng", "ing", "ong", "ian", "iao", "uai", "uan", "üan", "van",
		"ai", "ao", "an", "ei", "en", "er", "ia", "ie", "in", "iu", "ou", "ua", "uo", "ui", "un", "ue", "üe", "ve", "ün", "vn",
		"a", "o", "e", "i", "u", "ü", "v",
	}
	syllableRe = regexp.MustCompile("(?:" + strings.Join(initials, "|") + ")?(?:" + strings.Join(finals, "|") + ")")
)

// NormalizeQuery canonicalizes free-text search input into numeric-tone pinyin.
//
// Input containing Hanzi is only trimmed. Anything else is NFC-composed,
// width-folded, lowercased and trimmed; tone marks become trailing digits,
// ü becomes v, and run-together numeric syllables are split on spaces.
// It never fails: unrecognized segments pass through.
func NormalizeQuery(q string) string {
	if HasHan(q) {
		return strings.TrimSpace(q)
	}

	s := norm.NFC.String(width.Fold.String(q))
	s = strings.TrimSpace(strings.ToLower(s))

	if strings.ContainsFunc(s, isAccented) {
		s = strings.Join(numericSyllables(s, false), " ")
	}

	s = strings.ReplaceAll(s, "ü", "v")

	if strings.ContainsAny(s, "12345") && !strings.Contains(s, " ") {
		s = SplitNumeric(s)
	}
	return s
}

// Encode converts tone-mark pinyin into numeric pinyin, keeping case.
// Syllables without a mark get the neutral digit 5 ("nǐmen" -> "ni3 men5").
func Encode(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return strings.Join(numericSyllables(s, true), " ")
}

// StripTones removes tone digits from numeric pinyin ("ni3 hao3" -> "ni hao").
func StripTones(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '1' && r <= '5' {
			return -1
		}
		return r
	}, s)
}

// numericSyllables splits every whitespace-separated field of s at syllable
// boundaries and moves each syllable's first tone mark to a trailing digit.
func numericSyllables(s string, neutral bool) []string {
	var out []string
	for _, field := range strings.Fields(s) {
		for _, c := range splitSyllables(field) {
			out = append(out, encodeSyllable(c, neutral))
		}
	}
	return out
}

// encodeSyllable replaces the first tone mark in c by its base vowel and
// appends the tone digit. Any further marks in the same candidate are
// dropped. With neutral set, an unmarked pinyin syllable gets 5.
func encodeSyllable(c string, neutral bool) string {
	runes := []rune(c)
	tone := 0
	for i, r := range runes {
		if base, t, ok := Unmark(r); ok {
			runes[i] = base
			if tone == 0 {
				tone = t
			}
		}
	}
	if tone > 0 {
		if last := runes[len(runes)-1]; last >= '1' && last <= '5' {
			return string(runes)
		}
		return string(runes) + string(rune('0'+tone))
	}
	if neutral && syllableRe.MatchString(strings.ToLower(c)) && !strings.ContainsAny(c, "012345") {
		return c + "5"
	}
	return c
}

// splitSyllables segments a string without whitespace at pinyin syllable
// boundaries. Matching runs on a tone-stripped copy; unmatched runs that
// carry letters or digits are kept as their own candidates, separators
// such as apostrophes are dropped.
func splitSyllables(s string) []string {
	runes := []rune(s)
	var base strings.Builder
	byteToRune := make(map[int]int, len(runes)+1)
	for i, r := range runes {
		byteToRune[base.Len()] = i
		if b, _, ok := Unmark(r); ok {
			r = b
		}
		base.WriteRune(unicode.ToLower(r))
	}
	byteToRune[base.Len()] = len(runes)

	var out []string
	keep := func(from, to int) {
		seg := string(runes[from:to])
		if strings.IndexFunc(seg, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			out = append(out, seg)
		}
	}

	prev := 0
	for _, loc := range syllableRe.FindAllStringIndex(base.String(), -1) {
		start, end := byteToRune[loc[0]], byteToRune[loc[1]]
		if start > prev {
			keep(prev, start)
		}
		// A trailing tone digit belongs to the syllable it follows.
		for end < len(runes) && runes[end] >= '1' && runes[end] <= '5' {
			end++
		}
		out = append(out, string(runes[start:end]))
		prev = end
	}
	if prev < len(runes) {
		keep(prev, len(runes))
	}
	return out
}

// SplitNumeric inserts a space after every tone digit directly followed by a
// letter, so "ai4hao4" becomes "ai4 hao4".
func SplitNumeric(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + len(runes)/2)
	for i, r := range runes {
		b.WriteRune(r)
		if unicode.IsDigit(r) && i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
