// Package pinyin converts between numeric-tone pinyin (ni3 hao3) and tone-mark
// pinyin (nǐ hǎo), and canonicalizes search queries into the numeric form.
package pinyin

import "unicode"

// toneMarks maps a nucleus vowel to its variants for tones 1..5.
// Tone 5 (neutral) is the bare vowel.
var toneMarks = map[rune][5]rune{
	'a': {'ā', 'á', 'ǎ', 'à', 'a'},
	'o': {'ō', 'ó', 'ǒ', 'ò', 'o'},
	'e': {'ē', 'é', 'ě', 'è', 'e'},
	'i': {'ī', 'í', 'ǐ', 'ì', 'i'},
	'u': {'ū', 'ú', 'ǔ', 'ù', 'u'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ', 'ü'},
}

// toned is one entry of the accent table: the base vowel and its tone digit.
type toned struct {
	base rune
	tone int
}

// accentTones is the inverse of toneMarks for tones 1..4.
var accentTones = func() map[rune]toned {
	m := make(map[rune]toned, len(toneMarks)*4)
	for base, marks := range toneMarks {
		for i := 0; i < 4; i++ {
			m[marks[i]] = toned{base: base, tone: i + 1}
		}
	}
	return m
}()

// Mark returns the tone-marked form of a lowercase nucleus vowel.
// v is accepted for ü. ok is false for non-vowels or tones outside 1..5.
func Mark(vowel rune, tone int) (rune, bool) {
	if vowel == 'v' {
		vowel = 'ü'
	}
	marks, found := toneMarks[vowel]
	if !found || tone < 1 || tone > 5 {
		return vowel, false
	}
	return marks[tone-1], true
}

// Unmark splits a tone-marked vowel into its base vowel and tone digit.
// Upper-case marks are accepted; the base keeps the input's case.
func Unmark(r rune) (base rune, tone int, ok bool) {
	t, found := accentTones[unicode.ToLower(r)]
	if !found {
		return r, 0, false
	}
	if unicode.IsUpper(r) {
		return unicode.ToUpper(t.base), t.tone, true
	}
	return t.base, t.tone, true
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'o', 'e', 'i', 'u', 'ü', 'v':
		return true
	}
	return false
}

func isAccented(r rune) bool {
	_, ok := accentTones[unicode.ToLower(r)]
	return ok
}

// HasHan reports whether s contains a CJK Unified Ideograph (U+4E00–U+9FFF).
func HasHan(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
