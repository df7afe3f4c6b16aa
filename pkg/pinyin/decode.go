package pinyin

import (
	"errors"
	"strings"
	"unicode"
)

// Decode converts numeric-tone pinyin into tone-mark pinyin.
//
// Letters are matched case-insensitively and keep their case in the output
// ("Bei3 jing1" -> "Běi jīng"). "u:" and "v" denote ü. A misplaced colon
// aborts with a *SyntaxError wrapping ErrInvalidColon.
//
// Syllables whose vowels have no placement rule are copied untoned with their
// digit, and reported through a returned error wrapping ErrAmbiguousTone; the
// returned string is still complete in that case.
func Decode(s string) (string, error) {
	var (
		out  strings.Builder
		buf  []rune
		errs []error
	)
	out.Grow(len(s) + len(s)/2)

	flush := func() {
		out.WriteString(string(buf))
		buf = buf[:0]
	}

	for off, r := range s {
		switch {
		case unicode.IsLetter(r):
			buf = append(buf, r)

		case r == ':':
			n := len(buf)
			if n == 0 || (buf[n-1] != 'u' && buf[n-1] != 'U') {
				return "", &SyntaxError{Offset: off, Err: ErrInvalidColon}
			}
			if buf[n-1] == 'u' {
				buf[n-1] = 'ü'
			} else {
				buf[n-1] = 'Ü'
			}

		case r >= '1' && r <= '5' && len(buf) > 0:
			tone := int(r - '0')
			switch applyTone(buf, tone) {
			case toneApplied:
			case toneNoVowel:
				buf = append(buf, r)
			case toneAmbiguous:
				errs = append(errs, &ToneError{Syllable: string(buf), Tone: tone, Offset: off})
				buf = append(buf, r)
			}
			flush()

		default:
			flush()
			out.WriteRune(r)
		}
	}
	flush()

	return out.String(), errors.Join(errs...)
}

// DecodeLenient is Decode for display paths: a colon error returns s as-is
// and ambiguous syllables are left untoned.
func DecodeLenient(s string) string {
	out, err := Decode(s)
	if errors.Is(err, ErrInvalidColon) {
		return s
	}
	return out
}

type toneResult int

const (
	toneApplied toneResult = iota
	toneNoVowel
	toneAmbiguous
)

// applyTone marks the nucleus of syl in place.
func applyTone(syl []rune, tone int) toneResult {
	var vowels []int
	for i, r := range syl {
		if isVowel(r) {
			vowels = append(vowels, i)
		}
	}
	if len(vowels) == 0 {
		if tone == 5 {
			return toneApplied
		}
		return toneNoVowel
	}

	idx := vowels[0]
	if len(vowels) > 1 && tone != 5 {
		idx = pickNucleus(syl, vowels)
	}
	if idx < 0 {
		return toneAmbiguous
	}

	for _, i := range vowels {
		switch syl[i] {
		case 'v':
			syl[i] = 'ü'
		case 'V':
			syl[i] = 'Ü'
		}
	}
	if tone == 5 {
		return toneApplied
	}

	marked, _ := Mark(unicode.ToLower(syl[idx]), tone)
	if unicode.IsUpper(syl[idx]) {
		marked = unicode.ToUpper(marked)
	}
	syl[idx] = marked
	return toneApplied
}

// pickNucleus chooses the vowel carrying the mark when there are several:
// a, then o, then e; otherwise the second vowel of a trailing "ui" or "iu".
// It returns -1 when none of those rules apply.
func pickNucleus(syl []rune, vowels []int) int {
	for _, want := range []rune{'a', 'o', 'e'} {
		for _, i := range vowels {
			if unicode.ToLower(syl[i]) == want {
				return i
			}
		}
	}

	n := len(vowels)
	first, last := unicode.ToLower(syl[vowels[n-2]]), unicode.ToLower(syl[vowels[n-1]])
	if vowels[n-1] != len(syl)-1 || vowels[n-2] != vowels[n-1]-1 {
		return -1
	}
	if (first == 'u' && last == 'i') || (first == 'i' && last == 'u') {
		return vowels[n-1]
	}
	return -1
}
