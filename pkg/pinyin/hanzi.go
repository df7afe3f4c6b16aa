package pinyin

import (
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

var hanziArgs = func() gopinyin.Args {
	a := gopinyin.NewArgs()
	a.Style = gopinyin.Tone3
	return a
}()

// FromHanzi returns the numeric pinyin of the Han characters in s, one
// syllable per character, neutral syllables marked 5. Characters without a
// reading are skipped. Polyphonic characters take their most common reading.
func FromHanzi(s string) string {
	syllables := gopinyin.LazyPinyin(s, hanziArgs)
	out := syllables[:0]
	for _, syl := range syllables {
		if syl == "" {
			continue
		}
		if last := syl[len(syl)-1]; last < '1' || last > '5' {
			syl += "5"
		}
		out = append(out, syl)
	}
	return strings.Join(out, " ")
}
