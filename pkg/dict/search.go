package dict

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hazyhaar/hanzi-registry/pkg/pinyin"
)

// Search keeps the words matching query, in input order. The query is
// normalized first, so "nǐ hǎo", "ni3hao3" and "NI HAO" are equivalent.
// A query without tone numbers also matches regardless of tone. An empty
// query keeps every word.
func Search(words []Word, query string) []Word {
	m := newMatcher(query)
	if m.empty() {
		return slices.Clone(words)
	}
	out := make([]Word, 0)
	for _, w := range words {
		if m.match(w) {
			out = append(out, w)
		}
	}
	return out
}

type matcher struct {
	raw      string // lowercase, trimmed
	norm     string // NormalizeQuery output
	folded   string // raw without accents, for definitions
	toneless bool
	compact  string // norm without spaces
}

func newMatcher(query string) *matcher {
	m := &matcher{
		raw:  strings.ToLower(strings.TrimSpace(query)),
		norm: pinyin.NormalizeQuery(query),
	}
	m.folded = foldText(m.raw)
	m.toneless = !strings.ContainsAny(m.norm, "0123456789")
	m.compact = strings.ReplaceAll(m.norm, " ", "")
	return m
}

func (m *matcher) empty() bool { return m.raw == "" && m.norm == "" }

func (m *matcher) contains(field string) bool {
	return (m.raw != "" && strings.Contains(field, m.raw)) ||
		(m.norm != "" && strings.Contains(field, m.norm))
}

func (m *matcher) match(w Word) bool {
	h := w.Head()
	if m.contains(h.Simplified) || m.contains(h.Traditional) {
		return true
	}
	if m.contains(strings.ToLower(w.DisplayPinyin())) {
		return true
	}

	key := searchKey(h.NumericPinyin)
	if m.contains(key) {
		return true
	}
	if m.toneless && m.norm != "" {
		bare := stripDigits(key)
		if strings.Contains(bare, m.norm) || strings.Contains(strings.ReplaceAll(bare, " ", ""), m.compact) {
			return true
		}
	}

	if m.folded != "" {
		for _, d := range h.Definitions {
			if strings.Contains(foldText(d), m.folded) {
				return true
			}
		}
	}
	return false
}

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	SortNone       SortKey = ""
	SortFrequency  SortKey = "frequency"
	SortAlphabetic SortKey = "alphabetic"
	SortLevelAsc   SortKey = "level-asc"
	SortLevelDesc  SortKey = "level-desc"
)

// ParseSortKey accepts the SortKey names plus a few short aliases.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "frequency", "freq":
		return SortFrequency, nil
	case "alphabetic", "alpha", "pinyin":
		return SortAlphabetic, nil
	case "level-asc", "level", "hsk":
		return SortLevelAsc, nil
	case "level-desc":
		return SortLevelDesc, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Sort orders words in place. It is stable: equal words keep their input
// order. Words without a rank or without a level for v sort last.
func Sort(words []Word, by SortKey, v HSKVersion) {
	switch by {
	case SortFrequency:
		slices.SortStableFunc(words, func(a, b Word) int {
			ra, oka := a.Rank()
			rb, okb := b.Rank()
			return compareOptional(ra, oka, rb, okb)
		})
	case SortAlphabetic:
		slices.SortStableFunc(words, func(a, b Word) int {
			ka, kb := searchKey(a.Head().NumericPinyin), searchKey(b.Head().NumericPinyin)
			if c := strings.Compare(stripDigits(ka), stripDigits(kb)); c != 0 {
				return c
			}
			if c := strings.Compare(ka, kb); c != 0 {
				return c
			}
			return strings.Compare(a.Head().Simplified, b.Head().Simplified)
		})
	case SortLevelAsc, SortLevelDesc:
		desc := by == SortLevelDesc
		slices.SortStableFunc(words, func(a, b Word) int {
			la, oka := a.Level(v)
			lb, okb := b.Level(v)
			if desc && oka && okb {
				return lb - la
			}
			return compareOptional(la, oka, lb, okb)
		})
	}
}

// compareOptional orders present values ascending, absent ones last.
func compareOptional(a int, aok bool, b int, bok bool) int {
	switch {
	case aok && bok:
		return a - b
	case aok:
		return -1
	case bok:
		return 1
	}
	return 0
}
