package dict

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/hazyhaar/hanzi-registry/pkg/pinyin"
)

// hskJSONWord is one item of the complete-hsk-vocabulary JSON export.
type hskJSONWord struct {
	Simplified string   `json:"simplified"`
	Radical    string   `json:"radical"`
	Level      []string `json:"level"`
	Frequency  int      `json:"frequency"`
	POS        []string `json:"pos"`
	Forms      []struct {
		Traditional    string `json:"traditional"`
		Transcriptions struct {
			Pinyin  string `json:"pinyin"`
			Numeric string `json:"numeric"`
		} `json:"transcriptions"`
		Meanings []string `json:"meanings"`
	} `json:"forms"`
}

// ParseHSKJSON reads the complete-hsk-vocabulary layout. Level tags are
// "new-N" (HSK 3.0) and "old-N" (HSK 2.0). The first form supplies the readings and meanings.
func ParseHSKJSON(r io.Reader) ([]*HSKWord, ParseStats, error) {
	var raw []hskJSONWord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, ParseStats{}, fmt.Errorf("decode hsk json: %w", err)
	}

	var (
		words []*HSKWord
		stats ParseStats
	)
	for _, item := range raw {
		levels, ok := parseLevelTags(item.Level)
		if !ok || item.Simplified == "" || len(item.Forms) == 0 {
			stats.Malformed++
			continue
		}
		f := item.Forms[0]
		w := &HSKWord{
			Headword: Headword{
				Simplified:    item.Simplified,
				Traditional:   f.Traditional,
				Pinyin:        f.Transcriptions.Pinyin,
				NumericPinyin: f.Transcriptions.Numeric,
				Definitions:   slices.Clone(f.Meanings),
			},
			Levels:    levels,
			Frequency: item.Frequency,
			POS:       slices.Clone(item.POS),
			Radical:   item.Radical,
		}
		if !fillHeadword(&w.Headword) {
			stats.Unconverted++
		}
		words = append(words, w)
	}
	stats.Words = len(words)
	return words, stats, nil
}

// parseLevelTags maps ["new-1", "old-2"] to Levels. Unknown tags are ignored;
// ok is false when no level could be read.
func parseLevelTags(tags []string) (Levels, bool) {
	var l Levels
	for _, tag := range tags {
		prefix, num, found := strings.Cut(tag, "-")
		if !found {
			continue
		}
		v, err := ParseHSKVersion(prefix)
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		if n, err = v.NormalizeLevel(n); err != nil {
			continue
		}
		l.Set(v, lowestLevel(l.For(v), n))
	}
	return l, l.Old > 0 || l.New > 0
}

// HSK list header fields.
const (
	colSimplified  = "simplified"
	colTraditional = "traditional"
	colNumeric     = "numeric"
	colPinyin      = "pinyin"
	colDefinition  = "definition"
)

// ParseHSKTSV reads a delimited HSK list with a header row. Every word gets
// level for version v. Columns are located by header name, optionally
// renamed through columns; only simplified is required.
func ParseHSKTSV(r io.Reader, v HSKVersion, level int, format FormatSpec) ([]*HSKWord, ParseStats, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	if d := format.Delimiter; d != "" {
		cr.Comma = []rune(d)[0]
	}
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int)
	for _, field := range []string{colSimplified, colTraditional, colNumeric, colPinyin, colDefinition} {
		name := field
		if alias, ok := format.Columns[field]; ok && alias != "" {
			name = alias
		}
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), name) {
				idx[field] = i
				break
			}
		}
	}
	if _, ok := idx[colSimplified]; !ok {
		return nil, ParseStats{}, fmt.Errorf("column %q not found in header %v", colSimplified, header)
	}

	get := func(rec []string, field string) string {
		i, ok := idx[field]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		words []*HSKWord
		stats ParseStats
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read row: %w", err)
		}
		simp := get(rec, colSimplified)
		if simp == "" {
			stats.Malformed++
			continue
		}
		w := &HSKWord{Headword: Headword{
			Simplified:    simp,
			Traditional:   get(rec, colTraditional),
			NumericPinyin: get(rec, colNumeric),
			Pinyin:        get(rec, colPinyin),
			Definitions:   splitDefinitions(get(rec, colDefinition)),
		}}
		w.Levels.Set(v, level)
		if !fillHeadword(&w.Headword) {
			stats.Unconverted++
		}
		words = append(words, w)
	}
	stats.Words = len(words)
	return words, stats, nil
}

func splitDefinitions(s string) []string {
	var out []string
	for _, d := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '/' }) {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// fillHeadword derives whatever pinyin or traditional form the source left out.
// It reports false when the traditional form could not be derived; the
// registry logs the count per corpus.
func fillHeadword(h *Headword) bool {
	if h.NumericPinyin == "" {
		if h.Pinyin != "" {
			h.NumericPinyin = pinyin.Encode(h.Pinyin)
		} else {
			h.NumericPinyin = pinyin.FromHanzi(h.Simplified)
		}
	}
	if h.Pinyin == "" {
		h.Pinyin = pinyin.DecodeLenient(h.NumericPinyin)
	}
	if h.Traditional == "" {
		trad, err := traditionalOf(h.Simplified)
		if err != nil {
			return false
		}
		h.Traditional = trad
	}
	return true
}

// ReconcileHSK merges words that several lists share, keyed by simplified
// form and pinyin. Levels are united per version (lowest wins), the best
// frequency rank is kept and definitions are deduplicated. First-seen order
// is preserved.
func ReconcileHSK(words []*HSKWord) []*HSKWord {
	byKey := make(map[string]*HSKWord, len(words))
	out := make([]*HSKWord, 0, len(words))
	for _, w := range words {
		key := w.Simplified + "|" + searchKey(w.NumericPinyin)
		cur, ok := byKey[key]
		if !ok {
			c := *w
			c.Definitions = slices.Clone(w.Definitions)
			c.POS = slices.Clone(w.POS)
			byKey[key] = &c
			out = append(out, &c)
			continue
		}
		cur.Levels.merge(w.Levels)
		if w.Frequency > 0 && (cur.Frequency == 0 || w.Frequency < cur.Frequency) {
			cur.Frequency = w.Frequency
		}
		cur.Definitions = appendUnique(cur.Definitions, w.Definitions...)
		cur.POS = appendUnique(cur.POS, w.POS...)
		if cur.Traditional == "" {
			cur.Traditional = w.Traditional
		}
		if cur.Radical == "" {
			cur.Radical = w.Radical
		}
	}
	return out
}

func appendUnique(dst []string, src ...string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
