package dict

import (
	"strings"

	"github.com/hazyhaar/hanzi-registry/pkg/pinyin"
)

// Kind identifies the corpus a word comes from.
type Kind string

const (
	KindCC  Kind = "cc"
	KindHSK Kind = "hsk"
)

// Word is any entry of a loaded corpus. Transports and search only go
// through this interface.
type Word interface {
	Kind() Kind
	Head() *Headword
	DisplayText() string
	DisplayPinyin() string
	DisplayDefinition() string
	// Level returns the HSK level for version, if the word has one.
	Level(v HSKVersion) (int, bool)
	// Rank returns the frequency rank (1 = most frequent), if known.
	Rank() (int, bool)
}

// Headword holds the fields shared by every corpus.
type Headword struct {
	Simplified    string   `json:"simplified"`
	Traditional   string   `json:"traditional,omitempty"`
	Pinyin        string   `json:"pinyin"`
	NumericPinyin string   `json:"numeric_pinyin"`
	Definitions   []string `json:"definitions"`
}

func (h *Headword) Head() *Headword { return h }

func (h *Headword) DisplayText() string { return h.Simplified }

func (h *Headword) DisplayPinyin() string {
	if h.Pinyin != "" {
		return h.Pinyin
	}
	return pinyin.DecodeLenient(h.NumericPinyin)
}

func (h *Headword) DisplayDefinition() string {
	return strings.Join(h.Definitions, "; ")
}

// CCWord is a CC-CEDICT entry.
type CCWord struct {
	Headword
}

func (w *CCWord) Kind() Kind                   { return KindCC }
func (w *CCWord) Level(HSKVersion) (int, bool) { return 0, false }
func (w *CCWord) Rank() (int, bool)            { return 0, false }

// HSKWord is an entry of an HSK vocabulary list.
type HSKWord struct {
	Headword
	Levels    Levels   `json:"levels"`
	Frequency int      `json:"frequency,omitempty"`
	POS       []string `json:"pos,omitempty"`
	Radical   string   `json:"radical,omitempty"`
}

func (w *HSKWord) Kind() Kind { return KindHSK }

func (w *HSKWord) Level(v HSKVersion) (int, bool) {
	n := w.Levels.For(v)
	return n, n > 0
}

func (w *HSKWord) Rank() (int, bool) {
	return w.Frequency, w.Frequency > 0
}

// WordView is the JSON shape of a Word used by the transports.
type WordView struct {
	Kind        Kind    `json:"kind"`
	Simplified  string  `json:"simplified"`
	Traditional string  `json:"traditional,omitempty"`
	Pinyin      string  `json:"pinyin"`
	Numeric     string  `json:"numeric_pinyin"`
	Definition  string  `json:"definition"`
	Levels      *Levels `json:"levels,omitempty"`
	Frequency   int     `json:"frequency,omitempty"`
}

// View flattens a Word for serialization.
func View(w Word) WordView {
	h := w.Head()
	v := WordView{
		Kind:        w.Kind(),
		Simplified:  h.Simplified,
		Traditional: h.Traditional,
		Pinyin:      w.DisplayPinyin(),
		Numeric:     h.NumericPinyin,
		Definition:  w.DisplayDefinition(),
	}
	old, hasOld := w.Level(HSK2)
	cur, hasNew := w.Level(HSK3)
	if hasOld || hasNew {
		v.Levels = &Levels{Old: old, New: cur}
	}
	if rank, ok := w.Rank(); ok {
		v.Frequency = rank
	}
	return v
}

// Views flattens a slice of words.
func Views(words []Word) []WordView {
	out := make([]WordView, len(words))
	for i, w := range words {
		out[i] = View(w)
	}
	return out
}
