package dict

import (
	"slices"
	"unicode"
)

// Segment is one piece of a segmented text.
type Segment struct {
	Text  string `json:"text"`
	Words []Word `json:"-"` // nil when Text is not a known word
}

// Known reports whether the segment matched a dictionary word.
func (s Segment) Known() bool { return len(s.Words) > 0 }

// Segment splits text into known words by forward maximum matching. Runs
// of non-Han characters are kept together; unknown Han characters become
// single-character segments.
func (r *Registry) Segment(text string) ([]Segment, error) {
	s, err := r.current()
	if err != nil {
		return nil, err
	}
	return s.segment(text), nil
}

func (s *snapshot) segment(text string) []Segment {
	rs := []rune(text)
	var out []Segment
	for i := 0; i < len(rs); {
		if !unicode.Is(unicode.Han, rs[i]) {
			j := i + 1
			for j < len(rs) && !unicode.Is(unicode.Han, rs[j]) {
				j++
			}
			out = append(out, Segment{Text: string(rs[i:j])})
			i = j
			continue
		}

		n := min(s.maxLen, len(rs)-i)
		matched := false
		for ; n > 0; n-- {
			cand := string(rs[i : i+n])
			if !s.filter.TestString(cand) {
				continue
			}
			if words, ok := s.byHanzi[cand]; ok {
				out = append(out, Segment{Text: cand, Words: slices.Clone(words)})
				i += n
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, Segment{Text: string(rs[i])})
			i++
		}
	}
	return out
}
