package dict

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hazyhaar/hanzi-registry/pkg/pinyin"
)

// ParseStats counts what a parser kept and skipped.
type ParseStats struct {
	Words       int
	Malformed   int
	Unconverted int // words left without a traditional form
}

// ParseCEDICT reads CC-CEDICT lines of the form
//
//	TRAD SIMP [pin1 yin1] /definition 1/definition 2/
//
// Comment and blank lines are ignored; malformed lines are counted and skipped.
func ParseCEDICT(r io.Reader, dropSurnames bool) ([]*CCWord, ParseStats, error) {
	var (
		words []*CCWord
		stats ParseStats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		w, ok := parseCEDICTLine(line)
		if !ok {
			stats.Malformed++
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read cedict: %w", err)
	}

	if dropSurnames {
		words = removeSurnames(words)
	}
	stats.Words = len(words)
	return words, stats, nil
}

func parseCEDICTLine(line string) (*CCWord, bool) {
	open := strings.IndexByte(line, '[')
	end := strings.IndexByte(line, ']')
	slash := strings.IndexByte(line, '/')
	if open < 0 || end < open || slash < end {
		return nil, false
	}

	chars := strings.Fields(line[:open])
	if len(chars) < 2 {
		return nil, false
	}

	var defs []string
	for _, d := range strings.Split(strings.Trim(strings.TrimSpace(line[slash:]), "/"), "/") {
		if d = strings.TrimSpace(d); d != "" {
			defs = append(defs, d)
		}
	}
	if len(defs) == 0 {
		return nil, false
	}

	numeric := strings.TrimSpace(line[open+1 : end])
	return &CCWord{Headword: Headword{
		Traditional:   chars[0],
		Simplified:    chars[1],
		NumericPinyin: numeric,
		Pinyin:        pinyin.DecodeLenient(numeric),
		Definitions:   defs,
	}}, true
}

// removeSurnames drops a "surname" entry when the next entry has the same
// traditional form.
func removeSurnames(words []*CCWord) []*CCWord {
	out := words[:0]
	for i, w := range words {
		if i+1 < len(words) && words[i+1].Traditional == w.Traditional && isSurnameEntry(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isSurnameEntry(w *CCWord) bool {
	for _, d := range w.Definitions {
		if strings.HasPrefix(d, "surname ") {
			return true
		}
	}
	return false
}
