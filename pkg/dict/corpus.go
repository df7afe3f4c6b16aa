package dict

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// GobFile is the pre-parsed snapshot written by the importer.
const GobFile = "data.gob"

// Corpus is one loaded corpus directory.
type Corpus struct {
	Manifest *Manifest  `json:"manifest"`
	Stats    ParseStats `json:"stats"`
	CC       []*CCWord  `json:"-"`
	HSK      []*HSKWord `json:"-"`
}

// Len returns the number of words in the corpus.
func (c *Corpus) Len() int { return len(c.CC) + len(c.HSK) }

// Words returns the corpus entries, HSK first.
func (c *Corpus) Words() []Word {
	out := make([]Word, 0, c.Len())
	for _, w := range c.HSK {
		out = append(out, w)
	}
	for _, w := range c.CC {
		out = append(out, w)
	}
	return out
}

// LoadCorpus reads dir/manifest.yaml and the corpus data. data.gob takes
// priority over the raw data file.
func LoadCorpus(dir string) (*Corpus, error) {
	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	gobPath := filepath.Join(dir, GobFile)
	if _, err := os.Stat(gobPath); err == nil {
		c := &Corpus{Manifest: m}
		if err := c.loadGob(gobPath); err != nil {
			return nil, fmt.Errorf("corpus %s: %w", m.ID, err)
		}
		c.Stats.Words = c.Len()
		return c, nil
	}

	c, err := ParseCorpus(m, filepath.Join(dir, m.DataFile))
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", m.ID, err)
	}
	return c, nil
}

// ParseCorpus parses the raw data file at path according to m.
func ParseCorpus(m *Manifest, path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	// Transcode non-UTF-8 encodings declared in the manifest.
	var r io.Reader = f
	if enc := m.Format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		r = transform.NewReader(f, e.NewDecoder())
	}

	c := &Corpus{Manifest: m}
	switch m.Kind {
	case KindCEDICT:
		c.CC, c.Stats, err = ParseCEDICT(r, m.Format.DropSurnames)
	case KindHSKJSON:
		c.HSK, c.Stats, err = ParseHSKJSON(r)
	case KindHSKTSV:
		var v HSKVersion
		if v, err = ParseHSKVersion(m.HSKVersion); err == nil {
			c.HSK, c.Stats, err = ParseHSKTSV(r, v, m.HSKLevel, m.Format)
		}
	default:
		err = fmt.Errorf("%w %q", ErrUnknownCorpusKind, m.Kind)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
