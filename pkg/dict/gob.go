package dict

import (
	"encoding/gob"
	"fmt"
	"os"
)

type gobPayload struct {
	CC  []*CCWord
	HSK []*HSKWord
}

// loadGob replaces the corpus words with a gob-encoded snapshot.
func (c *Corpus) loadGob(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	var p gobPayload
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return fmt.Errorf("decode gob: %w", err)
	}
	c.CC, c.HSK = p.CC, p.HSK
	return nil
}

// SaveGob serializes the corpus words to path.
func SaveGob(path string, c *Corpus) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(gobPayload{CC: c.CC, HSK: c.HSK}); err != nil {
		return fmt.Errorf("encode gob: %w", err)
	}
	return f.Close()
}
