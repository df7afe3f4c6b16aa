package importer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
)

func init() {
	Register(&hskCompleteAdapter{})
}

// hskCompleteAdapter imports the complete-hsk-vocabulary list, which carries
// both HSK 2.0 and HSK 3.0 levels for every word.
type hskCompleteAdapter struct{}

func (a *hskCompleteAdapter) ID() string       { return "hsk-complete" }
func (a *hskCompleteAdapter) CorpusID() string { return "hsk-complete" }
func (a *hskCompleteAdapter) Description() string {
	return "Complete HSK vocabulary, HSK 2.0 and 3.0 levels"
}
func (a *hskCompleteAdapter) DefaultURL() string {
	return "https://raw.githubusercontent.com/drkameleon/complete-hsk-vocabulary/main/complete.json"
}
func (a *hskCompleteAdapter) License() string { return "MIT" }

func (a *hskCompleteAdapter) Import(ctx context.Context, sourceURL, outputDir string) (*dict.Corpus, error) {
	corpusDir := filepath.Join(outputDir, a.CorpusID())
	if err := ensureDir(corpusDir); err != nil {
		return nil, err
	}

	m := &dict.Manifest{
		ID:        a.CorpusID(),
		Version:   time.Now().UTC().Format("2006-01-02"),
		Kind:      dict.KindHSKJSON,
		Source:    "complete-hsk-vocabulary",
		SourceURL: sourceURL,
		License:   a.License(),
		DataFile:  "data.json",
	}

	slog.Info("downloading", "source", a.ID(), "url", sourceURL)
	if err := downloadFile(ctx, sourceURL, filepath.Join(corpusDir, m.DataFile)); err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	return buildCorpus(corpusDir, m)
}
