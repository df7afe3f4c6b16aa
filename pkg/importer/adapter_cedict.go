package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
)

func init() {
	Register(&cedictAdapter{})
}

type cedictAdapter struct{}

func (a *cedictAdapter) ID() string          { return "cc-cedict" }
func (a *cedictAdapter) CorpusID() string    { return "cc-cedict" }
func (a *cedictAdapter) Description() string { return "CC-CEDICT Chinese-English dictionary (MDBG)" }
func (a *cedictAdapter) DefaultURL() string {
	return "https://www.mdbg.net/chinese/export/cedict/cedict_1_0_ts_utf-8_mdbg.txt.gz"
}
func (a *cedictAdapter) License() string { return "CC BY-SA 4.0" }

func (a *cedictAdapter) Import(ctx context.Context, sourceURL, outputDir string) (*dict.Corpus, error) {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return nil, err
	}
	defer os.RemoveAll(dlDir)

	gzPath := filepath.Join(dlDir, "cedict.txt.gz")
	slog.Info("downloading", "source", a.ID(), "url", sourceURL)
	if err := downloadFile(ctx, sourceURL, gzPath); err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	corpusDir := filepath.Join(outputDir, a.CorpusID())
	if err := ensureDir(corpusDir); err != nil {
		return nil, err
	}

	m := &dict.Manifest{
		ID:        a.CorpusID(),
		Version:   time.Now().UTC().Format("2006-01-02"),
		Kind:      dict.KindCEDICT,
		Source:    "CC-CEDICT (MDBG export)",
		SourceURL: sourceURL,
		License:   a.License(),
		DataFile:  "cedict_ts.u8",
		Format:    dict.FormatSpec{DropSurnames: true},
	}
	if err := gunzipFile(gzPath, filepath.Join(corpusDir, m.DataFile)); err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	return buildCorpus(corpusDir, m)
}
