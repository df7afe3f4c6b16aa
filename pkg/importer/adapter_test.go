package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
)

const sampleCEDICT = `# CC-CEDICT
何 何 [He2] /surname He/
何 何 [he2] /what/how/
中國 中国 [Zhong1 guo2] /China/
你好 你好 [ni3 hao3] /hello/hi/
`

const sampleHSK = `[
 {"simplified":"爱","radical":"爫","level":["new-1","old-1"],"frequency":150,"pos":["v"],
  "forms":[{"traditional":"愛","transcriptions":{"pinyin":"ài","numeric":"ai4"},"meanings":["to love"]}]}
]`

func TestRegisteredAdapters(t *testing.T) {
	all := All()
	if len(all) < 2 {
		t.Fatalf("All = %d adapters, want at least 2", len(all))
	}
	for _, id := range []string{"cc-cedict", "hsk-complete"} {
		a, err := Get(id)
		if err != nil {
			t.Fatalf("Get(%q): %v", id, err)
		}
		if a.DefaultURL() == "" || a.License() == "" || a.CorpusID() == "" {
			t.Errorf("%s: incomplete adapter metadata", id)
		}
	}
	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown adapter")
	}
}

func TestCEDICTAdapter_Import(t *testing.T) {
	gz := gzipBytes(t, sampleCEDICT)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(gz)
	}))
	defer ts.Close()

	out := t.TempDir()
	a, _ := Get("cc-cedict")
	c, err := a.Import(context.Background(), ts.URL+"/cedict.txt.gz", out)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	// The surname entry for 何 is dropped.
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}

	corpusDir := filepath.Join(out, "cc-cedict")
	for _, f := range []string{"manifest.yaml", dict.GobFile, "cedict_ts.u8"} {
		if _, err := os.Stat(filepath.Join(corpusDir, f)); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "_download")); !os.IsNotExist(err) {
		t.Error("download dir not cleaned up")
	}

	loaded, err := dict.LoadCorpus(corpusDir)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(loaded.CC) != 3 || loaded.Manifest.SourceURL != ts.URL+"/cedict.txt.gz" {
		t.Errorf("loaded %d words from %q", len(loaded.CC), loaded.Manifest.SourceURL)
	}
}

func TestHSKCompleteAdapter_Import(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleHSK))
	}))
	defer ts.Close()

	out := t.TempDir()
	a, _ := Get("hsk-complete")
	c, err := a.Import(context.Background(), ts.URL, out)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(c.HSK) != 1 {
		t.Fatalf("HSK = %d, want 1", len(c.HSK))
	}

	reg := dict.NewRegistry(out, nil)
	words, err := reg.Lookup("爱")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("Lookup(爱) = %d, want 1", len(words))
	}
	if n, ok := words[0].Level(dict.HSK3); !ok || n != 1 {
		t.Errorf("Level = %d, %v", n, ok)
	}
}

func TestHSKCompleteAdapter_BadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>rate limited</html>"))
	}))
	defer ts.Close()

	out := t.TempDir()
	a, _ := Get("hsk-complete")
	if _, err := a.Import(context.Background(), ts.URL, out); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := os.Stat(filepath.Join(out, "hsk-complete", "manifest.yaml")); !os.IsNotExist(err) {
		t.Error("manifest written for a failed import")
	}
}
