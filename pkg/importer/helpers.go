package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
)

const downloadAttempts = 3

// downloadFile downloads url to dest with retries and timeout.
func downloadFile(ctx context.Context, url, dest string) error {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = 10 * time.Minute
	client.RetryMax = downloadAttempts - 1
	client.RetryWaitMin = time.Second
	client.RetryWaitMax = 4 * time.Second
	client.Logger = slog.Default()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return f.Close()
}

// gunzipFile decompresses the gzip file src into dest.
func gunzipFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("read gzip header: %w", err)
	}
	defer zr.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, zr); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", src, err)
	}
	return out.Close()
}

// buildCorpus parses the raw data file in dir, writes data.gob and finally
// the manifest, which makes the corpus visible to the registry.
func buildCorpus(dir string, m *dict.Manifest) (*dict.Corpus, error) {
	c, err := dict.ParseCorpus(m, filepath.Join(dir, m.DataFile))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	slog.Info("corpus parsed", "corpus", m.ID, "words", c.Len(), "malformed", c.Stats.Malformed, "unconverted", c.Stats.Unconverted)

	if err := dict.SaveGob(filepath.Join(dir, dict.GobFile), c); err != nil {
		return nil, fmt.Errorf("save gob: %w", err)
	}
	if err := writeManifest(dir, m); err != nil {
		return nil, err
	}
	return c, nil
}

// writeManifest writes a Manifest as YAML to dir/manifest.yaml.
func writeManifest(dir string, m *dict.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0o644)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
