package dict

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Corpus kinds understood by LoadCorpus.
const (
	KindCEDICT  = "cedict"
	KindHSKJSON = "hsk-json"
	KindHSKTSV  = "hsk-tsv"
)

// Manifest describes one corpus directory: what it is and how to read it.
type Manifest struct {
	ID         string     `yaml:"id" json:"id"`
	Version    string     `yaml:"version" json:"version"`
	Kind       string     `yaml:"kind" json:"kind"`
	Source     string     `yaml:"source" json:"source"`
	SourceURL  string     `yaml:"source_url" json:"source_url,omitempty"`
	License    string     `yaml:"license" json:"license"`
	DataFile   string     `yaml:"data_file" json:"data_file"`
	HSKVersion string     `yaml:"hsk_version,omitempty" json:"hsk_version,omitempty"`
	HSKLevel   int        `yaml:"hsk_level,omitempty" json:"hsk_level,omitempty"`
	Format     FormatSpec `yaml:"format,omitempty" json:"-"`
}

// FormatSpec describes a delimited HSK list.
type FormatSpec struct {
	Delimiter string `yaml:"delimiter,omitempty"`
	Encoding  string `yaml:"encoding,omitempty"`
	// Columns maps a field (simplified, traditional, numeric, pinyin,
	// definition) to its header name when it differs from the field name.
	Columns map[string]string `yaml:"columns,omitempty"`
	// DropSurnames removes CC-CEDICT "surname" entries that precede a
	// common-noun entry for the same characters.
	DropSurnames bool `yaml:"drop_surnames,omitempty"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	switch m.Kind {
	case KindCEDICT, KindHSKJSON, KindHSKTSV:
	case "":
		return nil, fmt.Errorf("manifest %s: missing kind", path)
	default:
		return nil, fmt.Errorf("manifest %s: %w %q", path, ErrUnknownCorpusKind, m.Kind)
	}
	if m.DataFile == "" {
		m.DataFile = defaultDataFile(m.Kind)
	}
	if m.Kind == KindHSKTSV {
		v, err := ParseHSKVersion(m.HSKVersion)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
		lvl, err := v.NormalizeLevel(m.HSKLevel)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
		m.HSKVersion, m.HSKLevel = string(v), lvl
	}
	return &m, nil
}

func defaultDataFile(kind string) string {
	switch kind {
	case KindCEDICT:
		return "cedict_ts.u8"
	case KindHSKJSON:
		return "data.json"
	}
	return "data.tsv"
}
