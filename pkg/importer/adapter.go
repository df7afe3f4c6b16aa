package importer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
)

// Adapter defines a corpus source that downloads, parses, and serializes a
// corpus into gob format.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "cc-cedict").
	ID() string
	// CorpusID returns the target corpus directory and manifest ID.
	CorpusID() string
	Description() string
	// DefaultURL returns the source URL used when seeding the database.
	DefaultURL() string
	License() string
	// Import downloads the source from sourceURL and writes the raw file,
	// data.gob and manifest.yaml into outputDir/CorpusID().
	Import(ctx context.Context, sourceURL, outputDir string) (*dict.Corpus, error)
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
