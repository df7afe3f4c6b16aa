package dict

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bloom/v3"
)

// Registry holds every loaded corpus and serves word queries. It loads
// lazily on first use; Reload swaps in a fresh snapshot.
type Registry struct {
	mu     sync.RWMutex
	loadMu sync.Mutex
	loaded atomic.Bool

	dir    string
	logger *slog.Logger
	snap   *snapshot
}

// snapshot is an immutable view of the loaded corpora.
type snapshot struct {
	corpora map[string]*Corpus
	words   []Word // reconciled HSK words, then CC-CEDICT
	byHanzi map[string][]Word
	filter  *bloom.BloomFilter
	maxLen  int // longest headword, in runes
}

// NewRegistry creates an empty registry for the corpus directory dir.
func NewRegistry(dir string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{dir: dir, logger: logger, snap: emptySnapshot()}
}

// Dir returns the corpus directory.
func (r *Registry) Dir() string { return r.dir }

// Load scans the corpus directory, loads every corpus and swaps the result
// in. On error the current snapshot is kept.
func (r *Registry) Load() error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()
	return r.loadLocked()
}

func (r *Registry) loadLocked() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("read corpus dir %s: %w", r.dir, err)
	}

	corpora := make(map[string]*Corpus)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(r.dir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "manifest.yaml")); err != nil {
			continue
		}
		c, err := LoadCorpus(dir)
		if err != nil {
			return fmt.Errorf("load corpus %s: %w", entry.Name(), err)
		}
		if c.Stats.Malformed > 0 {
			r.logger.Warn("malformed entries skipped", "corpus", c.Manifest.ID, "malformed", c.Stats.Malformed)
		}
		if c.Stats.Unconverted > 0 {
			r.logger.Warn("traditional conversion failed", "corpus", c.Manifest.ID, "words", c.Stats.Unconverted)
		}
		corpora[c.Manifest.ID] = c
	}

	snap := buildSnapshot(corpora)
	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
	r.loaded.Store(true)

	r.logger.Info("corpora loaded", "corpora", len(corpora), "words", len(snap.words))
	return nil
}

// Ensure loads the registry if nothing has been loaded yet.
func (r *Registry) Ensure() error {
	if r.loaded.Load() {
		return nil
	}
	r.loadMu.Lock()
	defer r.loadMu.Unlock()
	if r.loaded.Load() {
		return nil
	}
	return r.loadLocked()
}

// Reload reloads every corpus from disk (hot reload).
func (r *Registry) Reload() error {
	return r.Load()
}

func (r *Registry) current() (*snapshot, error) {
	if err := r.Ensure(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap, nil
}

func emptySnapshot() *snapshot {
	return &snapshot{
		corpora: map[string]*Corpus{},
		byHanzi: map[string][]Word{},
		filter:  bloom.NewWithEstimates(1, 0.01),
	}
}

func buildSnapshot(corpora map[string]*Corpus) *snapshot {
	ids := make([]string, 0, len(corpora))
	for id := range corpora {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var (
		hsk []*HSKWord
		cc  []*CCWord
	)
	for _, id := range ids {
		hsk = append(hsk, corpora[id].HSK...)
		cc = append(cc, corpora[id].CC...)
	}
	hsk = ReconcileHSK(hsk)

	s := &snapshot{
		corpora: corpora,
		words:   make([]Word, 0, len(hsk)+len(cc)),
		byHanzi: make(map[string][]Word),
	}
	for _, w := range hsk {
		s.words = append(s.words, w)
	}
	for _, w := range cc {
		s.words = append(s.words, w)
	}

	s.filter = bloom.NewWithEstimates(uint(max(2*len(s.words), 1)), 0.01)
	for _, w := range s.words {
		h := w.Head()
		s.index(h.Simplified, w)
		if h.Traditional != h.Simplified {
			s.index(h.Traditional, w)
		}
	}
	return s
}

func (s *snapshot) index(key string, w Word) {
	if key == "" {
		return
	}
	s.byHanzi[key] = append(s.byHanzi[key], w)
	s.filter.AddString(key)
	if n := len([]rune(key)); n > s.maxLen {
		s.maxLen = n
	}
}

// Words returns every loaded word: reconciled HSK entries, then CC-CEDICT.
func (r *Registry) Words() ([]Word, error) {
	s, err := r.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.words), nil
}

// Lookup returns the words whose simplified or traditional form is hanzi.
func (r *Registry) Lookup(hanzi string) ([]Word, error) {
	s, err := r.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.byHanzi[hanzi]), nil
}

// SearchOptions filter and order Registry.Search results.
type SearchOptions struct {
	Sort    SortKey
	Version HSKVersion // level filter and level sort; default HSK 3.0
	Levels  []int      // keep only words with one of these levels
	Kinds   []Kind     // keep only these corpora kinds
	Limit   int        // 0 means no limit
}

// Search runs Search over the loaded words, then applies opts.
func (r *Registry) Search(query string, opts *SearchOptions) ([]Word, error) {
	s, err := r.current()
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &SearchOptions{}
	}
	v := opts.Version
	if v == "" {
		v = HSK3
	}

	words := Search(s.words, query)
	if len(opts.Levels) > 0 || len(opts.Kinds) > 0 {
		words = slices.DeleteFunc(words, func(w Word) bool {
			if len(opts.Kinds) > 0 && !slices.Contains(opts.Kinds, w.Kind()) {
				return true
			}
			if len(opts.Levels) > 0 {
				n, ok := w.Level(v)
				return !ok || !slices.Contains(opts.Levels, n)
			}
			return false
		})
	}
	Sort(words, opts.Sort, v)
	if opts.Limit > 0 && len(words) > opts.Limit {
		words = words[:opts.Limit]
	}
	return words, nil
}

// CorpusInfo is the public metadata for a loaded corpus.
type CorpusInfo struct {
	ID         string `json:"id"`
	Version    string `json:"version"`
	Kind       string `json:"kind"`
	Source     string `json:"source"`
	SourceURL  string `json:"source_url,omitempty"`
	License    string `json:"license"`
	HSKVersion string `json:"hsk_version,omitempty"`
	HSKLevel   int    `json:"hsk_level,omitempty"`
	Words      int    `json:"words"`
	Malformed  int    `json:"malformed,omitempty"`
}

// ListCorpora returns metadata for all loaded corpora, sorted by ID.
func (r *Registry) ListCorpora() []CorpusInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]CorpusInfo, 0, len(r.snap.corpora))
	for _, c := range r.snap.corpora {
		m := c.Manifest
		infos = append(infos, CorpusInfo{
			ID:         m.ID,
			Version:    m.Version,
			Kind:       m.Kind,
			Source:     m.Source,
			SourceURL:  m.SourceURL,
			License:    m.License,
			HSKVersion: m.HSKVersion,
			HSKLevel:   m.HSKLevel,
			Words:      c.Len(),
			Malformed:  c.Stats.Malformed,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// CorpusCount returns the number of loaded corpora.
func (r *Registry) CorpusCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.snap.corpora)
}

// TotalWords returns the number of words after HSK reconciliation.
func (r *Registry) TotalWords() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.snap.words)
}
