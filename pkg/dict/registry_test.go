package dict

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func setupRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()
	writeTestCorpora(t, dir)

	reg := NewRegistry(dir, nil)
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg, dir
}

func TestRegistryLoad(t *testing.T) {
	reg, _ := setupRegistry(t)

	if reg.CorpusCount() != 3 {
		t.Errorf("CorpusCount = %d, want 3", reg.CorpusCount())
	}
	// 4 reconciled HSK words + 7 CC-CEDICT entries.
	if reg.TotalWords() != 11 {
		t.Errorf("TotalWords = %d, want 11", reg.TotalWords())
	}
}

func TestRegistryWords_Order(t *testing.T) {
	reg, _ := setupRegistry(t)

	words, err := reg.Words()
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	want := []string{"爱", "你好", "经济", "咖啡", "中国"}
	for i, s := range want {
		if got := words[i].Head().Simplified; got != s {
			t.Errorf("words[%d] = %q, want %q", i, got, s)
		}
	}
	if words[1].Kind() != KindHSK || words[4].Kind() != KindCC {
		t.Errorf("kinds = %q, %q", words[1].Kind(), words[4].Kind())
	}
}

func TestRegistry_Reconciled(t *testing.T) {
	reg, _ := setupRegistry(t)

	words, err := reg.Lookup("你好")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("Lookup(你好) = %d words, want 2 (HSK + CC)", len(words))
	}
	hsk := words[0]
	if n, ok := hsk.Level(HSK2); !ok || n != 1 {
		t.Errorf("Level(HSK2) = %d, %v, want 1", n, ok)
	}
	if got := hsk.DisplayDefinition(); got != "hello; how do you do" {
		t.Errorf("DisplayDefinition = %q", got)
	}
}

func TestRegistryLookup_Traditional(t *testing.T) {
	reg, _ := setupRegistry(t)

	words, err := reg.Lookup("中國")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(words) != 1 || words[0].Head().Simplified != "中国" {
		t.Errorf("Lookup(中國) = %v", Views(words))
	}

	words, _ = reg.Lookup("不存在")
	if len(words) != 0 {
		t.Errorf("Lookup(unknown) = %d words, want 0", len(words))
	}
}

func TestRegistry_EnsureLazy(t *testing.T) {
	dir := t.TempDir()
	writeTestCorpora(t, dir)
	reg := NewRegistry(dir, nil)

	if reg.TotalWords() != 0 {
		t.Fatalf("TotalWords before load = %d", reg.TotalWords())
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Words(); err != nil {
				t.Errorf("Words: %v", err)
			}
		}()
	}
	wg.Wait()

	if reg.TotalWords() != 11 {
		t.Errorf("TotalWords = %d, want 11", reg.TotalWords())
	}
}

func TestRegistry_EnsureError(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "missing"), nil)
	if _, err := reg.Search("ni", nil); err == nil {
		t.Error("expected error for missing corpus dir")
	}
}

func TestRegistryReload(t *testing.T) {
	reg, dir := setupRegistry(t)

	writeCorpus(t, dir, "extra", "id: extra\nkind: cedict\n", "cedict_ts.u8", "水 水 [shui3] /water/\n")
	if err := reg.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if reg.CorpusCount() != 4 {
		t.Errorf("CorpusCount = %d, want 4", reg.CorpusCount())
	}
	if words, _ := reg.Lookup("水"); len(words) != 1 {
		t.Errorf("Lookup(水) = %d words, want 1", len(words))
	}
}

func TestRegistryReload_KeepsSnapshotOnError(t *testing.T) {
	reg, dir := setupRegistry(t)

	writeCorpus(t, dir, "broken", "id: broken\nkind: nope\n", "data.txt", "")
	if err := reg.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if reg.CorpusCount() != 3 || reg.TotalWords() != 11 {
		t.Errorf("snapshot changed: %d corpora, %d words", reg.CorpusCount(), reg.TotalWords())
	}
}

func TestRegistry_SkipsDirsWithoutManifest(t *testing.T) {
	reg, dir := setupRegistry(t)

	if err := os.MkdirAll(filepath.Join(dir, "_download"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := reg.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if reg.CorpusCount() != 3 {
		t.Errorf("CorpusCount = %d, want 3", reg.CorpusCount())
	}
}

func TestRegistrySearch_Options(t *testing.T) {
	reg, _ := setupRegistry(t)

	words, err := reg.Search("hello", &SearchOptions{Kinds: []Kind{KindHSK}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(words) != 1 || words[0].Kind() != KindHSK {
		t.Errorf("Search(hello, hsk) = %v", Views(words))
	}

	words, _ = reg.Search("", &SearchOptions{Levels: []int{3}})
	if len(words) != 1 || words[0].Head().Simplified != "经济" {
		t.Errorf("Search(level 3) = %v", Views(words))
	}

	words, _ = reg.Search("", &SearchOptions{Levels: []int{4}, Version: HSK2})
	if len(words) != 1 || words[0].Head().Simplified != "经济" {
		t.Errorf("Search(HSK2 level 4) = %v", Views(words))
	}

	words, _ = reg.Search("", &SearchOptions{Sort: SortFrequency, Limit: 2})
	if len(words) != 2 || words[0].Head().Simplified != "爱" || words[1].Head().Simplified != "经济" {
		t.Errorf("Search(frequency, limit 2) = %v", Views(words))
	}
}

func TestListCorpora(t *testing.T) {
	reg, _ := setupRegistry(t)

	infos := reg.ListCorpora()
	if len(infos) != 3 {
		t.Fatalf("ListCorpora = %d, want 3", len(infos))
	}
	if infos[0].ID != "cc-cedict" || infos[1].ID != "hsk-complete" || infos[2].ID != "hsk2-level2" {
		t.Errorf("order = %s, %s, %s", infos[0].ID, infos[1].ID, infos[2].ID)
	}
	if infos[0].Words != 7 || infos[0].Malformed != 1 {
		t.Errorf("cc-cedict info = %+v", infos[0])
	}
	if infos[2].HSKVersion != "2.0" || infos[2].HSKLevel != 2 {
		t.Errorf("hsk2-level2 info = %+v", infos[2])
	}
}

func TestRegistrySegment(t *testing.T) {
	reg, _ := setupRegistry(t)

	segs, err := reg.Segment("我爱你好中国 ok")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	want := []struct {
		text  string
		known bool
	}{
		{"我", false},
		{"爱", true},
		{"你好", true},
		{"中国", true},
		{" ok", false},
	}
	if len(segs) != len(want) {
		t.Fatalf("segments = %d, want %d", len(segs), len(want))
	}
	for i, w := range want {
		if segs[i].Text != w.text || segs[i].Known() != w.known {
			t.Errorf("segs[%d] = %q (known %v), want %q (known %v)", i, segs[i].Text, segs[i].Known(), w.text, w.known)
		}
	}
}

func TestRegistrySegment_Empty(t *testing.T) {
	reg, _ := setupRegistry(t)

	segs, err := reg.Segment("")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segs) != 0 {
		t.Errorf("segments = %d, want 0", len(segs))
	}
}

func TestRegistrySegment_DoesNotAlias(t *testing.T) {
	reg, _ := setupRegistry(t)

	segs, err := reg.Segment("你好")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segs) != 1 || !segs[0].Known() {
		t.Fatalf("segments = %v", segs)
	}
	segs[0].Words[0] = nil

	words, err := reg.Lookup("你好")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(words) != 2 || words[0] == nil {
		t.Errorf("Lookup(你好) after mutating a segment = %v", words)
	}
}

func TestRegistryLoad_LogsUnconverted(t *testing.T) {
	failTraditional(t)

	dir := t.TempDir()
	writeCorpus(t, dir, "hsk-list", "id: hsk-list\nkind: hsk-tsv\nhsk_version: new\nhsk_level: 1\n",
		"data.tsv", "simplified\tnumeric\n中国\tzhong1 guo2\n")

	var buf bytes.Buffer
	reg := NewRegistry(dir, slog.New(slog.NewTextHandler(&buf, nil)))
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "traditional conversion failed") || !strings.Contains(out, "corpus=hsk-list") {
		t.Errorf("log output = %q", out)
	}
}
