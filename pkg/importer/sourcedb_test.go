package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
)

// fakeAdapter implements Adapter for seeding.
type fakeAdapter struct {
	id, corpusID, desc, url, license string
}

func (f *fakeAdapter) ID() string          { return f.id }
func (f *fakeAdapter) CorpusID() string    { return f.corpusID }
func (f *fakeAdapter) Description() string { return f.desc }
func (f *fakeAdapter) DefaultURL() string  { return f.url }
func (f *fakeAdapter) License() string     { return f.license }
func (f *fakeAdapter) Import(context.Context, string, string) (*dict.Corpus, error) {
	return &dict.Corpus{}, nil
}

func tempSourceDB(t *testing.T) *SourceDB {
	t.Helper()
	sdb, err := OpenSourceDB(filepath.Join(t.TempDir(), "sources.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sdb.Close() })
	return sdb
}

func seededSourceDB(t *testing.T, adapters ...Adapter) *SourceDB {
	t.Helper()
	sdb := tempSourceDB(t)
	require.NoError(t, sdb.Seed(adapters))
	return sdb
}

func TestOpenSourceDB_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested.db")
	sdb, err := OpenSourceDB(path)
	require.NoError(t, err)
	defer sdb.Close()

	_, err = os.Stat(path)
	require.NoError(t, err, "db file should exist")

	sources, err := sdb.ListSources()
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestSeed_RegisteredAdapters(t *testing.T) {
	sdb := seededSourceDB(t, All()...)

	sources, err := sdb.ListSources()
	require.NoError(t, err)
	require.Len(t, sources, len(All()))

	byID := make(map[string]Source)
	for _, s := range sources {
		byID[s.AdapterID] = s
	}
	cedict, ok := byID["cc-cedict"]
	require.True(t, ok)
	assert.Equal(t, "cc-cedict", cedict.CorpusID)
	assert.Equal(t, "CC BY-SA 4.0", cedict.License)
	assert.NotZero(t, cedict.UpdatedAt)
	assert.Nil(t, cedict.LastCheck)
	assert.Nil(t, cedict.LastImport)

	url, err := sdb.GetURL("hsk-complete")
	require.NoError(t, err)
	assert.Equal(t, (&hskCompleteAdapter{}).DefaultURL(), url)
}

func TestSeed_KeepsOverrides(t *testing.T) {
	sdb := seededSourceDB(t, &fakeAdapter{"cc-cedict", "cc-cedict", "CEDICT", "https://mirror-a.test/cedict.gz", "CC BY-SA 4.0"})

	require.NoError(t, sdb.SetURL("cc-cedict", "https://mirror-b.test/cedict.gz"))
	// A restart seeds again with the default URL.
	require.NoError(t, sdb.Seed([]Adapter{&fakeAdapter{"cc-cedict", "cc-cedict", "CEDICT", "https://mirror-a.test/cedict.gz", "CC BY-SA 4.0"}}))

	url, err := sdb.GetURL("cc-cedict")
	require.NoError(t, err)
	assert.Equal(t, "https://mirror-b.test/cedict.gz", url)
}

func TestUnknownSource(t *testing.T) {
	sdb := tempSourceDB(t)

	_, err := sdb.GetURL("missing")
	assert.ErrorIs(t, err, ErrUnknownSource)
	assert.ErrorIs(t, sdb.SetURL("missing", "https://x.test"), ErrUnknownSource)
	assert.ErrorIs(t, sdb.UpdateCheck("missing", 200, ""), ErrUnknownSource)
	assert.ErrorIs(t, sdb.RecordImport("missing", 1), ErrUnknownSource)
}

func TestUpdateCheck(t *testing.T) {
	sdb := seededSourceDB(t, &fakeAdapter{"hsk", "hsk", "HSK", "https://hsk.test/complete.json", "MIT"})

	require.NoError(t, sdb.UpdateCheck("hsk", 200, ""))
	sources, err := sdb.ListSources()
	require.NoError(t, err)
	src := sources[0]
	require.NotNil(t, src.LastStatus)
	assert.Equal(t, 200, *src.LastStatus)
	require.NotNil(t, src.LastCheck)
	assert.NotZero(t, *src.LastCheck)
	assert.Nil(t, src.LastError)

	require.NoError(t, sdb.UpdateCheck("hsk", 404, "not found"))
	sources, err = sdb.ListSources()
	require.NoError(t, err)
	src = sources[0]
	assert.Equal(t, 404, *src.LastStatus)
	require.NotNil(t, src.LastError)
	assert.Equal(t, "not found", *src.LastError)
}

func TestListSources_SortedByAdapter(t *testing.T) {
	sdb := seededSourceDB(t,
		&fakeAdapter{"z-list", "z", "last", "https://z.test", "MIT"},
		&fakeAdapter{"a-list", "a", "first", "https://a.test", "MIT"},
	)

	sources, err := sdb.ListSources()
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "a-list", sources[0].AdapterID)
	assert.Equal(t, "z-list", sources[1].AdapterID)
}

func TestRecordImport(t *testing.T) {
	sdb := seededSourceDB(t, &fakeAdapter{"hsk", "hsk-complete", "HSK", "https://hsk.test", "MIT"})

	require.NoError(t, sdb.RecordImport("hsk", 11_000))

	sources, err := sdb.ListSources()
	require.NoError(t, err)
	src := sources[0]
	require.NotNil(t, src.LastImport)
	assert.NotZero(t, *src.LastImport)
	require.NotNil(t, src.LastWords)
	assert.Equal(t, 11_000, *src.LastWords)
	assert.Equal(t, "hsk-complete", src.CorpusID)
}
