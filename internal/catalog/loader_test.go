package catalog_test

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/konstantinfoerster/deck-diff-go/internal/catalog"
	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/konstantinfoerster/deck-diff-go/internal/scryfall"
	"github.com/konstantinfoerster/deck-diff-go/internal/storage"
	"github.com/konstantinfoerster/deck-diff-go/internal/test"
	"github.com/konstantinfoerster/deck-diff-go/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulkJSON = `[
  {"id": "a1", "name": "Lightning Bolt", "set": "lea", "collector_number": "161",
   "image_uris": {"normal": "https://img/bolt.jpg"}},
  {"id": "b2", "name": "Counterspell", "set": "lea", "collector_number": "54"}
]`

func zipped(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

type datasetServer struct {
	*httptest.Server
	calls atomic.Int32
}

func newDatasetServer(t *testing.T) *datasetServer {
	t.Helper()

	ds := &datasetServer{}
	singleZip := zipped(t, map[string]string{"cards.json": bulkJSON})
	multiZip := zipped(t, map[string]string{"a.json": bulkJSON, "b.json": bulkJSON})
	mux := http.NewServeMux()
	mux.HandleFunc("/oracle-cards-20240501.json", func(w http.ResponseWriter, _ *http.Request) {
		ds.calls.Add(1)
		w.Header().Set(web.HeaderContentType, web.MimeTypeJSON)
		_, _ = w.Write([]byte(bulkJSON))
	})
	mux.HandleFunc("/latest", func(w http.ResponseWriter, _ *http.Request) {
		ds.calls.Add(1)
		w.Header().Set(web.HeaderContentType, web.MimeTypeJSON)
		_, _ = w.Write([]byte(bulkJSON))
	})
	mux.HandleFunc("/cards.json.zip", func(w http.ResponseWriter, _ *http.Request) {
		ds.calls.Add(1)
		w.Header().Set(web.HeaderContentType, web.MimeTypeZip)
		_, _ = w.Write(singleZip)
	})
	mux.HandleFunc("/two-files.zip", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(web.HeaderContentType, web.MimeTypeZip)
		_, _ = w.Write(multiZip)
	})
	ds.Server = httptest.NewServer(mux)
	t.Cleanup(ds.Close)

	return ds
}

func newLoader(t *testing.T, dir string) *catalog.Loader {
	t.Helper()

	store, err := storage.NewLocalStorage(config.Storage{Location: dir, Mode: config.CREATE})
	require.NoError(t, err)

	return catalog.NewLoader(scryfall.NewDataset(), web.NewClient(web.Config{}, &http.Client{}), store)
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)

	return u
}

func TestLoadLocalFile(t *testing.T) {
	file := test.WriteFile(t, t.TempDir(), "cards.json", bulkJSON)

	cases := []struct {
		name   string
		source string
	}{
		{name: "plain path", source: file},
		{name: "file scheme", source: "file://" + file},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := newLoader(t, t.TempDir()).Load(t.Context(), mustParse(t, tc.source))

			require.NoError(t, err)
			assert.Equal(t, 2, c.Len())
		})
	}
}

func TestLoadMissingLocalFile(t *testing.T) {
	_, err := newLoader(t, t.TempDir()).Load(t.Context(), mustParse(t, filepath.Join(t.TempDir(), "missing.json")))

	require.ErrorContains(t, err, "failed to open file")
}

func TestLoadDownloadIsCached(t *testing.T) {
	ts := newDatasetServer(t)
	dir := t.TempDir()
	source := mustParse(t, ts.URL+"/oracle-cards-20240501.json")

	first, err := newLoader(t, dir).Load(t.Context(), source)
	require.NoError(t, err)
	second, err := newLoader(t, dir).Load(t.Context(), source)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 2, second.Len())
	assert.Equal(t, int32(1), ts.calls.Load())
	assert.FileExists(t, filepath.Join(dir, "downloads", "oracle-cards-20240501.json"))
}

func TestLoadDownloadWithoutVersionedName(t *testing.T) {
	ts := newDatasetServer(t)
	dir := t.TempDir()

	c, err := newLoader(t, dir).Load(t.Context(), mustParse(t, ts.URL+"/latest"))

	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	entries, err := os.ReadDir(filepath.Join(dir, "downloads"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}

func TestLoadZipDownload(t *testing.T) {
	ts := newDatasetServer(t)
	dir := t.TempDir()

	c, err := newLoader(t, dir).Load(t.Context(), mustParse(t, ts.URL+"/cards.json.zip"))

	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.FileExists(t, filepath.Join(dir, "downloads", "cards.json"))
	entries, err := os.ReadDir(filepath.Join(dir, "downloads"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "zip file is removed after extraction")
}

func TestLoadZipWithMultipleFilesFails(t *testing.T) {
	ts := newDatasetServer(t)

	_, err := newLoader(t, t.TempDir()).Load(t.Context(), mustParse(t, ts.URL+"/two-files.zip"))

	require.ErrorContains(t, err, "unexpected file count")
}

func TestLoadDownloadNotFound(t *testing.T) {
	ts := newDatasetServer(t)

	_, err := newLoader(t, t.TempDir()).Load(t.Context(), mustParse(t, ts.URL+"/missing.json"))

	require.Error(t, err)
	assert.True(t, web.IsNotFound(err))
}
