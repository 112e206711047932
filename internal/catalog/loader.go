package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/konstantinfoerster/deck-diff-go/internal/aio"
	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
	"github.com/konstantinfoerster/deck-diff-go/internal/storage"
	"github.com/konstantinfoerster/deck-diff-go/internal/web"
	"github.com/rs/zerolog/log"
)

const (
	downloadDir = "downloads"
	// DefaultUnzipLimit bounds the uncompressed size of downloaded archives.
	DefaultUnzipLimit = 2048 * oneMiB
)

// Loader Reads a dataset from a local file or a download url into a catalog.
type Loader struct {
	dataset    cards.Dataset
	client     web.Client
	store      storage.Storer
	unzipLimit int64
}

func NewLoader(dataset cards.Dataset, wclient web.Client, store storage.Storer) *Loader {
	return &Loader{
		dataset:    dataset,
		client:     wclient,
		store:      store,
		unzipLimit: DefaultUnzipLimit,
	}
}

// LoadFile imports the dataset stored at the given filesystem path.
func (l *Loader) LoadFile(filePath string) (*cards.Catalog, error) {
	return l.importFile(filePath)
}

// Load imports the dataset at source. Sources without scheme or with the file scheme are local files.
// Downloads are kept in the storage. A download url ending with .json is only downloaded once.
func (l *Loader) Load(ctx context.Context, source *url.URL) (*cards.Catalog, error) {
	if source.Scheme == "" || source.Scheme == "file" {
		return l.importFile(source.Path)
	}

	cacheName := cachedName(source)
	if cacheName != "" {
		sf, found, err := l.store.Find(downloadDir, cacheName)
		if err != nil {
			return nil, err
		}
		if found {
			log.Info().Msgf("Using already downloaded dataset %s", sf.AbsolutePath)

			return l.importFile(sf.AbsolutePath)
		}
	}

	fileToImport, err := l.download(ctx, source, cacheName)
	if err != nil {
		return nil, err
	}

	return l.importFile(fileToImport)
}

func (l *Loader) download(ctx context.Context, source *url.URL, cacheName string) (string, error) {
	log.Info().Msgf("Downloading dataset from %s", source)
	resp, err := l.client.Get(ctx, source.String(), "")
	if err != nil {
		return "", fmt.Errorf("failed to download dataset from %s due to %w", source, err)
	}
	defer aio.Close(resp.Body)

	filename := cacheName
	if filename == "" {
		filename, err = resp.MimeType.BuildFilename(fmt.Sprintf("%d", time.Now().UnixMilli()))
		if err != nil {
			return "", err
		}
	}

	sFile, err := l.store.Store(resp.Body, downloadDir, filename)
	if err != nil {
		return "", err
	}

	isZip := resp.MimeType.IsZip() || strings.HasSuffix(strings.ToLower(filename), ".zip")

	return l.extract(sFile.AbsolutePath, isZip)
}

func (l *Loader) importFile(filePath string) (*cards.Catalog, error) {
	filePath = filepath.Clean(filePath)

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s %w", filePath, err)
	}
	defer aio.Close(f)

	c, err := l.dataset.Import(f)
	if err != nil {
		return nil, fmt.Errorf("failed to import dataset %s %w", filePath, err)
	}

	return c, nil
}

func (l *Loader) extract(file string, isZip bool) (_ string, err error) {
	if !isZip {
		return file, nil
	}
	defer func(name string) {
		rErr := os.Remove(name)
		if rErr != nil {
			// report remove errors
			if err == nil {
				err = rErr
			} else {
				err = errors.Join(err, rErr)
			}
		} else {
			log.Info().Msgf("Delete zip file %s", name)
		}
	}(file)

	dest := filepath.Dir(file)
	log.Info().Msgf("Unzipping %s to %s", file, dest)
	files, err := unzip(file, dest, l.unzipLimit)
	if err != nil {
		return "", err
	}
	log.Info().Msgf("Unzip finished with files %v", files)

	if len(files) != 1 {
		return "", fmt.Errorf("unexpected file count inside zip file, expected 1 but found %d", len(files))
	}

	return files[0], nil
}

// cachedName returns the file name of versioned json downloads or an empty string.
func cachedName(source *url.URL) string {
	name := path.Base(source.Path)
	if !strings.HasSuffix(strings.ToLower(name), ".json") {
		return ""
	}

	return name
}
