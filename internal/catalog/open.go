package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/konstantinfoerster/deck-diff-go/internal/aio"
	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/konstantinfoerster/deck-diff-go/internal/mtgjson"
	"github.com/konstantinfoerster/deck-diff-go/internal/postgres"
	"github.com/konstantinfoerster/deck-diff-go/internal/scryfall"
	"github.com/konstantinfoerster/deck-diff-go/internal/storage"
	"github.com/konstantinfoerster/deck-diff-go/internal/web"
	"github.com/rs/zerolog/log"
)

var ErrMissingSource = errors.New("no catalog file or download url configured")

// ErrFileNotSupported is returned if a catalog file or download url is configured for the postgres source.
var ErrFileNotSupported = errors.New("catalog file and download url are not supported by the postgres source")

// Open loads the catalog from the configured source. An explicit file wins over an explicit download url.
// Without both the scryfall source looks up the current bulk file.
func Open(ctx context.Context, cfg *config.Config, httpClient *http.Client) (*cards.Catalog, error) {
	source := cfg.Catalog.SourceOrDefault()
	log.Info().Msgf("Loading card catalog from source %s", source)

	switch source {
	case config.SourcePostgres:
		if cfg.Catalog.HasExplicitSource() {
			return nil, ErrFileNotSupported
		}

		return openPostgres(ctx, cfg.Database, cfg.Catalog)
	case config.SourceMtgjson:
		l, err := newLoader(mtgjson.NewDataset(), web.NewClient(cfg.Mtgjson.Client, httpClient), cfg.Storage)
		if err != nil {
			return nil, err
		}
		if file := strings.TrimSpace(cfg.Catalog.File); file != "" {
			return l.LoadFile(file)
		}
		loc, err := downloadSource(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, fmt.Errorf("mtgjson source failed %w", ErrMissingSource)
		}

		return l.Load(ctx, loc)
	case config.SourceScryfall:
		wclient := web.NewClient(cfg.Scryfall.Client, httpClient)
		l, err := newLoader(scryfall.NewDataset(), wclient, cfg.Storage)
		if err != nil {
			return nil, err
		}
		if file := strings.TrimSpace(cfg.Catalog.File); file != "" {
			return l.LoadFile(file)
		}
		loc, err := downloadSource(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			bulkType := cfg.Catalog.BulkTypeOrDefault()
			rawURL, err := scryfall.NewBulkClient(cfg.Scryfall, wclient).FindDownloadURL(ctx, bulkType)
			if err != nil {
				return nil, fmt.Errorf("failed to find scryfall bulk file %s %w", bulkType, err)
			}
			if loc, err = url.Parse(rawURL); err != nil {
				return nil, fmt.Errorf("invalid scryfall download url %s %w", rawURL, err)
			}
		}

		return l.Load(ctx, loc)
	default:
		return nil, fmt.Errorf("unsupported catalog source %s", source)
	}
}

// downloadSource parses the configured download url, nil if none is configured.
func downloadSource(cfg config.Catalog) (*url.URL, error) {
	raw := strings.TrimSpace(cfg.DownloadURL)
	if raw == "" {
		return nil, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog download url %s %w", raw, err)
	}

	return u, nil
}

func newLoader(ds cards.Dataset, wclient web.Client, storageCfg config.Storage) (*Loader, error) {
	store, err := storage.NewLocalStorage(storageCfg)
	if err != nil {
		return nil, err
	}

	return NewLoader(ds, wclient, store), nil
}

func openPostgres(ctx context.Context, dbCfg config.Database, catalogCfg config.Catalog) (*cards.Catalog, error) {
	conn, err := postgres.Connect(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %w", err)
	}
	defer aio.Close(conn)

	return cards.NewCardDao(conn).LoadCatalog(ctx, catalogCfg.LangOrDefault(), catalogCfg.ImageBaseURL)
}
