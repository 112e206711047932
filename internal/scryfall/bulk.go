package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/konstantinfoerster/deck-diff-go/internal/aio"
	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/konstantinfoerster/deck-diff-go/internal/web"
)

var ErrBulkTypeNotFound = errors.New("bulk type not found")

func NewBulkClient(cfg config.Scryfall, wclient web.Client) *BulkClient {
	return &BulkClient{
		cfg:     cfg,
		wclient: wclient,
	}
}

// BulkClient Looks up the current download location of scryfall bulk files.
type BulkClient struct {
	cfg     config.Scryfall
	wclient web.Client
}

func (c *BulkClient) FindBulkData(ctx context.Context, bulkType string) (*BulkData, error) {
	url, err := c.cfg.EnsureBaseURL(path.Join("bulk-data", bulkType))
	if err != nil {
		return nil, fmt.Errorf("failed to create bulk data url due to %w", err)
	}

	resp, err := c.wclient.Get(ctx, url, web.MimeTypeJSON)
	if err != nil {
		if web.IsNotFound(err) {
			err = errors.Join(err, ErrBulkTypeNotFound)
		}

		return nil, fmt.Errorf("failed to find bulk data %s due to %w", url, err)
	}
	defer aio.Close(resp.Body)
	if !resp.MimeType.IsJSON() {
		return nil, fmt.Errorf("unexpected bulk data content type %q from %s", resp.MimeType.Raw(), url)
	}

	var bd BulkData
	if err := json.NewDecoder(resp.Body).Decode(&bd); err != nil {
		return nil, fmt.Errorf("failed to decode scryfall bulk data due to %w", err)
	}
	if bd.DownloadURI == "" {
		return nil, fmt.Errorf("bulk data %s has no download uri", bulkType)
	}

	return &bd, nil
}

// FindDownloadURL returns the url of the latest bulk file of the given type.
func (c *BulkClient) FindDownloadURL(ctx context.Context, bulkType string) (string, error) {
	bd, err := c.FindBulkData(ctx, bulkType)
	if err != nil {
		return "", err
	}

	return bd.DownloadURI, nil
}
