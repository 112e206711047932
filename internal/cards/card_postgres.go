package cards

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jackc/pgtype"
	"github.com/konstantinfoerster/deck-diff-go/internal/postgres"
)

// PostgresCardDao Reads cards from the schema written by the card importer.
type PostgresCardDao struct {
	db *postgres.DBConnection
}

func NewCardDao(db *postgres.DBConnection) *PostgresCardDao {
	return &PostgresCardDao{
		db: db,
	}
}

// Count Returns the number of stored cards.
func (d *PostgresCardDao) Count(ctx context.Context) (int, error) {
	query := `SELECT count(*) FROM card`

	var count int
	if err := d.db.Conn.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to execute card count %w", err)
	}

	return count, nil
}

// LoadCatalog Reads all cards ordered by id, so the first imported print of a name is the canonical one.
// The image of the given language is used if present. Relative image paths are joined with imageBaseURL.
func (d *PostgresCardDao) LoadCatalog(ctx context.Context, lang string, imageBaseURL string) (*Catalog, error) {
	query := `
		SELECT
			c.id, c.name, c.card_set_code, c.number, img.image_path
		FROM
			card AS c
		LEFT JOIN LATERAL (
			SELECT
				ci.image_path
			FROM
				card_image AS ci
			WHERE
				ci.card_id = c.id AND ci.lang_lang = $1
			ORDER BY
				ci.id
			LIMIT 1
		) AS img ON true
		ORDER BY
			c.id`

	rows, err := d.db.Conn.Query(ctx, query, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to execute catalog card select %w", err)
	}
	defer rows.Close()

	b := NewCatalogBuilder()
	for rows.Next() {
		var id int64
		var c Card
		var imagePath pgtype.Text
		if err := rows.Scan(&id, &c.Name, &c.SetCode, &c.Number, &imagePath); err != nil {
			return nil, fmt.Errorf("failed to execute card scan after select %w", err)
		}

		c.ID = strconv.FormatInt(id, 10)
		if imagePath.Status == pgtype.Present && imagePath.String != "" {
			imgURL, err := joinImageURL(imageBaseURL, imagePath.String)
			if err != nil {
				return nil, err
			}
			c.ImageURIs = &ImageURIs{Normal: imgURL}
		}

		if err := b.Add(c); err != nil {
			return nil, err
		}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("failed to read catalog card result %w", rows.Err())
	}

	return b.Build(), nil
}

func joinImageURL(base string, path string) (string, error) {
	if base == "" {
		return path, nil
	}

	u, err := url.JoinPath(base, path)
	if err != nil {
		return "", fmt.Errorf("failed to build image url from %s and %s %w", base, path, err)
	}

	return u, nil
}
