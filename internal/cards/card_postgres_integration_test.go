package cards_test

import (
	"context"
	"testing"

	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
	"github.com/konstantinfoerster/deck-diff-go/internal/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runner *postgres.DatabaseRunner

func TestPostgresCatalogIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests")
	}
	runner = postgres.NewRunner()
	runner.Run(t, func(t *testing.T) {
		t.Run("Catalog: load cards with images", loadCatalog)
		t.Run("Catalog: empty database", loadEmptyCatalog)
		t.Run("Connection: read only session", readOnlySession)
	})
}

func seed(t *testing.T, statements ...string) {
	t.Helper()

	for _, stmt := range statements {
		_, err := runner.Connection().Conn.Exec(context.Background(), stmt)
		require.NoError(t, err, stmt)
	}
}

func loadCatalog(t *testing.T) {
	t.Cleanup(runner.Cleanup(t))
	seed(t,
		`INSERT INTO card_set (code, name) VALUES ('2ED', 'Unlimited Edition'), ('9ED', 'Ninth Edition')`,
		`INSERT INTO card (name, number, card_set_code) VALUES
			('Balance', '3', '2ED'),
			('Benalish Hero', '4', '2ED'),
			('Balance', '1', '9ED')`,
		`INSERT INTO card_image (image_path, lang_lang, card_id) VALUES
			('2ED/eng/3.jpg', 'eng', 1),
			('2ED/deu/3.jpg', 'deu', 1),
			('9ED/eng/1.jpg', 'eng', 3)`,
	)
	dao := cards.NewCardDao(runner.Connection())

	catalog, err := dao.LoadCatalog(context.Background(), "eng", "http://localhost/images/")

	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, 3, catalog.CardCount())

	balance, ok := catalog.Lookup("Balance")
	require.True(t, ok)
	assert.Equal(t, &cards.Card{
		ID:        "1",
		Name:      "Balance",
		SetCode:   "2ED",
		Number:    "3",
		ImageURIs: &cards.ImageURIs{Normal: "http://localhost/images/2ED/eng/3.jpg"},
	}, balance)

	hero, ok := catalog.Lookup("Benalish Hero")
	require.True(t, ok)
	assert.Nil(t, hero.ImageURIs)

	count, err := dao.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func loadEmptyCatalog(t *testing.T) {
	t.Cleanup(runner.Cleanup(t))
	dao := cards.NewCardDao(runner.Connection())

	catalog, err := dao.LoadCatalog(context.Background(), "eng", "")

	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Len())
}

func readOnlySession(t *testing.T) {
	conn, err := postgres.Connect(context.Background(), runner.Config())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Conn.Exec(context.Background(), `INSERT INTO card_set (code, name) VALUES ('10E', 'Tenth')`)

	require.ErrorContains(t, err, "read-only transaction")
}
