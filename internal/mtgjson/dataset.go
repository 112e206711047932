package mtgjson

import (
	"context"
	"io"

	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type mtgJSONDataset struct{}

// NewDataset reads an MTGJSON AllPrintings file. Every printing becomes a catalog record,
// the uuid is used as card id.
func NewDataset() cards.Dataset {
	return &mtgJSONDataset{}
}

func (d *mtgJSONDataset) Import(r io.Reader) (*cards.Catalog, error) {
	errg, ctx := errgroup.WithContext(context.Background())

	parsed := make(chan *mtgjsonCard)
	errg.Go(func() error {
		defer close(parsed)

		return parse(ctx, r, parsed)
	})

	builder := cards.NewCatalogBuilder()
	skipped := 0
	for c := range parsed {
		if c.isSecondarySide() {
			continue
		}

		if err := builder.Add(mapToCard(c)); err != nil {
			skipped++
			if log.Trace().Enabled() {
				log.Trace().Err(err).Msgf("skipped card %s from set %s", c.Number, c.Code)
			}
		}
	}

	if err := errg.Wait(); err != nil {
		return nil, err
	}

	catalog := builder.Build()
	log.Info().Int("cards", catalog.CardCount()).Int("names", catalog.Len()).Int("skipped", skipped).
		Msg("imported mtgjson dataset")

	return catalog, nil
}

func mapToCard(c *mtgjsonCard) cards.Card {
	return cards.Card{
		ID:      c.UUID,
		Name:    c.Name,
		SetCode: c.Code,
		Number:  c.Number,
	}
}
