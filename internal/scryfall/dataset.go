package scryfall

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
	"github.com/rs/zerolog/log"
)

type bulkDataset struct{}

// NewDataset reads a scryfall bulk file, a json array of card objects.
func NewDataset() cards.Dataset {
	return &bulkDataset{}
}

func (d *bulkDataset) Import(r io.Reader) (*cards.Catalog, error) {
	dec := json.NewDecoder(r)

	if err := expectNext(json.Delim('['), dec); err != nil {
		return nil, err
	}

	builder := cards.NewCatalogBuilder()
	skipped := 0
	for dec.More() {
		var sc Card
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("failed to decode scryfall card %w", err)
		}

		if err := builder.Add(sc.toCard()); err != nil {
			skipped++
			log.Debug().Err(err).Msg("skipped scryfall card")
		}
	}

	if err := expectNext(json.Delim(']'), dec); err != nil {
		return nil, err
	}

	catalog := builder.Build()
	log.Info().Int("cards", catalog.CardCount()).Int("names", catalog.Len()).Int("skipped", skipped).
		Msg("imported scryfall dataset")

	return catalog, nil
}

func expectNext(expected json.Delim, dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to get next token %w", err)
	}

	if t != expected {
		return fmt.Errorf("expected token to be %v but found %v", expected, t)
	}

	return nil
}
