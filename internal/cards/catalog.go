package cards

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Catalog An immutable card lookup keyed by the exact card name.
// All records of a name are kept in load order, the first one is the canonical record.
// A Catalog is never modified after Build and can be read from many goroutines without locking.
type Catalog struct {
	byName    map[string][]Card
	cardCount int
}

// NewCatalog builds a catalog from the given cards, skipping invalid ones.
func NewCatalog(cards ...Card) *Catalog {
	b := NewCatalogBuilder()
	for _, c := range cards {
		if err := b.Add(c); err != nil {
			log.Warn().Err(err).Msg("skipped invalid card")
		}
	}

	return b.Build()
}

// Lookup returns the first-loaded card with exactly the given name.
func (c *Catalog) Lookup(name string) (*Card, bool) {
	if c == nil {
		return nil, false
	}

	entries, ok := c.byName[name]
	if !ok || len(entries) == 0 {
		return nil, false
	}
	card := entries[0]

	return &card, true
}

// Len returns the number of unique card names.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.byName)
}

// CardCount returns the number of all loaded records including reprints.
func (c *Catalog) CardCount() int {
	if c == nil {
		return 0
	}

	return c.cardCount
}

func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{
		byName: make(map[string][]Card),
	}
}

// CatalogBuilder Collects cards for a Catalog. Not safe for concurrent use.
type CatalogBuilder struct {
	byName    map[string][]Card
	cardCount int
	built     bool
}

// Add appends a card to the records of its name. Cards without an id or a name are rejected.
func (b *CatalogBuilder) Add(c Card) error {
	if b.built {
		return fmt.Errorf("catalog is already built, can't add card %s", c.Name)
	}
	if err := c.isValid(); err != nil {
		return fmt.Errorf("card is invalid %w", err)
	}

	b.byName[c.Name] = append(b.byName[c.Name], c)
	b.cardCount++

	return nil
}

// Build returns the catalog. The builder can't be used afterwards.
func (b *CatalogBuilder) Build() *Catalog {
	b.built = true

	return &Catalog{
		byName:    b.byName,
		cardCount: b.cardCount,
	}
}
