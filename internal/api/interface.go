package api

import (
	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
	"github.com/konstantinfoerster/deck-diff-go/internal/deck"
)

//go:generate mockgen -destination=mocks/mock_service.go -source=interface.go

// CardFinder Read access to the loaded catalog.
type CardFinder interface {
	Lookup(name string) (*cards.Card, bool)
	Len() int
}

// DeckService Resolves and compares deck lists.
type DeckService interface {
	Resolve(text string) deck.ResolveResult
	Diff(oldText, newText string) deck.DiffResult
}

var (
	_ CardFinder  = (*cards.Catalog)(nil)
	_ DeckService = (*deck.Resolver)(nil)
)
