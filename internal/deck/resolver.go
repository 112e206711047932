package deck

import (
	"strings"

	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
)

// CardLookup Resolves a card by its exact, case-sensitive name.
// Implementations must be safe for concurrent reads.
type CardLookup interface {
	Lookup(name string) (*cards.Card, bool)
}

// Resolver Parses deck lists and resolves their entries against a card catalog.
// A Resolver holds no mutable state and can be shared between goroutines.
type Resolver struct {
	cards CardLookup
}

func NewResolver(lookup CardLookup) *Resolver {
	if lookup == nil {
		panic("missing card lookup")
	}

	return &Resolver{
		cards: lookup,
	}
}

// Resolve parses every line of the deck list. Malformed lines are collected as errors and never stop
// the processing of the remaining lines. Unknown card names are kept as entries without a card.
func (r *Resolver) Resolve(text string) ResolveResult {
	result := ResolveResult{
		Entries: make([]Entry, 0),
		Errors:  make([]LineError, 0),
	}

	for i, raw := range strings.Split(text, "\n") {
		if IsSkipped(raw) {
			continue
		}

		line := strings.TrimSpace(raw)
		parsed, err := ParseLine(line)
		if err != nil {
			result.Errors = append(result.Errors, LineError{
				LineNumber: i + 1,
				Line:       line,
				Error:      err.Error(),
				Code:       CodeOf(err),
			})

			continue
		}

		entry := Entry{
			Quantity:        parsed.Quantity,
			Name:            parsed.Name,
			SetCode:         parsed.SetCode,
			CollectorNumber: parsed.CollectorNumber,
			Categories:      parsed.Categories,
		}
		if c, ok := r.cards.Lookup(parsed.Name); ok {
			entry.Card = c
		}

		result.TotalCards += entry.Quantity
		result.Entries = append(result.Entries, entry)
	}

	return result
}
