package deck

import (
	"cmp"
	"math"
	"slices"
)

// Stats Aggregated numbers of a resolved deck list.
type Stats struct {
	TotalCards         int             `json:"total_cards"`
	UniqueCards        int             `json:"unique_cards"`
	Resolved           int             `json:"resolved"`
	Unresolved         int             `json:"unresolved"`
	Errors             int             `json:"errors"`
	ResolvedPercentage int             `json:"resolved_percentage"`
	Categories         []CategoryCount `json:"categories"`
}

// CategoryCount The summed quantity of all entries tagged with a category.
type CategoryCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Stats counts resolved and unresolved entries and sums quantities per category.
// Categories are ordered by quantity, highest first, ties by name.
func (r ResolveResult) Stats() Stats {
	s := Stats{
		TotalCards:  r.TotalCards,
		UniqueCards: len(r.Entries),
		Errors:      len(r.Errors),
		Categories:  make([]CategoryCount, 0),
	}

	perCategory := make(map[string]int)
	for _, e := range r.Entries {
		if e.IsResolved() {
			s.Resolved++
		} else {
			s.Unresolved++
		}
		for _, c := range e.Categories {
			perCategory[c] += e.Quantity
		}
	}

	if s.UniqueCards > 0 {
		s.ResolvedPercentage = int(math.Round(float64(s.Resolved) / float64(s.UniqueCards) * 100))
	}

	for name, qty := range perCategory {
		s.Categories = append(s.Categories, CategoryCount{Name: name, Quantity: qty})
	}
	slices.SortFunc(s.Categories, func(a, b CategoryCount) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return s
}

// TopCategories returns at most n categories with the highest quantity.
func (s Stats) TopCategories(n int) []CategoryCount {
	if n < 0 || n >= len(s.Categories) {
		return s.Categories
	}

	return s.Categories[:n]
}
