package deck

import (
	"slices"
	"strings"
)

// Diff resolves both deck lists and classifies every card name into added, removed, modified or
// unchanged. Error lists of both decks are returned separately.
func (r *Resolver) Diff(oldText, newText string) DiffResult {
	return Compare(r.Resolve(oldText), r.Resolve(newText))
}

// Compare classifies the entries of two resolved decks.
// Entries are matched by name. If a deck lists a name more than once, the last entry wins.
// TODO: sum the quantities of duplicated names instead of keeping the last entry.
func Compare(oldDeck, newDeck ResolveResult) DiffResult {
	oldByName := indexByName(oldDeck.Entries)
	newByName := indexByName(newDeck.Entries)

	result := DiffResult{
		Added:       make([]DiffEntry, 0),
		Removed:     make([]DiffEntry, 0),
		Modified:    make([]DiffEntry, 0),
		Unchanged:   make([]DiffEntry, 0),
		ErrorsDeck1: oldDeck.Errors,
		ErrorsDeck2: newDeck.Errors,
	}

	for name, o := range oldByName {
		n, ok := newByName[name]
		switch {
		case !ok:
			result.Removed = append(result.Removed, newDiffEntry(name, o.Quantity, 0, ChangeRemoved, o))
		case o.Quantity == n.Quantity:
			result.Unchanged = append(result.Unchanged, newDiffEntry(name, o.Quantity, n.Quantity, ChangeUnchanged, o))
		default:
			result.Modified = append(result.Modified, newDiffEntry(name, o.Quantity, n.Quantity, ChangeModified, n))
		}
	}
	for name, n := range newByName {
		if _, ok := oldByName[name]; ok {
			continue
		}
		result.Added = append(result.Added, newDiffEntry(name, 0, n.Quantity, ChangeAdded, n))
	}

	for _, bucket := range [][]DiffEntry{result.Added, result.Removed, result.Modified, result.Unchanged} {
		slices.SortFunc(bucket, byCardName)
	}

	return result
}

func indexByName(entries []Entry) map[string]Entry {
	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	return byName
}

// newDiffEntry takes card and categories from the given source entry.
func newDiffEntry(name string, oldQty, newQty int, t ChangeType, source Entry) DiffEntry {
	categories := source.Categories
	if categories == nil {
		categories = []string{}
	}

	return DiffEntry{
		CardName:    name,
		OldQuantity: oldQty,
		NewQuantity: newQty,
		ChangeType:  t,
		Card:        source.Card,
		Categories:  categories,
	}
}

func byCardName(a, b DiffEntry) int {
	return strings.Compare(a.CardName, b.CardName)
}
