package deck

import (
	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
)

// Entry A successfully parsed deck list line.
// Quantity is always >= 1 and Name is never empty.
type Entry struct {
	Quantity        int         `json:"quantity"`
	Name            string      `json:"name"`
	SetCode         string      `json:"set_code,omitempty"`
	CollectorNumber string      `json:"collector_number,omitempty"`
	Categories      []string    `json:"categories"`
	Card            *cards.Card `json:"card"`
}

// IsResolved reports whether the entry name was found in the catalog.
func (e Entry) IsResolved() bool {
	return e.Card != nil
}

// LineError A deck list line that could not be turned into an entry.
type LineError struct {
	LineNumber int       `json:"line_number"` // one based
	Line       string    `json:"line"`
	Error      string    `json:"error"`
	Code       ErrorCode `json:"code"`
}

// ResolveResult The parsed and resolved content of a whole deck list.
type ResolveResult struct {
	Entries    []Entry     `json:"entries"`
	TotalCards int         `json:"total_cards"`
	Errors     []LineError `json:"errors"`
}

type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
	ChangeModified  ChangeType = "modified"
	ChangeUnchanged ChangeType = "unchanged"
)

// DiffEntry The comparison outcome of one card name across two decks.
type DiffEntry struct {
	CardName    string      `json:"card_name"`
	OldQuantity int         `json:"old_quantity"`
	NewQuantity int         `json:"new_quantity"`
	ChangeType  ChangeType  `json:"change_type"`
	Card        *cards.Card `json:"card"`
	Categories  []string    `json:"categories"`
}

// DiffResult All card names of two decks, classified into buckets sorted by card name.
type DiffResult struct {
	Added       []DiffEntry `json:"added"`
	Removed     []DiffEntry `json:"removed"`
	Modified    []DiffEntry `json:"modified"`
	Unchanged   []DiffEntry `json:"unchanged"`
	ErrorsDeck1 []LineError `json:"errors_deck_1"`
	ErrorsDeck2 []LineError `json:"errors_deck_2"`
}

// HasChanges reports whether any card was added, removed or changed in quantity.
func (r DiffResult) HasChanges() bool {
	return r.ChangedCount() > 0
}

// ChangedCount returns the number of added, removed and modified card names.
func (r DiffResult) ChangedCount() int {
	return len(r.Added) + len(r.Removed) + len(r.Modified)
}
