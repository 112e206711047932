package deck_test

import (
	"testing"

	"github.com/konstantinfoerster/deck-diff-go/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffModified(t *testing.T) {
	result := newResolver().Diff("1x Forest [Old]", "2x Forest [New]")

	require.Len(t, result.Modified, 1)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Unchanged)

	m := result.Modified[0]
	assert.Equal(t, "Forest", m.CardName)
	assert.Equal(t, 1, m.OldQuantity)
	assert.Equal(t, 2, m.NewQuantity)
	assert.Equal(t, deck.ChangeModified, m.ChangeType)
	assert.Equal(t, []string{"New"}, m.Categories)
	require.NotNil(t, m.Card)
	assert.Equal(t, "forest-1", m.Card.ID)
}

func TestDiffAddedAndRemoved(t *testing.T) {
	removed := newResolver().Diff("1x Forest", "")
	added := newResolver().Diff("", "1x Forest")

	require.Len(t, removed.Removed, 1)
	assert.Equal(t, deck.DiffEntry{
		CardName: "Forest", OldQuantity: 1, NewQuantity: 0, ChangeType: deck.ChangeRemoved,
		Card: removed.Removed[0].Card, Categories: []string{},
	}, removed.Removed[0])
	assert.Empty(t, removed.Added)

	require.Len(t, added.Added, 1)
	assert.Equal(t, 0, added.Added[0].OldQuantity)
	assert.Equal(t, 1, added.Added[0].NewQuantity)
	assert.Equal(t, deck.ChangeAdded, added.Added[0].ChangeType)
	assert.Empty(t, added.Removed)
}

func TestDiffUnchangedTakesOldCategories(t *testing.T) {
	result := newResolver().Diff("4x Lightning Bolt [Burn]", "4x Lightning Bolt [Removal]")

	require.Len(t, result.Unchanged, 1)
	assert.Equal(t, []string{"Burn"}, result.Unchanged[0].Categories)
	assert.False(t, result.HasChanges())
	assert.Equal(t, 0, result.ChangedCount())
}

func TestDiffIdenticalDecksHaveNoChanges(t *testing.T) {
	text := "1x Forest\n4x Lightning Bolt\n2x Unknown Card\n"

	result := newResolver().Diff(text, text)

	assert.Len(t, result.Unchanged, 3)
	assert.False(t, result.HasChanges())
}

func TestDiffLastDuplicateWins(t *testing.T) {
	result := newResolver().Diff("1x Forest\n3x Forest", "3x Forest")

	require.Len(t, result.Unchanged, 1)
	assert.Equal(t, 3, result.Unchanged[0].OldQuantity)
}

func TestDiffSortsBucketsByName(t *testing.T) {
	result := newResolver().Diff("", "1x Lightning Bolt\n1x Blasphemous Act\n1x Forest")

	require.Len(t, result.Added, 3)
	assert.Equal(t, "Blasphemous Act", result.Added[0].CardName)
	assert.Equal(t, "Forest", result.Added[1].CardName)
	assert.Equal(t, "Lightning Bolt", result.Added[2].CardName)
	assert.Equal(t, 3, result.ChangedCount())
}

func TestDiffKeepsErrorsSeparate(t *testing.T) {
	result := newResolver().Diff("0x Foo", "bad\nworse")

	assert.Len(t, result.ErrorsDeck1, 1)
	assert.Len(t, result.ErrorsDeck2, 2)
	assert.False(t, result.HasChanges())
}

func TestCompare(t *testing.T) {
	oldDeck := deck.ResolveResult{Entries: []deck.Entry{{Quantity: 2, Name: "A"}, {Quantity: 1, Name: "B"}}}
	newDeck := deck.ResolveResult{Entries: []deck.Entry{{Quantity: 1, Name: "A"}, {Quantity: 1, Name: "C"}}}

	result := deck.Compare(oldDeck, newDeck)

	require.Len(t, result.Modified, 1)
	require.Len(t, result.Removed, 1)
	require.Len(t, result.Added, 1)
	assert.Equal(t, "A", result.Modified[0].CardName)
	assert.Equal(t, "B", result.Removed[0].CardName)
	assert.Equal(t, "C", result.Added[0].CardName)
	assert.Equal(t, []string{}, result.Added[0].Categories)
}
