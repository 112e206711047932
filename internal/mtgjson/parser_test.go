package mtgjson

import (
	"context"
	"strings"
	"testing"

	"github.com/konstantinfoerster/deck-diff-go/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(ctx context.Context, t *testing.T, input string) ([]mtgjsonCard, error) {
	t.Helper()

	out := make(chan *mtgjsonCard)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		errc <- parse(ctx, strings.NewReader(input), out)
	}()

	var result []mtgjsonCard
	for c := range out {
		result = append(result, *c)
	}

	return result, <-errc
}

func TestParseFailures(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty content",
			input:    ``,
			expected: "failed to get next token",
		},
		{
			name:     "invalid json",
			input:    `{"data": }`,
			expected: "invalid character",
		},
		{
			name:     "invalid json start",
			input:    `[]`,
			expected: "expected token to be",
		},
		{
			name:     "cards is not an array",
			input:    `{"data": {"10E": {"cards": {}}}}`,
			expected: "expected token to be",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := collect(t.Context(), t, tc.input)

			require.ErrorContains(t, err, tc.expected)
		})
	}
}

func TestParseNoCards(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{name: "root is empty", input: `{}`},
		{name: "no sets", input: `{"data": {}}`},
		{name: "set has no data", input: `{"data": {"10E": {}}}`},
		{name: "set without cards", input: `{"data": {"10E": {"code": "10E", "translations": {}}}}`},
		{name: "lowercase set key", input: `{"data": {"abc": {"cards": [{"name": "A"}]}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := collect(t.Context(), t, tc.input)

			require.NoError(t, err)
			assert.Empty(t, actual)
		})
	}
}

func TestParseCards(t *testing.T) {
	content := test.FileContent(t, "testdata/allPrintings.json")

	actual, err := collect(t.Context(), t, string(content))

	require.NoError(t, err)
	require.Len(t, actual, 6)
	assert.Equal(t, mtgjsonCard{
		UUID:   "4e8a3a59-3b4b-5bbf-b2a1-1d5b7c0f8e01",
		Name:   "Balance",
		Code:   "2ED",
		Number: "3",
		Layout: "normal",
	}, actual[0])
	assert.Equal(t, "b", actual[3].Side)
	assert.Equal(t, "Insectile Aberration", actual[3].FaceName)
	assert.Equal(t, "Card Without Id", actual[5].Name)
}

func TestParseDataAfterOtherKeys(t *testing.T) {
	input := `{"data": {"10E": {"cards": [{"uuid": "1", "name": "A"}]}}, "meta": {"version": "5"}}`

	actual, err := collect(t.Context(), t, input)

	require.NoError(t, err)
	assert.Len(t, actual, 1)
}

func TestParseStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	out := make(chan *mtgjsonCard)
	err := parse(ctx, strings.NewReader(`{"data": {"10E": {"cards": [{"uuid": "1", "name": "A"}]}}}`), out)

	require.ErrorIs(t, err, context.Canceled)
}

func TestIsSecondarySide(t *testing.T) {
	assert.False(t, (&mtgjsonCard{}).isSecondarySide())
	assert.False(t, (&mtgjsonCard{Side: "a"}).isSecondarySide())
	assert.True(t, (&mtgjsonCard{Side: "b"}).isSecondarySide())
	assert.True(t, (&mtgjsonCard{Side: "c"}).isSecondarySide())
}
