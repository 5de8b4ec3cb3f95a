package yrc_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewfead/yrc/internal/yrc"
)

func Test_Unit_Parse(t *testing.T) {
	t.Run("keeps every field", func(t *testing.T) {
		listings, err := yrc.Parse(validLiteral)
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, "2024-05-01", listings[0].Date)

		var source map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(validLiteral), &source))
		actual, err := json.Marshal(listings[0].Shows)
		require.NoError(t, err)
		assert.JSONEq(t, string(source["2024-05-01"]), string(actual))
	})

	t.Run("keeps date order", func(t *testing.T) {
		listings, err := yrc.Parse(`{"2024-05-03": [], "2024-05-01": [], "2024-05-02": []}`)
		require.NoError(t, err)

		var dates []string
		for _, l := range listings {
			dates = append(dates, l.Date)
		}
		assert.Equal(t, []string{"2024-05-03", "2024-05-01", "2024-05-02"}, dates)
	})

	t.Run("empty object", func(t *testing.T) {
		listings, err := yrc.Parse(`{}`)
		require.NoError(t, err)
		assert.Empty(t, listings)
	})

	t.Run("loose field types", func(t *testing.T) {
		listings, err := yrc.Parse(`{"d": [{"title": "A", "duration": 94, "rating": null, "actors": "Solo Actor",
			"times": [{"time": "1:00 PM", "isSoldOut": "no"}]}]}`)
		require.NoError(t, err)
		require.Len(t, listings, 1)
		show := listings[0].Shows[0]
		assert.Equal(t, "94", show.Duration.String())
		assert.False(t, show.Rating.Present())
		assert.False(t, show.Director.Present())
		assert.Equal(t, []string{"Solo Actor"}, show.ActorNames())
		assert.Equal(t, "no", show.Times[0].IsSoldOut.String())
		assert.False(t, show.Times[0].BookingLink.Present())
	})
}

func Test_Unit_Parse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "trailing comma", input: `{"a": [],}`},
		{name: "not an object", input: `[{"a": []}]`},
		{name: "trailing data", input: `{"a": []} var x`},
		{name: "wrong value type", input: `{"a": "b"}`},
		{name: "single quotes", input: `{'a': []}`},
		{name: "empty", input: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings, err := yrc.Parse(tt.input)
			assert.Nil(t, listings)

			var parseErr *yrc.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.input, parseErr.Snippet)
		})
	}
}

func Test_Unit_Parse_SnippetIsTruncated(t *testing.T) {
	input := "{" + strings.Repeat("é", 600)

	_, err := yrc.Parse(input)

	var parseErr *yrc.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 500, len([]rune(parseErr.Snippet)))
	assert.True(t, strings.HasPrefix(input, parseErr.Snippet))
}
