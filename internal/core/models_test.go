package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewfead/yrc/internal/core"
)

func Test_Unit_Value(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		expectPresent bool
		expectString  string
	}{
		{name: "string", raw: `"PG-13"`, expectPresent: true, expectString: "PG-13"},
		{name: "number", raw: `94`, expectPresent: true, expectString: "94"},
		{name: "bool", raw: `false`, expectPresent: true, expectString: "false"},
		{name: "object", raw: `{ "a" : 1 }`, expectPresent: true, expectString: `{"a":1}`},
		{name: "null", raw: `null`, expectPresent: false, expectString: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v core.Value
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))

			assert.Equal(t, tt.expectPresent, v.Present())
			assert.Equal(t, tt.expectString, v.String())
		})
	}

	t.Run("absent", func(t *testing.T) {
		var show core.Show
		require.NoError(t, json.Unmarshal([]byte(`{"title": "A"}`), &show))
		assert.False(t, show.Director.Present())

		out, err := json.Marshal(show.Director)
		require.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})
}

func Test_Unit_ActorNames(t *testing.T) {
	tests := []struct {
		name   string
		show   string
		expect []string
	}{
		{name: "list", show: `{"actors": ["A", "B"]}`, expect: []string{"A", "B"}},
		{name: "mixed list", show: `{"actors": ["A", 7]}`, expect: []string{"A", "7"}},
		{name: "single string", show: `{"actors": " A "}`, expect: []string{"A"}},
		{name: "missing", show: `{}`, expect: nil},
		{name: "null", show: `{"actors": null}`, expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var show core.Show
			require.NoError(t, json.Unmarshal([]byte(tt.show), &show))
			assert.Equal(t, tt.expect, show.ActorNames())
		})
	}
}
