package mcputils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockArgumentGetter implements ArgumentGetter for testing
type mockArgumentGetter struct {
	args map[string]interface{}
}

func (m *mockArgumentGetter) GetArguments() map[string]interface{} {
	return m.args
}

// parseArgs mirrors the shape of the parse tool's arguments.
type parseArgs struct {
	Kind     string          `json:"kind"`
	Input    json.RawMessage `json:"input"`
	Format   string          `json:"format,omitempty"`
	MaxWidth int             `json:"max_width,omitempty"`
	Include  []string        `json:"include,omitempty"`
	Filter   bool            `json:"filter,omitempty"`
}

func bind(t *testing.T, args map[string]interface{}) parseArgs {
	t.Helper()
	var result parseArgs
	require.NoError(t, CoerceBindArguments(&mockArgumentGetter{args: args}, &result))
	return result
}

func TestCoerceBindArguments(t *testing.T) {
	t.Parallel()

	t.Run("object input is re-encoded as JSON", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{
			"kind":  "sort",
			"input": map[string]interface{}{"id": "Set", "elementsSort": map[string]interface{}{"id": "Int"}},
		})

		assert.Equal(t, "sort", result.Kind)
		assert.JSONEq(t, `{"id":"Set","elementsSort":{"id":"Int"}}`, string(result.Input))
	})

	t.Run("string input is kept verbatim", func(t *testing.T) {
		t.Parallel()
		raw := `{"type":"variable","id":"x@1","sort":{"id":"Ref"}}`
		result := bind(t, map[string]interface{}{"kind": "term", "input": raw})

		assert.Equal(t, raw, string(result.Input))
	})

	t.Run("array input", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{
			"kind":  "log",
			"input": []interface{}{map[string]interface{}{"value": "m"}},
		})

		assert.JSONEq(t, `[{"value":"m"}]`, string(result.Input))
	})

	t.Run("absent input stays nil", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{"kind": "term"})
		assert.Nil(t, result.Input)
	})

	t.Run("JSON string arrays", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{"include": `["val", "next"]`})
		assert.Equal(t, []string{"val", "next"}, result.Include)
	})

	t.Run("already proper types", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{
			"include":   []string{"val"},
			"max_width": 80,
			"filter":    true,
		})

		assert.Equal(t, []string{"val"}, result.Include)
		assert.Equal(t, 80, result.MaxWidth)
		assert.True(t, result.Filter)
	})

	t.Run("JSON numbers and booleans", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{"max_width": "100", "filter": "true"})

		assert.Equal(t, 100, result.MaxWidth)
		assert.True(t, result.Filter)
	})

	t.Run("comma-separated fallback", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{"include": "val,next,wand"})
		assert.Equal(t, []string{"val", "next", "wand"}, result.Include)
	})

	t.Run("invalid JSON is passed through", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{"include": "[invalid json"})
		assert.Equal(t, []string{"[invalid json"}, result.Include)
	})

	t.Run("null and empty strings", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{"format": "", "include": nil, "max_width": nil})

		assert.Empty(t, result.Format)
		assert.Empty(t, result.Include)
		assert.Zero(t, result.MaxWidth)
	})

	t.Run("weakly typed conversions", func(t *testing.T) {
		t.Parallel()
		result := bind(t, map[string]interface{}{"kind": 123, "filter": 1})

		assert.Equal(t, "123", result.Kind)
		assert.True(t, result.Filter)
	})
}
