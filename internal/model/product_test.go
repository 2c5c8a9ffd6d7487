package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    ID
		expectError bool
	}{
		{name: "Numeric id", input: `{"id": 1, "name": "Test"}`, expected: "1"},
		{name: "String id", input: `{"id": "P001", "name": "Test"}`, expected: "P001"},
		{name: "Null id", input: `{"id": null, "name": "Test"}`, expected: ""},
		{name: "Boolean id", input: `{"id": true, "name": "Test"}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			err := json.Unmarshal([]byte(tt.input), &p)

			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.ID)
			assert.Equal(t, "Test", p.Name)
		})
	}
}

func TestProduct_MarshalOmitsMissingPrice(t *testing.T) {
	data, err := json.Marshal(Product{ID: "1", Name: "Latte"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "1", "name": "Latte"}`, string(data))

	data, err = json.Marshal(Product{ID: "2", Name: "Espresso", Price: Ptr(1.99)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "2", "name": "Espresso", "price": 1.99}`, string(data))
}

func TestNewEnvelope(t *testing.T) {
	t.Run("Empty results encode as an empty array", func(t *testing.T) {
		data, err := json.Marshal(NewEnvelope())
		require.NoError(t, err)
		assert.JSONEq(t, `{"results": [], "error": ""}`, string(data))
	})

	t.Run("Nil slice is normalised", func(t *testing.T) {
		var products []Product
		env := NewEnvelope(products...)
		assert.NotNil(t, env.Results)
		assert.Empty(t, env.Results)
	})

	t.Run("Single result", func(t *testing.T) {
		env := NewEnvelope(Product{ID: "1", Name: "Latte"})
		assert.Equal(t, []Product{{ID: "1", Name: "Latte"}}, env.Results)
		assert.Equal(t, "", env.Error)
	})
}
