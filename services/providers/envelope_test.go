package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEventEnvelope(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		records, err := DecodeEventEnvelope(`[{"description":"a"},{"description":"b"}]`)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "a", records[0]["description"])
	})

	t.Run("array wrapped in prose and code fences", func(t *testing.T) {
		response := "Here are the extracted events:\n```json\n[\n  {\"description\": \"Complaint filed\", \"date\": \"2022-01-05\"}\n]\n```\nLet me know if you need more."
		records, err := DecodeEventEnvelope(response)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Complaint filed", records[0]["description"])
	})

	t.Run("single object wrapped into a list", func(t *testing.T) {
		records, err := DecodeEventEnvelope(`The only event: {"description":"Hearing held"}`)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Hearing held", records[0]["description"])
	})

	t.Run("non-object items dropped", func(t *testing.T) {
		records, err := DecodeEventEnvelope(`[{"description":"a"}, "stray string", 42]`)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := DecodeEventEnvelope("I could not find any events in this document.")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoJSONContent))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := DecodeEventEnvelope(`[{"description": "unterminated]`)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNoJSONContent))
	})

	t.Run("empty array", func(t *testing.T) {
		records, err := DecodeEventEnvelope("[]")
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
