package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPredicates(t *testing.T) {
	dated := Event{Date: "2022-01-05", Description: "Complaint filed"}
	assert.True(t, dated.HasDate())
	assert.True(t, dated.Valid())

	undated := Event{Description: "Undated letter"}
	assert.False(t, undated.HasDate())
	assert.True(t, undated.Valid())

	assert.False(t, Event{Date: "2022-01-05"}.Valid())
}

func TestEventDisplayFlattening(t *testing.T) {
	e := Event{
		Description:    "first line\nsecond line",
		AIObservations: "note one\nnote two",
	}

	assert.Equal(t, "first line second line", e.DisplayDescription())
	assert.Equal(t, "note one note two", e.DisplayObservations())
	// The stored values are untouched.
	assert.Contains(t, e.Description, "\n")
}

func TestEventJSONOmitsEmptyOptionals(t *testing.T) {
	data, err := json.Marshal(Event{
		Description:    "Hearing held",
		Parties:        []string{"Acme"},
		SourceDocument: "doc.pdf",
	})
	require.NoError(t, err)

	assert.NotContains(t, string(data), `"date"`)
	assert.NotContains(t, string(data), `"ai_observations"`)
	assert.Contains(t, string(data), `"source_document":"doc.pdf"`)
}
