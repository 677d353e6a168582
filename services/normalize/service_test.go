package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalizeMergerAgreementRecord(t *testing.T) {
	s := NewService(zap.NewNop())

	event := s.Normalize(map[string]interface{}{
		"date":        "January 5, 2022",
		"description": "Entered into a merger agreement",
		"parties":     []interface{}{"Company A", "Company B"},
		"source":      "ABC-123",
	}, "")

	require.True(t, event.Valid())
	assert.Equal(t, "2022-01-05", event.Date)
	assert.Equal(t, "Entered into a merger agreement", event.Description)
	assert.Equal(t, []string{"Company A", "Company B"}, event.Parties)
	assert.Equal(t, "ABC-123", event.SourceDocument)
}

func TestNormalizeAlternateKeySpellings(t *testing.T) {
	s := NewService(zap.NewNop())

	event := s.Normalize(map[string]interface{}{
		"event":        "Complaint filed",
		"participants": "Alice, Bob",
		"source":       "filing.pdf",
	}, "")

	assert.Equal(t, "Complaint filed", event.Description)
	assert.Equal(t, []string{"Alice", "Bob"}, event.Parties)
	assert.Equal(t, "filing.pdf", event.SourceDocument)
	assert.False(t, event.HasDate())
}

func TestNormalizePartiesStringDeduplicates(t *testing.T) {
	s := NewService(zap.NewNop())

	event := s.Normalize(map[string]interface{}{
		"description": "Settlement conference",
		"parties":     "Alice, Bob, Alice",
	}, "")

	assert.Equal(t, []string{"Alice", "Bob"}, event.Parties)
}

func TestNormalizePartiesDropsEmptyNames(t *testing.T) {
	s := NewService(zap.NewNop())

	event := s.Normalize(map[string]interface{}{
		"description": "Hearing",
		"parties":     []interface{}{" Alice ", "", "   ", "Bob"},
	}, "")

	assert.Equal(t, []string{"Alice", "Bob"}, event.Parties)
}

func TestNormalizeSourceOverride(t *testing.T) {
	s := NewService(zap.NewNop())

	// The extractor claims a different filename than the document being
	// processed; the caller-supplied name wins.
	event := s.Normalize(map[string]interface{}{
		"description":     "Notice served",
		"source_document": "hallucinated.pdf",
	}, "actual.pdf")

	assert.Equal(t, "actual.pdf", event.SourceDocument)
}

func TestNormalizeDefaultsToUnknownSource(t *testing.T) {
	s := NewService(zap.NewNop())

	event := s.Normalize(map[string]interface{}{
		"description": "Notice served",
	}, "")

	assert.Equal(t, "Unknown", event.SourceDocument)
}

func TestNormalizeUnparsableDateYieldsUndated(t *testing.T) {
	s := NewService(zap.NewNop())

	event := s.Normalize(map[string]interface{}{
		"description": "Undated letter",
		"date":        "sometime before the hearing maybe",
	}, "")

	assert.True(t, event.Valid())
	assert.False(t, event.HasDate())
}

func TestNormalizeNilAndBadRecords(t *testing.T) {
	s := NewService(zap.NewNop())

	assert.False(t, s.Normalize(nil, "doc.pdf").Valid())

	// Structured garbage in every field still never fails.
	event := s.Normalize(map[string]interface{}{
		"description": map[string]interface{}{"nested": true},
		"date":        12345678,
		"parties":     42.5,
	}, "doc.pdf")
	assert.NotPanics(t, func() { _ = event.Valid() })
	assert.Empty(t, event.Parties)
}

func TestNormalizeAllDropsEmptyDescriptions(t *testing.T) {
	s := NewService(zap.NewNop())

	events := s.NormalizeAll([]map[string]interface{}{
		{"description": "Kept event"},
		{"description": "   "},
		{"date": "2022-01-05"},
	}, "doc.pdf")

	require.Len(t, events, 1)
	assert.Equal(t, "Kept event", events[0].Description)
}
