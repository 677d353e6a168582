package chronology

import (
	"testing"

	"github.com/lexops/casechron/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func event(date, description, source string, parties ...string) models.Event {
	return models.Event{
		Date:           date,
		Description:    description,
		Parties:        parties,
		SourceDocument: source,
	}
}

func TestSortOrdersByDateThenSource(t *testing.T) {
	s := NewService(zap.NewNop())

	sorted := s.Sort([]models.Event{
		event("2022-03-01", "c", "b.pdf"),
		event("2022-01-05", "a", "a.pdf"),
		event("2022-03-01", "b", "a.pdf"),
	})

	require.Len(t, sorted, 3)
	assert.Equal(t, "a", sorted[0].Description)
	assert.Equal(t, "b", sorted[1].Description)
	assert.Equal(t, "c", sorted[2].Description)
}

func TestSortUndatedEventsLast(t *testing.T) {
	s := NewService(zap.NewNop())

	sorted := s.Sort([]models.Event{
		event("", "undated", "z.pdf"),
		event("2022-12-31", "dated late", "a.pdf"),
		event("2021-01-01", "dated early", "a.pdf"),
	})

	assert.Equal(t, "dated early", sorted[0].Description)
	assert.Equal(t, "dated late", sorted[1].Description)
	assert.Equal(t, "undated", sorted[2].Description)
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	s := NewService(zap.NewNop())

	input := []models.Event{
		event("2022-01-05", "first in input", "same.pdf"),
		event("2022-01-05", "second in input", "same.pdf"),
		event("", "undated one", "same.pdf"),
		event("", "undated two", "same.pdf"),
	}

	sorted := s.Sort(input)
	assert.Equal(t, "first in input", sorted[0].Description)
	assert.Equal(t, "second in input", sorted[1].Description)
	assert.Equal(t, "undated one", sorted[2].Description)
	assert.Equal(t, "undated two", sorted[3].Description)

	assert.Equal(t, sorted, s.Sort(sorted))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	s := NewService(zap.NewNop())

	input := []models.Event{
		event("2022-03-01", "later", "a.pdf"),
		event("2022-01-05", "earlier", "a.pdf"),
	}
	_ = s.Sort(input)

	assert.Equal(t, "later", input[0].Description)
}

func TestAnalyzeGapDetection(t *testing.T) {
	s := NewService(zap.NewNop())

	t.Run("31 day gap reported", func(t *testing.T) {
		analysis := s.Analyze([]models.Event{
			event("2022-01-01", "a", "x.pdf"),
			event("2022-02-01", "b", "x.pdf"),
		})
		require.Len(t, analysis.PotentialGaps, 1)
		assert.Equal(t, "Gap of 31 days between events on 2022-01-01 and 2022-02-01", analysis.PotentialGaps[0])
	})

	t.Run("30 day gap not reported", func(t *testing.T) {
		analysis := s.Analyze([]models.Event{
			event("2022-01-01", "a", "x.pdf"),
			event("2022-01-31", "b", "x.pdf"),
		})
		assert.Empty(t, analysis.PotentialGaps)
	})

	t.Run("undated neighbors skipped", func(t *testing.T) {
		analysis := s.Analyze([]models.Event{
			event("2022-01-01", "a", "x.pdf"),
			event("2022-06-01", "b", "x.pdf"),
			event("", "c", "x.pdf"),
		})
		// Only the a->b pair is compared; b->c has an undated side.
		require.Len(t, analysis.PotentialGaps, 1)
	})
}

func TestAnalyzeMissingDates(t *testing.T) {
	s := NewService(zap.NewNop())

	analysis := s.Analyze([]models.Event{
		event("2022-01-01", "a", "x.pdf"),
		event("", "b", "x.pdf"),
		event("", "c", "x.pdf"),
	})

	require.Len(t, analysis.Recommendations, 1)
	assert.Equal(t,
		"Found 2 events with missing dates. Consider reviewing source documents.",
		analysis.Recommendations[0])
}

func TestAnalyzePartyRollup(t *testing.T) {
	s := NewService(zap.NewNop())

	analysis := s.Analyze([]models.Event{
		event("2022-01-01", "a", "x.pdf", "Zeta Corp", "Acme"),
		event("2022-01-02", "b", "x.pdf", "Acme", "Midline LLC"),
	})

	require.Len(t, analysis.KeyObservations, 1)
	assert.Equal(t, "Key parties involved: Acme, Midline LLC, Zeta Corp", analysis.KeyObservations[0])
}

func TestAnalyzeEmptyCategories(t *testing.T) {
	s := NewService(zap.NewNop())

	analysis := s.Analyze([]models.Event{
		event("2022-01-01", "a", "x.pdf"),
	})

	assert.Empty(t, analysis.KeyObservations)
	assert.Empty(t, analysis.PotentialGaps)
	assert.Empty(t, analysis.Recommendations)
}

func TestAnalyzeIsPure(t *testing.T) {
	s := NewService(zap.NewNop())

	input := []models.Event{
		event("2022-01-01", "a", "x.pdf", "Acme"),
		event("2022-06-01", "b", "x.pdf"),
		event("", "c", "x.pdf"),
	}

	assert.Equal(t, s.Analyze(input), s.Analyze(input))
}
