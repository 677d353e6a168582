// Package chronology orders normalized events and derives timeline
// observations from them.
package chronology

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lexops/casechron/models"
	"go.uber.org/zap"
)

const (
	// UndatedSortKey sorts undated events after every dated one.
	UndatedSortKey = "9999-12-31"

	// GapThresholdDays is the span between adjacent dated events above
	// which a timeline gap is reported.
	GapThresholdDays = 30
)

// Service sorts and analyzes chronologies.
type Service struct {
	logger *zap.Logger
}

// NewService creates a chronology service.
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Sort returns the events in chronological order: ascending by date with
// undated events last, then by source document. The sort is stable, so
// events sharing a key keep their input order.
func (s *Service) Sort(events []models.Event) []models.Event {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := sortKey(sorted[i]), sortKey(sorted[j])
		if ki != kj {
			return ki < kj
		}
		return sorted[i].SourceDocument < sorted[j].SourceDocument
	})
	return sorted
}

// Analyze derives gap, missing-date and party observations from a sorted
// event list. It is pure: same input, same Analysis.
func (s *Service) Analyze(sortedEvents []models.Event) models.Analysis {
	analysis := models.Analysis{
		KeyObservations: []string{},
		PotentialGaps:   []string{},
		Recommendations: []string{},
	}

	for i := 0; i+1 < len(sortedEvents); i++ {
		current, next := sortedEvents[i], sortedEvents[i+1]
		if !current.HasDate() || !next.HasDate() {
			continue
		}
		gapDays, ok := daysBetween(current.Date, next.Date)
		if !ok {
			s.logger.Warn("unparsable canonical date in analysis",
				zap.String("from", current.Date),
				zap.String("to", next.Date))
			continue
		}
		if gapDays > GapThresholdDays {
			analysis.PotentialGaps = append(analysis.PotentialGaps,
				fmt.Sprintf("Gap of %d days between events on %s and %s",
					gapDays, current.Date, next.Date))
		}
	}

	missing := 0
	for _, event := range sortedEvents {
		if !event.HasDate() {
			missing++
		}
	}
	if missing > 0 {
		analysis.Recommendations = append(analysis.Recommendations,
			fmt.Sprintf("Found %d events with missing dates. Consider reviewing source documents.", missing))
	}

	parties := make(map[string]struct{})
	for _, event := range sortedEvents {
		for _, party := range event.Parties {
			parties[party] = struct{}{}
		}
	}
	if len(parties) > 0 {
		names := make([]string, 0, len(parties))
		for name := range parties {
			names = append(names, name)
		}
		sort.Strings(names)
		analysis.KeyObservations = append(analysis.KeyObservations,
			fmt.Sprintf("Key parties involved: %s", strings.Join(names, ", ")))
	}

	return analysis
}

func sortKey(event models.Event) string {
	if !event.HasDate() {
		return UndatedSortKey
	}
	return event.Date
}

// daysBetween returns the day difference between two canonical dates.
func daysBetween(from, to string) (int, bool) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return 0, false
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return 0, false
	}
	return int(end.Sub(start).Hours() / 24), true
}
