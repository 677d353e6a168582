// Package report renders a chronology as the markdown document returned
// to callers. The layout is a stable contract: header names, column
// names and bullet formatting must not drift.
package report

import (
	"strings"

	"github.com/lexops/casechron/models"
)

// missingValue is rendered in table cells whose field is empty.
const missingValue = "N/A"

// Service renders chronology reports.
type Service struct{}

// NewService creates a report renderer.
func NewService() *Service {
	return &Service{}
}

// Render produces the full markdown document for sorted events and their
// analysis. Row order follows the input exactly; the renderer never
// re-sorts.
func (s *Service) Render(sortedEvents []models.Event, analysis models.Analysis) string {
	var b strings.Builder

	b.WriteString("# Case Chronology\n\n")
	b.WriteString("## Timeline of Events\n\n")
	s.writeTable(&b, sortedEvents)

	writeSection(&b, "Key Observations", analysis.KeyObservations)
	writeSection(&b, "Timeline Gaps", analysis.PotentialGaps)
	writeSection(&b, "Recommendations", analysis.Recommendations)

	return b.String()
}

// writeTable writes the event table. The AI Observations column appears
// only when at least one event carries observations.
func (s *Service) writeTable(b *strings.Builder, events []models.Event) {
	withObservations := false
	for _, event := range events {
		if event.AIObservations != "" {
			withObservations = true
			break
		}
	}

	headers := []string{"Date", "Description", "Parties", "Source"}
	if withObservations {
		headers = append(headers, "AI Observations")
	}

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(headers)) + "\n")

	for _, event := range events {
		row := []string{
			orMissing(event.Date),
			orMissing(event.DisplayDescription()),
			orMissing(strings.Join(event.Parties, ", ")),
			orMissing(event.SourceDocument),
		}
		if withObservations {
			row = append(row, orMissing(event.DisplayObservations()))
		}
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n## " + title + "\n\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}

func orMissing(value string) string {
	if strings.TrimSpace(value) == "" {
		return missingValue
	}
	return value
}
