package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// isoDate is the canonical layout every standardized date is rendered in.
const isoDate = "2006-01-02"

// nullSentinels are input values that short-circuit to "no date" before
// any parsing is attempted.
var nullSentinels = map[string]struct{}{
	"":     {},
	"null": {},
	"none": {},
	"n/a":  {},
}

// explicitLayouts are tried, in order, when the best-effort parser fails.
var explicitLayouts = []string{
	"2006-01-02", "2006/01/02",
	"02/01/2006", "01/02/2006",
	"02-01-2006", "01-02-2006",
	"January 2, 2006", "2 January 2006",
	"Jan 2, 2006", "2 Jan 2006",
	"20060102",
}

// digitRuns matches runs of four digits, else runs of one or two digits,
// for the last-resort component scan.
var digitRuns = regexp.MustCompile(`\d{4}|\d{1,2}`)

// StandardizeDate coerces an arbitrary date string to YYYY-MM-DD. It
// returns an empty string when no date can be recovered; that is a
// legitimate outcome, not an error.
func (s *Service) StandardizeDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if _, null := nullSentinels[strings.ToLower(trimmed)]; null {
		return ""
	}

	if parsed, ok := s.parseBestEffort(trimmed); ok {
		return parsed
	}

	for _, layout := range explicitLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(isoDate)
		}
	}

	if parsed, ok := scanDateComponents(trimmed); ok {
		return parsed
	}

	return ""
}

// parseBestEffort runs the string through the locale-aware parser with
// the same settings the extraction prompts assume: first day of the
// month when the day is ambiguous, past dates when the year is
// ambiguous, year-month-day component order, anchored at "now".
func (s *Service) parseBestEffort(raw string) (string, bool) {
	cfg := &dateparser.Configuration{
		CurrentTime:         s.now(),
		DateOrder:           dateparser.YMD,
		PreferredDayOfMonth: dateparser.First,
		PreferredDateSource: dateparser.Past,
	}

	dt, err := dateparser.Parse(cfg, raw)
	if err != nil || dt.Time.IsZero() {
		return "", false
	}
	return dt.Time.Format(isoDate), true
}

// scanDateComponents is the fallback heuristic: collect digit runs and
// classify them as year (1900-2100), month (1-12) and day (1-31), first
// match per slot. Succeeds only when all three are found.
func scanDateComponents(raw string) (string, bool) {
	runs := digitRuns.FindAllString(raw, -1)
	if len(runs) < 3 {
		return "", false
	}

	var year, month, day int
	for _, run := range runs {
		num, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		switch {
		case year == 0 && num >= 1900 && num <= 2100:
			year = num
		case month == 0 && num >= 1 && num <= 12:
			month = num
		case day == 0 && num >= 1 && num <= 31:
			day = num
		}
	}

	if year == 0 || month == 0 || day == 0 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
