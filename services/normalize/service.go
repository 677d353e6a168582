// Package normalize coerces raw extractor output into canonical Events.
//
// Extractors return loosely structured records whose keys and value
// types drift between model versions: two spellings per field are
// accepted (description|event, parties|participants,
// source_document|source), first match wins. Normalization never fails;
// a record that cannot be salvaged comes back as a dead Event with an
// empty description, which callers must drop.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/lexops/casechron/models"
	"go.uber.org/zap"
)

// Service normalizes raw event records.
type Service struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a normalizer service.
func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger: logger,
		now:    time.Now,
	}
}

// Normalize coerces one raw record into the canonical Event shape.
// sourceDoc, when non-empty, is the authoritative document name and
// overrides whatever the record claims; extractors occasionally
// hallucinate filenames.
func (s *Service) Normalize(raw map[string]interface{}, sourceDoc string) (event models.Event) {
	// The contract is "never fails": any surprise inside normalization
	// degrades to the dead Event instead of propagating.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("normalization panicked, dropping record",
				zap.Any("cause", r))
			event = models.Event{Parties: []string{}}
		}
	}()

	if raw == nil {
		return models.Event{Parties: []string{}}
	}

	event = models.Event{
		Description:    strings.TrimSpace(stringify(firstOf(raw, "description", "event"))),
		Date:           s.StandardizeDate(stringify(raw["date"])),
		Parties:        normalizeParties(firstOf(raw, "parties", "participants")),
		SourceDocument: resolveSource(raw, sourceDoc),
		AIObservations: strings.TrimSpace(stringify(raw["ai_observations"])),
	}
	return event
}

// NormalizeAll normalizes a batch of raw records and drops the dead ones.
func (s *Service) NormalizeAll(raws []map[string]interface{}, sourceDoc string) []models.Event {
	events := make([]models.Event, 0, len(raws))
	for _, raw := range raws {
		event := s.Normalize(raw, sourceDoc)
		if !event.Valid() {
			s.logger.Debug("dropping event with empty description",
				zap.String("source_document", sourceDoc))
			continue
		}
		events = append(events, event)
	}
	return events
}

// firstOf returns the value of the first key present with a non-nil value.
func firstOf(raw map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// stringify renders an arbitrary JSON value as a string. nil maps to "".
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; integral values should not
		// grow a ".000000" suffix.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// normalizeParties accepts a comma-separated string or a list of values
// and returns trimmed, deduplicated party names. First-seen order is
// kept so output is deterministic.
func normalizeParties(v interface{}) []string {
	var pieces []string
	switch val := v.(type) {
	case string:
		pieces = strings.Split(val, ",")
	case []interface{}:
		for _, item := range val {
			pieces = append(pieces, stringify(item))
		}
	case []string:
		pieces = val
	default:
		return []string{}
	}

	seen := make(map[string]struct{}, len(pieces))
	parties := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		name := strings.TrimSpace(piece)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		parties = append(parties, name)
	}
	return parties
}

// resolveSource picks the source document name: the caller-supplied name
// wins, then the record's own claim, then the Unknown placeholder.
func resolveSource(raw map[string]interface{}, sourceDoc string) string {
	if sourceDoc != "" {
		return sourceDoc
	}
	if claimed := strings.TrimSpace(stringify(firstOf(raw, "source_document", "source"))); claimed != "" {
		return claimed
	}
	return models.UnknownSource
}
