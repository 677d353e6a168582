package models

import "strings"

// UnknownSource is the source document name used when a record does not
// carry one.
const UnknownSource = "Unknown"

// Event represents a single dated-or-undated occurrence extracted from a
// document. Events are value objects: pipeline stages copy and pass them,
// nothing mutates a shared instance.
type Event struct {
	// Date is the canonical YYYY-MM-DD date, empty when the event is
	// undated.
	Date string `json:"date,omitempty"`

	// Description is the event text. An Event with an empty description
	// is invalid and must be excluded from result sets.
	Description string `json:"description"`

	// Parties are the distinct non-empty party names involved.
	Parties []string `json:"parties"`

	// SourceDocument identifies the document the event came from.
	SourceDocument string `json:"source_document"`

	// AIObservations is optional model commentary about the event.
	AIObservations string `json:"ai_observations,omitempty"`
}

// HasDate reports whether the event carries a date.
func (e Event) HasDate() bool {
	return e.Date != ""
}

// Valid reports whether the event is usable. Events that fail
// normalization come back with an empty description and are dropped.
func (e Event) Valid() bool {
	return e.Description != ""
}

// DisplayDescription returns the description flattened to a single line
// for table rendering. The stored value keeps its newlines.
func (e Event) DisplayDescription() string {
	return strings.ReplaceAll(e.Description, "\n", " ")
}

// DisplayObservations returns the AI observations flattened to a single
// line for table rendering.
func (e Event) DisplayObservations() string {
	return strings.ReplaceAll(e.AIObservations, "\n", " ")
}

// Analysis holds the derived observations for one chronology. All three
// categories may be empty; the renderer omits empty sections.
type Analysis struct {
	KeyObservations []string `json:"key_observations"`
	PotentialGaps   []string `json:"potential_gaps"`
	Recommendations []string `json:"recommendations"`
}

// Chronology is a sorted sequence of events plus its analysis. It is
// recomputed on every request and never persisted.
type Chronology struct {
	Events   []Event  `json:"events"`
	Analysis Analysis `json:"analysis"`
}
