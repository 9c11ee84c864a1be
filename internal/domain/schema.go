package domain

import (
	"fmt"
	"strings"
)

// Schema is the ordered field-name list taken verbatim from the header line.
// It defines both the expected record arity and the output column order. The
// trailing three columns play fixed roles regardless of their names: event
// narrative, episode narrative, row-sequence number.
type Schema struct {
	fields []string
}

// NewSchema parses a header line into a Schema. Header lines are plain
// comma-delimited with no quoting. At least three columns are required to
// carry the narrative and row-number roles.
func NewSchema(header string) (Schema, error) {
	fields := strings.Split(header, ",")
	if header == "" || len(fields) < 3 {
		return Schema{}, fmt.Errorf("header has %d columns, need at least narrative and row-number columns", len(fields))
	}
	return Schema{fields: fields}, nil
}

// Fields returns all field names in output column order.
func (s Schema) Fields() []string { return s.fields }

// Len returns the expected field count of every record.
func (s Schema) Len() int { return len(s.fields) }

// StructuredFields returns the field names preceding the narrative section.
func (s Schema) StructuredFields() []string { return s.fields[:len(s.fields)-3] }

// EventNarrative returns the event-narrative column name.
func (s Schema) EventNarrative() string { return s.fields[len(s.fields)-3] }

// EpisodeNarrative returns the episode-narrative column name.
func (s Schema) EpisodeNarrative() string { return s.fields[len(s.fields)-2] }

// RowNumber returns the row-sequence column name.
func (s Schema) RowNumber() string { return s.fields[len(s.fields)-1] }
