package domain

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
)

var (
	// leadingMarkerRe strips the marker residue left at the start of a
	// reconstructed narrative: the empty quoted field, an optional quote,
	// and any following whitespace.
	leadingMarkerRe = regexp.MustCompile(`^"","?\s*`)

	// trailingQuoteRowRe and trailingRowRe strip the record terminator from
	// the end of a reconstructed narrative: the row-sequence number with or
	// without its closing quote.
	trailingQuoteRowRe = regexp.MustCompile(`"\s*,\s*\d+$`)
	trailingRowRe      = regexp.MustCompile(`,\s*\d+$`)
)

// Record is one recovered export row, keyed by header field name.
type Record map[string]string

// ParseMethod identifies which recovery path produced a record.
type ParseMethod string

const (
	// MethodSingleLine is the strict CSV parse of a well-formed record.
	MethodSingleLine ParseMethod = "single_line"
	// MethodReconstructed is the malformed multi-line reconstruction.
	MethodReconstructed ParseMethod = "reconstructed"
	// MethodFallback is the collapse-and-reparse of a marker-less
	// multi-line span.
	MethodFallback ParseMethod = "fallback"
)

// ParseSpan converts one closed span into a record. Dispatch is purely on
// span length: one physical line takes the well-formed path, anything longer
// takes the reconstruction path. A non-nil error means the span yields no
// record; callers drop it and continue.
func ParseSpan(span Span, schema Schema, separator string) (Record, ParseMethod, error) {
	if len(span.Lines) == 1 {
		rec, err := parseSingleLine(span.Lines[0], schema, separator)
		return rec, MethodSingleLine, err
	}
	return reconstructMalformed(span, schema, separator)
}

// parseSingleLine parses a well-formed record with the quote-aware
// tokenizer. The field count must equal the schema arity exactly; narrative
// fields are normalized even though embedded newlines are not expected here.
func parseSingleLine(line string, schema Schema, separator string) (Record, error) {
	values, err := splitQuoted(line)
	if err != nil {
		return nil, fmt.Errorf("tokenize record: %w", err)
	}
	if len(values) != schema.Len() {
		return nil, fmt.Errorf("record has %d fields, schema expects %d", len(values), schema.Len())
	}

	rec := make(Record, schema.Len())
	for i, name := range schema.Fields() {
		rec[name] = values[i]
	}
	for _, name := range []string{schema.EventNarrative(), schema.EpisodeNarrative()} {
		if rec[name] != "" {
			rec[name] = CleanNarrative(rec[name], separator)
		}
	}
	return rec, nil
}

// reconstructMalformed recovers a record from a multi-line span of the old
// convention: structured prefix, empty-narrative marker, unquoted narrative
// text across the remaining lines, trailing row-sequence number.
func reconstructMalformed(span Span, schema Schema, separator string) (Record, ParseMethod, error) {
	last := span.Lines[len(span.Lines)-1]
	tail := rowTailRe.FindStringSubmatch(last)
	if tail == nil {
		return nil, MethodReconstructed, fmt.Errorf("multi-line span has no trailing row number")
	}
	rowNumber := tail[1]

	first := span.Lines[0]
	markerPos, found := findEmptyNarrativeMarker(first)
	if !found {
		// No marker anywhere in the first line. Collapse the span to one
		// line and let the strict parser have a go at it.
		collapsed := strings.Join(span.Lines, separator)
		rec, err := parseSingleLine(collapsed, schema, separator)
		if err != nil {
			return nil, MethodFallback, fmt.Errorf("no narrative marker and fallback parse failed: %w", err)
		}
		return rec, MethodFallback, nil
	}

	structured := splitLenient(first[:markerPos])

	// Everything after the marker's leading comma, plus the rest of the
	// span, is raw narrative. Strip the marker residue and the terminator.
	narrative := first[markerPos+1:]
	for _, line := range span.Lines[1:] {
		narrative += "\n" + line
	}
	narrative = leadingMarkerRe.ReplaceAllString(narrative, "")
	narrative = trailingQuoteRowRe.ReplaceAllString(narrative, "")
	narrative = trailingRowRe.ReplaceAllString(narrative, "")

	rec := make(Record, schema.Len())
	for i, name := range schema.StructuredFields() {
		if i < len(structured) {
			rec[name] = structured[i]
		} else {
			rec[name] = ""
		}
	}
	rec[schema.EventNarrative()] = ""
	rec[schema.EpisodeNarrative()] = CleanNarrative(narrative, separator)
	rec[schema.RowNumber()] = rowNumber

	return rec, MethodReconstructed, nil
}

// splitQuoted tokenizes one line into field values, honoring quoted fields
// with doubled-quote escaping. Returns an error on unbalanced quoting.
func splitQuoted(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	return r.Read()
}

// splitLenient tokenizes a structured prefix, degrading to a plain comma
// split when the quote-aware parse fails. Prefixes come from lines the old
// convention already mangled, so leniency beats rejection here.
func splitLenient(line string) []string {
	values, err := splitQuoted(line)
	if err != nil {
		return strings.Split(line, ",")
	}
	return values
}
