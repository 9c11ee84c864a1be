package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// rowTailRe matches a candidate record terminator: a row-sequence number at
// end of line, preceded by a comma or a closing quote.
var rowTailRe = regexp.MustCompile(`[,"](\d+)$`)

// Span is a contiguous run of physical lines hypothesized to form exactly
// one logical record.
type Span struct {
	Lines []string
}

// ScanSpans groups physical lines into record spans. A span closes exactly
// when a line's trailing digits equal the next expected row-sequence number,
// starting at 1. Trailing digits that do not equal the expectation are false
// boundaries (narrative text may itself end in a number) and the line is
// folded into the ongoing span. A non-blank accumulator left at end of input
// is emitted as a best-effort final span rather than dropped.
func ScanSpans(lines []string) []Span {
	var spans []Span
	var acc []string
	expected := 1

	for _, line := range lines {
		acc = append(acc, line)

		m := rowTailRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n != expected {
			continue
		}

		spans = append(spans, Span{Lines: acc})
		acc = nil
		expected++
	}

	if hasContent(acc) {
		spans = append(spans, Span{Lines: acc})
	}
	return spans
}

// hasContent reports whether any accumulated line is non-blank. A remainder
// of blank lines (the usual trailing newline) is not a record.
func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
