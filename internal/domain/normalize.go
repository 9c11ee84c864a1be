package domain

import "strings"

// DefaultNarrativeSeparator joins narrative paragraphs that originally sat on
// separate physical lines. It matches the separator the modern export
// convention already uses inside narrative fields.
const DefaultNarrativeSeparator = " | "

// NormalizeLineEndings collapses CRLF and bare CR line endings to LF.
func NormalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// SplitDocument normalizes line endings and splits raw export content into
// the header line and the remaining physical lines. Empty input yields an
// empty header and no lines.
func SplitDocument(content string) (header string, lines []string) {
	if content == "" {
		return "", nil
	}
	all := strings.Split(NormalizeLineEndings(content), "\n")
	return all[0], all[1:]
}

// CleanNarrative normalizes free-text narrative content to a single line:
// runs of blank lines collapse to one newline, every newline becomes the
// separator token, interior whitespace runs collapse to single spaces, and
// leading/trailing separator tokens and stray quotes are trimmed.
func CleanNarrative(text, separator string) string {
	if text == "" {
		return ""
	}

	text = NormalizeLineEndings(text)

	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}
	text = strings.ReplaceAll(text, "\n", separator)

	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}

	text = strings.Trim(text, " "+strings.TrimSpace(separator))
	return strings.Trim(text, `"`)
}
