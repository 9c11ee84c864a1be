package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLineEndings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"crlf", "a\r\nb", "a\nb"},
		{"bare cr", "a\rb", "a\nb"},
		{"mixed", "a\r\nb\rc\nd", "a\nb\nc\nd"},
		{"already lf", "a\nb", "a\nb"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLineEndings(tt.input))
		})
	}
}

func TestSplitDocument(t *testing.T) {
	t.Run("header and lines", func(t *testing.T) {
		header, lines := SplitDocument("A,B,C\r\nrow one\nrow two\n")
		assert.Equal(t, "A,B,C", header)
		assert.Equal(t, []string{"row one", "row two", ""}, lines)
	})

	t.Run("header only", func(t *testing.T) {
		header, lines := SplitDocument("A,B,C")
		assert.Equal(t, "A,B,C", header)
		assert.Empty(t, lines)
	})

	t.Run("empty input", func(t *testing.T) {
		header, lines := SplitDocument("")
		assert.Empty(t, header)
		assert.Nil(t, lines)
	})
}

func TestCleanNarrative(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text", "Heavy rain fell.", "Heavy rain fell."},
		{
			"newlines become separator",
			"Heavy rain fell.\nFlooding followed.",
			"Heavy rain fell. | Flooding followed.",
		},
		{
			"blank line runs collapse first",
			"Heavy rain fell.\n\n\nFlooding followed.",
			"Heavy rain fell. | Flooding followed.",
		},
		{
			"interior whitespace collapses",
			"Heavy   rain    fell.",
			"Heavy rain fell.",
		},
		{
			"crlf normalized",
			"Heavy rain fell.\r\nFlooding followed.",
			"Heavy rain fell. | Flooding followed.",
		},
		{
			"leading and trailing separators trimmed",
			"\nHeavy rain fell.\n",
			"Heavy rain fell.",
		},
		{
			"stray edge quotes trimmed",
			`"Heavy rain fell."`,
			"Heavy rain fell.",
		},
		{
			"interior digits preserved",
			"Totals of 2 to 4 inches, ending at 0600.",
			"Totals of 2 to 4 inches, ending at 0600.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanNarrative(tt.input, DefaultNarrativeSeparator))
		})
	}
}

func TestNewSchema(t *testing.T) {
	t.Run("trailing roles", func(t *testing.T) {
		s, err := NewSchema("EVENT_ID,STATE_ABBR,EVENT_NARRATIVE,EPISODE_NARRATIVE,ABSOLUTE_ROWNUMBER")
		require.NoError(t, err)

		assert.Equal(t, 5, s.Len())
		assert.Equal(t, []string{"EVENT_ID", "STATE_ABBR"}, s.StructuredFields())
		assert.Equal(t, "EVENT_NARRATIVE", s.EventNarrative())
		assert.Equal(t, "EPISODE_NARRATIVE", s.EpisodeNarrative())
		assert.Equal(t, "ABSOLUTE_ROWNUMBER", s.RowNumber())
	})

	t.Run("minimum three columns", func(t *testing.T) {
		s, err := NewSchema("EVENT_NARRATIVE,EPISODE_NARRATIVE,ABSOLUTE_ROWNUMBER")
		require.NoError(t, err)
		assert.Empty(t, s.StructuredFields())
	})

	t.Run("too few columns", func(t *testing.T) {
		_, err := NewSchema("A,B")
		assert.Error(t, err)
	})

	t.Run("empty header", func(t *testing.T) {
		_, err := NewSchema("")
		assert.Error(t, err)
	})
}
