package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "F1,F2,F3,EVENT_NARRATIVE,EPISODE_NARRATIVE,ABSOLUTE_ROWNUMBER"

func testSchema(t *testing.T) Schema {
	t.Helper()
	s, err := NewSchema(testHeader)
	require.NoError(t, err)
	return s
}

func TestFindEmptyNarrativeMarker(t *testing.T) {
	t.Run("most specific variant wins", func(t *testing.T) {
		pos, ok := findEmptyNarrativeMarker(`5,A,B,"","narrative starts`)
		require.True(t, ok)
		assert.Equal(t, 5, pos)
	})

	t.Run("rightmost occurrence", func(t *testing.T) {
		line := `5,"","mid,"","tail`
		pos, ok := findEmptyNarrativeMarker(line)
		require.True(t, ok)
		assert.Equal(t, 9, pos)
	})

	t.Run("least specific fallback", func(t *testing.T) {
		line := `5,A,B,"",`
		pos, ok := findEmptyNarrativeMarker(line)
		require.True(t, ok)
		assert.Equal(t, 5, pos)
	})

	t.Run("no marker", func(t *testing.T) {
		_, ok := findEmptyNarrativeMarker(`5,A,B,"ev","ep",1`)
		assert.False(t, ok)
	})
}

func TestParseSpan_SingleLine(t *testing.T) {
	schema := testSchema(t)

	t.Run("well-formed record passes through", func(t *testing.T) {
		rec, method, err := ParseSpan(Span{Lines: []string{`7,C,D,"ev","ep",2`}}, schema, DefaultNarrativeSeparator)

		require.NoError(t, err)
		assert.Equal(t, MethodSingleLine, method)
		assert.Equal(t, Record{
			"F1": "7", "F2": "C", "F3": "D",
			"EVENT_NARRATIVE":    "ev",
			"EPISODE_NARRATIVE":  "ep",
			"ABSOLUTE_ROWNUMBER": "2",
		}, rec)
	})

	t.Run("field count mismatch rejected", func(t *testing.T) {
		_, method, err := ParseSpan(Span{Lines: []string{`7,C,D,2`}}, schema, DefaultNarrativeSeparator)

		require.Error(t, err)
		assert.Equal(t, MethodSingleLine, method)
		assert.Contains(t, err.Error(), "fields")
	})

	t.Run("unterminated quoting rejected", func(t *testing.T) {
		_, _, err := ParseSpan(Span{Lines: []string{`7,C,D,"unterminated,ep,2`}}, schema, DefaultNarrativeSeparator)
		assert.Error(t, err)
	})

	t.Run("quoted delimiter and doubled quotes", func(t *testing.T) {
		rec, _, err := ParseSpan(Span{Lines: []string{`7,C,D,"hail, then wind","said ""severe"" damage",2`}}, schema, DefaultNarrativeSeparator)

		require.NoError(t, err)
		assert.Equal(t, "hail, then wind", rec["EVENT_NARRATIVE"])
		assert.Equal(t, `said "severe" damage`, rec["EPISODE_NARRATIVE"])
	})
}

func TestParseSpan_Reconstruction(t *testing.T) {
	schema := testSchema(t)

	t.Run("structured prefix, marker, trailing row number", func(t *testing.T) {
		span := Span{Lines: []string{
			`5,A,B,"","`,
			`text line two`,
			`",1`,
		}}
		rec, method, err := ParseSpan(span, schema, DefaultNarrativeSeparator)

		require.NoError(t, err)
		assert.Equal(t, MethodReconstructed, method)
		assert.Equal(t, Record{
			"F1": "5", "F2": "A", "F3": "B",
			"EVENT_NARRATIVE":    "",
			"EPISODE_NARRATIVE":  "text line two",
			"ABSOLUTE_ROWNUMBER": "1",
		}, rec)
	})

	t.Run("multi-line narrative joined with separator", func(t *testing.T) {
		span := Span{Lines: []string{
			`5,A,B,"","Heavy snow fell.`,
			`Totals reached 20 inches.`,
			`",12`,
		}}
		rec, _, err := ParseSpan(span, schema, DefaultNarrativeSeparator)

		require.NoError(t, err)
		assert.Equal(t, "Heavy snow fell. | Totals reached 20 inches.", rec["EPISODE_NARRATIVE"])
		assert.Equal(t, "12", rec["ABSOLUTE_ROWNUMBER"])
	})

	t.Run("false-boundary digits survive in narrative", func(t *testing.T) {
		span := Span{Lines: []string{
			`5,A,B,"","`,
			`storm damage totals,2`,
			`",1`,
		}}
		rec, _, err := ParseSpan(span, schema, DefaultNarrativeSeparator)

		require.NoError(t, err)
		assert.Equal(t, "storm damage totals,2", rec["EPISODE_NARRATIVE"])
		assert.Equal(t, "1", rec["ABSOLUTE_ROWNUMBER"])
	})

	t.Run("prefix shortfall zero-fills trailing fields", func(t *testing.T) {
		span := Span{Lines: []string{
			`5,A,"","`,
			`text`,
			`",3`,
		}}
		rec, _, err := ParseSpan(span, schema, DefaultNarrativeSeparator)

		require.NoError(t, err)
		assert.Equal(t, "5", rec["F1"])
		assert.Equal(t, "A", rec["F2"])
		assert.Equal(t, "", rec["F3"])
		assert.Equal(t, "3", rec["ABSOLUTE_ROWNUMBER"])
	})

	t.Run("row number always from line tail", func(t *testing.T) {
		// The bare ,<digits> terminator without a closing quote.
		span := Span{Lines: []string{
			`5,A,B,"","`,
			`text,7`,
		}}
		rec, _, err := ParseSpan(span, schema, DefaultNarrativeSeparator)

		require.NoError(t, err)
		assert.Equal(t, "7", rec["ABSOLUTE_ROWNUMBER"])
		assert.Equal(t, "text", rec["EPISODE_NARRATIVE"])
	})

	t.Run("no trailing row number rejected", func(t *testing.T) {
		span := Span{Lines: []string{
			`5,A,B,"","`,
			`dangling text`,
		}}
		_, method, err := ParseSpan(span, schema, DefaultNarrativeSeparator)

		require.Error(t, err)
		assert.Equal(t, MethodReconstructed, method)
	})
}

func TestParseSpan_Fallback(t *testing.T) {
	schema := testSchema(t)

	t.Run("marker-less span collapses and reparses", func(t *testing.T) {
		// A quoted narrative with an embedded newline but a non-empty event
		// narrative: no marker variant matches, yet collapsing the span
		// yields a valid record of the right arity.
		span := Span{Lines: []string{
			`5,A,B,"ev","epi start`,
			`epi end",1`,
		}}
		rec, method, err := ParseSpan(span, schema, DefaultNarrativeSeparator)

		require.NoError(t, err)
		assert.Equal(t, MethodFallback, method)
		assert.Equal(t, "ev", rec["EVENT_NARRATIVE"])
		assert.Equal(t, "epi start | epi end", rec["EPISODE_NARRATIVE"])
		assert.Equal(t, "1", rec["ABSOLUTE_ROWNUMBER"])
	})

	t.Run("fallback with wrong arity rejected", func(t *testing.T) {
		span := Span{Lines: []string{
			`garbage without any structure`,
			`more garbage,5`,
		}}
		_, method, err := ParseSpan(span, schema, DefaultNarrativeSeparator)

		require.Error(t, err)
		assert.Equal(t, MethodFallback, method)
	})
}
