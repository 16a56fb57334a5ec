package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFlatTerms(t *testing.T) {
	expr, err := ParseAnd("apple banana cherry")
	require.NoError(t, err)
	require.Len(t, expr.Terms, 3)
	assert.Equal(t, "apple", expr.Terms[0].Lexeme)
	assert.Equal(t, "banana", expr.Terms[1].Lexeme)
	assert.Equal(t, "cherry", expr.Terms[2].Lexeme)
}

func TestParseAndRejectsStrayOperator(t *testing.T) {
	_, err := ParseAnd("apple | banana")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseOrFlatTerms(t *testing.T) {
	expr, err := ParseOr("apple | banana | cherry")
	require.NoError(t, err)
	require.Len(t, expr.Terms, 3)
	assert.Equal(t, "banana", expr.Terms[1].Lexeme)
}

func TestParseOrRequiresAtLeastOneTerm(t *testing.T) {
	_, err := ParseOr("")
	assert.Error(t, err)
}

func TestParseCNFMixedGroups(t *testing.T) {
	expr, err := ParseCNF("(a|b) c (d|e|f)")
	require.NoError(t, err)
	require.Len(t, expr.Groups, 3)

	assert.Equal(t, []string{"a", "b"}, lexemes(expr.Groups[0].Terms))
	assert.Equal(t, []string{"c"}, lexemes(expr.Groups[1].Terms))
	assert.Equal(t, []string{"d", "e", "f"}, lexemes(expr.Groups[2].Terms))
}

func TestParseCNFBareTermIsSingletonGroup(t *testing.T) {
	expr, err := ParseCNF("solo")
	require.NoError(t, err)
	require.Len(t, expr.Groups, 1)
	assert.Equal(t, []string{"solo"}, lexemes(expr.Groups[0].Terms))
}

func TestParseCNFMissingClosingParen(t *testing.T) {
	_, err := ParseCNF("(a|b c")
	assert.Error(t, err)
}

func TestParseCNFEmptyParens(t *testing.T) {
	_, err := ParseCNF("()")
	assert.Error(t, err)
}

func TestExpressionStringRoundTrips(t *testing.T) {
	expr, err := ParseCNF("(a|b) c (d|e|f)")
	require.NoError(t, err)

	rendered := expr.String()
	reparsed, err := ParseCNF(rendered)
	require.NoError(t, err)

	assert.Equal(t, groupShapes(expr.Groups), groupShapes(reparsed.Groups))
}

func lexemes(terms []Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Lexeme
	}
	return out
}

func groupShapes(groups []OrGroup) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = lexemes(g.Terms)
	}
	return out
}
