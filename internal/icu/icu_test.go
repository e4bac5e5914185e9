package icu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for ICU MessageFormat parser:
// - Plain text parses to a single text node
// - Simple, number, date, and time arguments parse
// - Plural/select/selectordinal parse with required 'other' option
// - Plural offset and exact-value selectors parse
// - '#' is recognized inside plural sub-messages
// - Apostrophe quoting: '' literal, quoted syntax, plain apostrophes
// - Malformed templates fail with a position-carrying SyntaxError

func TestParse_PlainText(t *testing.T) {
	nodes, err := Parse("Hello world")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, TextNode, nodes[0].Type)
	assert.Equal(t, "Hello world", nodes[0].Text)
}

func TestParse_EmptyMessage(t *testing.T) {
	nodes, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestParse_SimpleArgument(t *testing.T) {
	nodes, err := Parse("Hello, {name}!")
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.Equal(t, TextNode, nodes[0].Type)
	assert.Equal(t, "Hello, ", nodes[0].Text)

	assert.Equal(t, ArgumentNode, nodes[1].Type)
	assert.Equal(t, "name", nodes[1].Text)
	assert.Empty(t, nodes[1].Format)

	assert.Equal(t, "!", nodes[2].Text)
}

func TestParse_FormattedArguments(t *testing.T) {
	tests := []struct {
		name     string
		template string
		format   string
		style    string
	}{
		{"number", "{n, number}", "number", ""},
		{"number with style", "{n, number, integer}", "number", "integer"},
		{"date", "{d, date, short}", "date", "short"},
		{"time", "{t, time, full}", "time", "full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse(tt.template)
			require.NoError(t, err)
			require.Len(t, nodes, 1)
			assert.Equal(t, ArgumentNode, nodes[0].Type)
			assert.Equal(t, tt.format, nodes[0].Format)
			assert.Equal(t, tt.style, nodes[0].Style)
		})
	}
}

func TestParse_Plural(t *testing.T) {
	nodes, err := Parse("{count, plural, one {# item} other {# items}}")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	node := nodes[0]
	assert.Equal(t, SelectNode, node.Type)
	assert.Equal(t, "plural", node.Format)
	assert.Equal(t, "count", node.Text)
	require.Len(t, node.Options, 2)

	assert.Equal(t, "one", node.Options[0].Selector)
	require.NotEmpty(t, node.Options[0].Message)
	assert.Equal(t, PoundNode, node.Options[0].Message[0].Type)
	assert.Equal(t, "other", node.Options[1].Selector)
}

func TestParse_PluralOffsetAndExactSelectors(t *testing.T) {
	nodes, err := Parse("{n, plural, offset:1 =0 {nobody} =1 {you} other {you and # others}}")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	node := nodes[0]
	assert.Equal(t, 1, node.Offset)
	require.Len(t, node.Options, 3)
	assert.Equal(t, "=0", node.Options[0].Selector)
	assert.Equal(t, "=1", node.Options[1].Selector)
}

func TestParse_Select(t *testing.T) {
	nodes, err := Parse("{gender, select, male {He} female {She} other {They}}")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "select", nodes[0].Format)
	assert.Len(t, nodes[0].Options, 3)
}

func TestParse_NestedArguments(t *testing.T) {
	nodes, err := Parse("{count, plural, one {{name} has one} other {{name} has #}}")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	one := nodes[0].Options[0].Message
	require.NotEmpty(t, one)
	assert.Equal(t, ArgumentNode, one[0].Type)
	assert.Equal(t, "name", one[0].Text)
}

func TestParse_PoundOutsidePluralIsText(t *testing.T) {
	nodes, err := Parse("issue #42")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "issue #42", nodes[0].Text)
}

func TestParse_ApostropheQuoting(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"doubled apostrophe", "It''s fine", "It's fine"},
		{"plain apostrophe", "It's fine", "It's fine"},
		{"quoted brace", "literal '{' brace", "literal { brace"},
		{"quoted run", "'{name}' is literal", "{name} is literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse(tt.template)
			require.NoError(t, err)
			require.Len(t, nodes, 1)
			assert.Equal(t, TextNode, nodes[0].Type)
			assert.Equal(t, tt.want, nodes[0].Text)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"unclosed argument", "Hello {name"},
		{"unmatched close", "Hello }"},
		{"empty argument", "{}"},
		{"unknown type", "{n, fraction}"},
		{"plural missing other", "{n, plural, one {x}}"},
		{"select missing other", "{g, select, male {x}}"},
		{"plural without options", "{n, plural,}"},
		{"duplicate selector", "{n, plural, one {a} one {b} other {c}}"},
		{"missing brace after selector", "{n, plural, one x other {y}}"},
		{"bad exact selector", "{n, plural, = {a} other {b}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.template)
			require.Error(t, err)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.GreaterOrEqual(t, syntaxErr.Pos, 0)
			assert.NotEmpty(t, syntaxErr.Msg)
		})
	}
}

func TestArgumentNames(t *testing.T) {
	nodes, err := Parse("{a} and {b, number} and {a} and {c, plural, other {{d}}}")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ArgumentNames(nodes))
}
