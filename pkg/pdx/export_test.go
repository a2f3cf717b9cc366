// Test Type: Unit Test
// Description: Tests for PDX rendering and quoting

package pdx_test

import (
	"math"
	"testing"

	"github.com/patchling/patchling/pkg/pdx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `
# sample event file
namespace = test
@base_weight = 10

country_event = {
	id = test.1
	title = "test.1.name"
	is_triggered_only = yes
	trigger = {
		years_passed >= 5
		NOT = { has_country_flag = "done before" }
		num_owned_planets != 3
	}
	mean_time_to_happen = { days = @\[ base_weight * 2 ] }
	weight = @base_weight
	color = { 0.25 -1 1e3 }
	is_special
	option = { name = "" }
	modifier = { }
}
`

func TestRender_Layout(t *testing.T) {
	b := pdx.NewBlock(
		pdx.Relation{Tag: "a", Value: pdx.String("b")},
		pdx.Relation{Tag: "c", Value: pdx.NewBlock(
			pdx.Relation{Tag: "d", Value: pdx.Numeric(1)},
		)},
	)

	tests := []struct {
		name        string
		outerBraces bool
		pretty      bool
		want        string
	}{
		{"compact_document", false, false, "a = b c = { d = 1 }"},
		{"compact_embedded", true, false, "{ a = b c = { d = 1 } }"},
		{"pretty_document", false, true, "a = b\nc = {\n    d = 1\n}\n"},
		{"pretty_embedded", true, true, "{\n    a = b\n    c = {\n        d = 1\n    }\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pdx.Render(b, tt.outerBraces, tt.pretty))
		})
	}
}

func TestRender_EmptyBlock(t *testing.T) {
	assert.Equal(t, "", pdx.Render(pdx.Block{}, false, false))
	assert.Equal(t, "", pdx.Render(pdx.Block{}, false, true))
	assert.Equal(t, "{ }", pdx.Render(pdx.Block{}, true, false))
	assert.Equal(t, "{ }", pdx.Render(pdx.Block{}, true, true))

	nested := pdx.NewBlock(pdx.Relation{Tag: "a", Value: pdx.Block{}})
	assert.Equal(t, "a = { }\n", pdx.Render(nested, false, true))
}

func TestRender_Values(t *testing.T) {
	tests := []struct {
		name string
		rel  pdx.Relation
		want string
	}{
		{"numeric_integer", pdx.Relation{Tag: "a", Value: pdx.Numeric(42)}, "a = 42"},
		{"numeric_fraction", pdx.Relation{Tag: "a", Value: pdx.Numeric(0.1)}, "a = 0.1"},
		{"numeric_negative", pdx.Relation{Tag: "a", Value: pdx.Numeric(-2.5)}, "a = -2.5"},
		{"numeric_large", pdx.Relation{Tag: "a", Value: pdx.Numeric(1e21)}, "a = 1000000000000000000000"},
		{"variable", pdx.Relation{Tag: "a", Value: pdx.Variable("base")}, "a = @base"},
		{"variable_expr", pdx.Relation{Tag: "a", Value: pdx.VariableExpr(" x * 2 ")}, `a = @\[ x * 2 ]`},
		{"nil_value_is_empty_block", pdx.Relation{Tag: "a"}, "a = { }"},
		{"operator", pdx.Relation{Tag: "a", Type: pdx.Ge, Value: pdx.Numeric(2)}, "a >= 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rel.String())
		})
	}
}

func TestRelationType_OperatorBijection(t *testing.T) {
	all := []pdx.RelationType{pdx.Normal, pdx.Lt, pdx.Gt, pdx.Le, pdx.Ge, pdx.Eq, pdx.Ne}
	seen := map[string]bool{}

	for _, rt := range all {
		t.Run(rt.Name(), func(t *testing.T) {
			assert.False(t, seen[rt.String()], "duplicate operator %s", rt)
			seen[rt.String()] = true

			src := pdx.NewBlock(pdx.Relation{Tag: "a", Type: rt, Value: pdx.String("b")}).String()
			b, err := pdx.ParseString("op.txt", src)
			require.NoError(t, err)
			require.Len(t, b.Contents, 1)
			assert.Equal(t, rt, b.Contents[0].(pdx.Relation).Type)

			parsed, err := pdx.ParseRelationName(rt.Name())
			require.NoError(t, err)
			assert.Equal(t, rt, parsed)
		})
	}

	_, err := pdx.ParseRelationName("approximately")
	assert.Error(t, err)
}

func TestQuoteValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"yes", "yes"},
		{"test.1.name", "test.1.name"},
		{"a;b+c", "a;b+c"},
		{"Šš’", "Šš’"},
		{"My Event", `"My Event"`},
		{"", `""`},
		{"3", `"3"`},
		{"-1.5", `"-1.5"`},
		{"3.14.5", "3.14.5"},
		{"@base", `"@base"`},
		{"a=b", `"a=b"`},
		{"{", `"{"`},
		{"é", `"é"`},
		{`a"b\c`, `"a\"b\\c"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pdx.QuoteValue(tt.in))
		})
	}
}

func TestQuoteKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"is_special", "is_special"},
		{"event_target:x", "event_target:x"},
		{"@cost", "@cost"},
		{"x<", "x<"},
		{"<x", `"<x"`},
		{"!x", `"!x"`},
		{"a;b", `"a;b"`},
		{"two words", `"two words"`},
		{"", `""`},
		{"Šš", `"Šš"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pdx.QuoteKey(tt.in))
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	original := mustParse(t, sampleSource)
	require.Len(t, original.Relations(), 3)

	for _, mode := range []struct {
		name        string
		outerBraces bool
		pretty      bool
	}{
		{"compact_braces", true, false},
		{"compact_document", false, false},
		{"pretty_braces", true, true},
		{"pretty_document", false, true},
	} {
		t.Run(mode.name, func(t *testing.T) {
			text := pdx.Render(original, mode.outerBraces, mode.pretty)
			again, err := pdx.ParseString("roundtrip.txt", text)
			require.NoError(t, err, text)
			assert.Equal(t, original, again)
		})
	}
}

func TestRender_RoundTripConstructed(t *testing.T) {
	// Strings that need quoting in one position or another.
	b := pdx.NewBlock(
		pdx.String("two words"),
		pdx.String("a;b"),
		pdx.String("<x"),
		pdx.Relation{Tag: "Šš", Value: pdx.String("Šš")},
		pdx.Relation{Tag: "k", Value: pdx.String("")},
		pdx.Relation{Tag: "k", Value: pdx.String("12")},
		pdx.Relation{Tag: "k", Value: pdx.String("@not_a_variable")},
		pdx.Relation{Tag: "k", Value: pdx.String(`quote " and \ backslash`)},
		pdx.Relation{Tag: "k", Value: pdx.Numeric(math.Pi)},
		pdx.Relation{Tag: "k", Value: pdx.Numeric(5e-324)},
		pdx.Relation{Tag: "k", Value: pdx.Numeric(math.MaxFloat64)},
		pdx.Relation{Tag: "k", Type: pdx.Ne, Value: pdx.Variable("v")},
	)

	again, err := pdx.ParseString("constructed.txt", b.String())
	require.NoError(t, err, b.String())
	assert.Equal(t, b, again)
}
