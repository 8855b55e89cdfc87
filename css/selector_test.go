package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selectorList parses the input and returns the selector list of its
// first qualified rule (nil when the prelude is invalid).
func selectorList(t *testing.T, input string) *SelectorList {
	t.Helper()
	sheet := Parse([]byte(input))
	require.NotEmpty(t, sheet.Rules, "input %q produced no rules", input)
	qr, ok := sheet.Rules[0].(*QualifiedRule)
	require.True(t, ok, "expected a qualified rule")
	return qr.Selectors
}

func TestSelectorTypeSimple(t *testing.T) {
	list := selectorList(t, "body { }")

	require.NotNil(t, list)
	require.Len(t, list.Selectors, 1)
	cx := list.Selectors[0]
	require.Len(t, cx.Compounds, 1)
	require.Empty(t, cx.Combinators)

	sels := cx.Compounds[0].Selectors
	require.Len(t, sels, 1)
	assert.Equal(t, SelType, sels[0].Type)
	assert.Equal(t, "body", sels[0].Name)
	assert.Equal(t, Specificity{0, 0, 1}, cx.Specificity())
}

func TestSelectorUniversal(t *testing.T) {
	list := selectorList(t, "* { }")

	require.NotNil(t, list)
	cx := list.Selectors[0]
	sels := cx.Compounds[0].Selectors
	require.Len(t, sels, 1)
	assert.Equal(t, SelUniversal, sels[0].Type)
	assert.Equal(t, Specificity{0, 0, 0}, cx.Specificity(),
		"the universal selector contributes nothing")
}

func TestSelectorCompound(t *testing.T) {
	list := selectorList(t, "div#main.wide.tall:hover { }")

	require.NotNil(t, list)
	cx := list.Selectors[0]
	require.Len(t, cx.Compounds, 1)
	sels := cx.Compounds[0].Selectors
	require.Len(t, sels, 5)

	assert.Equal(t, SelType, sels[0].Type)
	assert.Equal(t, "div", sels[0].Name)
	assert.Equal(t, SelID, sels[1].Type)
	assert.Equal(t, "main", sels[1].Name)
	assert.Equal(t, SelClass, sels[2].Type)
	assert.Equal(t, "wide", sels[2].Name)
	assert.Equal(t, SelClass, sels[3].Type)
	assert.Equal(t, "tall", sels[3].Name)
	assert.Equal(t, SelPseudoClass, sels[4].Type)
	assert.Equal(t, "hover", sels[4].Name)

	assert.Equal(t, Specificity{1, 3, 1}, cx.Specificity())
}

func TestSelectorCombinators(t *testing.T) {
	list := selectorList(t, ".a > .b + p ~ span li { }")

	require.NotNil(t, list)
	cx := list.Selectors[0]
	require.Len(t, cx.Compounds, 5)
	require.Len(t, cx.Combinators, 4, "N compounds need N-1 combinators")
	assert.Equal(t, []Combinator{Child, NextSibling, SubsequentSibling, Descendant}, cx.Combinators)
}

func TestSelectorChildAndSibling(t *testing.T) {
	// Scenario: .a > .b + p with !IMPORTANT declaration.
	sheet := Parse([]byte(".a > .b + p { x: 1 !IMPORTANT }"))
	qr := sheet.Rules[0].(*QualifiedRule)

	require.Len(t, qr.Declarations, 1)
	assert.True(t, qr.Declarations[0].Important)

	require.NotNil(t, qr.Selectors)
	cx := qr.Selectors.Selectors[0]
	require.Len(t, cx.Compounds, 3)
	assert.Equal(t, []Combinator{Child, NextSibling}, cx.Combinators)
	assert.Equal(t, Specificity{0, 2, 1}, cx.Specificity())
}

func TestSelectorList(t *testing.T) {
	list := selectorList(t, `#a, #b#c, .x[href^="/docs" i] { }`)

	require.NotNil(t, list)
	require.Len(t, list.Selectors, 3)

	assert.Equal(t, Specificity{1, 0, 0}, list.Selectors[0].Specificity())
	assert.Equal(t, Specificity{2, 0, 0}, list.Selectors[1].Specificity())
	assert.Equal(t, Specificity{0, 2, 0}, list.Selectors[2].Specificity())

	attr := list.Selectors[2].Compounds[0].Selectors[1]
	assert.Equal(t, SelAttribute, attr.Type)
	assert.Equal(t, "href", attr.AttrName)
	assert.Equal(t, MatchPrefix, attr.AttrMatch)
	assert.Equal(t, "/docs", attr.AttrValue)
	assert.True(t, attr.AttrCaseInsensitive)
}

func TestSelectorPseudoElement(t *testing.T) {
	list := selectorList(t, "a::before { }")

	require.NotNil(t, list)
	cx := list.Selectors[0]
	sels := cx.Compounds[0].Selectors
	require.Len(t, sels, 2)
	assert.Equal(t, SelPseudoElement, sels[1].Type)
	assert.Equal(t, "before", sels[1].Name)
	assert.Equal(t, Specificity{0, 0, 2}, cx.Specificity())
}

func TestSelectorAttributeOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		match AttrMatch
		value string
	}{
		{"exists", "[disabled] { }", MatchExists, ""},
		{"exact", "[type=text] { }", MatchExact, "text"},
		{"includes", "[class~=big] { }", MatchIncludes, "big"},
		{"dash", "[lang|=en] { }", MatchDash, "en"},
		{"prefix", `[href^="https"] { }`, MatchPrefix, "https"},
		{"suffix", `[src$=".png"] { }`, MatchSuffix, ".png"},
		{"substring", `[title*="part"] { }`, MatchSubstring, "part"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := selectorList(t, tt.input)
			require.NotNil(t, list)
			sels := list.Selectors[0].Compounds[0].Selectors
			require.Len(t, sels, 1)

			sel := sels[0]
			assert.Equal(t, SelAttribute, sel.Type)
			assert.Equal(t, tt.match, sel.AttrMatch)
			assert.Equal(t, tt.value, sel.AttrValue)
			assert.False(t, sel.AttrCaseInsensitive)
		})
	}
}

func TestSelectorAttributeCaseFlags(t *testing.T) {
	list := selectorList(t, "[a=b i] { }")
	require.NotNil(t, list)
	assert.True(t, list.Selectors[0].Compounds[0].Selectors[0].AttrCaseInsensitive)

	list = selectorList(t, "[a=b s] { }")
	require.NotNil(t, list)
	assert.False(t, list.Selectors[0].Compounds[0].Selectors[0].AttrCaseInsensitive)
}

func TestSelectorInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"number prelude", "12px { }"},
		{"dot without ident", ". foo { }"},
		{"colon without name", "a: { }"},
		{"bad attribute operator", "[a^b] { }"},
		{"attribute missing value", "[a=] { }"},
		{"one invalid segment kills the list", "a, 5, b { }"},
		{"dangling combinator", "a > { }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := selectorList(t, tt.input)
			assert.Nil(t, list, "invalid prelude must yield no selector list")
		})
	}
}

func TestSelectorInvalidKeepsRule(t *testing.T) {
	// An invalid selector list does not discard the qualified rule or
	// its declarations.
	sheet := Parse([]byte("12px { color: red }"))
	require.Len(t, sheet.Rules, 1)
	qr := sheet.Rules[0].(*QualifiedRule)
	assert.Nil(t, qr.Selectors)
	require.Len(t, qr.Declarations, 1)
	assert.Equal(t, "color", qr.Declarations[0].Name)
}

func TestSelectorEmptySegmentsSkipped(t *testing.T) {
	list := selectorList(t, "a, , b { }")

	// Blank segments between commas are skipped, not errors.
	require.NotNil(t, list)
	assert.Len(t, list.Selectors, 2)
}

func TestSelectorCombinatorInvariant(t *testing.T) {
	inputs := []string{
		"a { }",
		"a b { }",
		"a > b + c { }",
		"a b c d e { }",
		".x #y [z] { }",
	}
	for _, input := range inputs {
		list := selectorList(t, input)
		require.NotNil(t, list, "input %q", input)
		for _, cx := range list.Selectors {
			assert.Equal(t, len(cx.Compounds)-1, len(cx.Combinators),
				"input %q: combinator count must be one less than compound count", input)
		}
	}
}

func TestSpecificityAdditive(t *testing.T) {
	// Specificity of a complex selector is the sum over its compounds.
	list := selectorList(t, "div#a .b:hover > span::after { }")

	require.NotNil(t, list)
	cx := list.Selectors[0]
	total := cx.Specificity()

	var sum Specificity
	for _, comp := range cx.Compounds {
		one := ComplexSelector{Compounds: []*CompoundSelector{comp}}
		s := one.Specificity()
		sum.A += s.A
		sum.B += s.B
		sum.C += s.C
	}
	assert.Equal(t, sum, total)
	assert.Equal(t, Specificity{1, 2, 3}, total)
}
