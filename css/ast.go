package css

// The rule tree produced by parsing.
// CSS Syntax §5 Parsing
//
// Component values are the universal currency of the grammar layer: a
// preserved *Token, a *SimpleBlock, or a *Function. Ownership is a
// strict tree — a stylesheet owns its rules, rules own their preludes
// and blocks, blocks and functions own their component values — with no
// cross-sharing between branches.

// ComponentValue is either a preserved *Token, a *SimpleBlock, or a
// *Function.
// CSS Syntax §5.3
type ComponentValue interface {
	componentValue()
}

func (*Token) componentValue()       {}
func (*SimpleBlock) componentValue() {}
func (*Function) componentValue()    {}

// SimpleBlock is the bracketed content {...}, [...], or (...) treated as
// a single grammar node. Bracket is the opening token kind; the closing
// bracket is implicit by pairing.
// CSS Syntax §5.4.8
type SimpleBlock struct {
	Bracket TokenType // LeftBraceToken, LeftBracketToken, or LeftParenToken
	Values  []ComponentValue
}

// Function is a function call: a name and its arguments, without the
// enclosing parentheses.
// CSS Syntax §5.4.9
type Function struct {
	Name   string
	Values []ComponentValue
}

// Declaration is "name: values" with an optional trailing !important.
// Trailing whitespace component values are always trimmed.
// CSS Syntax §5.4.6
type Declaration struct {
	Name      string
	Values    []ComponentValue
	Important bool
}

// AtRule is "@name prelude;" or "@name prelude { block }".
// Block is nil for statement at-rules.
// CSS Syntax §5.4.2
type AtRule struct {
	Name    string
	Prelude []ComponentValue
	Block   *SimpleBlock
}

// QualifiedRule is "prelude { block }". After parsing, Selectors holds
// the selector list derived from the prelude (nil when the prelude is
// not a valid selector list) and Declarations the declarations derived
// from the block. The raw prelude and block are retained.
// CSS Syntax §5.4.3
type QualifiedRule struct {
	Prelude      []ComponentValue
	Block        *SimpleBlock
	Selectors    *SelectorList
	Declarations []*Declaration
}

// Rule is either an *AtRule or a *QualifiedRule.
type Rule interface {
	rule()
}

func (*AtRule) rule()        {}
func (*QualifiedRule) rule() {}

// Stylesheet is the ordered list of top-level rules.
type Stylesheet struct {
	Rules []Rule
}

// cloneComponentValue deep-copies a component value. Declarations own
// their values exclusively, so values lifted out of a block are cloned
// rather than shared.
func cloneComponentValue(cv ComponentValue) ComponentValue {
	switch v := cv.(type) {
	case *Token:
		c := *v
		return &c
	case *SimpleBlock:
		c := &SimpleBlock{Bracket: v.Bracket, Values: make([]ComponentValue, 0, len(v.Values))}
		for _, inner := range v.Values {
			c.Values = append(c.Values, cloneComponentValue(inner))
		}
		return c
	case *Function:
		c := &Function{Name: v.Name, Values: make([]ComponentValue, 0, len(v.Values))}
		for _, inner := range v.Values {
			c.Values = append(c.Values, cloneComponentValue(inner))
		}
		return c
	}
	return nil
}
