package css

import "strings"

// Selector parsing runs over a qualified rule's prelude after the
// grammar parse. An invalid prelude yields no selector list; the
// qualified rule itself survives. Matching selectors against a document
// tree is out of scope — only parsing and specificity live here.
// Selectors Level 4: https://www.w3.org/TR/selectors-4/

// SimpleSelectorType distinguishes the kinds of simple selector.
type SimpleSelectorType int

const (
	// SelType is an element type selector, e.g. div
	SelType SimpleSelectorType = iota
	// SelUniversal is the universal selector *
	SelUniversal
	// SelClass is a class selector, e.g. .foo
	SelClass
	// SelID is an id selector, e.g. #bar
	SelID
	// SelAttribute is an attribute selector, e.g. [href^="x"]
	SelAttribute
	// SelPseudoClass is a pseudo-class, e.g. :hover
	SelPseudoClass
	// SelPseudoElement is a pseudo-element, e.g. ::before
	SelPseudoElement
)

// String returns the selector type name used by the dump.
func (t SimpleSelectorType) String() string {
	switch t {
	case SelType:
		return "type"
	case SelUniversal:
		return "universal"
	case SelClass:
		return "class"
	case SelID:
		return "id"
	case SelAttribute:
		return "attribute"
	case SelPseudoClass:
		return "pseudo-class"
	case SelPseudoElement:
		return "pseudo-element"
	}
	return "unknown"
}

// AttrMatch is the attribute selector match operator.
type AttrMatch int

const (
	// MatchExists is [attr]
	MatchExists AttrMatch = iota
	// MatchExact is [attr=val]
	MatchExact
	// MatchIncludes is [attr~=val]
	MatchIncludes
	// MatchDash is [attr|=val]
	MatchDash
	// MatchPrefix is [attr^=val]
	MatchPrefix
	// MatchSuffix is [attr$=val]
	MatchSuffix
	// MatchSubstring is [attr*=val]
	MatchSubstring
)

// String returns the operator's source form ("" for exists).
func (m AttrMatch) String() string {
	switch m {
	case MatchExact:
		return "="
	case MatchIncludes:
		return "~="
	case MatchDash:
		return "|="
	case MatchPrefix:
		return "^="
	case MatchSuffix:
		return "$="
	case MatchSubstring:
		return "*="
	}
	return ""
}

// Combinator is the relation between two adjacent compound selectors.
type Combinator int

const (
	// Descendant is the whitespace combinator
	Descendant Combinator = iota
	// Child is '>'
	Child
	// NextSibling is '+'
	NextSibling
	// SubsequentSibling is '~'
	SubsequentSibling
)

// String returns the combinator's source symbol.
func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case NextSibling:
		return "+"
	case SubsequentSibling:
		return "~"
	}
	return " "
}

// SimpleSelector is one atomic selector. Name holds the element, class,
// id, or pseudo name; the Attr fields are set for SelAttribute only.
type SimpleSelector struct {
	Type SimpleSelectorType
	Name string

	AttrName            string
	AttrMatch           AttrMatch
	AttrValue           string
	AttrCaseInsensitive bool
}

// CompoundSelector is a non-empty run of simple selectors with no
// combinator between them. A type or universal selector, if present,
// comes first.
type CompoundSelector struct {
	Selectors []*SimpleSelector
}

// ComplexSelector is a non-empty sequence of compound selectors joined
// by combinators; Combinators[i] sits between Compounds[i] and
// Compounds[i+1], so len(Combinators) == len(Compounds)-1.
type ComplexSelector struct {
	Compounds   []*CompoundSelector
	Combinators []Combinator
}

// SelectorList is the comma-separated list of complex selectors from a
// qualified rule's prelude.
type SelectorList struct {
	Selectors []*ComplexSelector
}

// Specificity is the (a, b, c) triple used by the cascade: a counts ids,
// b counts classes, attributes, and pseudo-classes, c counts types and
// pseudo-elements. The universal selector contributes nothing.
// Selectors L4 §17
type Specificity struct {
	A int
	B int
	C int
}

// Specificity computes the selector's specificity, summing over every
// simple selector in every compound.
func (cx *ComplexSelector) Specificity() Specificity {
	var s Specificity
	for _, comp := range cx.Compounds {
		for _, sel := range comp.Selectors {
			switch sel.Type {
			case SelID:
				s.A++
			case SelClass, SelAttribute, SelPseudoClass:
				s.B++
			case SelType, SelPseudoElement:
				s.C++
			}
		}
	}
	return s
}

// ---------- Parsing ----------

// parseSelectorList parses a qualified rule's prelude into a selector
// list. The prelude is split on top-level commas; each segment becomes
// one complex selector. Any parse failure inside a segment invalidates
// the entire list (nil return).
func parseSelectorList(prelude []ComponentValue) *SelectorList {
	list := &SelectorList{}
	start := 0
	flush := func(end int) bool {
		seg := prelude[start:end]
		if segmentIsBlank(seg) {
			return true
		}
		cx := parseComplexSelector(seg)
		if cx == nil {
			return false
		}
		list.Selectors = append(list.Selectors, cx)
		return true
	}
	for i, cv := range prelude {
		if isPreserved(cv, CommaToken) {
			if !flush(i) {
				return nil
			}
			start = i + 1
		}
	}
	if !flush(len(prelude)) {
		return nil
	}
	if len(list.Selectors) == 0 {
		return nil
	}
	return list
}

func segmentIsBlank(seg []ComponentValue) bool {
	for _, cv := range seg {
		if !isPreserved(cv, WhitespaceToken) {
			return false
		}
	}
	return true
}

// selCursor walks one comma-free prelude segment.
type selCursor struct {
	values []ComponentValue
	pos    int
}

func (c *selCursor) done() bool {
	return c.pos >= len(c.values)
}

// peek returns the current value as a preserved token, or nil when it is
// a block, a function, or past the end.
func (c *selCursor) peek() *Token {
	if c.done() {
		return nil
	}
	tok, _ := c.values[c.pos].(*Token)
	return tok
}

func (c *selCursor) peekBlock() *SimpleBlock {
	if c.done() {
		return nil
	}
	block, _ := c.values[c.pos].(*SimpleBlock)
	return block
}

func (c *selCursor) skipWhitespace() bool {
	skipped := false
	for !c.done() && isPreserved(c.values[c.pos], WhitespaceToken) {
		c.pos++
		skipped = true
	}
	return skipped
}

func (c *selCursor) isDelim(d rune) bool {
	tok := c.peek()
	return tok != nil && tok.Type == DelimToken && tok.Delim == d
}

// parseComplexSelector parses one segment into compounds joined by
// combinators. Nil means the segment is invalid.
func parseComplexSelector(seg []ComponentValue) *ComplexSelector {
	c := &selCursor{values: seg}
	c.skipWhitespace()

	first := parseCompoundSelector(c)
	if first == nil {
		return nil
	}
	cx := &ComplexSelector{Compounds: []*CompoundSelector{first}}

	for {
		sawWhitespace := c.skipWhitespace()
		if c.done() {
			return cx
		}

		var comb Combinator
		switch {
		case c.isDelim('>'):
			comb = Child
			c.pos++
			c.skipWhitespace()
		case c.isDelim('+'):
			comb = NextSibling
			c.pos++
			c.skipWhitespace()
		case c.isDelim('~'):
			comb = SubsequentSibling
			c.pos++
			c.skipWhitespace()
		case sawWhitespace:
			comb = Descendant
		default:
			// Something unconsumable right after a compound.
			return nil
		}

		next := parseCompoundSelector(c)
		if next == nil {
			return nil
		}
		cx.Compounds = append(cx.Compounds, next)
		cx.Combinators = append(cx.Combinators, comb)
	}
}

// parseCompoundSelector parses a run of simple selectors with no
// whitespace between them: an optional leading type or universal
// selector followed by any number of subclass selectors. Nil means the
// compound is invalid or empty.
func parseCompoundSelector(c *selCursor) *CompoundSelector {
	comp := &CompoundSelector{}

	if tok := c.peek(); tok != nil {
		switch {
		case tok.Type == IdentToken:
			comp.Selectors = append(comp.Selectors, &SimpleSelector{Type: SelType, Name: tok.Value})
			c.pos++
		case tok.Type == DelimToken && tok.Delim == '*':
			comp.Selectors = append(comp.Selectors, &SimpleSelector{Type: SelUniversal})
			c.pos++
		}
	}

	for !c.done() {
		if isPreserved(c.values[c.pos], WhitespaceToken) {
			break
		}
		tok := c.peek()
		if tok != nil && tok.Type == DelimToken && (tok.Delim == '>' || tok.Delim == '+' || tok.Delim == '~') {
			break
		}

		switch {
		case tok != nil && tok.Type == HashToken:
			comp.Selectors = append(comp.Selectors, &SimpleSelector{Type: SelID, Name: tok.Value})
			c.pos++

		case tok != nil && tok.Type == DelimToken && tok.Delim == '.':
			c.pos++
			name := c.peek()
			if name == nil || name.Type != IdentToken {
				return nil
			}
			comp.Selectors = append(comp.Selectors, &SimpleSelector{Type: SelClass, Name: name.Value})
			c.pos++

		case tok != nil && tok.Type == ColonToken:
			c.pos++
			selType := SelPseudoClass
			if next := c.peek(); next != nil && next.Type == ColonToken {
				selType = SelPseudoElement
				c.pos++
			}
			name := c.peek()
			if name == nil || name.Type != IdentToken {
				return nil
			}
			comp.Selectors = append(comp.Selectors, &SimpleSelector{Type: selType, Name: name.Value})
			c.pos++

		default:
			block := c.peekBlock()
			if block == nil || block.Bracket != LeftBracketToken {
				return nil
			}
			attr := parseAttributeSelector(block)
			if attr == nil {
				return nil
			}
			comp.Selectors = append(comp.Selectors, attr)
			c.pos++
		}
	}

	if len(comp.Selectors) == 0 {
		return nil
	}
	return comp
}

// parseAttributeSelector parses the contents of a [...] block: an
// attribute name, an optional match operator with its value, and an
// optional trailing case flag ("i" insensitive, "s" sensitive).
// Selectors L4 §6
func parseAttributeSelector(block *SimpleBlock) *SimpleSelector {
	c := &selCursor{values: block.Values}
	c.skipWhitespace()

	nameTok := c.peek()
	if nameTok == nil || nameTok.Type != IdentToken {
		return nil
	}
	sel := &SimpleSelector{Type: SelAttribute, AttrName: nameTok.Value}
	c.pos++
	c.skipWhitespace()

	if c.done() {
		return sel
	}

	// Match operator: a lone '=' or one of ~ | ^ $ * immediately
	// followed by '='.
	op := c.peek()
	if op == nil || op.Type != DelimToken {
		return nil
	}
	if op.Delim == '=' {
		sel.AttrMatch = MatchExact
		c.pos++
	} else {
		switch op.Delim {
		case '~':
			sel.AttrMatch = MatchIncludes
		case '|':
			sel.AttrMatch = MatchDash
		case '^':
			sel.AttrMatch = MatchPrefix
		case '$':
			sel.AttrMatch = MatchSuffix
		case '*':
			sel.AttrMatch = MatchSubstring
		default:
			return nil
		}
		c.pos++
		if !c.isDelim('=') {
			return nil
		}
		c.pos++
	}

	c.skipWhitespace()
	val := c.peek()
	if val == nil || (val.Type != IdentToken && val.Type != StringToken) {
		return nil
	}
	sel.AttrValue = val.Value
	c.pos++
	c.skipWhitespace()

	// Optional case-sensitivity flag.
	if flag := c.peek(); flag != nil && flag.Type == IdentToken {
		switch {
		case strings.EqualFold(flag.Value, "i"):
			sel.AttrCaseInsensitive = true
		case strings.EqualFold(flag.Value, "s"):
			// Sensitive is the default.
		default:
			return nil
		}
		c.pos++
		c.skipWhitespace()
	}

	if !c.done() {
		return nil
	}
	return sel
}
