package css

// The grammar parser pulls tokens from the tokenizer one at a time and
// builds the rule tree using the consume algorithms of CSS Syntax §5.4.
// It keeps a single current token plus a one-shot reconsume flag; tokens
// preserved in the tree are copies of that buffer.

// maxNestingDepth bounds the recursion of blocks and functions so
// adversarial input cannot exhaust the stack. Content past the cap is
// skipped with balanced brackets and recorded as a parse error.
const maxNestingDepth = 256

type parser struct {
	tokenizer *Tokenizer
	current   Token
	reconsume bool
	depth     int
	diag      *Diagnostics
}

// Parse parses a stylesheet from the given input bytes.
// Parsing always succeeds: syntax errors are recovered per the CSS
// error-handling rules, and empty input yields a stylesheet with zero
// rules.
func Parse(input []byte) *Stylesheet {
	return ParseWithDiagnostics(input, nil)
}

// ParseWithDiagnostics is Parse with a collector for the parse errors
// recovered along the way.
func ParseWithDiagnostics(input []byte, diag *Diagnostics) *Stylesheet {
	p := &parser{
		tokenizer: NewTokenizerWithDiagnostics(input, diag),
		diag:      diag,
	}
	sheet := &Stylesheet{}
	p.consumeRuleList(sheet, true)

	// Post-pass: derive selector lists and declarations for qualified
	// rules. At-rule blocks keep their raw component values.
	for _, rule := range sheet.Rules {
		qr, ok := rule.(*QualifiedRule)
		if !ok {
			continue
		}
		if len(qr.Prelude) > 0 {
			qr.Selectors = parseSelectorList(qr.Prelude)
		}
		if qr.Block != nil {
			qr.Declarations = parseDeclarations(qr.Block.Values)
		}
	}
	return sheet
}

// next returns the token to operate on, honoring a pending reconsume.
func (p *parser) next() Token {
	if p.reconsume {
		p.reconsume = false
		return p.current
	}
	p.current = p.tokenizer.Next()
	return p.current
}

// push the current token back so the next call to next returns it again.
func (p *parser) pushBack() {
	p.reconsume = true
}

// consumeRuleList implements "consume a list of rules".
// CSS Syntax §5.4.1
func (p *parser) consumeRuleList(sheet *Stylesheet, topLevel bool) {
	for {
		tok := p.next()
		switch tok.Type {
		case WhitespaceToken:
			continue
		case EOFToken:
			return
		case CDOToken, CDCToken:
			if topLevel {
				continue
			}
			p.pushBack()
			if qr := p.consumeQualifiedRule(); qr != nil {
				sheet.Rules = append(sheet.Rules, qr)
			}
		case AtKeywordToken:
			sheet.Rules = append(sheet.Rules, p.consumeAtRule())
		default:
			p.pushBack()
			if qr := p.consumeQualifiedRule(); qr != nil {
				sheet.Rules = append(sheet.Rules, qr)
			}
		}
	}
}

// consumeAtRule implements "consume an at-rule". The current token is
// the at-keyword. A statement at-rule ends at ';' with a nil block.
// CSS Syntax §5.4.2
func (p *parser) consumeAtRule() *AtRule {
	ar := &AtRule{Name: p.current.Value}
	for {
		tok := p.next()
		switch tok.Type {
		case SemicolonToken:
			return ar
		case EOFToken:
			p.diag.add(tok.Line, tok.Column, "unexpected end of file in at-rule")
			return ar
		case LeftBraceToken:
			ar.Block = p.consumeSimpleBlock()
			return ar
		default:
			p.pushBack()
			ar.Prelude = append(ar.Prelude, p.consumeComponentValue())
		}
	}
}

// consumeQualifiedRule implements "consume a qualified rule". Reaching
// end of file before the block is a parse error and discards the whole
// rule (nil return).
// CSS Syntax §5.4.3
func (p *parser) consumeQualifiedRule() *QualifiedRule {
	qr := &QualifiedRule{}
	for {
		tok := p.next()
		switch tok.Type {
		case EOFToken:
			p.diag.add(tok.Line, tok.Column, "unexpected end of file in qualified rule")
			return nil
		case LeftBraceToken:
			qr.Block = p.consumeSimpleBlock()
			return qr
		default:
			p.pushBack()
			qr.Prelude = append(qr.Prelude, p.consumeComponentValue())
		}
	}
}

// mirrorOf returns the closing bracket kind paired with an opener.
func mirrorOf(open TokenType) TokenType {
	switch open {
	case LeftBraceToken:
		return RightBraceToken
	case LeftBracketToken:
		return RightBracketToken
	}
	return RightParenToken
}

// consumeSimpleBlock implements "consume a simple block". The current
// token is the opening bracket. End of file before the mirror bracket is
// tolerated and returns what has been collected.
// CSS Syntax §5.4.8
func (p *parser) consumeSimpleBlock() *SimpleBlock {
	block := &SimpleBlock{Bracket: p.current.Type}
	mirror := mirrorOf(block.Bracket)

	if p.depth >= maxNestingDepth {
		p.diag.add(p.current.Line, p.current.Column, "block nesting too deep")
		p.skipToMirror(mirror)
		return block
	}
	p.depth++
	defer func() { p.depth-- }()

	for {
		tok := p.next()
		switch tok.Type {
		case mirror:
			return block
		case EOFToken:
			p.diag.add(tok.Line, tok.Column, "unexpected end of file in block")
			return block
		default:
			p.pushBack()
			block.Values = append(block.Values, p.consumeComponentValue())
		}
	}
}

// consumeFunction implements "consume a function". The current token is
// the function token; its name carries over. The closing ')' is implicit
// and never appears in the argument list.
// CSS Syntax §5.4.9
func (p *parser) consumeFunction() *Function {
	fn := &Function{Name: p.current.Value}

	if p.depth >= maxNestingDepth {
		p.diag.add(p.current.Line, p.current.Column, "function nesting too deep")
		p.skipToMirror(RightParenToken)
		return fn
	}
	p.depth++
	defer func() { p.depth-- }()

	for {
		tok := p.next()
		switch tok.Type {
		case RightParenToken:
			return fn
		case EOFToken:
			p.diag.add(tok.Line, tok.Column, "unexpected end of file in function")
			return fn
		default:
			p.pushBack()
			fn.Values = append(fn.Values, p.consumeComponentValue())
		}
	}
}

// consumeComponentValue implements "consume a component value".
// CSS Syntax §5.4.7
func (p *parser) consumeComponentValue() ComponentValue {
	tok := p.next()
	switch tok.Type {
	case LeftBraceToken, LeftBracketToken, LeftParenToken:
		return p.consumeSimpleBlock()
	case FunctionToken:
		return p.consumeFunction()
	}
	// Preserved token: the parser owns the current-token buffer, so the
	// tree gets its own copy.
	preserved := tok
	return &preserved
}

// skipToMirror discards tokens without recursing, keeping bracket pairs
// balanced, until the wanted closing token or end of file. Used once the
// nesting cap is hit.
func (p *parser) skipToMirror(mirror TokenType) {
	depth := 0
	for {
		tok := p.next()
		switch tok.Type {
		case EOFToken:
			return
		case LeftBraceToken, LeftBracketToken, LeftParenToken, FunctionToken:
			depth++
		case RightBraceToken, RightBracketToken, RightParenToken:
			if depth == 0 && tok.Type == mirror {
				return
			}
			if depth > 0 {
				depth--
			}
		}
	}
}
