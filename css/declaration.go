package css

import "strings"

// Declarations are parsed out of a qualified rule's block in a post-pass
// over its component values: name, ':', values, ';', with an optional
// trailing "!important". Error recovery is local to the declaration at
// hand — a malformed entry is skipped to the next ';' and the rest of
// the block still parses.
// CSS Syntax §5.4.4, §5.4.6

// isPreserved reports whether cv is a preserved token of the given type.
func isPreserved(cv ComponentValue, tt TokenType) bool {
	tok, ok := cv.(*Token)
	return ok && tok.Type == tt
}

// parseDeclarations scans the component values of a declaration block.
// At-keywords open constructs this parser does not descend into; they
// are skipped up to the next ';' or nested block.
func parseDeclarations(values []ComponentValue) []*Declaration {
	var decls []*Declaration
	i := 0
	for i < len(values) {
		// Skip whitespace and stray semicolons.
		for i < len(values) && (isPreserved(values[i], WhitespaceToken) || isPreserved(values[i], SemicolonToken)) {
			i++
		}
		if i >= len(values) {
			break
		}

		// Nested at-rules are not analyzed here; swallow through the next
		// semicolon or block.
		if isPreserved(values[i], AtKeywordToken) {
			for i < len(values) {
				if isPreserved(values[i], SemicolonToken) {
					i++
					break
				}
				if _, ok := values[i].(*SimpleBlock); ok {
					i++
					break
				}
				i++
			}
			continue
		}

		// Declaration name.
		nameTok, ok := values[i].(*Token)
		if !ok || nameTok.Type != IdentToken {
			i = skipToSemicolon(values, i)
			continue
		}
		name := nameTok.Value
		i++

		for i < len(values) && isPreserved(values[i], WhitespaceToken) {
			i++
		}
		if i >= len(values) || !isPreserved(values[i], ColonToken) {
			i = skipToSemicolon(values, i)
			continue
		}
		i++

		for i < len(values) && isPreserved(values[i], WhitespaceToken) {
			i++
		}

		decl := &Declaration{Name: name}
		for i < len(values) && !isPreserved(values[i], SemicolonToken) {
			decl.Values = append(decl.Values, cloneComponentValue(values[i]))
			i++
		}
		trimTrailingWhitespace(decl)
		detectImportant(decl)
		decls = append(decls, decl)
	}
	return decls
}

func skipToSemicolon(values []ComponentValue, i int) int {
	for i < len(values) && !isPreserved(values[i], SemicolonToken) {
		i++
	}
	return i
}

func trimTrailingWhitespace(decl *Declaration) {
	for len(decl.Values) > 0 && isPreserved(decl.Values[len(decl.Values)-1], WhitespaceToken) {
		decl.Values = decl.Values[:len(decl.Values)-1]
	}
}

// detectImportant sets the Important flag when the declaration's values
// end in '!' "important" (case-insensitive, whitespace allowed between
// and after). The matched values and any whitespace before them are
// removed.
func detectImportant(decl *Declaration) {
	i := len(decl.Values)

	// Last non-whitespace value must be the identifier "important".
	for i > 0 && isPreserved(decl.Values[i-1], WhitespaceToken) {
		i--
	}
	if i == 0 {
		return
	}
	tok, ok := decl.Values[i-1].(*Token)
	if !ok || tok.Type != IdentToken || !strings.EqualFold(tok.Value, "important") {
		return
	}
	i--

	// Preceding non-whitespace value must be the delimiter '!'.
	for i > 0 && isPreserved(decl.Values[i-1], WhitespaceToken) {
		i--
	}
	if i == 0 {
		return
	}
	tok, ok = decl.Values[i-1].(*Token)
	if !ok || tok.Type != DelimToken || tok.Delim != '!' {
		return
	}

	decl.Important = true
	decl.Values = decl.Values[:i-1]
	trimTrailingWhitespace(decl)
}
