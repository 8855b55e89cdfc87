package css

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a hierarchical debug rendering of the stylesheet: rules,
// selector lists, preludes, blocks, and declarations, with two spaces of
// indentation per depth level. The format mirrors the tree structure and
// is meant for tooling and tests, not for serialization back to CSS.
func (s *Stylesheet) Dump(w io.Writer) {
	fmt.Fprintln(w, "STYLESHEET")
	for _, rule := range s.Rules {
		switch r := rule.(type) {
		case *AtRule:
			dumpAtRule(w, r, 1)
		case *QualifiedRule:
			dumpQualifiedRule(w, r, 1)
		}
	}
}

func indent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat("  ", depth))
}

func dumpAtRule(w io.Writer, ar *AtRule, depth int) {
	indent(w, depth)
	fmt.Fprintf(w, "AT_RULE %q\n", ar.Name)
	if len(ar.Prelude) > 0 {
		indent(w, depth+1)
		fmt.Fprintln(w, "prelude:")
		for _, cv := range ar.Prelude {
			dumpComponentValue(w, cv, depth+2)
		}
	}
	if ar.Block != nil {
		dumpBlock(w, ar.Block, nil, depth+1)
	}
}

func dumpQualifiedRule(w io.Writer, qr *QualifiedRule, depth int) {
	indent(w, depth)
	fmt.Fprintln(w, "QUALIFIED_RULE")
	if qr.Selectors != nil {
		dumpSelectorList(w, qr.Selectors, depth+1)
	}
	if len(qr.Prelude) > 0 {
		indent(w, depth+1)
		fmt.Fprintln(w, "prelude:")
		for _, cv := range qr.Prelude {
			dumpComponentValue(w, cv, depth+2)
		}
	}
	if qr.Block != nil {
		dumpBlock(w, qr.Block, qr.Declarations, depth+1)
	}
}

// dumpBlock renders a simple block. When declarations were parsed from
// the block they are shown in place of the raw component values.
func dumpBlock(w io.Writer, block *SimpleBlock, decls []*Declaration, depth int) {
	indent(w, depth)
	switch block.Bracket {
	case LeftBraceToken:
		fmt.Fprintln(w, "BLOCK {}")
	case LeftBracketToken:
		fmt.Fprintln(w, "BLOCK []")
	default:
		fmt.Fprintln(w, "BLOCK ()")
	}
	if len(decls) > 0 {
		for _, d := range decls {
			dumpDeclaration(w, d, depth+1)
		}
		return
	}
	for _, cv := range block.Values {
		dumpComponentValue(w, cv, depth+1)
	}
}

func dumpDeclaration(w io.Writer, d *Declaration, depth int) {
	indent(w, depth)
	if d.Important {
		fmt.Fprintf(w, "DECLARATION %q !important\n", d.Name)
	} else {
		fmt.Fprintf(w, "DECLARATION %q\n", d.Name)
	}
	for _, cv := range d.Values {
		dumpComponentValue(w, cv, depth+1)
	}
}

func dumpComponentValue(w io.Writer, cv ComponentValue, depth int) {
	switch v := cv.(type) {
	case *Token:
		indent(w, depth)
		fmt.Fprintln(w, v.String())
	case *SimpleBlock:
		dumpBlock(w, v, nil, depth)
	case *Function:
		indent(w, depth)
		fmt.Fprintf(w, "FUNCTION %q\n", v.Name)
		for _, inner := range v.Values {
			dumpComponentValue(w, inner, depth+1)
		}
	}
}

func dumpSelectorList(w io.Writer, list *SelectorList, depth int) {
	indent(w, depth)
	fmt.Fprintf(w, "SELECTOR_LIST (%d)\n", len(list.Selectors))
	for _, cx := range list.Selectors {
		indent(w, depth+1)
		fmt.Fprintln(w, "COMPLEX_SELECTOR")
		for i, comp := range cx.Compounds {
			if i > 0 {
				indent(w, depth+2)
				fmt.Fprintf(w, "COMBINATOR %q\n", cx.Combinators[i-1].String())
			}
			indent(w, depth+2)
			fmt.Fprintln(w, "COMPOUND_SELECTOR")
			for _, sel := range comp.Selectors {
				dumpSimpleSelector(w, sel, depth+3)
			}
		}
	}
}

func dumpSimpleSelector(w io.Writer, sel *SimpleSelector, depth int) {
	indent(w, depth)
	switch sel.Type {
	case SelAttribute:
		var sb strings.Builder
		sb.WriteString(sel.AttrName)
		if sel.AttrMatch != MatchExists {
			fmt.Fprintf(&sb, "%s%q", sel.AttrMatch, sel.AttrValue)
		}
		if sel.AttrCaseInsensitive {
			sb.WriteString(" i")
		}
		fmt.Fprintf(w, "<attribute [%s]>\n", sb.String())
	case SelUniversal:
		fmt.Fprintln(w, "<universal>")
	default:
		fmt.Fprintf(w, "<%s %q>\n", sel.Type, sel.Name)
	}
}
