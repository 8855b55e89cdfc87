package css

import (
	"fmt"
	"os"

	"github.com/lukehoban/cssparse/log"
)

// ParseError records a recovered syntax error and where it happened.
// Parse errors never interrupt tokenization or parsing; the affected
// construct is repaired or discarded per the CSS error-recovery rules
// and parsing continues.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Diagnostics accumulates the parse errors recovered during a parse.
// A nil *Diagnostics is valid everywhere one is accepted; errors are
// then only surfaced through the CSSPARSER_PARSE_ERRORS toggle.
type Diagnostics struct {
	Errors []ParseError
}

// add records a parse error. When the CSSPARSER_PARSE_ERRORS environment
// variable is set the error is also raised to stderr through the logger;
// otherwise it is visible at debug level only.
func (d *Diagnostics) add(line, column int, msg string) {
	if d != nil {
		d.Errors = append(d.Errors, ParseError{Line: line, Column: column, Msg: msg})
	}
	if os.Getenv("CSSPARSER_PARSE_ERRORS") != "" {
		log.Warnf("CSS parse error at %d:%d: %s", line, column, msg)
	} else {
		log.Debugf("CSS parse error at %d:%d: %s", line, column, msg)
	}
}
