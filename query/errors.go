package query

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedDelimiter is reported when a quote, parenthesis, range or
	// regular expression is opened but never closed.
	ErrUnbalancedDelimiter = errors.New("unbalanced delimiter")

	// ErrDanglingField is reported when a field name is followed by another
	// field name or by the end of the input instead of a term.
	ErrDanglingField = errors.New("dangling field")
)

// SyntaxError locates a scanning or grouping failure in the input.
type SyntaxError struct {
	Err   error  // ErrUnbalancedDelimiter or ErrDanglingField
	Pos   int    // byte offset of the opening delimiter or the field name
	Token string // the opening delimiter or the field name
	Input string // the query that failed
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v %q at position %d", e.Err, e.Token, e.Pos)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
