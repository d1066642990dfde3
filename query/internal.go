package query

/*
The scanner is a small finite state machine driven one byte at a time.

Delimiters are all ASCII, so multi-byte UTF-8 sequences are classified as
classOther and pass through verbatim inside whatever chunk is being built.

States:
  - stateDefault: between chunks, dispatches on the class of the next byte
  - stateSpace:   inside a whitespace run
  - stateWord:    inside a bare word, which may turn out to be a field name
  - stateQuote:   inside "...", until an unescaped '"'
  - stateParen:   inside (...), tracking nesting depth and quoted sections
  - stateRange:   inside [...] or {...}, until ']' or '}'
  - stateRegex:   inside /.../, until an unescaped '/'

Reaching the end of input in stateQuote, stateParen, stateRange or
stateRegex is an unbalanced delimiter.
*/

type (
	scanState int8 // current state of the scanner
	charClass int8 // equivalence class of an input byte
)

const (
	stateDefault scanState = iota
	stateSpace
	stateWord
	stateQuote
	stateParen
	stateRange
	stateRegex
)

func (s scanState) String() string {
	switch s {
	case stateDefault:
		return "Default"
	case stateSpace:
		return "Space"
	case stateWord:
		return "Word"
	case stateQuote:
		return "InQuote"
	case stateParen:
		return "InParen"
	case stateRange:
		return "InRange"
	case stateRegex:
		return "InRegex"
	default:
		return "Unknown"
	}
}

// open reports whether the state has an unclosed delimiter pending.
func (s scanState) open() bool {
	return s == stateQuote || s == stateParen || s == stateRange || s == stateRegex
}

const (
	classOther      charClass = iota // any other byte
	classSpace                       // ' ', '\t', '\n', '\v', '\f', '\r'
	classQuote                       // '"'
	classLParen                      // '('
	classRParen                      // ')'
	classColon                       // ':'
	classEscape                      // '\\'
	classRangeOpen                   // '[' or '{'
	classRangeClose                  // ']' or '}'
	classSlash                       // '/'
)

func (c charClass) String() string {
	switch c {
	case classOther:
		return "OTHER"
	case classSpace:
		return "SPACE"
	case classQuote:
		return "QUOTE"
	case classLParen:
		return "LPAREN"
	case classRParen:
		return "RPAREN"
	case classColon:
		return "COLON"
	case classEscape:
		return "ESCAPE"
	case classRangeOpen:
		return "RANGE_OPEN"
	case classRangeClose:
		return "RANGE_CLOSE"
	case classSlash:
		return "SLASH"
	default:
		return "UNKNOWN"
	}
}

// classify returns the character class of c.
// Only ASCII whitespace counts as a separator; unicode.IsSpace would also
// match 0x85 and 0xA0, which occur as continuation bytes in UTF-8.
func classify(c byte) charClass {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return classSpace
	case '"':
		return classQuote
	case '(':
		return classLParen
	case ')':
		return classRParen
	case ':':
		return classColon
	case '\\':
		return classEscape
	case '[', '{':
		return classRangeOpen
	case ']', '}':
		return classRangeClose
	case '/':
		return classSlash
	}
	return classOther
}

// endsWord reports whether a byte of class c terminates a bare word.
// Range brackets and slashes only open a chunk at a term start, so inside
// a word they are ordinary characters.
func endsWord(c charClass) bool {
	switch c {
	case classSpace, classQuote, classLParen, classRParen, classColon:
		return true
	}
	return false
}
