package query

import "fmt"

// ChunkKind identifies the lexical category of a Chunk.
type ChunkKind int

const (
	ChunkWord       ChunkKind = iota // bare word or operator
	ChunkField                       // name preceding ':'
	ChunkColon                       // ':'
	ChunkQuoted                      // "..."
	ChunkParenGroup                  // (...)
	ChunkRange                       // [a TO b] or {a TO b}
	ChunkRegex                       // /.../
	ChunkWhitespace                  // spaces, tabs, newlines
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkWord:
		return "Word"
	case ChunkField:
		return "Field"
	case ChunkColon:
		return "Colon"
	case ChunkQuoted:
		return "QuotedString"
	case ChunkParenGroup:
		return "ParenGroup"
	case ChunkRange:
		return "Range"
	case ChunkRegex:
		return "Regex"
	case ChunkWhitespace:
		return "Whitespace"
	default:
		return "Unknown"
	}
}

// IsTerm reports whether chunks of this kind carry a term value.
func (k ChunkKind) IsTerm() bool {
	switch k {
	case ChunkWord, ChunkQuoted, ChunkParenGroup, ChunkRange, ChunkRegex:
		return true
	}
	return false
}

// Chunk is a single scanned unit of the input.
type Chunk struct {
	Kind ChunkKind // lexical category
	Text string    // exact substring of the input, delimiters included
	Pos  int       // byte offset of Text in the input
}

func (c Chunk) String() string {
	return fmt.Sprintf("%s(%q)@%d", c.Kind, c.Text, c.Pos)
}

// TermRecord is a term together with the field it is scoped to.
//
// An empty Field means the term is general and not scoped to any field.
// Scanned field names are never empty, so the zero value is unambiguous.
type TermRecord struct {
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	Term  string `json:"term" yaml:"term"`
}

// HasField reports whether the record is scoped to a field.
func (r TermRecord) HasField() bool { return r.Field != "" }

// String renders the record the way Assemble does.
func (r TermRecord) String() string {
	if r.HasField() {
		return r.Field + " : " + r.Term
	}
	return r.Term
}
