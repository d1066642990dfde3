package query

// scanner holds the state of a single Scan call.
type scanner struct {
	input string // query being scanned
	index int    // current position in input
	start int    // start of the chunk being built

	last  scanState // previous state
	state scanState // current state

	depth  int  // paren nesting while in stateParen
	quoted bool // inside a quoted section of a paren group

	chunks []Chunk
}

func newScanner(input string) *scanner {
	return &scanner{
		input:  input,
		last:   stateDefault,
		state:  stateDefault,
		chunks: make([]Chunk, 0, len(input)/4+1),
	}
}

// Scan splits input into chunks. Joining the Text of every returned chunk
// yields input unchanged.
//
// An unterminated quote, parenthesis group, range or regular expression
// fails with a *SyntaxError wrapping ErrUnbalancedDelimiter.
func Scan(input string) ([]Chunk, error) {
	s := newScanner(input)
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.chunks, nil
}

func (s *scanner) run() error {
	for s.index < len(s.input) {
		c := s.input[s.index]
		switch s.state {
		case stateDefault:
			s.stepDefault(c)
		case stateSpace:
			s.stepSpace(c)
		case stateWord:
			s.stepWord(c)
		case stateQuote:
			s.stepQuote(c)
		case stateParen:
			s.stepParen(c)
		case stateRange:
			s.stepRange(c)
		case stateRegex:
			s.stepRegex(c)
		}
	}
	return s.finish()
}

// enter switches to the given state.
func (s *scanner) enter(state scanState) {
	s.last = s.state
	s.state = state
}

// emit appends input[start:index] as a chunk of the given kind and returns
// to the default state.
func (s *scanner) emit(kind ChunkKind) {
	s.chunks = append(s.chunks, Chunk{
		Kind: kind,
		Text: s.input[s.start:s.index],
		Pos:  s.start,
	})
	s.start = s.index
	s.enter(stateDefault)
}

// skipEscape consumes a backslash and the byte it escapes. A trailing
// backslash is consumed on its own.
func (s *scanner) skipEscape() {
	s.index += 2
	if s.index > len(s.input) {
		s.index = len(s.input)
	}
}

func (s *scanner) stepDefault(c byte) {
	s.start = s.index
	switch classify(c) {
	case classSpace:
		s.enter(stateSpace)
		s.index++
	case classQuote:
		s.enter(stateQuote)
		s.index++
	case classLParen:
		s.depth = 1
		s.quoted = false
		s.enter(stateParen)
		s.index++
	case classRangeOpen:
		s.enter(stateRange)
		s.index++
	case classSlash:
		s.enter(stateRegex)
		s.index++
	case classColon:
		// colon without a name in front of it
		s.index++
		s.emit(ChunkColon)
	case classRParen:
		// stray closing paren, kept as opaque text
		s.index++
		s.emit(ChunkWord)
	default:
		// the word state consumes c itself so escapes are handled in one place
		s.enter(stateWord)
	}
}

func (s *scanner) stepSpace(c byte) {
	if classify(c) == classSpace {
		s.index++
		return
	}
	s.emit(ChunkWhitespace)
}

func (s *scanner) stepWord(c byte) {
	class := classify(c)
	switch {
	case class == classEscape:
		s.skipEscape()
	case class == classColon:
		s.emitField(s.index)
	case class == classSpace:
		if colon := s.colonAfter(s.index); colon >= 0 {
			s.emitField(colon)
			return
		}
		s.emit(ChunkWord)
	case endsWord(class):
		s.emit(ChunkWord)
	default:
		s.index++
	}
}

// colonAfter returns the position of a ':' that follows pos after nothing
// but whitespace, or -1.
func (s *scanner) colonAfter(pos int) int {
	for pos < len(s.input) && classify(s.input[pos]) == classSpace {
		pos++
	}
	if pos < len(s.input) && s.input[pos] == ':' {
		return pos
	}
	return -1
}

// emitField emits the pending word as a field name, the whitespace up to
// colon if any, and the colon itself.
func (s *scanner) emitField(colon int) {
	s.emit(ChunkField)
	if colon > s.index {
		s.index = colon
		s.emit(ChunkWhitespace)
	}
	s.index++
	s.emit(ChunkColon)
}

func (s *scanner) stepQuote(c byte) {
	switch classify(c) {
	case classEscape:
		s.skipEscape()
	case classQuote:
		s.index++
		s.emit(ChunkQuoted)
	default:
		s.index++
	}
}

func (s *scanner) stepParen(c byte) {
	switch classify(c) {
	case classEscape:
		s.skipEscape()
		return
	case classQuote:
		s.quoted = !s.quoted
	case classLParen:
		if !s.quoted {
			s.depth++
		}
	case classRParen:
		if !s.quoted {
			s.depth--
		}
	}
	s.index++
	if s.depth == 0 {
		s.emit(ChunkParenGroup)
	}
}

func (s *scanner) stepRange(c byte) {
	switch classify(c) {
	case classEscape:
		s.skipEscape()
	case classRangeClose:
		s.index++
		s.emit(ChunkRange)
	default:
		s.index++
	}
}

func (s *scanner) stepRegex(c byte) {
	switch classify(c) {
	case classEscape:
		s.skipEscape()
	case classSlash:
		s.index++
		s.emit(ChunkRegex)
	default:
		s.index++
	}
}

// finish flushes the chunk in progress at the end of input.
func (s *scanner) finish() error {
	switch {
	case s.state == stateSpace:
		s.emit(ChunkWhitespace)
	case s.state == stateWord:
		s.emit(ChunkWord)
	case s.state.open():
		return &SyntaxError{
			Err:   ErrUnbalancedDelimiter,
			Pos:   s.start,
			Token: s.input[s.start : s.start+1],
			Input: s.input,
		}
	}
	return nil
}
