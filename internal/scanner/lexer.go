package scanner

// Lexer is the host-provided primitive reader the scanner advances over.
// A real embedding (the generalized parser's runtime) supplies its own
// implementation; BufLexer below is a standalone one used to exercise the
// scanner in isolation from any parser.
type Lexer interface {
	// Lookahead returns the byte at the current position, or 0 at EOF.
	Lookahead() byte

	// Advance consumes the lookahead byte and moves to the next one.
	// When markEnd is true the new position also becomes the token end
	// mark (mirrors tree-sitter's advance(lexer, skip) "mark end" side
	// channel: every byte consumed as part of the eventual token should
	// be marked, bytes skipped as leading whitespace should not).
	Advance(markEnd bool)

	// MarkEnd records the current position as the end of the token
	// being built, without consuming a byte.
	MarkEnd()

	// Column returns the current column, 0-based, reset at each newline.
	Column() uint32

	// EOF reports whether the lookahead position is past the end of input.
	EOF() bool
}

// BufLexer is a reference Lexer over an in-memory byte slice, grounded on
// the teacher's readChar/peekChar primitives (internal/lexer/lexer.go)
// generalized behind the Lexer interface. It additionally records the
// token-end mark so tests can assert exactly how much input a handler
// consumed.
type BufLexer struct {
	src    []byte
	pos    int
	endPos int
	column uint32
}

// NewBufLexer creates a BufLexer over src, positioned at the first byte.
func NewBufLexer(src []byte) *BufLexer {
	return &BufLexer{src: src, endPos: 0}
}

func (b *BufLexer) Lookahead() byte {
	if b.pos >= len(b.src) {
		return 0
	}
	return b.src[b.pos]
}

func (b *BufLexer) Advance(markEnd bool) {
	if b.pos >= len(b.src) {
		return
	}
	if b.src[b.pos] == '\n' {
		b.column = 0
	} else {
		b.column++
	}
	b.pos++
	if markEnd {
		b.endPos = b.pos
	}
}

func (b *BufLexer) MarkEnd() {
	b.endPos = b.pos
}

func (b *BufLexer) Column() uint32 {
	return b.column
}

func (b *BufLexer) EOF() bool {
	return b.pos >= len(b.src)
}

// Pos returns the current read position, for tests asserting progress.
func (b *BufLexer) Pos() int { return b.pos }

// EndPos returns the last marked token-end position.
func (b *BufLexer) EndPos() int { return b.endPos }

// Remaining returns the unread tail of src, for peeking beyond Lookahead.
func (b *BufLexer) Remaining() []byte {
	if b.pos >= len(b.src) {
		return nil
	}
	return b.src[b.pos:]
}

// PeekAt returns the byte offset bytes past the lookahead, or 0 past EOF.
func (b *BufLexer) PeekAt(offset int) byte {
	i := b.pos + offset
	if i < 0 || i >= len(b.src) {
		return 0
	}
	return b.src[i]
}

// bufLexerState snapshots the three fields Advance/MarkEnd mutate, so a
// host can restore a BufLexer to exactly how it looked before a Scan call
// that ultimately found no match. Real tree-sitter hosts do this restore
// themselves around a false-returning external scanner; BufLexer stands in
// for that host in the standalone test harness.
type bufLexerState struct {
	pos    int
	endPos int
	column uint32
}

func (b *BufLexer) snapshotState() bufLexerState {
	return bufLexerState{pos: b.pos, endPos: b.endPos, column: b.column}
}

func (b *BufLexer) restoreState(st bufLexerState) {
	b.pos = st.pos
	b.endPos = st.endPos
	b.column = st.column
}
