// Package scanner implements the external lexical scanner for the zsh
// grammar: a stateful, context-sensitive lexer called by a generalized
// parser once ordinary context-free rules cannot disambiguate the next
// token. See SPEC_FULL.md for the full contract; this file holds the
// scanner's owned state and the small glue around Scan.
package scanner

// Scanner is the only mutable entity in this package (spec §3). One
// instance belongs to one parse session; it may be serialized and
// restored any number of times over that session's lifetime.
type Scanner struct {
	globParenDepth     uint8
	extInDoubleQuote   bool
	extSawOutsideQuote bool

	ctx      contextStack
	heredocs heredocQueue

	justReturnedVariableName bool
	justReturnedBareDollar   bool
}

// New returns a zero-initialized Scanner, equivalent to the host's create().
func New() *Scanner {
	return &Scanner{}
}

// Reset restores a zero-initialized state in place, used when deserialize
// receives a buffer it cannot parse (spec §4.4: "partial buffers are
// considered a reset").
func (s *Scanner) Reset() {
	*s = Scanner{}
}

// Result is what one Scan call produces: either a terminal at the lexer's
// newly-marked end, or "no token, no state change but the history-flag
// reset" (spec §9's re-architecture of "exception-style early return false").
type Result struct {
	Symbol Symbol
	OK     bool
}

func noMatch() Result { return Result{} }

func emit(sym Symbol) Result { return Result{Symbol: sym, OK: true} }

// Scan advances l by at most one external terminal, chosen according to
// valid and the dispatcher priority list in spec §4.2. It returns the
// chosen terminal, or OK=false if nothing in the priority list matched.
func (s *Scanner) Scan(l Lexer, valid ValidSymbols) Result {
	// 1. History flag capture: read and clear both flags for this call.
	justVar := s.justReturnedVariableName
	justDollar := s.justReturnedBareDollar
	s.justReturnedVariableName = false
	s.justReturnedBareDollar = false

	// A real tree-sitter host rewinds the lexer itself when an external
	// scanner returns false overall; BufLexer has no host of its own, so
	// Scan plays that role here for any handler that committed bytes
	// before eventually declining (the whitespace skip in the BARE_DOLLAR
	// and bracket/paren handlers in particular does this).
	var snap bufLexerState
	bl, isBuf := l.(*BufLexer)
	if isBuf {
		snap = bl.snapshotState()
	}

	d := &dispatch{s: s, l: l, valid: valid, justReturnedVariableName: justVar, justReturnedBareDollar: justDollar}
	res := d.run()
	if !res.OK && isBuf {
		bl.restoreState(snap)
	}
	return res
}
