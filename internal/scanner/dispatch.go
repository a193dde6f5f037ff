package scanner

// dispatch carries the per-call working set the priority list (spec
// §4.2) reads and mutates: the scanner itself, the host lexer, the valid
// symbols table, and the two history flags captured and cleared by item
// 1 before any handler runs.
type dispatch struct {
	s     *Scanner
	l     Lexer
	valid ValidSymbols

	justReturnedVariableName bool
	justReturnedBareDollar   bool
}

// run walks the priority list in spec §4.2 order, item by item, and
// returns the first handler's match. A handler that declines returns
// OK=false so the next handler gets a turn; some (BARE_DOLLAR and the
// bracket/paren handlers) have already skipped leading spaces and tabs by
// then, and that skip is not undone before the next handler runs. Scan
// restores the lexer only when no handler matches at all.
func (d *dispatch) run() Result {
	if res := d.tryNewline(); res.OK {
		return res
	}
	if res := d.tryClosingBraceForExpansion(); res.OK {
		return res
	}
	if res := d.tryEsac(); res.OK {
		return res
	}
	if res := d.tryConcat(); res.OK {
		return res
	}
	if res := d.tryRawDollar(); res.OK {
		return res
	}
	if res := d.tryBareDollar(); res.OK {
		return res
	}
	if res := d.tryPeekBareDollar(); res.OK {
		return res
	}
	if res := d.tryBraceStart(); res.OK {
		return res
	}
	if res := d.tryOpeningParensAndGlobFlags(); res.OK {
		return res
	}
	if res := d.tryOpeningBrackets(); res.OK {
		return res
	}
	if res := d.tryClosingBrackets(); res.OK {
		return res
	}
	if res := d.tryClosingParens(); res.OK {
		return res
	}
	if res := d.tryPatternStartOrSuffix(); res.OK {
		return res
	}
	if res := d.tryHashPatterns(); res.OK {
		return res
	}
	if res := d.tryArrayOperators(); res.OK {
		return res
	}
	if res := d.tryEmptyValue(); res.OK {
		return res
	}
	if res := d.tryHeredocFamily(); res.OK {
		return res
	}
	if res := d.tryTestOperator(); res.OK {
		return res
	}
	if res := d.trySimpleVariableName(); res.OK {
		return res
	}
	if res := d.trySpecialVariableName(); res.OK {
		return res
	}
	if res := d.tryVariableNameFdHeredocArrow(); res.OK {
		return res
	}
	if res := d.tryRegexFamily(); res.OK {
		return res
	}
	if res := d.tryExtglobPattern(); res.OK {
		return res
	}
	if res := d.tryExpansionWord(); res.OK {
		return res
	}
	if res := d.tryBraceRangeStart(); res.OK {
		return res
	}
	return noMatch()
}

func (d *dispatch) recovering() bool {
	return d.valid.Valid(ErrorRecovery)
}

// 2. NEWLINE: when valid, consume a run of '\n' and emit NEWLINE.
func (d *dispatch) tryNewline() Result {
	if !d.valid.Valid(Newline) {
		return noMatch()
	}
	if d.l.Lookahead() != '\n' {
		return noMatch()
	}
	for d.l.Lookahead() == '\n' {
		d.l.Advance(true)
	}
	return emit(Newline)
}

// 3. Closing brace for expansion: if '}' and CLOSING_BRACE is valid and
// the top context is a parameter-expansion context, pop it and emit. A
// brace-range's close ("{1..5}") is not covered here: the scanner never
// pushed a context for it in the first place, so its '}' is the
// grammar's own token.immediate('}'), not CLOSING_BRACE.
func (d *dispatch) tryClosingBraceForExpansion() Result {
	if !d.valid.Valid(ClosingBrace) {
		return noMatch()
	}
	if d.l.Lookahead() != '}' {
		return noMatch()
	}
	if !d.s.ctx.inParameterExpansion() {
		return noMatch()
	}
	d.s.ctx.popExpected(d.s.ctx.top())
	d.l.Advance(true)
	return emit(ClosingBrace)
}

// ESAC: recognized as an external terminal, not a grammar keyword, because
// "esac" is also a perfectly valid bare word or variable value and only
// the scanner's lookahead into valid_symbols can tell which the parser
// actually wants at this position.
func (d *dispatch) tryEsac() Result {
	if !d.valid.Valid(Esac) {
		return noMatch()
	}
	bl, ok := d.l.(*BufLexer)
	if !ok {
		return noMatch()
	}
	rest := bl.Remaining()
	if len(rest) < 4 || rest[0] != 'e' || rest[1] != 's' || rest[2] != 'a' || rest[3] != 'c' {
		return noMatch()
	}
	if len(rest) > 4 && isIdentCont(rest[4]) {
		return noMatch()
	}
	for n := 0; n < 4; n++ {
		d.l.Advance(true)
	}
	return emit(Esac)
}

// 4. CONCAT: when valid and the next character is not a separator, emit
// CONCAT. A trailing backtick adjacent to a word counts as concatenation
// only if the second backtick is followed by whitespace. A backslash
// followed by '"', '\'', or '\\' also yields CONCAT, covering both bytes
// of the escape.
func (d *dispatch) tryConcat() Result {
	if !d.valid.Valid(Concat) {
		return noMatch()
	}
	c := d.l.Lookahead()
	if c == 0 {
		return noMatch()
	}
	if c == '\\' {
		next := peekByte(d.l, 1)
		if next == '"' || next == '\'' || next == '\\' {
			d.l.Advance(true)
			d.l.Advance(true)
			return emit(Concat)
		}
		return noMatch()
	}
	if c == '`' {
		// A backtick immediately following a word is CONCAT only if a
		// matching closing backtick exists later on the line and is itself
		// followed by whitespace or EOF, i.e. this is a fresh command
		// substitution glued onto the previous word, not stray punctuation.
		// The scan ahead does not consume: a true match here is zero-width,
		// deferring the actual substitution scanning to the grammar's own
		// rules (original scanner behavior, spec.md is silent on this case).
		if !d.backtickFollowedByWhitespace() {
			return noMatch()
		}
		return emit(Concat)
	}
	if isConcatSeparator(c, d.justReturnedVariableName) {
		// Inside a parameter-expansion or brace-expansion body, whitespace
		// is itself a separator the grammar needs bridged when
		// EXPANSION_WORD can't claim it -- e.g. "${foo:-a b}"'s interior
		// space between "a" and "b" -- so CONCAT still fires here, just
		// zero-width rather than consuming the whitespace.
		if isWhitespace(c) && d.inConcatWhitespaceContext() && !d.valid.Valid(ExpansionWord) {
			return emit(Concat)
		}
		return noMatch()
	}
	d.l.Advance(true)
	return emit(Concat)
}

func (d *dispatch) inConcatWhitespaceContext() bool {
	switch d.s.ctx.top() {
	case ContextParameter, ContextParamPatternSuffix, ContextParamPatternSubstitute, ContextBraceExpansion:
		return true
	default:
		return false
	}
}

// backtickFollowedByWhitespace scans forward from the lexer's current
// position (a backtick) for the next unescaped backtick, and checks that
// the byte after it is whitespace or EOF. It never advances the lexer.
func (d *dispatch) backtickFollowedByWhitespace() bool {
	bl, ok := d.l.(*BufLexer)
	if !ok {
		return false
	}
	rest := bl.Remaining()
	if len(rest) == 0 || rest[0] != '`' {
		return false
	}
	for i := 1; i < len(rest); i++ {
		if rest[i] == '\\' {
			i++
			continue
		}
		if rest[i] == '`' {
			if i+1 >= len(rest) {
				return true
			}
			return isWhitespace(rest[i+1])
		}
	}
	return false
}

func isConcatSeparator(c byte, afterVariableName bool) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ';', '&', '|':
		return true
	case '<', '>':
		return true
	case ')', '}', ']':
		return true
	case '[':
		return afterVariableName
	}
	return false
}

// RAW_DOLLAR: a standalone '$' -- one immediately followed by whitespace,
// EOF, or '"' -- that cannot begin any expansion and so is just a literal
// dollar sign character (spec §6; original_source/src/scanner.c:411-423's
// scan_raw_dollar, which skips leading non-newline whitespace before the
// '$' and only commits when the byte after it carries no expansion
// meaning). Checked before BARE_DOLLAR so that a position offering only
// RAW_DOLLAR doesn't fall through to BARE_DOLLAR's whitespace-skipping,
// which is meant for contexts where a dollar further ahead still starts a
// real expansion.
func (d *dispatch) tryRawDollar() Result {
	if !d.valid.Valid(RawDollar) {
		return noMatch()
	}
	if d.valid.Valid(BareDollar) || d.valid.Valid(PeekBareDollar) {
		return noMatch()
	}
	for isSpaceOrTab(d.l.Lookahead()) {
		d.l.Advance(false)
	}
	if d.l.Lookahead() != '$' {
		return noMatch()
	}
	next := peekByte(d.l, 1)
	if next != 0 && !isWhitespace(next) && next != '"' {
		return noMatch()
	}
	d.l.Advance(true)
	return emit(RawDollar)
}

// 5. BARE_DOLLAR: when valid, skip spaces/tabs only, then if next is '$',
// consume it and emit BARE_DOLLAR, unless immediately followed by '"'.
//
// Whitespace skipped here is never restored on a declined match: like a
// real tree-sitter external scanner, Advance(skip) is not reversible, but
// since skipped bytes never become part of any emitted token's text that
// is harmless — the next handler simply sees the lexer sitting just past
// the whitespace, exactly where it would have skipped to anyway.
func (d *dispatch) tryBareDollar() Result {
	if !d.valid.Valid(BareDollar) {
		return noMatch()
	}
	for isSpaceOrTab(d.l.Lookahead()) {
		d.l.Advance(false)
	}
	if d.l.Lookahead() != '$' {
		return noMatch()
	}
	if peekByte(d.l, 1) == '"' {
		return noMatch()
	}
	d.l.Advance(true)
	d.s.justReturnedBareDollar = true
	return emit(BareDollar)
}

// 6. PEEK_BARE_DOLLAR: without consuming, emit iff next is '$'. This is
// the sole zero-width terminal; callers must not call it twice in a row
// at the same position (spec §5), which holds here because Scan never
// revisits the same call twice without the host advancing the parser.
func (d *dispatch) tryPeekBareDollar() Result {
	if !d.valid.Valid(PeekBareDollar) {
		return noMatch()
	}
	if d.l.Lookahead() != '$' {
		return noMatch()
	}
	return emit(PeekBareDollar)
}

func peekByte(l Lexer, offset int) byte {
	if bl, ok := l.(*BufLexer); ok {
		return bl.PeekAt(offset)
	}
	// Any other Lexer implementation gets 0 here: Lexer has no native
	// multi-byte peek because tree-sitter's own lexer interface doesn't
	// either, so handlers that need to look past the lookahead byte only
	// see real bytes when driven by a *BufLexer.
	return 0
}
