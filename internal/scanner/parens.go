package scanner

// globFlagChars is the superset character class for ZSH_EXTENDED_GLOB_FLAGS
// (spec §6: "the specification ... adopts the superset").
const globFlagChars = "iqbmnsBINUXcelfaCo"

func isGlobFlagChar(c byte) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if c == '.' {
		return true
	}
	for i := 0; i < len(globFlagChars); i++ {
		if globFlagChars[i] == c {
			return true
		}
	}
	return false
}

// 7. BRACE_START (for "${"): if previous token was BARE_DOLLAR and next is
// '{', consume and emit BRACE_START, pushing PARAMETER.
func (d *dispatch) tryBraceStart() Result {
	if d.recovering() {
		return noMatch()
	}
	if !d.justReturnedBareDollar {
		return noMatch()
	}
	if !d.valid.Valid(BraceStart) {
		return noMatch()
	}
	if d.l.Lookahead() != '{' {
		return noMatch()
	}
	d.l.Advance(true)
	d.s.ctx.push(ContextParameter)
	return emit(BraceStart)
}

// 8. Opening parens / extended-glob flags.
func (d *dispatch) tryOpeningParensAndGlobFlags() Result {
	if d.recovering() {
		return noMatch()
	}
	if !d.valid.Valid(OpeningParen) && !d.valid.Valid(DoubleOpeningParen) && !d.valid.Valid(ZshExtendedGlobFlags) {
		return noMatch()
	}
	skipSpaceTab(d.l)
	if d.l.Lookahead() != '(' {
		return noMatch()
	}

	if d.justReturnedBareDollar {
		if peekByte(d.l, 1) == '(' && d.valid.Valid(DoubleOpeningParen) {
			d.l.Advance(false)
			d.l.Advance(true)
			d.s.ctx.push(ContextArithmetic)
			return emit(DoubleOpeningParen)
		}
		if d.valid.Valid(OpeningParen) {
			d.l.Advance(true)
			d.s.ctx.push(ContextCommand)
			return emit(OpeningParen)
		}
		return noMatch()
	}

	if peekByte(d.l, 1) == '#' && d.valid.Valid(ZshExtendedGlobFlags) {
		if res, ok := d.tryGlobFlags(); ok {
			return res
		}
		return noMatch()
	}

	if !d.valid.Valid(OpeningParen) {
		return noMatch()
	}
	d.l.Advance(true)
	return emit(OpeningParen)
}

// tryGlobFlags scans "(#flags)" greedily once we know lookahead=='(' and
// the next byte is '#'. Consumes nothing on failure.
func (d *dispatch) tryGlobFlags() (Result, bool) {
	bl, ok := d.l.(*BufLexer)
	if !ok {
		return noMatch(), false
	}
	rest := bl.Remaining()
	i := 2 // past '(' and '#'
	found := false
	for i < len(rest) && isGlobFlagChar(rest[i]) {
		found = true
		i++
	}
	if !found || i >= len(rest) || rest[i] != ')' {
		return noMatch(), true
	}
	for n := 0; n <= i; n++ {
		d.l.Advance(true)
	}
	return emit(ZshExtendedGlobFlags), true
}

// 9. Opening brackets.
func (d *dispatch) tryOpeningBrackets() Result {
	if d.recovering() {
		return noMatch()
	}
	if !d.valid.Valid(OpeningBracket) && !d.valid.Valid(TestCommandStart) {
		return noMatch()
	}
	skipSpaceTab(d.l)
	if d.l.Lookahead() != '[' {
		return noMatch()
	}

	if peekByte(d.l, 1) == '[' && d.valid.Valid(TestCommandStart) {
		d.l.Advance(false)
		d.l.Advance(true)
		d.s.ctx.push(ContextTest)
		return emit(TestCommandStart)
	}
	if d.justReturnedBareDollar && d.valid.Valid(OpeningBracket) {
		d.l.Advance(true)
		d.s.ctx.push(ContextArithmetic)
		return emit(OpeningBracket)
	}
	if d.valid.Valid(OpeningBracket) {
		d.l.Advance(true)
		return emit(OpeningBracket)
	}
	return noMatch()
}

// 10. Closing "]" / "]]": mirror of (9); "]]" pops TEST; bare "]" emits
// CLOSING_BRACKET and pops ARITHMETIC if that is the top.
func (d *dispatch) tryClosingBrackets() Result {
	if !d.valid.Valid(TestCommandEnd) && !d.valid.Valid(ClosingBracket) {
		return noMatch()
	}
	skipSpaceTab(d.l)
	if d.l.Lookahead() != ']' {
		return noMatch()
	}
	if peekByte(d.l, 1) == ']' && d.valid.Valid(TestCommandEnd) {
		d.l.Advance(false)
		d.l.Advance(true)
		d.s.ctx.popExpected(ContextTest)
		return emit(TestCommandEnd)
	}
	if d.valid.Valid(ClosingBracket) {
		d.l.Advance(true)
		if d.s.ctx.top() == ContextArithmetic {
			d.s.ctx.popExpected(ContextArithmetic)
		}
		return emit(ClosingBracket)
	}
	return noMatch()
}

// 11. Closing ")" / "))": "))" pops ARITHMETIC; bare ")" emits
// CLOSING_PAREN and pops ARITHMETIC if top.
func (d *dispatch) tryClosingParens() Result {
	if !d.valid.Valid(DoubleClosingParen) && !d.valid.Valid(ClosingParen) {
		return noMatch()
	}
	skipSpaceTab(d.l)
	if d.l.Lookahead() != ')' {
		return noMatch()
	}
	if peekByte(d.l, 1) == ')' && d.valid.Valid(DoubleClosingParen) {
		d.l.Advance(false)
		d.l.Advance(true)
		d.s.ctx.popExpected(ContextArithmetic)
		return emit(DoubleClosingParen)
	}
	if d.valid.Valid(ClosingParen) {
		d.l.Advance(true)
		if d.s.ctx.top() == ContextArithmetic {
			d.s.ctx.popExpected(ContextArithmetic)
		}
		return emit(ClosingParen)
	}
	return noMatch()
}

func skipSpaceTab(l Lexer) {
	for isSpaceOrTab(l.Lookahead()) {
		l.Advance(false)
	}
}
