package scanner

// specialVariableChars are the single-character "special" parameters that
// need their own terminal because they are not valid identifier starts
// (spec §4.2 item 19): $?, $$, $!, $#, $-, $0-$9, $*, $@ (inside a
// parameter-expansion body the latter two go to ARRAY_STAR_TOKEN and
// ARRAY_AT_TOKEN instead whenever the grammar offers those, since that
// handler runs earlier in the priority list).
const specialVariableChars = "?$!#-*@"

func isSpecialVariableChar(c byte) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	for i := 0; i < len(specialVariableChars); i++ {
		if specialVariableChars[i] == c {
			return true
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || isAsciiLetter(c)
}

func isIdentCont(c byte) bool {
	return c == '_' || isAsciiLetter(c) || (c >= '0' && c <= '9')
}

// 18. SIMPLE_VARIABLE_NAME: a bare identifier immediately following BARE_DOLLAR
// with no braces, i.e. "$foo" rather than "${foo}". The grammar only offers
// it once BARE_DOLLAR (or PEEK_BARE_DOLLAR) has been consumed; this handler
// relies on that and does not check justReturnedBareDollar itself.
func (d *dispatch) trySimpleVariableName() Result {
	if !d.valid.Valid(SimpleVariableName) {
		return noMatch()
	}
	if !isIdentStart(d.l.Lookahead()) {
		return noMatch()
	}
	d.l.Advance(true)
	for isIdentCont(d.l.Lookahead()) {
		d.l.Advance(true)
	}
	return emit(SimpleVariableName)
}

// 19. SPECIAL_VARIABLE_NAME: the single-character special parameters.
func (d *dispatch) trySpecialVariableName() Result {
	if !d.valid.Valid(SpecialVariableName) {
		return noMatch()
	}
	c := d.l.Lookahead()
	if !isSpecialVariableChar(c) {
		return noMatch()
	}
	d.l.Advance(true)
	return emit(SpecialVariableName)
}

// 20. Unified VARIABLE_NAME / FILE_DESCRIPTOR / HEREDOC_ARROW handler: all
// three compete for the same leading-digit-or-identifier-then-redirection
// shape ("3<<EOF", "VAR=", "2>&1"), so the original scanner resolves them
// together rather than as three independent single-purpose handlers. A
// bare run of digits followed by '<' or '>' is a file descriptor; the same
// run followed by "<<"/"<<-"  is the heredoc arrow and also queues the
// heredoc; anything else that looks like an identifier is VARIABLE_NAME
// and sets justReturnedVariableName for the next call's CONCAT lookback.
func (d *dispatch) tryVariableNameFdHeredocArrow() Result {
	bl, ok := d.l.(*BufLexer)
	if !ok {
		return noMatch()
	}

	if isDigit(d.l.Lookahead()) {
		rest := bl.Remaining()
		i := 0
		for i < len(rest) && isDigit(rest[i]) {
			i++
		}
		next := byte(0)
		if i < len(rest) {
			next = rest[i]
		}
		if (next == '<' || next == '>') && d.valid.Valid(FileDescriptor) {
			if res, ok := d.tryHeredocArrowAt(bl, i); ok {
				return res
			}
			for n := 0; n < i; n++ {
				d.l.Advance(true)
			}
			return emit(FileDescriptor)
		}
	}

	if res, ok := d.tryHeredocArrowAt(bl, 0); ok {
		return res
	}

	if !d.valid.Valid(VariableName) {
		return noMatch()
	}
	if !isIdentStart(d.l.Lookahead()) {
		return noMatch()
	}
	d.l.Advance(true)
	for isIdentCont(d.l.Lookahead()) {
		d.l.Advance(true)
	}
	d.s.justReturnedVariableName = true
	return emit(VariableName)
}

// tryHeredocArrowAt checks for "<<" or "<<-" starting at rest[skip], and on
// a match consumes through the arrow, queues a new (delimiter-less) Heredoc,
// and emits the matching arrow terminal. The delimiter word itself is a
// separate token, read later by the heredoc family's HEREDOC_START branch
// (spec §4.2 item 16) once the grammar asks for it -- HEREDOC_ARROW and
// HEREDOC_START are two distinct terminals from two distinct Scan calls
// (see spec.md §8 scenario 5), not one token covering both.
func (d *dispatch) tryHeredocArrowAt(bl *BufLexer, skip int) (Result, bool) {
	if d.recovering() {
		return noMatch(), false
	}
	if !d.valid.Valid(HeredocArrow) && !d.valid.Valid(HeredocArrowDash) {
		return noMatch(), false
	}
	rest := bl.Remaining()
	if skip+1 >= len(rest) || rest[skip] != '<' || rest[skip+1] != '<' {
		return noMatch(), false
	}
	dash := skip+2 < len(rest) && rest[skip+2] == '-'
	sym := HeredocArrow
	consume := skip + 2
	if dash {
		sym = HeredocArrowDash
		consume = skip + 3
	}
	if sym == HeredocArrowDash && !d.valid.Valid(HeredocArrowDash) {
		return noMatch(), false
	}
	if sym == HeredocArrow && !d.valid.Valid(HeredocArrow) {
		return noMatch(), false
	}

	for n := 0; n < consume; n++ {
		bl.Advance(true)
	}

	d.s.heredocs.push(&Heredoc{AllowsIndent: dash})
	return emit(sym), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
