package scanner

// 12. PATTERN_START / PATTERN_SUFFIX_START: a parameter expansion enters a
// pattern-matching sub-context at '#', '%', '/', or ':' (colon only when
// followed by one of the substitution operators). PATTERN_SUFFIX_START
// covers the leading '#'/'%%'/'%' remove-prefix/suffix forms; PATTERN_START
// covers the trailing '/' replace-pattern form. Both push/replace the
// parameter context with the matching pattern sub-context.
func (d *dispatch) tryPatternStartOrSuffix() Result {
	if !d.s.ctx.inParameterExpansion() {
		return noMatch()
	}
	c := d.l.Lookahead()

	if (c == '#' || c == '%') && d.valid.Valid(PatternSuffixStart) {
		d.l.Advance(true)
		if d.l.Lookahead() == c {
			d.l.Advance(true)
		}
		d.s.ctx.setTop(ContextParamPatternSuffix)
		return emit(PatternSuffixStart)
	}

	if c == '/' && d.valid.Valid(PatternStart) {
		d.l.Advance(true)
		if d.l.Lookahead() == '/' {
			d.l.Advance(true)
		}
		d.s.ctx.setTop(ContextParamPatternSubstitute)
		return emit(PatternStart)
	}

	if c == ':' && d.valid.Valid(PatternStart) {
		switch peekByte(d.l, 1) {
		case 's', 'g', 'r':
			d.l.Advance(true)
			d.s.ctx.setTop(ContextParamPatternSubstitute)
			return emit(PatternStart)
		}
	}

	return noMatch()
}

// 13. HASH_PATTERN / DOUBLE_HASH_PATTERN / IMMEDIATE_DOUBLE_HASH: glob
// counting operators valid only at the very start of a parameter's default
// expansion body, distinguishing "${#var}" (length) from "${(#)...}"  and
// from a leading "##"/"#" glob-count pattern once inside a substitution
// value. IMMEDIATE_DOUBLE_HASH is the zero-width lookahead flavor used to
// disambiguate before the grammar commits to a branch.
func (d *dispatch) tryHashPatterns() Result {
	if d.l.Lookahead() != '#' {
		return noMatch()
	}

	if d.valid.Valid(ImmediateDoubleHash) {
		if peekByte(d.l, 1) == '#' {
			return emit(ImmediateDoubleHash)
		}
		return noMatch()
	}

	if peekByte(d.l, 1) == '#' && d.valid.Valid(DoubleHashPattern) {
		d.l.Advance(true)
		d.l.Advance(true)
		return emit(DoubleHashPattern)
	}

	if d.valid.Valid(HashPattern) {
		d.l.Advance(true)
		return emit(HashPattern)
	}

	return noMatch()
}

// 14. ARRAY_STAR_TOKEN / ARRAY_AT_TOKEN: bare '*' or '@' immediately inside
// a parameter expansion body, denoting "all elements" rather than a glob
// or the positional-parameters special variable. Only offered when no
// REGEX terminal is valid -- inside a subscript expression a regex
// handler could equally claim the same character, and that handler takes
// priority per spec §4.2 item 14.
func (d *dispatch) tryArrayOperators() Result {
	if !d.s.ctx.inParameterExpansion() {
		return noMatch()
	}
	if d.valid.Valid(Regex) || d.valid.Valid(RegexNoSlash) || d.valid.Valid(RegexNoSpace) {
		return noMatch()
	}
	c := d.l.Lookahead()
	if c == '*' && d.valid.Valid(ArrayStarToken) {
		d.l.Advance(true)
		return emit(ArrayStarToken)
	}
	if c == '@' && d.valid.Valid(ArrayAtToken) {
		d.l.Advance(true)
		return emit(ArrayAtToken)
	}
	return noMatch()
}

// 15. EMPTY_VALUE: when valid and the next byte is whitespace, EOF, ';', or
// '&' -- an assignment or expansion slot (e.g. "VAR=" or "${x:-}") whose
// value is empty gets an explicit zero-width node rather than leaving the
// grammar to infer "nothing here" from the following terminal alone.
func (d *dispatch) tryEmptyValue() Result {
	if !d.valid.Valid(EmptyValue) {
		return noMatch()
	}
	c := d.l.Lookahead()
	if c == 0 || isWhitespace(c) || c == ';' || c == '&' {
		return emit(EmptyValue)
	}
	return noMatch()
}
