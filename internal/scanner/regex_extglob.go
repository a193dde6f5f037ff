package scanner

// extglobSigils are the leading "@", "!", "*", "+", "?" characters that,
// immediately followed by "(", introduce a zsh/ksh extended-glob group:
// "@(...)", "!(...)", "*(...)", "+(...)", "?(...)".
const extglobSigils = "@!*+?"

func isExtglobSigil(c byte) bool {
	for i := 0; i < len(extglobSigils); i++ {
		if extglobSigils[i] == c {
			return true
		}
	}
	return false
}

// 21. REGEX / REGEX_NO_SLASH / REGEX_NO_SPACE: the three flavors of a
// pattern word scanned raw up to an unescaped terminator, differing only
// in which characters stop the scan. REGEX stops at whitespace outside any
// open "(...)" or "[...]" group (spaces inside a group are kept);
// REGEX_NO_SLASH additionally stops at '/' (used inside the PATTERN_START
// substitution context, where '/' is a field separator); REGEX_NO_SPACE
// stops at any whitespace, inside a group or not.
func (d *dispatch) tryRegexFamily() Result {
	if d.recovering() {
		return noMatch()
	}
	var sym Symbol
	switch {
	case d.valid.Valid(RegexNoSlash) && d.s.ctx.shouldBreakOnSlash():
		sym = RegexNoSlash
	case d.valid.Valid(RegexNoSpace):
		sym = RegexNoSpace
	case d.valid.Valid(Regex):
		sym = Regex
	default:
		return noMatch()
	}

	if isConcatSeparator(d.l.Lookahead(), false) || d.l.Lookahead() == 0 {
		return noMatch()
	}

	var bl *BufLexer
	var startPos int
	var startSnap bufLexerState
	if b, ok := d.l.(*BufLexer); ok {
		bl = b
		startPos = b.Pos()
		startSnap = b.snapshotState()
	}

	depth := 0
	consumed := false
	for {
		c := d.l.Lookahead()
		if c == 0 {
			break
		}
		if c == '\\' {
			d.l.Advance(true)
			consumed = true
			if d.l.Lookahead() != 0 {
				d.l.Advance(true)
			}
			continue
		}
		if sym == RegexNoSpace && isWhitespace(c) {
			break
		}
		if depth == 0 {
			if sym == RegexNoSlash && c == '/' {
				break
			}
			if isWhitespace(c) {
				break
			}
			if sym != RegexNoSpace && (c == ')' || c == '}' || c == ']') {
				break
			}
		}
		if c == '(' || c == '[' {
			depth++
		} else if c == ')' || c == ']' {
			if depth > 0 {
				depth--
			} else {
				break
			}
		}
		d.l.Advance(true)
		consumed = true
	}
	if !consumed {
		return noMatch()
	}
	// REGEX_NO_SPACE is only offered to disambiguate a pattern from a plain
	// word; spec §4.2 item 21 requires at least one character outside
	// [A-Za-z0-9$_-] to actually commit to it, or an ordinary bareword would
	// be mis-tokenized as a (trivial) regex every time.
	if sym == RegexNoSpace && bl != nil && !hasRegexSpecialChar(bl.src[startPos:bl.Pos()]) {
		bl.restoreState(startSnap)
		return noMatch()
	}
	return emit(sym)
}

func hasRegexSpecialChar(text []byte) bool {
	for _, c := range text {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			continue
		case c == '$' || c == '_' || c == '-':
			continue
		default:
			return true
		}
	}
	return false
}

// 22. EXTGLOB_PATTERN: "@(...)", "!(...)", "*(...)", "+(...)", "?(...)"
// group openers, positioned at the sigil itself (not at some fabricated
// leading paren) and recognized just far enough to hand the parenthesized
// body back to the grammar's own recursive rules rather than scanning the
// whole group here. Also covers the bare, paren-free pattern words a case
// alternative can use directly (e.g. "foo*" or "-x)"), which must stop
// before swallowing a following "esac" keyword rather than consuming into
// it (spec §4.2 item 22; original_source/src/scanner.c's esac check around
// the extglob_pattern label). Never emitted inside a parameter expansion
// body (original_source/src/scanner.c:1682).
func (d *dispatch) tryExtglobPattern() Result {
	if d.recovering() {
		return noMatch()
	}
	if !d.valid.Valid(ExtglobPattern) {
		return noMatch()
	}
	if d.s.ctx.inParameterExpansion() {
		return noMatch()
	}
	if res, ok := d.tryExtglobGroup(); ok {
		return res
	}
	return d.tryExtglobBareWord()
}

// tryExtglobGroup matches a sigil immediately followed by '(' and consumes
// just that two-byte opener, leaving the parenthesized body itself to the
// grammar's own rules.
func (d *dispatch) tryExtglobGroup() (Result, bool) {
	if !isExtglobSigil(d.l.Lookahead()) {
		return noMatch(), false
	}
	if peekByte(d.l, 1) != '(' {
		return noMatch(), false
	}
	d.l.Advance(true)
	d.l.Advance(true)
	return emit(ExtglobPattern), true
}

// tryExtglobBareWord matches a bare case-alternative pattern with no
// extglob operator parens at all, stopping at whitespace, an unescaped
// '(' / ')' / '|', or the "esac" keyword boundary -- a bare pattern must
// never run into the keyword that closes the surrounding case statement.
func (d *dispatch) tryExtglobBareWord() Result {
	bl, ok := d.l.(*BufLexer)
	if !ok {
		return noMatch()
	}
	rest := bl.Remaining()
	if len(rest) == 0 || isEsacKeywordAt(rest, 0) {
		return noMatch()
	}
	if c := rest[0]; c == 0 || isWhitespace(c) || c == '(' || c == ')' || c == '|' {
		return noMatch()
	}

	i := 0
	for i < len(rest) {
		if isEsacKeywordAt(rest, i) {
			break
		}
		c := rest[i]
		if c == 0 || isWhitespace(c) || c == '(' || c == ')' || c == '|' {
			break
		}
		if c == '\\' {
			i++
			if i < len(rest) {
				i++
			}
			continue
		}
		i++
	}
	if i == 0 {
		return noMatch()
	}
	for n := 0; n < i; n++ {
		d.l.Advance(true)
	}
	return emit(ExtglobPattern)
}

// isEsacKeywordAt reports whether rest[pos:] begins with the "esac" keyword
// at a word boundary (not itself part of a longer identifier).
func isEsacKeywordAt(rest []byte, pos int) bool {
	if pos+4 > len(rest) {
		return false
	}
	if rest[pos] != 'e' || rest[pos+1] != 's' || rest[pos+2] != 'a' || rest[pos+3] != 'c' {
		return false
	}
	if pos+4 < len(rest) && isIdentCont(rest[pos+4]) {
		return false
	}
	return true
}
