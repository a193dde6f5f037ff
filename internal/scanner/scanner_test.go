package scanner

import "testing"

func allValid(syms ...Symbol) ValidSymbols {
	var v ValidSymbols
	for _, s := range syms {
		v[s] = true
	}
	return v
}

func TestScanNewline(t *testing.T) {
	l := NewBufLexer([]byte("\n\n\nrest"))
	s := New()
	res := s.Scan(l, allValid(Newline))
	if !res.OK || res.Symbol != Newline {
		t.Fatalf("expected Newline, got %+v", res)
	}
	if l.Pos() != 3 {
		t.Fatalf("expected to consume 3 newlines, pos=%d", l.Pos())
	}
}

func TestScanNewlineDeclinesWithoutLookahead(t *testing.T) {
	l := NewBufLexer([]byte("abc"))
	s := New()
	res := s.Scan(l, allValid(Newline))
	if res.OK {
		t.Fatalf("expected no match, got %+v", res)
	}
	if l.Pos() != 0 {
		t.Fatalf("expected no consumption on decline, pos=%d", l.Pos())
	}
}

func TestScanBareDollarSkipsWhitespaceAndSetsFlag(t *testing.T) {
	l := NewBufLexer([]byte("  $foo"))
	s := New()
	res := s.Scan(l, allValid(BareDollar))
	if !res.OK || res.Symbol != BareDollar {
		t.Fatalf("expected BareDollar, got %+v", res)
	}
	if !s.justReturnedBareDollar {
		t.Fatalf("expected justReturnedBareDollar to be set")
	}
	if l.Pos() != 3 {
		t.Fatalf("expected pos at 3 (past two spaces and $), got %d", l.Pos())
	}
}

func TestScanBareDollarDeclinesBeforeDoubleQuote(t *testing.T) {
	l := NewBufLexer([]byte(`$"x"`))
	s := New()
	res := s.Scan(l, allValid(BareDollar))
	if res.OK {
		t.Fatalf("expected decline before a double-quote, got %+v", res)
	}
}

func TestScanRawDollarAcceptsStandaloneForms(t *testing.T) {
	cases := []string{"$", "$ rest", "$\t", `$"x"`}
	for _, src := range cases {
		l := NewBufLexer([]byte(src))
		s := New()
		res := s.Scan(l, allValid(RawDollar))
		if !res.OK || res.Symbol != RawDollar {
			t.Fatalf("%q: expected RawDollar, got %+v", src, res)
		}
	}
}

func TestScanRawDollarDeclinesBeforeExpansionStart(t *testing.T) {
	l := NewBufLexer([]byte("$foo"))
	s := New()
	res := s.Scan(l, allValid(RawDollar))
	if res.OK {
		t.Fatalf("expected decline before a char that can start an expansion, got %+v", res)
	}
}

func TestScanRawDollarSkipsLeadingWhitespace(t *testing.T) {
	l := NewBufLexer([]byte("  $ "))
	s := New()
	res := s.Scan(l, allValid(RawDollar))
	if !res.OK || res.Symbol != RawDollar {
		t.Fatalf("expected RawDollar, got %+v", res)
	}
	if l.Pos() != 3 {
		t.Fatalf("expected pos at 3 (past two spaces and $), got %d", l.Pos())
	}
}

func TestScanPeekBareDollarIsZeroWidth(t *testing.T) {
	l := NewBufLexer([]byte("$foo"))
	s := New()
	res := s.Scan(l, allValid(PeekBareDollar))
	if !res.OK || res.Symbol != PeekBareDollar {
		t.Fatalf("expected PeekBareDollar, got %+v", res)
	}
	if l.Pos() != 0 {
		t.Fatalf("expected zero-width (pos unchanged), got pos=%d", l.Pos())
	}
}

func TestScanBraceStartRequiresPriorBareDollar(t *testing.T) {
	l := NewBufLexer([]byte("{foo}"))
	s := New()
	res := s.Scan(l, allValid(BraceStart))
	if res.OK {
		t.Fatalf("expected decline without a preceding BARE_DOLLAR, got %+v", res)
	}

	l2 := NewBufLexer([]byte("$"))
	s2 := New()
	res2 := s2.Scan(l2, allValid(BareDollar))
	if !res2.OK {
		t.Fatalf("setup: expected BareDollar to match, got %+v", res2)
	}

	l3 := NewBufLexer([]byte("{foo}"))
	res3 := s2.Scan(l3, allValid(BraceStart, ClosingBrace))
	if !res3.OK || res3.Symbol != BraceStart {
		t.Fatalf("expected BraceStart once justReturnedBareDollar is set, got %+v", res3)
	}
	if s2.ctx.top() != ContextParameter {
		t.Fatalf("expected PARAMETER context pushed, got %v", s2.ctx.top())
	}
}

func TestScanClosingBracePopsParameterContext(t *testing.T) {
	s := New()
	s.ctx.push(ContextParameter)
	l := NewBufLexer([]byte("}"))
	res := s.Scan(l, allValid(ClosingBrace))
	if !res.OK || res.Symbol != ClosingBrace {
		t.Fatalf("expected ClosingBrace, got %+v", res)
	}
	if !s.ctx.empty() {
		t.Fatalf("expected context stack empty after pop, got len=%d", s.ctx.len())
	}
}

func TestScanConcatDeclinesAtSeparators(t *testing.T) {
	for _, c := range []byte{' ', '\t', '\n', ';', '&', '|', '<', '>', ')', '}', ']'} {
		l := NewBufLexer([]byte{c})
		s := New()
		res := s.Scan(l, allValid(Concat))
		if res.OK {
			t.Fatalf("expected Concat to decline at separator %q", c)
		}
	}
}

func TestScanConcatZeroWidthOnWhitespaceInsideParameterExpansion(t *testing.T) {
	s := New()
	s.ctx.push(ContextParameter)
	l := NewBufLexer([]byte(" b"))
	res := s.Scan(l, allValid(Concat))
	if !res.OK || res.Symbol != Concat {
		t.Fatalf("expected zero-width Concat, got %+v", res)
	}
	if l.Pos() != 0 {
		t.Fatalf("expected zero-width (pos unchanged), got pos=%d", l.Pos())
	}
}

func TestScanConcatDeclinesOnWhitespaceWhenExpansionWordValid(t *testing.T) {
	s := New()
	s.ctx.push(ContextParameter)
	l := NewBufLexer([]byte(" b"))
	res := s.Scan(l, allValid(Concat, ExpansionWord))
	if res.OK {
		t.Fatalf("expected decline so EXPANSION_WORD can claim the whitespace, got %+v", res)
	}
}

func TestScanConcatAcceptsOrdinaryByte(t *testing.T) {
	l := NewBufLexer([]byte("x"))
	s := New()
	res := s.Scan(l, allValid(Concat))
	if !res.OK || res.Symbol != Concat {
		t.Fatalf("expected Concat, got %+v", res)
	}
}

func TestScanConcatBacktickZeroWidthWhenFollowedByWhitespace(t *testing.T) {
	l := NewBufLexer([]byte("`cmd` "))
	s := New()
	res := s.Scan(l, allValid(Concat))
	if !res.OK || res.Symbol != Concat {
		t.Fatalf("expected Concat for backtick run followed by whitespace, got %+v", res)
	}
	if l.Pos() != 0 {
		t.Fatalf("expected zero-width backtick match, got pos=%d", l.Pos())
	}
}

func TestScanConcatBacktickDeclinesWithoutClose(t *testing.T) {
	l := NewBufLexer([]byte("`cmd")) // no closing backtick
	s := New()
	res := s.Scan(l, allValid(Concat))
	if res.OK {
		t.Fatalf("expected decline, got %+v", res)
	}
}

func TestScanConcatBackslashEscape(t *testing.T) {
	for _, c := range []byte{'"', '\'', '\\'} {
		l := NewBufLexer([]byte{'\\', c})
		s := New()
		res := s.Scan(l, allValid(Concat))
		if !res.OK || res.Symbol != Concat {
			t.Fatalf("expected Concat for backslash-%q, got %+v", c, res)
		}
		if l.Pos() != 2 {
			t.Fatalf("expected both bytes consumed, got pos=%d", l.Pos())
		}
	}
}

func TestScanRestoresStateOnOverallDecline(t *testing.T) {
	// tryOpeningBrackets skips leading whitespace unconditionally before
	// checking for '[', committing that skip even though the lookahead
	// ends up not being a bracket at all; Scan must still restore the
	// lexer to its pre-call position since no handler ultimately matched.
	l := NewBufLexer([]byte("  x"))
	s := New()
	res := s.Scan(l, allValid(OpeningBracket))
	if res.OK {
		t.Fatalf("expected no match, got %+v", res)
	}
	if l.Pos() != 0 {
		t.Fatalf("expected lexer position restored to 0, got %d", l.Pos())
	}
}

func TestScanSimpleVariableName(t *testing.T) {
	l := NewBufLexer([]byte("foo_Bar2 rest"))
	s := New()
	res := s.Scan(l, allValid(SimpleVariableName))
	if !res.OK || res.Symbol != SimpleVariableName {
		t.Fatalf("expected SimpleVariableName, got %+v", res)
	}
	if l.EndPos() != 8 {
		t.Fatalf("expected end mark at 8, got %d", l.EndPos())
	}
}

func TestScanSpecialVariableName(t *testing.T) {
	for _, input := range []string{"?", "$", "!", "#", "-", "0", "9"} {
		l := NewBufLexer([]byte(input))
		s := New()
		res := s.Scan(l, allValid(SpecialVariableName))
		if !res.OK || res.Symbol != SpecialVariableName {
			t.Fatalf("input %q: expected SpecialVariableName, got %+v", input, res)
		}
	}
}

func TestScanFileDescriptorBeforeRedirect(t *testing.T) {
	l := NewBufLexer([]byte("2>&1"))
	s := New()
	res := s.Scan(l, allValid(FileDescriptor))
	if !res.OK || res.Symbol != FileDescriptor {
		t.Fatalf("expected FileDescriptor, got %+v", res)
	}
	if l.Pos() != 1 {
		t.Fatalf("expected only the digit consumed, got pos=%d", l.Pos())
	}
}

func TestScanHeredocArrowQueuesHeredoc(t *testing.T) {
	l := NewBufLexer([]byte("<<EOF\n"))
	s := New()
	res := s.Scan(l, allValid(HeredocArrow, HeredocArrowDash))
	if !res.OK || res.Symbol != HeredocArrow {
		t.Fatalf("expected HeredocArrow, got %+v", res)
	}
	if s.heredocs.empty() {
		t.Fatalf("expected a heredoc queued")
	}
	if len(s.heredocs.front().Delimiter) != 0 {
		t.Fatalf("expected no delimiter read yet, got %q", s.heredocs.front().Delimiter)
	}

	res2 := s.Scan(l, allValid(HeredocStart))
	if !res2.OK || res2.Symbol != HeredocStart {
		t.Fatalf("expected HeredocStart as a separate token, got %+v", res2)
	}
	if string(s.heredocs.front().Delimiter) != "EOF" {
		t.Fatalf("expected delimiter EOF, got %q", s.heredocs.front().Delimiter)
	}
}

func TestScanHeredocArrowDashAllowsIndent(t *testing.T) {
	l := NewBufLexer([]byte("<<-EOF\n"))
	s := New()
	res := s.Scan(l, allValid(HeredocArrow, HeredocArrowDash))
	if !res.OK || res.Symbol != HeredocArrowDash {
		t.Fatalf("expected HeredocArrowDash, got %+v", res)
	}
	if !s.heredocs.front().AllowsIndent {
		t.Fatalf("expected AllowsIndent on <<- heredoc")
	}
}

func TestScanHeredocRawDelimiterFromQuotes(t *testing.T) {
	l := NewBufLexer([]byte("<<'EOF'\n"))
	s := New()
	res := s.Scan(l, allValid(HeredocArrow))
	if !res.OK {
		t.Fatalf("expected HeredocArrow, got %+v", res)
	}
	res2 := s.Scan(l, allValid(HeredocStart))
	if !res2.OK || res2.Symbol != HeredocStart {
		t.Fatalf("expected HeredocStart, got %+v", res2)
	}
	hd := s.heredocs.front()
	if !hd.IsRaw {
		t.Fatalf("expected IsRaw=true for quoted delimiter")
	}
	if string(hd.Delimiter) != "EOF" {
		t.Fatalf("expected stripped delimiter EOF, got %q", hd.Delimiter)
	}
}

func TestScanVariableNameSetsHistoryFlagForConcat(t *testing.T) {
	l := NewBufLexer([]byte("foo"))
	s := New()
	res := s.Scan(l, allValid(VariableName))
	if !res.OK || res.Symbol != VariableName {
		t.Fatalf("expected VariableName, got %+v", res)
	}
	if !s.justReturnedVariableName {
		t.Fatalf("expected justReturnedVariableName set")
	}

	l2 := NewBufLexer([]byte("["))
	res2 := s.Scan(l2, allValid(Concat))
	if res2.OK {
		t.Fatalf("expected Concat to decline on '[' right after a variable name, got %+v", res2)
	}
}

func TestScanHistoryFlagsAreOneShot(t *testing.T) {
	l := NewBufLexer([]byte("foo"))
	s := New()
	s.Scan(l, allValid(VariableName))
	if !s.justReturnedVariableName {
		t.Fatalf("expected flag set after first call")
	}
	l2 := NewBufLexer([]byte("x"))
	s.Scan(l2, allValid(Concat))
	if s.justReturnedVariableName {
		t.Fatalf("expected flag cleared by the following Scan call regardless of outcome")
	}
}

func TestScanTestOperatorInsideTestContext(t *testing.T) {
	s := New()
	s.ctx.push(ContextTest)
	l := NewBufLexer([]byte("-eq 5"))
	res := s.Scan(l, allValid(TestOperator))
	if !res.OK || res.Symbol != TestOperator {
		t.Fatalf("expected TestOperator, got %+v", res)
	}
	if l.Pos() != 3 {
		t.Fatalf("expected '-eq' consumed, got pos=%d", l.Pos())
	}
}

func TestScanTestOperatorDeclinesOutsideTestContext(t *testing.T) {
	s := New()
	l := NewBufLexer([]byte("-eq 5"))
	res := s.Scan(l, allValid(TestOperator))
	if res.OK {
		t.Fatalf("expected decline outside test context, got %+v", res)
	}
}

func TestScanTestOperatorDemotesToExpansionWordBeforeClosingBrace(t *testing.T) {
	s := New()
	s.ctx.push(ContextParameter)
	l := NewBufLexer([]byte("-eq}"))
	res := s.Scan(l, allValid(TestOperator, ExpansionWord))
	if !res.OK || res.Symbol != ExpansionWord {
		t.Fatalf("expected ExpansionWord, got %+v", res)
	}
	if l.Pos() != 3 {
		t.Fatalf("expected '-eq' consumed, got pos=%d", l.Pos())
	}
}

func TestScanTestOperatorDeclinesInParameterExpansionWithoutExpansionWord(t *testing.T) {
	s := New()
	s.ctx.push(ContextParameter)
	l := NewBufLexer([]byte("-eq}"))
	res := s.Scan(l, allValid(TestOperator))
	if res.OK {
		t.Fatalf("expected decline when EXPANSION_WORD isn't offered, got %+v", res)
	}
}

func TestScanEsacRequiresWordBoundary(t *testing.T) {
	l := NewBufLexer([]byte("esac"))
	s := New()
	res := s.Scan(l, allValid(Esac))
	if !res.OK || res.Symbol != Esac {
		t.Fatalf("expected Esac, got %+v", res)
	}

	l2 := NewBufLexer([]byte("esacio"))
	s2 := New()
	res2 := s2.Scan(l2, allValid(Esac))
	if res2.OK {
		t.Fatalf("expected decline for esacio, got %+v", res2)
	}
}

func TestScanExtglobPattern(t *testing.T) {
	l := NewBufLexer([]byte("@(foo|bar))"))
	s := New()
	res := s.Scan(l, allValid(ExtglobPattern))
	if !res.OK || res.Symbol != ExtglobPattern {
		t.Fatalf("expected ExtglobPattern, got %+v", res)
	}
	if l.Pos() != 2 {
		t.Fatalf("expected '@(' consumed (2 bytes), got pos=%d", l.Pos())
	}
}

func TestScanExtglobPatternDeclinedInParameterExpansion(t *testing.T) {
	l := NewBufLexer([]byte("@(foo)"))
	s := New()
	s.ctx.push(ContextParameter)
	res := s.Scan(l, allValid(ExtglobPattern))
	if res.OK {
		t.Fatalf("expected decline inside parameter expansion, got %+v", res)
	}
}

func TestScanExtglobBareWordStopsBeforeEsac(t *testing.T) {
	l := NewBufLexer([]byte("foo*esac"))
	s := New()
	res := s.Scan(l, allValid(ExtglobPattern))
	if !res.OK || res.Symbol != ExtglobPattern {
		t.Fatalf("expected ExtglobPattern, got %+v", res)
	}
	if l.Pos() != 4 {
		t.Fatalf("expected bare word to stop before 'esac' (pos=4), got pos=%d", l.Pos())
	}
}

func TestScanExtglobBareWordDeclinesAtEsac(t *testing.T) {
	l := NewBufLexer([]byte("esac"))
	s := New()
	res := s.Scan(l, allValid(ExtglobPattern))
	if res.OK {
		t.Fatalf("expected decline when positioned directly on 'esac', got %+v", res)
	}
}

func TestScanBraceRangeStart(t *testing.T) {
	l := NewBufLexer([]byte("{1..5}"))
	s := New()
	res := s.Scan(l, allValid(BraceStart))
	if !res.OK || res.Symbol != BraceStart {
		t.Fatalf("expected BraceStart for a range, got %+v", res)
	}
}

func TestScanBraceRangeStartDeclinesOnPlainBrace(t *testing.T) {
	l := NewBufLexer([]byte("{ echo hi; }"))
	s := New()
	res := s.Scan(l, allValid(BraceStart))
	if res.OK {
		t.Fatalf("expected decline for a plain grouping brace, got %+v", res)
	}
	if l.Pos() != 0 {
		t.Fatalf("expected no consumption, got pos=%d", l.Pos())
	}
}

func TestScanRegexStopsAtWhitespace(t *testing.T) {
	l := NewBufLexer([]byte("abc*.txt def"))
	s := New()
	res := s.Scan(l, allValid(Regex))
	if !res.OK || res.Symbol != Regex {
		t.Fatalf("expected Regex, got %+v", res)
	}
	if l.Pos() != 8 {
		t.Fatalf("expected stop before the space, got pos=%d", l.Pos())
	}
}

func TestScanExpansionWordStopsAtDollarAndBrace(t *testing.T) {
	l := NewBufLexer([]byte("literal$rest"))
	s := New()
	res := s.Scan(l, allValid(ExpansionWord))
	if !res.OK || res.Symbol != ExpansionWord {
		t.Fatalf("expected ExpansionWord, got %+v", res)
	}
	if l.Pos() != 7 {
		t.Fatalf("expected stop before '$', got pos=%d", l.Pos())
	}
}

func TestScanRegexNoSpaceRequiresSpecialChar(t *testing.T) {
	l := NewBufLexer([]byte("plainword rest"))
	s := New()
	res := s.Scan(l, allValid(RegexNoSpace))
	if res.OK {
		t.Fatalf("expected decline for a bareword with no regex-special char, got %+v", res)
	}
	if l.Pos() != 0 {
		t.Fatalf("expected no consumption on decline, got pos=%d", l.Pos())
	}
}

func TestScanRegexNoSpaceAcceptsSpecialChar(t *testing.T) {
	l := NewBufLexer([]byte("^a+$ rest"))
	s := New()
	res := s.Scan(l, allValid(RegexNoSpace))
	if !res.OK || res.Symbol != RegexNoSpace {
		t.Fatalf("expected RegexNoSpace, got %+v", res)
	}
	if l.Pos() != 4 {
		t.Fatalf("expected stop before the space, got pos=%d", l.Pos())
	}
}

func TestScanEmptyValueBeforeWhitespaceOrTerminator(t *testing.T) {
	for _, input := range []string{" rest", ";rest", "&rest", ""} {
		l := NewBufLexer([]byte(input))
		s := New()
		res := s.Scan(l, allValid(EmptyValue))
		if !res.OK || res.Symbol != EmptyValue {
			t.Fatalf("input %q: expected EmptyValue, got %+v", input, res)
		}
		if l.Pos() != 0 {
			t.Fatalf("input %q: expected zero-width emission, got pos=%d", input, l.Pos())
		}
	}
}

func TestScanEmptyValueDeclinesOnContent(t *testing.T) {
	l := NewBufLexer([]byte("x"))
	s := New()
	res := s.Scan(l, allValid(EmptyValue))
	if res.OK {
		t.Fatalf("expected decline when content follows, got %+v", res)
	}
}

func TestErrorRecoverySuppressesSpeculativeEmissions(t *testing.T) {
	cases := []struct {
		name  string
		input string
		syms  []Symbol
	}{
		{"regex", "abc*.txt", []Symbol{Regex, ErrorRecovery}},
		{"extglob", "@(foo)", []Symbol{ExtglobPattern, ErrorRecovery}},
		{"expansion-word", "literal", []Symbol{ExpansionWord, ErrorRecovery}},
		{"heredoc-arrow", "<<EOF\n", []Symbol{HeredocArrow, HeredocArrowDash, ErrorRecovery}},
		{"brace-range", "{1..5}", []Symbol{BraceStart, ErrorRecovery}},
	}
	for _, tc := range cases {
		l := NewBufLexer([]byte(tc.input))
		s := New()
		res := s.Scan(l, allValid(tc.syms...))
		if res.OK {
			t.Fatalf("%s: expected decline under ERROR_RECOVERY, got %+v", tc.name, res)
		}
		if l.Pos() != 0 {
			t.Fatalf("%s: expected no consumption under ERROR_RECOVERY, got pos=%d", tc.name, l.Pos())
		}
	}
}
