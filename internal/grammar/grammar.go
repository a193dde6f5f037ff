// Package grammar supplies the small, hand-written grammar fixtures this
// repository drives the scanner with. There is no real GLR parser table
// here -- building one is out of scope -- but the scanner cannot be
// exercised meaningfully against bare input alone, since its entire
// contract is "which terminals does the surrounding grammar currently
// accept". Grammar stands in for that surrounding grammar with a short,
// explicit script of valid-symbol sets per call, grounded on the
// Rule/State/Nonterm shape used by ava12-llx's own grammar package.
package grammar

import "gozshscan/internal/scanner"

// Step is one point in a canned parse: which terminals the (imaginary)
// parser state would offer the scanner next.
//
// A Step normally drives one scanner.Scan call. Some bytes, though, are
// never offered to the external scanner at all -- spec.md §8 scenario 3's
// interior '/' separator in "${path/old/new}" is not in §6's closed
// terminal set, so the surrounding grammar must consume it as an inlined
// literal. Literal, when non-zero, models exactly that: Run advances the
// lexer past that one byte directly instead of calling Scan.
type Step struct {
	Name    string
	Valid   scanner.ValidSymbols
	Literal byte
}

// Scenario is a named, ordered script of Steps together with the source
// text it is meant to be driven over. Each Scenario corresponds to one of
// the worked examples in this repository's specification.
type Scenario struct {
	Name   string
	Source string
	Steps  []Step
}

func valid(syms ...scanner.Symbol) scanner.ValidSymbols {
	var v scanner.ValidSymbols
	for _, s := range syms {
		v[s] = true
	}
	return v
}

// Run drives s over a Scenario's source, calling Scan once per Step and
// collecting every emitted terminal. It stops early if a Step's call
// fails to match -- a canned script that cannot be driven to completion
// signals a scenario/grammar mismatch, not a scanner bug, so Run reports
// how far it got rather than panicking.
type RunResult struct {
	Symbols   []scanner.Symbol
	Completed bool
	FailedAt  int
}

func Run(sc *scanner.Scanner, scen Scenario) RunResult {
	l := scanner.NewBufLexer([]byte(scen.Source))
	var out RunResult
	for i, step := range scen.Steps {
		if step.Literal != 0 {
			if l.Lookahead() != step.Literal {
				out.FailedAt = i
				return out
			}
			l.Advance(true)
			continue
		}
		res := sc.Scan(l, step.Valid)
		if !res.OK {
			out.FailedAt = i
			return out
		}
		out.Symbols = append(out.Symbols, res.Symbol)
	}
	out.Completed = true
	return out
}

// Scenarios are the canned fixtures exercising the worked examples from
// this repository's specification: a simple parameter expansion, a suffix
// pattern-removal expansion, a pattern-substitution expansion, a plain
// heredoc and one with an interpolated variable in its body, a "$((...))"
// arithmetic expansion, an extended-glob qualifier, a brace
// range, and a [[ ... ]] test command with a regex-free operator.
var Scenarios = []Scenario{
	{
		Name:   "simple-parameter-expansion",
		Source: "${foo}",
		Steps: []Step{
			{Name: "bare-dollar", Valid: valid(scanner.BareDollar)},
			{Name: "brace-start", Valid: valid(scanner.BraceStart)},
			{Name: "variable-name", Valid: valid(scanner.VariableName, scanner.ClosingBrace)},
			{Name: "closing-brace", Valid: valid(scanner.ClosingBrace)},
		},
	},
	{
		Name:   "heredoc-body",
		Source: "<<EOF\nhello\nEOF\n",
		Steps: []Step{
			{Name: "heredoc-arrow", Valid: valid(scanner.HeredocArrow, scanner.HeredocArrowDash)},
			{Name: "heredoc-start", Valid: valid(scanner.HeredocStart)},
			{Name: "newline", Valid: valid(scanner.Newline)},
			{Name: "heredoc-body-beginning", Valid: valid(scanner.HeredocBodyBeginning, scanner.SimpleHeredocBody)},
			{Name: "heredoc-end", Valid: valid(scanner.HeredocEnd)},
		},
	},
	{
		// spec.md Sec 8 scenario 5: a heredoc body whose only line contains an
		// interpolated variable, so the body itself must stop at '$' rather
		// than swallowing it as plain text.
		Name:   "heredoc-body-with-interpolation",
		Source: "cat<<EOF\nhi $x\nEOF\n",
		Steps: []Step{
			{Name: "variable-name", Valid: valid(scanner.VariableName)},
			{Name: "heredoc-arrow", Valid: valid(scanner.HeredocArrow, scanner.HeredocArrowDash)},
			{Name: "heredoc-start", Valid: valid(scanner.HeredocStart)},
			{Name: "newline", Valid: valid(scanner.Newline)},
			{Name: "heredoc-body-beginning", Valid: valid(scanner.HeredocBodyBeginning)},
			{Name: "bare-dollar", Valid: valid(scanner.BareDollar)},
			{Name: "simple-variable-name", Valid: valid(scanner.SimpleVariableName)},
			{Name: "heredoc-content", Valid: valid(scanner.HeredocContent)},
			{Name: "heredoc-end", Valid: valid(scanner.HeredocEnd)},
		},
	},
	{
		// spec.md Sec 8 scenario 2: a suffix pattern-removal expansion, where
		// the "##" operator itself pushes PARAM_PATTERN_SUFFIX.
		Name:   "suffix-pattern-removal",
		Source: "${var##*.bak}",
		Steps: []Step{
			{Name: "bare-dollar", Valid: valid(scanner.BareDollar)},
			{Name: "brace-start", Valid: valid(scanner.BraceStart)},
			{Name: "variable-name", Valid: valid(scanner.VariableName)},
			{Name: "pattern-suffix-start", Valid: valid(scanner.PatternSuffixStart)},
			{Name: "expansion-word", Valid: valid(scanner.ExpansionWord, scanner.ClosingBrace)},
			{Name: "closing-brace", Valid: valid(scanner.ClosingBrace)},
		},
	},
	{
		// spec.md Sec 8 scenario 3: a substitution expansion, where "/"
		// pushes PARAM_PATTERN_SUBSTITUTE and the interior "/" separating
		// the match pattern from the replacement is a grammar-inlined
		// literal the scanner never sees.
		Name:   "pattern-substitution",
		Source: "${path/old/new}",
		Steps: []Step{
			{Name: "bare-dollar", Valid: valid(scanner.BareDollar)},
			{Name: "brace-start", Valid: valid(scanner.BraceStart)},
			{Name: "variable-name", Valid: valid(scanner.VariableName)},
			{Name: "pattern-start", Valid: valid(scanner.PatternStart)},
			{Name: "expansion-word-old", Valid: valid(scanner.ExpansionWord)},
			{Name: "literal-slash", Literal: '/'},
			{Name: "expansion-word-new", Valid: valid(scanner.ExpansionWord, scanner.ClosingBrace)},
			{Name: "closing-brace", Valid: valid(scanner.ClosingBrace)},
		},
	},
	{
		Name:   "arithmetic-context",
		Source: "$((1+2))",
		Steps: []Step{
			{Name: "bare-dollar", Valid: valid(scanner.BareDollar)},
			{Name: "double-opening-paren", Valid: valid(scanner.DoubleOpeningParen)},
			{Name: "expansion-word", Valid: valid(scanner.ExpansionWord)},
			{Name: "double-closing-paren", Valid: valid(scanner.DoubleClosingParen)},
		},
	},
	{
		Name:   "extended-glob-qualifier",
		Source: "(#i)",
		Steps: []Step{
			{Name: "glob-flags", Valid: valid(scanner.ZshExtendedGlobFlags, scanner.OpeningParen)},
		},
	},
	{
		// A brace range pushes no context (spec.md §4.2 item 24): its closing
		// '}' is matched by the grammar's own token.immediate('}'), never
		// offered to the scanner as CLOSING_BRACE.
		Name:   "brace-range",
		Source: "{1..5}",
		Steps: []Step{
			{Name: "brace-start", Valid: valid(scanner.BraceStart)},
			{Name: "expansion-word", Valid: valid(scanner.ExpansionWord)},
			{Name: "literal-closing-brace", Literal: '}'},
		},
	},
	{
		Name:   "test-command",
		Source: "[[ -z $foo ]]",
		Steps: []Step{
			{Name: "test-start", Valid: valid(scanner.TestCommandStart)},
			{Name: "test-operator", Valid: valid(scanner.TestOperator)},
			{Name: "bare-dollar", Valid: valid(scanner.BareDollar)},
			{Name: "simple-variable-name", Valid: valid(scanner.SimpleVariableName)},
			{Name: "test-end", Valid: valid(scanner.TestCommandEnd)},
		},
	},
}
