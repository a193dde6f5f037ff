package scanner

// Symbol identifies one of the external terminals this scanner can emit.
// The set is closed: it mirrors the tree-sitter external-scanner ABI,
// where the host hands the scanner a fixed-size "valid symbols" table
// indexed by symbol rather than a single free-form bitset.
type Symbol int

const (
	// Delimiters consumed only by the scanner, never grammar-inlined.
	OpeningBrace Symbol = iota
	ClosingBrace
	OpeningParen
	ClosingParen
	DoubleOpeningParen
	DoubleClosingParen
	OpeningBracket
	ClosingBracket
	TestCommandStart
	TestCommandEnd
	HeredocArrow
	HeredocArrowDash
	Newline
	Esac

	// Structural.
	HeredocStart
	SimpleHeredocBody
	HeredocBodyBeginning
	HeredocContent
	HeredocEnd
	FileDescriptor
	Concat
	EmptyValue

	// Names.
	VariableName
	SimpleVariableName
	SpecialVariableName

	// Operators inside ${...}.
	HashPattern
	DoubleHashPattern
	PatternStart
	PatternSuffixStart
	ArrayStarToken
	ArrayAtToken
	ImmediateDoubleHash

	// Dollar family.
	RawDollar
	BareDollar
	PeekBareDollar

	// Patterns.
	Regex
	RegexNoSlash
	RegexNoSpace
	ExtglobPattern
	ZshExtendedGlobFlags
	TestOperator
	ExpansionWord
	BraceStart

	// Recovery (informational input only; never emitted).
	ErrorRecovery

	symbolCount
)

var symbolNames = [symbolCount]string{
	OpeningBrace:         "{",
	ClosingBrace:         "}",
	OpeningParen:         "(",
	ClosingParen:         ")",
	DoubleOpeningParen:   "((",
	DoubleClosingParen:   "))",
	OpeningBracket:       "[",
	ClosingBracket:       "]",
	TestCommandStart:     "[[",
	TestCommandEnd:       "]]",
	HeredocArrow:         "<<",
	HeredocArrowDash:     "<<-",
	Newline:              "\\n",
	Esac:                 "esac",
	HeredocStart:         "heredoc_start",
	SimpleHeredocBody:    "simple_heredoc_body",
	HeredocBodyBeginning: "heredoc_body_beginning",
	HeredocContent:       "heredoc_content",
	HeredocEnd:           "heredoc_end",
	FileDescriptor:       "file_descriptor",
	Concat:               "concat",
	EmptyValue:           "empty_value",
	VariableName:         "variable_name",
	SimpleVariableName:   "simple_variable_name",
	SpecialVariableName:  "special_variable_name",
	HashPattern:          "hash_pattern",
	DoubleHashPattern:    "double_hash_pattern",
	PatternStart:         "pattern_start",
	PatternSuffixStart:   "pattern_suffix_start",
	ArrayStarToken:       "array_star_token",
	ArrayAtToken:         "array_at_token",
	ImmediateDoubleHash:  "immediate_double_hash",
	RawDollar:            "raw_dollar",
	BareDollar:           "bare_dollar",
	PeekBareDollar:       "peek_bare_dollar",
	Regex:                "regex",
	RegexNoSlash:         "regex_no_slash",
	RegexNoSpace:         "regex_no_space",
	ExtglobPattern:       "extglob_pattern",
	ZshExtendedGlobFlags: "zsh_extended_glob_flags",
	TestOperator:         "test_operator",
	ExpansionWord:        "expansion_word",
	BraceStart:           "brace_start",
	ErrorRecovery:        "error_recovery",
}

func (s Symbol) String() string {
	if s < 0 || int(s) >= len(symbolNames) {
		return "unknown_symbol"
	}
	return symbolNames[s]
}

// SymbolCount is the number of distinct terminals in the closed set.
const SymbolCount = int(symbolCount)

// ValidSymbols is the per-call table the host passes to Scan: which
// terminals the parser could accept from the current state. Indexed by
// Symbol, matching the real tree-sitter scanner ABI rather than a packed
// bitset, since the scanner always receives it prebuilt from the host.
type ValidSymbols [SymbolCount]bool

// Valid reports whether sym is accepted in this call.
func (v ValidSymbols) Valid(sym Symbol) bool {
	return v[sym]
}

// With returns a copy of v with the given symbols additionally marked valid.
// Used by tests and by the grammar package's canned fixtures.
func (v ValidSymbols) With(syms ...Symbol) ValidSymbols {
	out := v
	for _, s := range syms {
		out[s] = true
	}
	return out
}
