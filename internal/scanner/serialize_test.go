package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSerializeRoundTrip(t *testing.T) {
	s := New()
	s.globParenDepth = 3
	s.extInDoubleQuote = true
	s.ctx.push(ContextParameter)
	s.ctx.push(ContextArithmetic)
	s.heredocs.push(newHeredoc([]byte("EOF"), false, true))
	s.heredocs.push(newHeredoc([]byte("LIMIT"), true, false))
	s.justReturnedVariableName = true

	buf := s.Serialize()

	got := New()
	if err := got.DeserializeDiagnose(buf); err != nil {
		t.Fatalf("unexpected deserialize error: %v", err)
	}

	opts := cmp.Options{
		cmp.AllowUnexported(Scanner{}, contextStack{}, heredocQueue{}),
		cmpopts.IgnoreFields(Heredoc{}, "currentLeadingWord"),
	}
	if diff := cmp.Diff(s, got, opts); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDeserializeEmptyBufferResets(t *testing.T) {
	s := New()
	s.globParenDepth = 9
	s.ctx.push(ContextCommand)
	s.Deserialize(nil)
	if s.globParenDepth != 0 || !s.ctx.empty() {
		t.Fatalf("expected Reset on empty buffer, got %+v", s)
	}
}

func TestDeserializeTruncatedBufferResets(t *testing.T) {
	s := New()
	s.globParenDepth = 9
	s.Deserialize([]byte{1, 2, 3})
	if s.globParenDepth != 0 {
		t.Fatalf("expected Reset on truncated buffer, got %+v", s)
	}
}

func TestDeserializeDiagnoseReportsTruncation(t *testing.T) {
	s := New()
	err := s.DeserializeDiagnose([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("expected an error for a truncated buffer")
	}
}
